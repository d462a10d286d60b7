package utils

import (
	"time"

	"github.com/google/uuid"
)

// ==================== IDS ====================

// NewID returns a time-ordered UUIDv7 so ids sort by creation time.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// IDTime extracts the creation timestamp embedded in a UUIDv7.
func IDTime(id uuid.UUID) time.Time {
	if id.Version() != 7 {
		return time.Time{}
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}
