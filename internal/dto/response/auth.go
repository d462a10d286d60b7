package response

import "time"

type TokenResponse struct {
	Success   bool      `json:"success"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}
