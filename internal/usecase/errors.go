package usecase

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service; adaptors map these to HTTP status codes.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUpstream        = errors.New("upstream failure")
	ErrUnavailable     = errors.New("service unavailable")
)

var (
	ErrRoleRequestPending = fmt.Errorf("%w: role change already requested, wait for approval", ErrConflict)
	ErrRoleNotRequested   = fmt.Errorf("%w: user has not requested a role change", ErrConflict)
	ErrOrderDelivered     = fmt.Errorf("%w: cannot cancel a delivered order", ErrConflict)
	ErrOrderFinal         = fmt.Errorf("%w: order status can no longer change", ErrConflict)
	ErrInsufficientStock  = fmt.Errorf("%w: not enough plants in stock", ErrConflict)
)
