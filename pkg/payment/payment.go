package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrDisabled      = errors.New("payment gateway not configured")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Intent is the client-facing handle of a created payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Gateway creates payment intents for amounts expressed in minor units.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a decimal major-unit amount (dollars) to cents,
// rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// Disabled rejects every request; wired when no secret key is configured.
type Disabled struct{}

func (Disabled) CreateIntent(context.Context, int64, string, map[string]string) (*Intent, error) {
	return nil, ErrDisabled
}
