package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"1", 100},
		{"19.99", 1999},
		{"59.97", 5997},
		{"0.005", 1},
		{"0.004", 0},
		{"1234.565", 123457},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := ToMinorUnits(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("ToMinorUnits(%s) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNewWithoutKeyIsDisabled(t *testing.T) {
	gw := New("", zap.NewNop())

	if _, ok := gw.(Disabled); !ok {
		t.Fatalf("gateway = %T, want Disabled", gw)
	}
	if _, err := gw.CreateIntent(context.Background(), 100, "usd", nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}

func TestStripeRejectsNonPositiveAmount(t *testing.T) {
	gw := NewStripeGateway("sk_test_dummy", zap.NewNop())

	if _, err := gw.CreateIntent(context.Background(), 0, "usd", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}
}
