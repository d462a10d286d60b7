package entity

import "github.com/shopspring/decimal"

// Plant is a listing offered by a seller.
type Plant struct {
	Base
	SellerEmail string          `db:"seller_email"`
	SellerName  string          `db:"seller_name"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
	Image       string          `db:"image"`
}

type QuantityDirection string

const (
	QuantityIncrease QuantityDirection = "increase"
	QuantityDecrease QuantityDirection = "decrease"
)
