package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further status change is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Customer struct {
	Email string `db:"customer_email"`
	Name  string `db:"customer_name"`
	Image string `db:"customer_image"`
}

type Order struct {
	Base
	ProductID     uuid.UUID       `db:"product_id"`
	SellerEmail   string          `db:"seller_email"`
	Customer      Customer        `db:"-"`
	Quantity      int             `db:"quantity"`
	Price         decimal.Decimal `db:"price"`
	Status        OrderStatus     `db:"status"`
	Address       string          `db:"address"`
	TransactionID string          `db:"transaction_id"`
}

// EnrichedOrder is an order joined with fields of its listing.
type EnrichedOrder struct {
	Order
	PlantName     string
	PlantImage    string
	PlantCategory string
}
