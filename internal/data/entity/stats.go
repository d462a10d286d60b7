package entity

import "github.com/shopspring/decimal"

type OrderTotals struct {
	Revenue decimal.Decimal
	Orders  int64
}

// DailyOrders aggregates the orders created on one calendar day.
type DailyOrders struct {
	Date     string
	Quantity int64
	Price    decimal.Decimal
	Orders   int64
}
