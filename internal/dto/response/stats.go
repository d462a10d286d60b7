package response

import "github.com/shopspring/decimal"

type ChartPoint struct {
	Date     string          `json:"date"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Order    int64           `json:"order"`
}

type StatsResponse struct {
	TotalPlants  int64           `json:"totalPlants"`
	TotalUsers   int64           `json:"totalUsers"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalOrders  int64           `json:"totalOrders"`
	ChartData    []ChartPoint    `json:"chartData"`
}
