package response

import (
	"time"

	"plantnet/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CustomerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	ProductID     string             `json:"productId"`
	Seller        string             `json:"seller"`
	Customer      CustomerInfo       `json:"customer"`
	Quantity      int                `json:"quantity"`
	Price         decimal.Decimal    `json:"price"`
	Status        entity.OrderStatus `json:"status"`
	Address       string             `json:"address,omitempty"`
	TransactionID string             `json:"transactionId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// CustomerOrderResponse flattens listing name, image and category onto the order.
type CustomerOrderResponse struct {
	OrderResponse
	PlantName     string `json:"plantName"`
	PlantImage    string `json:"plantImage"`
	PlantCategory string `json:"plantCategory"`
}

// SellerOrderResponse flattens only the listing name.
type SellerOrderResponse struct {
	OrderResponse
	PlantName string `json:"plantName"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:        order.ID.String(),
		ProductID: order.ProductID.String(),
		Seller:    order.SellerEmail,
		Customer: CustomerInfo{
			Email: order.Customer.Email,
			Name:  order.Customer.Name,
			Image: order.Customer.Image,
		},
		Quantity:      order.Quantity,
		Price:         order.Price,
		Status:        order.Status,
		Address:       order.Address,
		TransactionID: order.TransactionID,
		CreatedAt:     order.CreatedAt,
	}
}

func CustomerOrderToResponse(eo *entity.EnrichedOrder) CustomerOrderResponse {
	return CustomerOrderResponse{
		OrderResponse: OrderToResponse(&eo.Order),
		PlantName:     eo.PlantName,
		PlantImage:    eo.PlantImage,
		PlantCategory: eo.PlantCategory,
	}
}

func SellerOrderToResponse(eo *entity.EnrichedOrder) SellerOrderResponse {
	return SellerOrderResponse{
		OrderResponse: OrderToResponse(&eo.Order),
		PlantName:     eo.PlantName,
	}
}
