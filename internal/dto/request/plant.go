package request

import "github.com/shopspring/decimal"

type CreatePlantRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Image       string          `json:"image" validate:"omitempty,max=2048"`
	SellerName  string          `json:"sellerName" validate:"max=200"`
}

// UpdateQuantityRequest: an empty status decrements.
type UpdateQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate" validate:"gt=0"`
	Status           string `json:"status" validate:"omitempty,oneof=increase decrease"`
}
