package request

type CustomerInfo struct {
	Name  string `json:"name" validate:"max=200"`
	Image string `json:"image" validate:"omitempty,max=2048"`
}

type PlaceOrderRequest struct {
	PlantID       string       `json:"plantId" validate:"required,uuid"`
	Quantity      int          `json:"quantity" validate:"gt=0"`
	Address       string       `json:"address" validate:"max=500"`
	TransactionID string       `json:"transactionId" validate:"max=200"`
	Customer      CustomerInfo `json:"customer"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress delivered cancelled"`
}
