package request

type PaymentIntentRequest struct {
	PlantID  string `json:"plantId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}
