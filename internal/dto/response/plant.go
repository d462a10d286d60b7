package response

import (
	"time"

	"plantnet/internal/data/entity"

	"github.com/shopspring/decimal"
)

type SellerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type PlantResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image,omitempty"`
	Seller      SellerInfo      `json:"seller"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreatedResponse struct {
	ID string `json:"insertedId"`
}

func PlantToResponse(plant *entity.Plant) PlantResponse {
	return PlantResponse{
		ID:          plant.ID.String(),
		Name:        plant.Name,
		Category:    plant.Category,
		Description: plant.Description,
		Price:       plant.Price,
		Quantity:    plant.Quantity,
		Image:       plant.Image,
		Seller: SellerInfo{
			Email: plant.SellerEmail,
			Name:  plant.SellerName,
		},
		CreatedAt: plant.CreatedAt,
	}
}
