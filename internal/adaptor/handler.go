package adaptor

import (
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Plant   *PlantHandler
	Order   *OrderHandler
	Payment *PaymentHandler
	Stats   *StatsHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, config, log),
		User:    NewUserHandler(service.User, log),
		Plant:   NewPlantHandler(service.Plant, log),
		Order:   NewOrderHandler(service.Order, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Stats:   NewStatsHandler(service.Stats, log),
	}
}
