package usecase

import (
	"plantnet/internal/data/repository"
	"plantnet/pkg/credential"
	"plantnet/pkg/notifier"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Plant   PlantService
	Order   OrderService
	Payment PaymentService
	Stats   StatsService
}

func NewService(
	repo *repository.Repository,
	gateway payment.Gateway,
	n notifier.Notifier,
	signer *credential.Signer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, signer, log),
		User:    NewUserService(repo.User, log),
		Plant:   NewPlantService(repo.Plant, config.Inventory, log),
		Order:   NewOrderService(repo, n, log),
		Payment: NewPaymentService(repo.Plant, gateway, config.Payment, log),
		Stats:   NewStatsService(repo, log),
	}
}
