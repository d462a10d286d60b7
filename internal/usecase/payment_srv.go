package usecase

import (
	"context"
	"errors"
	"fmt"

	"plantnet/internal/data/repository"
	"plantnet/internal/dto/request"
	"plantnet/internal/dto/response"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, customerEmail string, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error)
}

type paymentService struct {
	plantRepo repository.PlantRepository
	gateway   payment.Gateway
	currency  string
	log       *zap.Logger
}

func NewPaymentService(plantRepo repository.PlantRepository, gateway payment.Gateway, config utils.PaymentConfig, log *zap.Logger) PaymentService {
	return &paymentService{
		plantRepo: plantRepo,
		gateway:   gateway,
		currency:  config.Currency,
		log:       log.With(zap.String("service", "payment")),
	}
}

// CreatePaymentIntent prices the purchase from the stored listing and asks
// the gateway for an intent the client can confirm.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, customerEmail string, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	plantID, err := parseID("plant", req.PlantID)
	if err != nil {
		return nil, err
	}

	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	if plant == nil {
		return nil, fmt.Errorf("plant %s %w", req.PlantID, ErrNotFound)
	}

	total := plant.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	amount := payment.ToMinorUnits(total)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, payment.ErrInvalidAmount)
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency, map[string]string{
		"plant_id": plant.ID.String(),
		"customer": normalizeEmail(customerEmail),
		"quantity": fmt.Sprint(req.Quantity),
	})
	switch {
	case errors.Is(err, payment.ErrDisabled):
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.Is(err, payment.ErrInvalidAmount):
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case err != nil:
		s.log.Error("Payment gateway failed", zap.Error(err), zap.Int64("amount", amount))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.log.Info("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("plant_id", plant.ID.String()),
		zap.Int64("amount", amount),
	)

	return &response.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}
