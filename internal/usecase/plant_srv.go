package usecase

import (
	"context"
	"fmt"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository"
	"plantnet/internal/dto/request"
	"plantnet/internal/dto/response"
	"plantnet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlantService interface {
	CreatePlant(ctx context.Context, sellerEmail string, req *request.CreatePlantRequest) (*response.CreatedResponse, error)
	GetAllPlants(ctx context.Context) ([]response.PlantResponse, error)
	GetPlantByID(ctx context.Context, id string) (*response.PlantResponse, error)
	GetSellerPlants(ctx context.Context, sellerEmail string) ([]response.PlantResponse, error)
	AdjustQuantity(ctx context.Context, id string, req *request.UpdateQuantityRequest) error
	DeletePlant(ctx context.Context, id, sellerEmail string) error
}

type plantService struct {
	plantRepo      repository.PlantRepository
	allowBackorder bool
	log            *zap.Logger
}

func NewPlantService(plantRepo repository.PlantRepository, config utils.InventoryConfig, log *zap.Logger) PlantService {
	return &plantService{
		plantRepo:      plantRepo,
		allowBackorder: config.AllowBackorder,
		log:            log.With(zap.String("service", "plant")),
	}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s ID %q", ErrInvalidInput, kind, raw)
	}
	return id, nil
}

func toPlantResponses(plants []*entity.Plant) []response.PlantResponse {
	out := make([]response.PlantResponse, len(plants))
	for i, plant := range plants {
		out[i] = response.PlantToResponse(plant)
	}
	return out
}

func (s *plantService) CreatePlant(ctx context.Context, sellerEmail string, req *request.CreatePlantRequest) (*response.CreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create plant validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}

	now := time.Now().UTC()
	plant := &entity.Plant{
		Base: entity.Base{
			ID:        utils.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SellerEmail: normalizeEmail(sellerEmail),
		SellerName:  req.SellerName,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Quantity:    req.Quantity,
		Image:       req.Image,
	}

	if err := s.plantRepo.Create(ctx, plant); err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}

	s.log.Info("Plant created",
		zap.String("plant_id", plant.ID.String()),
		zap.String("seller_email", plant.SellerEmail),
		zap.Int("quantity", plant.Quantity),
	)

	return &response.CreatedResponse{ID: plant.ID.String()}, nil
}

func (s *plantService) GetAllPlants(ctx context.Context) ([]response.PlantResponse, error) {
	plants, err := s.plantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get plants: %w", err)
	}
	return toPlantResponses(plants), nil
}

func (s *plantService) GetPlantByID(ctx context.Context, id string) (*response.PlantResponse, error) {
	plantID, err := parseID("plant", id)
	if err != nil {
		return nil, err
	}

	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("get plant: %w", err)
	}
	if plant == nil {
		return nil, fmt.Errorf("plant %s %w", id, ErrNotFound)
	}

	resp := response.PlantToResponse(plant)
	return &resp, nil
}

func (s *plantService) GetSellerPlants(ctx context.Context, sellerEmail string) ([]response.PlantResponse, error) {
	plants, err := s.plantRepo.FindBySeller(ctx, normalizeEmail(sellerEmail))
	if err != nil {
		return nil, fmt.Errorf("get seller plants: %w", err)
	}
	return toPlantResponses(plants), nil
}

// AdjustQuantity applies the change atomically in the store. Decreases that
// would go below zero are rejected unless backorders are allowed.
func (s *plantService) AdjustQuantity(ctx context.Context, id string, req *request.UpdateQuantityRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	plantID, err := parseID("plant", id)
	if err != nil {
		return err
	}

	direction := entity.QuantityDirection(req.Status)
	if direction == "" {
		direction = entity.QuantityDecrease
	}

	delta := req.QuantityToUpdate
	if direction == entity.QuantityDecrease {
		delta = -delta
	}

	updated, err := s.plantRepo.AdjustQuantity(ctx, plantID, delta, !s.allowBackorder)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if updated {
		s.log.Info("Plant quantity adjusted", zap.String("plant_id", id), zap.Int("delta", delta))
		return nil
	}

	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if plant == nil {
		return fmt.Errorf("plant %s %w", id, ErrNotFound)
	}

	s.log.Warn("Quantity decrease rejected",
		zap.String("plant_id", id),
		zap.Int("available", plant.Quantity),
		zap.Int("requested", req.QuantityToUpdate),
	)
	return ErrInsufficientStock
}

func (s *plantService) DeletePlant(ctx context.Context, id, sellerEmail string) error {
	plantID, err := parseID("plant", id)
	if err != nil {
		return err
	}

	sellerEmail = normalizeEmail(sellerEmail)
	deleted, err := s.plantRepo.Delete(ctx, plantID, sellerEmail)
	if err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	if deleted {
		return nil
	}

	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	if plant == nil {
		return fmt.Errorf("plant %s %w", id, ErrNotFound)
	}
	return fmt.Errorf("%w: plant %s belongs to another seller", ErrForbidden, id)
}
