package usecase

import (
	"context"
	"fmt"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository"
	"plantnet/internal/dto/request"
	"plantnet/internal/dto/response"
	"plantnet/pkg/notifier"
	"plantnet/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

type OrderService interface {
	PlaceOrder(ctx context.Context, customerEmail string, req *request.PlaceOrderRequest) (*response.CreatedResponse, error)
	SetStatus(ctx context.Context, id, sellerEmail string, req *request.UpdateOrderStatusRequest) error
	CancelAsCustomer(ctx context.Context, id, customerEmail string) error
	CancelAsSeller(ctx context.Context, id, sellerEmail string) error
	ListForCustomer(ctx context.Context, caller, email string) ([]response.CustomerOrderResponse, error)
	ListForSeller(ctx context.Context, caller, email string) ([]response.SellerOrderResponse, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	plantRepo repository.PlantRepository
	notifier  notifier.Notifier
	log       *zap.Logger
}

func NewOrderService(repo *repository.Repository, n notifier.Notifier, log *zap.Logger) OrderService {
	return &orderService{
		orderRepo: repo.Order,
		plantRepo: repo.Plant,
		notifier:  n,
		log:       log.With(zap.String("service", "order")),
	}
}

// PlaceOrder stores the order with price and seller taken from the listing,
// then notifies both parties in the background.
func (s *orderService) PlaceOrder(ctx context.Context, customerEmail string, req *request.PlaceOrderRequest) (*response.CreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Place order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	plantID, err := parseID("plant", req.PlantID)
	if err != nil {
		return nil, err
	}

	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if plant == nil {
		return nil, fmt.Errorf("plant %s %w", req.PlantID, ErrNotFound)
	}

	now := time.Now().UTC()
	order := &entity.Order{
		Base: entity.Base{
			ID:        utils.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID:   plant.ID,
		SellerEmail: plant.SellerEmail,
		Customer: entity.Customer{
			Email: normalizeEmail(customerEmail),
			Name:  req.Customer.Name,
			Image: req.Customer.Image,
		},
		Quantity:      req.Quantity,
		Price:         plant.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:        entity.OrderStatusPending,
		Address:       req.Address,
		TransactionID: req.TransactionID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("plant_id", plant.ID.String()),
		zap.String("customer_email", order.Customer.Email),
		zap.Int("quantity", order.Quantity),
		zap.String("price", order.Price.StringFixed(2)),
	)

	go s.notifyPlaced(order, plant.Name)

	return &response.CreatedResponse{ID: order.ID.String()}, nil
}

func (s *orderService) notifyPlaced(order *entity.Order, plantName string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	messages := []struct{ recipient, subject, message string }{
		{
			recipient: order.Customer.Email,
			subject:   "Order confirmed",
			message: fmt.Sprintf("Your order %s for %d x %s has been placed. Total: %s.",
				order.ID, order.Quantity, plantName, order.Price.StringFixed(2)),
		},
		{
			recipient: order.SellerEmail,
			subject:   "New order received",
			message: fmt.Sprintf("%s ordered %d x %s (order %s). Please process it.",
				order.Customer.Email, order.Quantity, plantName, order.ID),
		},
	}

	for _, m := range messages {
		if err := s.notifier.Notify(ctx, m.recipient, m.subject, m.message); err != nil {
			s.log.Error("Failed to send order notification",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("recipient", m.recipient),
			)
		}
	}
}

func (s *orderService) SetStatus(ctx context.Context, id, sellerEmail string, req *request.UpdateOrderStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	orderID, err := parseID("order", id)
	if err != nil {
		return err
	}

	sellerEmail = normalizeEmail(sellerEmail)
	status := entity.OrderStatus(req.Status)
	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, sellerEmail, status)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if updated {
		s.log.Info("Order status updated", zap.String("order_id", id), zap.String("status", req.Status))
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	switch {
	case order == nil:
		return fmt.Errorf("order %s %w", id, ErrNotFound)
	case order.SellerEmail != sellerEmail:
		return fmt.Errorf("%w: order %s belongs to another seller", ErrForbidden, id)
	default:
		return ErrOrderFinal
	}
}

func (s *orderService) CancelAsCustomer(ctx context.Context, id, customerEmail string) error {
	return s.cancel(ctx, id, repository.PartyCustomer, customerEmail)
}

func (s *orderService) CancelAsSeller(ctx context.Context, id, sellerEmail string) error {
	return s.cancel(ctx, id, repository.PartySeller, sellerEmail)
}

// cancel deletes the order in one conditional statement and only inspects
// the record afterwards to explain why nothing was removed.
func (s *orderService) cancel(ctx context.Context, id string, party repository.OrderParty, email string) error {
	orderID, err := parseID("order", id)
	if err != nil {
		return err
	}

	email = normalizeEmail(email)
	deleted, err := s.orderRepo.DeleteUndelivered(ctx, orderID, party, email)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if deleted {
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if order == nil {
		return fmt.Errorf("order %s %w", id, ErrNotFound)
	}
	if !ownsOrder(order, party, email) {
		return fmt.Errorf("%w: order %s belongs to another account", ErrForbidden, id)
	}
	if order.Status == entity.OrderStatusDelivered {
		s.log.Warn("Cancel of delivered order rejected", zap.String("order_id", id), zap.String("by", email))
		return ErrOrderDelivered
	}
	return fmt.Errorf("order %s %w", id, ErrNotFound)
}

func ownsOrder(order *entity.Order, party repository.OrderParty, email string) bool {
	if party == repository.PartySeller {
		return order.SellerEmail == email
	}
	return order.Customer.Email == email
}

func (s *orderService) ListForCustomer(ctx context.Context, caller, email string) ([]response.CustomerOrderResponse, error) {
	orders, err := s.listScoped(ctx, caller, email, repository.PartyCustomer)
	if err != nil {
		return nil, err
	}

	out := make([]response.CustomerOrderResponse, len(orders))
	for i, eo := range orders {
		out[i] = response.CustomerOrderToResponse(eo)
	}
	return out, nil
}

func (s *orderService) ListForSeller(ctx context.Context, caller, email string) ([]response.SellerOrderResponse, error) {
	orders, err := s.listScoped(ctx, caller, email, repository.PartySeller)
	if err != nil {
		return nil, err
	}

	out := make([]response.SellerOrderResponse, len(orders))
	for i, eo := range orders {
		out[i] = response.SellerOrderToResponse(eo)
	}
	return out, nil
}

func (s *orderService) listScoped(ctx context.Context, caller, email string, party repository.OrderParty) ([]*entity.EnrichedOrder, error) {
	email = normalizeEmail(email)
	if normalizeEmail(caller) != email {
		return nil, fmt.Errorf("%w: orders are only visible to their owner", ErrForbidden)
	}

	orders, err := s.orderRepo.FindEnriched(ctx, party, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
