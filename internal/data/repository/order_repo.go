package repository

import (
	"context"
	"errors"
	"fmt"

	"plantnet/internal/data/entity"
	"plantnet/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OrderParty selects whose orders a scoped operation may touch.
type OrderParty string

const (
	PartyCustomer OrderParty = "customer_email"
	PartySeller   OrderParty = "seller_email"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindEnriched(ctx context.Context, party OrderParty, email string) ([]*entity.EnrichedOrder, error)
	// UpdateStatus changes the status of a non-terminal order owned by sellerEmail.
	UpdateStatus(ctx context.Context, id uuid.UUID, sellerEmail string, status entity.OrderStatus) (bool, error)
	// DeleteUndelivered removes the order only while it is not delivered and belongs to email.
	DeleteUndelivered(ctx context.Context, id uuid.UUID, party OrderParty, email string) (bool, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `o.id, o.product_id, o.seller_email, o.customer_email, o.customer_name, o.customer_image,
	o.quantity, o.price, o.status, o.address, o.transaction_id, o.created_at, o.updated_at`

func orderDest(order *entity.Order) []any {
	return []any{
		&order.ID,
		&order.ProductID,
		&order.SellerEmail,
		&order.Customer.Email,
		&order.Customer.Name,
		&order.Customer.Image,
		&order.Quantity,
		&order.Price,
		&order.Status,
		&order.Address,
		&order.TransactionID,
		&order.CreatedAt,
		&order.UpdatedAt,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, product_id, seller_email, customer_email, customer_name, customer_image,
		                    quantity, price, status, address, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.ProductID,
		order.SellerEmail,
		order.Customer.Email,
		order.Customer.Name,
		order.Customer.Image,
		order.Quantity,
		order.Price,
		order.Status,
		order.Address,
		order.TransactionID,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("product_id", order.ProductID.String()),
			zap.String("customer_email", order.Customer.Email),
		)
		return fmt.Errorf("create order for plant %s: %w", order.ProductID.String(), err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(orderDest(&order)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

func (r *orderRepository) FindEnriched(ctx context.Context, party OrderParty, email string) ([]*entity.EnrichedOrder, error) {
	if party != PartyCustomer && party != PartySeller {
		return nil, fmt.Errorf("unknown order party %q", party)
	}

	// orders whose plant no longer exists drop out of the join
	query := `
		SELECT ` + orderColumns + `, p.name, p.image, p.category
		FROM orders o
		JOIN plants p ON p.id = o.product_id
		WHERE o.` + string(party) + ` = $1
		ORDER BY o.id DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to list orders",
			zap.Error(err),
			zap.String("party", string(party)),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find orders by %s %s: %w", party, email, err)
	}
	defer rows.Close()

	orders := []*entity.EnrichedOrder{}
	for rows.Next() {
		var eo entity.EnrichedOrder
		dest := append(orderDest(&eo.Order), &eo.PlantName, &eo.PlantImage, &eo.PlantCategory)
		if err := rows.Scan(dest...); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &eo)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, sellerEmail string, status entity.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND seller_email = $2 AND status NOT IN ($4, $5)
	`

	result, err := r.db.Exec(ctx, query, id, sellerEmail, status,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update status of order %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *orderRepository) DeleteUndelivered(ctx context.Context, id uuid.UUID, party OrderParty, email string) (bool, error) {
	if party != PartyCustomer && party != PartySeller {
		return false, fmt.Errorf("unknown order party %q", party)
	}

	query := `
		DELETE FROM orders
		WHERE id = $1 AND ` + string(party) + ` = $2 AND status <> $3
	`

	result, err := r.db.Exec(ctx, query, id, email, entity.OrderStatusDelivered)
	if err != nil {
		r.log.Error("Failed to cancel order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return false, fmt.Errorf("cancel order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Order cancelled", zap.String("order_id", id.String()), zap.String("by", email))
	return true, nil
}
