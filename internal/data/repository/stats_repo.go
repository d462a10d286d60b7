package repository

import (
	"context"
	"fmt"

	"plantnet/internal/data/entity"
	"plantnet/pkg/database"

	"go.uber.org/zap"
)

type StatsRepository interface {
	// OrderTotals sums price and counts rows over every stored order.
	OrderTotals(ctx context.Context) (*entity.OrderTotals, error)
	// DailyOrders groups orders by UTC creation day, newest day first.
	DailyOrders(ctx context.Context) ([]*entity.DailyOrders, error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

func (r *statsRepository) OrderTotals(ctx context.Context) (*entity.OrderTotals, error) {
	query := `SELECT COALESCE(SUM(price), 0), COUNT(*) FROM orders`

	var totals entity.OrderTotals
	if err := r.db.QueryRow(ctx, query).Scan(&totals.Revenue, &totals.Orders); err != nil {
		r.log.Error("Failed to total orders", zap.Error(err))
		return nil, fmt.Errorf("total orders: %w", err)
	}

	return &totals, nil
}

func (r *statsRepository) DailyOrders(ctx context.Context) ([]*entity.DailyOrders, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(price), 0),
		       COUNT(*)
		FROM orders
		GROUP BY day
		ORDER BY MAX(created_at) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to aggregate daily orders", zap.Error(err))
		return nil, fmt.Errorf("daily orders: %w", err)
	}
	defer rows.Close()

	days := []*entity.DailyOrders{}
	for rows.Next() {
		var d entity.DailyOrders
		if err := rows.Scan(&d.Date, &d.Quantity, &d.Price, &d.Orders); err != nil {
			r.log.Error("Failed to scan daily orders row", zap.Error(err))
			return nil, fmt.Errorf("scan daily orders row: %w", err)
		}
		days = append(days, &d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate daily orders rows: %w", err)
	}

	return days, nil
}
