package usecase

import (
	"context"
	"fmt"

	"plantnet/internal/data/repository"
	"plantnet/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

// GetStats counts every stored order regardless of status; cancelled orders
// are deleted and so drop out on their own.
func (s *statsService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	totalPlants, err := s.repo.Plant.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count plants: %w", err)
	}

	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	totals, err := s.repo.Stats.OrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}

	days, err := s.repo.Stats.DailyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily orders: %w", err)
	}

	chart := make([]response.ChartPoint, 0, len(days))
	for _, d := range days {
		chart = append(chart, response.ChartPoint{
			Date:     d.Date,
			Quantity: d.Quantity,
			Price:    d.Price,
			Order:    d.Orders,
		})
	}

	return &response.StatsResponse{
		TotalPlants:  totalPlants,
		TotalUsers:   totalUsers,
		TotalRevenue: totals.Revenue,
		TotalOrders:  totals.Orders,
		ChartData:    chart,
	}, nil
}
