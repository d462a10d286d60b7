package repository

import (
	"plantnet/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User  UserRepository
	Plant PlantRepository
	Order OrderRepository
	Stats StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:  NewUserRepository(db, log),
		Plant: NewPlantRepository(db, log),
		Order: NewOrderRepository(db, log),
		Stats: NewStatsRepository(db, log),
	}
}
