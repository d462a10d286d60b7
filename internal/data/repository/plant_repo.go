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

type PlantRepository interface {
	Create(ctx context.Context, plant *entity.Plant) error
	FindAll(ctx context.Context) ([]*entity.Plant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plant, error)
	FindBySeller(ctx context.Context, sellerEmail string) ([]*entity.Plant, error)
	// AdjustQuantity adds delta in a single statement. With floor set, a
	// change that would leave quantity below zero matches no row.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, floor bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID, sellerEmail string) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

type plantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlantRepository(db database.PgxIface, log *zap.Logger) PlantRepository {
	return &plantRepository{
		db:  db,
		log: log.With(zap.String("repository", "plant")),
	}
}

const plantColumns = `id, seller_email, seller_name, name, category, description, price, quantity, image, created_at, updated_at`

func scanPlant(row pgx.Row) (*entity.Plant, error) {
	var plant entity.Plant
	err := row.Scan(
		&plant.ID,
		&plant.SellerEmail,
		&plant.SellerName,
		&plant.Name,
		&plant.Category,
		&plant.Description,
		&plant.Price,
		&plant.Quantity,
		&plant.Image,
		&plant.CreatedAt,
		&plant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *plantRepository) Create(ctx context.Context, plant *entity.Plant) error {
	query := `
		INSERT INTO plants (` + plantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		plant.ID,
		plant.SellerEmail,
		plant.SellerName,
		plant.Name,
		plant.Category,
		plant.Description,
		plant.Price,
		plant.Quantity,
		plant.Image,
		plant.CreatedAt,
		plant.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create plant",
			zap.Error(err),
			zap.String("name", plant.Name),
			zap.String("seller_email", plant.SellerEmail),
		)
		return fmt.Errorf("create plant %s: %w", plant.Name, err)
	}

	return nil
}

func (r *plantRepository) FindAll(ctx context.Context) ([]*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *plantRepository) FindBySeller(ctx context.Context, sellerEmail string) ([]*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE seller_email = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, sellerEmail)
}

func (r *plantRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Plant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list plants", zap.Error(err))
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	plants := []*entity.Plant{}
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			r.log.Error("Failed to scan plant row", zap.Error(err))
			return nil, fmt.Errorf("scan plant row: %w", err)
		}
		plants = append(plants, plant)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate plant rows: %w", err)
	}

	return plants, nil
}

func (r *plantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`

	plant, err := scanPlant(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find plant by ID",
			zap.Error(err),
			zap.String("plant_id", id.String()),
		)
		return nil, fmt.Errorf("find plant by ID %s: %w", id.String(), err)
	}

	return plant, nil
}

func (r *plantRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, floor bool) (bool, error) {
	query := `
		UPDATE plants
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
	`
	if floor && delta < 0 {
		query += ` AND quantity + $2 >= 0`
	}

	result, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		r.log.Error("Failed to adjust plant quantity",
			zap.Error(err),
			zap.String("plant_id", id.String()),
			zap.Int("delta", delta),
		)
		return false, fmt.Errorf("adjust quantity of plant %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *plantRepository) Delete(ctx context.Context, id uuid.UUID, sellerEmail string) (bool, error) {
	query := `DELETE FROM plants WHERE id = $1 AND seller_email = $2`

	result, err := r.db.Exec(ctx, query, id, sellerEmail)
	if err != nil {
		r.log.Error("Failed to delete plant",
			zap.Error(err),
			zap.String("plant_id", id.String()),
		)
		return false, fmt.Errorf("delete plant %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Plant deleted", zap.String("plant_id", id.String()), zap.String("seller_email", sellerEmail))
	return true, nil
}

func (r *plantRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM plants`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting plants", zap.Error(err))
		return 0, fmt.Errorf("count all plants: %w", err)
	}

	return count, nil
}
