package repository

import (
	"context"
	"errors"
	"fmt"

	"plantnet/internal/data/entity"
	"plantnet/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// Ensure inserts the user unless the email already exists and returns the stored row.
	Ensure(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAllExcept(ctx context.Context, email string) ([]*entity.User, error)
	// MarkRoleRequested flips status to requested; false when the user is absent or already requested.
	MarkRoleRequested(ctx context.Context, email string) (bool, error)
	// GrantRole sets role and status=verified. Only a demotion to customer may skip
	// the request step; false when the user is absent or has no pending request.
	GrantRole(ctx context.Context, email string, role entity.UserRole) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, name, image, role, status, profile, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Image,
		&user.Role,
		&user.Status,
		&user.Profile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Ensure(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, name, image, role, status, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO NOTHING
	`

	profile := user.Profile
	if profile == nil {
		profile = map[string]any{}
	}

	tag, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Image,
		user.Role,
		user.Status,
		profile,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to ensure user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return nil, fmt.Errorf("ensure user %s: %w", user.Email, err)
	}

	if tag.RowsAffected() == 1 {
		ur.log.Info("User created", zap.String("email", user.Email))
	}

	stored, err := ur.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("ensure user %s: row vanished after insert", user.Email)
	}
	return stored, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindAllExcept(ctx context.Context, email string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email <> $1 ORDER BY created_at DESC`

	rows, err := ur.db.Query(ctx, query, email)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err), zap.String("excluded", email))
		return nil, fmt.Errorf("find users except %s: %w", email, err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) MarkRoleRequested(ctx context.Context, email string) (bool, error) {
	query := `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE email = $1 AND status <> $2
	`

	result, err := ur.db.Exec(ctx, query, email, entity.RoleStatusRequested)
	if err != nil {
		ur.log.Error("Failed to request role change", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("request role change %s: %w", email, err)
	}

	return result.RowsAffected() == 1, nil
}

func (ur *userRepository) GrantRole(ctx context.Context, email string, role entity.UserRole) (bool, error) {
	query := `
		UPDATE users
		SET role = $2, status = $3, updated_at = NOW()
		WHERE email = $1 AND (status = $4 OR $2 = $5)
	`

	result, err := ur.db.Exec(ctx, query,
		email,
		role,
		entity.RoleStatusVerified,
		entity.RoleStatusRequested,
		entity.RoleCustomer,
	)
	if err != nil {
		ur.log.Error("Failed to grant role",
			zap.Error(err),
			zap.String("email", email),
			zap.String("role", string(role)),
		)
		return false, fmt.Errorf("grant role %s to %s: %w", role, email, err)
	}

	return result.RowsAffected() == 1, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int64
	if err := ur.db.QueryRow(ctx, query).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}
