package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository"
	"plantnet/internal/dto/request"
	"plantnet/internal/dto/response"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	EnsureUser(ctx context.Context, email string, req *request.SaveUserRequest) (*response.UserResponse, error)
	RequestRoleChange(ctx context.Context, caller, email string) error
	ApproveRoleChange(ctx context.Context, actingAdmin, email string, req *request.UpdateRoleRequest) error
	GetRole(ctx context.Context, email string) (*response.RoleResponse, error)
	ListUsersExcluding(ctx context.Context, caller, email string) ([]response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureUser returns the stored user, creating a customer on first contact.
func (us *userService) EnsureUser(ctx context.Context, email string, req *request.SaveUserRequest) (*response.UserResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req == nil {
		req = &request.SaveUserRequest{}
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	candidate := &entity.User{
		Base: entity.Base{
			ID:        utils.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:   email,
		Name:    req.Name,
		Image:   req.Image,
		Role:    entity.RoleCustomer,
		Status:  entity.RoleStatusNone,
		Profile: req.Profile,
	}

	user, err := us.userRepo.Ensure(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) RequestRoleChange(ctx context.Context, caller, email string) error {
	email = normalizeEmail(email)
	if normalizeEmail(caller) != email {
		us.log.Warn("Role request for another account",
			zap.String("caller", caller), zap.String("email", email))
		return fmt.Errorf("%w: can only request a role change for your own account", ErrForbidden)
	}

	updated, err := us.userRepo.MarkRoleRequested(ctx, email)
	if err != nil {
		return fmt.Errorf("request role change: %w", err)
	}
	if updated {
		us.log.Info("Role change requested", zap.String("email", email))
		return nil
	}

	user, err := us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("request role change: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s %w", email, ErrNotFound)
	}
	return ErrRoleRequestPending
}

func (us *userService) ApproveRoleChange(ctx context.Context, actingAdmin, email string, req *request.UpdateRoleRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	role := entity.UserRole(req.Role)
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	// Admin capability is enforced here as well as by the route guard.
	admin, err := us.userRepo.FindByEmail(ctx, normalizeEmail(actingAdmin))
	if err != nil {
		return fmt.Errorf("approve role change: %w", err)
	}
	if admin == nil || admin.Role != entity.RoleAdmin {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	email = normalizeEmail(email)
	granted, err := us.userRepo.GrantRole(ctx, email, role)
	if err != nil {
		return fmt.Errorf("approve role change: %w", err)
	}
	if !granted {
		user, err := us.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("approve role change: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %s %w", email, ErrNotFound)
		}
		us.log.Warn("Role grant without pending request rejected",
			zap.String("email", email),
			zap.String("role", string(role)),
			zap.String("status", string(user.Status)),
		)
		return ErrRoleNotRequested
	}

	us.log.Info("Role granted",
		zap.String("email", email),
		zap.String("role", string(role)),
		zap.String("by", admin.Email),
	)
	return nil
}

func (us *userService) GetRole(ctx context.Context, email string) (*response.RoleResponse, error) {
	user, err := us.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if user == nil {
		return &response.RoleResponse{}, nil
	}

	role := user.Role
	return &response.RoleResponse{Role: &role}, nil
}

func (us *userService) ListUsersExcluding(ctx context.Context, caller, email string) ([]response.UserResponse, error) {
	email = normalizeEmail(email)
	if normalizeEmail(caller) != email {
		return nil, fmt.Errorf("%w: user list is scoped to the signed-in admin", ErrForbidden)
	}

	users, err := us.userRepo.FindAllExcept(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]response.UserResponse, len(users))
	for i, user := range users {
		out[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved", zap.Int("count", len(out)))
	return out, nil
}
