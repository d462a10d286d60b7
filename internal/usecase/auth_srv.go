package usecase

import (
	"context"
	"fmt"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository"
	"plantnet/internal/dto/request"
	"plantnet/pkg/credential"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

// Capability is a permission derived from the stored role.
type Capability string

const (
	CapabilityAdmin  Capability = "admin"
	CapabilitySeller Capability = "seller"
)

func (c Capability) role() entity.UserRole {
	switch c {
	case CapabilityAdmin:
		return entity.RoleAdmin
	case CapabilitySeller:
		return entity.RoleSeller
	}
	return ""
}

// Decision is the outcome of an authorization predicate.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

type AuthService interface {
	IssueCredential(ctx context.Context, req *request.IssueTokenRequest) (string, time.Time, error)
	VerifyCredential(token string) (string, error)
	// Authorize reads the user's current role on every call so role changes apply immediately.
	Authorize(ctx context.Context, email string, capability Capability) (Decision, error)
}

type authService struct {
	userRepo repository.UserRepository
	signer   *credential.Signer
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, signer *credential.Signer, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signer,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) IssueCredential(ctx context.Context, req *request.IssueTokenRequest) (string, time.Time, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue token validation failed", zap.Any("errors", errs))
		return "", time.Time{}, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)
	token, expiresAt, err := s.signer.Issue(email)
	if err != nil {
		s.log.Error("Failed to issue credential", zap.Error(err), zap.String("email", email))
		return "", time.Time{}, fmt.Errorf("issue credential: %w", err)
	}

	s.log.Info("Credential issued", zap.String("email", email), zap.Time("expires_at", expiresAt))
	return token, expiresAt, nil
}

func (s *authService) VerifyCredential(token string) (string, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return normalizeEmail(claims.Email), nil
}

func (s *authService) Authorize(ctx context.Context, email string, capability Capability) (Decision, error) {
	want := capability.role()
	if want == "" {
		return Decision{}, fmt.Errorf("unknown capability %q", capability)
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Decision{}, fmt.Errorf("authorize %s: %w", capability, err)
	}
	if user == nil {
		return Deny("user not found"), nil
	}
	if user.Role != want {
		return Deny(string(capability) + " access required"), nil
	}

	return Allow(), nil
}
