package adaptor

import (
	"errors"
	"net/http"

	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the service error taxonomy to HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrRoleRequestPending):
		log.Warn(operation+" failed - already requested", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrUnavailable):
		log.Error(operation+" failed - unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "service unavailable")

	case errors.Is(err, usecase.ErrUpstream):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, "upstream service failed")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// callerEmail returns the authenticated email or answers 401.
func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := utils.GetEmailFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "unauthorized access")
		return "", false
	}
	return email, true
}
