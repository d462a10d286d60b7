package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plantnet/internal/usecase"

	"go.uber.org/zap"
)

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: admin access required", usecase.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("plant x %w", usecase.ErrNotFound), http.StatusNotFound},
		{usecase.ErrRoleRequestPending, http.StatusBadRequest},
		{fmt.Errorf("%w: bad id", usecase.ErrInvalidInput), http.StatusBadRequest},
		{usecase.ErrRoleNotRequested, http.StatusConflict},
		{usecase.ErrOrderDelivered, http.StatusConflict},
		{usecase.ErrInsufficientStock, http.StatusConflict},
		{usecase.ErrOrderFinal, http.StatusConflict},
		{fmt.Errorf("%w: no key", usecase.ErrUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: stripe", usecase.ErrUpstream), http.StatusBadGateway},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), rec, tt.err, "test")
			if rec.Code != tt.want {
				t.Errorf("code = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestInternalErrorsHideDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, errors.New("password=hunter2 rejected"), "test")

	if body := rec.Body.String(); body == "" || strings.Contains(body, "hunter2") {
		t.Errorf("body leaks internal error: %s", body)
	}
}
