package middleware

import (
	"net/http"
	"strings"

	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

// tokenFromRequest reads the credential cookie, falling back to a Bearer header.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Authenticate verifies the session credential and stores the caller's email in the context.
func Authenticate(auth usecase.AuthService, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, "unauthorized access")
				return
			}

			email, err := auth.VerifyCredential(token)
			if err != nil {
				logger.Warn("Invalid credential",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), email)))
		})
	}
}

// RequireCapability evaluates the capability predicate against the stored role
// before dispatching. It must run after Authenticate.
func RequireCapability(auth usecase.AuthService, capability usecase.Capability, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := utils.GetEmailFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "unauthorized access")
				return
			}

			decision, err := auth.Authorize(r.Context(), email, capability)
			if err != nil {
				logger.Error("Capability check failed",
					zap.Error(err),
					zap.String("email", email),
					zap.String("capability", string(capability)))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !decision.Allowed {
				logger.Warn("Capability denied",
					zap.String("email", email),
					zap.String("capability", string(capability)),
					zap.String("reason", decision.Reason),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "forbidden access: "+decision.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
