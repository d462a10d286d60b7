package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"plantnet/internal/dto/request"
	"plantnet/internal/dto/response"
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service    usecase.AuthService
	cookieName string
	production bool
	log        *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookieName: config.JWT.CookieName,
		production: config.App.IsProduction(),
		log:        log.With(zap.String("handler", "auth")),
	}
}

// Secure and SameSite=None only in production so local http front-ends keep working.
func (h *AuthHandler) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// IssueToken handles POST /jwt
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req request.IssueTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	token, expiresAt, err := h.service.IssueCredential(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "issue token")
		return
	}

	http.SetCookie(w, h.cookie(token, expiresAt, 0))
	utils.ResponseSuccess(w, "Token issued", response.TokenResponse{Success: true, ExpiresAt: expiresAt})
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", time.Unix(0, 0), -1))
	utils.ResponseSuccess(w, "Logout successful", response.TokenResponse{Success: true})
}
