package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"plantnet/internal/dto/request"
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// decodeSaveUser keeps name and image as typed fields and the rest of the payload as profile data.
// An empty body is an empty profile.
func decodeSaveUser(r *http.Request) (*request.SaveUserRequest, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid request body")
	}

	req := &request.SaveUserRequest{Profile: map[string]any{}}
	for key, value := range body {
		switch key {
		case "name", "image":
			str, ok := value.(string)
			if !ok && value != nil {
				return nil, fmt.Errorf("%s must be a string", key)
			}
			if key == "name" {
				req.Name = str
			} else {
				req.Image = str
			}
		case "email", "role", "status", "_id", "id":
			// server-owned fields
		default:
			req.Profile[key] = value
		}
	}
	return req, nil
}

// SaveUser handles POST /users/{email}
func (h *UserHandler) SaveUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	req, err := decodeSaveUser(r)
	if err != nil {
		h.log.Warn("Save user body rejected", zap.Error(err), zap.String("email", email))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	user, err := h.service.EnsureUser(r.Context(), email, req)
	if err != nil {
		handleServiceError(h.log, w, err, "save user")
		return
	}

	utils.ResponseSuccess(w, "User saved", user)
}

// GetRole handles GET /user/role/{email}
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetRole(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(h.log, w, err, "get role")
		return
	}

	utils.ResponseSuccess(w, "Role retrieved", role)
}

// ListUsers handles GET /users/{email}
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	users, err := h.service.ListUsersExcluding(r.Context(), caller, chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", users)
}

// RequestRole handles PATCH /users/{email}
func (h *UserHandler) RequestRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.RequestRoleChange(r.Context(), caller, chi.URLParam(r, "email")); err != nil {
		handleServiceError(h.log, w, err, "request role")
		return
	}

	utils.ResponseSuccess(w, "Role change requested", nil)
}

// ApproveRole handles PATCH /user/role/{email}
func (h *UserHandler) ApproveRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ApproveRoleChange(r.Context(), caller, chi.URLParam(r, "email"), &req); err != nil {
		handleServiceError(h.log, w, err, "approve role")
		return
	}

	utils.ResponseSuccess(w, "Role updated", nil)
}
