package adaptor

import (
	"encoding/json"
	"net/http"

	"plantnet/internal/dto/request"
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PlantHandler struct {
	service usecase.PlantService
	log     *zap.Logger
}

func NewPlantHandler(service usecase.PlantService, log *zap.Logger) *PlantHandler {
	return &PlantHandler{
		service: service,
		log:     log.With(zap.String("handler", "plant")),
	}
}

// CreatePlant handles POST /plants
func (h *PlantHandler) CreatePlant(w http.ResponseWriter, r *http.Request) {
	seller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req request.CreatePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	created, err := h.service.CreatePlant(r.Context(), seller, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create plant")
		return
	}

	utils.ResponseCreated(w, "Plant created", created)
}

// GetPlants handles GET /plants
func (h *PlantHandler) GetPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := h.service.GetAllPlants(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get plants")
		return
	}

	utils.ResponseSuccess(w, "success", plants)
}

// GetPlant handles GET /plants/{id}
func (h *PlantHandler) GetPlant(w http.ResponseWriter, r *http.Request) {
	plant, err := h.service.GetPlantByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get plant")
		return
	}

	utils.ResponseSuccess(w, "success", plant)
}

// GetSellerPlants handles GET /seller/plants
func (h *PlantHandler) GetSellerPlants(w http.ResponseWriter, r *http.Request) {
	seller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	plants, err := h.service.GetSellerPlants(r.Context(), seller)
	if err != nil {
		handleServiceError(h.log, w, err, "get seller plants")
		return
	}

	utils.ResponseSuccess(w, "success", plants)
}

// UpdateQuantity handles PATCH /plants/quantity/{id}
func (h *PlantHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(h.log, w, err, "update quantity")
		return
	}

	utils.ResponseSuccess(w, "Quantity updated", nil)
}

// DeletePlant handles DELETE /plants/{id}
func (h *PlantHandler) DeletePlant(w http.ResponseWriter, r *http.Request) {
	seller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlant(r.Context(), chi.URLParam(r, "id"), seller); err != nil {
		handleServiceError(h.log, w, err, "delete plant")
		return
	}

	utils.ResponseSuccess(w, "Plant deleted", nil)
}
