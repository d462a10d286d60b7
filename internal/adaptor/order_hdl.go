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

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// PlaceOrder handles POST /order
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	customer, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req request.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	created, err := h.service.PlaceOrder(r.Context(), customer, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "place order")
		return
	}

	utils.ResponseCreated(w, "Order placed", created)
}

// GetCustomerOrders handles GET /customer-order/{email}
func (h *OrderHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListForCustomer(r.Context(), caller, chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// GetSellerOrders handles GET /manage-order/{email}
func (h *OrderHandler) GetSellerOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListForSeller(r.Context(), caller, chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(h.log, w, err, "get seller orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// UpdateStatus handles PATCH /manage-order/status/{id}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	seller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetStatus(r.Context(), chi.URLParam(r, "id"), seller, &req); err != nil {
		handleServiceError(h.log, w, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", nil)
}

// SellerCancel handles DELETE /manage-order/{id}
func (h *OrderHandler) SellerCancel(w http.ResponseWriter, r *http.Request) {
	seller, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelAsSeller(r.Context(), chi.URLParam(r, "id"), seller); err != nil {
		handleServiceError(h.log, w, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", nil)
}

// CustomerCancel handles DELETE /order-cancle/{id}
func (h *OrderHandler) CustomerCancel(w http.ResponseWriter, r *http.Request) {
	customer, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelAsCustomer(r.Context(), chi.URLParam(r, "id"), customer); err != nil {
		handleServiceError(h.log, w, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", nil)
}
