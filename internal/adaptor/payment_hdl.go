package adaptor

import (
	"encoding/json"
	"net/http"

	"plantnet/internal/dto/request"
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	customer, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req request.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), customer, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, "Payment intent created", intent)
}
