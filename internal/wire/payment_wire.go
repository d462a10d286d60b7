package wire

import (
	"plantnet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, g guards) {
	r.With(g.authenticated).Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
}

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler, g guards) {
	r.With(g.authenticated, g.admin).Get("/stats", statsHandler.GetStats)
}
