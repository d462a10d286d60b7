package wire

import (
	"plantnet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.authenticated)

		r.Post("/order", orderHandler.PlaceOrder)
		r.Get("/customer-order/{email}", orderHandler.GetCustomerOrders)
		r.Delete("/order-cancle/{id}", orderHandler.CustomerCancel)
	})

	r.Group(func(r chi.Router) {
		r.Use(g.authenticated, g.seller)

		r.Get("/manage-order/{email}", orderHandler.GetSellerOrders)
		r.Patch("/manage-order/status/{id}", orderHandler.UpdateStatus)
		r.Delete("/manage-order/{id}", orderHandler.SellerCancel)
	})
}
