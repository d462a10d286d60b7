package wire

import (
	"plantnet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePlant(r chi.Router, plantHandler *adaptor.PlantHandler, g guards) {
	r.Get("/plants", plantHandler.GetPlants)
	r.Get("/plants/{id}", plantHandler.GetPlant)

	r.With(g.authenticated).Patch("/plants/quantity/{id}", plantHandler.UpdateQuantity)

	r.Group(func(r chi.Router) {
		r.Use(g.authenticated, g.seller)

		r.Post("/plants", plantHandler.CreatePlant)
		r.Get("/seller/plants", plantHandler.GetSellerPlants)
		r.Delete("/plants/{id}", plantHandler.DeletePlant)
	})
}
