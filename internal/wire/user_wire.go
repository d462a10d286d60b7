package wire

import (
	"plantnet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	// first contact from the client after sign-in, no credential yet
	r.Post("/users/{email}", userHandler.SaveUser)

	r.With(g.authenticated).Get("/user/role/{email}", userHandler.GetRole)
	r.With(g.authenticated).Patch("/users/{email}", userHandler.RequestRole)

	r.With(g.authenticated, g.admin).Get("/users/{email}", userHandler.ListUsers)
	r.With(g.authenticated, g.admin).Patch("/user/role/{email}", userHandler.ApproveRole)
}
