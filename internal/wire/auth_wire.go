package wire

import (
	"plantnet/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/logout", authHandler.Logout)
}
