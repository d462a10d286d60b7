package wire

import (
	"context"
	"net/http"
	"time"

	"plantnet/internal/adaptor"
	"plantnet/internal/data/repository"
	"plantnet/internal/usecase"
	"plantnet/pkg/credential"
	"plantnet/pkg/database"
	"plantnet/pkg/middleware"
	"plantnet/pkg/notifier"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the collaborators constructed in main and injected here.
type Deps struct {
	DB       database.PgxIface
	Repo     *repository.Repository
	Gateway  payment.Gateway
	Notifier notifier.Notifier
	Signer   *credential.Signer
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Gateway, deps.Notifier, deps.Signer, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, service, deps.DB, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// guards bundles the authentication and capability middleware used by the route files.
type guards struct {
	authenticated func(http.Handler) http.Handler
	admin         func(http.Handler) http.Handler
	seller        func(http.Handler) http.Handler
}

func newGuards(auth usecase.AuthService, config *utils.Config, log *zap.Logger) guards {
	return guards{
		authenticated: middleware.Authenticate(auth, config.JWT.CookieName, log),
		admin:         middleware.RequireCapability(auth, usecase.CapabilityAdmin, log),
		seller:        middleware.RequireCapability(auth, usecase.CapabilitySeller, log),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	db database.PgxIface,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.NewRateLimiter(config.App.RateLimitRPS, config.App.RateLimitBurst, logger).Middleware())
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	g := newGuards(service.Auth, config, logger)

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, g)
	wirePlant(r, handler.Plant, g)
	wireOrder(r, handler.Order, g)
	wirePayment(r, handler.Payment, g)
	wireStats(r, handler.Stats, g)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Hello from plantNet Server..", nil)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseServiceUnavailable(w, "database unavailable")
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
