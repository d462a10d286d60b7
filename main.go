package main

import (
	"context"
	"log"
	"time"

	"plantnet/cmd"
	"plantnet/internal/data/repository"
	"plantnet/internal/wire"
	"plantnet/pkg/credential"
	"plantnet/pkg/database"
	"plantnet/pkg/notifier"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// prices travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("env", config.App.Env),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	deps := wire.Deps{
		DB:       db,
		Repo:     repository.NewRepository(db, logger),
		Gateway:  payment.New(config.Payment.StripeSecretKey, logger),
		Notifier: notifier.New(config.Email, logger),
		Signer:   credential.NewSigner(config.JWT.Secret, time.Duration(config.JWT.ExpiryDays)*24*time.Hour),
	}

	app := wire.Wiring(deps, config, logger)

	if err := cmd.APIServer(app.Router, config.App, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
