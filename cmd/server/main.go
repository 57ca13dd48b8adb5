package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/devrahulm/vidtube-server/internal/api"
	"github.com/devrahulm/vidtube-server/internal/api/handlers"
	"github.com/devrahulm/vidtube-server/internal/config"
	"github.com/devrahulm/vidtube-server/internal/logger"
	"github.com/devrahulm/vidtube-server/internal/repositories"
	"github.com/devrahulm/vidtube-server/internal/services"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputPath: cfg.Log.OutputPath,
		MaxSizeMB:  50,
		MaxBackups: 5,
		MaxAgeDays: 30,
	})

	db, err := repositories.Connect(cfg.DBURL)
	if err != nil {
		logger.Fatal("database connection failed", logger.ErrorField(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			logger.Error("failed to close database", logger.ErrorField(err))
		}
	}()

	userRepo := repositories.NewUserRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	assetStore := repositories.NewS3AssetStore(cfg.S3)

	tokenService := services.NewTokenService(userRepo, cfg.Tokens)
	sessionService := services.NewSessionService(userRepo, tokenService, assetStore)
	channelService := services.NewChannelService(userRepo, subscriptionRepo)

	handler := handlers.New(sessionService, channelService, cfg)
	router := api.SetupRouter(handler, tokenService, cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("starting vidtube server", logger.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", logger.ErrorField(err))
	}
}
