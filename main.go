package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"kycboard/internal/api"
	"kycboard/internal/auth"
	"kycboard/internal/config"
	"kycboard/internal/database"
	"kycboard/internal/ledger"
	"kycboard/internal/logger"
	"kycboard/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	if err := database.SeedAdmin(db, cfg.AdminMobile, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	// Set up services
	registrations := ledger.NewRecorder(cfg.LedgerPath)
	userService := services.NewUserService(db, registrations)
	imageService := services.NewImageService(db, cfg.UploadDir, cfg.MaxImagesPerUser)

	// Set up sessions and router
	sessions := auth.NewSessionManager(cfg.SessionSecret)
	router := api.NewRouter(sessions, userService, imageService, cfg.MaxUploadBytes)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
