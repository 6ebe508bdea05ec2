package main

import (
	"time"

	"carelink/internal/auth"
	"carelink/internal/config"
	"carelink/internal/database"
	"carelink/internal/handlers"
	"carelink/internal/routes"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on system environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	db, err := database.OpenDB(cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.WithError(err).Fatal("failed to initialize schema")
	}
	if err := database.SeedLookups(db); err != nil {
		log.WithError(err).Fatal("failed to seed lookup tables")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	app := &handlers.Handlers{
		DB:     db,
		Tokens: tokens,
	}

	router := routes.SetupRouter(app, tokens, cfg.CORSOrigin)

	log.WithField("port", cfg.Port).Info("starting carelink API server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
