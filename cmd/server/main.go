package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/router"
	"github.com/pacifora/sahabat-ktb/backend/pkg/config"
	"github.com/pacifora/sahabat-ktb/backend/pkg/firebase"
	"github.com/pacifora/sahabat-ktb/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open both stores
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.Close()

	// Firebase auth client for Google sign-in
	ctx := context.Background()
	firebaseAuth, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuth)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
