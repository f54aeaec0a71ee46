package main

import (
	"os"

	"github.com/lppm/research-portal/internal/pkg/logger"
	"github.com/lppm/research-portal/internal/server"
)

// @title LPPM Research Portal API
// @version 1.0
// @description Research output, author and CMS management API for the LPPM portal

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Console logging until the configured logger replaces it.
	_ = logger.Configure(logger.Config{Format: "text"})

	srv, err := server.NewServer()
	if err != nil {
		// Setup failures are already logged with details by the bootstrap steps
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
