package main

import (
	"os"

	"github.com/oguzk/courseapi/internal/pkg/logger" // Still needed for initial error logging
	"github.com/oguzk/courseapi/internal/server"
)

// @title Course API
// @version 1.0
// @description REST API for course content, enrollments, completions and social metrics

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Edx-Api-Key
// @description Shared secret every client must present

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for session endpoints

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
