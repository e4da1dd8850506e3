package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Management API
// @version 1.0
// @description Guests, rooms, reservations, amenities and staff sessions.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
