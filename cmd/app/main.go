package main

import (
	"bilateral/config"
	"bilateral/di"
	"bilateral/helper"
	"bilateral/shared/constant"
	"bilateral/shared/logger"
	"context"

	"github.com/rs/zerolog/log"
)

// @title						Bilateral Meeting Booking API
// @version					1.0
// @description				Books bilateral meeting slots for delegations and notifies the organizer.
// @BasePath					/
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	switch {
	case cfg.DB.Driver == constant.DBDriverPostgres && cfg.DB.Postgres.AutoMigrate:
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	case cfg.DB.Driver == constant.DBDriverMemory:
		if _, err := di.InitializeSeeder().Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed memory store")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
