package main

import (
	"bilateral/config"
	"bilateral/di"
	"bilateral/shared/logger"
	"context"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	res, err := di.InitializeSeeder().Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	log.Info().Int("slots", res.Slots).Msg("Database seeded")
}
