// Command acquire fetches schedules and line scores for every configured
// (team, year) and writes one scenario file per unit.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"mlb_scenarios/etl/internal/cache"
	"mlb_scenarios/etl/internal/client"
	"mlb_scenarios/etl/internal/config"
	"mlb_scenarios/etl/internal/logging"
	"mlb_scenarios/etl/internal/pipeline"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.MustLoad()
	logging.Setup(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var responseCache client.Cache
	if cfg.CacheEnabled {
		rc, err := cache.NewRedisCache(cache.Config{
			Host:     cfg.RedisHost,
			Port:     strconv.Itoa(cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer rc.Close()
			responseCache = rc
		}
	}

	runner, err := pipeline.NewRunnerFromConfig(cfg, responseCache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid run options")
	}

	report, err := runner.Acquire(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("Acquisition stopped early")
		os.Exit(1)
	}

	for _, u := range report.Units {
		if !u.OK() {
			log.Warn().Str("team", u.Team).Int("year", u.Year).Str("reason", u.Reason).Msg("Unit failed")
		}
	}
}
