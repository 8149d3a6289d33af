// Command aggregate rolls scenario files up into per-team and combined yearly summaries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

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

	runner, err := pipeline.NewRunnerFromConfig(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid run options")
	}

	result, err := runner.Aggregate(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Aggregation failed")
	}

	log.Info().
		Str("combined", result.CombinedPath).
		Str("workbook", result.WorkbookPath).
		Msg("Summaries written")
}
