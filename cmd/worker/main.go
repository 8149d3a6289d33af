package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mlb_scenarios/etl/internal/cache"
	"mlb_scenarios/etl/internal/client"
	"mlb_scenarios/etl/internal/config"
	"mlb_scenarios/etl/internal/logging"
	"mlb_scenarios/etl/internal/metrics"
	"mlb_scenarios/etl/internal/pipeline"
	"mlb_scenarios/etl/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	logging.SetupFromEnv()

	log.Info().Msg("Starting MLB scenario pipeline worker")

	// Load configuration
	cfg := config.MustLoad()
	logging.Setup(cfg.AppEnv, cfg.LogLevel)
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Int("season_start", cfg.SeasonStartYear).
		Int("season_end", cfg.SeasonEndYear).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Initialize Redis client
	var responseCache client.Cache
	var redisCache *cache.RedisCache
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
			redisCache = rc
			responseCache = rc
			log.Info().Msg("Redis cache connected")
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
	log.Info().
		Int("teams", len(opts.Teams)).
		Int("years", len(opts.Years)).
		Msg("Pipeline initialized")

	// Start metrics HTTP server
	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort, redisCache)
	}

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	sched := scheduler.NewScheduler(cfg.PipelineCron, func(ctx context.Context) error {
		_, err := runner.Run(ctx, opts)
		return err
	})

	if cfg.EnableScheduler {
		log.Info().Msg("Starting scheduler...")
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	// Run once on start-up if enabled
	if cfg.RunOnStart {
		sched.Trigger(ctx)
	}

	if !cfg.EnableScheduler {
		log.Info().Msg("Scheduler disabled, exiting")
		return
	}

	// Keep running until context is cancelled
	<-ctx.Done()

	// Graceful shutdown
	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int, rc *cache.RedisCache) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if rc != nil {
			if err := rc.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"degraded","cache":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
