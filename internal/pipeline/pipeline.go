// Package pipeline wires the acquisition and aggregation stages together.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"mlb_scenarios/etl/internal/acquisition"
	"mlb_scenarios/etl/internal/aggregate"
	"mlb_scenarios/etl/internal/client"
	"mlb_scenarios/etl/internal/config"
	"mlb_scenarios/etl/internal/export"
	"mlb_scenarios/etl/internal/metrics"
	"mlb_scenarios/etl/internal/models"
	"mlb_scenarios/etl/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Options is everything a run needs to know about what to cover
type Options struct {
	RunID        string
	Teams        []models.Team
	Years        []int
	SportID      int
	Window       func(year int) (config.SeasonWindow, error)
	Policy       acquisition.MergePolicy
	ScenarioDir  string
	SummaryDir   string
	WorkbookPath string // Empty disables the workbook export
}

// OptionsFromConfig builds run options from configuration
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	teams, err := models.FilterTeams(models.DefaultTeams(), cfg.Teams)
	if err != nil {
		return Options{}, err
	}

	policy, err := acquisition.ParsePolicy(cfg.MergeConflictPolicy)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Teams:       teams,
		Years:       cfg.Years(),
		SportID:     cfg.SportID,
		Window:      cfg.WindowFor,
		Policy:      policy,
		ScenarioDir: cfg.ScenarioDir,
		SummaryDir:  cfg.SummaryDir,
	}
	if cfg.ExportWorkbook {
		opts.WorkbookPath = filepath.Join(cfg.SummaryDir, export.WorkbookFile)
	}
	return opts, nil
}

// Acquisition returns the acquisition stage options
func (o Options) Acquisition() acquisition.Options {
	return acquisition.Options{
		RunID:   o.RunID,
		Teams:   o.Teams,
		Years:   o.Years,
		SportID: o.SportID,
		Policy:  o.Policy,
		Window:  o.Window,
	}
}

// Aggregation returns the aggregation stage options
func (o Options) Aggregation() aggregate.Options {
	abbrs := make([]string, len(o.Teams))
	for i, t := range o.Teams {
		abbrs[i] = t.Abbreviation
	}
	return aggregate.Options{
		RunID:        o.RunID,
		Teams:        abbrs,
		WorkbookPath: o.WorkbookPath,
	}
}

// Report is the outcome of a full pipeline run
type Report struct {
	RunID       string
	Acquisition *models.RunReport
	Aggregation *aggregate.Result
}

// Runner runs both stages in order
type Runner struct {
	acquirer   *acquisition.Acquirer
	aggregator *aggregate.Aggregator
}

// NewRunner creates a Runner from its stages
func NewRunner(acquirer *acquisition.Acquirer, aggregator *aggregate.Aggregator) *Runner {
	return &Runner{
		acquirer:   acquirer,
		aggregator: aggregator,
	}
}

// NewRunnerFromConfig wires clients and the output store from configuration.
// cache may be nil.
func NewRunnerFromConfig(cfg *config.Config, cache client.Cache) (*Runner, error) {
	store, err := repository.NewStore(repository.Config{
		ScenarioDir: cfg.ScenarioDir,
		SummaryDir:  cfg.SummaryDir,
	})
	if err != nil {
		return nil, err
	}

	stats := client.NewStatsClient(cfg.StatsAPIBaseURL, cfg.UserAgent, cfg.HTTPTimeout)
	if cache != nil {
		stats = stats.WithCache(cache, cfg.CacheTTL)
	}
	schedules := client.NewScheduleClient(cfg.ScheduleBaseURL, cfg.UserAgent, cfg.HTTPTimeout)

	return NewRunner(
		acquisition.New(schedules, stats, store.Records),
		aggregate.New(store.Records, store.Summaries),
	), nil
}

func withRunID(opts Options) Options {
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	return opts
}

// Acquire runs the acquisition stage alone
func (r *Runner) Acquire(ctx context.Context, opts Options) (*models.RunReport, error) {
	return r.acquirer.Run(ctx, withRunID(opts).Acquisition())
}

// Aggregate runs the aggregation stage alone
func (r *Runner) Aggregate(ctx context.Context, opts Options) (*aggregate.Result, error) {
	return r.aggregator.Run(ctx, withRunID(opts).Aggregation())
}

// Run acquires every (team, year) and then aggregates. Failed acquisition
// units do not stop aggregation; cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withRunID(opts)
	start := time.Now()
	report := &Report{RunID: opts.RunID}

	acq, err := r.acquirer.Run(ctx, opts.Acquisition())
	report.Acquisition = acq
	if err != nil {
		return report, fmt.Errorf("acquisition stopped: %w", err)
	}

	agg, err := r.aggregator.Run(ctx, opts.Aggregation())
	if err != nil {
		return report, fmt.Errorf("aggregation failed: %w", err)
	}
	report.Aggregation = agg

	metrics.RecordRunSuccess()
	log.Info().
		Str("run_id", opts.RunID).
		Int("units_failed", acq.Failed()).
		Int("summaries", len(agg.Summaries)).
		Dur("duration", time.Since(start)).
		Msg("Pipeline run complete")

	return report, nil
}
