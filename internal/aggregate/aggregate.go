// Package aggregate rolls per-(team, year) scenario files up into yearly
// summary tables.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"mlb_scenarios/etl/internal/export"
	"mlb_scenarios/etl/internal/metrics"
	"mlb_scenarios/etl/internal/models"

	"github.com/rs/zerolog/log"
)

// Stage is the metrics label of this stage
const Stage = "aggregate"

// RecordSource lists and reads scenario files
type RecordSource interface {
	ListFiles(team string) ([]string, error)
	Load(path string) ([]map[string]string, error)
}

// SummaryWriter persists yearly summaries
type SummaryWriter interface {
	SaveTeam(team string, summaries []models.TeamYearSummary) (string, error)
	SaveCombined(summaries []models.TeamYearSummary) (string, error)
}

// Options selects what one aggregation run covers
type Options struct {
	RunID        string
	Teams        []string // Team abbreviations, in output order
	WorkbookPath string   // Workbook export is skipped when empty
}

// Result describes the files an aggregation run wrote
type Result struct {
	Summaries    []models.TeamYearSummary
	TeamFiles    []string
	CombinedPath string
	WorkbookPath string
}

// Aggregator runs the aggregation stage
type Aggregator struct {
	records   RecordSource
	summaries SummaryWriter
}

// New creates an Aggregator
func New(records RecordSource, summaries SummaryWriter) *Aggregator {
	return &Aggregator{
		records:   records,
		summaries: summaries,
	}
}

// SummarizeFile loads one scenario file of team and summarizes it
func (a *Aggregator) SummarizeFile(team, path string) (models.TeamYearSummary, error) {
	rows, err := a.records.Load(path)
	if err != nil {
		return models.TeamYearSummary{}, err
	}
	s, err := Summarize(team, rows)
	if err != nil {
		return models.TeamYearSummary{}, fmt.Errorf("failed to summarize %s: %w", path, err)
	}
	return s, nil
}

// SummarizeTeam summarizes every scenario file of one team in file order
func (a *Aggregator) SummarizeTeam(team string) ([]models.TeamYearSummary, error) {
	files, err := a.records.ListFiles(team)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TeamYearSummary, 0, len(files))
	for _, path := range files {
		s, err := a.SummarizeFile(team, path)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Run writes one summary file per team and the combined file. Any read or
// coercion failure aborts the run.
func (a *Aggregator) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStage(Stage, time.Since(start).Seconds())
	}()

	log.Info().
		Str("run_id", opts.RunID).
		Int("teams", len(opts.Teams)).
		Msg("Starting aggregation")

	result := &Result{}

	for _, team := range opts.Teams {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summaries, err := a.SummarizeTeam(team)
		if err != nil {
			metrics.RecordUnit(Stage, string(models.StatusFailed))
			log.Error().Err(err).Str("run_id", opts.RunID).Str("team", team).Msg("Aggregation failed")
			return nil, fmt.Errorf("failed to aggregate %s: %w", team, err)
		}

		path, err := a.summaries.SaveTeam(team, summaries)
		if err != nil {
			metrics.RecordUnit(Stage, string(models.StatusFailed))
			return nil, err
		}
		metrics.RecordUnit(Stage, string(models.StatusSuccess))

		if len(summaries) == 0 {
			log.Warn().Str("run_id", opts.RunID).Str("team", team).Msg("No scenario files for team")
		}

		result.TeamFiles = append(result.TeamFiles, path)
		result.Summaries = append(result.Summaries, summaries...)
	}

	path, err := a.summaries.SaveCombined(result.Summaries)
	if err != nil {
		return nil, err
	}
	result.CombinedPath = path

	if opts.WorkbookPath != "" {
		if err := export.WriteWorkbook(opts.WorkbookPath, result.Summaries); err != nil {
			return nil, err
		}
		result.WorkbookPath = opts.WorkbookPath
	}

	log.Info().
		Str("run_id", opts.RunID).
		Int("summaries", len(result.Summaries)).
		Str("combined", result.CombinedPath).
		Dur("duration", time.Since(start)).
		Msg("Aggregation complete")

	return result, nil
}
