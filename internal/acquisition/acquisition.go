// Package acquisition fetches schedules and line scores per (team, year),
// derives game records and writes one scenario file per unit.
package acquisition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mlb_scenarios/etl/internal/config"
	"mlb_scenarios/etl/internal/metrics"
	"mlb_scenarios/etl/internal/models"
	"mlb_scenarios/etl/internal/scenario"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Stage is the metrics label of this stage
const Stage = "acquire"

// ScheduleSource provides a club's schedule listing (source A)
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, team models.Team, year int) (*models.ScheduleListing, error)
}

// GameSource provides the game index and line scores (source B)
type GameSource interface {
	FetchGames(ctx context.Context, teamID, sportID int, start, end time.Time) ([]models.GameSummary, error)
	FetchLinescore(ctx context.Context, gameID int) (*models.Linescore, error)
}

// RecordWriter persists the game records of one unit
type RecordWriter interface {
	Save(team string, year int, records []models.GameRecord) (string, error)
	Remove(team string, year int) error
}

// Options selects what one acquisition run covers
type Options struct {
	RunID   string // Generated when empty
	Teams   []models.Team
	Years   []int
	SportID int
	Policy  MergePolicy
	Window  func(year int) (config.SeasonWindow, error)
}

// Acquirer runs the acquisition stage
type Acquirer struct {
	schedules ScheduleSource
	games     GameSource
	records   RecordWriter
}

// New creates an Acquirer
func New(schedules ScheduleSource, games GameSource, records RecordWriter) *Acquirer {
	return &Acquirer{
		schedules: schedules,
		games:     games,
		records:   records,
	}
}

// Run processes every (team, year) in order. Unit failures are recorded in the
// report and the run continues; the returned error is non-nil only for invalid
// options or when ctx is cancelled, in which case the partial report is returned.
func (a *Acquirer) Run(ctx context.Context, opts Options) (*models.RunReport, error) {
	if opts.Window == nil {
		return nil, fmt.Errorf("season window not configured")
	}
	if opts.Policy == "" {
		opts.Policy = PolicyKeepFirst
	}
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}

	start := time.Now()
	report := &models.RunReport{RunID: opts.RunID}

	log.Info().
		Str("run_id", opts.RunID).
		Int("teams", len(opts.Teams)).
		Int("years", len(opts.Years)).
		Msg("Starting acquisition")

	defer func() {
		metrics.RecordStage(Stage, time.Since(start).Seconds())
	}()

	for _, team := range opts.Teams {
		for _, year := range opts.Years {
			if err := ctx.Err(); err != nil {
				log.Warn().
					Str("run_id", opts.RunID).
					Int("completed_units", len(report.Units)).
					Msg("Acquisition cancelled")
				return report, err
			}

			unit := a.RunUnit(ctx, opts, team, year)
			report.Add(unit)
			metrics.RecordUnit(Stage, string(unit.Status))
		}
	}

	log.Info().
		Str("run_id", opts.RunID).
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("games_failed", report.GamesFailed()).
		Int("records", report.RecordsWritten()).
		Dur("duration", time.Since(start)).
		Msg("Acquisition complete")

	return report, nil
}

// RunUnit acquires one (team, year). It never returns an error; failures are
// carried in the result.
func (a *Acquirer) RunUnit(ctx context.Context, opts Options, team models.Team, year int) models.UnitResult {
	unit := models.UnitResult{
		Team:   team.Abbreviation,
		Year:   year,
		Status: models.StatusSuccess,
	}

	logger := log.With().
		Str("run_id", opts.RunID).
		Str("team", team.Abbreviation).
		Int("year", year).
		Logger()

	fail := func(err error) models.UnitResult {
		unit.Status = models.StatusFailed
		unit.Reason = err.Error()
		logger.Error().Err(err).Msg("Unit failed")
		return unit
	}

	window, err := opts.Window(year)
	if err != nil {
		return fail(err)
	}

	listing, err := a.schedules.FetchSchedule(ctx, team, year)
	if err != nil {
		return fail(fmt.Errorf("failed to fetch schedule: %w", err))
	}
	unit.DroppedScheduleRows = listing.Dropped
	metrics.RecordDroppedScheduleRows(listing.Dropped)

	index, err := a.games.FetchGames(ctx, team.TeamID, opts.SportID, window.Start, window.End)
	if err != nil {
		return fail(fmt.Errorf("failed to fetch game index: %w", err))
	}

	regular := make([]models.GameSummary, 0, len(index))
	for _, g := range index {
		if g.IsRegularSeason() && g.IsCompleted() {
			regular = append(regular, g)
		}
	}

	merged, err := Merge(team, year, listing.Records, regular, opts.Policy)
	if err != nil {
		return fail(err)
	}
	unit.Conflicts = merged.Conflicts
	unit.Games = len(merged.Games)
	metrics.RecordMergeConflicts(merged.Conflicts)

	logger.Debug().
		Int("schedule_rows", len(listing.Records)).
		Int("dropped_rows", listing.Dropped).
		Int("index_games", len(regular)).
		Int("merged_games", len(merged.Games)).
		Msg("Merged schedule with game index")

	records := make([]models.GameRecord, 0, len(merged.Games))
	for _, game := range merged.Games {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("cancelled after %d of %d games: %w", len(records)+len(unit.Failures), len(merged.Games), err))
		}

		ls, err := a.games.FetchLinescore(ctx, game.GameID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return fail(fmt.Errorf("cancelled while fetching game %d: %w", game.GameID, err))
			}
			unit.Failures = append(unit.Failures, models.GameResult{
				GameID: game.GameID,
				Status: models.StatusFailed,
				Reason: err.Error(),
			})
			metrics.RecordGame(string(models.StatusFailed))
			logger.Warn().Err(err).Int("game_id", game.GameID).Msg("Failed to fetch line score, skipping game")
			continue
		}

		records = append(records, scenario.Derive(game, ls.Innings))
		metrics.RecordGame(string(models.StatusSuccess))
	}

	if len(records) == 0 {
		// A file left over from an earlier run would otherwise be aggregated as current
		if err := a.records.Remove(team.Abbreviation, year); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove stale scenario file")
		}
		return fail(fmt.Errorf("no game records derived from %d merged games", len(merged.Games)))
	}

	path, err := a.records.Save(team.Abbreviation, year, records)
	if err != nil {
		return fail(err)
	}
	unit.Path = path
	unit.Records = len(records)

	logger.Info().
		Int("records", len(records)).
		Int("games_failed", len(unit.Failures)).
		Int("conflicts", unit.Conflicts).
		Str("path", path).
		Msg("Unit complete")

	return unit
}
