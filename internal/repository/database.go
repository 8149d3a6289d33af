package repository

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Store holds the output directories and provides access to repositories
type Store struct {
	ScenarioDir string
	SummaryDir  string

	// Repositories
	Records   *RecordRepository
	Summaries *SummaryRepository
}

// Config holds store configuration
type Config struct {
	ScenarioDir string
	SummaryDir  string
}

// NewStore creates the output directories and initializes repositories
func NewStore(cfg Config) (*Store, error) {
	for _, dir := range []string{cfg.ScenarioDir, cfg.SummaryDir} {
		if dir == "" {
			return nil, fmt.Errorf("output directory not configured")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	log.Debug().
		Str("scenario_dir", cfg.ScenarioDir).
		Str("summary_dir", cfg.SummaryDir).
		Msg("Output store ready")

	s := &Store{
		ScenarioDir: cfg.ScenarioDir,
		SummaryDir:  cfg.SummaryDir,
	}

	s.Records = NewRecordRepository(cfg.ScenarioDir)
	s.Summaries = NewSummaryRepository(cfg.SummaryDir)

	return s, nil
}
