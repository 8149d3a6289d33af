package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"mlb_scenarios/etl/internal/models"

	"github.com/rs/zerolog/log"
)

// RecordRepository handles per-(team, year) scenario files
type RecordRepository struct {
	dir string
}

// NewRecordRepository creates a repository rooted at dir
func NewRecordRepository(dir string) *RecordRepository {
	return &RecordRepository{dir: dir}
}

// Path returns the scenario file path for a team and year
func (r *RecordRepository) Path(team string, year int) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%d_scenarios.csv", team, year))
}

// Save replaces the scenario file for a team and year with records
func (r *RecordRepository) Save(team string, year int, records []models.GameRecord) (string, error) {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Row()
	}

	path := r.Path(team, year)
	if err := writeCSV(path, models.GameRecordColumns, rows); err != nil {
		return "", fmt.Errorf("failed to save scenarios for %s %d: %w", team, year, err)
	}

	log.Debug().
		Str("team", team).
		Int("year", year).
		Int("records", len(records)).
		Str("path", path).
		Msg("Saved scenario file")

	return path, nil
}

// Remove deletes the scenario file for a team and year. A missing file is not an error.
func (r *RecordRepository) Remove(team string, year int) error {
	path := r.Path(team, year)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to remove scenarios for %s %d: %w", team, year, err)
	}

	log.Debug().
		Str("team", team).
		Int("year", year).
		Str("path", path).
		Msg("Removed scenario file")

	return nil
}

// ListFiles returns the team's scenario files in lexical order
func (r *RecordRepository) ListFiles(team string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, team+"_*_scenarios.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario files for %s: %w", team, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads a scenario file into rows keyed by column name.
// Values are left as text; callers coerce them.
func (r *RecordRepository) Load(path string) ([]map[string]string, error) {
	_, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
