package repository

import (
	"fmt"
	"path/filepath"

	"mlb_scenarios/etl/internal/models"

	"github.com/rs/zerolog/log"
)

// CombinedSummaryFile is the file name of the all-teams summary
const CombinedSummaryFile = "all_teams_yearly_summary.csv"

// SummaryRepository handles yearly summary files
type SummaryRepository struct {
	dir string
}

// NewSummaryRepository creates a repository rooted at dir
func NewSummaryRepository(dir string) *SummaryRepository {
	return &SummaryRepository{dir: dir}
}

// TeamPath returns the per-team summary file path
func (r *SummaryRepository) TeamPath(team string) string {
	return filepath.Join(r.dir, team+"_yearly_summary.csv")
}

// CombinedPath returns the all-teams summary file path
func (r *SummaryRepository) CombinedPath() string {
	return filepath.Join(r.dir, CombinedSummaryFile)
}

// SaveTeam writes one team's yearly summaries. An empty slice writes a header-only file.
func (r *SummaryRepository) SaveTeam(team string, summaries []models.TeamYearSummary) (string, error) {
	path := r.TeamPath(team)
	if err := r.save(path, summaries); err != nil {
		return "", fmt.Errorf("failed to save summary for %s: %w", team, err)
	}

	log.Debug().
		Str("team", team).
		Int("years", len(summaries)).
		Str("path", path).
		Msg("Saved team summary")

	return path, nil
}

// SaveCombined writes the all-teams summary
func (r *SummaryRepository) SaveCombined(summaries []models.TeamYearSummary) (string, error) {
	path := r.CombinedPath()
	if err := r.save(path, summaries); err != nil {
		return "", fmt.Errorf("failed to save combined summary: %w", err)
	}
	return path, nil
}

func (r *SummaryRepository) save(path string, summaries []models.TeamYearSummary) error {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = s.Row()
	}
	return writeCSV(path, models.SummaryColumns, rows)
}
