package aggregate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mlb_scenarios/etl/internal/models"
)

var (
	// ErrEmptyFile is returned for a scenario file with no rows
	ErrEmptyFile = errors.New("scenario file has no rows")
	// ErrMixedFile is returned when rows of one file disagree on team or year
	ErrMixedFile = errors.New("scenario file mixes teams or years")
)

// Summarize counts the scenario flags of one (team, year) file. Team and year
// come from the first row and every other row must match them. A file without
// a team column is attributed to team.
func Summarize(team string, rows []map[string]string) (models.TeamYearSummary, error) {
	if len(rows) == 0 {
		return models.TeamYearSummary{}, ErrEmptyFile
	}

	_, hasTeam := rows[0][models.ColTeam]
	if hasTeam {
		team = strings.TrimSpace(rows[0][models.ColTeam])
	}
	year, err := parseYear(rows[0][models.ColYear])
	if err != nil {
		return models.TeamYearSummary{}, err
	}

	s := models.TeamYearSummary{Team: team, Year: year}

	for i, row := range rows {
		if hasTeam {
			if t := strings.TrimSpace(row[models.ColTeam]); t != team {
				return models.TeamYearSummary{}, fmt.Errorf("%w: row %d has team %q, expected %q", ErrMixedFile, i+1, t, team)
			}
		}
		y, err := parseYear(row[models.ColYear])
		if err != nil {
			return models.TeamYearSummary{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		if y != year {
			return models.TeamYearSummary{}, fmt.Errorf("%w: row %d has year %d, expected %d", ErrMixedFile, i+1, y, year)
		}

		comeback := coerceBool(row[models.ColIsComebackScenario])
		win := coerceBool(row[models.ColFinalWin])
		lead := coerceInt(row[models.ColTeamRuns6]) - coerceInt(row[models.ColOppRuns6])

		s.IsCloseScenario += count(coerceBool(row[models.ColIsCloseScenario]))
		s.IsComebackScenario += count(comeback)
		s.NoRunsScoredLate += count(coerceBool(row[models.ColNoRunsScoredLate]))
		s.HeldGame += count(coerceBool(row[models.ColHeldGame]))
		s.ComebackWins += count(comeback && win)
		s.FinalWin += count(win)
		s.Lead12Runs6th += count(lead == 1 || lead == 2)
		s.TotalGames++
	}

	return s, nil
}

func parseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("missing year")
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unparseable year %q", raw)
	}
	return y, nil
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}
