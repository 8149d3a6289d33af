package acquisition

import (
	"errors"
	"fmt"

	"mlb_scenarios/etl/internal/models"

	"github.com/rs/zerolog/log"
)

// MergePolicy decides what happens when the game index repeats a game id
type MergePolicy string

const (
	// PolicyKeepFirst keeps the first occurrence and counts a conflict
	PolicyKeepFirst MergePolicy = "keep-first"
	// PolicyError fails the unit
	PolicyError MergePolicy = "error"
)

// ErrMergeConflict is returned under PolicyError when a game id appears twice
var ErrMergeConflict = errors.New("duplicate game id in game index")

// ParsePolicy converts a configured policy name
func ParsePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(s) {
	case "", PolicyKeepFirst:
		return PolicyKeepFirst, nil
	case PolicyError:
		return PolicyError, nil
	default:
		return "", fmt.Errorf("unknown merge conflict policy %q", s)
	}
}

// MergeResult holds the reconciled games of one (team, year)
type MergeResult struct {
	Games     []models.MergedGame
	Conflicts int
}

type mergeKey struct {
	date string
	team string
}

// Merge joins the team's schedule listing with the game index on (date, team).
// A game is kept when the team played in it on a listed date. Output follows
// game index order with at most one entry per game id.
func Merge(team models.Team, year int, schedule []models.ScheduleRecord, games []models.GameSummary, policy MergePolicy) (*MergeResult, error) {
	keys := make(map[mergeKey]struct{}, len(schedule))
	for _, rec := range schedule {
		if rec.Team != team.Abbreviation {
			continue
		}
		keys[mergeKey{date: rec.Date.Format(models.DateLayout), team: rec.Team}] = struct{}{}
	}

	result := &MergeResult{}
	seen := make(map[int]struct{}, len(games))

	for _, g := range games {
		if !g.Involves(team) {
			continue
		}
		if _, ok := keys[mergeKey{date: g.Date.Format(models.DateLayout), team: team.Abbreviation}]; !ok {
			continue
		}

		if _, dup := seen[g.GameID]; dup {
			if policy == PolicyError {
				return nil, fmt.Errorf("%w: game %d for %s %d", ErrMergeConflict, g.GameID, team.Abbreviation, year)
			}
			result.Conflicts++
			log.Warn().
				Str("team", team.Abbreviation).
				Int("year", year).
				Int("game_id", g.GameID).
				Str("date", g.Date.Format(models.DateLayout)).
				Msg("Duplicate game id in game index, keeping first")
			continue
		}
		seen[g.GameID] = struct{}{}

		result.Games = append(result.Games, models.MergedGame{
			GameSummary: g,
			Team:        team.Abbreviation,
			Year:        year,
			IsHome:      g.IsHomeFor(team),
		})
	}

	return result, nil
}
