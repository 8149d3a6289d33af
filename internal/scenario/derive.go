// Package scenario derives per-game situational features from line scores.
package scenario

import "mlb_scenarios/etl/internal/models"

// EarlyInnings is the number of innings counted as "early"; later innings are "late"
const EarlyInnings = 6

// CloseMargin is the largest run difference after six innings that counts as close
const CloseMargin = 2

// Split holds runs for both sides through the early innings and after them
type Split struct {
	TeamEarly int
	OppEarly  int
	TeamLate  int
	OppLate   int
}

// TeamTotal returns the team's runs across every inning of the line score
func (s Split) TeamTotal() int {
	return s.TeamEarly + s.TeamLate
}

// OppTotal returns the opponent's runs across every inning of the line score
func (s Split) OppTotal() int {
	return s.OppEarly + s.OppLate
}

// Margin returns the team's lead after the early innings (negative when trailing)
func (s Split) Margin() int {
	return s.TeamEarly - s.OppEarly
}

// SplitInnings sums runs per side into early and late buckets from the
// perspective of the home or away club. Short line scores are fine.
func SplitInnings(innings []models.Inning, isHome bool) Split {
	var s Split
	for i, inning := range innings {
		team := inning.RunsFor(isHome)
		opp := inning.RunsFor(!isHome)
		if i < EarlyInnings {
			s.TeamEarly += team
			s.OppEarly += opp
		} else {
			s.TeamLate += team
			s.OppLate += opp
		}
	}
	return s
}

// Derive builds the game record for a merged game from its line score.
// final_win uses the game index's final score, not the inning totals.
func Derive(game models.MergedGame, innings []models.Inning) models.GameRecord {
	s := SplitInnings(innings, game.IsHome)

	margin := s.Margin()
	if margin < 0 {
		margin = -margin
	}

	isClose := margin <= CloseMargin
	quietLate := s.TeamLate == 0 && s.OppLate == 0

	return models.GameRecord{
		Date:   game.Date,
		Team:   game.Team,
		Year:   game.Year,
		GameID: game.GameID,

		TeamRuns6:    s.TeamEarly,
		OppRuns6:     s.OppEarly,
		TeamRunsLate: s.TeamLate,
		OppRunsLate:  s.OppLate,

		IsCloseScenario:    isClose,
		IsComebackScenario: s.TeamEarly < s.OppEarly,
		NoRunsScoredLate:   quietLate,
		HeldGame:           isClose && quietLate,
		FinalWin:           game.TeamScore() > game.OpponentScore(),
	}
}
