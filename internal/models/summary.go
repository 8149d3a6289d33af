package models

import "strconv"

// Summary-only columns
const (
	ColComebackWins  = "comeback_wins"
	ColLead12Runs6th = "lead_1_2_runs_6th"
	ColTotalGames    = "total_games"
)

// SummaryColumns is the fixed column order of every yearly summary file
var SummaryColumns = []string{
	ColTeam, ColYear,
	ColIsCloseScenario, ColIsComebackScenario, ColNoRunsScoredLate, ColHeldGame,
	ColComebackWins, ColFinalWin, ColLead12Runs6th, ColTotalGames,
}

// TeamYearSummary counts scenario flags across one team's season
type TeamYearSummary struct {
	Team string
	Year int

	IsCloseScenario    int
	IsComebackScenario int
	NoRunsScoredLate   int
	HeldGame           int
	ComebackWins       int
	FinalWin           int
	Lead12Runs6th      int
	TotalGames         int
}

// Values returns the summary fields in SummaryColumns order
func (s TeamYearSummary) Values() []interface{} {
	return []interface{}{
		s.Team, s.Year,
		s.IsCloseScenario, s.IsComebackScenario, s.NoRunsScoredLate, s.HeldGame,
		s.ComebackWins, s.FinalWin, s.Lead12Runs6th, s.TotalGames,
	}
}

// Row serializes the summary in SummaryColumns order
func (s TeamYearSummary) Row() []string {
	return []string{
		s.Team,
		strconv.Itoa(s.Year),
		strconv.Itoa(s.IsCloseScenario),
		strconv.Itoa(s.IsComebackScenario),
		strconv.Itoa(s.NoRunsScoredLate),
		strconv.Itoa(s.HeldGame),
		strconv.Itoa(s.ComebackWins),
		strconv.Itoa(s.FinalWin),
		strconv.Itoa(s.Lead12Runs6th),
		strconv.Itoa(s.TotalGames),
	}
}
