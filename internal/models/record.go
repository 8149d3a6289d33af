package models

import (
	"strconv"
	"time"
)

// DateLayout is the date format used in every flat file
const DateLayout = "2006-01-02"

// Scenario file columns
const (
	ColDate               = "date"
	ColTeam               = "team"
	ColYear               = "year"
	ColGameID             = "game_id"
	ColTeamRuns6          = "team_runs_6"
	ColOppRuns6           = "opp_runs_6"
	ColTeamRunsLate       = "team_runs_7_9"
	ColOppRunsLate        = "opp_runs_7_9"
	ColIsCloseScenario    = "is_close_scenario"
	ColIsComebackScenario = "is_comeback_scenario"
	ColNoRunsScoredLate   = "no_runs_scored_late"
	ColHeldGame           = "held_game"
	ColFinalWin           = "final_win"
)

// GameRecordColumns is the header of a per-(team, year) scenario file
var GameRecordColumns = []string{
	ColDate, ColTeam, ColYear, ColGameID,
	ColTeamRuns6, ColOppRuns6, ColTeamRunsLate, ColOppRunsLate,
	ColIsCloseScenario, ColIsComebackScenario, ColNoRunsScoredLate, ColHeldGame, ColFinalWin,
}

// GameRecord holds the situational features of one game from one team's perspective
type GameRecord struct {
	Date   time.Time
	Team   string
	Year   int
	GameID int

	// Runs through six innings and from the seventh on
	TeamRuns6    int
	OppRuns6     int
	TeamRunsLate int
	OppRunsLate  int

	IsCloseScenario    bool
	IsComebackScenario bool
	NoRunsScoredLate   bool
	HeldGame           bool
	FinalWin           bool
}

// Row serializes the record in GameRecordColumns order
func (r GameRecord) Row() []string {
	return []string{
		r.Date.Format(DateLayout),
		r.Team,
		strconv.Itoa(r.Year),
		strconv.Itoa(r.GameID),
		strconv.Itoa(r.TeamRuns6),
		strconv.Itoa(r.OppRuns6),
		strconv.Itoa(r.TeamRunsLate),
		strconv.Itoa(r.OppRunsLate),
		FormatBool(r.IsCloseScenario),
		FormatBool(r.IsComebackScenario),
		FormatBool(r.NoRunsScoredLate),
		FormatBool(r.HeldGame),
		FormatBool(r.FinalWin),
	}
}

// FormatBool renders booleans the way the scenario files have always stored them
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
