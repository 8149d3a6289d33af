package models

import "time"

// Game types reported by the Stats API
const (
	GameTypeRegularSeason = "R"
)

// Abstract game states reported by the Stats API
const (
	GameStateFinal = "Final"
)

// GameSummary is one completed or scheduled game from the league game index
type GameSummary struct {
	Date      time.Time
	GameID    int
	GameType  string
	State     string // Abstract game state; empty when the source omits it
	HomeID    int
	AwayID    int
	HomeName  string
	AwayName  string
	HomeScore int
	AwayScore int
}

// IsRegularSeason returns true for regular-season games
func (g GameSummary) IsRegularSeason() bool {
	return g.GameType == GameTypeRegularSeason
}

// IsCompleted returns true unless the source reports a non-final state
func (g GameSummary) IsCompleted() bool {
	return g.State == "" || g.State == GameStateFinal
}

// Involves returns true if the team played in the game, matched by Stats API id
// and, when ids are absent, by display name
func (g GameSummary) Involves(team Team) bool {
	return g.IsHomeFor(team) || g.IsAwayFor(team)
}

// IsHomeFor returns true if team was the home club
func (g GameSummary) IsHomeFor(team Team) bool {
	if g.HomeID != 0 && team.TeamID != 0 {
		return g.HomeID == team.TeamID
	}
	return g.HomeName == team.Name
}

// IsAwayFor returns true if team was the away club
func (g GameSummary) IsAwayFor(team Team) bool {
	if g.AwayID != 0 && team.TeamID != 0 {
		return g.AwayID == team.TeamID
	}
	return g.AwayName == team.Name
}

// MergedGame is a game index row reconciled with the team's schedule listing
type MergedGame struct {
	GameSummary
	Team   string
	Year   int
	IsHome bool
}

// TeamScore returns the final score of the team under evaluation
func (m MergedGame) TeamScore() int {
	if m.IsHome {
		return m.HomeScore
	}
	return m.AwayScore
}

// OpponentScore returns the opponent's final score
func (m MergedGame) OpponentScore() int {
	if m.IsHome {
		return m.AwayScore
	}
	return m.HomeScore
}

// GameInput is one game entry of the Stats API schedule endpoint
type GameInput struct {
	GamePk   int    `json:"gamePk"`
	GameType string `json:"gameType"`
	Status   struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home GameTeamInput `json:"home"`
		Away GameTeamInput `json:"away"`
	} `json:"teams"`
}

// GameTeamInput is one side of a schedule entry
type GameTeamInput struct {
	Score *int `json:"score,omitempty"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// ToGameSummary converts a schedule entry to a GameSummary dated by its schedule day.
// Missing scores (postponed or unplayed games) become zero.
func (gi *GameInput) ToGameSummary(date time.Time) GameSummary {
	g := GameSummary{
		Date:     date,
		GameID:   gi.GamePk,
		GameType: gi.GameType,
		State:    gi.Status.AbstractGameState,
		HomeID:   gi.Teams.Home.Team.ID,
		AwayID:   gi.Teams.Away.Team.ID,
		HomeName: gi.Teams.Home.Team.Name,
		AwayName: gi.Teams.Away.Team.Name,
	}
	if gi.Teams.Home.Score != nil {
		g.HomeScore = *gi.Teams.Home.Score
	}
	if gi.Teams.Away.Score != nil {
		g.AwayScore = *gi.Teams.Away.Score
	}
	return g
}
