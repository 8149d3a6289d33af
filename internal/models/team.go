package models

import (
	"fmt"
	"strings"
)

// Team represents an MLB club
type Team struct {
	Abbreviation string // Output key, e.g. "NYY"
	TeamID       int    // MLB Stats API team id
	Name         string // Display name as reported by the Stats API
	ScheduleCode string // Baseball-Reference franchise code
}

// ScheduleKey returns the code used for schedule page lookups
func (t Team) ScheduleKey() string {
	if t.ScheduleCode != "" {
		return t.ScheduleCode
	}
	return t.Abbreviation
}

// DefaultTeams returns the 30 clubs processed by default, in output order
func DefaultTeams() []Team {
	return []Team{
		{Abbreviation: "ARI", TeamID: 109, Name: "Arizona Diamondbacks"},
		{Abbreviation: "ATL", TeamID: 144, Name: "Atlanta Braves"},
		{Abbreviation: "BAL", TeamID: 110, Name: "Baltimore Orioles"},
		{Abbreviation: "BOS", TeamID: 111, Name: "Boston Red Sox"},
		{Abbreviation: "CHC", TeamID: 112, Name: "Chicago Cubs"},
		{Abbreviation: "CHW", TeamID: 145, Name: "Chicago White Sox"},
		{Abbreviation: "CIN", TeamID: 113, Name: "Cincinnati Reds"},
		{Abbreviation: "CLE", TeamID: 114, Name: "Cleveland Guardians"},
		{Abbreviation: "COL", TeamID: 115, Name: "Colorado Rockies"},
		{Abbreviation: "DET", TeamID: 116, Name: "Detroit Tigers"},
		{Abbreviation: "HOU", TeamID: 117, Name: "Houston Astros"},
		{Abbreviation: "KC", TeamID: 118, Name: "Kansas City Royals", ScheduleCode: "KCR"},
		{Abbreviation: "LAA", TeamID: 108, Name: "Los Angeles Angels"},
		{Abbreviation: "LAD", TeamID: 119, Name: "Los Angeles Dodgers"},
		{Abbreviation: "MIA", TeamID: 146, Name: "Miami Marlins"},
		{Abbreviation: "MIL", TeamID: 158, Name: "Milwaukee Brewers"},
		{Abbreviation: "MIN", TeamID: 142, Name: "Minnesota Twins"},
		{Abbreviation: "NYM", TeamID: 121, Name: "New York Mets"},
		{Abbreviation: "NYY", TeamID: 147, Name: "New York Yankees"},
		{Abbreviation: "OAK", TeamID: 133, Name: "Oakland Athletics"},
		{Abbreviation: "PHI", TeamID: 143, Name: "Philadelphia Phillies"},
		{Abbreviation: "PIT", TeamID: 134, Name: "Pittsburgh Pirates"},
		{Abbreviation: "SD", TeamID: 135, Name: "San Diego Padres", ScheduleCode: "SDP"},
		{Abbreviation: "SEA", TeamID: 136, Name: "Seattle Mariners"},
		{Abbreviation: "SF", TeamID: 137, Name: "San Francisco Giants", ScheduleCode: "SFG"},
		{Abbreviation: "STL", TeamID: 138, Name: "St. Louis Cardinals"},
		{Abbreviation: "TB", TeamID: 139, Name: "Tampa Bay Rays", ScheduleCode: "TBR"},
		{Abbreviation: "TEX", TeamID: 140, Name: "Texas Rangers"},
		{Abbreviation: "TOR", TeamID: 141, Name: "Toronto Blue Jays"},
		{Abbreviation: "WSN", TeamID: 120, Name: "Washington Nationals"},
	}
}

// FilterTeams returns the teams whose abbreviation is listed, keeping the order of teams.
// An empty list selects every team. Unknown abbreviations are an error.
func FilterTeams(teams []Team, abbrs []string) ([]Team, error) {
	wanted := make(map[string]bool, len(abbrs))
	for _, a := range abbrs {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a != "" {
			wanted[a] = true
		}
	}
	if len(wanted) == 0 {
		return teams, nil
	}

	out := make([]Team, 0, len(wanted))
	for _, t := range teams {
		if wanted[t.Abbreviation] {
			out = append(out, t)
			delete(wanted, t.Abbreviation)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for a := range wanted {
			unknown = append(unknown, a)
		}
		return nil, fmt.Errorf("unknown team abbreviations: %s", strings.Join(unknown, ","))
	}
	return out, nil
}
