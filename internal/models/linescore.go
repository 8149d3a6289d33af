package models

// InningSide holds one side's line for an inning. Runs is nil for an
// unplayed half, e.g. the bottom of the ninth when the home club leads.
type InningSide struct {
	Runs *int `json:"runs,omitempty"`
}

// RunsOrZero returns the runs scored, treating a missing value as zero
func (s *InningSide) RunsOrZero() int {
	if s == nil || s.Runs == nil {
		return 0
	}
	return *s.Runs
}

// Inning is one entry of a game's line score
type Inning struct {
	Num  int         `json:"num"`
	Home *InningSide `json:"home,omitempty"`
	Away *InningSide `json:"away,omitempty"`
}

// RunsFor returns the runs scored in the inning by the home or away side
func (i Inning) RunsFor(home bool) int {
	if home {
		return i.Home.RunsOrZero()
	}
	return i.Away.RunsOrZero()
}

// Linescore is the inning-by-inning detail of one game
type Linescore struct {
	GameID  int
	Innings []Inning
}
