package models

// Status is the outcome of one unit of pipeline work
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// GameResult records the outcome of deriving one game
type GameResult struct {
	GameID int
	Status Status
	Reason string
}

// UnitResult records the outcome of one (team, year) acquisition
type UnitResult struct {
	Team   string
	Year   int
	Status Status
	Reason string
	Path   string // Written scenario file, empty on failure

	Games               int // Merged games considered
	Records             int // Game records written
	DroppedScheduleRows int
	Conflicts           int
	Failures            []GameResult
}

// OK returns true if the unit completed
func (u UnitResult) OK() bool {
	return u.Status == StatusSuccess
}

// RunReport collects the unit results of an acquisition run
type RunReport struct {
	RunID string
	Units []UnitResult
}

// Add appends a unit result
func (r *RunReport) Add(u UnitResult) {
	r.Units = append(r.Units, u)
}

// Succeeded returns the number of completed units
func (r *RunReport) Succeeded() int {
	n := 0
	for _, u := range r.Units {
		if u.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed units
func (r *RunReport) Failed() int {
	return len(r.Units) - r.Succeeded()
}

// GamesFailed returns the number of games excluded across all units
func (r *RunReport) GamesFailed() int {
	n := 0
	for _, u := range r.Units {
		n += len(u.Failures)
	}
	return n
}

// RecordsWritten returns the number of game records written across all units
func (r *RunReport) RecordsWritten() int {
	n := 0
	for _, u := range r.Units {
		n += u.Records
	}
	return n
}
