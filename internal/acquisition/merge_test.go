package acquisition

import (
	"testing"
	"time"

	"mlb_scenarios/etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yankees = models.Team{Abbreviation: "NYY", TeamID: 147, Name: "New York Yankees", ScheduleCode: "NYY"}

func day(month time.Month, d int) time.Time {
	return time.Date(2019, month, d, 0, 0, 0, 0, time.UTC)
}

func sched(dates ...time.Time) []models.ScheduleRecord {
	recs := make([]models.ScheduleRecord, len(dates))
	for i, d := range dates {
		recs[i] = models.ScheduleRecord{Date: d, Team: "NYY", Year: 2019}
	}
	return recs
}

func game(id int, date time.Time, homeID, awayID int) models.GameSummary {
	return models.GameSummary{
		Date:     date,
		GameID:   id,
		GameType: models.GameTypeRegularSeason,
		State:    models.GameStateFinal,
		HomeID:   homeID,
		AwayID:   awayID,
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyKeepFirst, p)

	p, err = ParsePolicy("error")
	require.NoError(t, err)
	assert.Equal(t, PolicyError, p)

	_, err = ParsePolicy("last-wins")
	assert.Error(t, err)
}

func TestMerge_KeysOnDateAndTeam(t *testing.T) {
	schedule := sched(day(time.April, 1), day(time.April, 2))
	games := []models.GameSummary{
		game(1, day(time.April, 1), 147, 111),
		game(2, day(time.April, 2), 111, 147),
		game(3, day(time.April, 3), 147, 111), // not on the listing
		game(4, day(time.April, 1), 111, 121), // team not involved
	}

	res, err := Merge(yankees, 2019, schedule, games, PolicyKeepFirst)
	require.NoError(t, err)
	require.Len(t, res.Games, 2)

	assert.Equal(t, 1, res.Games[0].GameID)
	assert.True(t, res.Games[0].IsHome)
	assert.Equal(t, 2, res.Games[1].GameID)
	assert.False(t, res.Games[1].IsHome)
	assert.Equal(t, "NYY", res.Games[1].Team)
	assert.Equal(t, 2019, res.Games[1].Year)
	assert.Zero(t, res.Conflicts)
}

func TestMerge_Doubleheader(t *testing.T) {
	// Two listing rows on one date must not multiply the games
	schedule := sched(day(time.May, 5), day(time.May, 5))
	games := []models.GameSummary{
		game(10, day(time.May, 5), 147, 111),
		game(11, day(time.May, 5), 147, 111),
	}

	res, err := Merge(yankees, 2019, schedule, games, PolicyKeepFirst)
	require.NoError(t, err)
	require.Len(t, res.Games, 2)
	assert.Equal(t, 10, res.Games[0].GameID)
	assert.Equal(t, 11, res.Games[1].GameID)
	assert.Zero(t, res.Conflicts)
}

func TestMerge_DuplicateGameID(t *testing.T) {
	schedule := sched(day(time.June, 1), day(time.June, 2))
	first := game(20, day(time.June, 1), 147, 111)
	first.HomeScore = 4
	resumed := game(20, day(time.June, 2), 147, 111)
	resumed.HomeScore = 9
	games := []models.GameSummary{first, resumed, game(21, day(time.June, 2), 111, 147)}

	res, err := Merge(yankees, 2019, schedule, games, PolicyKeepFirst)
	require.NoError(t, err)
	require.Len(t, res.Games, 2)
	assert.Equal(t, 4, res.Games[0].HomeScore, "First occurrence wins")
	assert.Equal(t, 21, res.Games[1].GameID)
	assert.Equal(t, 1, res.Conflicts)

	_, err = Merge(yankees, 2019, schedule, games, PolicyError)
	assert.ErrorIs(t, err, ErrMergeConflict)
}

func TestMerge_MatchesByNameWithoutIDs(t *testing.T) {
	g := models.GameSummary{
		Date:     day(time.July, 4),
		GameID:   30,
		GameType: models.GameTypeRegularSeason,
		HomeName: "Boston Red Sox",
		AwayName: "New York Yankees",
	}

	res, err := Merge(models.Team{Abbreviation: "NYY", Name: "New York Yankees"}, 2019, sched(day(time.July, 4)), []models.GameSummary{g}, PolicyKeepFirst)
	require.NoError(t, err)
	require.Len(t, res.Games, 1)
	assert.False(t, res.Games[0].IsHome)
}

func TestMerge_Empty(t *testing.T) {
	res, err := Merge(yankees, 2019, nil, []models.GameSummary{game(1, day(time.April, 1), 147, 111)}, PolicyKeepFirst)
	require.NoError(t, err)
	assert.Empty(t, res.Games)
}
