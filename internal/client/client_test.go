package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mlb_scenarios/etl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleJSON = `{
  "dates": [
    {"date": "2019-03-28", "games": [
      {"gamePk": 566083, "gameType": "R", "status": {"abstractGameState": "Final"},
       "teams": {"home": {"score": 7, "team": {"id": 147, "name": "New York Yankees"}},
                 "away": {"score": 2, "team": {"id": 110, "name": "Baltimore Orioles"}}}}
    ]},
    {"date": "2019-03-30", "games": [
      {"gamePk": 566084, "gameType": "R", "status": {"abstractGameState": "Final"},
       "teams": {"home": {"score": 5, "team": {"id": 147, "name": "New York Yankees"}},
                 "away": {"score": 7, "team": {"id": 110, "name": "Baltimore Orioles"}}}},
      {"gamePk": 566090, "gameType": "R", "status": {"abstractGameState": "Preview", "detailedState": "Postponed"},
       "teams": {"home": {"team": {"id": 147, "name": "New York Yankees"}},
                 "away": {"team": {"id": 110, "name": "Baltimore Orioles"}}}}
    ]}
  ]
}`

const liveFeedJSON = `{
  "gamePk": 566083,
  "liveData": {"linescore": {"innings": [
    {"num": 1, "home": {"runs": 2}, "away": {"runs": 0}},
    {"num": 2, "home": {"runs": 0}, "away": {"runs": 1}},
    {"num": 9, "home": {}, "away": {"runs": 0}}
  ]}}
}`

func TestStatsClient_FetchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedule", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("sportId"))
		assert.Equal(t, "147", q.Get("teamId"))
		assert.Equal(t, "2019-03-01", q.Get("startDate"))
		assert.Equal(t, "2019-11-15", q.Get("endDate"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(scheduleJSON))
	}))
	defer srv.Close()

	c := NewStatsClient(srv.URL, "test-agent", 5*time.Second)
	start := time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, time.November, 15, 0, 0, 0, 0, time.UTC)

	games, err := c.FetchGames(context.Background(), 147, 1, start, end)
	require.NoError(t, err)
	require.Len(t, games, 3)

	first := games[0]
	assert.Equal(t, 566083, first.GameID)
	assert.Equal(t, time.Date(2019, time.March, 28, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 147, first.HomeID)
	assert.Equal(t, "Baltimore Orioles", first.AwayName)
	assert.Equal(t, 7, first.HomeScore)
	assert.Equal(t, 2, first.AwayScore)
	assert.True(t, first.IsRegularSeason())
	assert.True(t, first.IsCompleted())

	postponed := games[2]
	assert.False(t, postponed.IsCompleted())
	assert.Equal(t, 0, postponed.HomeScore)
}

func TestStatsClient_FetchLinescore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.1/game/566083/feed/live", r.URL.Path)
		w.Write([]byte(liveFeedJSON))
	}))
	defer srv.Close()

	c := NewStatsClient(srv.URL, "test-agent", 5*time.Second)
	ls, err := c.FetchLinescore(context.Background(), 566083)
	require.NoError(t, err)
	require.Len(t, ls.Innings, 3)
	assert.Equal(t, 2, ls.Innings[0].RunsFor(true))
	assert.Equal(t, 1, ls.Innings[1].RunsFor(false))
	assert.Equal(t, 0, ls.Innings[2].RunsFor(true), "unplayed bottom half")
}

func TestStatsClient_FetchLinescore_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.1/game/1/feed/live":
			w.Write([]byte(`{"liveData": {}}`))
		case "/api/v1.1/game/2/feed/live":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	c := NewStatsClient(srv.URL, "test-agent", 5*time.Second)

	_, err := c.FetchLinescore(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoLinescore)

	_, err = c.FetchLinescore(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.FetchLinescore(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestStatsClient_LinescoreCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(liveFeedJSON))
	}))
	defer srv.Close()

	cache := &memoryCache{data: make(map[string][]byte)}
	c := NewStatsClient(srv.URL, "test-agent", 5*time.Second).WithCache(cache, time.Hour)

	first, err := c.FetchLinescore(context.Background(), 566083)
	require.NoError(t, err)
	second, err := c.FetchLinescore(context.Background(), 566083)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch should be served from cache")
	assert.Equal(t, first, second)
	assert.Contains(t, cache.data, srv.URL+"/api/v1.1/game/566083/feed/live")
}

func TestStatsClient_LinescoreEvictsCorruptCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(liveFeedJSON))
	}))
	defer srv.Close()

	key := srv.URL + "/api/v1.1/game/566083/feed/live"
	cache := &memoryCache{data: map[string][]byte{key: []byte("{truncated")}}
	c := NewStatsClient(srv.URL, "test-agent", 5*time.Second).WithCache(cache, time.Hour)

	_, err := c.FetchLinescore(context.Background(), 566083)
	require.Error(t, err)
	assert.NotContains(t, cache.data, key, "unparseable body should be evicted")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	ls, err := c.FetchLinescore(context.Background(), 566083)
	require.NoError(t, err, "next fetch goes upstream")
	assert.Equal(t, 566083, ls.GameID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Contains(t, cache.data, key)
}

const schedulePage = `<html><body>
<table id="team_schedule">
<thead><tr><th data-stat="team_game">Gm#</th><th data-stat="date_game">Date</th></tr></thead>
<tbody>
<tr><th data-stat="team_game">1</th><td data-stat="date_game"><a href="/boxes/x">Thursday, Mar 28</a></td></tr>
<tr><th data-stat="team_game">2</th><td data-stat="date_game">Saturday, Mar 30</td></tr>
<tr class="thead"><th data-stat="team_game">Gm#</th><th data-stat="date_game">Date</th></tr>
<tr><th data-stat="team_game">3</th><td data-stat="date_game">Sunday, Apr 7 (1)</td></tr>
<tr><th data-stat="team_game">4</th><td data-stat="date_game">Sunday, Apr 7 (2)</td></tr>
</tbody>
</table>
</body></html>`

func TestScheduleClient_FetchSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams/KCR/2019-schedule-scores.shtml":
			w.Write([]byte(schedulePage))
		case "/teams/NYY/2019-schedule-scores.shtml":
			w.Write([]byte("<html><body><p>no table</p></body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewScheduleClient(srv.URL, "test-agent", 5*time.Second)
	royals := models.Team{Abbreviation: "KC", TeamID: 118, Name: "Kansas City Royals", ScheduleCode: "KCR"}

	listing, err := c.FetchSchedule(context.Background(), royals, 2019)
	require.NoError(t, err)
	require.Len(t, listing.Records, 4)
	assert.Equal(t, 1, listing.Dropped, "repeated header row is dropped")
	assert.Equal(t, time.Date(2019, time.March, 28, 0, 0, 0, 0, time.UTC), listing.Records[0].Date)
	assert.Equal(t, "KC", listing.Records[0].Team)
	assert.Equal(t, listing.Records[2].Date, listing.Records[3].Date, "doubleheader shares a date")

	_, err = c.FetchSchedule(context.Background(), models.Team{Abbreviation: "NYY"}, 2019)
	assert.ErrorIs(t, err, ErrNoScheduleTable)

	_, err = c.FetchSchedule(context.Background(), models.Team{Abbreviation: "XXX"}, 2019)
	assert.ErrorIs(t, err, ErrNotFound)
}
