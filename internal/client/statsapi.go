package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"mlb_scenarios/etl/internal/models"
)

// ErrNoLinescore is returned when a game feed carries no line score
var ErrNoLinescore = errors.New("game feed has no linescore")

// StatsClient is the MLB Stats API client (game index and line scores)
type StatsClient struct {
	base
}

// NewStatsClient creates a new Stats API client
func NewStatsClient(baseURL, userAgent string, timeout time.Duration) *StatsClient {
	return &StatsClient{base: newBase(baseURL, userAgent, "application/json", timeout)}
}

// WithCache enables read-through caching of line score responses
func (c *StatsClient) WithCache(cache Cache, ttl time.Duration) *StatsClient {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

type scheduleResponse struct {
	Dates []struct {
		Date  string             `json:"date"`
		Games []models.GameInput `json:"games"`
	} `json:"dates"`
}

type liveFeedResponse struct {
	LiveData struct {
		Linescore *struct {
			Innings []models.Inning `json:"innings"`
		} `json:"linescore"`
	} `json:"liveData"`
}

// FetchGames fetches the game index for one team between two dates, inclusive.
// Every game type is returned; callers filter.
func (c *StatsClient) FetchGames(ctx context.Context, teamID, sportID int, start, end time.Time) ([]models.GameSummary, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(sportID))
	params.Set("teamId", strconv.Itoa(teamID))
	params.Set("startDate", start.Format(models.DateLayout))
	params.Set("endDate", end.Format(models.DateLayout))

	body, err := c.get(ctx, "games", "api/v1/schedule", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	var resp scheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal games: %w", err)
	}

	var games []models.GameSummary
	for _, day := range resp.Dates {
		date, err := time.Parse(models.DateLayout, day.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule date %q: %w", day.Date, err)
		}
		for i := range day.Games {
			games = append(games, day.Games[i].ToGameSummary(date))
		}
	}

	return games, nil
}

// FetchLinescore fetches the inning-by-inning line score of one game
func (c *StatsClient) FetchLinescore(ctx context.Context, gameID int) (*models.Linescore, error) {
	path := fmt.Sprintf("api/v1.1/game/%d/feed/live", gameID)

	body, err := c.getCached(ctx, "linescore", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linescore: %w", err)
	}

	var feed liveFeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		c.evict(ctx, path, nil)
		return nil, fmt.Errorf("failed to unmarshal linescore: %w", err)
	}
	if feed.LiveData.Linescore == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrNoLinescore)
	}

	return &models.Linescore{
		GameID:  gameID,
		Innings: feed.LiveData.Linescore.Innings,
	}, nil
}
