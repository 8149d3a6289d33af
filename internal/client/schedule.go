package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mlb_scenarios/etl/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// ErrNoScheduleTable is returned when a schedule page has no results table
var ErrNoScheduleTable = errors.New("schedule table not found")

const (
	scheduleTableSelector = "table#team_schedule"
	scheduleDateSelector  = `[data-stat="date_game"]`
)

// ScheduleClient reads club schedule & results pages from Baseball-Reference
type ScheduleClient struct {
	base
}

// NewScheduleClient creates a new schedule page client
func NewScheduleClient(baseURL, userAgent string, timeout time.Duration) *ScheduleClient {
	return &ScheduleClient{base: newBase(baseURL, userAgent, "text/html", timeout)}
}

// FetchSchedule fetches and parses one team's season schedule
func (c *ScheduleClient) FetchSchedule(ctx context.Context, team models.Team, year int) (*models.ScheduleListing, error) {
	path := fmt.Sprintf("teams/%s/%d-schedule-scores.shtml", team.ScheduleKey(), year)

	body, err := c.get(ctx, "schedule", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}

	listing, err := ParseSchedule(doc, team.Abbreviation, year)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("team", team.Abbreviation).
		Int("year", year).
		Int("rows", len(listing.Records)).
		Int("dropped", listing.Dropped).
		Msg("Schedule parsed")

	return listing, nil
}

// ParseSchedule extracts schedule records from a schedule & results page.
// Rows whose date cell does not parse, including repeated header rows, are
// counted as dropped.
func ParseSchedule(doc *goquery.Document, team string, year int) (*models.ScheduleListing, error) {
	table := doc.Find(scheduleTableSelector)
	if table.Length() == 0 {
		return nil, fmt.Errorf("%s %d: %w", team, year, ErrNoScheduleTable)
	}

	listing := &models.ScheduleListing{}
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		raw := strings.TrimSpace(row.Find(scheduleDateSelector).First().Text())
		date, err := models.ParseScheduleDate(raw, year)
		if err != nil {
			listing.Dropped++
			return
		}
		listing.Records = append(listing.Records, models.ScheduleRecord{
			Date: date,
			Team: team,
			Year: year,
		})
	})

	return listing, nil
}
