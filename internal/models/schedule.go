package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ScheduleRecord is one row of a club's schedule listing. Only the date survives.
type ScheduleRecord struct {
	Date time.Time
	Team string
	Year int
}

// ScheduleListing is a parsed schedule page
type ScheduleListing struct {
	Records []ScheduleRecord
	Dropped int // Rows whose date cell did not parse
}

var monthDayPattern = regexp.MustCompile(`([A-Za-z]{3,9}\s\d{1,2})`)

var scheduleDateLayouts = []string{"Jan 2 2006", "January 2 2006"}

// ParseScheduleDate extracts the first "Month Day" token from a free-text
// schedule cell such as "Sunday, Apr 3 (1)" and resolves it against year.
func ParseScheduleDate(raw string, year int) (time.Time, error) {
	token := monthDayPattern.FindString(raw)
	if token == "" {
		return time.Time{}, fmt.Errorf("no month/day token in %q", raw)
	}
	// "Sept" is neither the short nor the long month name
	if strings.EqualFold(token[:5], "sept ") {
		token = "Sep " + token[5:]
	}

	value := fmt.Sprintf("%s %d", token, year)
	for _, layout := range scheduleDateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable schedule date %q", value)
}
