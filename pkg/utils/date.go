package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date ("2025-01-01") or an RFC3339 timestamp and
// returns the calendar date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date %q: %v", value, err)
	}

	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
