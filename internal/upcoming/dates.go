package upcoming

import (
	"fmt"
	"strings"
	"time"
)

// Accepted occasion date layouts. Only the calendar date is kept; any time or
// offset component is ignored.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// ParseDate parses s as a naive calendar date (midnight UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
}

// Day truncates t to its wall-clock calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b; both must come from Day.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
