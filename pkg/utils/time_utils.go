// utils/timeutil.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Clock layouts the assistant has been seen to emit for segment start/end.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3PM",
	"3 PM",
}

// ParseDayDate parses a plan day key (YYYY-MM-DD). Full timestamps are accepted and truncated to the day.
func ParseDayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized day date %q", s)
}

// CombineDateAndClock resolves a segment start such as "15:00" on the given day in loc.
// A start that is already a full RFC3339 timestamp wins over the day date.
func CombineDateAndClock(day string, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return time.Time{}, fmt.Errorf("empty clock")
	}
	if t, err := time.Parse(time.RFC3339, clock); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", clock, loc); err == nil {
		return t, nil
	}

	d, err := ParseDayDate(day)
	if err != nil {
		return time.Time{}, err
	}
	upper := strings.ToUpper(clock)
	for _, layout := range clockLayouts {
		if c, err := time.Parse(layout, upper); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized clock %q", clock)
}

// FormatDayHeading renders a day key as "Wednesday, July 2, 2025". Unparseable keys are returned as-is.
func FormatDayHeading(day string) string {
	d, err := ParseDayDate(day)
	if err != nil {
		return day
	}
	return d.Format("Monday, January 2, 2006")
}
