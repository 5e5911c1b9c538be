package service

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for day-granular query parameters.
const dateLayout = "2006-01-02"

// startOfDay truncates the timestamp to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// endOfDay returns the last representable instant of the timestamp's day.
// Range ends are inclusive of the whole end day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// dayRange expands a single day into its [start, end] bounds.
func dayRange(t time.Time) (time.Time, time.Time) {
	return startOfDay(t), endOfDay(t)
}

// ParseDay parses a YYYY-MM-DD value.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
