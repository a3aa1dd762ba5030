// Package timex holds small time helpers shared by client and server:
// a JSON-friendly Duration and calendar-date handling for the streak and
// check-in rules, which compare whole dates rather than timestamps.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON configs can specify intervals
// either as strings like "3s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// DateLayout is the calendar-date form used for streaks and check-ins.
const DateLayout = "2006-01-02"

// DateKey reduces t to its calendar date in t's location. Two times on the
// same day produce the same key regardless of clock time.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDate reports whether two times fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// NextClockTime returns the next occurrence of hh:mm in loc strictly after
// now. Used by the daily push scheduler.
func NextClockTime(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
