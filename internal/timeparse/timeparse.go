package timeparse

import (
	"strings"
	"time"

	"github.com/metaview/metaview/internal/errors"
)

// DefaultUTCOffsetMinutes converts an assumed-UTC capture timestamp into
// local wall-clock time (IST, UTC+5:30) before any window comparison.
// Deployments in other timezones override it via configuration.
const DefaultUTCOffsetMinutes = 330

// clockLayouts are tried in order for time-of-day strings; the 12-hour form
// wins over the 24-hour form when both would accept the input.
var clockLayouts = []string{
	"03:04 PM",
	"15:04",
}

// timestampLayouts are tried in order for absolute capture timestamps:
// fractional-second UTC, whole-second UTC, space-separated local, and a
// bare 12-hour clock.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"03:04 PM",
}

// ClockTime parses a time-of-day string such as "08:00 AM" or "14:30".
// The returned value carries only a meaningful clock component.
func ClockTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.CodeInvalidArg, "unparsable time of day: "+s)
}

// Timestamp parses an absolute capture timestamp, trying each supported
// format in fixed order. The timestamp is timezone-naive at the field
// level; callers apply the UTC offset themselves.
func Timestamp(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.CodeInvalidArg, "unparsable timestamp: "+s)
}

// ToLocal shifts an assumed-UTC instant into local wall-clock time using a
// fixed minute offset.
func ToLocal(t time.Time, offsetMinutes int) time.Time {
	return t.Add(time.Duration(offsetMinutes) * time.Minute)
}

// SecondOfDay returns the time-of-day component as seconds since midnight.
// Calendar date is discarded for all window comparisons.
func SecondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// MinuteOfDay returns the time-of-day component in whole minutes since
// midnight, truncating seconds. Delay and overrun arithmetic uses minutes.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
