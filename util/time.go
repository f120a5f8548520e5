package util

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const ISO8601 = "2006-01-02T15:04:05.000Z"

const ISO8601_milli = "2006-01-02T15:04:05.000000Z"

const ISO8601_numtz = "2006-01-02T15:04:05.000-07:00"

const ISO8601_numtz_milli = "2006-01-02T15:04:05.000000-07:00"

const ISO8601_sec = "2006-01-02T15:04:05Z"

const ISO8601_numtz_sec = "2006-01-02T15:04:05-07:00"

// Mastodon reports last_status_at as a bare date
const ISO8601_date = "2006-01-02"

var timestampLayouts = []string{
	ISO8601,
	ISO8601_milli,
	ISO8601_numtz,
	ISO8601_numtz_milli,
	ISO8601_sec,
	ISO8601_numtz_sec,
	time.RFC3339Nano,
	ISO8601_date,
}

// dateparse only sees inputs that start with an ISO-8601 calendar date
var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Parses an ISO-8601 timestamp as returned by Mastodon instances. The common
// layouts are tried first; other ISO-8601 variants go through dateparse in
// strict mode. Epoch digits and free-form dates are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	if !isoDatePrefix.MatchString(s) {
		return time.Time{}, fmt.Errorf("failed to parse %q as timestamp: not ISO-8601", s)
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q as timestamp: %w", s, err)
	}
	return t, nil
}

// Whole days elapsed between the timestamp and now (truncated toward zero).
func DaysSince(s string, now time.Time) (int, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return 0, err
	}
	return int(now.Sub(t) / (24 * time.Hour)), nil
}

// Hours between two timestamps, rounded to one decimal place.
func HoursBetween(from, to string) (float64, error) {
	a, err := ParseTimestamp(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseTimestamp(to)
	if err != nil {
		return 0, err
	}
	return math.Round(b.Sub(a).Hours()*10) / 10, nil
}
