package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in the cache.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, formatted as YYYY-MM-DD.
type Date string

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp whose date part is taken as is.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if len(s) > len(DateLayout) {
		if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
			return "", fmt.Errorf("invalid date %q: %w", s, err)
		}
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) String() string { return string(d) }

// Time returns midnight UTC of the date.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// AddDays performs calendar-day arithmetic; days may be zero or negative.
func (d Date) AddDays(days int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", d, err)
	}
	return DateOf(t.AddDate(0, 0, days)), nil
}
