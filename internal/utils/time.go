package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutClock    = "15:04"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// ParseClock parses an "HH:MM" local clock string into minutes past midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDateClock builds the departure instant from a service date and an
// "HH:MM" clock string, both in local time.
func CombineDateClock(serviceDate, clock string) (time.Time, error) {
	d, err := ParseDate(serviceDate)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}

// TimeOfDayBucket maps an "HH:MM" clock to the fare-policy bucket.
func TimeOfDayBucket(clock string) string {
	m, err := ParseClock(clock)
	if err != nil {
		return "afternoon"
	}
	h := m / 60
	switch {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}
