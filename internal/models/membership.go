package models

import (
	"strings"
	"time"
)

const (
	DurationOneYear  = "One year"
	DurationTwoYear  = "Two year"
	DurationLifetime = "Lifetime"
)

var MembershipDurations = []string{DurationOneYear, DurationTwoYear, DurationLifetime}

// LifetimeCaptureEnd is the end date stamped on lifetime memberships bought online.
var LifetimeCaptureEnd = time.Date(2099, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)

func ValidDuration(d string) bool {
	for _, v := range MembershipDurations {
		if v == d {
			return true
		}
	}
	return false
}

// NormalizeDuration maps labels like "One Year" or "lifetime" onto the stored values.
func NormalizeDuration(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "lifetime":
		return DurationLifetime
	case l == "one year":
		return DurationOneYear
	case l == "two year":
		return DurationTwoYear
	default:
		return strings.TrimSpace(label)
	}
}

func IsLifetime(duration string) bool {
	return strings.EqualFold(strings.TrimSpace(duration), DurationLifetime)
}

// yearsIn parses the number of years out of a duration label; one when unknown.
func yearsIn(duration string) int {
	l := strings.ToLower(duration)
	switch {
	case strings.Contains(l, "one"):
		return 1
	case strings.Contains(l, "two"):
		return 2
	default:
		return 1
	}
}

// YearEnd is the last instant of December 31 of t's year.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// MembershipEndDate implements the calendar-year policy: a plan of N years
// ends on December 31 of start.Year()+N-1. Lifetime plans end at the explicit
// end when given, otherwise 100 years after start.
func MembershipEndDate(duration string, start time.Time, explicitEnd *time.Time) time.Time {
	if IsLifetime(duration) {
		if explicitEnd != nil {
			return *explicitEnd
		}
		return start.AddDate(100, 0, 0)
	}
	return YearEnd(start.Year() + yearsIn(duration) - 1)
}

// ClampToYearEnd moves a manually chosen end date to December 31 of its year.
func ClampToYearEnd(t time.Time) time.Time {
	return YearEnd(t.Year())
}

// ParseDate accepts the date formats the admin forms and spreadsheets send.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"1/2/06",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
