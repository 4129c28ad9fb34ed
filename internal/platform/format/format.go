// Package format holds the pure display helpers shared by every portal:
// date rendering, age calculation, and vital-sign classification. All
// functions are total: bad input yields a sentinel, never a panic.
package format

import (
	"time"
)

const (
	// InvalidDate is returned for timestamps that cannot be parsed.
	InvalidDate = "Invalid date"
	// Unknown is returned for absent timestamps.
	Unknown = "Unknown"
)

// Accepted timestamp layouts, tried in order. The backend emits RFC 3339
// with and without offset, and bare dates for date-of-birth fields.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parse(iso string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime renders an ISO-8601 timestamp like "Jun 15, 2024 2:30 PM".
func DateTime(iso string) string {
	if iso == "" {
		return Unknown
	}
	t, ok := parse(iso)
	if !ok {
		return InvalidDate
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// Date renders an ISO-8601 timestamp like "Jun 15, 2024".
func Date(iso string) string {
	if iso == "" {
		return Unknown
	}
	t, ok := parse(iso)
	if !ok {
		return InvalidDate
	}
	return t.Format("Jan 2, 2006")
}

// Age returns whole years between dob and now, counting a year only once
// the birthday has passed.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// AgeFromISO parses a date-of-birth string and returns the age, or -1 when
// the input is unparseable.
func AgeFromISO(iso string, now time.Time) int {
	dob, ok := parse(iso)
	if !ok {
		return -1
	}
	return Age(dob, now)
}
