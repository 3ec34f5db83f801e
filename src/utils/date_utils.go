package utils

import (
	"strings"
	"time"
)

const DefaultDateFormat = "2006-01-02"

// dateLayouts are tried in order. Big Mac index files use the full ISO date,
// but hand-entered rows sometimes carry only a year or a year and month.
var dateLayouts = []string{
	DefaultDateFormat,
	time.RFC3339,
	"2006-01",
	"2006",
}

// ParseDate parses an ISO style date. ok is false when no layout matches.
func ParseDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Today returns now as a UTC YYYY-MM-DD string.
func Today(now time.Time) string {
	return now.UTC().Format(DefaultDateFormat)
}

// IsYear reports whether s is a 4-digit year.
func IsYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
