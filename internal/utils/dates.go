package utils

import (
	"fmt"
	"time"
)

// DateOnlyFormat is the wire format for dates at the API boundary.
const DateOnlyFormat = "2006-01-02"

// ParseDateOnly parses a YYYY-MM-DD string into a UTC time.
func ParseDateOnly(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateOnlyFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDateOnly renders a time as YYYY-MM-DD.
func FormatDateOnly(t time.Time) string {
	return t.Format(DateOnlyFormat)
}
