package metadata

import (
	"fmt"
	"strings"
	"time"
)

// creationTimeLayout is the wall-clock part of the tag; "Z" is appended
// unconditionally by [FormatCreationTime].
const creationTimeLayout = "2006-01-02T15:04:05"

// FormatCreationTime renders t's calendar and clock fields followed by a
// literal "Z". The location is discarded, not converted: 12:00 at +05:00
// becomes "…T12:00:00Z". Sub-second precision is dropped.
func FormatCreationTime(t time.Time) string {
	return t.Format(creationTimeLayout) + "Z"
}

// StripLocation returns t's wall-clock fields as a UTC time, which is the
// value a reader recovers from the tag written for t.
func StripLocation(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a user-supplied timestamp. Values with an offset
// keep it (it is discarded later when formatting); values without one are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use e.g. 2022-03-19T12:00:00 or 2022-03-19T12:00:00+02:00)", s)
}
