package memory

import (
	"strings"
	"time"
)

// zoned layouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	time.RFC1123Z,
	time.RFC1123,
}

// localLayouts have no offset and are read in local time, the way WordPress
// writes MySQL datetimes.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses the timestamp formats Cogniz is known to emit. The
// bool is false for blank or unrecognized input.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	// date-only values are UTC midnight
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}

	return time.Time{}, false
}
