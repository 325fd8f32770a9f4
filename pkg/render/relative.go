package render

import (
	"fmt"
	"math"
	"time"

	"github.com/papercomputeco/cogniz/pkg/memory"
)

// AbsoluteLayout is used once a timestamp is a week or more old.
const AbsoluteLayout = "Jan 2, 2006, 3:04 PM"

// RelativeTime describes how long ago storedAt was, relative to now.
// Unparseable timestamps have no label.
func RelativeTime(storedAt string, now time.Time) (string, bool) {
	t, ok := memory.ParseTimestamp(storedAt)
	if !ok {
		return "", false
	}

	minutes := int(math.Round(float64(now.Sub(t)) / float64(time.Minute)))
	if minutes < 1 {
		return "moments ago", true
	}
	if minutes < 60 {
		return plural(minutes, "min"), true
	}

	hours := int(math.Round(float64(minutes) / 60))
	if hours < 24 {
		return plural(hours, "hr"), true
	}

	days := int(math.Round(float64(hours) / 24))
	if days < 7 {
		return plural(days, "day"), true
	}

	return t.In(now.Location()).Format(AbsoluteLayout), true
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
