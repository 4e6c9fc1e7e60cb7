package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeWindow = regexp.MustCompile(`(?i)last\s+(\d+)\s+(day|days|month|months|hour|hours)`)

// ResolveDateWindow maps a "date posted" label to an inclusive lower
// bound on posted_at. Canonical labels map to fixed offsets from now;
// any other "last N unit" phrase is computed generically. "any", empty
// or unrecognized text yields ok=false and the dimension is not filtered.
func ResolveDateWindow(label string, now time.Time) (time.Time, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" || normalized == "any" {
		return time.Time{}, false
	}

	switch normalized {
	case "last 24 hours", "24h", "1d", "1 day":
		return now.Add(-24 * time.Hour), true
	case "last 7 days", "7d":
		return now.AddDate(0, 0, -7), true
	case "last 30 days", "30d":
		return now.AddDate(0, 0, -30), true
	case "last 2 months", "2m", "last two months":
		return addMonthsClamped(now, -2), true
	}

	if m := relativeWindow.FindStringSubmatch(normalized); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch strings.TrimSuffix(m[2], "s") {
		case "hour":
			return now.Add(-time.Duration(n) * time.Hour), true
		case "day":
			return now.AddDate(0, 0, -n), true
		case "month":
			return addMonthsClamped(now, -n), true
		}
	}

	return time.Time{}, false
}

// addMonthsClamped shifts t by the given number of calendar months
// without day-overflow rollover: Jan 31 minus one month is Dec 31, and
// Mar 31 minus one month is Feb 28/29, never an overflowed March date.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, 0).Add(-24 * time.Hour).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
