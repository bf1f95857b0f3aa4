package analytics

import (
	"fmt"
	"time"
)

// Periods lists the names accepted by GetDateRange
var Periods = []string{"today", "yesterday", "last_7_days", "last_14_days", "last_30_days", "this_month"}

// GetDateRange returns the date range of a named period ending at now
func GetDateRange(period string, now time.Time) (*DateRange, error) {
	today := startOfDay(now)

	var start, end time.Time
	switch period {
	case "today":
		start = today
		end = now
	case "yesterday":
		start = today.AddDate(0, 0, -1)
		end = today.Add(-time.Nanosecond)
	case "last_7_days":
		start = today.AddDate(0, 0, -6)
		end = now
	case "last_14_days":
		return LastDays(14, now), nil
	case "last_30_days":
		start = today.AddDate(0, 0, -29)
		end = now
	case "this_month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}

	return &DateRange{
		Start: start,
		End:   end,
		Field: "created_at",
	}, nil
}

// LastDays returns the range covering the last n calendar days, today included
func LastDays(n int, now time.Time) *DateRange {
	if n < 1 {
		n = 1
	}
	return &DateRange{
		Start: startOfDay(now).AddDate(0, 0, -(n - 1)),
		End:   now,
		Field: "created_at",
	}
}

// GetDailyRanges returns date ranges for each day in a period
func GetDailyRanges(start, end time.Time) []DateRange {
	ranges := []DateRange{}
	current := startOfDay(start)

	for !current.After(end) {
		dayEnd := current.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if dayEnd.After(end) {
			dayEnd = end
		}

		ranges = append(ranges, DateRange{
			Start: current,
			End:   dayEnd,
			Field: "created_at",
		})

		current = current.AddDate(0, 0, 1)
	}

	return ranges
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
