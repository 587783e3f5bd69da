package metrics

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Supported range selectors.
const (
	RangeToday  = "today"
	RangeWeek   = "week"
	RangeMonth  = "month"
	RangeCustom = "custom"
)

const defaultCustomWindowDays = 7

// ResolveDateRange turns a range selector into a concrete [from, to] day pair.
// "week" is the Monday-start week containing now, "month" the calendar month.
// "custom" takes caller-supplied bounds and falls back to the trailing week
// when either is missing.
func ResolveDateRange(rangeType, fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch rangeType {
	case RangeToday:
		return today, today, nil

	case RangeWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week, it does not start one
		}
		monday := today.AddDate(0, 0, -(weekday - 1))
		return monday, monday.AddDate(0, 0, 6), nil

	case RangeMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return first, last, nil

	case RangeCustom, "":
		to := today
		if toStr != "" {
			parsed, err := time.Parse(dateLayout, toStr)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", toStr, err)
			}
			to = parsed
		}

		from := to.AddDate(0, 0, -(defaultCustomWindowDays - 1))
		if fromStr != "" {
			parsed, err := time.Parse(dateLayout, fromStr)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", fromStr, err)
			}
			from = parsed
		}

		return from, to, nil

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown range type %q", rangeType)
	}
}
