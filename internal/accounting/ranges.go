package accounting

import (
	"fmt"
	"time"
)

// Range is a half-open instant range [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Period names the calendar buckets totals are reported for.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Periods lists the buckets in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	case "today":
		return PeriodDay, nil
	}
	return "", fmt.Errorf("invalid period %q (expected day, week or month)", s)
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange covers the calendar day containing t.
func DayRange(t time.Time) Range {
	start := StartOfDay(t)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekRange covers the Monday-start week containing t. Sunday belongs to the
// week that started six days earlier.
func WeekRange(t time.Time) Range {
	day := StartOfDay(t)
	diffToMonday := int(day.Weekday()) - int(time.Monday)
	if day.Weekday() == time.Sunday {
		diffToMonday = 6
	}
	start := day.AddDate(0, 0, -diffToMonday)
	return Range{Start: start, End: start.AddDate(0, 0, 7)}
}

// MonthRange covers the calendar month containing t.
func MonthRange(t time.Time) Range {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// RangeFor returns the range of the given period containing t. Unknown
// periods fall back to the day.
func RangeFor(p Period, t time.Time) Range {
	switch p {
	case PeriodWeek:
		return WeekRange(t)
	case PeriodMonth:
		return MonthRange(t)
	default:
		return DayRange(t)
	}
}
