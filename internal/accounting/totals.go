package accounting

import (
	"time"

	"github.com/alexanderramin/punch/internal/domain"
)

// IntervalSource is the read-only view of the interval store the engine
// works from.
type IntervalSource interface {
	WorkSessions() []domain.WorkSession
	BreakRecords() []domain.BreakRecord
}

// Totals is the result of one accounting pass over a range.
type Totals struct {
	Gross  time.Duration
	Breaks time.Duration
	Net    time.Duration
}

// Gross sums session time overlapping r. An open session runs until now and
// keeps accruing while the worker is on break.
func Gross(src IntervalSource, r Range, now time.Time) time.Duration {
	var total time.Duration
	for _, s := range src.WorkSessions() {
		total += Overlap(s.Start, s.EndOr(now), r.Start, r.End)
	}
	return total
}

// Breaks sums break time overlapping r, measuring an open break until now.
func Breaks(src IntervalSource, r Range, now time.Time) time.Duration {
	var total time.Duration
	for _, b := range src.BreakRecords() {
		total += Overlap(b.Start, b.EndOr(now), r.Start, r.End)
	}
	return total
}

// Net is gross minus breaks, never negative.
func Net(src IntervalSource, r Range, now time.Time) time.Duration {
	return netOf(Gross(src, r, now), Breaks(src, r, now))
}

// Compute returns gross, break and net time for r using a single now.
func Compute(src IntervalSource, r Range, now time.Time) Totals {
	gross := Gross(src, r, now)
	breaks := Breaks(src, r, now)
	return Totals{Gross: gross, Breaks: breaks, Net: netOf(gross, breaks)}
}

// ComputePeriod is Compute over the period containing now.
func ComputePeriod(src IntervalSource, p Period, now time.Time) Totals {
	return Compute(src, RangeFor(p, now), now)
}

func netOf(gross, breaks time.Duration) time.Duration {
	if breaks >= gross {
		return 0
	}
	return gross - breaks
}
