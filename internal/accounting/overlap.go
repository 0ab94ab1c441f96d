// Package accounting derives gross, break and net time from recorded
// intervals. Every function is pure: the caller supplies "now", which stands
// in for the end of any interval that is still open.
package accounting

import "time"

// Overlap returns how much of [aStart, aEnd) falls inside [rStart, rEnd).
// Inverted intervals contribute nothing.
func Overlap(aStart, aEnd, rStart, rEnd time.Time) time.Duration {
	start := aStart
	if rStart.After(start) {
		start = rStart
	}
	end := aEnd
	if rEnd.Before(end) {
		end = rEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
