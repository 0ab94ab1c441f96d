package ledger

import (
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/domain"
)

// NextBreak describes what the break button would do right now.
type NextBreak struct {
	Status    domain.ClockStatus
	Active    *domain.BreakRecord
	Next      *domain.BreakPlanEntry
	Sequence  int
	Taken     int
	Exhausted bool
	// Remaining counts plan entries not yet started in scope.
	Remaining int
	Plan      domain.BreakPlan
}

// NextBreak reports the active break or the next planned one.
func (l *Ledger) NextBreak(now time.Time) NextBreak {
	info := NextBreak{Status: l.Status(), Plan: l.policy.Plan}
	if b, ok := l.ActiveBreak(); ok {
		info.Active = &b
		info.Sequence = b.Sequence
		info.Taken = l.BreaksInScope(now)
		info.Remaining = accounting.RemainingBreaks(l.policy.Plan, info.Taken)
		return info
	}
	if info.Status == domain.StatusOff && l.policy.BreakScope == domain.BreakScopeSession {
		return info
	}
	info.Taken = l.BreaksInScope(now)
	info.Sequence = info.Taken + 1
	info.Remaining = accounting.RemainingBreaks(l.policy.Plan, info.Taken)
	if entry, ok := accounting.NextPlannedBreak(l.policy.Plan, info.Taken); ok {
		info.Next = &entry
	} else {
		info.Exhausted = true
	}
	return info
}

// ActiveElapsed is the running-timer value: time on the current break, else
// time since clock-in, else zero.
func (l *Ledger) ActiveElapsed(now time.Time) time.Duration {
	var start time.Time
	if b, ok := l.ActiveBreak(); ok {
		start = b.Start
	} else if s, ok := l.ActiveSession(); ok {
		start = s.Start
	} else {
		return 0
	}
	if now.Before(start) {
		return 0
	}
	return now.Sub(start)
}
