// Package ledger holds work sessions, breaks and the event trail, and owns the
// open/close transitions between them. It never computes totals; see package
// accounting for that.
package ledger

import (
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/google/uuid"
)

// Policy captures the behaviors that vary between deployments.
type Policy struct {
	ClockOut   domain.ClockOutPolicy
	BreakScope domain.BreakScope
	Plan       domain.BreakPlan
}

// DefaultPolicy rejects clock-out during a break and restarts the break plan
// on every clock-in.
func DefaultPolicy() Policy {
	return Policy{
		ClockOut:   domain.ClockOutReject,
		BreakScope: domain.BreakScopeSession,
		Plan:       domain.DefaultBreakPlan,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.ClockOut == "" {
		p.ClockOut = def.ClockOut
	}
	if p.BreakScope == "" {
		p.BreakScope = def.BreakScope
	}
	if len(p.Plan) == 0 {
		p.Plan = def.Plan
	}
	return p
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// Ledger is the interval store. It is not safe for concurrent use; one
// logical actor owns it for the duration of a command.
type Ledger struct {
	policy Policy
	sheet  domain.Timesheet
	newID  func() string
}

// New creates an empty ledger.
func New(policy Policy, opts ...Option) *Ledger {
	return Restore(policy, domain.Timesheet{}, opts...)
}

// Restore creates a ledger over previously persisted contents. The timesheet
// is copied; later changes to it do not affect the ledger.
func Restore(policy Policy, sheet domain.Timesheet, opts ...Option) *Ledger {
	l := &Ledger{
		policy: policy.withDefaults(),
		sheet:  sheet.Clone(),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the effective policy.
func (l *Ledger) Policy() Policy { return l.policy }

// Timesheet returns a deep copy of the ledger contents.
func (l *Ledger) Timesheet() domain.Timesheet { return l.sheet.Clone() }

// WorkSessions returns all sessions in chronological order.
func (l *Ledger) WorkSessions() []domain.WorkSession { return l.sheet.Clone().Sessions }

// BreakRecords returns all breaks in chronological order.
func (l *Ledger) BreakRecords() []domain.BreakRecord { return l.sheet.Clone().Breaks }

// Events returns the audit trail newest first.
func (l *Ledger) Events() []domain.EventEntry {
	n := len(l.sheet.Events)
	out := make([]domain.EventEntry, n)
	for i, e := range l.sheet.Events {
		out[n-1-i] = e
	}
	return out
}

var _ accounting.IntervalSource = (*Ledger)(nil)

// ActiveSession returns the open session, if any.
func (l *Ledger) ActiveSession() (domain.WorkSession, bool) {
	if i := l.activeSessionIndex(); i >= 0 {
		return l.sheet.Sessions[i], true
	}
	return domain.WorkSession{}, false
}

// ActiveBreak returns the open break, if any.
func (l *Ledger) ActiveBreak() (domain.BreakRecord, bool) {
	if i := l.activeBreakIndex(); i >= 0 {
		return l.sheet.Breaks[i], true
	}
	return domain.BreakRecord{}, false
}

// Status derives Off/Working/OnBreak from the open intervals.
func (l *Ledger) Status() domain.ClockStatus {
	if _, ok := l.ActiveSession(); !ok {
		return domain.StatusOff
	}
	if _, ok := l.ActiveBreak(); ok {
		return domain.StatusOnBreak
	}
	return domain.StatusWorking
}

// activeSessionIndex scans from the end; the open session is almost always
// the latest one.
func (l *Ledger) activeSessionIndex() int {
	for i := len(l.sheet.Sessions) - 1; i >= 0; i-- {
		if l.sheet.Sessions[i].IsOpen() {
			return i
		}
	}
	return -1
}

func (l *Ledger) activeBreakIndex() int {
	for i := len(l.sheet.Breaks) - 1; i >= 0; i-- {
		if l.sheet.Breaks[i].IsOpen() {
			return i
		}
	}
	return -1
}

// BreaksInScope counts breaks already started in the current scope: the
// active session, or the calendar day containing now.
func (l *Ledger) BreaksInScope(now time.Time) int {
	switch l.policy.BreakScope {
	case domain.BreakScopeDay:
		day := accounting.DayRange(now)
		n := 0
		for _, b := range l.sheet.Breaks {
			if day.Contains(b.Start) {
				n++
			}
		}
		return n
	default:
		active, ok := l.ActiveSession()
		if !ok {
			return 0
		}
		n := 0
		for _, b := range l.sheet.Breaks {
			if b.SessionID == active.ID {
				n++
			}
		}
		return n
	}
}

// Reset discards every session, break and event.
func (l *Ledger) Reset() {
	l.sheet = domain.Timesheet{}
}

func (l *Ledger) appendEvent(at time.Time, label string) {
	l.sheet.Events = append(l.sheet.Events, domain.EventEntry{
		ID:    l.newID(),
		At:    at,
		Label: label,
	})
}

// clampEnd keeps closed intervals from ending before they start when the
// wall clock steps backwards.
func clampEnd(start, now time.Time) time.Time {
	if now.Before(start) {
		return start
	}
	return now
}
