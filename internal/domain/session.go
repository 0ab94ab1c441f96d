package domain

import (
	"math"
	"time"
)

// WorkSession is one clock-in/clock-out interval. End is nil while the
// session is active.
type WorkSession struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// IsOpen reports whether the session has not been clocked out yet.
func (s WorkSession) IsOpen() bool {
	return s.End == nil
}

// EndOr returns the session end, or fallback when the session is still open.
func (s WorkSession) EndOr(fallback time.Time) time.Time {
	if s.End == nil {
		return fallback
	}
	return *s.End
}

// BreakRecord is a break taken during a work session. SessionID refers to
// the session the break was started in; it does not own the session.
type BreakRecord struct {
	ID             string
	SessionID      string
	Start          time.Time
	End            *time.Time
	PlannedMinutes int
	ActualMinutes  int
	Sequence       int
	Label          string
	Kind           BreakKind
}

// IsOpen reports whether the break has not been ended yet.
func (b BreakRecord) IsOpen() bool {
	return b.End == nil
}

// EndOr returns the break end, or fallback when the break is still open.
func (b BreakRecord) EndOr(fallback time.Time) time.Time {
	if b.End == nil {
		return fallback
	}
	return *b.End
}

// DisplayLabel is the label used in the event log, e.g. "Break 1 (15 min)".
func (b BreakRecord) DisplayLabel() string {
	return PlanLabel(b.Label, b.PlannedMinutes)
}

// ActualMinutesBetween rounds the break length to whole minutes with a
// floor of one minute.
func ActualMinutesBetween(start, end time.Time) int {
	mins := int(math.Round(end.Sub(start).Minutes()))
	if mins < 1 {
		return 1
	}
	return mins
}

// EventEntry is an audit line such as "Clock In". Entries are never mutated.
type EventEntry struct {
	ID    string
	At    time.Time
	Label string
}

// Timesheet is the plain-data content of the interval store. Slices are kept
// in chronological order.
type Timesheet struct {
	Sessions []WorkSession
	Breaks   []BreakRecord
	Events   []EventEntry
}

// WorkSessions returns the sessions of the timesheet.
func (t Timesheet) WorkSessions() []WorkSession { return t.Sessions }

// BreakRecords returns the breaks of the timesheet.
func (t Timesheet) BreakRecords() []BreakRecord { return t.Breaks }

// IsEmpty reports whether nothing has been recorded.
func (t Timesheet) IsEmpty() bool {
	return len(t.Sessions) == 0 && len(t.Breaks) == 0 && len(t.Events) == 0
}

// Clone returns a deep copy so callers cannot mutate shared end pointers.
func (t Timesheet) Clone() Timesheet {
	out := Timesheet{
		Sessions: make([]WorkSession, len(t.Sessions)),
		Breaks:   make([]BreakRecord, len(t.Breaks)),
		Events:   make([]EventEntry, len(t.Events)),
	}
	for i, s := range t.Sessions {
		s.End = cloneTime(s.End)
		out.Sessions[i] = s
	}
	for i, b := range t.Breaks {
		b.End = cloneTime(b.End)
		out.Breaks[i] = b
	}
	copy(out.Events, t.Events)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
