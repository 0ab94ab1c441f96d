package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/punch/internal/domain"
)

// Normalize repairs a decoded timesheet so that it satisfies the store
// invariants: every interval has a start and an ID, no interval ends before
// it starts, at most one session and one break are open, and breaks carry
// plan fields. It returns the repaired copy and a note per repair.
func Normalize(ts domain.Timesheet, plan domain.BreakPlan) (domain.Timesheet, []string) {
	ts = ts.Clone()
	var problems []string
	note := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	sessions := make([]domain.WorkSession, 0, len(ts.Sessions))
	for _, s := range ts.Sessions {
		if s.Start.IsZero() {
			note("dropped session %q without start", s.ID)
			continue
		}
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if s.End != nil && s.End.Before(s.Start) {
			note("session %s ended before it started", s.ID)
			s.End = timePtr(s.Start)
		}
		sessions = append(sessions, s)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Start.Before(sessions[j].Start) })

	openSessionID := ""
	for i := range sessions {
		if !sessions[i].IsOpen() {
			continue
		}
		if next := laterStart(sessions, i); next != nil {
			note("closed stale open session %s", sessions[i].ID)
			sessions[i].End = timePtr(*next)
			continue
		}
		openSessionID = sessions[i].ID
	}
	sessionEnd := make(map[string]*time.Time, len(sessions))
	for _, s := range sessions {
		sessionEnd[s.ID] = s.End
	}

	breaks := make([]domain.BreakRecord, 0, len(ts.Breaks))
	for _, b := range ts.Breaks {
		if b.Start.IsZero() {
			note("dropped break %q without start", b.ID)
			continue
		}
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.End != nil && b.End.Before(b.Start) {
			note("break %s ended before it started", b.ID)
			b.End = timePtr(b.Start)
		}
		breaks = append(breaks, b)
	}
	sort.SliceStable(breaks, func(i, j int) bool { return breaks[i].Start.Before(breaks[j].Start) })

	lastOpen := -1
	for i := range breaks {
		if breaks[i].IsOpen() {
			lastOpen = i
		}
	}
	perSession := make(map[string]int)
	for i := range breaks {
		b := &breaks[i]
		if b.IsOpen() && (i != lastOpen || openSessionID == "" || b.SessionID != openSessionID) {
			note("closed stale open break %s", b.ID)
			end := b.Start
			if se := sessionEnd[b.SessionID]; se != nil && se.After(end) {
				end = *se
			}
			b.End = timePtr(end)
		}

		perSession[b.SessionID]++
		if b.Sequence <= 0 {
			b.Sequence = perSession[b.SessionID]
		}
		fillPlanFields(b, plan)
		if !b.IsOpen() && b.ActualMinutes <= 0 {
			b.ActualMinutes = domain.ActualMinutesBetween(b.Start, *b.End)
		}
	}

	events := make([]domain.EventEntry, 0, len(ts.Events))
	for _, e := range ts.Events {
		if e.At.IsZero() {
			note("dropped event %q without timestamp", e.Label)
			continue
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At.Before(events[j].At) })

	return domain.Timesheet{Sessions: sessions, Breaks: breaks, Events: events}, problems
}

// fillPlanFields supplies label, planned minutes and kind from the plan entry
// at the break's sequence. Breaks past the end of the plan get a generic
// "Break N" with the first entry's duration.
func fillPlanFields(b *domain.BreakRecord, plan domain.BreakPlan) {
	entry, ok := plan.ForSequence(b.Sequence)
	if !ok {
		entry = domain.BreakPlanEntry{
			Label:   fmt.Sprintf("Break %d", b.Sequence),
			Minutes: 15,
			Kind:    domain.BreakKindBreak,
		}
		if first, ok := plan.At(0); ok {
			entry.Minutes = first.Minutes
		}
	}
	if b.Label == "" {
		b.Label = entry.Label
	}
	if b.PlannedMinutes <= 0 {
		b.PlannedMinutes = entry.Minutes
	}
	if !domain.ValidBreakKinds[string(b.Kind)] {
		b.Kind = entry.Kind
	}
}

// laterStart returns the start of the first session after index i that
// begins no earlier than it, or nil when i is the latest session.
func laterStart(sessions []domain.WorkSession, i int) *time.Time {
	for j := i + 1; j < len(sessions); j++ {
		if !sessions[j].Start.Before(sessions[i].Start) {
			t := sessions[j].Start
			return &t
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }
