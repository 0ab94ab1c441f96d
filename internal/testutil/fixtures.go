package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/punch/internal/domain"
)

// Session options
type SessionOption func(*domain.WorkSession)

func WithSessionID(id string) SessionOption {
	return func(s *domain.WorkSession) {
		s.ID = id
	}
}

func WithSessionEnd(end time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.End = &end
	}
}

func NewTestSession(start time.Time, opts ...SessionOption) domain.WorkSession {
	s := domain.WorkSession{
		ID:    uuid.New().String(),
		Start: start,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Break options
type BreakOption func(*domain.BreakRecord)

func WithBreakEnd(end time.Time) BreakOption {
	return func(b *domain.BreakRecord) {
		b.End = &end
		b.ActualMinutes = domain.ActualMinutesBetween(b.Start, end)
	}
}

func WithSequence(seq int) BreakOption {
	return func(b *domain.BreakRecord) {
		b.Sequence = seq
		if entry, ok := domain.DefaultBreakPlan.ForSequence(seq); ok {
			b.Label = entry.Label
			b.PlannedMinutes = entry.Minutes
			b.Kind = entry.Kind
		}
	}
}

// NewTestBreak builds the first planned break of sessionID starting at start.
// Apply WithSequence before WithBreakEnd when both are used.
func NewTestBreak(sessionID string, start time.Time, opts ...BreakOption) domain.BreakRecord {
	first := domain.DefaultBreakPlan[0]
	b := domain.BreakRecord{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		Start:          start,
		PlannedMinutes: first.Minutes,
		Sequence:       1,
		Label:          first.Label,
		Kind:           first.Kind,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// NewTestTimesheet bundles sessions and breaks into a timesheet.
func NewTestTimesheet(sessions []domain.WorkSession, breaks ...domain.BreakRecord) domain.Timesheet {
	return domain.Timesheet{Sessions: sessions, Breaks: breaks}
}
