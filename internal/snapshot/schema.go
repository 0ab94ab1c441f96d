// Package snapshot defines the persisted document for the timeclock and its
// export envelope. Decoding never fails: absent or malformed input becomes an
// empty timesheet, and legacy browser-era documents are migrated.
package snapshot

import (
	"time"

	"github.com/alexanderramin/punch/internal/domain"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 2

// Document is the version 2 persisted shape.
type Document struct {
	Version  int             `json:"version"`
	Sessions []SessionRecord `json:"sessions"`
	Breaks   []BreakEntry    `json:"breaks"`
	Events   []EventRecord   `json:"events"`
}

// SessionRecord is the persisted form of domain.WorkSession.
type SessionRecord struct {
	ID    string     `json:"id"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// BreakEntry is the persisted form of domain.BreakRecord.
type BreakEntry struct {
	ID             string     `json:"id"`
	SessionID      string     `json:"session_id"`
	Start          time.Time  `json:"start"`
	End            *time.Time `json:"end,omitempty"`
	PlannedMinutes int        `json:"planned_minutes"`
	ActualMinutes  int        `json:"actual_minutes,omitempty"`
	Sequence       int        `json:"sequence"`
	Label          string     `json:"label"`
	Kind           string     `json:"kind"`
}

// EventRecord is the persisted form of domain.EventEntry.
type EventRecord struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Label string    `json:"label"`
}

// FromTimesheet converts domain contents into a version 2 document.
func FromTimesheet(ts domain.Timesheet) Document {
	doc := Document{
		Version:  CurrentVersion,
		Sessions: make([]SessionRecord, 0, len(ts.Sessions)),
		Breaks:   make([]BreakEntry, 0, len(ts.Breaks)),
		Events:   make([]EventRecord, 0, len(ts.Events)),
	}
	for _, s := range ts.Clone().Sessions {
		doc.Sessions = append(doc.Sessions, SessionRecord{ID: s.ID, Start: s.Start, End: s.End})
	}
	for _, b := range ts.Clone().Breaks {
		doc.Breaks = append(doc.Breaks, BreakEntry{
			ID:             b.ID,
			SessionID:      b.SessionID,
			Start:          b.Start,
			End:            b.End,
			PlannedMinutes: b.PlannedMinutes,
			ActualMinutes:  b.ActualMinutes,
			Sequence:       b.Sequence,
			Label:          b.Label,
			Kind:           string(b.Kind),
		})
	}
	for _, e := range ts.Events {
		doc.Events = append(doc.Events, EventRecord{ID: e.ID, At: e.At, Label: e.Label})
	}
	return doc
}

// Timesheet converts the document into domain contents without validation;
// Decode runs Normalize afterwards.
func (d Document) Timesheet() domain.Timesheet {
	ts := domain.Timesheet{
		Sessions: make([]domain.WorkSession, 0, len(d.Sessions)),
		Breaks:   make([]domain.BreakRecord, 0, len(d.Breaks)),
		Events:   make([]domain.EventEntry, 0, len(d.Events)),
	}
	for _, s := range d.Sessions {
		ts.Sessions = append(ts.Sessions, domain.WorkSession{ID: s.ID, Start: s.Start, End: s.End})
	}
	for _, b := range d.Breaks {
		ts.Breaks = append(ts.Breaks, domain.BreakRecord{
			ID:             b.ID,
			SessionID:      b.SessionID,
			Start:          b.Start,
			End:            b.End,
			PlannedMinutes: b.PlannedMinutes,
			ActualMinutes:  b.ActualMinutes,
			Sequence:       b.Sequence,
			Label:          b.Label,
			Kind:           domain.BreakKind(b.Kind),
		})
	}
	for _, e := range d.Events {
		ts.Events = append(ts.Events, domain.EventEntry{ID: e.ID, At: e.At, Label: e.Label})
	}
	return ts
}
