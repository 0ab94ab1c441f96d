package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/punch/internal/domain"
)

func TestFormatEvents(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	events := []domain.EventEntry{
		{At: now.Add(-10 * time.Minute), Label: "End Break 1 (15 min) (20 min)"},
		{At: now.Add(-30 * time.Minute), Label: "Start Break 1 (15 min)"},
		{At: now.Add(-3 * time.Hour), Label: "Clock In"},
	}
	out := stripANSI(FormatEvents(events, now))

	assert.Contains(t, out, "EVENT")
	assert.Regexp(t, `Wed Jan 10\s+11:50\s+End Break 1 \(15 min\) \(20 min\)\s+10m ago`, out)
	assert.Regexp(t, `09:00\s+Clock In\s+3h ago`, out)
}

func TestFormatEvents_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatEvents(nil, time.Now())), "No entries yet")
}

func TestFormatSessions(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	end := now.Add(-4 * time.Hour)
	sessions := []domain.WorkSession{
		{ID: "open", Start: now.Add(-30 * time.Minute)},
		{ID: "done", Start: end.Add(-2 * time.Hour), End: &end},
	}
	out := stripANSI(FormatSessions(sessions, now))

	assert.Contains(t, out, "SESSION")
	assert.Regexp(t, `Wed Jan 10\s+14:30 → now\s+\(30 min\)`, out)
	assert.Regexp(t, `09:00 → 11:00\s+\(120 min\)`, out)
}

func TestFormatBreaks(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return time.Date(2024, 1, 10, h, m, 0, 0, time.Local) }
	end1, end2 := at(10, 17), at(12, 25)

	tests := []struct {
		name string
		b    domain.BreakRecord
		want string
	}{
		{
			name: "overrun",
			b: domain.BreakRecord{Start: at(10, 0), End: &end1, PlannedMinutes: 15, ActualMinutes: 17,
				Label: "Break 1", Kind: domain.BreakKindBreak},
			want: `Break 1\s+10:00 → 10:17\s+planned 15m, actual 17m`,
		},
		{
			name: "short lunch",
			b: domain.BreakRecord{Start: at(12, 0), End: &end2, PlannedMinutes: 30, ActualMinutes: 25,
				Label: "Lunch", Kind: domain.BreakKindLunch},
			want: `lunch Lunch\s+12:00 → 12:25\s+planned 30m, actual 25m`,
		},
		{
			name: "running",
			b:    domain.BreakRecord{Start: at(14, 50), PlannedMinutes: 15, Label: "Break 2", Kind: domain.BreakKindBreak},
			want: `14:50 → now\s+planned 15m, running 10m`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripANSI(FormatBreaks([]domain.BreakRecord{tt.b}, now))
			assert.Regexp(t, tt.want, out)
		})
	}
}

func TestFormatLog(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	start := now.Add(-time.Hour)
	events := []domain.EventEntry{{At: start, Label: "Clock In"}}
	sessions := []domain.WorkSession{{ID: "s1", Start: start}}

	out := stripANSI(FormatLog(events, sessions, nil, now))
	assert.Contains(t, out, "EVENTS")
	assert.Contains(t, out, "SESSIONS")
	assert.NotContains(t, out, "BREAKS", "no breaks section without breaks")
	assert.Contains(t, out, "11:00 → now")

	assert.Contains(t, stripANSI(FormatLog(nil, nil, nil, now)), "No entries yet")
}
