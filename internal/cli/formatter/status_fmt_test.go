package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

var fmtNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func workingOverview() app.Overview {
	start := fmtNow.Add(-3 * time.Hour)
	lunch := domain.DefaultBreakPlan[1]
	return app.Overview{
		Now:           fmtNow,
		Status:        domain.StatusWorking,
		ActiveSession: &domain.WorkSession{ID: "s", Start: start},
		Elapsed:       3*time.Hour + 4*time.Second,
		Today:         accounting.Totals{Gross: 3 * time.Hour, Breaks: 15 * time.Minute, Net: 2*time.Hour + 45*time.Minute},
		Week:          accounting.Totals{Net: 10 * time.Hour},
		Month:         accounting.Totals{Net: 40*time.Hour + 30*time.Minute},
		NextBreak: ledger.NextBreak{
			Status:   domain.StatusWorking,
			Next:     &lunch,
			Sequence: 2,
			Taken:    1,
			Plan:     domain.DefaultBreakPlan,
		},
	}
}

func TestFormatOverview_Working(t *testing.T) {
	out := stripANSI(FormatOverview(workingOverview(), 480))

	assert.Contains(t, out, "● Working")
	assert.Contains(t, out, "since 09:00")
	assert.Contains(t, out, "Session timer:  03:00:04")
	assert.Contains(t, out, "Next break: Lunch (30 min) · plan: 15 / 30 / 15")
	assert.Contains(t, out, "Gross 3.00h")
	assert.Contains(t, out, "Breaks 0.25h")
	assert.Contains(t, out, "Net 2.75h")
	assert.Contains(t, out, "of 8h 00m")
	assert.Contains(t, out, "Week net 10.00h")
	assert.Contains(t, out, "Month net 40.50h")
}

func TestFormatOverview_OnBreakAndOff(t *testing.T) {
	ov := workingOverview()
	b := domain.BreakRecord{ID: "b", SessionID: "s", Start: fmtNow.Add(-2 * time.Minute), Label: "Lunch", PlannedMinutes: 30, Sequence: 2}
	ov.Status = domain.StatusOnBreak
	ov.ActiveBreak = &b
	ov.Elapsed = 2 * time.Minute
	ov.NextBreak = ledger.NextBreak{Status: domain.StatusOnBreak, Active: &b, Plan: domain.DefaultBreakPlan}

	out := stripANSI(FormatOverview(ov, 480))
	assert.Contains(t, out, "On break")
	assert.Contains(t, out, "Break timer:  00:02:00")
	assert.Contains(t, out, "On break: Lunch (30 min)")

	off := stripANSI(FormatOverview(app.Overview{Status: domain.StatusOff}, 480))
	assert.Contains(t, off, "Off the clock")
	assert.Contains(t, off, "Timer:  00:00:00")
	assert.Contains(t, off, "Next break: —")
}

func TestFormatCommandResult(t *testing.T) {
	ov := workingOverview()
	res := &app.CommandResult{
		Event:    domain.EventEntry{At: fmtNow, Label: "Clock In"},
		Overview: ov,
	}
	out := stripANSI(FormatCommandResult(res))
	assert.Contains(t, out, "✔ Clock In at 12:00")
	assert.Contains(t, out, "Next break: Lunch")

	closed := domain.BreakRecord{Label: "Break 1", PlannedMinutes: 15, ActualMinutes: 7}
	ov.Status = domain.StatusOff
	res = &app.CommandResult{
		Event:           domain.EventEntry{At: fmtNow, Label: "Clock Out"},
		AutoClosedBreak: &closed,
		Overview:        ov,
	}
	out = stripANSI(FormatCommandResult(res))
	assert.Contains(t, out, "Ended Break 1 (15 min) (7 min) before clocking out")
	assert.Contains(t, out, "Today net: 2h 45m")
}
