package ledger

import (
	"fmt"
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/domain"
)

// OpenSession clocks in at now.
func (l *Ledger) OpenSession(now time.Time) (domain.WorkSession, error) {
	if _, ok := l.ActiveSession(); ok {
		return domain.WorkSession{}, domain.ErrAlreadyActive
	}
	s := domain.WorkSession{ID: l.newID(), Start: now}
	l.sheet.Sessions = append(l.sheet.Sessions, s)
	l.appendEvent(now, "Clock In")
	return s, nil
}

// CloseSession clocks out at now. An open break is rejected or closed first,
// depending on the clock-out policy.
func (l *Ledger) CloseSession(now time.Time) (domain.WorkSession, error) {
	si := l.activeSessionIndex()
	if si < 0 {
		return domain.WorkSession{}, domain.ErrNoActiveSession
	}
	if _, onBreak := l.ActiveBreak(); onBreak {
		if l.policy.ClockOut != domain.ClockOutForceClose {
			return domain.WorkSession{}, domain.ErrBreakStillOpen
		}
		if _, err := l.CloseBreak(now); err != nil {
			return domain.WorkSession{}, fmt.Errorf("closing break before clock-out: %w", err)
		}
	}

	end := clampEnd(l.sheet.Sessions[si].Start, now)
	l.sheet.Sessions[si].End = &end
	l.appendEvent(now, "Clock Out")
	return l.sheet.Sessions[si], nil
}

// OpenBreak starts the next planned break at now.
func (l *Ledger) OpenBreak(now time.Time) (domain.BreakRecord, error) {
	session, ok := l.ActiveSession()
	if !ok {
		return domain.BreakRecord{}, domain.ErrNoActiveSession
	}
	if _, onBreak := l.ActiveBreak(); onBreak {
		return domain.BreakRecord{}, domain.ErrBreakAlreadyActive
	}
	taken := l.BreaksInScope(now)
	entry, ok := accounting.NextPlannedBreak(l.policy.Plan, taken)
	if !ok {
		return domain.BreakRecord{}, domain.ErrPlanExhausted
	}

	b := domain.BreakRecord{
		ID:             l.newID(),
		SessionID:      session.ID,
		Start:          now,
		PlannedMinutes: entry.Minutes,
		Sequence:       taken + 1,
		Label:          entry.Label,
		Kind:           entry.Kind,
	}
	l.sheet.Breaks = append(l.sheet.Breaks, b)
	l.appendEvent(now, "Start "+b.DisplayLabel())
	return b, nil
}

// CloseBreak ends the open break at now and records its actual length.
func (l *Ledger) CloseBreak(now time.Time) (domain.BreakRecord, error) {
	bi := l.activeBreakIndex()
	if bi < 0 {
		return domain.BreakRecord{}, domain.ErrNoActiveBreak
	}
	b := &l.sheet.Breaks[bi]
	end := clampEnd(b.Start, now)
	b.End = &end
	b.ActualMinutes = domain.ActualMinutesBetween(b.Start, end)
	l.appendEvent(now, fmt.Sprintf("End %s (%d min)", b.DisplayLabel(), b.ActualMinutes))
	return *b, nil
}
