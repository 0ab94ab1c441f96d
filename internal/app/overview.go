package app

import (
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

// Overview is everything the status screen and dashboard render, computed
// from one ledger snapshot and one reading of the clock.
type Overview struct {
	Now           time.Time
	Status        domain.ClockStatus
	ActiveSession *domain.WorkSession
	ActiveBreak   *domain.BreakRecord
	Elapsed       time.Duration
	Today         accounting.Totals
	Week          accounting.Totals
	Month         accounting.Totals
	NextBreak     ledger.NextBreak
}

// TotalsView is the result of a single-period totals query.
type TotalsView struct {
	Period accounting.Period
	Range  accounting.Range
	Totals accounting.Totals
}

// CommandResult reports what a transition did. Session and Break are set
// when the command touched them; AutoClosedBreak is set when clock-out
// closed a running break first.
type CommandResult struct {
	Event           domain.EventEntry
	Session         *domain.WorkSession
	Break           *domain.BreakRecord
	AutoClosedBreak *domain.BreakRecord
	Overview        Overview
}
