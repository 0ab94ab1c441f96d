package service

import (
	"context"
	"time"

	"github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

// TimeclockService is the collaborator interface over the interval store and
// the accounting engine. Every call reads the clock once; commands persist
// atomically and leave storage untouched when refused.
type TimeclockService interface {
	app.ClockUseCase
	app.OverviewUseCase
	app.TotalsUseCase
	app.NextBreakUseCase
	app.EventLogUseCase
	app.ExportUseCase
	app.MaintenanceUseCase

	Status(ctx context.Context) (domain.ClockStatus, error)
	ActiveElapsed(ctx context.Context) (time.Duration, error)
	// Ledger returns a detached copy of the stored state for callers that
	// recompute views themselves, such as the live dashboard.
	Ledger(ctx context.Context) (*ledger.Ledger, error)
	// Revision changes whenever stored state changes.
	Revision(ctx context.Context) (string, error)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
