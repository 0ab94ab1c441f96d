package app

import (
	"context"
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

// ClockUseCase covers the four state transitions driven by the user.
type ClockUseCase interface {
	ClockIn(ctx context.Context) (*CommandResult, error)
	ClockOut(ctx context.Context) (*CommandResult, error)
	StartBreak(ctx context.Context) (*CommandResult, error)
	EndBreak(ctx context.Context) (*CommandResult, error)
}

type OverviewUseCase interface {
	Overview(ctx context.Context) (*Overview, error)
}

type TotalsUseCase interface {
	Totals(ctx context.Context, period accounting.Period) (*TotalsView, error)
}

type NextBreakUseCase interface {
	NextBreakInfo(ctx context.Context) (ledger.NextBreak, error)
}

type EventLogUseCase interface {
	Events(ctx context.Context, limit int) ([]domain.EventEntry, error)
}

type ExportUseCase interface {
	Export(ctx context.Context) (*ExportResult, error)
}

// MaintenanceUseCase groups the destructive or demo operations that the CLI
// guards behind a confirmation.
type MaintenanceUseCase interface {
	Reset(ctx context.Context) error
	SeedDemo(ctx context.Context) (*CommandResult, error)
}

// ExportResult is a ready-to-write export document.
type ExportResult struct {
	Data       []byte
	FileName   string
	ExportedAt time.Time
}
