package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/db"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
	"github.com/alexanderramin/punch/internal/repository"
	"github.com/alexanderramin/punch/internal/snapshot"
)

// StateRepoFactory builds a state repository bound to a connection or an
// open transaction.
type StateRepoFactory func(conn db.DBTX) repository.StateRepo

type timeclockService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	states   StateRepoFactory
	clock    Clock
	policy   ledger.Policy
	observer UseCaseObserver
}

func NewTimeclockService(
	conn db.DBTX,
	uow db.UnitOfWork,
	states StateRepoFactory,
	clock Clock,
	policy ledger.Policy,
	observers ...UseCaseObserver,
) TimeclockService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &timeclockService{
		conn:     conn,
		uow:      uow,
		states:   states,
		clock:    clock,
		policy:   policy,
		observer: useCaseObserverOrNoop(observers),
	}
}

// transition is one ledger mutation; it fills in the parts of the result it
// knows about.
type transition func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error

// mutate loads the ledger, applies fn and saves inside one transaction. A
// failing fn rolls the transaction back so nothing is written.
func (s *timeclockService) mutate(ctx context.Context, name string, fn transition) (res *app.CommandResult, err error) {
	now := s.clock.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, name, now, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.states(tx)
		ts, err := repo.Load(ctx)
		if err != nil {
			return err
		}
		l := ledger.Restore(s.policy, ts)

		out := &app.CommandResult{}
		if err := fn(l, now, out); err != nil {
			return err
		}
		if err := repo.Save(ctx, l.Timesheet()); err != nil {
			return err
		}
		if events := l.Events(); len(events) > 0 {
			out.Event = events[0]
		}
		out.Overview = BuildOverview(l, now)
		res = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["status"] = string(res.Overview.Status)
	fields["event"] = res.Event.Label
	return res, nil
}

func (s *timeclockService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  s.clock.Now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *timeclockService) ClockIn(ctx context.Context) (*app.CommandResult, error) {
	return s.mutate(ctx, "clock-in", func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error {
		sess, err := l.OpenSession(now)
		if err != nil {
			return err
		}
		res.Session = &sess
		return nil
	})
}

func (s *timeclockService) ClockOut(ctx context.Context) (*app.CommandResult, error) {
	return s.mutate(ctx, "clock-out", func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error {
		open, onBreak := l.ActiveBreak()
		sess, err := l.CloseSession(now)
		if err != nil {
			return err
		}
		res.Session = &sess
		if onBreak {
			for _, b := range l.BreakRecords() {
				if b.ID == open.ID {
					closed := b
					res.AutoClosedBreak = &closed
				}
			}
		}
		return nil
	})
}

func (s *timeclockService) StartBreak(ctx context.Context) (*app.CommandResult, error) {
	return s.mutate(ctx, "start-break", func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error {
		b, err := l.OpenBreak(now)
		if err != nil {
			return err
		}
		res.Break = &b
		return nil
	})
}

func (s *timeclockService) EndBreak(ctx context.Context) (*app.CommandResult, error) {
	return s.mutate(ctx, "end-break", func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error {
		b, err := l.CloseBreak(now)
		if err != nil {
			return err
		}
		res.Break = &b
		return nil
	})
}

// Demo offsets relative to now: clock in 2h20m ago, take Break 1 from 1h05m
// ago for its planned 15 minutes, and keep working. Seeding refuses while a
// session is open or when any session ended inside the demo window.
const (
	seedClockInAgo    = 2*time.Hour + 20*time.Minute
	seedBreakStartAgo = time.Hour + 5*time.Minute
)

func (s *timeclockService) SeedDemo(ctx context.Context) (*app.CommandResult, error) {
	return s.mutate(ctx, "seed-demo", func(l *ledger.Ledger, now time.Time, res *app.CommandResult) error {
		if _, ok := l.ActiveSession(); ok {
			return domain.ErrAlreadyActive
		}
		seedStart := now.Add(-seedClockInAgo)
		// The seeded session must be the latest one, or loading would close it.
		for _, prev := range l.WorkSessions() {
			if prev.EndOr(now).After(seedStart) {
				return domain.ErrRecentWork
			}
		}
		sess, err := l.OpenSession(seedStart)
		if err != nil {
			return err
		}
		breakStart := now.Add(-seedBreakStartAgo)
		if _, err := l.OpenBreak(breakStart); err != nil {
			return fmt.Errorf("seeding break: %w", err)
		}
		planned := s.policy.Plan
		if len(planned) == 0 {
			planned = domain.DefaultBreakPlan
		}
		b, err := l.CloseBreak(breakStart.Add(time.Duration(planned[0].Minutes) * time.Minute))
		if err != nil {
			return fmt.Errorf("seeding break: %w", err)
		}
		res.Session = &sess
		res.Break = &b
		return nil
	})
}

func (s *timeclockService) Reset(ctx context.Context) (err error) {
	now := s.clock.Now()
	defer func() {
		s.observe(ctx, "reset", now, nil, err)
	}()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.states(tx).Clear(ctx)
	})
}

func (s *timeclockService) load(ctx context.Context) (*ledger.Ledger, error) {
	ts, err := s.states(s.conn).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading timesheet: %w", err)
	}
	return ledger.Restore(s.policy, ts), nil
}

func (s *timeclockService) Ledger(ctx context.Context) (*ledger.Ledger, error) {
	return s.load(ctx)
}

func (s *timeclockService) Revision(ctx context.Context) (string, error) {
	return s.states(s.conn).Revision(ctx)
}

func (s *timeclockService) Status(ctx context.Context) (domain.ClockStatus, error) {
	l, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return l.Status(), nil
}

func (s *timeclockService) Totals(ctx context.Context, period accounting.Period) (*app.TotalsView, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	r := accounting.RangeFor(period, now)
	return &app.TotalsView{
		Period: period,
		Range:  r,
		Totals: accounting.Compute(l, r, now),
	}, nil
}

func (s *timeclockService) NextBreakInfo(ctx context.Context) (ledger.NextBreak, error) {
	l, err := s.load(ctx)
	if err != nil {
		return ledger.NextBreak{}, err
	}
	return l.NextBreak(s.clock.Now()), nil
}

func (s *timeclockService) ActiveElapsed(ctx context.Context) (time.Duration, error) {
	l, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return l.ActiveElapsed(s.clock.Now()), nil
}

func (s *timeclockService) Overview(ctx context.Context) (*app.Overview, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ov := BuildOverview(l, s.clock.Now())
	return &ov, nil
}

// Events returns the newest limit events; limit <= 0 returns all of them.
func (s *timeclockService) Events(ctx context.Context, limit int) ([]domain.EventEntry, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	events := l.Events()
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *timeclockService) Export(ctx context.Context) (res *app.ExportResult, err error) {
	now := s.clock.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, "export", now, fields, err)
	}()

	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := snapshot.EncodeExport(l.Timesheet(), now)
	if err != nil {
		return nil, err
	}
	fields["bytes"] = len(data)
	return &app.ExportResult{
		Data:       data,
		FileName:   snapshot.ExportFileName(now),
		ExportedAt: now,
	}, nil
}

// BuildOverview computes every dashboard figure from l at now. It is pure, so
// the live dashboard can call it on each tick without touching storage.
func BuildOverview(l *ledger.Ledger, now time.Time) app.Overview {
	ov := app.Overview{
		Now:       now,
		Status:    l.Status(),
		Elapsed:   l.ActiveElapsed(now),
		Today:     accounting.ComputePeriod(l, accounting.PeriodDay, now),
		Week:      accounting.ComputePeriod(l, accounting.PeriodWeek, now),
		Month:     accounting.ComputePeriod(l, accounting.PeriodMonth, now),
		NextBreak: l.NextBreak(now),
	}
	if sess, ok := l.ActiveSession(); ok {
		ov.ActiveSession = &sess
	}
	if b, ok := l.ActiveBreak(); ok {
		ov.ActiveBreak = &b
	}
	return ov
}
