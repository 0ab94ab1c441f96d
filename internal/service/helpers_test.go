package service

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/punch/internal/db"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
	"github.com/alexanderramin/punch/internal/repository"
	"github.com/alexanderramin/punch/internal/testutil"
)

// wednesday is 2024-01-10 09:00 local, mid-week and mid-month.
var wednesday = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

func sqliteStates(conn db.DBTX) repository.StateRepo {
	return repository.NewSQLiteStateRepo(conn)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type fixture struct {
	db    *sql.DB
	clock *testutil.FakeClock
	obs   *recordingObserver
	svc   TimeclockService
}

func newFixture(t *testing.T, policyOpts ...func(*ledger.Policy)) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewFakeClock(wednesday)
	obs := &recordingObserver{}
	policy := ledger.DefaultPolicy()
	for _, opt := range policyOpts {
		opt(&policy)
	}
	svc := NewTimeclockService(database, testutil.NewTestUoW(database), sqliteStates, clock, policy, obs)
	return &fixture{db: database, clock: clock, obs: obs, svc: svc}
}

func forceClose(p *ledger.Policy) { p.ClockOut = domain.ClockOutForceClose }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
