package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/punch/internal/config"
	"github.com/alexanderramin/punch/internal/db"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
	"github.com/alexanderramin/punch/internal/repository"
	"github.com/alexanderramin/punch/internal/service"
	"github.com/alexanderramin/punch/internal/testutil"
)

// wednesday is 2024-01-10 09:00 local.
var wednesday = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *testutil.FakeClock) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewFakeClock(wednesday)
	states := func(conn db.DBTX) repository.StateRepo {
		return repository.NewSQLiteStateRepo(conn)
	}

	svc := service.NewTimeclockService(database, testutil.NewTestUoW(database), states, clock, ledger.DefaultPolicy())
	return &App{
		Timeclock:     svc,
		Config:        config.DefaultConfig(),
		IsInteractive: func() bool { return false },
		Now:           clock.Now,
	}, clock
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return plain(buf.String()), err
}

func TestClockInOut(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmd(t, app, "in")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Clock In at 09:00")
	assert.Contains(t, out, "Next break: Break 1 (15 min)")

	clock.Advance(2 * time.Hour)
	out, err = executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Working")
	assert.Contains(t, out, "02:00:00")

	_, err = executeCmd(t, app, "in")
	require.ErrorIs(t, err, domain.ErrAlreadyActive)

	out, err = executeCmd(t, app, "out")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Clock Out at 11:00")
	assert.Contains(t, out, "Today net: 2h 00m")
}

func TestOutWhileOff(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "out")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestBreakStartEnd(t *testing.T) {
	app, clock := testApp(t)
	_, err := executeCmd(t, app, "in")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	out, err := executeCmd(t, app, "break", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Start Break 1 (15 min)")
	assert.Contains(t, out, "Planned 15 min")

	_, err = executeCmd(t, app, "out")
	require.ErrorIs(t, err, domain.ErrBreakStillOpen)

	clock.Advance(20 * time.Minute)
	out, err = executeCmd(t, app, "break", "end")
	require.NoError(t, err)
	assert.Contains(t, out, "End Break 1 (15 min) (20 min)")
	assert.Contains(t, out, "Next break: Lunch (30 min)")

	out, err = executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Regexp(t, `Break 1\s+break\s+15\s+taken`, out)
	assert.Regexp(t, `Lunch\s+lunch\s+30\s+next`, out)
}

func TestTotalsCmd(t *testing.T) {
	app, clock := testApp(t)
	_, err := executeCmd(t, app, "in")
	require.NoError(t, err)
	clock.Advance(3 * time.Hour)

	out, err := executeCmd(t, app, "totals")
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY")
	assert.Regexp(t, `Net\s+3h 00m\s+3.00`, out)

	out, err = executeCmd(t, app, "totals", "--period", "WEEK")
	require.NoError(t, err)
	assert.Contains(t, out, "THIS WEEK")

	out, err = executeCmd(t, app, "totals", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY")
	assert.Contains(t, out, "THIS WEEK")
	assert.Contains(t, out, "THIS MONTH")

	_, err = executeCmd(t, app, "totals", "--period", "year")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period")
}

func TestLogCmd(t *testing.T) {
	app, clock := testApp(t)
	_, err := executeCmd(t, app, "in")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = executeCmd(t, app, "out")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "Clock In")
	assert.Contains(t, out, "Clock Out")

	out, err = executeCmd(t, app, "log", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Clock Out")
	assert.NotContains(t, out, "Clock In")
}

func TestLogCmd_ListsSessionsAndBreaks(t *testing.T) {
	app, clock := testApp(t)
	steps := []struct {
		args    []string
		advance time.Duration
	}{
		{[]string{"in"}, time.Hour},
		{[]string{"break", "start"}, 17 * time.Minute},
		{[]string{"break", "end"}, time.Hour},
		{[]string{"out"}, 30 * time.Minute},
		{[]string{"in"}, 0},
	}
	for _, s := range steps {
		_, err := executeCmd(t, app, s.args...)
		require.NoError(t, err, "punch %v", s.args)
		clock.Advance(s.advance)
	}

	out, err := executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Regexp(t, `09:00 → 11:17\s+\(137 min\)`, out)
	assert.Regexp(t, `11:47 → now\s+\(0 min\)`, out)
	assert.Regexp(t, `Break 1\s+10:00 → 10:17\s+planned 15m, actual 17m`, out)

	out, err = executeCmd(t, app, "log", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "11:47 → now")
	assert.NotContains(t, out, "11:17 (", "limit applies to sessions too")
}

func TestLogCmd_Empty(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries yet")
}

func TestExportCmd(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "in")
	require.NoError(t, err)

	t.Run("stdout", func(t *testing.T) {
		out, err := executeCmd(t, app, "export", "--out", "-")
		require.NoError(t, err)
		assert.Contains(t, out, `"exportedAt"`)
		assert.Contains(t, out, `"version": 2`)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.json")
		out, err := executeCmd(t, app, "export", "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported to "+path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"sessions"`)
	})

	t.Run("clipboard", func(t *testing.T) {
		var copied string
		app.CopyToClipboard = func(text string) error {
			copied = text
			return nil
		}
		t.Cleanup(func() { app.CopyToClipboard = nil })

		out, err := executeCmd(t, app, "export", "--clipboard")
		require.NoError(t, err)
		assert.Contains(t, out, "copied to clipboard")
		assert.Contains(t, copied, `"state"`)
	})

	t.Run("clipboard unavailable", func(t *testing.T) {
		_, err := executeCmd(t, app, "export", "--clipboard")
		require.Error(t, err)
	})
}

func TestResetCmd(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "in")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "reset")
	require.Error(t, err, "non-interactive reset needs --yes")
	assert.Contains(t, err.Error(), "--yes")

	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string, string) (bool, error) { return false, nil }
	_, err = executeCmd(t, app, "reset")
	require.ErrorIs(t, err, errCanceled)

	status, err := app.Timeclock.Status(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWorking, status, "declined reset keeps data")

	app.Confirm = func(string, string) (bool, error) { return true, nil }
	out, err := executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared")

	status, err = app.Timeclock.Status(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOff, status)
}

func TestSeedCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "seed", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "End Break 1 (15 min) (15 min)")
	assert.Contains(t, out, "Next break: Lunch (30 min)")

	_, err = executeCmd(t, app, "seed", "-y")
	require.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestSeedCmd_HelpExplainsRefusal(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app, "seed", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Refuses while a session is open")
	assert.Contains(t, out, "never overwritten")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"nil", nil, 0, ""},
		{"precondition", domain.ErrNoActiveBreak, 2, "! not on a break"},
		{"canceled", errCanceled, 1, "Canceled."},
		{"failure", errors.New("disk full"), 1, "✖ Error: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, ReportError(&buf, tt.err))
			assert.Equal(t, tt.want, plain(strings.TrimSpace(buf.String())))
		})
	}
}
