package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestActualMinutesBetween(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want int
	}{
		{"zero floors to one", 0, 1},
		{"seconds floor to one", 20 * time.Second, 1},
		{"rounds down", 15*time.Minute + 29*time.Second, 15},
		{"rounds up", 15*time.Minute + 30*time.Second, 16},
		{"twenty", 20 * time.Minute, 20},
		{"negative floors to one", -5 * time.Minute, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ActualMinutesBetween(testNow, testNow.Add(tc.d)))
		})
	}
}

func TestWorkSession_EndOr(t *testing.T) {
	open := WorkSession{ID: "s1", Start: testNow}
	assert.True(t, open.IsOpen())
	assert.Equal(t, testNow.Add(time.Hour), open.EndOr(testNow.Add(time.Hour)))

	end := testNow.Add(2 * time.Hour)
	closed := WorkSession{ID: "s1", Start: testNow, End: &end}
	assert.False(t, closed.IsOpen())
	assert.Equal(t, end, closed.EndOr(testNow.Add(time.Hour)))
}

func TestBreakRecord_DisplayLabel(t *testing.T) {
	b := BreakRecord{Label: "Lunch", PlannedMinutes: 30}
	assert.Equal(t, "Lunch (30 min)", b.DisplayLabel())
}

func TestTimesheet_CloneIsDeep(t *testing.T) {
	end := testNow.Add(time.Hour)
	ts := Timesheet{
		Sessions: []WorkSession{{ID: "s1", Start: testNow, End: &end}},
		Breaks:   []BreakRecord{{ID: "b1", SessionID: "s1", Start: testNow, End: &end}},
		Events:   []EventEntry{{ID: "e1", At: testNow, Label: "Clock In"}},
	}

	cp := ts.Clone()
	*cp.Sessions[0].End = testNow.Add(5 * time.Hour)
	*cp.Breaks[0].End = testNow.Add(5 * time.Hour)
	cp.Events[0].Label = "changed"

	assert.Equal(t, end, *ts.Sessions[0].End)
	assert.Equal(t, end, *ts.Breaks[0].End)
	assert.Equal(t, "Clock In", ts.Events[0].Label)
	assert.False(t, ts.IsEmpty())
	assert.True(t, Timesheet{}.IsEmpty())
}

func TestIsPrecondition(t *testing.T) {
	for _, err := range []error{
		ErrAlreadyActive, ErrNoActiveSession, ErrBreakAlreadyActive,
		ErrNoActiveBreak, ErrPlanExhausted, ErrBreakStillOpen, ErrRecentWork,
	} {
		assert.True(t, IsPrecondition(fmt.Errorf("clock out: %w", err)), "err=%v", err)
	}
	assert.False(t, IsPrecondition(errors.New("disk full")))
	assert.False(t, IsPrecondition(nil))
}

func TestDefaultBreakPlan(t *testing.T) {
	require.Len(t, DefaultBreakPlan, 3)
	assert.Equal(t, "15 / 30 / 15", DefaultBreakPlan.Summary())

	lunch, ok := DefaultBreakPlan.ForSequence(2)
	require.True(t, ok)
	assert.Equal(t, BreakKindLunch, lunch.Kind)
	assert.Equal(t, "Lunch (30 min)", lunch.DisplayLabel())

	_, ok = DefaultBreakPlan.ForSequence(4)
	assert.False(t, ok, "plan has no fourth break")
	_, ok = DefaultBreakPlan.At(-1)
	assert.False(t, ok)
}
