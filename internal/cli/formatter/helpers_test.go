package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{-time.Minute, "0m"},
		{59 * time.Second, "0m"},
		{45 * time.Minute, "45m"},
		{time.Hour + 5*time.Minute, "1h 05m"},
		{7*time.Hour + 40*time.Minute + 30*time.Second, "7h 40m"},
		{26 * time.Hour, "26h 00m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "0.00", FormatHours(-time.Hour))
	assert.Equal(t, "7.67", FormatHours(7*time.Hour+40*time.Minute))
	assert.Equal(t, "0.25", FormatHours(15*time.Minute))
}

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatTimer(0))
	assert.Equal(t, "00:00:00", FormatTimer(-time.Second))
	assert.Equal(t, "01:02:03", FormatTimer(time.Hour+2*time.Minute+3*time.Second+900*time.Millisecond))
	assert.Equal(t, "100:00:00", FormatTimer(100*time.Hour))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "30m", FormatMinutes(30))
	assert.Equal(t, "2h 05m", FormatMinutes(125))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"older", now.Add(-48 * time.Hour), "Jan 8 12:00"},
		{"future", now.Add(time.Hour), "Jan 10 13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.at, now))
		})
	}
}

func TestRenderBox_Title(t *testing.T) {
	out := stripANSI(RenderBox("today", "body"))
	assert.Contains(t, out, "TODAY")
	assert.Contains(t, out, "body")
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestRenderTableAligned(t *testing.T) {
	out := stripANSI(RenderTableAligned(
		[]string{"NAME", "N"},
		[][]string{{"a", "1"}, {"bbb", "100"}},
		[]bool{false, true},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME    N", lines[0])
	assert.Equal(t, "a       1", lines[2])
	assert.Equal(t, "bbb   100", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestNoticeAndErrorLine(t *testing.T) {
	assert.Equal(t, "! not clocked in", stripANSI(Notice("not clocked in")))
	assert.Equal(t, "✖ disk full", stripANSI(ErrorLine("disk full")))
}
