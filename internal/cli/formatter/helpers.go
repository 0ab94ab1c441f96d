package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatDuration renders a duration as "7h 40m", "45m" or "0m", truncating
// seconds.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	total := int(d / time.Minute)
	h, m := total/60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders a duration as decimal hours with two places.
func FormatHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2f", d.Hours())
}

// FormatTimer renders the running timer as HH:MM:SS. Hours grow past two
// digits rather than wrapping.
func FormatTimer(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	return FormatDuration(time.Duration(min) * time.Minute)
}

// ClockTime renders the wall-clock time of t, e.g. "09:05".
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// HumanTimestampFrom returns a relative timestamp like "5m ago", falling back
// to a short date for anything older than a day.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}
