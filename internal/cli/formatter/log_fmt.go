package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punch/internal/domain"
)

// FormatEvents renders the event log newest first.
func FormatEvents(events []domain.EventEntry, now time.Time) string {
	if len(events) == 0 {
		return Dim("No entries yet. Run `punch in` to start.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			Dim(e.At.Format("Mon Jan 2")),
			ClockTime(e.At),
			eventStyle(e.Label),
			Dim(HumanTimestampFrom(e.At, now)),
		})
	}
	return RenderTable([]string{"DATE", "TIME", "EVENT", "WHEN"}, rows)
}

// FormatLog renders the event trail followed by the sessions and breaks it
// describes. Each slice is expected newest first.
func FormatLog(events []domain.EventEntry, sessions []domain.WorkSession, breaks []domain.BreakRecord, now time.Time) string {
	if len(events) == 0 && len(sessions) == 0 {
		return FormatEvents(nil, now)
	}
	sections := []string{Header("Events") + "\n" + FormatEvents(events, now)}
	if len(sessions) > 0 {
		sections = append(sections, Header("Sessions")+"\n"+FormatSessions(sessions, now))
	}
	if len(breaks) > 0 {
		sections = append(sections, Header("Breaks")+"\n"+FormatBreaks(breaks, now))
	}
	return strings.Join(sections, "\n\n")
}

// FormatSessions lists work sessions as "09:00 → 11:00 (120 min)". An open
// session runs to now.
func FormatSessions(sessions []domain.WorkSession, now time.Time) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		end := StyleGreen.Render("now")
		if !s.IsOpen() {
			end = ClockTime(*s.End)
		}
		rows = append(rows, []string{
			Dim(s.Start.Format("Mon Jan 2")),
			ClockTime(s.Start) + " → " + end,
			Dim(fmt.Sprintf("(%d min)", spanMinutes(s.Start, s.EndOr(now)))),
		})
	}
	return RenderTable([]string{"DATE", "SESSION", "LENGTH"}, rows)
}

// FormatBreaks lists breaks with their planned and actual length. Overruns
// are shown in red.
func FormatBreaks(breaks []domain.BreakRecord, now time.Time) string {
	rows := make([][]string, 0, len(breaks))
	for _, b := range breaks {
		end := StyleYellow.Render("now")
		note := fmt.Sprintf("planned %s, running %s", FormatMinutes(b.PlannedMinutes), FormatMinutes(spanMinutes(b.Start, now)))
		if !b.IsOpen() {
			end = ClockTime(*b.End)
			note = fmt.Sprintf("planned %s, actual %s", FormatMinutes(b.PlannedMinutes), FormatMinutes(b.ActualMinutes))
		}
		if !b.IsOpen() && b.ActualMinutes > b.PlannedMinutes {
			note = StyleRed.Render(note)
		} else {
			note = Dim(note)
		}
		rows = append(rows, []string{
			Dim(b.Start.Format("Mon Jan 2")),
			BreakKindBadge(b.Kind) + " " + Bold(b.Label),
			ClockTime(b.Start) + " → " + end,
			note,
		})
	}
	return RenderTable([]string{"DATE", "BREAK", "TIME", "LENGTH"}, rows)
}

func spanMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

func eventStyle(label string) string {
	switch {
	case label == "Clock In":
		return StyleGreen.Render(label)
	case label == "Clock Out":
		return StyleRed.Render(label)
	case strings.HasPrefix(label, "Start "):
		return StyleYellow.Render(label)
	case strings.HasPrefix(label, "End "):
		return StyleBlue.Render(label)
	default:
		return StyleFg.Render(label)
	}
}
