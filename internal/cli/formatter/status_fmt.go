package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/domain"
)

const statusProgressBarWidth = 20

// TimerLabel names what the running timer is measuring.
func TimerLabel(ov app.Overview) string {
	switch {
	case ov.ActiveBreak != nil:
		return "Break timer"
	case ov.ActiveSession != nil:
		return "Session timer"
	default:
		return "Timer"
	}
}

// FormatOverview renders the status screen: clock state, running timer,
// next break, today's totals with target progress and week/month net hours.
func FormatOverview(ov app.Overview, dailyTargetMin int) string {
	var b strings.Builder

	b.WriteString(StatusPill(ov.Status))
	if ov.ActiveSession != nil {
		b.WriteString(Dim("  since " + ClockTime(ov.ActiveSession.Start)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim(TimerLabel(ov)+":"), Bold(FormatTimer(ov.Elapsed))))
	b.WriteString(NextBreakStyled(ov.NextBreak) + "\n\n")

	b.WriteString(Header("Today") + "\n")
	b.WriteString(totalsLine(ov.Today.Gross, ov.Today.Breaks, ov.Today.Net) + "\n")
	if bar := RenderTargetProgress(ov.Today.Net, dailyTargetMin, statusProgressBarWidth); bar != "" {
		b.WriteString(bar + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %sh   %s %sh\n",
		Dim("Week net"), Bold(FormatHours(ov.Week.Net)),
		Dim("Month net"), Bold(FormatHours(ov.Month.Net)),
	))

	return RenderBox("Punch", strings.TrimRight(b.String(), "\n"))
}

func totalsLine(gross, breaks, net time.Duration) string {
	return fmt.Sprintf("%s %sh   %s %sh   %s %s",
		Dim("Gross"), StyleFg.Render(FormatHours(gross)),
		Dim("Breaks"), StyleYellow.Render(FormatHours(breaks)),
		Dim("Net"), StyleGreen.Render(FormatHours(net)+"h"),
	)
}

// FormatCommandResult renders the one-line confirmation printed after a
// transition, followed by the resulting status.
func FormatCommandResult(res *app.CommandResult) string {
	var b strings.Builder
	if res.AutoClosedBreak != nil {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Ended %s (%d min) before clocking out",
			res.AutoClosedBreak.DisplayLabel(), res.AutoClosedBreak.ActualMinutes)) + "\n")
	}
	b.WriteString(StatusColor(res.Overview.Status).Render("✔ "+res.Event.Label) +
		Dim(" at "+ClockTime(res.Event.At)) + "\n")

	switch res.Overview.Status {
	case domain.StatusOnBreak:
		if res.Break != nil {
			b.WriteString(Dim(fmt.Sprintf("Planned %d min. Run `punch break end` when you're back.", res.Break.PlannedMinutes)) + "\n")
		}
	case domain.StatusWorking:
		b.WriteString(NextBreakText(res.Overview.NextBreak) + "\n")
	case domain.StatusOff:
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Today net:"), Bold(FormatDuration(res.Overview.Today.Net))))
	}
	return b.String()
}
