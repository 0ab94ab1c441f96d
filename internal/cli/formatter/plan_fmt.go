package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
)

// NextBreakText is the plain one-line break hint shown under the timer.
func NextBreakText(nb ledger.NextBreak) string {
	switch {
	case nb.Active != nil:
		return "On break: " + nb.Active.DisplayLabel()
	case nb.Exhausted:
		return "Next break: none (plan complete)"
	case nb.Next != nil:
		return fmt.Sprintf("Next break: %s · plan: %s", nb.Next.DisplayLabel(), nb.Plan.Summary())
	default:
		return "Next break: —"
	}
}

// NextBreakStyled is NextBreakText with color.
func NextBreakStyled(nb ledger.NextBreak) string {
	text := NextBreakText(nb)
	switch {
	case nb.Active != nil:
		return StyleYellow.Render(text)
	case nb.Exhausted:
		return Dim(text)
	case nb.Next != nil:
		return StyleBlue.Render(text)
	default:
		return Dim(text)
	}
}

// FormatPlan renders the break plan with the position of each entry relative
// to the breaks already taken in scope.
func FormatPlan(nb ledger.NextBreak, scope domain.BreakScope) string {
	headers := []string{"#", "BREAK", "KIND", "MINUTES", "STATE"}
	rows := make([][]string, 0, len(nb.Plan))
	for i, entry := range nb.Plan {
		seq := i + 1
		var state string
		switch {
		case nb.Active != nil && nb.Active.Sequence == seq:
			state = StyleYellow.Render("in progress")
		case seq <= nb.Taken:
			state = Dim("taken")
		case nb.Next != nil && nb.Sequence == seq:
			state = StyleGreen.Render("next")
		default:
			state = Dim("planned")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", seq)),
			Bold(entry.Label),
			BreakKindBadge(entry.Kind),
			fmt.Sprintf("%d", entry.Minutes),
			state,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(headers, rows, []bool{true, false, false, true, false}))
	b.WriteString("\n" + NextBreakStyled(nb) + "\n")
	footer := fmt.Sprintf("Plan restarts every %s.", scopeNoun(scope))
	if nb.Next != nil || nb.Active != nil || nb.Exhausted {
		footer = fmt.Sprintf("%s left of %d. ", pluralBreaks(nb.Remaining), len(nb.Plan)) + footer
	}
	b.WriteString(Dim(footer))
	return RenderBox("Break plan", b.String())
}

func scopeNoun(scope domain.BreakScope) string {
	if scope == domain.BreakScopeDay {
		return "calendar day"
	}
	return "clock-in"
}

func pluralBreaks(n int) string {
	if n == 1 {
		return "1 break"
	}
	return fmt.Sprintf("%d breaks", n)
}
