package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/app"
)

// FormatTotals renders gross, break and net time for one period.
func FormatTotals(v *app.TotalsView) string {
	rows := [][]string{
		{"Gross", FormatDuration(v.Totals.Gross), FormatHours(v.Totals.Gross)},
		{"Breaks", StyleYellow.Render(FormatDuration(v.Totals.Breaks)), StyleYellow.Render(FormatHours(v.Totals.Breaks))},
		{Bold("Net"), StyleGreen.Render(FormatDuration(v.Totals.Net)), StyleGreen.Render(FormatHours(v.Totals.Net))},
	}

	var b strings.Builder
	b.WriteString(Dim(RangeLabel(v.Period, v.Range)) + "\n\n")
	b.WriteString(RenderTableAligned([]string{"", "TIME", "HOURS"}, rows, []bool{false, true, true}))
	return RenderBox(PeriodTitle(v.Period), strings.TrimRight(b.String(), "\n"))
}

// PeriodTitle is the box title for a period.
func PeriodTitle(p accounting.Period) string {
	switch p {
	case accounting.PeriodWeek:
		return "This week"
	case accounting.PeriodMonth:
		return "This month"
	default:
		return "Today"
	}
}

// RangeLabel describes the calendar span of a totals range.
func RangeLabel(p accounting.Period, r accounting.Range) string {
	last := r.End.AddDate(0, 0, -1)
	switch p {
	case accounting.PeriodWeek:
		return fmt.Sprintf("%s – %s", r.Start.Format("Mon Jan 2"), last.Format("Mon Jan 2, 2006"))
	case accounting.PeriodMonth:
		return r.Start.Format("January 2006")
	default:
		return r.Start.Format("Monday, Jan 2, 2006")
	}
}
