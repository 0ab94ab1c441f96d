package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableAligned(headers, rows, nil)
}

// RenderTableAligned is RenderTable with per-column right alignment, used for
// numeric columns. rightAlign may be shorter than headers.
func RenderTableAligned(headers []string, rows [][]string, rightAlign []bool) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	// Measure visible width so ANSI styling does not skew padding.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	right := func(i int) bool { return i < len(rightAlign) && rightAlign[i] }

	var b strings.Builder
	writeCell := func(i int, cell string) {
		pad := max(0, widths[i]-lipgloss.Width(cell))
		if right(i) {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			return
		}
		b.WriteString(cell)
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	for i, h := range headers {
		pad := max(0, widths[i]-lipgloss.Width(h))
		styled := StyleHeader.Render(h)
		if right(i) {
			styled = strings.Repeat(" ", pad) + styled
			pad = 0
		}
		b.WriteString(styled)
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell)
		}
		b.WriteString("\n")
	}

	return b.String()
}
