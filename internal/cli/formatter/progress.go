package formatter

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderTargetProgress shows net work against a daily target, e.g.
// "[████░░░░] 50% of 8h 00m". Overtime is reported after the bar.
func RenderTargetProgress(net time.Duration, targetMin, width int) string {
	if targetMin <= 0 {
		return ""
	}
	target := time.Duration(targetMin) * time.Minute
	line := RenderProgress(float64(net)/float64(target), width) + Dim(" of "+FormatDuration(target))
	if net > target {
		line += " " + StyleGreen.Render("+"+FormatDuration(net-target))
	}
	return line
}
