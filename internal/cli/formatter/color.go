package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/punch/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a clock status.
func StatusColor(status domain.ClockStatus) lipgloss.Style {
	switch status {
	case domain.StatusWorking:
		return StyleGreen
	case domain.StatusOnBreak:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● Working".
func StatusPill(status domain.ClockStatus) string {
	switch status {
	case domain.StatusWorking:
		return StyleGreen.Render("● Working")
	case domain.StatusOnBreak:
		return StyleYellow.Render("◐ On break")
	case domain.StatusOff:
		return StyleDim.Render("○ Off the clock")
	default:
		return StyleDim.Render(string(status))
	}
}

// BreakKindBadge labels lunch breaks distinctly from short ones.
func BreakKindBadge(kind domain.BreakKind) string {
	if kind == domain.BreakKindLunch {
		return StylePurple.Render("lunch")
	}
	return StyleBlue.Render("break")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Notice renders a recoverable problem, such as a refused command.
func Notice(text string) string {
	return StyleYellow.Render("! " + text)
}

// ErrorLine renders a failure that stopped the command.
func ErrorLine(text string) string {
	return StyleRed.Render("✖ " + text)
}
