package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette roles shared by command output, prompts and the board view.
var (
	ColorAccent = lipgloss.Color("#fe8019")
	ColorText   = lipgloss.Color("#ebdbb2")
	ColorMuted  = lipgloss.Color("#928374")
	ColorCursor = lipgloss.Color("#83a598")
	ColorHeld   = lipgloss.Color("#fabd2f")
	ColorDanger = lipgloss.Color("#fb4934")
)

var (
	StyleAccent    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleMuted     = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleListTitle = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleCursor    = lipgloss.NewStyle().Foreground(ColorCursor).Bold(true)
	StyleHeld      = lipgloss.NewStyle().Foreground(ColorHeld).Bold(true)
	StyleDanger    = lipgloss.NewStyle().Foreground(ColorDanger)
	StyleFieldKey  = lipgloss.NewStyle().Foreground(ColorHeld)
)

// Header renders a board or section title over a rule of the same width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(upper))
	return StyleAccent.Render(upper) + "\n" + StyleMuted.Render(rule)
}

func Muted(text string) string {
	return StyleMuted.Render(text)
}

// ShortID returns the first eight characters of a uuid.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
