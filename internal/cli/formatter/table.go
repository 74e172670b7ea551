package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders rows under a header and separator line. Column widths
// are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := 0; i < len(widths) && i < len(cells); i++ {
			widths[i] = max(widths[i], lipgloss.Width(cells[i]))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleAccent.Render(h)
	}
	writeRow(&b, widths, styled)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = StyleMuted.Render(strings.Repeat("─", w))
	}
	writeRow(&b, widths, sep)

	for _, row := range rows {
		writeRow(&b, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
		}
	}
	b.WriteString("\n")
}
