package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

const columnWidth = 24

// FormatBoards renders the org's boards as a table.
func FormatBoards(boards []*domain.Board) string {
	if len(boards) == 0 {
		return Muted("No boards yet. Create one with: boardwalk board add <title>") + "\n"
	}
	rows := make([][]string, len(boards))
	for i, b := range boards {
		rows[i] = []string{ShortID(b.ID), b.Title, Muted(b.UpdatedAt.Format("2006-01-02 15:04"))}
	}
	return RenderTable([]string{"ID", "TITLE", "UPDATED"}, rows)
}

// FormatBoard renders a snapshot as side-by-side list columns.
func FormatBoard(snap *domain.BoardSnapshot) string {
	var b strings.Builder
	b.WriteString(Header(snap.Board.Title))
	b.WriteString("\n")
	if len(snap.Lists) == 0 {
		b.WriteString(Muted("No lists") + "\n")
		return b.String()
	}
	cols := make([]string, len(snap.Lists))
	for i, l := range snap.Lists {
		cols[i] = renderColumn(l)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	return b.String()
}

func renderColumn(l domain.List) string {
	lines := []string{
		StyleListTitle.Render(truncate(l.Title, columnWidth)),
		Muted(ShortID(l.ID)),
	}
	for _, c := range l.Cards {
		lines = append(lines, fmt.Sprintf("%d. %s", c.Order+1, truncate(c.Title, columnWidth-4)))
	}
	if len(l.Cards) == 0 {
		lines = append(lines, Muted("(empty)"))
	}
	return lipgloss.NewStyle().Width(columnWidth).MarginRight(colGap).Render(strings.Join(lines, "\n"))
}

// FormatCard renders one card with its list.
func FormatCard(c *domain.CardWithList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleListTitle.Render(c.Title), Muted(ShortID(c.ID)))
	fmt.Fprintf(&b, "%s %s, position %d\n", Muted("List:"), c.ListTitle, c.Order+1)
	if c.Description != nil && *c.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *c.Description)
	}
	return b.String()
}

// FormatFieldErrors renders field errors sorted by field.
func FormatFieldErrors(fe contract.FieldErrors) string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", StyleFieldKey.Render(k), strings.Join(fe[k], "; "))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
