package cli

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
)

func boardwalkHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorDanger)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

func validateTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s) < contract.MinTitleLen {
		return errors.New("title is too short")
	}
	return nil
}

// titleForm returns a single-field form collecting a title.
func titleForm(label string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(label).
				Value(value).
				Validate(validateTitle),
		),
	).WithTheme(boardwalkHuhTheme()).WithShowHelp(false)
}

// titleArg takes the title from args, or prompts for it on a terminal.
func titleArg(a *App, args []string, label string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !a.interactive() {
		return "", errors.New("title is required")
	}
	var title string
	if err := titleForm(label, &title).Run(); err != nil {
		return "", err
	}
	return title, nil
}
