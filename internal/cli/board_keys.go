package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeys struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Grab   key.Binding
	Cancel key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Grab:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "grab/drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel move")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Cancel, k.Help, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Grab, k.Cancel, k.Reload},
		{k.Help, k.Quit},
	}
}
