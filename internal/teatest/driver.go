// Package teatest drives bubbletea models synchronously in tests.
//
// The Driver calls Update directly and runs each returned Cmd inline, so a
// test observes the model only after every message it caused has been
// handled. Cmds that block past the driver's timeout (cursor blinks,
// tickers) are dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout suits message factories and in-memory SQLite reads.
const DefaultCmdTimeout = 250 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg comes out of a Cmd.
	Quitting bool

	cmdTimeout time.Duration
}

// New creates a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends an initial WindowSizeMsg.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout changes how long a Cmd may run before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

func (d *Driver) press(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressSpace() { d.T.Helper(); d.press(tea.KeySpace) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.press(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.press(tea.KeyRight) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains fails the test unless the view contains every fragment.
func (d *Driver) ViewContains(fragments ...string) {
	d.T.Helper()
	view := d.View()
	for _, f := range fragments {
		if !strings.Contains(view, f) {
			d.T.Errorf("view does not contain %q:\n%s", f, view)
		}
	}
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drainCmd(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// exec runs cmd and returns nil if it does not finish within the timeout.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}

func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
