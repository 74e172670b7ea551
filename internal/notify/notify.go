// Package notify reports the outcome of user actions: on a terminal, in the
// log, or to an in-memory recorder the board view reads its status line from.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

// Writer prints successes to Out and errors to Err.
type Writer struct {
	Out io.Writer
	Err io.Writer
}

func (w Writer) Success(msg string) {
	fmt.Fprintln(w.Out, okStyle.Render("✓")+" "+msg)
}

func (w Writer) Error(msg string) {
	dst := w.Err
	if dst == nil {
		dst = w.Out
	}
	fmt.Fprintln(dst, errStyle.Render("✗")+" "+msg)
}

// Logger sends notifications to a logrus logger.
type Logger struct {
	Log logrus.FieldLogger
}

func (l Logger) Success(msg string) { l.Log.WithField("notify", "success").Info(msg) }
func (l Logger) Error(msg string)   { l.Log.WithField("notify", "error").Warn(msg) }

// Multi fans each notification out to every notifier.
func Multi(ns ...Notifier) Notifier {
	return multi(ns)
}

type multi []Notifier

func (m multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}

// Note is one recorded notification.
type Note struct {
	Msg string
	Err bool
}

// Recorder keeps notifications in memory. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Success(msg string) { r.add(Note{Msg: msg}) }
func (r *Recorder) Error(msg string)   { r.add(Note{Msg: msg, Err: true}) }

func (r *Recorder) add(n Note) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}, false
	}
	return r.notes[len(r.notes)-1], true
}

func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}
