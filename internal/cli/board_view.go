package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/cli/formatter"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/notify"
	"github.com/alexanderramin/boardwalk/internal/reorder"
)

const boardColumnWidth = 24

// boardLoadedMsg carries a fresh snapshot from the store.
type boardLoadedMsg struct {
	snap *domain.BoardSnapshot
	err  error
}

// movePersistedMsg reports how a reorder request ended.
type movePersistedMsg struct {
	note   string
	failed bool
}

// grab is an item picked up with the keyboard and not yet dropped.
type grab struct {
	typ    reorder.DragType
	id     string
	source reorder.Location
	target reorder.Location
}

func (g grab) drop(dst *reorder.Location) reorder.DropResult {
	return reorder.DropResult{DraggableID: g.id, Type: g.typ, Source: g.source, Destination: dst}
}

// boardModel shows one board as columns and lets the user move lists and
// cards with the keyboard. Moves apply locally first and persist in the
// background.
type boardModel struct {
	ctx     context.Context
	acts    *app.Actions
	log     logrus.FieldLogger
	boardID string
	title   string
	ctrl    *reorder.Controller

	// row -1 is the list header.
	col, row int
	grab     *grab

	status  string
	failed  bool
	saving  int
	loading bool
	err     error

	keys boardKeys
	help help.Model
}

func newBoardModel(ctx context.Context, acts *app.Actions, boardID string, log logrus.FieldLogger) *boardModel {
	return &boardModel{
		ctx:     ctx,
		acts:    acts,
		log:     log,
		boardID: boardID,
		row:     -1,
		loading: true,
		keys:    newBoardKeys(),
		help:    help.New(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	ctx, acts, id := m.ctx, m.acts, m.boardID
	return func() tea.Msg {
		snap, err := fetch(ctx, acts.GetBoard, contract.GetBoardInput{BoardID: id})
		return boardLoadedMsg{snap: snap, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.title = msg.snap.Board.Title
		if m.ctrl == nil {
			m.ctrl = reorder.NewController(msg.snap.Board.ID, msg.snap.Lists)
		} else {
			m.ctrl.Sync(msg.snap.Lists)
		}
		m.grab = nil
		m.clampCursor()
		return m, nil

	case movePersistedMsg:
		m.saving--
		m.status = msg.note
		m.failed = msg.failed
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m.load()
	}

	if m.ctrl == nil {
		return nil
	}
	if m.grab != nil {
		return m.handleGrabbedKey(msg)
	}

	lists := m.ctrl.Lists()
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(lists)-1 {
			m.col++
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Up):
		if m.row > -1 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if len(lists) > 0 && m.row < len(lists[m.col].Cards)-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Grab):
		m.pickUp(lists)
	}
	return nil
}

func (m *boardModel) pickUp(lists []domain.List) {
	if len(lists) == 0 {
		return
	}
	l := lists[m.col]
	if m.row < 0 {
		loc := reorder.Location{ContainerID: reorder.ListsContainer, Index: m.col}
		m.grab = &grab{typ: reorder.DragList, id: l.ID, source: loc, target: loc}
	} else {
		loc := reorder.Location{ContainerID: l.ID, Index: m.row}
		m.grab = &grab{typ: reorder.DragCard, id: l.Cards[m.row].ID, source: loc, target: loc}
	}
	m.status = "Moving " + m.grabbedTitle(lists)
	m.failed = false
}

func (m *boardModel) handleGrabbedKey(msg tea.KeyMsg) tea.Cmd {
	lists := m.ctrl.Lists()
	g := m.grab

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.OnDragEnd(g.drop(nil))
		m.grab = nil
		m.moveCursorTo(lists, g.source)
		m.status = "Move cancelled"
		return nil
	case key.Matches(msg, m.keys.Grab):
		target := g.target
		req := m.ctrl.OnDragEnd(g.drop(&target))
		m.grab = nil
		m.moveCursorTo(m.ctrl.Lists(), target)
		if req == nil {
			m.status = "Already in place"
			return nil
		}
		m.saving++
		m.status = "Saving..."
		return m.persist(req)
	}

	if g.typ == reorder.DragList {
		switch {
		case key.Matches(msg, m.keys.Left):
			if g.target.Index > 0 {
				g.target.Index--
			}
		case key.Matches(msg, m.keys.Right):
			if g.target.Index < len(lists)-1 {
				g.target.Index++
			}
		}
	} else {
		li := listIndex(lists, g.target.ContainerID)
		switch {
		case key.Matches(msg, m.keys.Up):
			if g.target.Index > 0 {
				g.target.Index--
			}
		case key.Matches(msg, m.keys.Down):
			if g.target.Index < m.maxCardSlot(lists[li]) {
				g.target.Index++
			}
		case key.Matches(msg, m.keys.Left):
			if li > 0 {
				m.retarget(lists[li-1])
			}
		case key.Matches(msg, m.keys.Right):
			if li < len(lists)-1 {
				m.retarget(lists[li+1])
			}
		}
	}
	m.moveCursorTo(m.preview(), g.target)
	return nil
}

// maxCardSlot is the last index a grabbed card may take in l. Foreign lists
// accept the card after their last card.
func (m *boardModel) maxCardSlot(l domain.List) int {
	if l.ID == m.grab.source.ContainerID {
		return len(l.Cards) - 1
	}
	return len(l.Cards)
}

func (m *boardModel) retarget(l domain.List) {
	m.grab.target.ContainerID = l.ID
	m.grab.target.Index = min(m.grab.target.Index, m.maxCardSlot(l))
}

// preview is the board as it would look if the grabbed item dropped now.
func (m *boardModel) preview() []domain.List {
	if m.grab == nil {
		return m.ctrl.Lists()
	}
	p := reorder.NewController(m.boardID, m.ctrl.Lists())
	target := m.grab.target
	p.OnDragEnd(m.grab.drop(&target))
	return p.Lists()
}

func (m *boardModel) persist(req *reorder.Request) tea.Cmd {
	ctx, acts, log := m.ctx, m.acts, m.log
	return func() tea.Msg {
		if req.Lists != nil {
			return saveMove(ctx, acts.ReorderLists, *req.Lists, log)
		}
		return saveMove(ctx, acts.ReorderCards, *req.Cards, log)
	}
}

// saveMove runs one reorder through a Dispatcher. The local board keeps the
// optimistic order whatever the outcome.
func saveMove[In any](ctx context.Context, act action.Action[In, contract.ReorderConfirmation], in In, log logrus.FieldLogger) movePersistedMsg {
	rec := &notify.Recorder{}
	d := action.NewDispatcher(act, action.Options[contract.ReorderConfirmation]{
		OnSuccess: func(c contract.ReorderConfirmation) {
			rec.Success(fmt.Sprintf("Saved (%d updated)", c.Updated))
		},
		OnError: rec.Error,
		Logger:  log,
	})
	d.Execute(ctx, in)

	if fe := d.FieldErrors(); len(fe) > 0 {
		return movePersistedMsg{note: "Move rejected: " + strings.Join(fe.Keys(), ", "), failed: true}
	}
	if n, ok := rec.Last(); ok {
		return movePersistedMsg{note: n.Msg, failed: n.Err}
	}
	return movePersistedMsg{note: "Could not save move", failed: true}
}

func (m *boardModel) moveCursorTo(lists []domain.List, loc reorder.Location) {
	if loc.ContainerID == reorder.ListsContainer {
		m.col, m.row = loc.Index, -1
	} else {
		m.col, m.row = listIndex(lists, loc.ContainerID), loc.Index
	}
	m.clampCursor()
}

func (m *boardModel) clampCursor() {
	lists := m.ctrl.Lists()
	if len(lists) == 0 {
		m.col, m.row = 0, -1
		return
	}
	m.col = max(0, min(m.col, len(lists)-1))
	m.row = max(-1, min(m.row, len(lists[m.col].Cards)-1))
}

func (m *boardModel) grabbedTitle(lists []domain.List) string {
	for _, l := range lists {
		if l.ID == m.grab.id {
			return l.Title
		}
		for _, c := range l.Cards {
			if c.ID == m.grab.id {
				return c.Title
			}
		}
	}
	return m.grab.id
}

func listIndex(lists []domain.List, id string) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return 0
}

func (m *boardModel) View() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleDanger.Render("Could not load board: "+m.err.Error()) + "\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	case m.ctrl == nil:
		return formatter.Muted("Loading board...") + "\n"
	}

	b.WriteString(formatter.Header(m.title))
	b.WriteString("\n")

	lists := m.preview()
	if len(lists) == 0 {
		b.WriteString(formatter.Muted("No lists. Add one with: boardwalk list add <board> <title>") + "\n")
	} else {
		cols := make([]string, len(lists))
		for i, l := range lists {
			cols[i] = m.renderColumn(i, l)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.failed {
			b.WriteString(formatter.StyleDanger.Render(m.status))
		} else {
			b.WriteString(formatter.Muted(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *boardModel) renderColumn(i int, l domain.List) string {
	title := truncateCell(l.Title, boardColumnWidth-2)
	switch {
	case m.grab != nil && m.grab.id == l.ID:
		title = formatter.StyleHeld.Render("≡ " + title)
	case m.col == i && m.row == -1:
		title = formatter.StyleCursor.Render("> " + title)
	default:
		title = formatter.StyleListTitle.Render("  " + title)
	}

	lines := []string{title}
	for j, c := range l.Cards {
		text := truncateCell(c.Title, boardColumnWidth-4)
		switch {
		case m.grab != nil && m.grab.id == c.ID:
			lines = append(lines, formatter.StyleHeld.Render("  ≡ "+text))
		case m.col == i && m.row == j:
			lines = append(lines, formatter.StyleCursor.Render("  > "+text))
		default:
			lines = append(lines, "    "+text)
		}
	}
	if len(l.Cards) == 0 {
		lines = append(lines, formatter.Muted("    (empty)"))
	}
	return lipgloss.NewStyle().Width(boardColumnWidth).MarginRight(2).Render(strings.Join(lines, "\n"))
}

func truncateCell(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
