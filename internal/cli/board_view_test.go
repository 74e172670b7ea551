package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/teatest"
)

func newBoardDriver(t *testing.T, a *App, acts *app.Actions, boardID string) *teatest.Driver {
	t.Helper()
	ctx := auth.WithPrincipal(context.Background(), a.principal())
	d := teatest.New(t, newBoardModel(ctx, acts, boardID, a.logger()), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func boardOf(d *teatest.Driver) *boardModel {
	return d.Model.(*boardModel)
}

func TestBoardView_RendersColumns(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.ViewContains("SPRINT", "Todo", "Doing", "Done", "Write docs", "Ship release", "(empty)", "grab/drop")
}

func TestBoardView_MoveListPersists(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressRight()
	d.PressRight()
	d.PressSpace()
	d.ViewContains("Moving Done")

	d.PressLeft()
	d.PressLeft()
	assert.Equal(t, []string{"Done", "Todo", "Doing"}, titles(boardOf(d).preview()))
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, titles(boardOf(d).ctrl.Lists()), "preview must not touch state")

	d.PressSpace()
	d.ViewContains("Saved (3 updated)")
	assert.Equal(t, []string{"Done", "Todo", "Doing"}, titles(boardOf(d).ctrl.Lists()))
	assert.Equal(t, []string{"Done", "Todo", "Doing"}, titles(snapshot(t, a, seed.Board.ID).Lists))
	assert.Equal(t, 0, boardOf(d).col)
}

func TestBoardView_MoveCardAcrossLists(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressDown()
	d.PressSpace()
	d.PressRight()
	d.PressDown()
	d.PressEnter()

	snap := snapshot(t, a, seed.Board.ID)
	assert.Equal(t, []string{"Fix login"}, cardTitles(snap.Lists[0]))
	assert.Equal(t, []string{"Ship release", "Write docs"}, cardTitles(snap.Lists[1]))

	m := boardOf(d)
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 1, m.row)
	assert.Nil(t, m.grab)
}

func TestBoardView_GrabbedCardStopsAtAppendSlot(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressDown()
	d.PressSpace()
	d.PressRight()
	d.PressRight()
	d.PressDown()
	d.PressDown()

	m := boardOf(d)
	require.NotNil(t, m.grab)
	assert.Equal(t, seed.ListID("Done"), m.grab.target.ContainerID)
	assert.Equal(t, 0, m.grab.target.Index)
}

func TestBoardView_EscCancelsMove(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressDown()
	d.PressSpace()
	d.PressDown()
	d.PressEsc()

	d.ViewContains("Move cancelled")
	m := boardOf(d)
	assert.Nil(t, m.grab)
	assert.Equal(t, 0, m.row)
	assert.Equal(t, []string{"Write docs", "Fix login"}, cardTitles(snapshot(t, a, seed.Board.ID).Lists[0]))
}

func TestBoardView_DropInPlace(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressSpace()
	d.PressSpace()

	d.ViewContains("Already in place")
}

func TestBoardView_FailedSaveKeepsLocalOrder(t *testing.T) {
	a, seed := testApp(t)
	acts := *a.Actions
	acts.ReorderLists = action.Define("reorder-lists", a.logger(), contract.ValidateReorderLists,
		func(context.Context, contract.ReorderListsInput) (contract.ReorderConfirmation, error) {
			return contract.ReorderConfirmation{}, contract.UnauthorizedError("Not a member of this organization")
		})
	d := newBoardDriver(t, a, &acts, seed.Board.ID)

	d.PressSpace()
	d.PressRight()
	d.PressSpace()

	d.ViewContains("Not a member of this organization")
	assert.True(t, boardOf(d).failed)
	assert.Equal(t, []string{"Doing", "Todo", "Done"}, titles(boardOf(d).ctrl.Lists()))
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, titles(snapshot(t, a, seed.Board.ID).Lists))
}

func TestBoardView_ReloadOverwritesLocalState(t *testing.T) {
	a, seed := testApp(t)
	acts := *a.Actions
	acts.ReorderLists = action.Define("reorder-lists", a.logger(), contract.ValidateReorderLists,
		func(context.Context, contract.ReorderListsInput) (contract.ReorderConfirmation, error) {
			return contract.ReorderConfirmation{}, contract.PersistenceError("Failed to save order")
		})
	d := newBoardDriver(t, a, &acts, seed.Board.ID)

	d.PressSpace()
	d.PressRight()
	d.PressSpace()
	require.Equal(t, []string{"Doing", "Todo", "Done"}, titles(boardOf(d).ctrl.Lists()))

	d.PressKey('r')
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, titles(boardOf(d).ctrl.Lists()))
}

func TestBoardView_LoadError(t *testing.T) {
	a, _ := testApp(t)
	d := newBoardDriver(t, a, a.Actions, "missing-board")

	d.ViewContains("Could not load board")
}

func TestBoardView_Quit(t *testing.T) {
	a, seed := testApp(t)
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoardView_NonMemberCannotLoad(t *testing.T) {
	a, seed := testApp(t)
	a.Config.User = "stranger"
	d := newBoardDriver(t, a, a.Actions, seed.Board.ID)

	d.ViewContains("Not a member of this organization")
}
