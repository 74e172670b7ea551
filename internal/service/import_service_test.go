package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/importer"
	"github.com/alexanderramin/boardwalk/internal/testutil"
)

func importSchema() importer.Schema {
	desc := "Confirm the date"
	two := 2
	return importer.Schema{
		Board: importer.BoardImport{Title: "Offsite"},
		Lists: []importer.ListImport{
			{Title: "Later", Order: &two},
			{Title: "Todo", Cards: []importer.CardImport{
				{Title: "Book venue", Description: &desc},
				{Title: "Send invites"},
			}},
			{Title: "Done"},
		},
	}
}

func TestImportService_CreatesOrderedBoard(t *testing.T) {
	h := newHarness(t)
	svc := h.importService(nil, nil)

	snap, err := svc.Import(memberCtx(), importSchema())
	require.NoError(t, err)

	assert.Equal(t, testutil.TestOrgID, snap.Board.OrgID)
	assert.Equal(t, []string{"Todo", "Later", "Done"}, h.listTitles(t, snap.Board.ID))

	got, err := h.boardService(nil).Get(memberCtx(), snap.Board.ID)
	require.NoError(t, err)
	require.Len(t, got.Lists, 3)
	todo := got.Lists[0]
	assert.Equal(t, []string{"Book venue", "Send invites"}, h.cardTitles(t, todo.ID))
	require.NotNil(t, todo.Cards[0].Description)
	assert.Equal(t, "Confirm the date", *todo.Cards[0].Description)
}

func TestImportService_RejectsInvalidSchemaWithoutWrites(t *testing.T) {
	h := newHarness(t)
	s := importSchema()
	s.Lists[1].Cards[1].Title = "no"

	_, err := h.importService(nil, nil).Import(memberCtx(), s)

	assert.Equal(t, []string{"Title is too short"}, fieldErrorsOf(t, err)["lists.1.cards.1.title"])
	boards, err := h.boards.ListByOrg(context.Background(), testutil.TestOrgID)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestImportService_RequiresMembership(t *testing.T) {
	h := newHarness(t)

	_, err := h.importService(nil, nil).Import(context.Background(), importSchema())

	assert.Equal(t, contract.ErrUnauthorized, contract.CodeOf(err))
}

func TestImportService_RollbackOnCardCreateFailure(t *testing.T) {
	h := newHarness(t)
	// #1 board, #2 "Todo", #3 "Book venue", #4 "Send invites"
	failUoW := &testutil.FailOnNthExecUoW{DB: h.db, FailOn: 4, Err: errors.New("injected card create failure")}
	views := &recordingCache{}

	_, err := h.importService(failUoW, views).Import(memberCtx(), importSchema())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected card create failure")
	assert.Equal(t, contract.ErrPersistence, contract.CodeOf(err))
	boards, err := h.boards.ListByOrg(context.Background(), testutil.TestOrgID)
	require.NoError(t, err)
	assert.Empty(t, boards)
	assert.Empty(t, views.keys)
}

func TestImportService_InvalidatesBoardIndex(t *testing.T) {
	h := newHarness(t)
	views := &recordingCache{}

	_, err := h.importService(nil, views).Import(memberCtx(), importSchema())

	require.NoError(t, err)
	assert.Equal(t, []string{cache.BoardsKey(testutil.TestOrgID)}, views.keys)
}
