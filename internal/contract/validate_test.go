package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLists() ReorderListsInput {
	return ReorderListsInput{
		BoardID: "b1",
		Items: []ListOrderItem{
			{ID: "l1", Order: IntPtr(0), BoardID: "b1"},
			{ID: "l2", Order: IntPtr(1), BoardID: "b1"},
		},
	}
}

func validCards() ReorderCardsInput {
	return ReorderCardsInput{
		BoardID: "b1",
		Items: []CardOrderItem{
			{ID: "c1", Order: IntPtr(0), ListID: "A"},
			{ID: "c2", Order: IntPtr(0), ListID: "B", BoardID: "b1"},
			{ID: "c3", Order: IntPtr(1), ListID: "B"},
		},
	}
}

func TestValidateReorderLists_Valid(t *testing.T) {
	assert.Nil(t, ValidateReorderLists(validLists()))
}

func TestValidateReorderLists_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReorderListsInput)
		key    string
		msg    string
	}{
		{"missing board", func(in *ReorderListsInput) { in.BoardID = "" }, "boardId", "Board id is required"},
		{"empty items", func(in *ReorderListsInput) { in.Items = nil }, "items", "At least one item is required"},
		{"missing id", func(in *ReorderListsInput) { in.Items[1].ID = "" }, "items.1.id", "Id is required"},
		{"missing order", func(in *ReorderListsInput) { in.Items[0].Order = nil }, "items.0.order", "Order is required"},
		{"negative order", func(in *ReorderListsInput) { in.Items[0].Order = IntPtr(-1) }, "items.0.order", "Order must be zero or greater"},
		{"duplicate order", func(in *ReorderListsInput) { in.Items[1].Order = IntPtr(0) }, "items.1.order", "Duplicate order"},
		{"duplicate id", func(in *ReorderListsInput) { in.Items[1].ID = "l1" }, "items.1.id", "Duplicate id"},
		{"missing item board", func(in *ReorderListsInput) { in.Items[0].BoardID = "" }, "items.0.boardId", "Board id is required"},
		{"foreign board", func(in *ReorderListsInput) { in.Items[0].BoardID = "b2" }, "items.0.boardId", "List must belong to the requested board"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validLists()
			tt.mutate(&in)
			fe := ValidateReorderLists(in)
			require.NotNil(t, fe)
			assert.Contains(t, fe[tt.key], tt.msg)
		})
	}
}

func TestValidateReorderCards_Valid(t *testing.T) {
	assert.Nil(t, ValidateReorderCards(validCards()))
}

func TestValidateReorderCards_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReorderCardsInput)
		key    string
		msg    string
	}{
		{"missing list", func(in *ReorderCardsInput) { in.Items[0].ListID = "" }, "items.0.listId", "List id is required"},
		{"duplicate order in list", func(in *ReorderCardsInput) { in.Items[2].Order = IntPtr(0) }, "items.2.order", "Duplicate order"},
		{"foreign board", func(in *ReorderCardsInput) { in.Items[1].BoardID = "zzz" }, "items.1.boardId", "Card must belong to the requested board"},
		{"missing order", func(in *ReorderCardsInput) { in.Items[2].Order = nil }, "items.2.order", "Order is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCards()
			tt.mutate(&in)
			fe := ValidateReorderCards(in)
			require.NotNil(t, fe)
			assert.Contains(t, fe[tt.key], tt.msg)
		})
	}
}

func TestValidateTitles(t *testing.T) {
	assert.Contains(t, ValidateCreateBoard(CreateBoardInput{Title: "ab"})["title"], "Title is too short")
	assert.Contains(t, ValidateCreateBoard(CreateBoardInput{Title: "  "})["title"], "Title is required")
	assert.Nil(t, ValidateCreateBoard(CreateBoardInput{Title: "Roadmap"}))

	short := "tiny"
	fe := ValidateCreateCard(CreateCardInput{ListID: "l1", Title: "Card", Description: &short})
	assert.Contains(t, fe["description"], "Description is too short")

	assert.Contains(t, ValidateUpdateCard(UpdateCardInput{CardID: "c1"})["title"], "Nothing to update")
	assert.Contains(t, ValidateAddMember(AddMemberInput{OrgID: "o1"})["userId"], "User id is required")
}

func TestActionError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFoundError("Board not found"))
	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.Equal(t, ErrPersistence, CodeOf(errors.New("disk full")))
	assert.Equal(t, "UNAUTHORIZED: nope", UnauthorizedError("nope").Error())
}

func TestFieldErrors_KeysSorted(t *testing.T) {
	var fe FieldErrors
	fe.Add("items.1.order", "a")
	fe.Add("boardId", "b")
	fe.Merge(FieldErrors{"items.0.id": {"c"}})
	assert.Equal(t, []string{"boardId", "items.0.id", "items.1.order"}, fe.Keys())
}
