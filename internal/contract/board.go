package contract

import "github.com/alexanderramin/boardwalk/internal/domain"

type ListBoardsInput struct{}

type GetBoardInput struct {
	BoardID string `json:"boardId"`
}

type CreateBoardInput struct {
	Title string `json:"title"`
}

type UpdateBoardInput struct {
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
}

type DeleteBoardInput struct {
	BoardID string `json:"boardId"`
}

type CreateListInput struct {
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
}

type UpdateListInput struct {
	ListID string `json:"listId"`
	Title  string `json:"title"`
}

type DeleteListInput struct {
	ListID string `json:"listId"`
}

type CreateCardInput struct {
	ListID      string  `json:"listId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateCardInput changes only the fields that are non-nil.
type UpdateCardInput struct {
	CardID      string  `json:"cardId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type DeleteCardInput struct {
	CardID string `json:"cardId"`
}

type GetCardInput struct {
	CardID string `json:"cardId"`
}

type AddMemberInput struct {
	OrgID  string `json:"orgId"`
	UserID string `json:"userId"`
}

// Deleted confirms a delete action.
type Deleted struct {
	ID string `json:"id"`
}

type BoardSnapshot = domain.BoardSnapshot
