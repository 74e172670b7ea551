package contract

import "github.com/alexanderramin/boardwalk/internal/domain"

type ListOrderItem struct {
	ID      string `json:"id"`
	Order   *int   `json:"order"`
	BoardID string `json:"boardId"`
	Title   string `json:"title,omitempty"`
}

type CardOrderItem struct {
	ID      string `json:"id"`
	Order   *int   `json:"order"`
	ListID  string `json:"listId"`
	BoardID string `json:"boardId,omitempty"`
	Title   string `json:"title,omitempty"`
}

type ReorderListsInput struct {
	BoardID string          `json:"boardId"`
	Items   []ListOrderItem `json:"items"`
}

type ReorderCardsInput struct {
	BoardID string          `json:"boardId"`
	Items   []CardOrderItem `json:"items"`
}

// ReorderConfirmation is returned by both reorder actions.
type ReorderConfirmation struct {
	BoardID string `json:"boardId"`
	Updated int    `json:"updated"`
}

func IntPtr(v int) *int { return &v }

// ListOrderItemsFrom converts an ordered list sequence into request items
// tagged with boardID.
func ListOrderItemsFrom(boardID string, lists []domain.List) []ListOrderItem {
	items := make([]ListOrderItem, len(lists))
	for i, l := range lists {
		items[i] = ListOrderItem{ID: l.ID, Order: IntPtr(l.Order), BoardID: boardID, Title: l.Title}
	}
	return items
}

// CardOrderItemsFrom flattens one or more card sequences into request items
// tagged with boardID.
func CardOrderItemsFrom(boardID string, groups ...[]domain.Card) []CardOrderItem {
	var items []CardOrderItem
	for _, cards := range groups {
		for _, c := range cards {
			items = append(items, CardOrderItem{
				ID:      c.ID,
				Order:   IntPtr(c.Order),
				ListID:  c.ListID,
				BoardID: boardID,
				Title:   c.Title,
			})
		}
	}
	return items
}
