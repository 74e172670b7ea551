package domain

import "time"

// List is an ordered container of cards within a board.
// Cards may be nil when the list was loaded without them.
type List struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the list, including its cards.
func (l List) Clone() List {
	out := l
	if l.Cards != nil {
		out.Cards = make([]Card, len(l.Cards))
		copy(out.Cards, l.Cards)
	}
	return out
}

// CloneLists deep-copies a list sequence.
func CloneLists(lists []List) []List {
	if lists == nil {
		return nil
	}
	out := make([]List, len(lists))
	for i := range lists {
		out[i] = lists[i].Clone()
	}
	return out
}
