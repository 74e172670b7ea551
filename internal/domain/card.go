package domain

import "time"

// Card is the leaf work item, ordered within a list.
type Card struct {
	ID          string    `json:"id"`
	ListID      string    `json:"listId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CardWithList is a card joined with the title of its owning list.
type CardWithList struct {
	Card
	ListTitle string `json:"listTitle"`
}
