package domain

import "time"

// Board is the top-level container of lists, scoped to one organization.
type Board struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"orgId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Membership grants a user access to every board owned by an organization.
type Membership struct {
	OrgID     string    `json:"orgId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BoardSnapshot is the full ordered tree of a board as read from the store.
type BoardSnapshot struct {
	Board Board  `json:"board"`
	Lists []List `json:"lists"`
}
