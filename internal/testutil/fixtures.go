package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

const (
	TestOrgID  = "org_test"
	TestUserID = "user_test"
)

// Board options
type BoardOption func(*domain.Board)

func WithBoardID(id string) BoardOption {
	return func(b *domain.Board) {
		b.ID = id
	}
}

func NewTestBoard(orgID, title string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestList(boardID, title string, order int) *domain.List {
	now := time.Now().UTC()
	return &domain.List{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Card options
type CardOption func(*domain.Card)

func WithDescription(d string) CardOption {
	return func(c *domain.Card) {
		c.Description = &d
	}
}

func NewTestCard(listID, title string, order int, opts ...CardOption) *domain.Card {
	now := time.Now().UTC()
	c := &domain.Card{
		ID:        uuid.New().String(),
		ListID:    listID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSpec describes one list to seed: its title and card titles in order.
type ListSpec struct {
	Title string
	Cards []string
}

// SeededBoard is the tree written by SeedBoard, in order.
type SeededBoard struct {
	Board *domain.Board
	Lists []domain.List
}

// ListID returns the id of the seeded list with the given title.
func (s *SeededBoard) ListID(title string) string {
	for _, l := range s.Lists {
		if l.Title == title {
			return l.ID
		}
	}
	return ""
}

// CardID returns the id of the seeded card with the given title.
func (s *SeededBoard) CardID(title string) string {
	for _, l := range s.Lists {
		for _, c := range l.Cards {
			if c.Title == title {
				return c.ID
			}
		}
	}
	return ""
}

// SeedBoard inserts a board owned by orgID with the given lists and cards,
// all densely ordered.
func SeedBoard(t *testing.T, database *sql.DB, orgID, title string, lists ...ListSpec) *SeededBoard {
	t.Helper()
	b := NewTestBoard(orgID, title)
	mustExec(t, database, `INSERT INTO boards (id, org_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.OrgID, b.Title, b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339))

	out := &SeededBoard{Board: b}
	for i, spec := range lists {
		l := NewTestList(b.ID, spec.Title, i)
		mustExec(t, database, `INSERT INTO lists (id, board_id, title, order_index, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, l.BoardID, l.Title, l.Order, l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339))
		l.Cards = []domain.Card{}
		for j, ct := range spec.Cards {
			c := NewTestCard(l.ID, ct, j)
			mustExec(t, database, `INSERT INTO cards (id, list_id, title, order_index, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
				c.ID, c.ListID, c.Title, c.Order, c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
			l.Cards = append(l.Cards, *c)
		}
		out.Lists = append(out.Lists, *l)
	}
	return out
}

// AddMember grants userID access to orgID.
func AddMember(t *testing.T, database *sql.DB, orgID, userID string) {
	t.Helper()
	mustExec(t, database, `INSERT OR IGNORE INTO memberships (org_id, user_id, created_at) VALUES (?, ?, ?)`,
		orgID, userID, time.Now().UTC().Format(time.RFC3339))
}

func mustExec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("seeding: %v", err)
	}
}
