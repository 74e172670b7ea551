package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

type MembershipRepo interface {
	Add(ctx context.Context, m *domain.Membership) error
	IsMember(ctx context.Context, orgID, userID string) (bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.Membership, error)
}

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.Board, error)
	UpdateTitle(ctx context.Context, id, title string, at time.Time) error
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type ListRepo interface {
	Create(ctx context.Context, l *domain.List) error
	GetByID(ctx context.Context, id string) (*domain.List, error)
	// ListByBoard returns the board's lists in order, without cards.
	ListByBoard(ctx context.Context, boardID string) ([]domain.List, error)
	CountByBoard(ctx context.Context, boardID string) (int, error)
	UpdateTitle(ctx context.Context, id, title string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// SetOrder assigns order_index = position for each id. Every id must
	// belong to boardID.
	SetOrder(ctx context.Context, boardID string, ids []string) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	// GetInOrg returns the card with its list title when its board belongs
	// to orgID.
	GetInOrg(ctx context.Context, id, orgID string) (*domain.CardWithList, error)
	ListByList(ctx context.Context, listID string) ([]domain.Card, error)
	// ListByBoard returns every card of the board, grouped by list order then
	// card order.
	ListByBoard(ctx context.Context, boardID string) ([]domain.Card, error)
	CountByList(ctx context.Context, listID string) (int, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
	// Place moves each id into listID at order_index = position. Every id
	// must belong to a list of boardID.
	Place(ctx context.Context, boardID, listID string, ids []string) error
}
