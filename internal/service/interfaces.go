package service

import (
	"context"

	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/importer"
)

type MembershipService interface {
	AddMember(ctx context.Context, in contract.AddMemberInput) (*domain.Membership, error)
	ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error)
}

type BoardService interface {
	List(ctx context.Context) ([]*domain.Board, error)
	Get(ctx context.Context, boardID string) (*domain.BoardSnapshot, error)
	Create(ctx context.Context, in contract.CreateBoardInput) (*domain.Board, error)
	Rename(ctx context.Context, in contract.UpdateBoardInput) (*domain.Board, error)
	Delete(ctx context.Context, boardID string) (contract.Deleted, error)
}

type ListService interface {
	Create(ctx context.Context, in contract.CreateListInput) (*domain.List, error)
	Rename(ctx context.Context, in contract.UpdateListInput) (*domain.List, error)
	Delete(ctx context.Context, listID string) (contract.Deleted, error)
}

type CardService interface {
	Get(ctx context.Context, cardID string) (*domain.CardWithList, error)
	Create(ctx context.Context, in contract.CreateCardInput) (*domain.Card, error)
	Update(ctx context.Context, in contract.UpdateCardInput) (*domain.Card, error)
	Delete(ctx context.Context, cardID string) (contract.Deleted, error)
}

// ReorderService persists drag-and-drop results. Both operations run in a
// single transaction and re-densify every container they touch.
type ReorderService interface {
	ReorderLists(ctx context.Context, in contract.ReorderListsInput) (contract.ReorderConfirmation, error)
	ReorderCards(ctx context.Context, in contract.ReorderCardsInput) (contract.ReorderConfirmation, error)
}

// ImportService creates whole boards from board files.
type ImportService interface {
	Import(ctx context.Context, s importer.Schema) (*domain.BoardSnapshot, error)
}
