package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

type boardService struct {
	gate     gate
	boards   repository.BoardRepo
	uow      db.UnitOfWork
	viewEvictor
	observer UseCaseObserver
}

func NewBoardService(
	boards repository.BoardRepo,
	memberships repository.MembershipRepo,
	uow db.UnitOfWork,
	views cache.ViewCache,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		gate:        gate{memberships: memberships, boards: boards},
		boards:      boards,
		uow:         uow,
		viewEvictor: newViewEvictor(views, log),
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) List(ctx context.Context) ([]*domain.Board, error) {
	p, err := s.gate.member(ctx)
	if err != nil {
		return nil, err
	}
	if boards, ok := s.views.GetBoards(ctx, p.OrgID); ok {
		return boards, nil
	}
	since := s.views.Stamp(ctx, cache.BoardsKey(p.OrgID))
	boards, err := s.boards.ListByOrg(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}
	s.views.PutBoards(ctx, p.OrgID, boards, since)
	return boards, nil
}

// Get returns the board's lists ordered by position, each with its cards
// ordered by position. Cached snapshots are still org-checked. A fresh
// snapshot is read in one transaction and only cached if no invalidation
// happened since the read began.
func (s *boardService) Get(ctx context.Context, boardID string) (*domain.BoardSnapshot, error) {
	p, err := s.gate.member(ctx)
	if err != nil {
		return nil, err
	}
	if snap, ok := s.views.GetBoard(ctx, boardID); ok {
		if err := ownedBy(&snap.Board, p); err != nil {
			return nil, err
		}
		return snap, nil
	}

	since := s.views.Stamp(ctx, cache.BoardKey(boardID))
	var snap *domain.BoardSnapshot
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, boardID)
		if err != nil {
			return notFoundOr(err, "Board not found")
		}
		if err := ownedBy(b, p); err != nil {
			return err
		}
		lists, err := repository.NewSQLiteListRepo(tx).ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		cards, err := repository.NewSQLiteCardRepo(tx).ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		snap = assembleSnapshot(*b, lists, cards)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.views.PutBoard(ctx, snap, since)
	return snap, nil
}

func (s *boardService) Create(ctx context.Context, in contract.CreateBoardInput) (board *domain.Board, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "create-board", startedAt, fields, err) }()

	p, err := s.gate.member(ctx)
	if err != nil {
		return nil, err
	}
	if fe := contract.ValidateCreateBoard(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	now := time.Now().UTC()
	board = &domain.Board{
		ID:        uuid.New().String(),
		OrgID:     p.OrgID,
		Title:     strings.TrimSpace(in.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	fields["board_id"] = board.ID
	s.invalidate(ctx, cache.BoardsKey(p.OrgID))
	return board, nil
}

func (s *boardService) Rename(ctx context.Context, in contract.UpdateBoardInput) (*domain.Board, error) {
	b, p, err := s.gate.board(ctx, in.BoardID)
	if err != nil {
		return nil, err
	}
	if fe := contract.ValidateUpdateBoard(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	b.Title = strings.TrimSpace(in.Title)
	b.UpdatedAt = time.Now().UTC()
	if err := s.boards.UpdateTitle(ctx, b.ID, b.Title, b.UpdatedAt); err != nil {
		return nil, notFoundOr(err, "Board not found")
	}
	s.invalidate(ctx, cache.BoardKey(b.ID), cache.BoardsKey(p.OrgID))
	return b, nil
}

func (s *boardService) Delete(ctx context.Context, boardID string) (out contract.Deleted, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"board_id": boardID}
	defer func() { observe(ctx, s.observer, "delete-board", startedAt, fields, err) }()

	_, p, err := s.gate.board(ctx, boardID)
	if err != nil {
		return out, err
	}
	if err = s.boards.Delete(ctx, boardID); err != nil {
		return out, notFoundOr(err, "Board not found")
	}
	s.invalidate(ctx, cache.BoardKey(boardID), cache.BoardsKey(p.OrgID))
	return contract.Deleted{ID: boardID}, nil
}

// assembleSnapshot nests cards (already grouped and ordered) under their
// lists. Every list gets a non-nil card slice.
func assembleSnapshot(b domain.Board, lists []domain.List, cards []domain.Card) *domain.BoardSnapshot {
	idx := make(map[string]int, len(lists))
	for i := range lists {
		lists[i].Cards = []domain.Card{}
		idx[lists[i].ID] = i
	}
	for _, c := range cards {
		if i, ok := idx[c.ListID]; ok {
			lists[i].Cards = append(lists[i].Cards, c)
		}
	}
	if lists == nil {
		lists = []domain.List{}
	}
	return &domain.BoardSnapshot{Board: b, Lists: lists}
}
