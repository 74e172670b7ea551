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

type listService struct {
	gate  gate
	lists repository.ListRepo
	uow   db.UnitOfWork
	viewEvictor
}

func NewListService(
	boards repository.BoardRepo,
	lists repository.ListRepo,
	memberships repository.MembershipRepo,
	uow db.UnitOfWork,
	views cache.ViewCache,
	log logrus.FieldLogger,
) ListService {
	return &listService{
		gate:        gate{memberships: memberships, boards: boards},
		lists:       lists,
		uow:         uow,
		viewEvictor: newViewEvictor(views, log),
	}
}

// Create appends a list at the end of the board.
func (s *listService) Create(ctx context.Context, in contract.CreateListInput) (*domain.List, error) {
	if _, _, err := s.gate.board(ctx, in.BoardID); err != nil {
		return nil, err
	}
	if fe := contract.ValidateCreateList(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	now := time.Now().UTC()
	list := &domain.List{
		ID:        uuid.New().String(),
		BoardID:   in.BoardID,
		Title:     strings.TrimSpace(in.Title),
		Cards:     []domain.Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLists := repository.NewSQLiteListRepo(tx)
		n, err := txLists.CountByBoard(ctx, in.BoardID)
		if err != nil {
			return err
		}
		list.Order = n
		return txLists.Create(ctx, list)
	})
	if err != nil {
		return nil, persistenceOr(err, "creating list")
	}
	s.invalidate(ctx, cache.BoardKey(in.BoardID))
	return list, nil
}

func (s *listService) Rename(ctx context.Context, in contract.UpdateListInput) (*domain.List, error) {
	list, err := s.gate.list(ctx, s.lists, in.ListID)
	if err != nil {
		return nil, err
	}
	if fe := contract.ValidateUpdateList(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	list.Title = strings.TrimSpace(in.Title)
	list.UpdatedAt = time.Now().UTC()
	if err := s.lists.UpdateTitle(ctx, list.ID, list.Title, list.UpdatedAt); err != nil {
		return nil, notFoundOr(err, "List not found")
	}
	s.invalidate(ctx, cache.BoardKey(list.BoardID))
	return list, nil
}

// Delete removes a list and its cards and closes the gap in list order.
func (s *listService) Delete(ctx context.Context, listID string) (contract.Deleted, error) {
	list, err := s.gate.list(ctx, s.lists, listID)
	if err != nil {
		return contract.Deleted{}, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLists := repository.NewSQLiteListRepo(tx)
		if err := txLists.Delete(ctx, listID); err != nil {
			return notFoundOr(err, "List not found")
		}
		remaining, err := txLists.ListByBoard(ctx, list.BoardID)
		if err != nil {
			return err
		}
		return txLists.SetOrder(ctx, list.BoardID, listIDs(remaining))
	})
	if err != nil {
		return contract.Deleted{}, persistenceOr(err, "deleting list")
	}
	s.invalidate(ctx, cache.BoardKey(list.BoardID))
	return contract.Deleted{ID: listID}, nil
}
