package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

type reorderService struct {
	gate     gate
	uow      db.UnitOfWork
	viewEvictor
	observer UseCaseObserver
}

func NewReorderService(
	boards repository.BoardRepo,
	memberships repository.MembershipRepo,
	uow db.UnitOfWork,
	views cache.ViewCache,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) ReorderService {
	return &reorderService{
		gate:        gate{memberships: memberships, boards: boards},
		uow:         uow,
		viewEvictor: newViewEvictor(views, log),
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *reorderService) ReorderLists(ctx context.Context, in contract.ReorderListsInput) (out contract.ReorderConfirmation, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"board_id": in.BoardID, "items": len(in.Items)}
	ctx, span := startSpan(ctx, "reorder.lists",
		attribute.String("board.id", in.BoardID),
		attribute.Int("reorder.items", len(in.Items)),
	)
	defer func() {
		endSpan(span, err)
		observe(ctx, s.observer, "reorder-lists", startedAt, fields, err)
	}()

	if _, _, err = s.gate.board(ctx, in.BoardID); err != nil {
		return out, err
	}
	if fe := contract.ValidateReorderLists(in); fe != nil {
		return out, contract.ValidationError(fe)
	}

	var updated int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLists := repository.NewSQLiteListRepo(tx)
		txBoards := repository.NewSQLiteBoardRepo(tx)

		current, err := txLists.ListByBoard(ctx, in.BoardID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(current))
		for _, l := range current {
			known[l.ID] = true
		}

		requested := make([]placement, 0, len(in.Items))
		named := make(map[string]bool, len(in.Items))
		for _, it := range in.Items {
			if !known[it.ID] {
				return contract.NotFoundError(fmt.Sprintf("List %s not found on this board", it.ID))
			}
			requested = append(requested, placement{id: it.ID, order: *it.Order})
			named[it.ID] = true
		}

		final := mergeOrder(requested, without(listIDs(current), named))
		if err := txLists.SetOrder(ctx, in.BoardID, final); err != nil {
			return notFoundOr(err, "List not found on this board")
		}
		updated = len(final)
		return txBoards.Touch(ctx, in.BoardID, time.Now().UTC())
	})
	if err != nil {
		return out, persistenceOr(err, "reordering lists")
	}

	s.invalidate(ctx, cache.BoardKey(in.BoardID))
	fields["updated"] = updated
	return contract.ReorderConfirmation{BoardID: in.BoardID, Updated: updated}, nil
}

func (s *reorderService) ReorderCards(ctx context.Context, in contract.ReorderCardsInput) (out contract.ReorderConfirmation, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"board_id": in.BoardID, "items": len(in.Items)}
	ctx, span := startSpan(ctx, "reorder.cards",
		attribute.String("board.id", in.BoardID),
		attribute.Int("reorder.items", len(in.Items)),
	)
	defer func() {
		endSpan(span, err)
		observe(ctx, s.observer, "reorder-cards", startedAt, fields, err)
	}()

	if _, _, err = s.gate.board(ctx, in.BoardID); err != nil {
		return out, err
	}
	if fe := contract.ValidateReorderCards(in); fe != nil {
		return out, contract.ValidationError(fe)
	}

	var updated int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLists := repository.NewSQLiteListRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)
		txBoards := repository.NewSQLiteBoardRepo(tx)

		lists, err := txLists.ListByBoard(ctx, in.BoardID)
		if err != nil {
			return err
		}
		cards, err := txCards.ListByBoard(ctx, in.BoardID)
		if err != nil {
			return err
		}

		plan, err := planCardPlacement(lists, cards, in.Items)
		if err != nil {
			return err
		}
		for _, p := range plan {
			if err := txCards.Place(ctx, in.BoardID, p.listID, p.ids); err != nil {
				return notFoundOr(err, "Card not found on this board")
			}
			updated += len(p.ids)
		}
		return txBoards.Touch(ctx, in.BoardID, time.Now().UTC())
	})
	if err != nil {
		return out, persistenceOr(err, "reordering cards")
	}

	s.invalidate(ctx, cache.BoardKey(in.BoardID))
	fields["updated"] = updated
	return contract.ReorderConfirmation{BoardID: in.BoardID, Updated: updated}, nil
}

type listPlacement struct {
	listID string
	ids    []string
}

// planCardPlacement computes the final card sequence of every list touched
// by items: each destination list, and each list that lost a card to
// another list. Lists are returned in board order.
func planCardPlacement(lists []domain.List, cards []domain.Card, items []contract.CardOrderItem) ([]listPlacement, error) {
	listKnown := make(map[string]bool, len(lists))
	for _, l := range lists {
		listKnown[l.ID] = true
	}
	home := make(map[string]string, len(cards))
	byList := make(map[string][]string, len(lists))
	for _, c := range cards {
		home[c.ID] = c.ListID
		byList[c.ListID] = append(byList[c.ListID], c.ID)
	}

	requested := make(map[string][]placement)
	named := make(map[string]bool, len(items))
	touched := make(map[string]bool)
	for _, it := range items {
		if !listKnown[it.ListID] {
			return nil, contract.NotFoundError(fmt.Sprintf("List %s not found on this board", it.ListID))
		}
		from, ok := home[it.ID]
		if !ok {
			return nil, contract.NotFoundError(fmt.Sprintf("Card %s not found on this board", it.ID))
		}
		requested[it.ListID] = append(requested[it.ListID], placement{id: it.ID, order: *it.Order})
		named[it.ID] = true
		touched[it.ListID] = true
		touched[from] = true
	}

	var plan []listPlacement
	for _, l := range lists {
		if !touched[l.ID] {
			continue
		}
		omitted := without(byList[l.ID], named)
		plan = append(plan, listPlacement{listID: l.ID, ids: mergeOrder(requested[l.ID], omitted)})
	}
	return plan, nil
}

func listIDs(lists []domain.List) []string {
	out := make([]string, len(lists))
	for i, l := range lists {
		out[i] = l.ID
	}
	return out
}
