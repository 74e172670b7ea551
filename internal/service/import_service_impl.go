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
	"github.com/alexanderramin/boardwalk/internal/importer"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

type importService struct {
	gate     gate
	uow      db.UnitOfWork
	viewEvictor
	observer UseCaseObserver
}

func NewImportService(
	boards repository.BoardRepo,
	memberships repository.MembershipRepo,
	uow db.UnitOfWork,
	views cache.ViewCache,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		gate:        gate{memberships: memberships, boards: boards},
		uow:         uow,
		viewEvictor: newViewEvictor(views, log),
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Import writes the board, its lists and its cards in one transaction.
func (s *importService) Import(ctx context.Context, schema importer.Schema) (snap *domain.BoardSnapshot, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"lists": len(schema.Lists)}
	ctx, span := startSpan(ctx, "board.import", attribute.Int("import.lists", len(schema.Lists)))
	defer func() {
		endSpan(span, err)
		observe(ctx, s.observer, "import-board", startedAt, fields, err)
	}()

	p, err := s.gate.member(ctx)
	if err != nil {
		return nil, err
	}
	if fe := importer.Validate(schema); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	snap = importer.Convert(schema, p.OrgID, startedAt)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBoards := repository.NewSQLiteBoardRepo(tx)
		txLists := repository.NewSQLiteListRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)

		if err := txBoards.Create(ctx, &snap.Board); err != nil {
			return fmt.Errorf("creating board: %w", err)
		}
		for i := range snap.Lists {
			l := &snap.Lists[i]
			if err := txLists.Create(ctx, l); err != nil {
				return fmt.Errorf("creating list %q: %w", l.Title, err)
			}
			for j := range l.Cards {
				if err := txCards.Create(ctx, &l.Cards[j]); err != nil {
					return fmt.Errorf("creating card %q: %w", l.Cards[j].Title, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, persistenceOr(err, "importing board")
	}

	fields["board_id"] = snap.Board.ID
	s.invalidate(ctx, cache.BoardsKey(p.OrgID))
	return snap, nil
}
