package app

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/importer"
	"github.com/alexanderramin/boardwalk/internal/repository"
	"github.com/alexanderramin/boardwalk/internal/service"
)

// Services are the use cases an in-process Actions set runs against.
type Services struct {
	Boards  service.BoardService
	Lists   service.ListService
	Cards   service.CardService
	Reorder service.ReorderService
	Members service.MembershipService
	Import  service.ImportService
}

// NewServices wires every use case over one SQLite database. views may be
// nil to disable the view cache.
func NewServices(database *sql.DB, views cache.ViewCache, log logrus.FieldLogger) Services {
	boards := repository.NewSQLiteBoardRepo(database)
	lists := repository.NewSQLiteListRepo(database)
	cards := repository.NewSQLiteCardRepo(database)
	memberships := repository.NewSQLiteMembershipRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLoggerUseCaseObserver(log)

	return Services{
		Boards:  service.NewBoardService(boards, memberships, uow, views, log, observer),
		Lists:   service.NewListService(boards, lists, memberships, uow, views, log),
		Cards:   service.NewCardService(boards, lists, cards, memberships, uow, views, log),
		Reorder: service.NewReorderService(boards, memberships, uow, views, log, observer),
		Members: service.NewMembershipService(memberships),
		Import:  service.NewImportService(boards, memberships, uow, views, log, observer),
	}
}

// NewLocalActions wraps svc so each call is validated, handled, and mapped
// onto a Result. The principal must already be in the call's context.
func NewLocalActions(svc Services, log logrus.FieldLogger) *Actions {
	return &Actions{
		ListBoards: action.Define("list-boards", log, contract.ValidateListBoards,
			func(ctx context.Context, _ contract.ListBoardsInput) ([]*domain.Board, error) {
				return svc.Boards.List(ctx)
			}),
		GetBoard: action.Define("get-board", log, contract.ValidateGetBoard,
			func(ctx context.Context, in contract.GetBoardInput) (*domain.BoardSnapshot, error) {
				return svc.Boards.Get(ctx, in.BoardID)
			}),
		CreateBoard: action.Define("create-board", log, contract.ValidateCreateBoard, svc.Boards.Create),
		UpdateBoard: action.Define("update-board", log, contract.ValidateUpdateBoard, svc.Boards.Rename),
		DeleteBoard: action.Define("delete-board", log, contract.ValidateDeleteBoard,
			func(ctx context.Context, in contract.DeleteBoardInput) (contract.Deleted, error) {
				return svc.Boards.Delete(ctx, in.BoardID)
			}),
		ImportBoard: action.Define("import-board", log, importer.Validate, svc.Import.Import),

		CreateList: action.Define("create-list", log, contract.ValidateCreateList, svc.Lists.Create),
		UpdateList: action.Define("update-list", log, contract.ValidateUpdateList, svc.Lists.Rename),
		DeleteList: action.Define("delete-list", log, contract.ValidateDeleteList,
			func(ctx context.Context, in contract.DeleteListInput) (contract.Deleted, error) {
				return svc.Lists.Delete(ctx, in.ListID)
			}),

		GetCard: action.Define("get-card", log, contract.ValidateGetCard,
			func(ctx context.Context, in contract.GetCardInput) (*domain.CardWithList, error) {
				return svc.Cards.Get(ctx, in.CardID)
			}),
		CreateCard: action.Define("create-card", log, contract.ValidateCreateCard, svc.Cards.Create),
		UpdateCard: action.Define("update-card", log, contract.ValidateUpdateCard, svc.Cards.Update),
		DeleteCard: action.Define("delete-card", log, contract.ValidateDeleteCard,
			func(ctx context.Context, in contract.DeleteCardInput) (contract.Deleted, error) {
				return svc.Cards.Delete(ctx, in.CardID)
			}),

		// Reorders validate inside the service, after the board gate, so a
		// caller without access never sees field-level detail.
		ReorderLists: action.Define("reorder-lists", log, nil, svc.Reorder.ReorderLists),
		ReorderCards: action.Define("reorder-cards", log, nil, svc.Reorder.ReorderCards),
	}
}
