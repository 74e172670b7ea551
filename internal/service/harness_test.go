package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
	"github.com/alexanderramin/boardwalk/internal/testutil"
)

type harness struct {
	db          *sql.DB
	boards      *repository.SQLiteBoardRepo
	lists       *repository.SQLiteListRepo
	cards       *repository.SQLiteCardRepo
	memberships *repository.SQLiteMembershipRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	testutil.AddMember(t, database, testutil.TestOrgID, testutil.TestUserID)
	return &harness{
		db:          database,
		boards:      repository.NewSQLiteBoardRepo(database),
		lists:       repository.NewSQLiteListRepo(database),
		cards:       repository.NewSQLiteCardRepo(database),
		memberships: repository.NewSQLiteMembershipRepo(database),
	}
}

func (h *harness) reorder(uow db.UnitOfWork, views cache.ViewCache, observers ...UseCaseObserver) ReorderService {
	if uow == nil {
		uow = testutil.NewTestUoW(h.db)
	}
	log, _ := test.NewNullLogger()
	return NewReorderService(h.boards, h.memberships, uow, views, log, observers...)
}

func (h *harness) boardService(views cache.ViewCache) BoardService {
	log, _ := test.NewNullLogger()
	return NewBoardService(h.boards, h.memberships, testutil.NewTestUoW(h.db), views, log)
}

func (h *harness) listService() ListService {
	return NewListService(h.boards, h.lists, h.memberships, testutil.NewTestUoW(h.db), nil, nil)
}

func (h *harness) cardService() CardService {
	return NewCardService(h.boards, h.lists, h.cards, h.memberships, testutil.NewTestUoW(h.db), nil, nil)
}

func memberCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: testutil.TestUserID, OrgID: testutil.TestOrgID})
}

func (h *harness) listTitles(t *testing.T, boardID string) []string {
	t.Helper()
	lists, err := h.lists.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.NoError(t, domain.CheckDenseOrder(domain.ListOrders(lists)))
	out := make([]string, len(lists))
	for i, l := range lists {
		out[i] = l.Title
	}
	return out
}

func (h *harness) cardTitles(t *testing.T, listID string) []string {
	t.Helper()
	cards, err := h.cards.ListByList(context.Background(), listID)
	require.NoError(t, err)
	require.NoError(t, domain.CheckDenseOrder(domain.CardOrders(cards)))
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

// recordingCache counts invalidations and can be told to fail them.
type recordingCache struct {
	cache.Noop
	keys []string
	err  error
}

func (c *recordingCache) Invalidate(_ context.Context, keys ...string) error {
	c.keys = append(c.keys, keys...)
	return c.err
}

func (h *harness) importService(uow db.UnitOfWork, views cache.ViewCache) ImportService {
	if uow == nil {
		uow = testutil.NewTestUoW(h.db)
	}
	return NewImportService(h.boards, h.memberships, uow, views, nil)
}
