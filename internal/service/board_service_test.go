package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/testutil"
)

func newRedisViews(t *testing.T) (*miniredis.Miniredis, *cache.Redis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedis(client, time.Minute, nil)
}

func TestBoardService_GetNestsOrderedCards(t *testing.T) {
	h := newHarness(t)
	seed := testutil.SeedBoard(t, h.db, testutil.TestOrgID, "Roadmap",
		testutil.ListSpec{Title: "Todo", Cards: []string{"t1", "t2"}},
		testutil.ListSpec{Title: "Empty"},
		testutil.ListSpec{Title: "Done", Cards: []string{"d1"}},
	)

	snap, err := h.boardService(nil).Get(memberCtx(), seed.Board.ID)

	require.NoError(t, err)
	assert.Equal(t, "Roadmap", snap.Board.Title)
	require.Len(t, snap.Lists, 3)
	assert.Equal(t, "Todo", snap.Lists[0].Title)
	require.Len(t, snap.Lists[0].Cards, 2)
	assert.Equal(t, "t1", snap.Lists[0].Cards[0].Title)
	assert.Equal(t, "t2", snap.Lists[0].Cards[1].Title)
	assert.NotNil(t, snap.Lists[1].Cards)
	assert.Empty(t, snap.Lists[1].Cards)
	assert.Equal(t, "d1", snap.Lists[2].Cards[0].Title)
}

func TestBoardService_GetErrors(t *testing.T) {
	h := newHarness(t)
	foreign := testutil.SeedBoard(t, h.db, "org_other", "Theirs")
	svc := h.boardService(nil)

	_, err := svc.Get(memberCtx(), "missing")
	assert.Equal(t, contract.ErrNotFound, contract.CodeOf(err))

	_, err = svc.Get(memberCtx(), foreign.Board.ID)
	assert.Equal(t, contract.ErrUnauthorized, contract.CodeOf(err))

	_, err = svc.Get(context.Background(), foreign.Board.ID)
	assert.Equal(t, contract.ErrUnauthorized, contract.CodeOf(err))
}

func TestBoardService_CreateListRenameDelete(t *testing.T) {
	h := newHarness(t)
	svc := h.boardService(nil)
	ctx := memberCtx()

	created, err := svc.Create(ctx, contract.CreateBoardInput{Title: "  Launch  "})
	require.NoError(t, err)
	assert.Equal(t, "Launch", created.Title)
	assert.Equal(t, testutil.TestOrgID, created.OrgID)

	boards, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, created.ID, boards[0].ID)

	renamed, err := svc.Rename(ctx, contract.UpdateBoardInput{BoardID: created.ID, Title: "Relaunch"})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", renamed.Title)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, contract.ErrNotFound, contract.CodeOf(err))
}

func TestBoardService_CreateRejectsShortTitle(t *testing.T) {
	h := newHarness(t)

	_, err := h.boardService(nil).Create(memberCtx(), contract.CreateBoardInput{Title: "ab"})

	require.Error(t, err)
	assert.Equal(t, contract.ErrValidation, contract.CodeOf(err))
	assert.Equal(t, []string{"Title is too short"}, fieldErrorsOf(t, err)["title"])
}

func TestBoardService_ListIsScopedToOrg(t *testing.T) {
	h := newHarness(t)
	testutil.SeedBoard(t, h.db, testutil.TestOrgID, "Ours")
	testutil.SeedBoard(t, h.db, "org_other", "Theirs")

	boards, err := h.boardService(nil).List(memberCtx())

	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Ours", boards[0].Title)
}

func TestBoardService_ReadThroughCacheInvalidatedByReorder(t *testing.T) {
	h := newHarness(t)
	mr, views := newRedisViews(t)
	seed := testutil.SeedBoard(t, h.db, testutil.TestOrgID, "Board",
		testutil.ListSpec{Title: "A"}, testutil.ListSpec{Title: "B"})
	boards := h.boardService(views)
	ctx := memberCtx()

	first, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.BoardKey(seed.Board.ID)))

	// A write behind the service's back is invisible while cached.
	_, err = h.db.Exec(`UPDATE boards SET title = 'Changed' WHERE id = ?`, seed.Board.ID)
	require.NoError(t, err)
	cached, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Board.Title, cached.Board.Title)

	_, err = h.reorder(nil, views).ReorderLists(ctx, contract.ReorderListsInput{
		BoardID: seed.Board.ID,
		Items:   listItems(seed.Board.ID, seed.ListID("B"), seed.ListID("A")),
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.BoardKey(seed.Board.ID)))

	fresh, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", fresh.Board.Title)
	assert.Equal(t, "B", fresh.Lists[0].Title)
	assert.Equal(t, "A", fresh.Lists[1].Title)
}

// putHookCache runs beforePut once, between a snapshot load and its put.
type putHookCache struct {
	*cache.Redis
	beforePut func()
}

func (c *putHookCache) PutBoard(ctx context.Context, snap *domain.BoardSnapshot, since cache.Stamp) {
	if hook := c.beforePut; hook != nil {
		c.beforePut = nil
		hook()
	}
	c.Redis.PutBoard(ctx, snap, since)
}

func TestBoardService_ReorderDuringLoadIsNotCached(t *testing.T) {
	h := newHarness(t)
	mr, redisViews := newRedisViews(t)
	seed := testutil.SeedBoard(t, h.db, testutil.TestOrgID, "Board",
		testutil.ListSpec{Title: "A"}, testutil.ListSpec{Title: "B"})
	views := &putHookCache{Redis: redisViews}
	boards := h.boardService(views)
	reorder := h.reorder(nil, redisViews)
	ctx := memberCtx()
	key := cache.BoardKey(seed.Board.ID)

	views.beforePut = func() {
		_, err := reorder.ReorderLists(ctx, contract.ReorderListsInput{
			BoardID: seed.Board.ID,
			Items:   listItems(seed.Board.ID, seed.ListID("B"), seed.ListID("A")),
		})
		require.NoError(t, err)
	}

	raced, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", raced.Lists[0].Title)
	assert.False(t, mr.Exists(key))

	fresh, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", fresh.Lists[0].Title)
	assert.Equal(t, "A", fresh.Lists[1].Title)
	assert.True(t, mr.Exists(key))

	cached, err := boards.Get(ctx, seed.Board.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", cached.Lists[0].Title)
}

func TestBoardService_CachedSnapshotStillOrgChecked(t *testing.T) {
	h := newHarness(t)
	_, views := newRedisViews(t)
	testutil.AddMember(t, h.db, "org_other", "intruder")
	seed := testutil.SeedBoard(t, h.db, testutil.TestOrgID, "Board")
	svc := h.boardService(views)

	_, err := svc.Get(memberCtx(), seed.Board.ID)
	require.NoError(t, err)

	intruder := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "intruder", OrgID: "org_other"})
	_, err = svc.Get(intruder, seed.Board.ID)
	assert.Equal(t, contract.ErrUnauthorized, contract.CodeOf(err))
}

func fieldErrorsOf(t *testing.T, err error) contract.FieldErrors {
	t.Helper()
	ae, ok := err.(*contract.ActionError)
	require.True(t, ok, "expected *contract.ActionError, got %T", err)
	return ae.Fields
}
