// Package cache holds the read-side view cache for board snapshots and
// per-organization board listings.
package cache

import (
	"context"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

// Stamp is the invalidation generation of a key, taken before the store is
// read. A put carrying a stamp older than the key's current generation is
// dropped, so a load that raced a write never lands in the cache.
type Stamp int64

// NoStamp marks a generation that could not be read. Puts carrying it are
// dropped.
const NoStamp Stamp = -1

// ViewCache stores rendered read models. Lookups never fail: any backend
// problem is reported as a miss.
type ViewCache interface {
	Stamp(ctx context.Context, key string) Stamp
	GetBoard(ctx context.Context, boardID string) (*domain.BoardSnapshot, bool)
	PutBoard(ctx context.Context, snap *domain.BoardSnapshot, since Stamp)
	GetBoards(ctx context.Context, orgID string) ([]*domain.Board, bool)
	PutBoards(ctx context.Context, orgID string, boards []*domain.Board, since Stamp)
	Invalidate(ctx context.Context, keys ...string) error
}

func BoardKey(boardID string) string {
	return "board:" + boardID
}

func BoardsKey(orgID string) string {
	return "boards:" + orgID
}

func generationKey(key string) string {
	return "gen:" + key
}

// Noop is a ViewCache that never stores anything.
type Noop struct{}

func (Noop) Stamp(context.Context, string) Stamp { return 0 }
func (Noop) GetBoard(context.Context, string) (*domain.BoardSnapshot, bool) { return nil, false }
func (Noop) PutBoard(context.Context, *domain.BoardSnapshot, Stamp) {}
func (Noop) GetBoards(context.Context, string) ([]*domain.Board, bool) { return nil, false }
func (Noop) PutBoards(context.Context, string, []*domain.Board, Stamp) {}
func (Noop) Invalidate(context.Context, ...string) error { return nil }
