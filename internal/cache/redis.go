package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

var errStale = errors.New("cache generation moved")

// Redis is a ViewCache backed by a Redis client. Every cached key has a
// companion generation counter bumped by Invalidate.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewRedis creates a Redis-backed cache. A zero ttl disables writes.
func NewRedis(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Redis {
	if client == nil {
		panic("cache.NewRedis: client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Redis{client: client, ttl: ttl, log: log.WithField("component", "view-cache")}
}

// Dial parses a redis:// URL and pings the server.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func (c *Redis) Stamp(ctx context.Context, key string) Stamp {
	n, err := c.client.Get(ctx, generationKey(key)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0
	case err != nil:
		c.log.WithError(err).WithField("key", key).Warn("reading cache generation failed")
		return NoStamp
	}
	return Stamp(n)
}

func (c *Redis) GetBoard(ctx context.Context, boardID string) (*domain.BoardSnapshot, bool) {
	var snap domain.BoardSnapshot
	if !c.load(ctx, BoardKey(boardID), &snap) {
		return nil, false
	}
	return &snap, true
}

func (c *Redis) PutBoard(ctx context.Context, snap *domain.BoardSnapshot, since Stamp) {
	if snap == nil {
		return
	}
	c.store(ctx, BoardKey(snap.Board.ID), since, snap)
}

func (c *Redis) GetBoards(ctx context.Context, orgID string) ([]*domain.Board, bool) {
	var boards []*domain.Board
	if !c.load(ctx, BoardsKey(orgID), &boards) {
		return nil, false
	}
	return boards, true
}

func (c *Redis) PutBoards(ctx context.Context, orgID string, boards []*domain.Board, since Stamp) {
	if boards == nil {
		boards = []*domain.Board{}
	}
	c.store(ctx, BoardsKey(orgID), since, boards)
}

// Invalidate deletes keys and bumps their generations in one MULTI, so a
// put stamped before this call can no longer succeed.
func (c *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, k := range keys {
			pipe.Incr(ctx, generationKey(k))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("evicting %v: %w", keys, err)
	}
	return nil
}

func (c *Redis) load(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).WithField("key", key).Warn("reading cached view failed")
			c.drop(ctx, key)
		}
		return false
	}
	if err := sonic.Unmarshal(data, dst); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("discarding corrupt cached view")
		c.drop(ctx, key)
		return false
	}
	return true
}

func (c *Redis) drop(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("deleting cached view failed")
	}
}

// store writes v under key only while key's generation still equals since.
func (c *Redis) store(ctx context.Context, key string, since Stamp, v any) {
	if c.ttl == 0 || since == NoStamp {
		return
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("encoding view failed")
		return
	}

	gen := generationKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gen).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if Stamp(cur) != since {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, gen)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		c.log.WithField("key", key).Debug("skipping stale view")
	default:
		c.log.WithError(err).WithField("key", key).Warn("writing cached view failed")
	}
}
