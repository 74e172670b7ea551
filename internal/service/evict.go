package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/cache"
)

// viewEvictor drops cached read models after committed writes.
type viewEvictor struct {
	views cache.ViewCache
	log   logrus.FieldLogger
}

func newViewEvictor(views cache.ViewCache, log logrus.FieldLogger) viewEvictor {
	if views == nil {
		views = cache.Noop{}
	}
	return viewEvictor{views: views, log: loggerOrStandard(log)}
}

// invalidate evicts keys. Failures are logged only; the write already
// committed.
func (e viewEvictor) invalidate(ctx context.Context, keys ...string) {
	if err := e.views.Invalidate(ctx, keys...); err != nil {
		e.log.WithError(err).WithField("keys", keys).Warn("view cache invalidation failed")
	}
}
