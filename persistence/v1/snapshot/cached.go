package snapshot

import (
	"context"

	"go.uber.org/zap"
)

// Cached reads through cache before primary. Cache failures are logged and
// never fail the call, primary stays the source of truth.
type Cached struct {
	log     *zap.SugaredLogger
	primary Store
	cache   Store
}

func NewCached(log *zap.SugaredLogger, primary, cache Store) *Cached {
	return &Cached{log: log, primary: primary, cache: cache}
}

func (c *Cached) Load(ctx context.Context, key string) ([]byte, error) {
	get, err := c.cache.Load(ctx, key)
	if err != nil {
		c.log.Error("failure to get ", key, " from cache: ", err.Error())
	}
	if get != nil {
		return get, nil
	}

	data, err := c.primary.Load(ctx, key)
	if err != nil || data == nil {
		return data, err
	}

	if err := c.cache.Save(ctx, key, data); err != nil {
		c.log.Error("failure to set ", key, " into cache: ", err.Error())
	}
	return data, nil
}

func (c *Cached) Save(ctx context.Context, key string, data []byte) error {
	if err := c.primary.Save(ctx, key, data); err != nil {
		return err
	}
	if err := c.cache.Save(ctx, key, data); err != nil {
		c.log.Error("failure to set ", key, " into cache: ", err.Error())
		if inv, ok := c.cache.(invalidator); ok {
			if err := inv.Invalidate(ctx, key); err != nil {
				c.log.Error("failure to invalidate ", key, " in cache: ", err.Error())
			}
		}
	}
	return nil
}

type invalidator interface {
	Invalidate(ctx context.Context, key string) error
}
