package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis stores each blob as a plain string value. A zero ttl never expires.
type Redis struct {
	client  *redis.Client
	timeout time.Duration
	ttl     time.Duration
}

func NewRedis(client *redis.Client, timeout, ttl time.Duration) *Redis {
	return &Redis{client: client, timeout: timeout, ttl: ttl}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	tcCtx, tcCancel := withTimeout(ctx, r.timeout)
	defer tcCancel()
	get, err := r.client.Get(tcCtx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return get, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	tcCtx, tcCancel := withTimeout(ctx, r.timeout)
	defer tcCancel()
	if err := r.client.Set(tcCtx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s into redis: %w", key, err)
	}
	return nil
}

// Invalidate drops key so the next Load misses
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	tcCtx, tcCancel := withTimeout(ctx, r.timeout)
	defer tcCancel()
	return r.client.Del(tcCtx, key).Err()
}
