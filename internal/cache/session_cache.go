package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GTDGit/inventory_console/internal/session"
)

// SessionCache stores browser session entries in Redis. Each entry is its own
// key so token and user expire independently of other sessions.
type SessionCache struct {
	redis *RedisClient
}

// NewSessionCache creates a new SessionCache.
func NewSessionCache(redis *RedisClient) *SessionCache {
	return &SessionCache{redis: redis}
}

// key returns session:{sid}:{key}.
func (c *SessionCache) key(sid, key string) string {
	return fmt.Sprintf("session:%s:%s", sid, key)
}

func (c *SessionCache) Get(ctx context.Context, sid, key string) (string, error) {
	v, err := c.redis.Get(ctx, c.key(sid, key))
	if errors.Is(err, ErrMiss) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session entry: %w", err)
	}
	return v, nil
}

func (c *SessionCache) Set(ctx context.Context, sid, key, value string, ttl time.Duration) error {
	if err := c.redis.Set(ctx, c.key(sid, key), value, ttl); err != nil {
		return fmt.Errorf("failed to set session entry: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, sid string, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(sid, k))
	}
	if err := c.redis.Delete(ctx, full...); err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}
