package session

import (
	"context"
	"errors"
	"time"
)

// Entry keys. A browser session owns exactly these two entries.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned by Storage.Get when the entry is absent or expired.
var ErrNotFound = errors.New("session entry not found")

// Storage persists session entries keyed by browser session id.
type Storage interface {
	Get(ctx context.Context, sid, key string) (string, error)
	Set(ctx context.Context, sid, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, sid string, keys ...string) error
}
