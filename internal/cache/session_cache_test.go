package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/inventory_console/internal/config"
	"github.com/GTDGit/inventory_console/internal/session"
)

func newTestCache(t *testing.T) (*SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	rc, err := NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return NewSessionCache(rc), mr
}

func TestSessionCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cs_1", session.KeyToken, "tok", time.Hour))
	require.NoError(t, c.Set(ctx, "cs_1", session.KeyUser, `{"id":1}`, time.Hour))

	assert.True(t, mr.Exists("session:cs_1:token"))
	assert.Equal(t, time.Hour, mr.TTL("session:cs_1:user"))

	v, err := c.Get(ctx, "cs_1", session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	require.NoError(t, c.Delete(ctx, "cs_1", session.KeyToken, session.KeyUser))
	_, err = c.Get(ctx, "cs_1", session.KeyToken)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.False(t, mr.Exists("session:cs_1:user"))
}

func TestSessionCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cs_2", session.KeyToken, "tok", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "cs_2", session.KeyToken)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionCacheBackendDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "cs_3", session.KeyToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestSessionCacheWithManager(t *testing.T) {
	c, _ := newTestCache(t)
	m := session.NewManager(c, nil, session.Options{})

	s := m.Session("cs_4")
	require.NoError(t, s.Init(context.Background()))
	assert.False(t, s.IsAuthenticated())

	tok, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}
