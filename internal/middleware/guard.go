package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/session"
)

// GuardState is where a request stands with respect to authentication.
type GuardState int

const (
	GuardLoading GuardState = iota
	GuardAuthenticated
	GuardUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case GuardLoading:
		return "loading"
	case GuardAuthenticated:
		return "authenticated"
	case GuardUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Guard holds one request's GuardState. It leaves loading exactly once; after
// that only Reset (logout) changes it.
type Guard struct {
	mu    sync.Mutex
	state GuardState
}

// NewGuard starts in GuardLoading.
func NewGuard() *Guard {
	return &Guard{state: GuardLoading}
}

// State returns the current state.
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Settle leaves loading. It reports false if the guard had already settled.
func (g *Guard) Settle(authenticated bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != GuardLoading {
		return false
	}
	if authenticated {
		g.state = GuardAuthenticated
	} else {
		g.state = GuardUnauthenticated
	}
	return true
}

// Reset is the logout transition.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.state = GuardUnauthenticated
	g.mu.Unlock()
}

const (
	guardKey    = "route_guard"
	usernameKey = "username"
)

// GuardFrom returns the request's Guard, or nil outside guarded routes.
func GuardFrom(c *gin.Context) *Guard {
	g, _ := c.Get(guardKey)
	guard, _ := g.(*Guard)
	return guard
}

// RouteGuard initializes the browser session before protected screens run.
type RouteGuard struct {
	wait    time.Duration
	loading gin.HandlerFunc
}

// NewRouteGuard bounds session initialization by wait. loading renders the
// placeholder shown while validation is still running.
func NewRouteGuard(wait time.Duration, loading gin.HandlerFunc) *RouteGuard {
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &RouteGuard{wait: wait, loading: loading}
}

func (rg *RouteGuard) settle(c *gin.Context) *Guard {
	wc := Web(c)
	g := NewGuard()
	c.Set(guardKey, g)

	ctx, cancel := context.WithTimeout(c.Request.Context(), rg.wait)
	err := wc.Session.Init(ctx)
	cancel()

	switch {
	case errors.Is(err, session.ErrStillLoading):
	case err != nil:
		log.Error().Err(err).Str("session_id", wc.Session.ID()).Msg("Session init failed")
		g.Settle(false)
	default:
		g.Settle(wc.Session.IsAuthenticated())
	}

	if u := wc.Session.User(); u != nil && g.State() == GuardAuthenticated {
		c.Set(usernameKey, u.Username)
	}
	return g
}

// Protect lets authenticated requests through. Unauthenticated ones are sent
// to /login; requests whose session is still being validated get the loading
// placeholder, which refreshes itself.
func (rg *RouteGuard) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch rg.settle(c).State() {
		case GuardAuthenticated:
			c.Next()
		case GuardLoading:
			c.Header("Refresh", "1")
			rg.loading(c)
			c.Abort()
		default:
			Web(c).Save(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
	}
}

// GuestOnly sends signed-in users away from the login and register screens.
func (rg *RouteGuard) GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rg.settle(c).State() == GuardAuthenticated {
			Web(c).Save(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
