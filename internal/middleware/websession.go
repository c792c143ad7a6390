package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/session"
	"github.com/GTDGit/inventory_console/internal/utils"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

const (
	// CookieName is the signed browser cookie holding the session id and
	// pending notifications.
	CookieName = "inventory_console"

	sidValue      = "sid"
	webContextKey = "web_context"
	cookieMaxAge  = 7 * 24 * 60 * 60
)

// WebSession attaches a WebContext to every request.
type WebSession struct {
	store   *sessions.CookieStore
	manager *session.Manager
	csrfKey []byte
}

// NewWebSession derives the cookie and CSRF keys from secret.
func NewWebSession(secret string, secure bool, manager *session.Manager) (*WebSession, error) {
	hashKey, err := utils.DeriveKey(secret, "cookie-hash", 32)
	if err != nil {
		return nil, err
	}
	blockKey, err := utils.DeriveKey(secret, "cookie-block", 32)
	if err != nil {
		return nil, err
	}
	csrfKey, err := utils.DeriveKey(secret, "csrf", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &WebSession{store: store, manager: manager, csrfKey: csrfKey}, nil
}

// Handle loads (or starts) the browser session, installs it as the API token
// source and opens a notification collector for the request.
func (ws *WebSession) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := ws.store.Get(c.Request, CookieName)
		if err != nil {
			// Tampered or rotated-key cookies start over with a fresh session.
			log.Debug().Err(err).Msg("Discarding unreadable session cookie")
		}

		sid, _ := cookie.Values[sidValue].(string)
		if sid == "" {
			if sid, err = utils.GenerateSessionID(); err != nil {
				log.Error().Err(err).Msg("Failed to generate session id")
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			cookie.Values[sidValue] = sid
		}

		wc := &WebContext{
			ws:      ws,
			cookie:  cookie,
			Session: ws.manager.Session(sid),
			Notes:   &notify.Collector{},
		}
		wc.bind(c)
		c.Set(webContextKey, wc)
		c.Next()
	}
}

// WebContext is the per-request browser state.
type WebContext struct {
	ws     *WebSession
	cookie *sessions.Session

	Session *session.Session
	Notes   *notify.Collector
}

// Web returns the request's WebContext. It panics when WebSession did not run.
func Web(c *gin.Context) *WebContext {
	return c.MustGet(webContextKey).(*WebContext)
}

func (wc *WebContext) bind(c *gin.Context) {
	ctx := notify.WithCollector(c.Request.Context(), wc.Notes)
	ctx = inventory.WithTokenSource(ctx, wc.Session)
	c.Request = c.Request.WithContext(ctx)
}

// Renew moves the browser to a new session id. Called before login so a
// pre-login id is never authenticated. Entries stored under the old id are
// dropped.
func (wc *WebContext) Renew(c *gin.Context) error {
	wc.Session.Logout(c.Request.Context())
	sid, err := utils.GenerateSessionID()
	if err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	wc.cookie.Values[sidValue] = sid
	wc.Session = wc.ws.manager.Session(sid)
	wc.bind(c)
	return nil
}

// CSRFToken is the form token bound to this browser session.
func (wc *WebContext) CSRFToken() string {
	return utils.GenerateSignature([]byte(wc.Session.ID()), wc.ws.csrfKey)
}

// VerifyCSRF checks a submitted form token.
func (wc *WebContext) VerifyCSRF(token string) bool {
	return utils.VerifySignature([]byte(wc.Session.ID()), token, wc.ws.csrfKey)
}

// Notifications returns flashes left by earlier requests followed by the ones
// raised during this request. Both are consumed.
func (wc *WebContext) Notifications() []notify.Notification {
	var out []notify.Notification
	for _, f := range wc.cookie.Flashes() {
		if n, ok := f.(notify.Notification); ok {
			out = append(out, n)
		}
	}
	return append(out, wc.Notes.Drain()...)
}

// Save writes the cookie, carrying this request's notifications over to the
// next rendered page. It must run before the response body is written.
func (wc *WebContext) Save(c *gin.Context) {
	for _, n := range wc.Notes.Drain() {
		wc.cookie.AddFlash(n)
	}
	if err := wc.cookie.Save(c.Request, c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to save session cookie")
	}
}
