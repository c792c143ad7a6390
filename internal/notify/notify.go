// Package notify turns API outcomes into the short messages shown at the top
// of the next rendered page.
package notify

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"sync"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// Level is the visual style of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one message for the user.
type Notification struct {
	Level   Level
	Message string
}

func init() {
	// Flashes are gob-encoded into the session cookie.
	gob.Register(Notification{})
}

// User-facing texts for API failures.
const (
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgForbidden      = "You don't have permission to perform this action."
	MsgNotFound       = "The requested resource was not found."
	MsgServer         = "A server error occurred. Please try again later."
	MsgBadRequest     = "An error occurred"
	MsgNoResponse     = "No response from server. Please check your internet connection."
	MsgSetup          = "An error occurred while processing your request."
)

// Message maps an API error to the text shown to the user. Errors that are
// not *inventory.Error get the generic setup message.
func Message(err error) string {
	var apiErr *inventory.Error
	if !errors.As(err, &apiErr) {
		return MsgSetup
	}
	switch apiErr.Kind {
	case inventory.KindUnauthorized:
		return MsgSessionExpired
	case inventory.KindForbidden:
		return MsgForbidden
	case inventory.KindNotFound:
		return MsgNotFound
	case inventory.KindServer:
		return MsgServer
	case inventory.KindBadRequest:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgBadRequest
	case inventory.KindNoResponse:
		return MsgNoResponse
	default:
		return MsgSetup
	}
}

// StatusFor picks the HTTP status a screen should answer with when err
// prevents it from rendering.
func StatusFor(err error) int {
	var apiErr *inventory.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case inventory.KindNotFound:
		return http.StatusNotFound
	case inventory.KindForbidden:
		return http.StatusForbidden
	case inventory.KindNoResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Collector gathers notifications raised while handling one request.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

// Add appends a notification.
func (c *Collector) Add(level Level, msg string) {
	c.mu.Lock()
	c.items = append(c.items, Notification{Level: level, Message: msg})
	c.mu.Unlock()
}

func (c *Collector) Success(msg string) { c.Add(LevelSuccess, msg) }
func (c *Collector) Error(msg string)   { c.Add(LevelError, msg) }
func (c *Collector) Info(msg string)    { c.Add(LevelInfo, msg) }

// Drain returns and clears the collected notifications.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

type collectorKey struct{}

// WithCollector attaches c to ctx.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext returns the request's collector, or nil.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// APIErrorHook reports every failed API call on the request's collector. It
// is installed as the inventory client's ErrorHook, so screens never add a
// second message for the same failure.
func APIErrorHook(ctx context.Context, err *inventory.Error) {
	if c := FromContext(ctx); c != nil {
		c.Error(Message(err))
	}
}
