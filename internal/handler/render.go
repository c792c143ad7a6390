package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// pageFor fills the fields every screen shares. Call it after any session
// change (login, renew) so the CSRF token matches the new session.
func pageFor(c *gin.Context, title, active string, data any) view.Page {
	wc := middleware.Web(c)
	return view.Page{
		Title:     title,
		Active:    active,
		User:      wc.Session.User(),
		CSRFToken: wc.CSRFToken(),
		Data:      data,
	}
}

// render writes a page with all pending notifications.
func render(c *gin.Context, status int, name string, p view.Page) {
	wc := middleware.Web(c)
	p.Notifications = wc.Notifications()
	wc.Save(c)
	c.HTML(status, name, p)
}

// redirect carries pending notifications over to the next page.
func redirect(c *gin.Context, location string) {
	middleware.Web(c).Save(c)
	c.Redirect(http.StatusFound, location)
}

// sessionExpired ends the browser session when the API rejected its token
// and sends the user to the login screen. It reports whether it responded.
func sessionExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, inventory.ErrSessionInvalid) {
		return false
	}
	wc := middleware.Web(c)
	wc.Session.Logout(c.Request.Context())
	if g := middleware.GuardFrom(c); g != nil {
		g.Reset()
	}
	redirect(c, "/login")
	return true
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageParam parses the zero-based ?page query parameter.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// searchNotice acknowledges a ?q search. Filtering is not supported by the API.
func searchNotice(c *gin.Context) {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		middleware.Web(c).Notes.Info(fmt.Sprintf("Search functionality would filter for: %s", q))
	}
}

// username is the signed-in user's name for logs and events.
func username(c *gin.Context) string {
	if u := middleware.Web(c).Session.User(); u != nil {
		return u.Username
	}
	return ""
}

// Loading renders the placeholder shown while a session is being validated.
func Loading(c *gin.Context) {
	render(c, http.StatusOK, "loading", pageFor(c, "Loading", "", nil))
}

// NotFound renders the unknown route page.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "not_found", pageFor(c, "Not Found", "", nil))
}

// sessionSave writes the cookie for responses that render no page.
func sessionSave(c *gin.Context) {
	middleware.Web(c).Save(c)
}
