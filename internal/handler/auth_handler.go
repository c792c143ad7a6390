package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/form"
	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgTooManyAttempts    = "Too many login attempts. Please try again later."
)

// AuthHandler serves login, registration and logout.
type AuthHandler struct {
	limiter *middleware.LoginRateLimiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(limiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{limiter: limiter}
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login", pageFor(c, "Login", "", view.Login{}))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	wc := middleware.Web(c)
	ip := c.ClientIP()

	if h.limiter.Blocked(ip) {
		wc.Notes.Error(msgTooManyAttempts)
		render(c, http.StatusTooManyRequests, "login", pageFor(c, "Login", "", view.Login{}))
		return
	}

	var req form.LoginForm
	if err := form.Bind(c, &req, "Please enter your username and password"); err != nil {
		wc.Notes.Error(form.Message(err))
		render(c, http.StatusUnprocessableEntity, "login", pageFor(c, "Login", "", view.Login{Username: req.Username}))
		return
	}

	if err := wc.Renew(c); err != nil {
		log.Error().Err(err).Msg("Failed to renew session before login")
		wc.Notes.Error(notify.MsgSetup)
		render(c, http.StatusInternalServerError, "login", pageFor(c, "Login", "", view.Login{Username: req.Username}))
		return
	}

	user, err := wc.Session.Login(c.Request.Context(), inventory.LoginCredentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.limiter.Fail(ip)
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, inventory.ErrSessionInvalid):
			// The client hook reported an expired session; on this screen a
			// 401 means bad credentials.
			wc.Notes.Drain()
			wc.Notes.Error(msgInvalidCredentials)
		case !isAPIError(err):
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to persist session")
			wc.Notes.Error(notify.MsgSetup)
			status = http.StatusInternalServerError
		default:
			status = notify.StatusFor(err)
		}
		render(c, status, "login", pageFor(c, "Login", "", view.Login{Username: req.Username}))
		return
	}

	h.limiter.Reset(ip)
	log.Info().Str("username", user.Username).Str("session_id", wc.Session.ID()).Msg("User logged in")
	redirect(c, "/")
}

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register", pageFor(c, "Register", "", form.Values{}))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	wc := middleware.Web(c)

	var req form.RegisterForm
	bindErr := form.Bind(c, &req, "Please fill in all required fields")
	values := form.Values{"firstName": req.FirstName, "username": req.Username, "email": req.Email}
	if bindErr != nil {
		wc.Notes.Error(form.Message(bindErr))
		render(c, http.StatusUnprocessableEntity, "register", pageFor(c, "Register", "", values))
		return
	}

	if err := wc.Renew(c); err != nil {
		log.Error().Err(err).Msg("Failed to renew session before register")
		wc.Notes.Error(notify.MsgSetup)
		render(c, http.StatusInternalServerError, "register", pageFor(c, "Register", "", values))
		return
	}

	user, err := wc.Session.Register(c.Request.Context(), inventory.RegisterData{
		FirstName: req.FirstName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		status := notify.StatusFor(err)
		if !isAPIError(err) {
			log.Error().Err(err).Str("username", req.Username).Msg("Failed to persist session")
			wc.Notes.Error(notify.MsgSetup)
		} else if errors.Is(err, inventory.ErrSessionInvalid) {
			status = http.StatusUnauthorized
		} else if k, _ := inventory.KindOf(err); k == inventory.KindBadRequest {
			status = http.StatusUnprocessableEntity
		}
		render(c, status, "register", pageFor(c, "Register", "", values))
		return
	}

	log.Info().Str("username", user.Username).Msg("User registered")
	wc.Notes.Success("Registration successful")
	redirect(c, "/")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	wc := middleware.Web(c)
	name := username(c)

	wc.Session.Logout(c.Request.Context())
	if g := middleware.GuardFrom(c); g != nil {
		g.Reset()
	}
	if err := wc.Renew(c); err != nil {
		log.Error().Err(err).Msg("Failed to renew session after logout")
	}

	log.Info().Str("username", name).Msg("User logged out")
	wc.Notes.Success("You have been logged out")
	redirect(c, "/login")
}

func isAPIError(err error) bool {
	_, ok := inventory.KindOf(err)
	return ok
}
