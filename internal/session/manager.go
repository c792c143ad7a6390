package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// ErrStillLoading is returned by Init when ctx ends before validation
// finishes. Validation keeps running and its result is applied to storage.
var ErrStillLoading = errors.New("session validation still in progress")

// Policy decides what happens to a stored session when the API cannot be
// reached to validate it.
type Policy string

const (
	// PolicyFailOpen keeps the stored session and uses it optimistically.
	PolicyFailOpen Policy = "fail-open"
	// PolicyFailClosed clears the stored session.
	PolicyFailClosed Policy = "fail-closed"
)

// Authenticator is the subset of the inventory auth API the manager needs.
type Authenticator interface {
	Login(ctx context.Context, creds inventory.LoginCredentials) (*inventory.AuthResponse, error)
	Register(ctx context.Context, data inventory.RegisterData) (*inventory.AuthResponse, error)
	Validate(ctx context.Context) error
}

// Options tune the Manager.
type Options struct {
	// TTL applies to tokens that carry no usable exp claim.
	TTL time.Duration
	// RevalidateAfter is how long a successful validation is trusted.
	RevalidateAfter time.Duration
	Policy          Policy
}

// Manager owns session storage and validation for every browser session.
type Manager struct {
	storage Storage
	auth    Authenticator
	opts    Options

	group singleflight.Group

	mu        sync.Mutex
	validated map[string]time.Time

	now func() time.Time
}

// NewManager creates a Manager.
func NewManager(storage Storage, auth Authenticator, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFailOpen
	}
	return &Manager{
		storage:   storage,
		auth:      auth,
		opts:      opts,
		validated: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Session returns a handle for the browser session sid. The handle starts in
// the loading state until Init completes.
func (m *Manager) Session(sid string) *Session {
	return &Session{m: m, id: sid, loading: true}
}

// PruneValidations forgets validations older than RevalidateAfter and
// returns how many were dropped.
func (m *Manager) PruneValidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.opts.RevalidateAfter)
	n := 0
	for sid, at := range m.validated {
		if at.Before(cutoff) {
			delete(m.validated, sid)
			n++
		}
	}
	return n
}

func (m *Manager) markValidated(sid string) {
	m.mu.Lock()
	m.validated[sid] = m.now()
	m.mu.Unlock()
}

func (m *Manager) forget(sid string) {
	m.mu.Lock()
	delete(m.validated, sid)
	m.mu.Unlock()
}

func (m *Manager) recentlyValidated(sid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.validated[sid]
	return ok && m.now().Sub(at) < m.opts.RevalidateAfter
}

func (m *Manager) clear(ctx context.Context, sid string) {
	m.forget(sid)
	if err := m.storage.Delete(ctx, sid, KeyToken, KeyUser); err != nil {
		log.Error().Err(err).Str("session_id", sid).Msg("Failed to clear session storage")
	}
}

// validate asks the API whether token is still accepted and applies the
// result to storage. It reports whether the session stays usable.
func (m *Manager) validate(ctx context.Context, sid, token string) bool {
	ctx = inventory.WithTokenSource(ctx, inventory.TokenFunc(func(context.Context) (string, error) {
		return token, nil
	}))

	err := m.auth.Validate(ctx)
	if err == nil {
		m.markValidated(sid)
		return true
	}

	var apiErr *inventory.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		log.Info().Str("session_id", sid).Int("status", apiErr.Status).Msg("Stored session rejected by API")
		m.clear(ctx, sid)
		return false
	}

	if m.opts.Policy == PolicyFailClosed {
		log.Warn().Err(err).Str("session_id", sid).Msg("Session validation unreachable, clearing session")
		m.clear(ctx, sid)
		return false
	}
	log.Warn().Err(err).Str("session_id", sid).Msg("Session validation unreachable, keeping stored session")
	return true
}

// Session is the per-request view of one browser session. It implements
// inventory.TokenSource.
type Session struct {
	m  *Manager
	id string

	mu      sync.RWMutex
	user    *inventory.User
	loading bool
}

// ID returns the browser session id.
func (s *Session) ID() string { return s.id }

// Token implements inventory.TokenSource. A missing token is not an error.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.m.storage.Get(ctx, s.id, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

// User returns the current user, or nil when unauthenticated.
func (s *Session) User() *inventory.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is present.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// IsLoading reports whether Init has not finished yet.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) settle(user *inventory.User) {
	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

// Init restores the stored session and, unless it was validated recently,
// checks the token with the API. Concurrent Init calls for the same session
// share one validation request. If ctx ends first, Init returns
// ErrStillLoading and the session stays loading.
func (s *Session) Init(ctx context.Context) error {
	token, user, err := s.restore(ctx)
	if err != nil {
		s.settle(nil)
		return err
	}
	if token == "" || user == nil {
		s.settle(nil)
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if s.m.recentlyValidated(s.id) {
		s.settle(user)
		return nil
	}

	ch := s.m.group.DoChan(s.id, func() (any, error) {
		return s.m.validate(context.WithoutCancel(ctx), s.id, token), nil
	})

	select {
	case res := <-ch:
		if ok, _ := res.Val.(bool); ok {
			s.settle(user)
		} else {
			s.settle(nil)
		}
		return nil
	case <-ctx.Done():
		return ErrStillLoading
	}
}

// restore reads both entries. A missing or unreadable user entry yields a nil
// user; a storage failure is returned.
func (s *Session) restore(ctx context.Context) (string, *inventory.User, error) {
	token, err := s.m.storage.Get(ctx, s.id, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read session token: %w", err)
	}

	raw, err := s.m.storage.Get(ctx, s.id, KeyUser)
	if errors.Is(err, ErrNotFound) {
		return token, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read session user: %w", err)
	}

	var user inventory.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Warn().Err(err).Str("session_id", s.id).Msg("Discarding unreadable session user")
		s.m.clear(ctx, s.id)
		return "", nil, nil
	}
	return token, &user, nil
}

// Login exchanges credentials for a token and persists it with the derived
// user record. On failure nothing is persisted and the API error is returned.
func (s *Session) Login(ctx context.Context, creds inventory.LoginCredentials) (*inventory.User, error) {
	resp, err := s.m.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	user := userFromAuth(resp)
	if err := s.persist(ctx, resp.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account and signs it in. The server-returned user is
// stored when present.
func (s *Session) Register(ctx context.Context, data inventory.RegisterData) (*inventory.User, error) {
	resp, err := s.m.auth.Register(ctx, data)
	if err != nil {
		return nil, err
	}
	user := resp.User
	if user == nil {
		user = userFromAuth(resp)
	}
	if err := s.persist(ctx, resp.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout drops both entries. It always succeeds; storage errors are logged.
func (s *Session) Logout(ctx context.Context) {
	s.m.clear(ctx, s.id)
	s.settle(nil)
}

func (s *Session) persist(ctx context.Context, token string, user *inventory.User) error {
	if token == "" {
		return errors.New("auth response carried no token")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	ttl := tokenTTL(token, s.m.now(), s.m.opts.TTL)
	if err := s.m.storage.Set(ctx, s.id, KeyToken, token, ttl); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	if err := s.m.storage.Set(ctx, s.id, KeyUser, string(raw), ttl); err != nil {
		s.m.clear(ctx, s.id)
		return fmt.Errorf("failed to store session user: %w", err)
	}

	s.m.markValidated(s.id)
	s.settle(user)
	return nil
}

func userFromAuth(resp *inventory.AuthResponse) *inventory.User {
	return &inventory.User{
		ID:       resp.UserID,
		Name:     resp.FirstName,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}
}
