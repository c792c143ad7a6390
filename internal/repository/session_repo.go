package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GTDGit/inventory_console/internal/session"
)

// SessionRepository stores browser session entries in console_sessions.
type SessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

// Get returns the value unless it is missing or expired.
func (r *SessionRepository) Get(ctx context.Context, sid, key string) (string, error) {
	const q = `SELECT value FROM console_sessions
		WHERE session_id = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > $3)`

	var value string
	if err := r.db.GetContext(ctx, &value, q, sid, key, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", session.ErrNotFound
		}
		return "", fmt.Errorf("failed to get session entry: %w", err)
	}
	return value, nil
}

// Set upserts one entry. A ttl <= 0 stores the entry without expiry.
func (r *SessionRepository) Set(ctx context.Context, sid, key, value string, ttl time.Duration) error {
	const q = `INSERT INTO console_sessions (session_id, key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()`

	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: r.now().Add(ttl), Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q, sid, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to set session entry: %w", err)
	}
	return nil
}

// Delete removes the given keys of one session.
func (r *SessionRepository) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const q = `DELETE FROM console_sessions WHERE session_id = $1 AND key = ANY($2)`
	if _, err := r.db.ExecContext(ctx, q, sid, pq.Array(keys)); err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM console_sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`
	res, err := r.db.ExecContext(ctx, q, r.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
