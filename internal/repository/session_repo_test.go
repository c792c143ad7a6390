package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/inventory_console/internal/session"
)

func newMockRepo(t *testing.T) (*SessionRepository, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(sqlx.NewDb(db, "postgres"))
	repo.now = func() time.Time { return now }
	return repo, mock, now
}

func TestSessionRepositoryGet(t *testing.T) {
	repo, mock, now := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM console_sessions`)).
		WithArgs("cs_1", "token", now).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok"))

	v, err := repo.Get(context.Background(), "cs_1", "token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	repo, mock, now := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM console_sessions`)).
		WithArgs("cs_1", "user", now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "cs_1", "user")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepositoryGetFailure(t *testing.T) {
	repo, mock, now := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM console_sessions`)).
		WithArgs("cs_1", "user", now).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "cs_1", "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepositorySetUpserts(t *testing.T) {
	repo, mock, now := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO console_sessions`)).
		WithArgs("cs_1", "token", "tok", sql.NullTime{Time: now.Add(time.Hour), Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO console_sessions`)).
		WithArgs("cs_1", "user", "{}", sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "cs_1", "token", "tok", time.Hour))
	require.NoError(t, repo.Set(context.Background(), "cs_1", "user", "{}", 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM console_sessions WHERE session_id = $1 AND key = ANY($2)`)).
		WithArgs("cs_1", pq.Array([]string{"token", "user"})).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Delete(context.Background(), "cs_1", "token", "user"))
	require.NoError(t, repo.Delete(context.Background(), "cs_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	repo, mock, now := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM console_sessions WHERE expires_at IS NOT NULL`)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
