package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ExpiredSessionStore deletes expired session entries. Redis expires keys on
// its own, so only the Postgres and memory backends implement it.
type ExpiredSessionStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// ValidationPruner forgets stale session validations.
type ValidationPruner interface {
	PruneValidations() int
}

// SessionSweeper periodically removes expired sessions and stale validation
// records on a fixed interval.
type SessionSweeper struct {
	store    ExpiredSessionStore
	pruner   ValidationPruner
	interval time.Duration
}

// NewSessionSweeper constructs a SessionSweeper. store may be nil.
func NewSessionSweeper(store ExpiredSessionStore, pruner ValidationPruner, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		pruner:   pruner,
		interval: interval,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *SessionSweeper) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Warn().Msg("Session sweeper disabled: interval is zero")
		return
	}
	log.Info().Dur("interval", w.interval).Msg("Starting session sweeper")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Session sweeper stopped")
			return
		}
	}
}

func (w *SessionSweeper) run(ctx context.Context) {
	pruned := 0
	if w.pruner != nil {
		pruned = w.pruner.PruneValidations()
	}

	var removed int64
	if w.store != nil {
		var err error
		if removed, err = w.store.DeleteExpired(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to delete expired sessions")
		}
	}

	if pruned > 0 || removed > 0 {
		log.Debug().Int("validations_pruned", pruned).Int64("sessions_removed", removed).Msg("Session sweep completed")
	}
}
