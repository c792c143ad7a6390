package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage keeps entries in process memory. Entries are lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStorage) Get(_ context.Context, sid, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[sid][key]
	if !ok || (!e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)) {
		return "", ErrNotFound
	}
	return e.value, nil
}

// Set stores value. A ttl <= 0 never expires.
func (m *MemoryStorage) Set(_ context.Context, sid, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	if m.entries[sid] == nil {
		m.entries[sid] = make(map[string]memoryEntry)
	}
	m.entries[sid][key] = e
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.entries[sid]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(bucket, k)
	}
	if len(bucket) == 0 {
		delete(m.entries, sid)
	}
	return nil
}

// DeleteExpired drops expired entries and returns how many were removed.
func (m *MemoryStorage) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var removed int64
	for sid, bucket := range m.entries {
		for k, e := range bucket {
			if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
				delete(bucket, k)
				removed++
			}
		}
		if len(bucket) == 0 {
			delete(m.entries, sid)
		}
	}
	return removed, nil
}
