package repository

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/codereg/internal/models"
	appErrors "github.com/noah-isme/codereg/pkg/errors"
)

// MemoryStateRepository keeps workspace snapshots in process memory. Stored
// states are cloned on the way in and out so callers never share slices.
type MemoryStateRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state     *models.AppState
	expiresAt time.Time
}

// NewMemoryStateRepository constructs an empty in-memory store.
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{entries: make(map[string]memoryEntry), now: time.Now}
}

// Load returns a copy of the session's state or ErrStateMiss when absent or expired.
func (r *MemoryStateRepository) Load(ctx context.Context, sessionID string) (*models.AppState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entry, ok := r.entries[sessionID]
	r.mu.RUnlock()
	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, appErrors.ErrStateMiss
	}
	return entry.state.Clone(), nil
}

// Save stores a copy of the state and refreshes its expiry.
func (r *MemoryStateRepository) Save(ctx context.Context, sessionID string, state *models.AppState, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[sessionID] = memoryEntry{state: state.Clone(), expiresAt: r.now().Add(ttl)}
	r.mu.Unlock()
	return nil
}

// Sweep drops expired workspaces and returns how many were removed.
func (r *MemoryStateRepository) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored workspaces, expired ones included.
func (r *MemoryStateRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close is a no-op kept for parity with the Redis store.
func (r *MemoryStateRepository) Close() error {
	return nil
}
