package replay

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// Store persists the replay history of rooms. Implementations must be safe
// for concurrent use; rooms are independent keys and a save replaces the
// room's whole history.
type Store interface {
	// Save replaces the persisted history for the room, oldest entry first.
	Save(ctx context.Context, roomID string, entries []json.RawMessage) error

	// Load returns the persisted history for the room, oldest entry first.
	// A room with no history yields an empty (or nil) slice, not an error.
	Load(ctx context.Context, roomID string) ([]json.RawMessage, error)
}

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string][]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string][]json.RawMessage),
	}
}

// Save replaces the room's history with a copy of entries.
func (s *MemoryStore) Save(ctx context.Context, roomID string, entries []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[roomID] = slices.Clone(entries)
	return nil
}

// Load returns a copy of the room's history.
func (s *MemoryStore) Load(ctx context.Context, roomID string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rooms[roomID]), nil
}
