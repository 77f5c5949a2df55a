package wizard

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Drafts expire after a day of inactivity.
const SessionTTL = 24 * time.Hour

var ErrNotFound = errors.New("wizard session not found")

// Store persists wizard sessions between requests.
type Store interface {
	Save(ctx context.Context, state *State) error
	Get(ctx context.Context, id string) (*State, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

func (m *MemoryStore) Save(ctx context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.ID] = state
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
