package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps session state in process memory. It is the default
// when no Redis address is configured. Expired entries are swept by Save at
// most once per ttl, so sessions that are never read again do not pile up.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	states    map[string]State
	lastSweep time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl falls back
// to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:       ttl,
		states:    make(map[string]State),
		lastSweep: time.Now(),
	}
}

// Get returns a copy of the state for id. Expired entries are dropped.
func (m *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[id]
	if !ok {
		return NewState(), nil
	}
	if state.IsStale(m.ttl) {
		delete(m.states, id)
		return NewState(), nil
	}
	return &state, nil
}

// Save stores a copy of state under id.
func (m *MemoryStore) Save(ctx context.Context, id string, state *State) error {
	if id == "" {
		return ErrEmptyID
	}
	if state == nil {
		return ErrNilState
	}

	now := time.Now()
	state.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastSweep) >= m.ttl {
		m.sweep()
		m.lastSweep = now
	}
	m.states[id] = *state
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryStore) sweep() {
	for id, state := range m.states {
		if state.IsStale(m.ttl) {
			delete(m.states, id)
		}
	}
}

// Len returns the number of sessions held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}
