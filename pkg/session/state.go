// Package session keeps the per-visitor screen state of the web front end:
// the page a visitor is looking at and whether the load-failure
// notification has already been shown to them.
package session

import (
	"context"
	"errors"
	"time"
)

// Redis key layout for session state.
const (
	// RedisKeyPrefix is followed by the session id.
	RedisKeyPrefix = "directory:session:"

	fieldPage      = "page"
	fieldNotified  = "notified"
	fieldUpdatedAt = "updated_at"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

var (
	// ErrEmptyID is returned for a blank session id.
	ErrEmptyID = errors.New("session id is required")

	// ErrNilState is returned when saving a nil state.
	ErrNilState = errors.New("session state cannot be nil")
)

// State is the mutable part of one visitor's screen.
type State struct {
	// Page is the 1-based page currently shown.
	Page int `json:"page"`

	// Notified is set once the failure notification was delivered.
	Notified bool `json:"notified"`

	// UpdatedAt is when the state was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState returns the state of a fresh session: page 1, not notified.
func NewState() *State {
	return &State{Page: 1}
}

// IsStale returns true if the state is older than maxAge.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.UpdatedAt) > maxAge
}

// Store persists session state by id.
type Store interface {
	// Get returns the saved state, or NewState() when none exists.
	Get(ctx context.Context, id string) (*State, error)

	// Save stores state and refreshes its expiry.
	Save(ctx context.Context, id string, state *State) error
}
