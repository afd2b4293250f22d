// internal/store/memory.go
//
// In-memory session store for active games.
//
// Characteristics:
//   - Sessions keyed by a random UUID.
//   - Map guarded by RWMutex; each Session carries its own mutex so one
//     game's transitions never block another's.
//   - Idle sessions are dropped by Reap (called on a ticker by Run).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/palabra/internal/game"
)

// ErrNotFound is returned by Get for unknown or reaped sessions.
var ErrNotFound = errors.New("session not found")

// Session is one player's game. Callers must hold mu (via Do) to touch Game.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	game       *game.State
	lastActive time.Time
}

// Do runs fn with exclusive access to the session's game and marks it active.
func (s *Session) Do(fn func(g *game.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	fn(s.game)
}

func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(t)
}

// Store holds sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs an empty Store.
func NewMemoryStore() *Store {
	return &Store{sessions: make(map[string]*Session), now: time.Now}
}

// Create registers g under a fresh ID.
func (m *Store) Create(g *game.State) *Session {
	now := m.now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now, game: g, lastActive: now}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (m *Store) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes a session. Unknown IDs are ignored.
func (m *Store) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap drops sessions idle for longer than idle and returns how many went.
func (m *Store) Reap(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run reaps every interval until ctx is done.
func (m *Store) Run(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Reap(idle); n > 0 {
				log.Debug().Int("reaped", n).Int("live", m.Len()).Msg("idle sessions dropped")
			}
		}
	}
}
