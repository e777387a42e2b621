package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Store holds the live sessions by ID
type Store struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
	deps     Deps
}

// NewStore creates a new in-memory session store
func NewStore(deps Deps) *Store {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	return &Store{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// Create starts a new session with a random ID
func (s *Store) Create() *Session {
	sess := New(uuid.NewString(), s.deps)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sessions[sess.ID()] = sess
	return sess
}

// Get retrieves a session by ID
func (s *Store) Get(id string) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete closes and removes a session
func (s *Store) Delete(id string) error {
	s.mutex.Lock()
	sess, exists := s.sessions[id]
	delete(s.sessions, id)
	s.mutex.Unlock()

	if !exists {
		return ErrNotFound
	}
	sess.Close()
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// PruneIdle closes sessions with no activity for longer than maxIdle
func (s *Store) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.deps.Clock.Now().Add(-maxIdle)

	s.mutex.Lock()
	var pruned []*Session
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			pruned = append(pruned, sess)
		}
	}
	s.mutex.Unlock()

	for _, sess := range pruned {
		sess.Close()
	}
	return len(pruned)
}

// CloseAll closes and removes every session
func (s *Store) CloseAll() {
	s.mutex.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mutex.Unlock()

	for _, sess := range all {
		sess.Close()
	}
}
