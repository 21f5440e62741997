package handlers

import (
	"sync"

	"accessible-route-planner/internal/planner"
)

// SessionStore hands out one navigation session per user. Sessions are
// created lazily and live for the life of the process.
type SessionStore struct {
	planner *planner.Planner

	mu       sync.Mutex
	sessions map[string]*planner.Session
}

// NewSessionStore creates a session store over the given planner
func NewSessionStore(p *planner.Planner) *SessionStore {
	return &SessionStore{
		planner:  p,
		sessions: make(map[string]*planner.Session),
	}
}

// For returns the session for a user, creating it on first use
func (s *SessionStore) For(userID string) *planner.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = planner.NewSession(s.planner)
		s.sessions[userID] = session
	}
	return session
}
