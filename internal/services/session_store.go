package services

import (
	"sync"
)

// SessionStore remembers which account, if any, each browser session is logged in as
type SessionStore interface {
	Login(sessionID, accountID string)
	AccountID(sessionID string) (string, bool)
	Logout(sessionID string)
}

// MemorySessionStore implements SessionStore in memory
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemorySessionStore creates an empty session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]string),
	}
}

func (s *MemorySessionStore) Login(sessionID, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = accountID
}

func (s *MemorySessionStore) AccountID(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[sessionID]
	return id, ok
}

func (s *MemorySessionStore) Logout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
