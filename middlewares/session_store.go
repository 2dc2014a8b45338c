package middlewares

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	userID    uint
	expiresAt time.Time
}

// SessionStore maps session ids to user ids in memory. Sessions do not
// survive a restart.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		entries: make(map[string]sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create opens a session for userID and returns its id.
func (s *SessionStore) Create(userID uint) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = sessionEntry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Get returns the user of a live session. Expired sessions are removed.
func (s *SessionStore) Get(id string) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return 0, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return 0, false
	}
	return entry.userID, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Purge drops every expired session and reports how many were removed.
func (s *SessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
