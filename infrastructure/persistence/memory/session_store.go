package memory

import (
	"context"
	"sync"
	"time"

	"coursemap-backend/domain/session"
	appErrors "coursemap-backend/pkg/errors"
)

// SessionStore is an in-memory ports.SessionStore. Sessions expire after a
// fixed idle TTL; expired entries are reaped by a background goroutine and
// also filtered on read so a reap delay never resurrects one.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	session   *session.Session
	expiresAt time.Time
}

// NewSessionStore creates a session store with the given idle TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.reapLoop()
	return s
}

// Save persists a session and refreshes its expiry.
func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return appErrors.NewValidationError("session must have an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = entry{
		session:   sess,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Get retrieves a session by ID. Expired sessions report not found.
func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, appErrors.NewNotFoundError("session " + id)
	}
	return e.session, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the background reaper.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) reapLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reap()
		case <-s.stop:
			return
		}
	}
}

func (s *SessionStore) reap() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
