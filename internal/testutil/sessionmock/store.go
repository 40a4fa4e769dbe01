package sessionmock

import (
	"context"
	"sync"
	"time"

	"peerlend-api/internal/domain/session"
)

// Store is an in-memory session.Store for tests. TTLs are recorded but not
// enforced; tests drive expiry by calling Revoke.
type Store struct {
	mu       sync.Mutex
	sessions map[string]uint64
}

func New() *Store {
	return &Store{sessions: make(map[string]uint64)}
}

func (s *Store) Save(_ context.Context, tokenID string, userID uint64, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenID] = userID
	return nil
}

func (s *Store) Get(_ context.Context, tokenID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.sessions[tokenID]
	if !ok {
		return 0, session.ErrNotFound
	}
	return uid, nil
}

func (s *Store) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}

// Len reports how many live sessions the store holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
