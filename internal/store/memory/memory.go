// Package memory implements store.Store on process-local maps. It backs
// tests and single-instance development runs; state is lost on restart.
package memory

import (
	"context"
	"sync"
)

// Store is an in-memory implementation of store.Store. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	active   map[string]struct{}
	logs     map[string][][]byte
	partners map[string]map[string]struct{}
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		active:   make(map[string]struct{}),
		logs:     make(map[string][][]byte),
		partners: make(map[string]map[string]struct{}),
	}
}

func (s *Store) AddActive(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[username] = struct{}{}
	return nil
}

func (s *Store) RemoveActive(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, username)
	return nil
}

func (s *Store) ListActive(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.active))
	for u := range s.active {
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) IsActive(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[username]
	return ok, nil
}

func (s *Store) AppendMessage(_ context.Context, key string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(record))
	copy(buf, record)
	// Head-insert, matching the Redis list layout.
	s.logs[key] = append([][]byte{buf}, s.logs[key]...)
	return nil
}

func (s *Store) ListMessages(_ context.Context, key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.logs[key]
	out := make([][]byte, len(log))
	copy(out, log)
	return out, nil
}

func (s *Store) AddPartner(_ context.Context, user, partner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.partners[user]
	if !ok {
		set = make(map[string]struct{})
		s.partners[user] = set
	}
	set[partner] = struct{}{}
	return nil
}

func (s *Store) ListPartners(_ context.Context, user string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.partners[user]))
	for p := range s.partners[user] {
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) Close() error {
	return nil
}
