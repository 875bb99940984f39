// Package memstore keeps values in process memory. Nothing survives the process.
package memstore

import (
	"sync"

	"github.com/Makepad-fr/tada/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	// FailSet, when non-nil, is returned by every Set. Tests use it to
	// simulate a full or unavailable medium.
	FailSet error
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

// NewWith returns a store pre-filled with values.
func NewWith(values map[string]string) *Store {
	s := New()
	for k, v := range values {
		s.data[k] = v
	}
	return s
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if s.FailSet != nil {
		return s.FailSet
	}
	s.data[key] = value
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
