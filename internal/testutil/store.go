package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/gallery/internal/service"
	"github.com/Veraticus/gallery/internal/storage"
)

// ErrInjected is returned by FaultyStore when a fault is armed.
var ErrInjected = errors.New("injected storage failure")

// FaultyStore wraps a KVStore and fails selected operations on demand. It
// also counts calls so tests can assert on write behavior.
type FaultyStore struct {
	inner   service.KVStore
	gets    int
	sets    int
	removes int
	mu      sync.Mutex
	failGet bool
	failSet bool
	failRm  bool
	// breakReads arms failGet once a write lands.
	breakReads bool
}

// NewFaultyStore wraps inner, or a fresh memory store when inner is nil.
func NewFaultyStore(inner service.KVStore) *FaultyStore {
	if inner == nil {
		inner = storage.NewMemoryStorage()
	}
	return &FaultyStore{inner: inner}
}

// FailGet arms or disarms read failures.
func (s *FaultyStore) FailGet(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = fail
}

// FailGetAfterSet makes every read fail once the next write has succeeded.
func (s *FaultyStore) FailGetAfterSet(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakReads = fail
}

// FailSet arms or disarms write failures.
func (s *FaultyStore) FailSet(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = fail
}

// FailRemove arms or disarms remove failures.
func (s *FaultyStore) FailRemove(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRm = fail
}

// Sets returns how many writes reached the store, failed or not.
func (s *FaultyStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// Gets returns how many reads reached the store.
func (s *FaultyStore) Gets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// Removes returns how many removes reached the store.
func (s *FaultyStore) Removes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes
}

// Get implements service.KVStore.
func (s *FaultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.gets++
	fail := s.failGet
	s.mu.Unlock()

	if fail {
		return "", false, ErrInjected
	}
	return s.inner.Get(ctx, key)
}

// Set implements service.KVStore.
func (s *FaultyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets++
	fail := s.failSet
	s.mu.Unlock()

	if fail {
		return ErrInjected
	}
	if err := s.inner.Set(ctx, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	if s.breakReads {
		s.failGet = true
	}
	s.mu.Unlock()
	return nil
}

// Remove implements service.KVStore.
func (s *FaultyStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	s.removes++
	fail := s.failRm
	s.mu.Unlock()

	if fail {
		return ErrInjected
	}
	return s.inner.Remove(ctx, key)
}

// Close implements service.KVStore.
func (s *FaultyStore) Close() error {
	return s.inner.Close()
}
