// Package register provides the named text registers shared by every view.
//
// A register holds an immutable text snapshot under a short key. Reading a
// key that was never stored yields the empty string rather than an error;
// use Contains to tell a missing register from an empty one.
package register

import (
	"maps"
	"slices"
	"sync"
)

// Store manages all registers. A Store is created once by the host and
// handed to every controller that needs it; it is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	registers map[string]string
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{
		registers: make(map[string]string),
	}
}

// Get returns the content of a register, or "" if it was never stored.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registers[key]
}

// Store sets the content of a register. The last write wins.
func (s *Store) Store(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers[key] = value
}

// Contains reports whether key was ever stored.
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registers[key]
	return ok
}

// Len returns the number of registers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registers)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.registers))
}

// Snapshot returns a copy of every register.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.registers)
}

// Restore stores every entry of snap, overwriting existing keys.
func (s *Store) Restore(snap map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.registers, snap)
}
