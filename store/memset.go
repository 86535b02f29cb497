package store

import (
	"sync"

	"github.com/samWighton/rateless-iblt/riblt"
)

// MemSet is an in-memory, hash-keyed Set. It is safe for concurrent use:
// Each takes a read lock for the duration of the callback, so a yield that
// calls back into the same MemSet (Add or Remove) will deadlock -- don't.
type MemSet struct {
	mu      sync.RWMutex
	symbols map[uint64]riblt.Symbol
}

// NewMemSet returns an empty MemSet.
func NewMemSet() *MemSet {
	return &MemSet{symbols: make(map[uint64]riblt.Symbol)}
}

// Each implements Set.
func (s *MemSet) Each(yield func(riblt.Symbol) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sym := range s.symbols {
		if !yield(sym) {
			return
		}
	}
}

// Add implements Set.
func (s *MemSet) Add(sym riblt.Symbol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[sym.Hash()] = sym
	return nil
}

// Remove implements Set.
func (s *MemSet) Remove(hash uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.symbols, hash)
	return nil
}

// Len implements Set.
func (s *MemSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}
