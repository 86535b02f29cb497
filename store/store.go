// Package store provides the "durable storage of source sets" collaborator
// that spec §1 places outside the riblt codec's core scope. It gives
// riblt.ManagedCodec something real to iterate: an in-memory Set for tests
// and demos, and a bbolt-backed Set for anything meant to survive a restart.
package store

import (
	"errors"

	"github.com/samWighton/rateless-iblt/riblt"
)

// ErrNotFound is the error for a symbol not present in the set. No Set
// method in this package returns it: Remove of an absent hash succeeds.
var ErrNotFound = errors.New("store: symbol not found")

// Set is the narrow interface a source set needs: its Each method satisfies
// riblt.SymbolSource directly, so any Set can be handed straight to
// riblt.NewManagedCodec. Add and Remove key symbols by their own Hash();
// riblt's Non-goals (spec §1) exclude mutable-symbol-set support *inside the
// codec*, so callers mutate a Set and then discard and rebuild whatever
// ManagedCodec was watching it (spec §9).
type Set interface {
	// Each calls yield once per distinct symbol in the set, stopping early
	// if yield returns false.
	Each(yield func(riblt.Symbol) bool)

	// Add inserts sym, keyed by sym.Hash(). Storing a second, distinct
	// symbol under the same hash silently overwrites the first -- the same
	// 64-bit collision risk spec §9 documents for the codec itself.
	Add(sym riblt.Symbol) error

	// Remove deletes the symbol stored under hash, if any. It is not an
	// error to remove a hash that isn't present.
	Remove(hash uint64) error

	// Len reports the number of distinct symbols currently stored.
	Len() int
}
