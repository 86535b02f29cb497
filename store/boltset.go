package store

import (
	"encoding/binary"
	"fmt"

	"github.com/samWighton/rateless-iblt/riblt"
	bolt "go.etcd.io/bbolt"
)

var symbolsBucket = []byte("symbols")

// BoltSet is a bbolt-backed Set, for a source set that needs to survive a
// restart. It stores riblt.ByteSymbol values only: bbolt keys and values are
// both byte slices, and ByteSymbol is the one Symbol implementation in this
// module whose wire form and in-memory form coincide, so no separate codec
// is needed here (transport.WireSymbol carries the general case, for
// symbols sent between peers rather than kept on disk).
type BoltSet struct {
	db *bolt.DB
}

// OpenBoltSet opens (creating if necessary) a bbolt database at path and
// returns a BoltSet backed by it. The caller owns the returned *bolt.DB's
// lifetime and should Close it via BoltSet.Close when done.
func OpenBoltSet(path string) (*BoltSet, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(symbolsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}
	return &BoltSet{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltSet) Close() error {
	return s.db.Close()
}

func hashKey(hash uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, hash)
	return key
}

// Each implements Set. It runs inside a single bbolt read transaction, so
// any error encountered mid-iteration (there should never be one, short of
// on-disk corruption) aborts the whole scan silently rather than surfacing
// through yield's bool return; callers that need that signal should read
// the bucket directly.
func (s *BoltSet) Each(yield func(riblt.Symbol) bool) {
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(symbolsBucket)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			sym := make(riblt.ByteSymbol, len(v))
			copy(sym, v)
			if !yield(sym) {
				return nil
			}
		}
		return nil
	})
}

// Add implements Set. sym must be a riblt.ByteSymbol; any other
// implementation returns an error, since BoltSet has no general way to
// serialize an arbitrary Symbol.
func (s *BoltSet) Add(sym riblt.Symbol) error {
	b, ok := sym.(riblt.ByteSymbol)
	if !ok {
		return fmt.Errorf("store: BoltSet only stores riblt.ByteSymbol, got %T", sym)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(symbolsBucket).Put(hashKey(sym.Hash()), b)
	})
}

// Remove implements Set.
func (s *BoltSet) Remove(hash uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(symbolsBucket).Delete(hashKey(hash))
	})
}

// Len implements Set.
func (s *BoltSet) Len() int {
	n := 0
	_ = s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(symbolsBucket).Stats().KeyN
		return nil
	})
	return n
}
