package riblt

// SymbolSource is the "iterable set" a ManagedCodec is built over (§4.D).
// Each must call yield once per distinct Symbol in the set and stop
// iterating (returning promptly) if yield returns false. Implementations
// in this repo live in package store; ManagedCodec only depends on this
// narrow interface so it never needs to know how the set is stored.
type SymbolSource interface {
	Each(yield func(Symbol) bool)
}

// indexCursor is the per-symbol "where was I" bookmark ExtendTo uses to
// avoid re-walking a symbol's index stream from position zero on every
// call (§9 "Per-symbol PRNG state caching"). It accepts the same 64-bit
// hash-collision risk as using the hash itself as the map key: two
// distinct symbols that collide share a cursor and one silently loses its
// contribution, exactly the risk §9 documents for the scale this codec
// targets.
type indexCursor struct {
	stream     *IndexStream
	pending    uint64
	hasPending bool
}

// ManagedCodec is bound to a SymbolSource at construction and lazily
// extends its coded-symbol prefix on demand (§4.D). It owns its prefix
// exclusively; see §5 for the single-threaded, no-locking concurrency
// model this and UnmanagedCodec share.
type ManagedCodec struct {
	source SymbolSource
	prefix []CodedSymbol
	cache  map[uint64]*indexCursor
}

// NewManagedCodec binds a ManagedCodec to source. The prefix starts empty;
// per-symbol index-stream state is not eagerly allocated (§4.D).
func NewManagedCodec(source SymbolSource) *ManagedCodec {
	return &ManagedCodec{
		source: source,
		cache:  make(map[uint64]*indexCursor),
	}
}

// Len returns the length of the prefix materialized so far.
func (c *ManagedCodec) Len() uint64 {
	return uint64(len(c.prefix))
}

// CodedSymbol returns C[i], extending the prefix up to and including i if
// necessary.
func (c *ManagedCodec) CodedSymbol(i uint64) CodedSymbol {
	c.ExtendTo(i + 1)
	return c.prefix[i]
}

// ExtendTo ensures the prefix has length at least m (§4.D). It iterates the
// source set once per call: for every symbol, it advances that symbol's
// cached index-stream cursor until the next index it would touch is >= m,
// applying the symbol into every newly-exposed position along the way.
// Positions already below the previous watermark are never revisited.
func (c *ManagedCodec) ExtendTo(m uint64) {
	if m <= uint64(len(c.prefix)) {
		return
	}
	grown := make([]CodedSymbol, m)
	copy(grown, c.prefix)
	c.prefix = grown

	c.source.Each(func(x Symbol) bool {
		h := x.Hash()
		cur, ok := c.cache[h]
		if !ok {
			cur = &indexCursor{stream: NewIndexStream(h)}
			c.cache[h] = cur
		}
		for {
			if !cur.hasPending {
				cur.pending = cur.stream.Next()
				cur.hasPending = true
			}
			if cur.pending >= m {
				break
			}
			c.prefix[cur.pending] = c.prefix[cur.pending].Apply(x, 1)
			cur.hasPending = false
		}
		return true
	})
}

// ToUnmanaged hands off the current prefix to a new UnmanagedCodec. The
// ManagedCodec is consumed: its prefix is cleared, and further calls to
// CodedSymbol/ExtendTo start rebuilding from an empty prefix (callers that
// want to keep using both should not call this, or should discard the
// ManagedCodec afterward as §3's lifecycle section describes).
func (c *ManagedCodec) ToUnmanaged() *UnmanagedCodec {
	prefix := c.prefix
	c.prefix = nil
	c.cache = make(map[uint64]*indexCursor)
	return UnmanagedCodecFromPrefix(prefix)
}
