package riblt

// UnmanagedCodec holds only a coded-symbol prefix, with no reference to a
// source set (§3/§4.E). It is produced by detaching a ManagedCodec's
// prefix, by receiving a prefix from the network, or by combining two
// UnmanagedCodecs. Unlike ManagedCodec it has a fixed length: Add/Remove
// only touch positions already present in the prefix, so an UnmanagedCodec
// does not support later extension the way a ManagedCodec does.
type UnmanagedCodec struct {
	prefix []CodedSymbol
}

// NewEmptyUnmanagedCodec creates an UnmanagedCodec of the given length, all
// positions at the identity coded symbol. The prefix length is exactly
// length (there is no implicit growth -- see ExtendFixedLength).
func NewEmptyUnmanagedCodec(length int) *UnmanagedCodec {
	return &UnmanagedCodec{prefix: make([]CodedSymbol, length)}
}

// UnmanagedCodecFromPrefix wraps an already-materialized prefix, e.g. one
// received over the wire or detached from a ManagedCodec.
func UnmanagedCodecFromPrefix(prefix []CodedSymbol) *UnmanagedCodec {
	return &UnmanagedCodec{prefix: prefix}
}

// Len returns the length of the held prefix.
func (u *UnmanagedCodec) Len() uint64 {
	return uint64(len(u.prefix))
}

// Prefix returns the coded-symbol prefix, for serialization by the caller
// (§6: "coded-symbol serialization is caller responsibility"). The
// returned slice aliases the codec's internal storage.
func (u *UnmanagedCodec) Prefix() []CodedSymbol {
	return u.prefix
}

// ExtendFixedLength grows the prefix to length m with identity coded
// symbols, without touching any symbol's contribution to the new
// positions. It exists so a receiver can align two UnmanagedCodecs of
// different current lengths (e.g. after receiving more coded symbols from
// one side than the other) before Combine/Collapse; it is the caller's
// responsibility to also Add any locally known symbols into the new
// positions if the codec is meant to represent the full local set.
func (u *UnmanagedCodec) ExtendFixedLength(m uint64) {
	if m <= uint64(len(u.prefix)) {
		return
	}
	grown := make([]CodedSymbol, m)
	copy(grown, u.prefix)
	u.prefix = grown
}

// apply walks x's index stream from scratch up to the codec's current
// length, applying x with the given sign to every position it touches.
// Unlike ManagedCodec.ExtendTo, an UnmanagedCodec has a fixed length, so
// there is no cursor worth caching across calls: Add/Remove are
// one-shot operations over a bounded range.
func (u *UnmanagedCodec) apply(x Symbol, direction int64) {
	m := uint64(len(u.prefix))
	stream := NewIndexStream(x.Hash())
	for {
		idx := stream.Next()
		if idx >= m {
			return
		}
		u.prefix[idx] = u.prefix[idx].Apply(x, direction)
	}
}

// Add accumulates x into every position of the prefix its index stream
// touches (§4.E). Returns the receiver to allow chaining (u.Add(x).Add(y)).
func (u *UnmanagedCodec) Add(x Symbol) *UnmanagedCodec {
	u.apply(x, 1)
	return u
}

// Remove is the inverse of Add: Add(x) followed by Remove(x) leaves u
// bitwise unchanged (§8 property 2).
func (u *UnmanagedCodec) Remove(x Symbol) *UnmanagedCodec {
	u.apply(x, -1)
	return u
}

// Combine componentwise-adds other's prefix into the receiver's, C[i] +=
// other.C[i] for i < min(len(u), len(other)) (§4.E). If the two prefixes
// differ in length, the result is truncated to the shorter one -- the
// spec picks truncation over an error (§7, §9 Open Questions); callers
// that need strict-equal-length semantics should check Len() first.
func (u *UnmanagedCodec) Combine(other *UnmanagedCodec) *UnmanagedCodec {
	return u.combine(other, 1)
}

// Collapse componentwise-subtracts other's prefix from the receiver's,
// C[i] -= other.C[i]. After collapsing a receiver's codec of set B against
// a sender's codec of set A (A.Collapse(B)), peeling the result yields
// A\B with sign +1 and B\A with sign -1, the "left minus right" convention
// of §4.E/§9.
func (u *UnmanagedCodec) Collapse(other *UnmanagedCodec) *UnmanagedCodec {
	return u.combine(other, -1)
}

func (u *UnmanagedCodec) combine(other *UnmanagedCodec, direction int64) *UnmanagedCodec {
	n := len(u.prefix)
	if len(other.prefix) < n {
		n = len(other.prefix)
	}
	for i := 0; i < n; i++ {
		u.prefix[i] = u.prefix[i].Combine(other.prefix[i], direction)
	}
	u.prefix = u.prefix[:n]
	return u
}

// IsEmpty reports whether every position of the prefix is the identity
// coded symbol.
func (u *UnmanagedCodec) IsEmpty() bool {
	for _, c := range u.prefix {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Peel runs the peeling decoder (§4.F) over the held prefix and returns
// the recovered symbols plus a new UnmanagedCodec holding the residual.
// The receiver's own prefix is left untouched.
func (u *UnmanagedCodec) Peel() ([]PeeledSymbol, *UnmanagedCodec) {
	peeled, residual := Peel(u.prefix)
	return peeled, &UnmanagedCodec{prefix: residual}
}

// CanPeelToEmpty is the sufficiency signal of §4.F: it peels a copy of the
// prefix and reports whether the residual is entirely the identity coded
// symbol. Callers use this, not the length of the peeled list, to decide
// whether to request more coded symbols.
func (u *UnmanagedCodec) CanPeelToEmpty() bool {
	return CanPeelToEmpty(u.prefix)
}
