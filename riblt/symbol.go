package riblt

import (
	"github.com/cespare/xxhash/v2"
)

// Symbol is the capability set a caller-defined set element must expose
// for RIBLT to reconcile it: a commutative, associative, self-inverse
// group operation (XOR), and a deterministic 64-bit identity hash.
//
// XOR must return a new value rather than mutate the receiver or the
// argument: unlike the teacher's block.xor, a Symbol implementation may be
// shared across many coded-symbol positions (a ManagedCodec's cached
// index-stream cursor, for instance, calls XOR repeatedly against the same
// caller-owned value), so the library never assumes it can clobber either
// operand.
//
// Hash must be deterministic across processes and Go versions for two
// peers to agree on coded symbols for identical sets (see mapper.go).
type Symbol interface {
	XOR(other Symbol) Symbol
	Hash() uint64
	IsZero() bool
}

// xorSymbols applies the group operation, treating a nil Symbol as the
// identity element. CodedSymbol represents "no symbol accumulated yet" as
// a nil Sym rather than forcing every Symbol implementation to supply a
// zero-value constructor. A result that IsZero is returned as nil, so a
// position whose symbols cancel out is bitwise the identity again.
func xorSymbols(a, b Symbol) Symbol {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		if r := a.XOR(b); !r.IsZero() {
			return r
		}
		return nil
	}
}

// ByteSymbol is a Symbol over an opaque byte string, the generalization of
// the teacher's block type (block.xor) to the group-operation contract
// required by §4.A. Two ByteSymbols being XORed should ordinarily be of
// equal length; a shorter operand is treated as zero-padded on the right,
// matching block.xor's padding behavior.
type ByteSymbol []byte

// XOR returns a new ByteSymbol, the byte-wise XOR of the receiver and
// other, zero-extended to the longer of the two lengths.
func (b ByteSymbol) XOR(other Symbol) Symbol {
	o, _ := other.(ByteSymbol)
	n := len(b)
	if len(o) > n {
		n = len(o)
	}
	out := make(ByteSymbol, n)
	copy(out, b)
	for i := 0; i < len(o); i++ {
		out[i] ^= o[i]
	}
	return out
}

// Hash returns the 64-bit xxhash digest of the byte string. xxhash is used
// here -- not splitmix64 -- because it hashes arbitrary-length caller data;
// splitmix64 is reserved for the frozen, fixed-width PRNG of §4.C.
func (b ByteSymbol) Hash() uint64 {
	return xxhash.Sum64(b)
}

// IsZero reports whether every byte of b is zero, treating a nil/empty
// ByteSymbol as the group identity.
func (b ByteSymbol) IsZero() bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Uint64Symbol is a Symbol over a plain uint64, the concrete type used by
// the end-to-end scenarios in §8 ("Symbol = u64, xor = ^, hash =
// splitmix64"). Its hash reuses the splitmix64 finalizer from mapper.go so
// the same mixing primitive backs both the degree-distribution PRNG and
// this reference Symbol's hash, as the scenarios specify.
type Uint64Symbol uint64

// XOR returns the bitwise XOR of the receiver and other.
func (u Uint64Symbol) XOR(other Symbol) Symbol {
	o, _ := other.(Uint64Symbol)
	return u ^ o
}

// Hash mixes the integer through the splitmix64 finalizer, exactly the
// "hash = splitmix64" Symbol the §8 scenarios are specified against.
func (u Uint64Symbol) Hash() uint64 {
	return splitmix64Finalize(uint64(u) + splitmix64Gamma)
}

// IsZero reports whether u is the zero value.
func (u Uint64Symbol) IsZero() bool {
	return u == 0
}
