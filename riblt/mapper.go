package riblt

import "math"

// splitmix64Gamma is the golden-ratio increment from Vigna's splitmix64.
// https://xoshiro.di.unimi.it/splitmix64.c
const splitmix64Gamma = 0x9E3779B97F4A7C15

// splitmix64Finalize runs the splitmix64 output-mixing step on state. It is
// the same finalizer whether stepping the generator forward (IndexStream.nextRandomUint64)
// or one-shot hashing a uint64 Symbol (Uint64Symbol.Hash): both need a
// fixed, version-stable bit mixer, and splitmix64's is small and widely
// reproduced.
func splitmix64Finalize(state uint64) uint64 {
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// IndexStream produces, for a single source Symbol's hash, the infinite
// monotonically increasing sequence of coded-symbol positions that Symbol
// contributes to (§3 "IndexStream", §4.C). Two IndexStreams built from the
// same seed always emit the same sequence: this is the determinism
// contract two independent peers rely on to compute identical coded
// symbols for identical sets (§6).
//
// The PRNG and gap formula are fixed by specification, not swappable: any
// two interoperating implementations must reproduce this exact sequence,
// so IndexStream intentionally does not delegate to math/rand (whose
// algorithm and output are not a stability guarantee across Go versions).
type IndexStream struct {
	i   uint64 // last emitted index; 0 before the first call to Next
	k   uint64 // number of gaps drawn so far
	rng uint64 // splitmix64 generator state, seeded from the symbol hash
}

// NewIndexStream seeds a new IndexStream from a symbol's hash. Per §4.C,
// interoperating peers MUST use this exact seeding and advance function for
// equal symbol hashes to agree on coded-symbol positions.
func NewIndexStream(symbolHash uint64) *IndexStream {
	return &IndexStream{rng: symbolHash}
}

// nextRandomUint64 draws one raw splitmix64 output and advances the generator state.
func (s *IndexStream) nextRandomUint64() uint64 {
	s.rng += splitmix64Gamma
	return splitmix64Finalize(s.rng)
}

// Next advances the stream and returns the next coded-symbol index this
// symbol touches. The gap to the previous index is drawn from
//
//	gap = ceil((k+1) * (1/sqrt(u) - 1)),  u uniform in (0,1]
//
// per §3/§4.C, with k the number of gaps drawn so far (0-based). The gap is
// floored at 1 so the sequence is strictly increasing.
func (s *IndexStream) Next() uint64 {
	raw := s.nextRandomUint64()
	// Map the top 53 bits to a uniform float in [0,1), then invert to land
	// in (0,1]: a raw value of 0 must never produce u=0 (division below).
	f := float64(raw>>11) / float64(uint64(1)<<53)
	u := 1.0 - f

	k1 := float64(s.k + 1)
	gap := uint64(math.Ceil(k1 * (1/math.Sqrt(u) - 1)))
	if gap < 1 {
		gap = 1
	}

	s.i += gap
	s.k++
	return s.i
}
