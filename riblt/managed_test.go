package riblt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource is the simplest possible SymbolSource: a fixed slice, used
// only to exercise ManagedCodec without pulling in the store package.
type sliceSource []Symbol

func (s sliceSource) Each(yield func(Symbol) bool) {
	for _, x := range s {
		if !yield(x) {
			return
		}
	}
}

func uint64Set(values ...uint64) sliceSource {
	out := make(sliceSource, len(values))
	for i, v := range values {
		out[i] = Uint64Symbol(v)
	}
	return out
}

// §8 property 4: a managed codec over A extended to m equals an empty
// unmanaged codec with each element of A added.
func TestManagedUnmanagedEquivalence(t *testing.T) {
	const m = 64
	source := uint64Set(1, 2, 3, 4, 5, 42, 100, 999)

	managed := NewManagedCodec(source)
	managed.ExtendTo(m)

	unmanaged := NewEmptyUnmanagedCodec(m)
	for _, x := range source {
		unmanaged.Add(x)
	}

	require.Equal(t, m, int(managed.Len()))
	assert.Equal(t, unmanaged.Prefix(), managed.prefix)
}

func TestManagedCodecExtendIsIdempotentAndMonotonic(t *testing.T) {
	source := uint64Set(7, 8, 9)
	managed := NewManagedCodec(source)

	managed.ExtendTo(10)
	snapshot := append([]CodedSymbol(nil), managed.prefix...)

	managed.ExtendTo(5) // shrinking request must be a no-op
	assert.Equal(t, snapshot, managed.prefix)

	managed.ExtendTo(20)
	assert.Equal(t, snapshot, managed.prefix[:10])
	assert.Equal(t, 20, len(managed.prefix))
}

func TestManagedCodecCodedSymbolExtendsLazily(t *testing.T) {
	source := uint64Set(1, 2)
	managed := NewManagedCodec(source)

	assert.Equal(t, uint64(0), managed.Len())
	_ = managed.CodedSymbol(15)
	assert.Equal(t, uint64(16), managed.Len())
}

func TestManagedCodecToUnmanagedConsumes(t *testing.T) {
	source := uint64Set(1, 2, 3)
	managed := NewManagedCodec(source)
	managed.ExtendTo(32)

	unmanaged := managed.ToUnmanaged()
	assert.Equal(t, uint64(32), unmanaged.Len())
	assert.Equal(t, uint64(0), managed.Len())
}

// S6: extend_to in small chunks; can_peel_to_empty should flip from false
// to true exactly once and then stay true.
func TestExtendToInChunksFlipsPeelabilityOnce(t *testing.T) {
	var a []Symbol
	var b []Symbol
	for i := uint64(1); i <= 200; i++ {
		a = append(a, Uint64Symbol(i))
		if i != 77 {
			b = append(b, Uint64Symbol(i))
		}
	}

	left := NewManagedCodec(sliceSource(a))
	right := NewManagedCodec(sliceSource(b))

	sawTrue := false
	flips := 0
	prevDetermined := false
	for chunk := uint64(10); chunk <= 200; chunk += 10 {
		left.ExtendTo(chunk)
		right.ExtendTo(chunk)

		leftPrefix := append([]CodedSymbol(nil), left.prefix...)
		rightUnmanaged := UnmanagedCodecFromPrefix(append([]CodedSymbol(nil), right.prefix...))
		collapsed := UnmanagedCodecFromPrefix(leftPrefix).Collapse(rightUnmanaged)

		determined := collapsed.CanPeelToEmpty()
		if determined && !prevDetermined {
			flips++
		}
		if !determined && prevDetermined {
			t.Fatalf("can_peel_to_empty went from true back to false at chunk %d", chunk)
		}
		prevDetermined = determined
		if determined {
			sawTrue = true
		}
	}

	assert.True(t, sawTrue, "reconciliation never became peelable within the chunk budget")
	assert.LessOrEqual(t, flips, 1, "can_peel_to_empty flipped to true more than once")
}
