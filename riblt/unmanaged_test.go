package riblt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// §8 property 1: an empty codec of length m is m copies of the identity
// coded symbol.
func TestEmptyUnmanagedCodecIsAllIdentity(t *testing.T) {
	u := NewEmptyUnmanagedCodec(25)
	assert.Equal(t, uint64(25), u.Len())
	assert.True(t, u.IsEmpty())
	for _, c := range u.Prefix() {
		assert.True(t, c.IsEmpty())
	}
}

// §8 property 2: Add followed by Remove of the same symbol leaves the
// codec bitwise unchanged.
func TestAddRemoveIsIdentity(t *testing.T) {
	u := NewEmptyUnmanagedCodec(64)
	before := append([]CodedSymbol(nil), u.Prefix()...)

	u.Add(Uint64Symbol(123)).Remove(Uint64Symbol(123))

	assert.Equal(t, before, u.Prefix())
}

// §8 property 3: adding x then y gives the same prefix as adding y then x.
func TestAddIsCommutative(t *testing.T) {
	const length = 64
	x, y := Uint64Symbol(11), Uint64Symbol(99)

	xy := NewEmptyUnmanagedCodec(length)
	xy.Add(x).Add(y)

	yx := NewEmptyUnmanagedCodec(length)
	yx.Add(y).Add(x)

	assert.Equal(t, xy.Prefix(), yx.Prefix())
}

// §8 property 5: collapsing any codec against itself peels to empty.
func TestSelfCollapseIsAlwaysPeelable(t *testing.T) {
	const length = 64
	u := NewEmptyUnmanagedCodec(length)
	for i := uint64(1); i <= 30; i++ {
		u.Add(Uint64Symbol(i))
	}

	snapshot := UnmanagedCodecFromPrefix(append([]CodedSymbol(nil), u.Prefix()...))
	collapsed := snapshot.Collapse(u)
	assert.True(t, collapsed.CanPeelToEmpty())
}

func TestCombineMismatchedLengthsTruncate(t *testing.T) {
	short := NewEmptyUnmanagedCodec(5)
	short.Add(Uint64Symbol(1))
	long := NewEmptyUnmanagedCodec(10)
	long.Add(Uint64Symbol(2))

	combined := short.Combine(long)
	require.Equal(t, uint64(5), combined.Len())
}

func TestAddThenRemoveDifferentSymbolIsNotAccidentallyEmpty(t *testing.T) {
	u := NewEmptyUnmanagedCodec(64)
	u.Add(Uint64Symbol(1)).Remove(Uint64Symbol(2))
	assert.False(t, u.IsEmpty())
}
