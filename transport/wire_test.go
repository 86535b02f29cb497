package transport

import (
	"testing"

	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireRoundTripByteSymbol(t *testing.T) {
	cs := riblt.CodedSymbol{}.Apply(riblt.ByteSymbol("hello"), 1)
	w, err := ToWire(cs)
	require.NoError(t, err)
	got := FromWire(w)
	assert.Equal(t, cs, got)
}

func TestWireRoundTripIdentity(t *testing.T) {
	var cs riblt.CodedSymbol
	w, err := ToWire(cs)
	require.NoError(t, err)
	assert.Nil(t, w.Payload)
	got := FromWire(w)
	assert.True(t, got.IsEmpty())
}

func TestWireRejectsNonByteSymbolPayload(t *testing.T) {
	cs := riblt.CodedSymbol{}.Apply(riblt.Uint64Symbol(3), 1)
	_, err := ToWire(cs)
	assert.Error(t, err)
}
