// Package transport is the wire collaborator spec.md §1 places outside the
// riblt codec's core: framing and exchanging coded symbols between two
// peers over a net.Conn. It knows nothing about peeling or index streams;
// it just moves []riblt.CodedSymbol ranges back and forth.
package transport

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/samWighton/rateless-iblt/riblt"
)

// WireSymbol is the serializable shape of a riblt.CodedSymbol. Payload
// carries the concrete Symbol's bytes; transport only moves riblt.ByteSymbol
// payloads, the same restriction store.BoltSet makes, since gob needs a
// concrete registered type and ByteSymbol's wire form is its in-memory form.
// A nil Payload encodes the identity symbol (CodedSymbol.Sym == nil).
type WireSymbol struct {
	Payload []byte
	Hash    uint64
	Count   int64
}

// ToWire converts a CodedSymbol to its wire form. It returns an error if
// cs.Sym is non-nil and not a riblt.ByteSymbol.
func ToWire(cs riblt.CodedSymbol) (WireSymbol, error) {
	if cs.Sym == nil {
		return WireSymbol{Hash: cs.Hash, Count: cs.Count}, nil
	}
	b, ok := cs.Sym.(riblt.ByteSymbol)
	if !ok {
		return WireSymbol{}, fmt.Errorf("transport: coded symbol payload is %T, not riblt.ByteSymbol", cs.Sym)
	}
	return WireSymbol{Payload: []byte(b), Hash: cs.Hash, Count: cs.Count}, nil
}

// FromWire converts a wire symbol back into a riblt.CodedSymbol.
func FromWire(w WireSymbol) riblt.CodedSymbol {
	var sym riblt.Symbol
	if w.Payload != nil {
		sym = riblt.ByteSymbol(w.Payload)
	}
	return riblt.CodedSymbol{Sym: sym, Hash: w.Hash, Count: w.Count}
}

// writeFrame writes a uint32 big-endian length prefix followed by the
// gob encoding of v.
func writeFrame(w io.Writer, v interface{}) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("transport: encode frame: %w", err)
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(buf.Len()))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("transport: write frame length: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("transport: write frame body: %w", err)
	}
	return nil
}

// readFrame reads one length-prefixed gob frame into v.
func readFrame(r *bufio.Reader, v interface{}) error {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("transport: read frame body: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(v); err != nil {
		return fmt.Errorf("transport: decode frame: %w", err)
	}
	return nil
}
