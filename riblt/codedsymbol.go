package riblt

// CodedSymbol is the algebraic accumulator described in §3/§4.B: the XOR of
// every Symbol applied to a position, the XOR of their hashes, and a signed
// count of how many have been applied (net of removals). The zero value is
// the identity coded symbol (nil, 0, 0), so a freshly allocated
// []CodedSymbol prefix already satisfies the identity invariant (§8
// property 1) without any explicit initialization.
type CodedSymbol struct {
	Sym   Symbol
	Hash  uint64
	Count int64
}

// Apply accumulates Symbol x into the coded symbol with the given sign
// (+1 to add, -1 to remove), per §4.B. It is total: it never fails, and it
// never mutates x.
func (c CodedSymbol) Apply(x Symbol, direction int64) CodedSymbol {
	return CodedSymbol{
		Sym:   xorSymbols(c.Sym, x),
		Hash:  c.Hash ^ x.Hash(),
		Count: c.Count + direction,
	}
}

// Combine componentwise-XORs two coded symbols and adds or subtracts their
// counts (direction +1 for Combine, -1 for Collapse in §4.E). This is the
// group operation over CodedSymbol itself, built from the same xorSymbols
// primitive Apply uses.
func (c CodedSymbol) Combine(other CodedSymbol, direction int64) CodedSymbol {
	return CodedSymbol{
		Sym:   xorSymbols(c.Sym, other.Sym),
		Hash:  c.Hash ^ other.Hash,
		Count: c.Count + direction*other.Count,
	}
}

// IsPure reports whether exactly one Symbol remains accumulated here: the
// count is +-1 and the accumulated hash matches the hash of the
// accumulated Sym. A coded symbol can satisfy this accidentally on a hash
// collision (§4.F "Spurious purity"); callers must still verify
// CanPeelToEmpty before trusting a peel's output.
func (c CodedSymbol) IsPure() bool {
	if c.Count != 1 && c.Count != -1 {
		return false
	}
	if c.Sym == nil {
		return false
	}
	return c.Hash == c.Sym.Hash()
}

// IsEmpty reports whether this is the identity coded symbol: count zero,
// hash zero, and an accumulated Sym that is nil or itself the Symbol zero
// value.
func (c CodedSymbol) IsEmpty() bool {
	if c.Count != 0 || c.Hash != 0 {
		return false
	}
	return c.Sym == nil || c.Sym.IsZero()
}
