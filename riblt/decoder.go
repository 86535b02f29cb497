package riblt

// PeeledSymbol is one entry of a peel's output: the recovered Symbol and
// the side of the collapse it came from. By the "left minus right"
// convention of §4.E/§9, Sign is +1 for a Symbol present only on the left
// operand of Collapse and -1 for one present only on the right.
type PeeledSymbol struct {
	Sym  Symbol
	Sign int
}

// Peel runs the decoder of §4.F over prefix and returns the recovered
// symbols together with the residual coded-symbol vector. prefix is never
// modified; Peel works against its own copy, matching §3's "decoder state
// exists only for the duration of a peel call".
//
// Peel cannot fail in the type-signature sense (§7): a non-empty residual
// simply means there was not enough information to finish, which the
// caller distinguishes from success by checking that every entry of the
// residual IsEmpty (CanPeelToEmpty).
func Peel(prefix []CodedSymbol) (peeled []PeeledSymbol, residual []CodedSymbol) {
	remaining := make([]CodedSymbol, len(prefix))
	copy(remaining, prefix)
	m := uint64(len(remaining))

	queue := make([]uint64, 0, m)
	queued := make([]bool, m)
	for i, c := range remaining {
		if c.IsPure() {
			queue = append(queue, uint64(i))
			queued[i] = true
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		queued[i] = false

		c := remaining[i]
		if !c.IsPure() {
			// Cancelled by a peel of some other position since it was enqueued.
			continue
		}

		x := c.Sym
		var sign int
		if c.Count > 0 {
			sign = 1
		} else {
			sign = -1
		}
		peeled = append(peeled, PeeledSymbol{Sym: x, Sign: sign})

		stream := NewIndexStream(x.Hash())
		for {
			j := stream.Next()
			if j >= m {
				break
			}
			remaining[j] = remaining[j].Apply(x, int64(-sign))
			if remaining[j].IsPure() && !queued[j] {
				queue = append(queue, j)
				queued[j] = true
			}
		}
	}

	return peeled, remaining
}

// CanPeelToEmpty runs Peel over prefix and reports whether every entry of
// the residual is the identity coded symbol -- the sufficiency signal of
// §4.F that tells a receiver it can stop requesting more coded symbols.
func CanPeelToEmpty(prefix []CodedSymbol) bool {
	_, residual := Peel(prefix)
	for _, c := range residual {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
