/*
Package riblt implements Rateless Invertible Bloom Lookup Tables for set
reconciliation between two parties that each hold a set of Symbols.

Two peers each build a Codec over their own set and exchange an open-ended,
lazily generated sequence of CodedSymbols: the receiver collapses its own
prefix against the sender's and peels the result to recover exactly the
symbols each side is missing. No a-priori estimate of how different the two
sets are is required -- the sequence is simply extended until peeling
succeeds.

The overall approach is that every Symbol deterministically selects an
infinite, monotonically increasing sequence of coded-symbol positions it
contributes to (the index mapper). A ManagedCodec walks a caller's set to
materialize a prefix of coded symbols on demand; an UnmanagedCodec holds a
received or detached prefix, supports combining it with another codec's
prefix, and runs the peeling decoder that recovers the symmetric
difference.
*/
package riblt
