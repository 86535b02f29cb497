// Package reconcile is the scheduling collaborator spec.md §1 explicitly
// places outside the riblt codec's core: it decides when to fetch more
// coded symbols and when a reconciliation round has converged. The codec
// itself (riblt.UnmanagedCodec, riblt.Peel, riblt.CanPeelToEmpty) has no
// opinion on either question.
package reconcile

import (
	"context"
	"fmt"

	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/samWighton/rateless-iblt/transport"
	"go.uber.org/zap"
)

// Session reconciles a local riblt.SymbolSource against a remote peer
// reachable through a transport.Client.
type Session struct {
	local     *riblt.ManagedCodec
	remote    *transport.Client
	chunkSize uint64
	maxWatch  uint64
	log       *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithInitialChunkSize overrides the default first-round fetch size (64).
func WithInitialChunkSize(n uint64) Option {
	return func(s *Session) { s.chunkSize = n }
}

// WithMaxWatermark caps how far a Session will extend its prefix before
// giving up, guarding against an unbounded loop if the two sides never
// converge (for example, one peer's set is a strict superset with no
// reasonable symmetric-difference bound). Zero means unbounded.
func WithMaxWatermark(n uint64) Option {
	return func(s *Session) { s.maxWatch = n }
}

// WithLogger attaches a zap logger for per-round progress.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession builds a Session over a local source set and a connected
// remote peer.
func NewSession(source riblt.SymbolSource, remote *transport.Client, opts ...Option) *Session {
	s := &Session{
		local:     riblt.NewManagedCodec(source),
		remote:    remote,
		chunkSize: 64,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs the extend-and-peel loop until the symmetric difference is
// fully recovered (or the watermark cap is reached). Each round grows the
// watermark by a chunk that doubles every round and re-fetches the whole
// remote prefix [0, watermark) -- matching the rateless sufficiency
// property's "start small, grow toward ~1.35d" shape, rather than guessing
// the difference size d up front. added holds symbols present
// locally but not remotely; removed holds symbols present remotely but not
// locally (the sign convention from riblt.UnmanagedCodec.Collapse, "local
// minus remote").
func (s *Session) Run(ctx context.Context) (added, removed []riblt.Symbol, err error) {
	var watermark uint64
	for {
		next := watermark + s.chunkSize
		if s.maxWatch != 0 && next > s.maxWatch {
			next = s.maxWatch
		}
		if next <= watermark {
			return nil, nil, fmt.Errorf("reconcile: exhausted watermark budget (%d) before converging", s.maxWatch)
		}

		remoteCoded, err := s.remote.FetchRange(ctx, 0, next)
		if err != nil {
			return nil, nil, fmt.Errorf("reconcile: fetch range [0,%d): %w", next, err)
		}

		view := riblt.UnmanagedCodecFromPrefix(s.localPrefix(next))
		view.Collapse(riblt.UnmanagedCodecFromPrefix(remoteCoded))

		peeled, residualCodec := view.Peel()
		if !residualCodec.CanPeelToEmpty() {
			s.log.Info("round did not converge, extending",
				zap.Uint64("watermark", next))
			watermark = next
			s.chunkSize *= 2
			continue
		}

		for _, p := range peeled {
			if p.Sign > 0 {
				added = append(added, p.Sym)
			} else {
				removed = append(removed, p.Sym)
			}
		}
		s.log.Info("reconciliation converged",
			zap.Uint64("watermark", next),
			zap.Int("added", len(added)),
			zap.Int("removed", len(removed)))
		return added, removed, nil
	}
}

func (s *Session) localPrefix(n uint64) []riblt.CodedSymbol {
	s.local.ExtendTo(n)
	prefix := make([]riblt.CodedSymbol, n)
	for i := uint64(0); i < n; i++ {
		prefix[i] = s.local.CodedSymbol(i)
	}
	return prefix
}
