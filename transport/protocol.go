package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/samWighton/rateless-iblt/riblt"
	"go.uber.org/zap"
)

// extendRequest asks the server to materialize its coded-symbol prefix up
// to (not including) To, and to return everything from the requester's
// prior watermark onward.
type extendRequest struct {
	From uint64
	To   uint64
}

// extendResponse carries the newly materialized symbols [From, From+len).
type extendResponse struct {
	Symbols []WireSymbol
}

// Server serves successive ranges of a riblt.ManagedCodec's coded-symbol
// prefix to a single connected peer, one connection at a time.
type Server struct {
	codec *riblt.ManagedCodec
	log   *zap.Logger
}

// NewServer returns a Server backed by codec. log may be nil, in which case
// a no-op logger is used.
func NewServer(codec *riblt.ManagedCodec, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{codec: codec, log: log}
}

// Serve accepts connections on ln and handles each sequentially until ln is
// closed or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("transport: accept: %w", err)
			}
		}
		s.log.Info("peer connected", zap.String("remote", conn.RemoteAddr().String()))
		if err := s.handle(conn); err != nil {
			s.log.Warn("peer session ended", zap.Error(err))
		}
	}
}

func (s *Server) handle(conn net.Conn) error {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		var req extendRequest
		if err := readFrame(r, &req); err != nil {
			return err
		}

		s.codec.ExtendTo(req.To)
		symbols := make([]WireSymbol, 0, req.To-req.From)
		for i := req.From; i < req.To; i++ {
			w, err := ToWire(s.codec.CodedSymbol(i))
			if err != nil {
				return err
			}
			symbols = append(symbols, w)
		}

		if err := writeFrame(conn, extendResponse{Symbols: symbols}); err != nil {
			return err
		}
	}
}

// Client fetches coded-symbol ranges from a single Server connection.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to a Server listening at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	return &Client{conn: conn, r: bufio.NewReader(conn)}, nil
}

// NewClient wraps an already-established connection (used by tests running
// over net.Pipe, where there is no address to Dial).
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn, r: bufio.NewReader(conn)}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// FetchRange asks the server to extend its prefix to "to" and returns the
// coded symbols in [from, to).
func (c *Client) FetchRange(ctx context.Context, from, to uint64) ([]riblt.CodedSymbol, error) {
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if err := writeFrame(c.conn, extendRequest{From: from, To: to}); err != nil {
		return nil, err
	}
	var resp extendResponse
	if err := readFrame(c.r, &resp); err != nil {
		return nil, fmt.Errorf("transport: fetch range [%d,%d): %w", from, to, err)
	}
	out := make([]riblt.CodedSymbol, len(resp.Symbols))
	for i, w := range resp.Symbols {
		out[i] = FromWire(w)
	}
	return out, nil
}
