package reconcile

import (
	"context"
	"net"
	"sort"
	"testing"
	"time"

	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/samWighton/rateless-iblt/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource []riblt.Symbol

func (s sliceSource) Each(yield func(riblt.Symbol) bool) {
	for _, sym := range s {
		if !yield(sym) {
			return
		}
	}
}

func byteNames(syms []riblt.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = string(s.(riblt.ByteSymbol))
	}
	sort.Strings(out)
	return out
}

// newTestPair starts a transport.Server over remoteSymbols on one end of a
// net.Pipe and returns a connected Client on the other end.
func newTestPair(t *testing.T, remoteSymbols []riblt.Symbol) *transport.Client {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	t.Cleanup(func() { serverConn.Close() })

	codec := riblt.NewManagedCodec(sliceSource(remoteSymbols))
	srv := transport.NewServer(codec, nil)
	go srv.Serve(context.Background(), &singleConnListener{conn: serverConn})

	return transport.NewClient(clientConn)
}

// singleConnListener adapts a single already-accepted net.Conn (e.g. one
// half of a net.Pipe) to the net.Listener interface Server.Serve expects.
type singleConnListener struct {
	conn   net.Conn
	served bool
}

func (l *singleConnListener) Accept() (net.Conn, error) {
	if l.served {
		<-make(chan struct{}) // block forever; test tears down via Close
	}
	l.served = true
	return l.conn, nil
}

func (l *singleConnListener) Close() error   { return l.conn.Close() }
func (l *singleConnListener) Addr() net.Addr { return l.conn.LocalAddr() }

func TestSessionConvergesOnSmallDifference(t *testing.T) {
	common := []riblt.Symbol{
		riblt.ByteSymbol("a"), riblt.ByteSymbol("b"), riblt.ByteSymbol("c"),
		riblt.ByteSymbol("d"), riblt.ByteSymbol("e"),
	}
	local := append(append([]riblt.Symbol{}, common...), riblt.ByteSymbol("local-only"))
	remote := append(append([]riblt.Symbol{}, common...), riblt.ByteSymbol("remote-only"))

	client := newTestPair(t, remote)
	defer client.Close()

	sess := NewSession(sliceSource(local), client, WithInitialChunkSize(4), WithMaxWatermark(10000))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, removed, err := sess.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"local-only"}, byteNames(added))
	assert.Equal(t, []string{"remote-only"}, byteNames(removed))
}

func TestSessionConvergesOnIdenticalSets(t *testing.T) {
	common := []riblt.Symbol{riblt.ByteSymbol("x"), riblt.ByteSymbol("y")}

	client := newTestPair(t, common)
	defer client.Close()

	sess := NewSession(sliceSource(common), client, WithInitialChunkSize(4), WithMaxWatermark(1000))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, removed, err := sess.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestSessionGivesUpAtWatermarkCap(t *testing.T) {
	local := make([]riblt.Symbol, 0, 20)
	for i := 0; i < 20; i++ {
		local = append(local, riblt.Uint64Symbol(i))
	}
	remote := []riblt.Symbol{}

	client := newTestPair(t, remote)
	defer client.Close()

	sess := NewSession(sliceSource(local), client, WithInitialChunkSize(1), WithMaxWatermark(1))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err := sess.Run(ctx)
	assert.Error(t, err)
}
