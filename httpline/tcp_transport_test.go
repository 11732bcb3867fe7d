package httpline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func startTCP(t *testing.T, h Handler, opts ...Option) (*TCPTransport, context.CancelFunc, <-chan error) {
	t.Helper()
	tr, err := Listen("127.0.0.1:0", opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- tr.Serve(ctx, h) }()
	t.Cleanup(func() {
		cancel()
		_ = tr.Close()
	})
	return tr, cancel, errCh
}

func TestTCPTransportEcho(t *testing.T) {
	tr, _, _ := startTCP(t, nil)

	raw := "GET /greeting HTTP/1.1\r\nHost: x\r\n\r\n"
	got := roundTrip(t, tr.Addr().String(), raw)
	want := "HTTP/1.1 200 OK\r\nContent-Type:text/plain\r\nContent-Length: 35\r\n\r\n" + raw
	require.Equal(t, want, got)
}

func TestTCPTransportHandler(t *testing.T) {
	tr, _, _ := startTCP(t, func(req *Request) *Response {
		return Build("404", nil, Text(req.Resource.Path()))
	})

	got := roundTrip(t, tr.Addr().String(), "GET /missing HTTP/1.1\r\n\r\n")
	require.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Type:text/html\r\nContent-Length: 8\r\n\r\n/missing", got)
}

func TestTCPTransportNilResponse(t *testing.T) {
	tr, _, _ := startTCP(t, func(*Request) *Response { return nil })
	got := roundTrip(t, tr.Addr().String(), "GET / HTTP/1.1\r\n\r\n")
	require.Contains(t, got, "HTTP/1.1 500 Internal Server Error\r\n")
}

func TestTCPTransportHandlerPanic(t *testing.T) {
	calls := 0
	tr, _, _ := startTCP(t, func(*Request) *Response {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return Build("200", nil, Text("ok"))
	})

	got := roundTrip(t, tr.Addr().String(), "GET / HTTP/1.1\r\n\r\n")
	require.True(t, strings.HasPrefix(got, "HTTP/1.1 500 Internal Server Error\r\n"), got)

	got = roundTrip(t, tr.Addr().String(), "GET / HTTP/1.1\r\n\r\n")
	require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type:text/html\r\nContent-Length: 2\r\n\r\nok", got)
}

func TestTCPTransportTruncatesAtBuffer(t *testing.T) {
	seen := make(chan *Request, 1)
	tr, _, _ := startTCP(t, func(req *Request) *Response {
		seen <- req
		return Build("200", nil, nil)
	}, WithReadBufferSize(16))

	go func() {
		_, _ = dialAndRead(tr.Addr().String(), "GET /greeting HTTP/1.1\r\nHost: x\r\n\r\n")
	}()

	select {
	case req := <-seen:
		require.Equal(t, MethodUninitialized, req.Method)
		require.Equal(t, "GET /greeting HT", req.Body)
	case <-time.After(5 * time.Second):
		t.Fatal("handler not called")
	}
}

func TestTCPTransportWorkers(t *testing.T) {
	var mu sync.Mutex
	count := 0
	tr, _, _ := startTCP(t, func(req *Request) *Response {
		mu.Lock()
		count++
		mu.Unlock()
		return Build("200", nil, Text("ok"))
	}, WithWorkers(4))

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			got, err := dialAndRead(tr.Addr().String(), "GET / HTTP/1.1\r\n\r\n")
			if err != nil {
				return err
			}
			if want := "HTTP/1.1 200 OK\r\nContent-Type:text/html\r\nContent-Length: 2\r\n\r\nok"; got != want {
				return fmt.Errorf("unexpected response %q", got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 10, count)
}

func TestTCPTransportStopsOnCancel(t *testing.T) {
	tr, cancel, errCh := startTCP(t, nil)
	waitForServer(t, tr.Addr().String())
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	require.ErrorIs(t, tr.Serve(context.Background(), nil), ErrTransportClosed)
	require.NoError(t, tr.Close())
}

func TestEngineRun(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.GET("/greeting", func(*Request) *Response {
		return Build("200", nil, Text("hi"))
	}))

	addr := "127.0.0.1:" + strconv.Itoa(freePort(t))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx, addr) }()
	waitForServer(t, addr)

	got := roundTrip(t, addr, "GET /greeting HTTP/1.1\r\n\r\n")
	require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type:text/html\r\nContent-Length: 2\r\n\r\nhi", got)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
}
