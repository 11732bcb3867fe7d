package httpline

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freePort(tb testing.TB) int {
	tb.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(tb, err)
	defer func() { _ = l.Close() }()
	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	require.True(tb, ok, "unexpected addr type: %T", l.Addr())
	return tcpAddr.Port
}

func waitForServer(tb testing.TB, addr string) {
	tb.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	tb.Fatalf("server %s not ready in time", addr)
}

// dialAndRead writes each chunk in turn and reads until the server closes.
func dialAndRead(addr string, chunks ...string) (string, error) {
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Close() }()
	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return "", err
	}

	for i, c := range chunks {
		if i > 0 {
			time.Sleep(50 * time.Millisecond)
		}
		if _, err := io.WriteString(conn, c); err != nil {
			return "", err
		}
	}
	out, err := io.ReadAll(conn)
	return string(out), err
}

func roundTrip(tb testing.TB, addr string, chunks ...string) string {
	tb.Helper()
	out, err := dialAndRead(addr, chunks...)
	require.NoError(tb, err)
	return out
}
