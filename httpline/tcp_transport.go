package httpline

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	maxAcceptDelay         = time.Second
)

// TCPTransport is a blocking accept loop. Each connection gets one read into
// a fixed buffer, one response and is then closed. Connections are handled
// one after another unless WithWorkers is set.
type TCPTransport struct {
	ln     net.Listener
	cfg    serverConfig
	log    *zap.Logger
	pool   *ants.Pool
	closed atomic.Bool
}

// Listen binds addr and returns a TCPTransport on it.
func Listen(addr string, opts ...Option) (*TCPTransport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", addr)
	}
	t, err := NewTCPTransport(ln, opts...)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	return t, nil
}

func NewTCPTransport(ln net.Listener, opts ...Option) (*TCPTransport, error) {
	cfg := newServerConfig(opts)
	t := &TCPTransport{ln: ln, cfg: cfg, log: cfg.logger}
	if cfg.workers > 0 {
		pool, err := ants.NewPool(cfg.workers, ants.WithPanicHandler(func(v any) {
			t.log.Error("connection worker panic", zap.Any("panic", v))
		}))
		if err != nil {
			return nil, errors.Wrap(err, "create worker pool")
		}
		t.pool = pool
	}
	return t, nil
}

func (t *TCPTransport) Addr() net.Addr { return t.ln.Addr() }

// Serve accepts until ctx is done or the transport is closed. A nil handler echoes.
func (t *TCPTransport) Serve(ctx context.Context, h Handler) error {
	if t.closed.Load() {
		return ErrTransportClosed
	}
	stop := context.AfterFunc(ctx, func() { _ = t.Close() })
	defer stop()

	t.log.Info("listening", zap.Stringer("addr", t.ln.Addr()), zap.Int("workers", t.cfg.workers))
	var delay time.Duration
	for {
		conn, err := t.ln.Accept()
		if err != nil {
			if t.closed.Load() {
				return nil
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			t.log.Warn("accept failed", zap.Error(err), zap.Duration("retry_in", delay))
			time.Sleep(delay)
			continue
		}
		delay = 0

		if t.pool == nil {
			t.handle(conn, h)
			continue
		}
		if err := t.pool.Submit(func() { t.handle(conn, h) }); err != nil {
			t.log.Warn("dispatch connection", zap.Error(err))
			_ = conn.Close()
		}
	}
}

func (t *TCPTransport) handle(conn net.Conn, h Handler) {
	log := t.log.With(zap.String("conn", uuid.NewString()), zap.Stringer("remote", conn.RemoteAddr()))
	log.Debug("connection established")

	buf := make([]byte, t.cfg.readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		log.Debug("empty read", zap.Error(err))
		_ = conn.Close()
		return
	}

	req := Decode(string(buf[:n]))
	resp := respond(log, h, req)
	if err := multierr.Append(resp.Send(conn), conn.Close()); err != nil {
		log.Warn("send response", zap.Error(err))
		return
	}
	log.Debug("response sent", zap.String("status", resp.StatusCode), zap.Int("read", n))
}

// Close stops accepting and waits for pooled connections to finish.
func (t *TCPTransport) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := errors.Wrap(t.ln.Close(), "close listener")
	if t.pool != nil {
		err = multierr.Append(err, errors.Wrap(t.pool.ReleaseTimeout(defaultShutdownTimeout), "release worker pool"))
	}
	return err
}
