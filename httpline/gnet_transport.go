package httpline

import (
	"context"
	"sync"

	gnet "github.com/panjf2000/gnet/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GNetTransport serves requests on a gnet event engine. Like TCPTransport it
// answers once per connection and then closes it.
type GNetTransport struct {
	gnet.BuiltinEventEngine

	addr    string
	cfg     serverConfig
	log     *zap.Logger
	handler Handler

	mu      sync.Mutex
	engine  gnet.Engine
	booted  bool
	closing bool
}

func NewGNetTransport(addr string, opts ...Option) *GNetTransport {
	cfg := newServerConfig(opts)
	return &GNetTransport{addr: ensureProtoAddr(addr), cfg: cfg, log: cfg.logger}
}

// Serve runs the engine until ctx is done or Close is called. A nil handler echoes.
func (t *GNetTransport) Serve(ctx context.Context, h Handler) error {
	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()
		return ErrTransportClosed
	}
	t.handler = h
	t.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = t.Close() })
	defer stop()

	opts := append([]gnet.Option{gnet.WithLogger(t.log.Sugar())}, t.cfg.gnetOpts...)
	return errors.Wrap(gnet.Run(t, t.addr, opts...), "gnet run")
}

// Close stops the engine. Closing before the engine has booted makes it shut
// down as soon as it does.
func (t *GNetTransport) Close() error {
	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()
		return nil
	}
	t.closing = true
	booted, eng := t.booted, t.engine
	t.mu.Unlock()
	if !booted {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	return errors.Wrap(eng.Stop(ctx), "stop gnet engine")
}

func (t *GNetTransport) OnBoot(eng gnet.Engine) gnet.Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.engine = eng
	t.booted = true
	if t.closing {
		return gnet.Shutdown
	}
	t.log.Info("gnet listening", zap.String("addr", t.addr))
	return gnet.None
}

func (t *GNetTransport) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	c.SetContext(&gnetConnContext{})
	return nil, gnet.None
}

func (t *GNetTransport) OnClose(c gnet.Conn, err error) gnet.Action {
	if ctx, ok := c.Context().(*gnetConnContext); ok {
		ctx.reset()
	}
	if err != nil {
		t.log.Debug("connection closed", zap.Error(err))
	}
	return gnet.None
}

func (t *GNetTransport) OnTraffic(c gnet.Conn) gnet.Action {
	ctx, _ := c.Context().(*gnetConnContext)
	if ctx == nil {
		ctx = &gnetConnContext{}
		c.SetContext(ctx)
	}

	data, err := c.Next(-1)
	if err != nil {
		t.log.Warn("read inbound", zap.Error(err))
		return gnet.Close
	}
	ctx.append(data)

	raw, ok, err := completeRequest(ctx.buf.B, t.cfg.maxRequestBytes)
	if err != nil {
		t.write(c, Build("400", nil, Text(err.Error())))
		return gnet.Close
	}
	if !ok {
		return gnet.None
	}

	t.write(c, respond(t.log, t.handler, Decode(raw)))
	return gnet.Close
}

func (t *GNetTransport) write(c gnet.Conn, resp *Response) {
	if err := resp.Send(c); err != nil {
		t.log.Warn("send response", zap.Error(err), zap.Stringer("remote", c.RemoteAddr()))
	}
}
