package httpline

import (
	"context"

	"github.com/pkg/errors"
)

// Engine bundles a Router with global middleware and the transports.
type Engine struct {
	R   *Router
	mws []Middleware
}

func NewEngine() *Engine { return &Engine{R: NewRouter()} }

func (e *Engine) Use(mw ...Middleware) { e.mws = append(e.mws, mw...) }

func (e *Engine) GET(path string, h Handler) error  { return e.R.Handle(MethodGet, path, h, e.mws...) }
func (e *Engine) POST(path string, h Handler) error { return e.R.Handle(MethodPost, path, h, e.mws...) }

// Handler exposes the router as a transport Handler.
func (e *Engine) Handler() Handler { return e.R.ServeRequest }

// Run serves on the blocking TCP transport until ctx is done.
func (e *Engine) Run(ctx context.Context, addr string, opts ...Option) error {
	t, err := Listen(addr, opts...)
	if err != nil {
		return err
	}
	return e.serve(ctx, t)
}

// RunGNet serves on a gnet event engine until ctx is done.
func (e *Engine) RunGNet(ctx context.Context, addr string, opts ...Option) error {
	if addr == "" {
		return errors.New("missing address")
	}
	return e.serve(ctx, NewGNetTransport(addr, opts...))
}

func (e *Engine) serve(ctx context.Context, t Transport) error {
	defer t.Close()
	return t.Serve(ctx, e.Handler())
}
