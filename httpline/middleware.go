package httpline

import (
	"time"

	"go.uber.org/zap"
)

type Middleware func(Handler) Handler

func chain(mws ...Middleware) func(Handler) Handler {
	return func(h Handler) Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// Recover turns a panicking handler into a 500 response and logs the panic to l.
func Recover(l *zap.Logger) Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(req *Request) (resp *Response) {
			defer func() {
				if r := recover(); r != nil {
					l.Error("handler panic", zap.Any("panic", r), zap.Stringer("resource", req.Resource))
					resp = Build("500", nil, Text("internal error"))
				}
			}()
			return next(req)
		}
	}
}

// Logger writes one access log line per request.
func Logger(l *zap.Logger) Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(req *Request) *Response {
			start := time.Now()
			resp := next(req)
			status := ""
			if resp != nil {
				status = resp.StatusCode
			}
			l.Info("request",
				zap.Stringer("method", req.Method),
				zap.Stringer("resource", req.Resource),
				zap.String("status", status),
				zap.Duration("dur", time.Since(start)),
			)
			return resp
		}
	}
}
