package httpline

import (
	"context"

	"go.uber.org/zap"
)

// Handler produces the response for a decoded request.
type Handler func(*Request) *Response

// Transport owns the sockets. It reads raw requests, hands them to the
// message model and writes back the serialized responses.
type Transport interface {
	Serve(ctx context.Context, h Handler) error
	Close() error
}

// Echo replies 200 with the request re-encoded as text.
func Echo(req *Request) *Response {
	return Build("200", NewHeader("Content-Type", "text/plain"), Text(req.Encode()))
}

// respond runs h and never panics: a panic or a nil response becomes a 500.
func respond(log *zap.Logger, h Handler, req *Request) (resp *Response) {
	if h == nil {
		h = Echo
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panic", zap.Any("panic", r), zap.Stringer("resource", req.Resource))
			resp = Build("500", nil, Text(""))
		}
	}()
	if resp = h(req); resp != nil {
		return resp
	}
	return Build("500", nil, Text(""))
}
