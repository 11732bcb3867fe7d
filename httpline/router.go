package httpline

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Router dispatches requests by method and exact, normalized path.
type Router struct {
	mw       []Middleware
	notFound Handler
	log      *zap.Logger
	routes   map[Method]map[string]Handler
	mu       sync.RWMutex
}

func NewRouter() *Router {
	return &Router{
		notFound: func(*Request) *Response {
			return Build("404", nil, Text("route not found"))
		},
		routes: make(map[Method]map[string]Handler),
		log:    zap.NewNop(),
	}
}

// SetLogger sets where panics recovered from routes registered afterwards are logged.
func (r *Router) SetLogger(l *zap.Logger) {
	if l != nil {
		r.log = l
	}
}

func (r *Router) Use(m ...Middleware) { r.mw = append(r.mw, m...) }

func (r *Router) NotFound(h Handler) {
	if h != nil {
		r.notFound = h
	}
}

func (r *Router) Handle(method Method, path string, h Handler, mws ...Middleware) error {
	if method != MethodGet && method != MethodPost {
		return fmt.Errorf("unsupported method: %s", method)
	}
	if path == "" || path[0] != '/' {
		return errors.New("path must start with '/'")
	}
	if h == nil {
		return errors.New("nil handler")
	}
	clean := normalize(path)
	final := chain(append(r.mw, mws...)...)(Recover(r.log)(h))

	r.mu.Lock()
	defer r.mu.Unlock()
	mm := r.routes[method]
	if mm == nil {
		mm = map[string]Handler{}
		r.routes[method] = mm
	}
	if _, ok := mm[clean]; ok {
		return fmt.Errorf("route exists: %s %s", method, clean)
	}
	mm[clean] = final
	return nil
}

// ServeRequest answers 400 for unrecognized methods or versions and 404 when
// no route matches.
func (r *Router) ServeRequest(req *Request) *Response {
	if req.Method != MethodGet && req.Method != MethodPost {
		return Build("400", nil, Text("unsupported method"))
	}
	if req.Version != VersionHTTP11 {
		return Build("400", nil, Text("unsupported version"))
	}

	clean := normalize(stripQuery(req.Resource.Path()))
	r.mu.RLock()
	h := r.routes[req.Method][clean]
	r.mu.RUnlock()
	if h == nil {
		return r.notFound(req)
	}
	return h(req)
}

// Routes lists registered routes as "METHOD /path".
func (r *Router) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, m := range []Method{MethodGet, MethodPost} {
		for p := range r.routes[m] {
			out = append(out, m.String()+" "+p)
		}
	}
	return out
}
