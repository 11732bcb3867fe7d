package httpline

// Method is the request verb. The zero value means no request line was parsed.
type Method int

const (
	MethodUninitialized Method = iota
	MethodGet
	MethodPost
	MethodUnrecognized
)

// ParseMethod matches tok case-sensitively. Both the wire spelling ("GET")
// and the capitalized one ("Get") are accepted; anything else is unrecognized.
// The upper-case forms extend the older verb table, which knew only "Get"
// and "Post", so that requests from real clients are recognized.
func ParseMethod(tok string) Method {
	switch tok {
	case "GET", "Get":
		return MethodGet
	case "POST", "Post":
		return MethodPost
	default:
		return MethodUnrecognized
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodUninitialized:
		return "UNINITIALIZED"
	default:
		return "UNRECOGNIZED"
	}
}

// Version is the protocol version. Only HTTP/1.1 is recognized.
type Version int

const (
	VersionUninitialized Version = iota
	VersionHTTP11
	VersionUnrecognized
)

const http11 = "HTTP/1.1"

func ParseVersion(tok string) Version {
	if tok == http11 {
		return VersionHTTP11
	}
	return VersionUnrecognized
}

func (v Version) String() string {
	switch v {
	case VersionHTTP11:
		return http11
	case VersionUninitialized:
		return "UNINITIALIZED"
	default:
		return "UNRECOGNIZED"
	}
}

// Resource is the request target, kept verbatim.
type Resource struct {
	path string
}

func Path(p string) Resource { return Resource{path: p} }

func (r Resource) Path() string { return r.path }

func (r Resource) String() string { return r.path }
