package httpline

import (
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

const defaultContentType = "text/html"

var respBufPool bytebufferpool.Pool

// Response is an outgoing message. A nil Header means no headers were set
// and a nil Body means no body; both serialize without failing.
type Response struct {
	Version    string
	StatusCode string
	StatusText string
	Header     *Header
	Body       *string
}

func defaultResponse() *Response {
	return &Response{
		Version:    http11,
		StatusCode: "200",
		StatusText: "OK",
	}
}

// Text returns a body value for Build.
func Text(s string) *string { return &s }

// Build creates a Response for statusCode. Without caller headers a single
// "Content-Type: text/html" header is used; caller headers are never merged
// with it. Caller headers are kept as given, except that a Content-Length
// entry is never written: Serialize always emits the computed body length.
// Codes outside 200, 400, 404 and 500 get the status text "Not Found".
func Build(statusCode string, header *Header, body *string) *Response {
	resp := defaultResponse()
	if statusCode != "200" {
		resp.StatusCode = statusCode
	}
	if header != nil {
		resp.Header = header
	} else {
		resp.Header = NewHeader("Content-Type", defaultContentType)
	}
	resp.StatusText = statusText(resp.StatusCode)
	resp.Body = body
	return resp
}

func statusText(code string) string {
	switch code {
	case "200":
		return "OK"
	case "400":
		return "Bad Request"
	case "404":
		return "Not Found"
	case "500":
		return "Internal Server Error"
	default:
		return "Not Found"
	}
}

func (r *Response) body() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

func (r *Response) encode(out *bytebufferpool.ByteBuffer) {
	body := r.body()
	out.WriteString(r.Version)
	out.WriteByte(' ')
	out.WriteString(r.StatusCode)
	out.WriteByte(' ')
	out.WriteString(r.StatusText)
	out.WriteString(crlf)
	writeHeaderLines(out, r.Header, true)
	out.WriteString("Content-Length: ")
	out.WriteString(strconv.Itoa(len(body)))
	out.WriteString(crlf)
	out.WriteString(crlf)
	out.WriteString(body)
}

// Serialize returns the wire form of r:
//
//	<version> <code> <text>\r\n<key>:<value>\r\n...Content-Length: <n>\r\n\r\n<body>
//
// Headers appear in insertion order. Content-Length is always the byte
// length of the body; a Content-Length header set by the caller is dropped.
func (r *Response) Serialize() string {
	buf := respBufPool.Get()
	defer respBufPool.Put(buf)
	r.encode(buf)
	return buf.String()
}

// WriteTo writes the serialized response to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	buf := respBufPool.Get()
	defer respBufPool.Put(buf)
	r.encode(buf)
	return buf.WriteTo(w)
}

// Send writes the whole response to w. A failed write comes back as *IOError.
func (r *Response) Send(w io.Writer) error {
	if _, err := r.WriteTo(w); err != nil {
		return &IOError{Op: "send", Err: err}
	}
	return nil
}
