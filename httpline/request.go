package httpline

import (
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Request is a decoded request message.
type Request struct {
	Method   Method
	Version  Version
	Resource Resource
	Header   *Header
	Body     string
}

// Decode turns raw request text into a Request. It never fails: lines that
// do not fit degrade to unrecognized or empty fields.
//
// Each line is classified in order: a line containing "HTTP" is the request
// line, a line containing ':' is a header, an empty line is skipped and
// anything else is a body line. Only the last body line is kept.
func Decode(raw string) *Request {
	req, _ := decode(raw, false)
	return req
}

// DecodeStrict is Decode with a *ParseError for a request line that has
// fewer than three tokens and for input without any request line.
func DecodeStrict(raw string) (*Request, error) {
	return decode(raw, true)
}

func decode(raw string, strict bool) (*Request, error) {
	req := &Request{Resource: Path(""), Header: &Header{}}
	sawRequestLine := false

	for _, line := range splitLines(raw) {
		switch {
		case strings.Contains(line, "HTTP"):
			tokens := strings.Fields(line)
			if len(tokens) < 3 {
				if strict {
					return nil, &ParseError{Line: line, Err: ErrShortRequestLine}
				}
				for len(tokens) < 3 {
					tokens = append(tokens, "")
				}
			}
			req.Method = ParseMethod(tokens[0])
			req.Resource = Path(tokens[1])
			req.Version = ParseVersion(tokens[2])
			sawRequestLine = true
		case strings.Contains(line, ":"):
			key, val, _ := strings.Cut(line, ":")
			req.Header.Set(key, val)
		case line == "":
		default:
			req.Body = line
		}
	}

	if strict && !sawRequestLine {
		return nil, &ParseError{Err: ErrNoRequestLine}
	}
	return req, nil
}

// splitLines splits on '\n' and drops one trailing '\r' per line.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ContentLength reports the numeric value of a Content-Length header, if any.
func (r *Request) ContentLength() (int, bool) {
	v, ok := r.Header.Lookup("Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Encode renders the request back to request text. Decoding the result of a
// well-formed request with a single-line body yields an equal Request.
func (r *Request) Encode() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(r.Method.String())
	buf.WriteByte(' ')
	buf.WriteString(r.Resource.Path())
	buf.WriteByte(' ')
	buf.WriteString(r.Version.String())
	buf.WriteString(crlf)
	writeHeaderLines(buf, r.Header, false)
	buf.WriteString(crlf)
	buf.WriteString(r.Body)
	return buf.String()
}
