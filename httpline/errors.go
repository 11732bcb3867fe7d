package httpline

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	crlf                = "\r\n"
	headerBodySeparator = "\r\n\r\n"
)

var (
	ErrNoRequestLine    = errors.New("httpline: no request line")
	ErrShortRequestLine = errors.New("httpline: request line has fewer than three tokens")
	ErrRequestTooLarge  = errors.New("httpline: request too large")
	ErrTransportClosed  = errors.New("httpline: transport closed")
)

// ParseError reports a request that DecodeStrict refused.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError wraps a failed write of a serialized response.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "httpline: " + e.Op + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
