package httpline

import (
	"bytes"

	"github.com/valyala/bytebufferpool"
)

var headerSeparatorBuf = []byte(headerBodySeparator)

type gnetConnContext struct {
	buf *bytebufferpool.ByteBuffer
}

func (g *gnetConnContext) append(p []byte) {
	if g.buf == nil {
		g.buf = bytebufferpool.Get()
	}
	_, _ = g.buf.Write(p)
}

func (g *gnetConnContext) reset() {
	if g.buf != nil {
		bytebufferpool.Put(g.buf)
		g.buf = nil
	}
}

// completeRequest reports whether buf holds a whole request: the header
// separator and, when a Content-Length header is present, that many body bytes.
func completeRequest(buf []byte, maxBytes int) (string, bool, error) {
	end := bytes.Index(buf, headerSeparatorBuf)
	if end == -1 {
		if len(buf) > maxBytes {
			return "", false, ErrRequestTooLarge
		}
		return "", false, nil
	}
	bodyStart := end + len(headerSeparatorBuf)
	if bodyStart > maxBytes {
		return "", false, ErrRequestTooLarge
	}

	n, ok := Decode(string(buf[:bodyStart])).ContentLength()
	if !ok {
		return string(buf), true, nil
	}
	if n > maxBytes-bodyStart {
		return "", false, ErrRequestTooLarge
	}
	total := bodyStart + n
	if total > maxBytes {
		return "", false, ErrRequestTooLarge
	}
	if len(buf) < total {
		return "", false, nil
	}
	return string(buf[:total]), true, nil
}
