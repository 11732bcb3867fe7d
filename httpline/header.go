package httpline

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

type headerField struct{ key, val string }

// Header is an insertion-ordered string map. Keys are compared exactly,
// without trimming or case folding, so " Host" and "Host" are distinct.
type Header struct {
	fields []headerField
	index  map[string]int
}

// NewHeader builds a Header from alternating key/value pairs. A trailing
// key without a value is dropped.
func NewHeader(kv ...string) *Header {
	h := &Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

// Set stores val under key. An existing key keeps its position and takes the new value.
func (h *Header) Set(key, val string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[key]; ok {
		h.fields[i].val = val
		return
	}
	h.index[key] = len(h.fields)
	h.fields = append(h.fields, headerField{key: key, val: val})
}

func (h *Header) Get(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	i, ok := h.index[key]
	if !ok {
		return "", false
	}
	return h.fields[i].val, true
}

// Lookup finds a value by a trimmed, case-insensitive key. It is meant for
// protocol decisions; the stored keys stay untouched.
func (h *Header) Lookup(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, f := range h.fields {
		if strings.EqualFold(strings.TrimSpace(f.key), name) {
			return f.val, true
		}
	}
	return "", false
}

func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.fields)
}

// Each calls fn for every entry in insertion order.
func (h *Header) Each(fn func(key, val string)) {
	if h == nil {
		return
	}
	for _, f := range h.fields {
		fn(f.key, f.val)
	}
}

// Map returns an unordered copy.
func (h *Header) Map() map[string]string {
	m := make(map[string]string, h.Len())
	h.Each(func(k, v string) { m[k] = v })
	return m
}

func (h *Header) Clone() *Header {
	if h == nil {
		return nil
	}
	c := &Header{fields: make([]headerField, len(h.fields)), index: make(map[string]int, len(h.fields))}
	copy(c.fields, h.fields)
	for k, i := range h.index {
		c.index[k] = i
	}
	return c
}

func writeHeaderLines(buf *bytebufferpool.ByteBuffer, h *Header, skipContentLength bool) {
	h.Each(func(k, v string) {
		if skipContentLength && isContentLength(k) {
			return
		}
		buf.WriteString(k)
		buf.WriteByte(':')
		buf.WriteString(v)
		buf.WriteString(crlf)
	})
}

func isContentLength(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), "Content-Length")
}
