package httpline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderSetKeepsPosition(t *testing.T) {
	h := NewHeader("A", "1", "B", "2")
	h.Set("A", "3")
	h.Set("C", "4")

	var got []string
	h.Each(func(k, v string) { got = append(got, k+"="+v) })
	require.Equal(t, []string{"A=3", "B=2", "C=4"}, got)
}

func TestHeaderLookup(t *testing.T) {
	h := NewHeader("content-length ", " 12")
	_, ok := h.Get("Content-Length")
	require.False(t, ok)
	v, ok := h.Lookup("Content-Length")
	require.True(t, ok)
	require.Equal(t, " 12", v)
}

func TestHeaderNil(t *testing.T) {
	var h *Header
	require.Equal(t, 0, h.Len())
	_, ok := h.Get("A")
	require.False(t, ok)
	require.Empty(t, h.Map())
	require.Nil(t, h.Clone())
}

func TestHeaderCloneIsIndependent(t *testing.T) {
	h := NewHeader("A", "1")
	c := h.Clone()
	c.Set("A", "2")
	c.Set("B", "3")

	v, _ := h.Get("A")
	require.Equal(t, "1", v)
	require.Equal(t, 1, h.Len())
	require.Equal(t, 2, c.Len())
}

func TestNewHeaderDropsDanglingKey(t *testing.T) {
	h := NewHeader("A", "1", "B")
	require.Equal(t, map[string]string{"A": "1"}, h.Map())
}
