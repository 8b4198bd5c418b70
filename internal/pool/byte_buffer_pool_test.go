package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_GrowAndWrite(t *testing.T) {
	bb := NewByteBuffer(4)
	_, err := bb.Write([]byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, "hello world", string(bb.Bytes()))
	require.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Write([]byte("abc"))
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 16)
}

func TestPool_GetPutRoundTrip(t *testing.T) {
	p := NewPool(8, 64)
	bb := p.Get()
	bb.Write([]byte("payload"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len(), "pooled buffer must be reset on reuse")
}

func TestPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewPool(8, 16)
	bb := p.Get()
	bb.Grow(64)
	require.Greater(t, cap(bb.B), 16)
	p.Put(bb) // should be discarded, not pooled

	// A freshly Get()'d buffer should not carry the oversized capacity, since sync.Pool
	// may still return something else entirely; this just exercises the discard path.
	_ = p.Get()
}
