// Package pool provides a pooled, amortized-growth byte buffer used by the
// Ogawa stream writer's append buffer.
//
// Adapted from the teacher library's internal/pool package: Ogawa's write
// workload is the same shape mebo tunes for ("many small payloads" - per
// sample property data instead of per-metric blob columns), so the growth
// strategy (small buffers grow by a fixed chunk, large buffers grow by a
// fraction of their capacity) carries over unchanged.
package pool

import "sync"

const (
	// DefaultSize is the initial capacity handed out by the default pool.
	DefaultSize = 1024 * 16 // 16KiB
	// MaxThreshold is the buffer capacity above which Put discards instead of pooling.
	MaxThreshold = 1024 * 128 // 128KiB

	smallBufferGrowth = 1024 * 16
	largeBufferCutoff = 4 * smallBufferGrowth
)

// ByteBuffer is a growable byte slice wrapper designed for repeated reuse via Pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can accept requiredBytes more bytes without reallocating.
//
// Growth strategy: buffers smaller than four growth-chunks grow by a fixed
// 16KiB chunk; beyond that they grow by 25% of current capacity, the same
// tradeoff the teacher library makes between allocation count and wasted
// headroom.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := smallBufferGrowth
	if cap(bb.B) > largeBufferCutoff {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data, growing as needed. It always returns len(data), nil.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// Pool is a sync.Pool of ByteBuffers with an optional capacity ceiling above
// which buffers are discarded instead of retained, so one oversized archive
// doesn't bloat every future Get.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize and are dropped on Put
// if their capacity exceeds maxThreshold (0 disables the ceiling).
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *Pool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool, discarding it if it grew past the threshold.
func (p *Pool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get retrieves a ByteBuffer from the package-default pool.
func Get() *ByteBuffer { return defaultPool.Get() }

// Put returns a ByteBuffer to the package-default pool.
func Put(bb *ByteBuffer) { defaultPool.Put(bb) }
