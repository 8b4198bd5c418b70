package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMurmur3_128_Empty(t *testing.T) {
	h1, h2 := Murmur3_128(nil, 0)
	require.Equal(t, uint64(0), h1)
	require.Equal(t, uint64(0), h2)
}

func TestMurmur3_128_Deterministic(t *testing.T) {
	data := []byte("alembic-ogawa-content-key")

	h1a, h2a := Murmur3_128(data, 42)
	h1b, h2b := Murmur3_128(data, 42)
	require.Equal(t, h1a, h1b)
	require.Equal(t, h2a, h2b)

	h1c, h2c := Murmur3_128(data, 7)
	require.NotEqual(t, [2]uint64{h1a, h2a}, [2]uint64{h1c, h2c}, "different seeds must diverge")
}

func TestMurmur3_128_AllTailLengths(t *testing.T) {
	// Exercise every branch of the tail switch (1..15 extra bytes beyond full 16-byte blocks).
	base := make([]byte, 32)
	for i := range base {
		base[i] = byte(i*7 + 1)
	}

	seen := map[[2]uint64]int{}
	for tail := 0; tail <= 15; tail++ {
		data := base[:16+tail]
		h1, h2 := Murmur3_128(data, 0)
		seen[[2]uint64{h1, h2}] = tail
	}
	require.Len(t, seen, 16, "each tail length should produce a distinct digest")
}

func TestMurmur3_128Bytes_PacksLittleEndian(t *testing.T) {
	h1, h2 := Murmur3_128([]byte("positions"), 3)
	digest := Murmur3_128Bytes([]byte("positions"), 3)

	require.Equal(t, h1, leUint64(digest[0:8]))
	require.Equal(t, h2, leUint64(digest[8:16]))
}
