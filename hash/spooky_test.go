package hash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpookyHash128_EmptyAndDeterministic(t *testing.T) {
	h1, h2 := SpookyHash128(nil, 0, 0)
	h1b, h2b := SpookyHash128(nil, 0, 0)
	require.Equal(t, h1, h1b)
	require.Equal(t, h2, h2b)
}

func TestSpookyHash128_ShortAndLongPathsAgreeOnDeterminism(t *testing.T) {
	short := bytes.Repeat([]byte{0xAB}, 64)
	long := bytes.Repeat([]byte{0xAB}, 4096)

	sh1, sh2 := SpookyHash128(short, 1, 2)
	lh1, lh2 := SpookyHash128(long, 1, 2)
	require.NotEqual(t, [2]uint64{sh1, sh2}, [2]uint64{lh1, lh2})

	sh1b, sh2b := SpookyHash128(short, 1, 2)
	require.Equal(t, sh1, sh1b)
	require.Equal(t, sh2, sh2b)
}

func TestSpookyHash128_AllShortTailLengths(t *testing.T) {
	base := make([]byte, 64)
	for i := range base {
		base[i] = byte(i*13 + 5)
	}

	seen := map[[2]uint64]bool{}
	for n := 0; n <= 63; n++ {
		h1, h2 := SpookyHash128(base[:n], 11, 22)
		seen[[2]uint64{h1, h2}] = true
	}
	require.Greater(t, len(seen), 55, "most lengths should produce distinct digests")
}

func TestSpookyHash128_CrossesBlockBoundary(t *testing.T) {
	// spookyBufSize is 192; exercise the long path with a non-block-aligned remainder.
	data := bytes.Repeat([]byte{0x5A}, 250)
	h1, h2 := SpookyHash128(data, 0, 0)
	require.NotZero(t, h1|h2)
}

func TestShortEndMix_DeterministicAndSeedSensitive(t *testing.T) {
	h0, h1 := ShortEndMix(1, 2, 3, 4)
	h0b, h1b := ShortEndMix(1, 2, 3, 4)
	require.Equal(t, h0, h0b)
	require.Equal(t, h1, h1b)

	h0c, h1c := ShortEndMix(1, 2, 3, 5)
	require.NotEqual(t, [2]uint64{h0, h1}, [2]uint64{h0c, h1c})
}

func TestSpookyHash128Bytes_PacksLittleEndian(t *testing.T) {
	h0, h1 := SpookyHash128([]byte("faceIndices"), 9, 10)
	digest := SpookyHash128Bytes([]byte("faceIndices"), 9, 10)
	require.Equal(t, h0, leUint64(digest[0:8]))
	require.Equal(t, h1, leUint64(digest[8:16]))
}
