package stream

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ogawa")

	w, err := NewWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteBytes([]byte("Ogawa")))
	require.NoError(t, w.WriteU8(0x00))
	require.NoError(t, w.WriteU16BE(1))
	require.NoError(t, w.WriteU64LE(0))
	require.Equal(t, uint64(16), w.Pos())

	require.NoError(t, w.PatchU8At(5, 0xFF))
	require.NoError(t, w.PatchU64At(8, 42))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, uint64(16), r.Size())

	magic, err := r.ReadBytes(0, 5)
	require.NoError(t, err)
	require.Equal(t, "Ogawa", string(magic))

	frozen, err := r.ReadU8(5)
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), frozen)

	version, err := r.ReadU16BE(6)
	require.NoError(t, err)
	require.Equal(t, uint16(1), version)

	rootPos, err := r.ReadU64(8)
	require.NoError(t, err)
	require.Equal(t, uint64(42), rootPos)
}

func TestReader_UnexpectedEof(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.ogawa")
	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadBytes(0, 10)
	require.Error(t, err)
}

func TestReader_FileNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.ogawa"))
	require.Error(t, err)
}

func TestReader_SliceRequiresMmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slicetest.ogawa")
	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteBytes([]byte("some bytes here")))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	b, err := r.Slice(0, 4)
	if r.IsMmap() {
		require.NoError(t, err)
		require.Equal(t, "some", string(b))
	} else {
		require.Error(t, err)
	}
}
