package contentkey

import (
	"path/filepath"
	"testing"

	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/stretchr/testify/require"
)

func TestFromBytes_Deterministic(t *testing.T) {
	payload := []byte("triangle positions")
	k1 := FromBytes(payload, datatype.Float32, 4)
	k2 := FromBytes(payload, datatype.Float32, 4)
	require.Equal(t, k1, k2)
	require.Equal(t, uint64(len(payload)), k1.PayloadLength)
}

func TestFromBytes_DifferentSeedsDiffer(t *testing.T) {
	payload := []byte("same payload")
	k1 := FromBytes(payload, datatype.Float32, 4)
	k2 := FromBytes(payload, datatype.Float64, 8)
	require.NotEqual(t, k1.Digest, k2.Digest)
}

func TestWriteKeyedData_DedupsIdenticalPayloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dedup.ogawa")
	w, err := stream.NewWriter(path)
	require.NoError(t, err)

	m := NewDedupMap()
	payload := []byte("repeated sample")

	pos1, err := WriteKeyedData(w, m, payload, datatype.Float32, 4)
	require.NoError(t, err)

	pos2, err := WriteKeyedData(w, m, payload, datatype.Float32, 4)
	require.NoError(t, err)
	require.Equal(t, pos1, pos2)

	other, err := WriteKeyedData(w, m, []byte("different sample"), datatype.Float32, 4)
	require.NoError(t, err)
	require.NotEqual(t, pos1, other)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	d, err := tree.OpenData(r, pos1)
	require.NoError(t, err)
	b, err := d.Bytes()
	require.NoError(t, err)
	require.Equal(t, payload, b[16:])
}
