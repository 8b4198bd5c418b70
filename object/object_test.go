package object

import (
	"path/filepath"
	"testing"

	"github.com/ogawa-archive/alembic/contentkey"
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/property"
	"github.com/ogawa-archive/alembic/timesampling"
	"github.com/stretchr/testify/require"
)

func TestWrite_MinimalArchive_OneEmptyChild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.ogawa")
	w, err := stream.NewWriter(path)
	require.NoError(t, err)

	dedup := contentkey.NewDedupMap()
	pool := metadata.NewPool()
	ts := timesampling.NewTable()

	root := New("")
	root.AddChild(New("child1"))

	pos, _, err := Write(w, dedup, pool, ts, root)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	iroot, err := OpenObject(r, pos, "", nil)
	require.NoError(t, err)
	require.Equal(t, 1, iroot.NumChildren())

	child, err := iroot.Child(0, func(uint8) string { return "" })
	require.NoError(t, err)
	require.Equal(t, "child1", child.Name())
	require.Equal(t, 0, child.NumChildren())

	props, err := child.Properties()
	require.NoError(t, err)
	require.Equal(t, 0, props.NumProperties())
}

func TestWrite_ObjectWithSchemaMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.ogawa")
	w, err := stream.NewWriter(path)
	require.NoError(t, err)

	dedup := contentkey.NewDedupMap()
	pool := metadata.NewPool()
	ts := timesampling.NewTable()

	root := New("")
	mesh := New("triangle")
	mesh.Meta.Set("schema", "AbcGeom_PolyMesh_v1")
	geom := property.NewCompound(".geom")
	pos3 := property.NewArray("P", datatype.New(datatype.Float32, 3), false)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 0, 1, 0, 0, 0.5, 1, 0}), nil)
	geom.AddChild(pos3)
	mesh.Properties = geom
	root.AddChild(mesh)

	pos, _, err := Write(w, dedup, pool, ts, root)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	iroot, err := OpenObject(r, pos, "", nil)
	require.NoError(t, err)

	lookup := func(idx uint8) string { return pool.Serialization(idx) }
	child, err := iroot.Child(0, lookup)
	require.NoError(t, err)
	require.Equal(t, "triangle", child.Name())

	schema, ok := child.Schema()
	require.True(t, ok)
	require.Equal(t, "AbcGeom_PolyMesh_v1", schema)

	props, err := child.Properties()
	require.NoError(t, err)
	idx, ok := props.IndexByName("P")
	require.True(t, ok)
	ap, err := props.OpenArray(idx)
	require.NoError(t, err)
	data, _, err := ap.GetSample(0)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0.5, 1, 0}, property.DecodeFloat32s(data))
}

func TestWrite_NestedChildrenAndHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.ogawa")
	w, err := stream.NewWriter(path)
	require.NoError(t, err)

	dedup := contentkey.NewDedupMap()
	pool := metadata.NewPool()
	ts := timesampling.NewTable()

	root := New("")
	a := New("a")
	b := New("b")
	a.AddChild(New("a1"))
	root.AddChild(a)
	root.AddChild(b)

	pos, rootHashes, err := Write(w, dedup, pool, ts, root)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NotEqual(t, [2]uint64{0, 0}, rootHashes.ChildHash)

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	iroot, err := OpenObject(r, pos, "", nil)
	require.NoError(t, err)
	require.Equal(t, 2, iroot.NumChildren())

	lookup := func(uint8) string { return "" }
	childA, err := iroot.Child(0, lookup)
	require.NoError(t, err)
	require.Equal(t, "a", childA.Name())
	require.Equal(t, 1, childA.NumChildren())

	grandchild, err := childA.Child(0, lookup)
	require.NoError(t, err)
	require.Equal(t, "a1", grandchild.Name())
}
