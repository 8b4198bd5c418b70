package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
	"github.com/stretchr/testify/require"
)

func TestFreeze_HeaderAndRootIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.ogawa")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Freeze(object.New("")))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, uint32(DefaultLibraryVersion), r.LibraryVersion())
	alembicVersion, ok := r.ArchiveMetadata().Get("_ai_AlembicVersion")
	require.True(t, ok)
	require.Equal(t, "1.8.10", alembicVersion)
	require.Equal(t, 1, r.NumTimeSamplings())

	root, err := r.Root()
	require.NoError(t, err)
	require.Equal(t, 0, root.NumChildren())
}

func TestFreeze_MinimalArchive_OneEmptyChild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.ogawa")

	w, err := NewWriter(path, WithApplication("test-suite"))
	require.NoError(t, err)

	root := object.New("")
	root.AddChild(object.New("child1"))
	require.NoError(t, w.Freeze(root))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	app, ok := r.ArchiveMetadata().Get("_ai_Application")
	require.True(t, ok)
	require.Equal(t, "test-suite", app)

	iroot, err := r.Root()
	require.NoError(t, err)
	require.Equal(t, 1, iroot.NumChildren())

	child, err := iroot.Child(0, r.LookupMetadata)
	require.NoError(t, err)
	require.Equal(t, "child1", child.Name())
}

func TestFreeze_AnimatedAndStaticMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.ogawa")

	w, err := NewWriter(path)
	require.NoError(t, err)

	root := object.New("")
	mesh := object.New("mesh")
	mesh.Meta.Set("schema", "AbcGeom_PolyMesh_v1")
	geom := property.NewCompound(".geom")

	pos3 := property.NewArray("P", datatype.New(datatype.Float32, 3), false)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 0, 1, 0, 0, 0.5, 1, 0}), nil)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 0, 1, 0, 0, 0.5, 1, 0}), nil)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 1, 1, 0, 1, 0.5, 1, 1}), nil)
	geom.AddChild(pos3)

	staticColor := property.NewScalar("color", datatype.New(datatype.Uint8, 3))
	for i := 0; i < 3; i++ {
		staticColor.AddScalarSample([]byte{255, 0, 0})
	}
	geom.AddChild(staticColor)

	mesh.Properties = geom
	root.AddChild(mesh)

	require.NoError(t, w.Freeze(root))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	iroot, err := r.Root()
	require.NoError(t, err)
	child, err := iroot.Child(0, r.LookupMetadata)
	require.NoError(t, err)
	schema, ok := child.Schema()
	require.True(t, ok)
	require.Equal(t, "AbcGeom_PolyMesh_v1", schema)

	props, err := child.Properties()
	require.NoError(t, err)

	idx, ok := props.IndexByName("P")
	require.True(t, ok)
	ap, err := props.OpenArray(idx)
	require.NoError(t, err)
	require.Equal(t, 3, ap.NumSamples())

	data0, _, err := ap.GetSample(0)
	require.NoError(t, err)
	data1, _, err := ap.GetSample(1)
	require.NoError(t, err)
	require.Equal(t, data0, data1)

	data2, _, err := ap.GetSample(2)
	require.NoError(t, err)
	require.NotEqual(t, data0, data2)

	colorIdx, ok := props.IndexByName("color")
	require.True(t, ok)
	sp, err := props.OpenScalar(colorIdx)
	require.NoError(t, err)
	require.Equal(t, 3, sp.NumSamples())
	for i := 0; i < 3; i++ {
		b, err := sp.GetSample(i)
		require.NoError(t, err)
		require.Equal(t, []byte{255, 0, 0}, b)
	}
}

func TestFreeze_DedupAcrossProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dedup.ogawa")

	w, err := NewWriter(path)
	require.NoError(t, err)

	root := object.New("")
	obj := object.New("obj")
	compound := property.NewCompound(".geom")

	same := property.EncodeFloat32s([]float32{1, 2, 3})
	a := property.NewArray("a", datatype.New(datatype.Float32, 1), false)
	a.AddArraySample(append([]byte(nil), same...), nil)
	b := property.NewArray("b", datatype.New(datatype.Float32, 1), false)
	b.AddArraySample(append([]byte(nil), same...), nil)
	compound.AddChild(a)
	compound.AddChild(b)
	obj.Properties = compound
	root.AddChild(obj)

	require.NoError(t, w.Freeze(root))
	sizeBefore, err := filepathSize(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// A second archive with distinct payloads should be larger than one
	// whose two properties share identical sample bytes, confirming dedup
	// actually reduced output size rather than merely compiling.
	path2 := filepath.Join(t.TempDir(), "nodedup.ogawa")
	w2, err := NewWriter(path2)
	require.NoError(t, err)
	root2 := object.New("")
	obj2 := object.New("obj")
	compound2 := property.NewCompound(".geom")
	a2 := property.NewArray("a", datatype.New(datatype.Float32, 1), false)
	a2.AddArraySample(property.EncodeFloat32s([]float32{1, 2, 3}), nil)
	b2 := property.NewArray("b", datatype.New(datatype.Float32, 1), false)
	b2.AddArraySample(property.EncodeFloat32s([]float32{4, 5, 6}), nil)
	compound2.AddChild(a2)
	compound2.AddChild(b2)
	obj2.Properties = compound2
	root2.AddChild(obj2)
	require.NoError(t, w2.Freeze(root2))
	sizeAfter, err := filepathSize(path2)
	require.NoError(t, err)
	require.NoError(t, w2.Close())

	require.Less(t, sizeBefore, sizeAfter)
}

func TestFreeze_PooledMetadataOverflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pooled.ogawa")

	w, err := NewWriter(path)
	require.NoError(t, err)

	root := object.New("")
	for i := 0; i < 300; i++ {
		child := object.New("obj")
		child.Meta.Set("idx", string(rune('a'+i%26))+string(rune(i)))
		root.AddChild(child)
	}
	require.NoError(t, w.Freeze(root))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	iroot, err := r.Root()
	require.NoError(t, err)
	require.Equal(t, 300, iroot.NumChildren())

	for i := 0; i < 300; i++ {
		child, err := iroot.Child(i, r.LookupMetadata)
		require.NoError(t, err)
		require.Equal(t, "obj", child.Name())
	}
}

func TestCopySemantic_RoundTrip(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "src.ogawa")
	dstPath := filepath.Join(t.TempDir(), "dst.ogawa")

	w, err := NewWriter(srcPath)
	require.NoError(t, err)
	w.ArchiveMetadata().Set("_ai_Application", "copy-source")

	root := object.New("")
	mesh := object.New("mesh")
	mesh.Meta.Set("schema", "AbcGeom_PolyMesh_v1")
	geom := property.NewCompound(".geom")
	pos3 := property.NewArray("P", datatype.New(datatype.Float32, 3), false)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 0, 1, 0, 0, 0.5, 1, 0}), nil)
	pos3.AddArraySample(property.EncodeFloat32s([]float32{0, 0, 1, 1, 0, 1, 0.5, 1, 1}), nil)
	geom.AddChild(pos3)
	visible := property.NewScalar("visible", datatype.New(datatype.Uint8, 1))
	visible.AddScalarSample([]byte{1})
	visible.AddScalarSample([]byte{1})
	geom.AddChild(visible)
	mesh.Properties = geom
	root.AddChild(mesh)
	root.AddChild(object.New("empty"))

	require.NoError(t, w.Freeze(root))
	require.NoError(t, w.Close())

	require.NoError(t, CopySemantic(srcPath, dstPath))

	r, err := Open(dstPath)
	require.NoError(t, err)
	defer r.Close()

	app, ok := r.ArchiveMetadata().Get("_ai_Application")
	require.True(t, ok)
	require.Equal(t, "copy-source", app)

	iroot, err := r.Root()
	require.NoError(t, err)
	require.Equal(t, 2, iroot.NumChildren())

	meshCopy, err := iroot.Child(0, r.LookupMetadata)
	require.NoError(t, err)
	require.Equal(t, "mesh", meshCopy.Name())
	schema, ok := meshCopy.Schema()
	require.True(t, ok)
	require.Equal(t, "AbcGeom_PolyMesh_v1", schema)

	props, err := meshCopy.Properties()
	require.NoError(t, err)
	idx, ok := props.IndexByName("P")
	require.True(t, ok)
	ap, err := props.OpenArray(idx)
	require.NoError(t, err)
	require.Equal(t, 2, ap.NumSamples())
	data1, _, err := ap.GetSample(1)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 1, 1, 0, 1, 0.5, 1, 1}, property.DecodeFloat32s(data1))

	emptyCopy, err := iroot.Child(1, r.LookupMetadata)
	require.NoError(t, err)
	require.Equal(t, "empty", emptyCopy.Name())
}

func filepathSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
