package tree

import (
	"path/filepath"
	"testing"

	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/stretchr/testify/require"
)

// ---- pointer tagging ----

func TestPointerTagging(t *testing.T) {
	g := MakeGroupOffset(100)
	require.True(t, IsGroupPointer(g))
	require.False(t, IsDataPointer(g))
	require.Equal(t, uint64(100), PointerOffset(g))

	d := MakeDataOffset(100)
	require.True(t, IsDataPointer(d))
	require.False(t, IsGroupPointer(d))
	require.Equal(t, uint64(100), PointerOffset(d))

	require.True(t, IsEmptyGroupPointer(MakeGroupOffset(0)))
	require.False(t, IsEmptyGroupPointer(MakeGroupOffset(1)))
	require.True(t, IsEmptyDataPointer(MakeDataOffset(0)))
	require.False(t, IsEmptyDataPointer(MakeDataOffset(1)))
}

// ---- data blocks ----

func openRW(t *testing.T, name string) (*stream.Writer, string) {
	path := filepath.Join(t.TempDir(), name)
	w, err := stream.NewWriter(path)
	require.NoError(t, err)
	return w, path
}

func TestData_RoundTrip(t *testing.T) {
	w, path := openRW(t, "data.ogawa")

	pos, err := WriteData(w, []byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	d, err := OpenData(r, pos)
	require.NoError(t, err)
	require.False(t, d.IsEmpty())
	require.Equal(t, uint64(11), d.Size())

	b, err := d.Bytes()
	require.NoError(t, err)
	require.Equal(t, "hello world", string(b))
}

func TestData_Empty(t *testing.T) {
	w, path := openRW(t, "emptydata.ogawa")

	pos, err := WriteData(w, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), pos)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	d, err := OpenData(r, 0)
	require.NoError(t, err)
	require.True(t, d.IsEmpty())
	require.Equal(t, uint64(0), d.Size())

	b, err := d.Bytes()
	require.NoError(t, err)
	require.Nil(t, b)
}

// ---- groups ----

func TestGroup_RoundTrip(t *testing.T) {
	w, path := openRW(t, "group.ogawa")

	childPos, err := WriteData(w, []byte("child"))
	require.NoError(t, err)

	groupPos, err := WriteGroup(w, []uint64{MakeDataOffset(childPos)})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	g, err := OpenGroup(r, groupPos, false)
	require.NoError(t, err)
	require.False(t, g.IsEmpty())
	require.Equal(t, 1, g.Count())

	isData, err := g.IsData(0)
	require.NoError(t, err)
	require.True(t, isData)

	isGroup, err := g.IsGroup(0)
	require.NoError(t, err)
	require.False(t, isGroup)

	d, err := g.Data(0)
	require.NoError(t, err)
	b, err := d.Bytes()
	require.NoError(t, err)
	require.Equal(t, "child", string(b))

	_, err = g.Group(0, false)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = g.ChildOffset(1)
	require.ErrorIs(t, err, errs.ErrChildOutOfBounds)
}

func TestGroup_Empty(t *testing.T) {
	w, path := openRW(t, "emptygroup.ogawa")

	pos, err := WriteGroup(w, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), pos)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	g, err := OpenGroup(r, 0, false)
	require.NoError(t, err)
	require.True(t, g.IsEmpty())
	require.Equal(t, 0, g.Count())
}

func TestGroup_NestedAndLightMode(t *testing.T) {
	w, path := openRW(t, "nested.ogawa")

	leafPos, err := WriteData(w, []byte("leaf"))
	require.NoError(t, err)

	innerPos, err := WriteGroup(w, []uint64{MakeDataOffset(leafPos)})
	require.NoError(t, err)

	rootPos, err := WriteGroup(w, []uint64{
		MakeGroupOffset(innerPos),
		MakeGroupOffset(0), // empty group child
		MakeDataOffset(0),  // empty data child
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, light := range []bool{false, true} {
		r, err := stream.Open(path)
		require.NoError(t, err)

		root, err := OpenGroup(r, rootPos, light)
		require.NoError(t, err)
		require.Equal(t, 3, root.Count())

		emptyG, err := root.IsEmptyGroup(1)
		require.NoError(t, err)
		require.True(t, emptyG)

		emptyD, err := root.IsEmptyData(2)
		require.NoError(t, err)
		require.True(t, emptyD)

		inner, err := root.Group(0, light)
		require.NoError(t, err)
		require.Equal(t, 1, inner.Count())

		d, err := inner.Data(0)
		require.NoError(t, err)
		b, err := d.Bytes()
		require.NoError(t, err)
		require.Equal(t, "leaf", string(b))

		_, err = root.Data(0)
		require.ErrorIs(t, err, errs.ErrTypeMismatch)

		require.NoError(t, r.Close())
	}
}

// ---- walk ----

type recordingVisitor struct {
	groups []int // depth per group visited
	data   []int // depth per data block visited
}

func (v *recordingVisitor) Group(pos uint64, depth, count int) {
	v.groups = append(v.groups, depth)
}

func (v *recordingVisitor) Data(pos uint64, depth int, size uint64) {
	v.data = append(v.data, depth)
}

func TestWalk_VisitsAllNodes(t *testing.T) {
	w, path := openRW(t, "walk.ogawa")

	leafA, err := WriteData(w, []byte("a"))
	require.NoError(t, err)
	leafB, err := WriteData(w, []byte("bb"))
	require.NoError(t, err)

	child, err := WriteGroup(w, []uint64{MakeDataOffset(leafA)})
	require.NoError(t, err)

	root, err := WriteGroup(w, []uint64{
		MakeGroupOffset(child),
		MakeDataOffset(leafB),
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := stream.Open(path)
	require.NoError(t, err)
	defer r.Close()

	v := &recordingVisitor{}
	require.NoError(t, Walk(r, root, v))

	require.Equal(t, []int{0, 1}, v.groups)
	require.Equal(t, []int{2, 1}, v.data)
}
