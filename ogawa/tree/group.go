package tree

import (
	"fmt"

	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/ogawa/stream"
)

// Group is an on-disk list of tagged u64 child pointers (spec §3 "Group",
// §4.2 "Reading").
//
// Opened in "light" mode, child offsets are re-read from the stream on every
// access instead of cached — used when a group is opened only to enumerate
// a single child, to avoid materializing pointers that will never be read
// again.
type Group struct {
	r        *stream.Reader
	pos      uint64
	light    bool
	count    int
	children []uint64 // nil in light mode
}

// OpenGroup opens the group at pos. pos == 0 is the empty-group sentinel
// (spec §3): it opens successfully with Count() == 0.
func OpenGroup(r *stream.Reader, pos uint64, light bool) (*Group, error) {
	if pos == 0 {
		return &Group{r: r, pos: 0, light: light, count: 0}, nil
	}

	countU64, err := r.ReadU64(pos)
	if err != nil {
		return nil, err
	}
	count := int(countU64)

	g := &Group{r: r, pos: pos, light: light, count: count}
	if !light {
		children := make([]uint64, count)
		for i := 0; i < count; i++ {
			c, err := r.ReadU64(pos + 8 + uint64(i)*8)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		g.children = children
	}

	return g, nil
}

// Pos returns the group's file position (0 for the empty-group sentinel).
func (g *Group) Pos() uint64 {
	return g.pos
}

// Count returns the number of children.
func (g *Group) Count() int {
	return g.count
}

// IsEmpty reports whether this is the empty-group sentinel.
func (g *Group) IsEmpty() bool {
	return g.pos == 0
}

// ChildOffset returns the raw tagged pointer for child i.
func (g *Group) ChildOffset(i int) (uint64, error) {
	if i < 0 || i >= g.count {
		return 0, fmt.Errorf("%w: index %d, count %d", errs.ErrChildOutOfBounds, i, g.count)
	}

	if !g.light {
		return g.children[i], nil
	}

	return g.r.ReadU64(g.pos + 8 + uint64(i)*8)
}

// IsGroup reports whether child i is tagged as a group pointer.
func (g *Group) IsGroup(i int) (bool, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return false, err
	}

	return IsGroupPointer(ptr), nil
}

// IsData reports whether child i is tagged as a data pointer.
func (g *Group) IsData(i int) (bool, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return false, err
	}

	return IsDataPointer(ptr), nil
}

// IsEmptyGroup reports whether child i is the empty-group sentinel.
func (g *Group) IsEmptyGroup(i int) (bool, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return false, err
	}

	return IsEmptyGroupPointer(ptr), nil
}

// IsEmptyData reports whether child i is the empty-data sentinel.
func (g *Group) IsEmptyData(i int) (bool, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return false, err
	}

	return IsEmptyDataPointer(ptr), nil
}

// Group opens child i as a Group, failing with ErrTypeMismatch if it's tagged as data.
func (g *Group) Group(i int, light bool) (*Group, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return nil, err
	}
	if IsDataPointer(ptr) {
		return nil, fmt.Errorf("%w: expected group, got data at child %d", errs.ErrTypeMismatch, i)
	}

	return OpenGroup(g.r, PointerOffset(ptr), light)
}

// Data opens child i as a Data block, failing with ErrTypeMismatch if it's tagged as a group.
func (g *Group) Data(i int) (*Data, error) {
	ptr, err := g.ChildOffset(i)
	if err != nil {
		return nil, err
	}
	if IsGroupPointer(ptr) {
		return nil, fmt.Errorf("%w: expected data, got group at child %d", errs.ErrTypeMismatch, i)
	}

	return OpenData(g.r, PointerOffset(ptr))
}

// WriteGroup lays out a group whose children are the given tagged pointers
// and returns its starting position. An empty slice returns position 0, the
// empty-group sentinel (spec §4.2 "Writing").
func WriteGroup(w *stream.Writer, children []uint64) (uint64, error) {
	if len(children) == 0 {
		return 0, nil
	}

	pos := w.Pos()
	if err := w.WriteU64LE(uint64(len(children))); err != nil {
		return 0, err
	}
	for _, c := range children {
		if err := w.WriteU64LE(c); err != nil {
			return 0, err
		}
	}

	return pos, nil
}
