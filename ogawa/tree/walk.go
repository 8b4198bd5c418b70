package tree

import "github.com/ogawa-archive/alembic/ogawa/stream"

// Visitor receives callbacks while Walk traverses an Ogawa tree independent
// of the property/object facade layer above it.
//
// Grounded on the original Rust implementation's tests/debug_ogawa_structure.rs
// and tests/minimal_hexdump.rs, which walk the raw group/data tree as a
// cross-check against the higher-level object reader; kept here as the
// underlying capability those debug tools relied on (spec SPEC_FULL §D.5).
type Visitor interface {
	// Group is called when entering a group node, before its children are visited.
	Group(pos uint64, depth, count int)
	// Data is called for each data-block child encountered.
	Data(pos uint64, depth int, size uint64)
}

// Walk performs a depth-first traversal of the tree rooted at rootPos,
// calling v for every group and data node it encounters.
func Walk(r *stream.Reader, rootPos uint64, v Visitor) error {
	return walk(r, rootPos, 0, v)
}

func walk(r *stream.Reader, pos uint64, depth int, v Visitor) error {
	g, err := OpenGroup(r, pos, false)
	if err != nil {
		return err
	}

	v.Group(pos, depth, g.Count())

	for i := 0; i < g.Count(); i++ {
		ptr, err := g.ChildOffset(i)
		if err != nil {
			return err
		}

		if IsGroupPointer(ptr) {
			if err := walk(r, PointerOffset(ptr), depth+1, v); err != nil {
				return err
			}

			continue
		}

		d, err := OpenData(r, PointerOffset(ptr))
		if err != nil {
			return err
		}
		v.Data(PointerOffset(ptr), depth+1, d.Size())
	}

	return nil
}
