package object

import (
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/ogawa-archive/alembic/property"
)

// entry is one decoded child name/metadata record from an object-headers
// block.
type entry struct {
	name       string
	metaIndex  uint8
	inlineMeta string
}

// IObject is a lazy read-side view over an object group (spec §4.11).
// Objects do not self-describe: a child's name and metadata are recorded
// by its parent, so OpenObject takes them as parameters (empty for the
// archive root).
type IObject struct {
	r       *stream.Reader
	group   *tree.Group
	name    string
	meta    *metadata.Map
	entries []entry
	Hashes  Hashes
}

// OpenObject opens the object group at pos. name and meta are as recorded
// by the parent (or empty/nil for the root).
func OpenObject(r *stream.Reader, pos uint64, name string, meta *metadata.Map) (*IObject, error) {
	g, err := tree.OpenGroup(r, pos, false)
	if err != nil {
		return nil, err
	}

	n := g.Count() - 2 // exclude properties group (first) and headers data (last)
	if n < 0 {
		n = 0
	}

	headerData, err := g.Data(g.Count() - 1)
	if err != nil {
		return nil, err
	}
	raw, err := headerData.Bytes()
	if err != nil {
		return nil, err
	}

	entries := make([]entry, n)
	rest := raw
	for i := 0; i < n; i++ {
		entries[i], rest = decodeEntry(rest)
	}

	var hashes Hashes
	if len(rest) >= 32 {
		hashes.DataHash[0] = readU64(rest[0:8])
		hashes.DataHash[1] = readU64(rest[8:16])
		hashes.ChildHash[0] = readU64(rest[16:24])
		hashes.ChildHash[1] = readU64(rest[24:32])
	}

	if meta == nil {
		meta = metadata.New()
	}

	return &IObject{r: r, group: g, name: name, meta: meta, entries: entries, Hashes: hashes}, nil
}

func decodeEntry(data []byte) (entry, []byte) {
	var e entry
	nameLen := readU32(data)
	data = data[4:]
	e.name = string(data[:nameLen])
	data = data[nameLen:]
	e.metaIndex = data[0]
	data = data[1:]
	if e.metaIndex == metadata.InlineIndex {
		metaLen := readU32(data)
		data = data[4:]
		e.inlineMeta = string(data[:metaLen])
		data = data[metaLen:]
	}
	return e, data
}

// Name returns the object's name.
func (o *IObject) Name() string {
	return o.name
}

// Metadata returns the object's metadata map.
func (o *IObject) Metadata() *metadata.Map {
	return o.meta
}

// Schema returns the value of the "schema" metadata key, if present.
func (o *IObject) Schema() (string, bool) {
	return o.meta.Get("schema")
}

// NumChildren returns the number of child objects.
func (o *IObject) NumChildren() int {
	return len(o.entries)
}

// Properties opens this object's top-level compound property.
func (o *IObject) Properties() (*property.ICompoundProperty, error) {
	ptr, err := o.group.ChildOffset(0)
	if err != nil {
		return nil, err
	}
	return property.OpenCompound(o.r, tree.PointerOffset(ptr))
}

// Child opens child object i, resolving its metadata via lookup (the
// archive's metadata pool).
func (o *IObject) Child(i int, lookup property.PoolLookup) (*IObject, error) {
	ptr, err := o.group.ChildOffset(1 + i)
	if err != nil {
		return nil, err
	}

	e := o.entries[i]
	var meta *metadata.Map
	switch {
	case e.metaIndex == metadata.InlineIndex:
		meta = metadata.Parse(e.inlineMeta)
	case e.metaIndex == 0:
		meta = metadata.New()
	default:
		meta = metadata.Parse(lookup(e.metaIndex))
	}

	return OpenObject(o.r, tree.PointerOffset(ptr), e.name, meta)
}
