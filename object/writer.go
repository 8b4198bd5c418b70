package object

import (
	"github.com/ogawa-archive/alembic/contentkey"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/ogawa-archive/alembic/property"
	"github.com/ogawa-archive/alembic/timesampling"
)

// Write emits o (recursively, post-order) and returns its group position
// and identity hashes (spec §4.9, §4.10 step 3).
//
// The emitted group's children are, in order: the properties group, one
// group pointer per child object, and a trailing object-headers data
// block describing those children's names/metadata plus this object's own
// (data_hash, child_hash) pair.
func Write(w *stream.Writer, dedup *contentkey.DedupMap, pool *metadata.Pool, tsTable *timesampling.Table, o *Object) (uint64, Hashes, error) {
	props := o.Properties
	if props == nil {
		props = property.NewCompound("")
	}

	propRes, err := property.WriteProperty(w, dedup, pool, tsTable, props)
	if err != nil {
		return 0, Hashes{}, err
	}
	dataHash := propRes.NoHeader

	childPointers := make([]uint64, 0, len(o.Children)+2)
	childPointers = append(childPointers, tree.MakeGroupOffset(propRes.GroupPos))

	childHashesList := make([]Hashes, 0, len(o.Children))
	var headerBlock []byte

	for _, child := range o.Children {
		childPos, childHashes, err := Write(w, dedup, pool, tsTable, child)
		if err != nil {
			return 0, Hashes{}, err
		}
		childPointers = append(childPointers, tree.MakeGroupOffset(childPos))
		childHashesList = append(childHashesList, childHashes)

		metaIndex, inlineMeta := pool.Add(child.Meta)
		headerBlock = append(headerBlock, encodeEntry(child.Name, metaIndex, inlineMeta)...)
	}

	childHash := childConcatHash(childHashesList)

	headerBlock = appendU64(headerBlock, dataHash[0])
	headerBlock = appendU64(headerBlock, dataHash[1])
	headerBlock = appendU64(headerBlock, childHash[0])
	headerBlock = appendU64(headerBlock, childHash[1])

	headersPos, err := tree.WriteData(w, headerBlock)
	if err != nil {
		return 0, Hashes{}, err
	}
	childPointers = append(childPointers, tree.MakeDataOffset(headersPos))

	groupPos, err := tree.WriteGroup(w, childPointers)
	if err != nil {
		return 0, Hashes{}, err
	}

	return groupPos, Hashes{DataHash: dataHash, ChildHash: childHash}, nil
}

// encodeEntry renders one child's name/metadata entry in the owning
// object's headers block: fixed 4-byte ("size-hint-2") length fields
// throughout (spec §4.9).
func encodeEntry(name string, metaIndex uint8, inlineMeta string) []byte {
	buf := appendU32(nil, uint32(len(name)))
	buf = append(buf, name...)
	buf = append(buf, metaIndex)
	if metaIndex == metadata.InlineIndex {
		buf = appendU32(buf, uint32(len(inlineMeta)))
		buf = append(buf, inlineMeta...)
	}
	return buf
}
