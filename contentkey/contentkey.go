// Package contentkey implements the content-addressed payload digest and
// the writer-side dedup map used to collapse identical sample payloads to a
// single on-disk data block (spec §4.4).
package contentkey

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/hash"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
)

// Key identifies a sample payload for deduplication: two payloads are
// identical iff their keys are equal (spec §3 "ContentKey").
type Key struct {
	Digest        [16]byte
	PayloadLength uint64
	PodTag        datatype.Pod
}

// FromBytes computes the content key of payload. elementSize seeds the hash
// when the underlying payload represents fixed-size elements, matching the
// reference's use of element size as the MurmurHash3 seed.
func FromBytes(payload []byte, pod datatype.Pod, elementSize int) Key {
	digest := hash.Murmur3_128Bytes(payload, uint32(elementSize))

	return Key{
		Digest:        digest,
		PayloadLength: uint64(len(payload)),
		PodTag:        pod,
	}
}

// DedupMap is the writer-local, archive-scoped map from content key to file
// position. It is never shared across writers and is dropped on freeze
// (spec §4.4, §9 "Global state").
type DedupMap struct {
	positions map[Key]uint64
}

// NewDedupMap returns an empty dedup map.
func NewDedupMap() *DedupMap {
	return &DedupMap{positions: make(map[Key]uint64)}
}

// Lookup returns the stored position for key, if any.
func (m *DedupMap) Lookup(key Key) (uint64, bool) {
	pos, ok := m.positions[key]
	return pos, ok
}

// WriteKeyedData computes the content key of payload and, if it has not
// been seen before, emits a data block whose contents are the 16-byte
// digest followed by payload, recording the new position. Returns the
// position of the (possibly pre-existing) data block.
func WriteKeyedData(w *stream.Writer, m *DedupMap, payload []byte, pod datatype.Pod, elementSize int) (uint64, error) {
	key := FromBytes(payload, pod, elementSize)
	return WriteKeyedDataWithKey(w, m, payload, key)
}

// WriteKeyedDataWithKey is WriteKeyedData with an externally computed key,
// avoiding a redundant hash pass when the caller already has the digest.
func WriteKeyedDataWithKey(w *stream.Writer, m *DedupMap, payload []byte, key Key) (uint64, error) {
	if pos, ok := m.Lookup(key); ok {
		return pos, nil
	}

	block := make([]byte, 0, 16+len(payload))
	block = append(block, key.Digest[:]...)
	block = append(block, payload...)

	pos, err := tree.WriteData(w, block)
	if err != nil {
		return 0, err
	}

	m.positions[key] = pos
	return pos, nil
}
