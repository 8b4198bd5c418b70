// Package endian provides the little-endian integer helpers the Ogawa
// container format is built on.
//
// Unlike the teacher library this is adapted from, Ogawa has no per-archive
// byte-order choice: spec §3 fixes every on-disk integer to little-endian
// except the header's version field, which is big-endian. The package keeps
// the engine-shaped API (PutUint64/AppendUint64), which ogawa/stream uses for
// its integer reads and writes, but it collapses the engine to two fixed
// values instead of a runtime-selectable one.
package endian

import "encoding/binary"

// Engine combines encoding/binary's ByteOrder and AppendByteOrder so callers
// get both Put* and amortized Append* operations from one value.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LE is the little-endian engine used for every Ogawa integer field except the header version.
var LE Engine = binary.LittleEndian

// BE is the big-endian engine used only for the header's 2-byte version field (spec §3).
var BE Engine = binary.BigEndian
