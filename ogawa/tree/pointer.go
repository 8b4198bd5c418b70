// Package tree implements the Ogawa group/data tree: position-linked groups
// of tagged child pointers and length-prefixed data blocks (spec §3, §4.2).
package tree

const tagBit = uint64(1) << 63

// MakeGroupOffset tags pos as a group pointer (bit 63 clear).
func MakeGroupOffset(pos uint64) uint64 {
	return pos &^ tagBit
}

// MakeDataOffset tags pos as a data pointer (bit 63 set).
func MakeDataOffset(pos uint64) uint64 {
	return pos | tagBit
}

// IsGroupPointer reports whether ptr's tag bit marks it as a group pointer.
func IsGroupPointer(ptr uint64) bool {
	return ptr&tagBit == 0
}

// IsDataPointer reports whether ptr's tag bit marks it as a data pointer.
func IsDataPointer(ptr uint64) bool {
	return ptr&tagBit != 0
}

// PointerOffset strips the tag bit, returning the raw file offset encoded in ptr.
func PointerOffset(ptr uint64) uint64 {
	return ptr &^ tagBit
}

// IsEmptyGroupPointer reports whether ptr denotes the "empty group" sentinel
// (group tag, offset 0).
func IsEmptyGroupPointer(ptr uint64) bool {
	return IsGroupPointer(ptr) && PointerOffset(ptr) == 0
}

// IsEmptyDataPointer reports whether ptr denotes the "empty data" sentinel
// (data tag, offset 0) — spec §3: "offset 0 with bit-63 set denotes empty
// data; dimensions inferred from the block".
func IsEmptyDataPointer(ptr uint64) bool {
	return IsDataPointer(ptr) && PointerOffset(ptr) == 0
}
