package object

import "github.com/ogawa-archive/alembic/hash"

// Hashes is an object's SpookyV2 identity pair (spec §4.9): DataHash is the
// hash of its own property tree's children, ChildHash is the hash of the
// concatenation of all its children objects' (DataHash, ChildHash) pairs.
type Hashes struct {
	DataHash  [2]uint64
	ChildHash [2]uint64
}

func childConcatHash(children []Hashes) [2]uint64 {
	buf := make([]byte, 0, len(children)*32)
	for _, c := range children {
		buf = appendU64(buf, c.DataHash[0])
		buf = appendU64(buf, c.DataHash[1])
		buf = appendU64(buf, c.ChildHash[0])
		buf = appendU64(buf, c.ChildHash[1])
	}
	h0, h1 := hash.SpookyHash128(buf, 0, 0)
	return [2]uint64{h0, h1}
}

func appendU64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func readU32(buf []byte) uint32 {
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

func readU64(buf []byte) uint64 {
	return uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
}
