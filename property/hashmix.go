package property

import "github.com/ogawa-archive/alembic/hash"

// sampleHash folds a 16-byte content digest with an array sample's
// dimensions via the SpookyV2 short-end mix (spec §4.6 "Per-sample hash
// mix"). Scalar samples pass nil dims; array samples pass the dims they were
// added with (nil when added without dims). For an empty dims slice the loop
// degenerates to the identity on (h0, h1).
func sampleHash(digest [16]byte, dims []uint64) (h0, h1 uint64) {
	h0 = leUint64(digest[0:8])
	h1 = leUint64(digest[8:16])
	for _, d := range dims {
		h0, h1 = hash.ShortEndMix(h0, h1, d, 0)
	}
	return h0, h1
}

// runningSampleHash folds the per-sample hashes of every logical sample
// (spec §4.6 "For a property with multiple samples"). Called with the full
// logical sample count, independent of how many were actually written to
// disk by changed-range compression, so every repeated sample is still
// folded into the running hash.
func runningSampleHash(hashes [][2]uint64) (h0, h1 uint64) {
	if len(hashes) == 0 {
		return 0, 0
	}
	h0, h1 = hashes[0][0], hashes[0][1]
	for i := 1; i < len(hashes); i++ {
		h0, h1 = hash.ShortEndMix(h0, h1, hashes[i][0], hashes[i][1])
	}
	return h0, h1
}

// leafHash computes a leaf property's contribution hash: SpookyV2 over its
// header bytes followed by its final running sample hash (spec §4.8 item 1).
func leafHash(headerBytes []byte, running0, running1 uint64) (uint64, uint64) {
	buf := make([]byte, 0, len(headerBytes)+16)
	buf = append(buf, headerBytes...)
	buf = appendU64(buf, running0)
	buf = appendU64(buf, running1)
	return hash.SpookyHash128(buf, 0, 0)
}

// compoundChildConcatHash is SpookyV2 of the u64-LE concatenation of a
// compound's children's hashes, with no header bytes appended. This is the
// "data hash" used directly in the owning object's headers block (spec
// §4.8, §4.9): the root property of an object is never itself a named
// child of another compound, so it never needs a header-bearing variant.
func compoundChildConcatHash(childHashes [][2]uint64) (uint64, uint64) {
	buf := make([]byte, 0, len(childHashes)*16)
	for _, h := range childHashes {
		buf = appendU64(buf, h[0])
		buf = appendU64(buf, h[1])
	}
	return hash.SpookyHash128(buf, 0, 0)
}

// compoundHash is a nested compound property's contribution hash: the
// children concatenation followed by this compound's own header bytes
// (spec §4.8 item 2), used when a compound is itself a child of another
// compound.
func compoundHash(childHashes [][2]uint64, headerBytes []byte) (uint64, uint64) {
	buf := make([]byte, 0, len(childHashes)*16+len(headerBytes))
	for _, h := range childHashes {
		buf = appendU64(buf, h[0])
		buf = appendU64(buf, h[1])
	}
	buf = append(buf, headerBytes...)
	return hash.SpookyHash128(buf, 0, 0)
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
