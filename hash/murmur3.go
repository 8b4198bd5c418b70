// Package hash provides binary-exact implementations of the two hash
// primitives the Ogawa container format builds on: MurmurHash3-x64-128
// (content-key digests, §4.4) and SpookyV2 (property/object/sample hashing,
// §4.6-4.9). Both are well-known, published algorithms; this package
// reimplements their reference C algorithms bit-for-bit, it does not
// redesign them.
package hash

import "math/bits"

const (
	murmur3C1 uint64 = 0x87c37b91114253d5
	murmur3C2 uint64 = 0x4cf5ad432745937f
)

// Murmur3_128 computes the 128-bit x64 variant of MurmurHash3 over data,
// seeded with seed, and returns the two 64-bit halves (h1, h2) in the same
// order the reference implementation emits them.
func Murmur3_128(data []byte, seed uint32) (h1, h2 uint64) {
	h1 = uint64(seed)
	h2 = uint64(seed)

	nblocks := len(data) / 16
	for i := 0; i < nblocks; i++ {
		block := data[i*16 : i*16+16]
		k1 := leUint64(block[0:8])
		k2 := leUint64(block[8:16])

		k1 *= murmur3C1
		k1 = bits.RotateLeft64(k1, 31)
		k1 *= murmur3C2
		h1 ^= k1

		h1 = bits.RotateLeft64(h1, 27)
		h1 += h2
		h1 = h1*5 + 0x52dce729

		k2 *= murmur3C2
		k2 = bits.RotateLeft64(k2, 33)
		k2 *= murmur3C1
		h2 ^= k2

		h2 = bits.RotateLeft64(h2, 31)
		h2 += h1
		h2 = h2*5 + 0x38495ab5
	}

	tail := data[nblocks*16:]
	var k1, k2 uint64
	switch len(tail) {
	case 15:
		k2 ^= uint64(tail[14]) << 48
		fallthrough
	case 14:
		k2 ^= uint64(tail[13]) << 40
		fallthrough
	case 13:
		k2 ^= uint64(tail[12]) << 32
		fallthrough
	case 12:
		k2 ^= uint64(tail[11]) << 24
		fallthrough
	case 11:
		k2 ^= uint64(tail[10]) << 16
		fallthrough
	case 10:
		k2 ^= uint64(tail[9]) << 8
		fallthrough
	case 9:
		k2 ^= uint64(tail[8])
		k2 *= murmur3C2
		k2 = bits.RotateLeft64(k2, 33)
		k2 *= murmur3C1
		h2 ^= k2
		fallthrough
	case 8:
		k1 ^= uint64(tail[7]) << 56
		fallthrough
	case 7:
		k1 ^= uint64(tail[6]) << 48
		fallthrough
	case 6:
		k1 ^= uint64(tail[5]) << 40
		fallthrough
	case 5:
		k1 ^= uint64(tail[4]) << 32
		fallthrough
	case 4:
		k1 ^= uint64(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint64(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint64(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint64(tail[0])
		k1 *= murmur3C1
		k1 = bits.RotateLeft64(k1, 31)
		k1 *= murmur3C2
		h1 ^= k1
	}

	h1 ^= uint64(len(data))
	h2 ^= uint64(len(data))

	h1 += h2
	h2 += h1

	h1 = fmix64(h1)
	h2 = fmix64(h2)

	h1 += h2
	h2 += h1

	return h1, h2
}

// Murmur3_128Bytes is Murmur3_128 with the result packed into a 16-byte
// digest, little-endian per half, matching how ContentKey stores it (§3
// ContentKey, §4.4).
func Murmur3_128Bytes(data []byte, seed uint32) [16]byte {
	h1, h2 := Murmur3_128(data, seed)

	var out [16]byte
	putLeUint64(out[0:8], h1)
	putLeUint64(out[8:16], h2)

	return out
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33

	return k
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLeUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
