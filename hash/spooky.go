package hash

import "math/bits"

// SpookyV2 is Bob Jenkins' SpookyHash V2, ported bit-for-bit from the
// published reference algorithm. It is used throughout the property/object
// hashing layer (spec §4.6-§4.9): per-sample digest mixing, property header
// hashes, and compound/object data hashes.
const (
	spookyNumVars   = 12
	spookyBlockSize = spookyNumVars * 8
	spookyBufSize   = 2 * spookyBlockSize
	spookyConst     uint64 = 0xdeadbeefdeadbeef
)

func rot64(x uint64, k uint) uint64 {
	return bits.RotateLeft64(x, int(k))
}

// ShortEndMix runs SpookyV2's ShortEnd permutation over the 4-word state
// (h0,h1,h2,h3) and returns the resulting (h0,h1) pair.
//
// This is the primitive spec §4.6 calls "short_end_mix": sample digests and
// their dims are folded into a running 128-bit hash by repeatedly calling
// this with the previous running pair as (h0,h1) and the next 64-bit chunk
// as (h2,h3).
func ShortEndMix(h0, h1, h2, h3 uint64) (uint64, uint64) {
	h3 ^= h2
	h2 = rot64(h2, 15)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 52)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 26)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 51)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 28)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 9)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 47)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 54)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 32)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 25)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 63)
	h1 += h0

	return h0, h1
}

func shortMix(h0, h1, h2, h3 uint64) (uint64, uint64, uint64, uint64) {
	h2 = rot64(h2, 50)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 52)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 30)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 41)
	h1 += h2
	h3 ^= h1
	h2 = rot64(h2, 54)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 48)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 38)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 37)
	h1 += h2
	h3 ^= h1
	h2 = rot64(h2, 62)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 34)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 5)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 36)
	h1 += h2
	h3 ^= h1

	return h0, h1, h2, h3
}

func mix(data []uint64, s [12]uint64) [12]uint64 {
	s[0] += data[0]
	s[2] ^= s[10]
	s[11] ^= s[0]
	s[0] = rot64(s[0], 11)
	s[11] += s[1]

	s[1] += data[1]
	s[3] ^= s[11]
	s[0] ^= s[1]
	s[1] = rot64(s[1], 32)
	s[0] += s[2]

	s[2] += data[2]
	s[4] ^= s[0]
	s[1] ^= s[2]
	s[2] = rot64(s[2], 43)
	s[1] += s[3]

	s[3] += data[3]
	s[5] ^= s[1]
	s[2] ^= s[3]
	s[3] = rot64(s[3], 31)
	s[2] += s[4]

	s[4] += data[4]
	s[6] ^= s[2]
	s[3] ^= s[4]
	s[4] = rot64(s[4], 17)
	s[3] += s[5]

	s[5] += data[5]
	s[7] ^= s[3]
	s[4] ^= s[5]
	s[5] = rot64(s[5], 28)
	s[4] += s[6]

	s[6] += data[6]
	s[8] ^= s[4]
	s[5] ^= s[6]
	s[6] = rot64(s[6], 39)
	s[5] += s[7]

	s[7] += data[7]
	s[9] ^= s[5]
	s[6] ^= s[7]
	s[7] = rot64(s[7], 57)
	s[6] += s[8]

	s[8] += data[8]
	s[10] ^= s[6]
	s[7] ^= s[8]
	s[8] = rot64(s[8], 55)
	s[7] += s[9]

	s[9] += data[9]
	s[11] ^= s[7]
	s[8] ^= s[9]
	s[9] = rot64(s[9], 54)
	s[8] += s[10]

	s[10] += data[10]
	s[0] ^= s[8]
	s[9] ^= s[10]
	s[10] = rot64(s[10], 22)
	s[9] += s[11]

	s[11] += data[11]
	s[1] ^= s[9]
	s[10] ^= s[11]
	s[11] = rot64(s[11], 46)
	s[10] += s[0]

	return s
}

func endPartial(h [12]uint64) [12]uint64 {
	h[11] += h[1]
	h[2] ^= h[11]
	h[1] = rot64(h[1], 44)

	h[0] += h[2]
	h[3] ^= h[0]
	h[2] = rot64(h[2], 15)

	h[1] += h[3]
	h[4] ^= h[1]
	h[3] = rot64(h[3], 34)

	h[2] += h[4]
	h[5] ^= h[2]
	h[4] = rot64(h[4], 21)

	h[3] += h[5]
	h[6] ^= h[3]
	h[5] = rot64(h[5], 38)

	h[4] += h[6]
	h[7] ^= h[4]
	h[6] = rot64(h[6], 33)

	h[5] += h[7]
	h[8] ^= h[5]
	h[7] = rot64(h[7], 10)

	h[6] += h[8]
	h[9] ^= h[6]
	h[8] = rot64(h[8], 13)

	h[7] += h[9]
	h[10] ^= h[7]
	h[9] = rot64(h[9], 38)

	h[8] += h[10]
	h[11] ^= h[8]
	h[10] = rot64(h[10], 53)

	h[9] += h[11]
	h[0] ^= h[9]
	h[11] = rot64(h[11], 42)

	h[10] += h[0]
	h[1] ^= h[10]
	h[0] = rot64(h[0], 54)

	return h
}

func end(data []uint64, h [12]uint64) [12]uint64 {
	for i := range h {
		h[i] += data[i]
	}

	h = endPartial(h)
	h = endPartial(h)
	h = endPartial(h)

	return h
}

func short(message []byte, hash1, hash2 uint64) (uint64, uint64) {
	length := len(message)
	remainder := length % 32

	a, b, c, d := hash1, hash2, spookyConst, spookyConst
	pos := 0

	if length > 15 {
		end := (length / 32) * 32
		for pos < end {
			c += leUint64(message[pos : pos+8])
			d += leUint64(message[pos+8 : pos+16])
			a, b, c, d = shortMix(a, b, c, d)
			a += leUint64(message[pos+16 : pos+24])
			b += leUint64(message[pos+24 : pos+32])
			pos += 32
		}

		if remainder >= 16 {
			c += leUint64(message[pos : pos+8])
			d += leUint64(message[pos+8 : pos+16])
			a, b, c, d = shortMix(a, b, c, d)
			pos += 16
			remainder -= 16
		}
	}

	d += uint64(length) << 56

	tail := message[pos:]
	switch remainder {
	case 15:
		d += uint64(tail[14]) << 48
		fallthrough
	case 14:
		d += uint64(tail[13]) << 40
		fallthrough
	case 13:
		d += uint64(tail[12]) << 32
		fallthrough
	case 12:
		d += uint64(tail[8]) | uint64(tail[9])<<8 | uint64(tail[10])<<16 | uint64(tail[11])<<24
		c += leUint64(tail[0:8])
	case 11:
		d += uint64(tail[10]) << 16
		fallthrough
	case 10:
		d += uint64(tail[9]) << 8
		fallthrough
	case 9:
		d += uint64(tail[8])
		fallthrough
	case 8:
		c += leUint64(tail[0:8])
	case 7:
		c += uint64(tail[6]) << 48
		fallthrough
	case 6:
		c += uint64(tail[5]) << 40
		fallthrough
	case 5:
		c += uint64(tail[4]) << 32
		fallthrough
	case 4:
		c += uint64(tail[0])<<0 | uint64(tail[1])<<8 | uint64(tail[2])<<16 | uint64(tail[3])<<24
	case 3:
		c += uint64(tail[2]) << 16
		fallthrough
	case 2:
		c += uint64(tail[1]) << 8
		fallthrough
	case 1:
		c += uint64(tail[0])
	case 0:
		c += spookyConst
		d += spookyConst
	}

	a, b, c, d = shortEndFull(a, b, c, d)

	return a, b
}

// shortEndFull runs the complete ShortEnd permutation and returns all four
// resulting words (ShortEndMix above intentionally only returns h0,h1 for
// the sample-hash-mixing use case).
func shortEndFull(h0, h1, h2, h3 uint64) (uint64, uint64, uint64, uint64) {
	h3 ^= h2
	h2 = rot64(h2, 15)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 52)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 26)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 51)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 28)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 9)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 47)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 54)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 32)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 25)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 63)
	h1 += h0

	return h0, h1, h2, h3
}

// SpookyHash128 computes the 128-bit SpookyV2 hash of data, seeded with
// (seed1, seed2), and returns the two 64-bit halves.
func SpookyHash128(data []byte, seed1, seed2 uint64) (uint64, uint64) {
	if len(data) < spookyBufSize {
		return short(data, seed1, seed2)
	}

	var s [12]uint64
	s[0], s[3], s[6], s[9] = seed1, seed1, seed1, seed1
	s[1], s[4], s[7], s[10] = seed2, seed2, seed2, seed2
	s[2], s[5], s[8], s[11] = spookyConst, spookyConst, spookyConst, spookyConst

	length := len(data)
	pos := 0
	endPos := (length / spookyBlockSize) * spookyBlockSize

	var block [12]uint64
	for pos < endPos {
		for i := 0; i < 12; i++ {
			block[i] = leUint64(data[pos+i*8 : pos+i*8+8])
		}
		s = mix(block[:], s)
		pos += spookyBlockSize
	}

	remainder := length - pos
	var buf [spookyBlockSize]byte
	copy(buf[:], data[pos:])
	buf[spookyBlockSize-1] = byte(remainder)

	for i := 0; i < 12; i++ {
		block[i] = leUint64(buf[i*8 : i*8+8])
	}
	s = end(block[:], s)

	return s[0], s[1]
}

// SpookyHash128Bytes packs SpookyHash128's result into a 16-byte little-endian digest.
func SpookyHash128Bytes(data []byte, seed1, seed2 uint64) [16]byte {
	h0, h1 := SpookyHash128(data, seed1, seed2)

	var out [16]byte
	putLeUint64(out[0:8], h0)
	putLeUint64(out[8:16], h1)

	return out
}
