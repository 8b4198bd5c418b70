package property

import "math"

// Fixed-size POD payloads are raw little-endian arrays in memory order
// (spec §4.6). Only the element kinds the schema layer actually produces
// are given named encoders; exotic PODs can be encoded by callers directly
// since the wire format is just raw LE bytes.

func EncodeFloat32s(vals []float32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = appendU32(out, math.Float32bits(v))
	}
	return out
}

func DecodeFloat32s(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(readU32(data[i*4:]))
	}
	return out
}

func EncodeFloat64s(vals []float64) []byte {
	out := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		out = appendU64(out, math.Float64bits(v))
	}
	return out
}

func DecodeFloat64s(data []byte) []float64 {
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(readU64(data[i*8:]))
	}
	return out
}

func EncodeInt32s(vals []int32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = appendU32(out, uint32(v))
	}
	return out
}

func DecodeInt32s(data []byte) []int32 {
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(readU32(data[i*4:]))
	}
	return out
}

func EncodeUint32s(vals []uint32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = appendU32(out, v)
	}
	return out
}

func DecodeUint32s(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = readU32(data[i*4:])
	}
	return out
}

func EncodeBools(vals []bool) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			out[i] = 1
		}
	}
	return out
}

func DecodeBools(data []byte) []bool {
	out := make([]bool, len(data))
	for i, b := range data {
		out[i] = b != 0
	}
	return out
}

// EncodeStrings renders the length-prefixed sequence u32-length ∥ UTF-8
// bytes, per element (spec §4.6 "Strings").
func EncodeStrings(vals []string) []byte {
	var out []byte
	for _, s := range vals {
		out = appendU32(out, uint32(len(s)))
		out = append(out, s...)
	}
	return out
}

// DecodeStrings parses the length-prefixed sequence back into strings.
func DecodeStrings(data []byte) []string {
	var out []string
	for len(data) > 0 {
		n := readU32(data)
		data = data[4:]
		out = append(out, string(data[:n]))
		data = data[n:]
	}
	return out
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendU64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func readU32(buf []byte) uint32 {
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

func readU64(buf []byte) uint64 {
	return uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
}
