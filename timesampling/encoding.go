package timesampling

import (
	"math"

	"github.com/ogawa-archive/alembic/ogawa/stream"
)

// EncodeEntry appends one table entry's on-disk form to buf: u32
// max_samples, f64 tpc, u32 num_stored_times, times (spec §4.5).
func EncodeEntry(buf []byte, t TimeSampling, maxSamples uint32) []byte {
	times := t.storedTimes()

	buf = appendU32(buf, maxSamples)
	buf = appendU64(buf, math.Float64bits(t.TimePerCycle))
	buf = appendU32(buf, uint32(len(times)))
	for _, tm := range times {
		buf = appendU64(buf, math.Float64bits(tm))
	}
	return buf
}

// EncodeTable renders the full table as a single byte block, identity entry
// first.
func EncodeTable(tb *Table) []byte {
	var buf []byte
	for i, e := range tb.entries {
		buf = EncodeEntry(buf, e, tb.maxSamples[i])
	}
	return buf
}

// WriteTable writes the table's encoded form via w.
func WriteTable(w *stream.Writer, tb *Table) error {
	return w.WriteBytes(EncodeTable(tb))
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

// DecodeTable parses a full table block. The encoding itself is
// variant-agnostic (it only stores tpc + a time list), so the variant of
// each entry is inferred: index 0 is Identity, an entry whose tpc is
// AcyclicTimePerCycle is Acyclic, an entry with exactly one stored time is
// Uniform, and every other entry is Cyclic.
func DecodeTable(data []byte) ([]TimeSampling, []uint32) {
	var entries []TimeSampling
	var maxSamples []uint32

	for i := 0; len(data) > 0; i++ {
		maxS := readU32(data[0:4])
		tpc := math.Float64frombits(readU64(data[4:12]))
		numTimes := readU32(data[12:16])
		data = data[16:]

		times := make([]float64, numTimes)
		for j := range times {
			times[j] = math.Float64frombits(readU64(data[0:8]))
			data = data[8:]
		}

		var ts TimeSampling
		switch {
		case i == 0:
			ts = TimeSampling{Kind: Identity, TimePerCycle: tpc, Times: times}
		case tpc == AcyclicTimePerCycle:
			ts = TimeSampling{Kind: Acyclic, TimePerCycle: tpc, Times: times}
		case len(times) == 1:
			ts = TimeSampling{Kind: Uniform, TimePerCycle: tpc, StartTime: times[0]}
		default:
			ts = TimeSampling{Kind: Cyclic, TimePerCycle: tpc, Times: times}
		}

		entries = append(entries, ts)
		maxSamples = append(maxSamples, maxS)
	}

	return entries, maxSamples
}
