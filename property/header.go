package property

import "github.com/ogawa-archive/alembic/metadata"

// Header info-word bit layout (spec §4.8).
const (
	infoKindMask     = 0x3       // bits 0-1
	infoSizeHintMask = 0x3 << 2  // bits 2-3
	infoPodMask      = 0xF << 4  // bits 4-7
	infoTimeSampling = 1 << 8    // bit 8
	infoChangedRange = 1 << 9    // bit 9
	infoHomogeneous  = 1 << 10   // bit 10
	infoConstant     = 1 << 11   // bit 11
	infoExtentMask   = 0xFF << 12
	infoMetaMask     = 0xFF << 20
)

// SelectSizeHint returns the smallest size hint (0, 1, or 2) able to encode
// the largest of vals, per spec §4.8: h=0 for <=255, h=1 for <65536, h=2
// otherwise.
func SelectSizeHint(vals ...int) uint8 {
	max := 0
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	switch {
	case max <= 255:
		return 0
	case max < 65536:
		return 1
	default:
		return 2
	}
}

func writeSized(buf []byte, h uint8, v uint32) []byte {
	switch h {
	case 0:
		return append(buf, byte(v))
	case 1:
		return append(buf, byte(v), byte(v>>8))
	default:
		return appendU32(buf, v)
	}
}

func readSized(data []byte, h uint8) (uint32, []byte) {
	switch h {
	case 0:
		return uint32(data[0]), data[1:]
	case 1:
		return uint32(data[0]) | uint32(data[1])<<8, data[2:]
	default:
		return readU32(data), data[4:]
	}
}

// HeaderFields is the decoded form of one property's header-block entry.
type HeaderFields struct {
	Kind              Kind
	SizeHint          uint8
	Pod               uint8
	TimeSamplingIndex uint32
	HasTimeSampling   bool
	FirstChanged      uint32
	LastChanged        uint32
	HasChangedRange   bool
	Homogeneous       bool
	FullyConstant     bool
	Extent            uint8
	MetaIndex         uint8
	NumSamples        uint32
	Name              string
	InlineMeta        string
}

// isDefaultRange reports whether (first,last) is one of the two ranges the
// header block may omit: (0,0) -- never changed, or (1,numSamples-1) --
// changed on every sample after the first (spec §4.8 bit 9).
func isDefaultRange(first, last, numSamples uint32) bool {
	if first == 0 && last == 0 {
		return true
	}
	return first == 1 && numSamples > 0 && last == numSamples-1
}

// EncodeLeafHeader renders the header-block bytes for a scalar or array
// property (spec §4.8).
func EncodeLeafHeader(p *Property, metaIndex uint8, inlineMeta string, firstChanged, lastChanged uint32, homogeneousDims bool) []byte {
	numSamples := uint32(p.NumSamples())
	nonDefault := !isDefaultRange(firstChanged, lastChanged, numSamples)
	fullyConstant := firstChanged == 0 && lastChanged == 0

	h := SelectSizeHint(len(p.Name), len(inlineMeta), int(numSamples), p.TimeSamplingIndex)

	info := uint32(p.Kind) & infoKindMask
	info |= uint32(h) << 2
	info |= (uint32(p.DataType.Pod) << 4) & infoPodMask
	if p.TimeSamplingIndex != 0 {
		info |= infoTimeSampling
	}
	if nonDefault {
		info |= infoChangedRange
	}
	if homogeneousDims {
		info |= infoHomogeneous
	}
	if fullyConstant {
		info |= infoConstant
	}
	info |= (uint32(p.DataType.Extent) << 12) & infoExtentMask
	info |= uint32(metaIndex) << 20

	buf := appendU32(nil, info)
	buf = writeSized(buf, h, numSamples)
	if nonDefault {
		buf = writeSized(buf, h, firstChanged)
		buf = writeSized(buf, h, lastChanged)
	}
	if p.TimeSamplingIndex != 0 {
		buf = writeSized(buf, h, uint32(p.TimeSamplingIndex))
	}
	buf = writeSized(buf, h, uint32(len(p.Name)))
	buf = append(buf, p.Name...)
	if metaIndex == metadata.InlineIndex {
		buf = writeSized(buf, h, uint32(len(inlineMeta)))
		buf = append(buf, inlineMeta...)
	}
	return buf
}

// EncodeCompoundHeader renders the header-block bytes for a compound
// property, which carries no sample-related fields.
func EncodeCompoundHeader(p *Property, metaIndex uint8, inlineMeta string) []byte {
	h := SelectSizeHint(len(p.Name), len(inlineMeta))

	info := uint32(KindCompound) & infoKindMask
	info |= uint32(h) << 2
	info |= uint32(metaIndex) << 20

	buf := appendU32(nil, info)
	buf = writeSized(buf, h, uint32(len(p.Name)))
	buf = append(buf, p.Name...)
	if metaIndex == metadata.InlineIndex {
		buf = writeSized(buf, h, uint32(len(inlineMeta)))
		buf = append(buf, inlineMeta...)
	}
	return buf
}

// DecodeHeader parses one header-block entry starting at data, returning
// the parsed fields and the remaining bytes after this entry.
func DecodeHeader(data []byte) (HeaderFields, []byte) {
	info := readU32(data)
	data = data[4:]

	var f HeaderFields
	f.Kind = Kind(info & infoKindMask)
	f.SizeHint = uint8((info & infoSizeHintMask) >> 2)
	f.Pod = uint8((info & infoPodMask) >> 4)
	f.HasTimeSampling = info&infoTimeSampling != 0
	f.HasChangedRange = info&infoChangedRange != 0
	f.Homogeneous = info&infoHomogeneous != 0
	f.FullyConstant = info&infoConstant != 0
	f.Extent = uint8((info & infoExtentMask) >> 12)
	f.MetaIndex = uint8((info & infoMetaMask) >> 20)

	if f.Kind != KindCompound {
		f.NumSamples, data = readSized(data, f.SizeHint)
		if f.HasChangedRange {
			f.FirstChanged, data = readSized(data, f.SizeHint)
			f.LastChanged, data = readSized(data, f.SizeHint)
		} else if f.FullyConstant || f.NumSamples == 0 {
			f.FirstChanged, f.LastChanged = 0, 0
		} else {
			f.FirstChanged, f.LastChanged = 1, f.NumSamples-1
		}
	}
	if f.HasTimeSampling {
		f.TimeSamplingIndex, data = readSized(data, f.SizeHint)
	}

	var nameLen uint32
	nameLen, data = readSized(data, f.SizeHint)
	f.Name = string(data[:nameLen])
	data = data[nameLen:]

	if f.MetaIndex == metadata.InlineIndex {
		var metaLen uint32
		metaLen, data = readSized(data, f.SizeHint)
		f.InlineMeta = string(data[:metaLen])
		data = data[metaLen:]
	}

	return f, data
}
