package property

import (
	"github.com/ogawa-archive/alembic/contentkey"
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/ogawa-archive/alembic/timesampling"
)

// WriteResult carries what the parent node needs after emitting a property:
// the position of the property's own group, the header-block bytes that
// describe it to a parent compound's header block, and the two hash forms
// defined by spec §4.8 (WithHeader for use as a nested child's contribution,
// NoHeader/"data hash" for use directly in an owning object's headers block).
type WriteResult struct {
	GroupPos    uint64
	HeaderBytes []byte
	WithHeader  [2]uint64
	NoHeader    [2]uint64
}

// WriteProperty emits p (recursively, post-order) and returns its group
// position and hashes (spec §4.7, §4.8, §4.10 step 1-2).
func WriteProperty(w *stream.Writer, dedup *contentkey.DedupMap, pool *metadata.Pool, tsTable *timesampling.Table, p *Property) (WriteResult, error) {
	if p.Kind == KindCompound {
		return writeCompound(w, dedup, pool, tsTable, p)
	}
	return writeLeaf(w, dedup, pool, tsTable, p)
}

func writeCompound(w *stream.Writer, dedup *contentkey.DedupMap, pool *metadata.Pool, tsTable *timesampling.Table, p *Property) (WriteResult, error) {
	childHashes := make([][2]uint64, 0, len(p.Children))
	var headerBlock []byte
	childPointers := make([]uint64, 0, len(p.Children)+1)

	for _, child := range p.Children {
		res, err := WriteProperty(w, dedup, pool, tsTable, child)
		if err != nil {
			return WriteResult{}, err
		}
		childPointers = append(childPointers, tree.MakeGroupOffset(res.GroupPos))
		childHashes = append(childHashes, res.WithHeader)
		headerBlock = append(headerBlock, res.HeaderBytes...)
	}

	headersPos, err := tree.WriteData(w, headerBlock)
	if err != nil {
		return WriteResult{}, err
	}
	childPointers = append(childPointers, tree.MakeDataOffset(headersPos))

	groupPos, err := tree.WriteGroup(w, childPointers)
	if err != nil {
		return WriteResult{}, err
	}

	metaIndex, inlineMeta := pool.Add(p.Meta)
	myHeaderBytes := EncodeCompoundHeader(p, metaIndex, inlineMeta)

	dh0, dh1 := compoundChildConcatHash(childHashes)
	oh0, oh1 := compoundHash(childHashes, myHeaderBytes)

	return WriteResult{
		GroupPos:    groupPos,
		HeaderBytes: myHeaderBytes,
		WithHeader:  [2]uint64{oh0, oh1},
		NoHeader:    [2]uint64{dh0, dh1},
	}, nil
}

func writeLeaf(w *stream.Writer, dedup *contentkey.DedupMap, pool *metadata.Pool, tsTable *timesampling.Table, p *Property) (WriteResult, error) {
	isArray := p.Kind == KindArray || p.Kind == KindScalarLikeArray
	numSamples := p.NumSamples()
	elementSize := p.DataType.ElementSize()

	keys := make([]contentkey.Key, numSamples)
	sampleHashes := make([][2]uint64, numSamples)
	elementCounts := make([]int, numSamples)

	for i := 0; i < numSamples; i++ {
		var data []byte
		var dims []uint64
		if isArray {
			data, dims = p.ArraySamples[i].Data, p.ArraySamples[i].Dims
		} else {
			data = p.ScalarSamples[i].Data
		}

		keys[i] = contentkey.FromBytes(data, p.DataType.Pod, elementSize)
		h0, h1 := sampleHash(keys[i].Digest, dims)
		sampleHashes[i] = [2]uint64{h0, h1}
		elementCounts[i] = elementCount(data, dims, p.DataType)
	}

	running0, running1 := runningSampleHash(sampleHashes)

	var (
		childList             []uint64
		firstChanged, lastChanged uint32
		prevKeySet            bool
		prevKey               contentkey.Key
		prevDataPos           uint64
		prevDimsPtr           uint64
	)

	for i := 0; i < numSamples; i++ {
		if i != 0 && prevKeySet && keys[i] == prevKey {
			continue
		}

		if i > 0 && firstChanged != 0 {
			for j := lastChanged + 1; j < uint32(i); j++ {
				childList = append(childList, tree.MakeDataOffset(prevDataPos))
				if isArray {
					childList = append(childList, prevDimsPtr)
				}
			}
		}

		var data []byte
		var dims []uint64
		if isArray {
			data, dims = p.ArraySamples[i].Data, p.ArraySamples[i].Dims
		} else {
			data = p.ScalarSamples[i].Data
		}

		dataPos, err := contentkey.WriteKeyedDataWithKey(w, dedup, data, keys[i])
		if err != nil {
			return WriteResult{}, err
		}
		childList = append(childList, tree.MakeDataOffset(dataPos))

		var dimsPtr uint64
		if isArray {
			dimsPtr, err = writeDimsFor(w, dims, p.DataType.Pod.IsString())
			if err != nil {
				return WriteResult{}, err
			}
			childList = append(childList, dimsPtr)
		}

		prevKey, prevKeySet = keys[i], true
		prevDataPos, prevDimsPtr = dataPos, dimsPtr

		if i != 0 {
			if firstChanged == 0 {
				firstChanged = uint32(i)
			}
			lastChanged = uint32(i)
		}
	}

	numWritten := uint32(numSamples)
	if lastChanged == 0 && numSamples > 0 {
		numWritten = 1
	}
	tsTable.ObserveSampleCount(p.TimeSamplingIndex, numWritten)

	homogeneous := true
	for i := 1; i < len(elementCounts); i++ {
		if elementCounts[i] != elementCounts[0] {
			homogeneous = false
			break
		}
	}
	if numSamples == 0 {
		homogeneous = false
	}

	groupPos, err := tree.WriteGroup(w, childList)
	if err != nil {
		return WriteResult{}, err
	}

	metaIndex, inlineMeta := pool.Add(p.Meta)
	headerBytes := EncodeLeafHeader(p, metaIndex, inlineMeta, firstChanged, lastChanged, isArray && homogeneous)

	h0, h1 := leafHash(headerBytes, running0, running1)

	return WriteResult{
		GroupPos:    groupPos,
		HeaderBytes: headerBytes,
		WithHeader:  [2]uint64{h0, h1},
		NoHeader:    [2]uint64{h0, h1},
	}, nil
}

// writeDimsFor lays out an array sample's dimensions block, or returns the
// implicit "empty data" sentinel when dims.len() <= 1 and the pod is not a
// string type (spec §4.6 "Array dimensions").
func writeDimsFor(w *stream.Writer, dims []uint64, isString bool) (uint64, error) {
	if len(dims) <= 1 && !isString {
		return tree.MakeDataOffset(0), nil
	}

	buf := make([]byte, 0, len(dims)*8)
	for _, d := range dims {
		buf = appendU64(buf, d)
	}

	pos, err := tree.WriteData(w, buf)
	if err != nil {
		return 0, err
	}
	return tree.MakeDataOffset(pos), nil
}

func elementCount(data []byte, dims []uint64, dt datatype.DataType) int {
	if len(dims) > 0 {
		product := 1
		for _, d := range dims {
			product *= int(d)
		}
		return product
	}
	esz := dt.ElementSize()
	if esz == 0 {
		return 0
	}
	return len(data) / esz
}
