// Package property implements the compound/scalar/array property tree:
// sample tracks, changed-sample-range bookkeeping, per-property hashing,
// and the bit-packed header serialization (spec §3, §4.6-4.9, §4.11).
package property

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/metadata"
)

// Kind is the property-kind tag stored in bits 0-1 of the header info word.
type Kind uint8

const (
	KindCompound Kind = iota
	KindScalar
	KindArray
	KindScalarLikeArray
)

// ScalarSample is one time-sampled value of a scalar property: an
// already-encoded payload in the wire format described by spec §4.6.
type ScalarSample struct {
	Data   []byte
	Digest *[16]byte // optional pre-computed digest
}

// ArraySample is one time-sampled value of an array property.
type ArraySample struct {
	Data   []byte
	Dims   []uint64
	Digest *[16]byte
}

// Property is the in-memory, writer-side representation of a node in the
// property tree: a tagged union of Compound / Scalar / Array (spec §3
// "Property"). Objects own one root Property (their top-level compound);
// schemas build further Properties beneath it.
type Property struct {
	Name              string
	Meta              *metadata.Map
	Kind              Kind
	TimeSamplingIndex int
	DataType          datatype.DataType // non-compound only

	Children      []*Property // compound only
	ScalarSamples []ScalarSample
	ArraySamples  []ArraySample
}

// NewCompound returns an empty compound property.
func NewCompound(name string) *Property {
	return &Property{Name: name, Kind: KindCompound, Meta: metadata.New()}
}

// NewScalar returns a scalar property with no samples yet.
func NewScalar(name string, dt datatype.DataType) *Property {
	return &Property{Name: name, Kind: KindScalar, DataType: dt, Meta: metadata.New()}
}

// NewArray returns an array property. scalarLike marks properties whose
// samples always have a single element (extent counted, rank<=1) but which
// are still represented with the array machinery -- spec's
// "scalar-like array" flag (kind tag 3).
func NewArray(name string, dt datatype.DataType, scalarLike bool) *Property {
	k := KindArray
	if scalarLike {
		k = KindScalarLikeArray
	}
	return &Property{Name: name, Kind: k, DataType: dt, Meta: metadata.New()}
}

// AddChild appends a child property to a compound.
func (p *Property) AddChild(child *Property) *Property {
	p.Children = append(p.Children, child)
	return p
}

// AddScalarSample appends one sample to a scalar property.
func (p *Property) AddScalarSample(data []byte) {
	p.ScalarSamples = append(p.ScalarSamples, ScalarSample{Data: data})
}

// AddArraySample appends one sample to an array property.
func (p *Property) AddArraySample(data []byte, dims []uint64) {
	p.ArraySamples = append(p.ArraySamples, ArraySample{Data: data, Dims: dims})
}

// NumSamples returns the number of samples for a leaf property, or 0 for a
// compound.
func (p *Property) NumSamples() int {
	switch p.Kind {
	case KindScalar:
		return len(p.ScalarSamples)
	case KindArray, KindScalarLikeArray:
		return len(p.ArraySamples)
	default:
		return 0
	}
}

// IsLeaf reports whether p is a scalar or array property.
func (p *Property) IsLeaf() bool {
	return p.Kind != KindCompound
}

// ChildByName returns the first child with the given name.
func (p *Property) ChildByName(name string) *Property {
	for _, c := range p.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
