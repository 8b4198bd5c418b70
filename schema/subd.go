package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// SubDSample is one time sample of a subdivision surface: the same
// positional/topology contract as PolyMesh, without normals/UVs.
type SubDSample struct {
	Positions   []float32
	FaceCounts  []int32
	FaceIndices []int32
	Box         Box3
}

// SubDBuilder accumulates samples for a SubD object under construction.
type SubDBuilder struct{ *builder }

// NewSubD returns a builder for a SubD object named name.
func NewSubD(name string) *SubDBuilder {
	return &SubDBuilder{newBuilder(name, TagSubD, ".geom")}
}

// AddSample appends one sample.
func (b *SubDBuilder) AddSample(s SubDSample) {
	b.arrayProp("P", datatype.New(datatype.Float32, 3)).
		AddArraySample(property.EncodeFloat32s(s.Positions), nil)
	b.arrayProp(".faceCounts", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.FaceCounts), nil)
	b.arrayProp(".faceIndices", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.FaceIndices), nil)
}

// ISubD is a lazy reader over a SubD object.
type ISubD struct{ *reader }

// OpenSubD opens obj as a subdivision surface.
func OpenSubD(obj *object.IObject, lookup property.PoolLookup) (*ISubD, error) {
	r, err := openReader(obj, lookup, "SubD")
	if err != nil {
		return nil, err
	}
	return &ISubD{r}, nil
}

// NumSamples returns the number of samples.
func (m *ISubD) NumSamples() (int, error) {
	p, err := mustArray(m.reader, "P")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i, computing its bounding box from positions.
func (m *ISubD) Sample(i int) (SubDSample, error) {
	var s SubDSample

	p, err := mustArray(m.reader, "P")
	if err != nil {
		return s, err
	}
	posData, _, err := p.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Positions = property.DecodeFloat32s(posData)
	s.Box = boundsOf(s.Positions)

	fc, err := mustArray(m.reader, ".faceCounts")
	if err != nil {
		return s, err
	}
	fcData, _, err := fc.GetSample(i)
	if err != nil {
		return s, err
	}
	s.FaceCounts = property.DecodeInt32s(fcData)

	fi, err := mustArray(m.reader, ".faceIndices")
	if err != nil {
		return s, err
	}
	fiData, _, err := fi.GetSample(i)
	if err != nil {
		return s, err
	}
	s.FaceIndices = property.DecodeInt32s(fiData)

	return s, nil
}
