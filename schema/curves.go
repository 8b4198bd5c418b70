package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// CurvesSample is one time sample of a curve bundle: positions partitioned
// into curves by a per-curve vertex count, with an optional per-vertex width.
type CurvesSample struct {
	Positions []float32 // xyz triples
	NVertices []int32   // vertex count per curve
	Widths    []float32 // optional, one per vertex
	Box       Box3
}

// CurvesBuilder accumulates samples for a Curves object under construction.
type CurvesBuilder struct{ *builder }

// NewCurves returns a builder for a Curves object named name.
func NewCurves(name string) *CurvesBuilder {
	return &CurvesBuilder{newBuilder(name, TagCurves, ".geom")}
}

// AddSample appends one sample.
func (b *CurvesBuilder) AddSample(s CurvesSample) {
	b.arrayProp("P", datatype.New(datatype.Float32, 3)).
		AddArraySample(property.EncodeFloat32s(s.Positions), nil)
	b.arrayProp(".curvesNumVertices", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.NVertices), nil)
	if len(s.Widths) > 0 {
		b.arrayProp(".widths", datatype.New(datatype.Float32, 1)).
			AddArraySample(property.EncodeFloat32s(s.Widths), nil)
	}
}

// ICurves is a lazy reader over a Curves object.
type ICurves struct{ *reader }

// OpenCurves opens obj as a curve bundle.
func OpenCurves(obj *object.IObject, lookup property.PoolLookup) (*ICurves, error) {
	r, err := openReader(obj, lookup, "Curves")
	if err != nil {
		return nil, err
	}
	return &ICurves{r}, nil
}

// NumSamples returns the number of samples.
func (c *ICurves) NumSamples() (int, error) {
	p, err := mustArray(c.reader, "P")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i, computing its bounding box from positions.
func (c *ICurves) Sample(i int) (CurvesSample, error) {
	var s CurvesSample

	p, err := mustArray(c.reader, "P")
	if err != nil {
		return s, err
	}
	posData, _, err := p.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Positions = property.DecodeFloat32s(posData)
	s.Box = boundsOf(s.Positions)

	nv, err := mustArray(c.reader, ".curvesNumVertices")
	if err != nil {
		return s, err
	}
	nvData, _, err := nv.GetSample(i)
	if err != nil {
		return s, err
	}
	s.NVertices = property.DecodeInt32s(nvData)

	if w, ok, err := c.openArray(".widths"); err != nil {
		return s, err
	} else if ok {
		data, _, err := w.GetSample(i)
		if err != nil {
			return s, err
		}
		s.Widths = property.DecodeFloat32s(data)
	}

	return s, nil
}
