package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// LightSample is one time sample of a light's core parameters.
type LightSample struct {
	Intensity float32
	Color     [3]float32
}

// LightBuilder accumulates samples for a Light object under construction.
type LightBuilder struct{ *builder }

// NewLight returns a builder for a Light object named name.
func NewLight(name string) *LightBuilder {
	return &LightBuilder{newBuilder(name, TagLight, ".light")}
}

// AddSample appends one sample.
func (b *LightBuilder) AddSample(s LightSample) {
	b.scalarProp(".intensity", datatype.New(datatype.Float32, 1)).
		AddScalarSample(property.EncodeFloat32s([]float32{s.Intensity}))
	b.scalarProp(".color", datatype.New(datatype.Float32, 3)).
		AddScalarSample(property.EncodeFloat32s(s.Color[:]))
}

// ILight is a lazy reader over a Light object.
type ILight struct{ *reader }

// OpenLight opens obj as a light.
func OpenLight(obj *object.IObject, lookup property.PoolLookup) (*ILight, error) {
	r, err := openReader(obj, lookup, "Light")
	if err != nil {
		return nil, err
	}
	return &ILight{r}, nil
}

// NumSamples returns the number of samples.
func (l *ILight) NumSamples() (int, error) {
	p, err := mustScalar(l.reader, ".intensity")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i.
func (l *ILight) Sample(i int) (LightSample, error) {
	var s LightSample

	ip, err := mustScalar(l.reader, ".intensity")
	if err != nil {
		return s, err
	}
	ib, err := ip.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Intensity = property.DecodeFloat32s(ib)[0]

	cp, err := mustScalar(l.reader, ".color")
	if err != nil {
		return s, err
	}
	cb, err := cp.GetSample(i)
	if err != nil {
		return s, err
	}
	copy(s.Color[:], property.DecodeFloat32s(cb))

	return s, nil
}
