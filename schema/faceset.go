package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// FaceSetSample is one time sample of a named subset of a mesh's faces.
type FaceSetSample struct {
	Faces     []int32
	Exclusive bool
}

// FaceSetBuilder accumulates samples for a FaceSet object under construction.
type FaceSetBuilder struct{ *builder }

// NewFaceSet returns a builder for a FaceSet object named name.
func NewFaceSet(name string) *FaceSetBuilder {
	return &FaceSetBuilder{newBuilder(name, TagFaceSet, ".faceset")}
}

// AddSample appends one sample.
func (b *FaceSetBuilder) AddSample(s FaceSetSample) {
	b.arrayProp(".faces", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.Faces), nil)

	var exclusiveByte byte
	if s.Exclusive {
		exclusiveByte = 1
	}
	b.scalarProp(".exclusive", datatype.New(datatype.Bool, 1)).
		AddScalarSample([]byte{exclusiveByte})
}

// IFaceSet is a lazy reader over a FaceSet object.
type IFaceSet struct{ *reader }

// OpenFaceSet opens obj as a face set.
func OpenFaceSet(obj *object.IObject, lookup property.PoolLookup) (*IFaceSet, error) {
	r, err := openReader(obj, lookup, "FaceSet")
	if err != nil {
		return nil, err
	}
	return &IFaceSet{r}, nil
}

// NumSamples returns the number of samples.
func (f *IFaceSet) NumSamples() (int, error) {
	a, err := mustArray(f.reader, ".faces")
	if err != nil {
		return 0, err
	}
	return a.NumSamples(), nil
}

// Sample decodes logical sample i.
func (f *IFaceSet) Sample(i int) (FaceSetSample, error) {
	var s FaceSetSample

	fa, err := mustArray(f.reader, ".faces")
	if err != nil {
		return s, err
	}
	data, _, err := fa.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Faces = property.DecodeInt32s(data)

	ex, err := mustScalar(f.reader, ".exclusive")
	if err != nil {
		return s, err
	}
	eb, err := ex.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Exclusive = len(eb) > 0 && eb[0] != 0

	return s, nil
}
