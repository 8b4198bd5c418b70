package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// NuPatchSample is one time sample of a NURBS patch: control points plus
// the surface's degree and knot vectors in each parametric direction.
type NuPatchSample struct {
	Positions []float32 // xyz triples, NumU*NumV control points
	NumU      int32
	NumV      int32
	UOrder    int32
	VOrder    int32
	UKnots    []float64
	VKnots    []float64
}

// NuPatchBuilder accumulates samples for a NuPatch object under construction.
type NuPatchBuilder struct{ *builder }

// NewNuPatch returns a builder for a NuPatch object named name.
func NewNuPatch(name string) *NuPatchBuilder {
	return &NuPatchBuilder{newBuilder(name, TagNuPatch, ".nurbs")}
}

// AddSample appends one sample.
func (b *NuPatchBuilder) AddSample(s NuPatchSample) {
	i1 := datatype.New(datatype.Int32, 1)

	b.arrayProp("P", datatype.New(datatype.Float32, 3)).
		AddArraySample(property.EncodeFloat32s(s.Positions), nil)
	b.scalarProp(".nu", i1).AddScalarSample(property.EncodeInt32s([]int32{s.NumU}))
	b.scalarProp(".nv", i1).AddScalarSample(property.EncodeInt32s([]int32{s.NumV}))
	b.scalarProp(".uOrder", i1).AddScalarSample(property.EncodeInt32s([]int32{s.UOrder}))
	b.scalarProp(".vOrder", i1).AddScalarSample(property.EncodeInt32s([]int32{s.VOrder}))
	b.arrayProp(".uKnot", datatype.New(datatype.Float64, 1)).
		AddArraySample(property.EncodeFloat64s(s.UKnots), nil)
	b.arrayProp(".vKnot", datatype.New(datatype.Float64, 1)).
		AddArraySample(property.EncodeFloat64s(s.VKnots), nil)
}

// INuPatch is a lazy reader over a NuPatch object.
type INuPatch struct{ *reader }

// OpenNuPatch opens obj as a NURBS patch.
func OpenNuPatch(obj *object.IObject, lookup property.PoolLookup) (*INuPatch, error) {
	r, err := openReader(obj, lookup, "NuPatch")
	if err != nil {
		return nil, err
	}
	return &INuPatch{r}, nil
}

// NumSamples returns the number of samples.
func (n *INuPatch) NumSamples() (int, error) {
	p, err := mustArray(n.reader, "P")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i.
func (n *INuPatch) Sample(i int) (NuPatchSample, error) {
	var s NuPatchSample

	p, err := mustArray(n.reader, "P")
	if err != nil {
		return s, err
	}
	posData, _, err := p.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Positions = property.DecodeFloat32s(posData)

	getI1 := func(name string) (int32, error) {
		sp, err := mustScalar(n.reader, name)
		if err != nil {
			return 0, err
		}
		b, err := sp.GetSample(i)
		if err != nil {
			return 0, err
		}
		return property.DecodeInt32s(b)[0], nil
	}

	if s.NumU, err = getI1(".nu"); err != nil {
		return s, err
	}
	if s.NumV, err = getI1(".nv"); err != nil {
		return s, err
	}
	if s.UOrder, err = getI1(".uOrder"); err != nil {
		return s, err
	}
	if s.VOrder, err = getI1(".vOrder"); err != nil {
		return s, err
	}

	uk, err := mustArray(n.reader, ".uKnot")
	if err != nil {
		return s, err
	}
	ukData, _, err := uk.GetSample(i)
	if err != nil {
		return s, err
	}
	s.UKnots = property.DecodeFloat64s(ukData)

	vk, err := mustArray(n.reader, ".vKnot")
	if err != nil {
		return s, err
	}
	vkData, _, err := vk.GetSample(i)
	if err != nil {
		return s, err
	}
	s.VKnots = property.DecodeFloat64s(vkData)

	return s, nil
}
