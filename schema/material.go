package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// StandardSurfaceSample holds the fixed parameter table of a standard-surface
// shading model (spec D4), stored under .material/standardSurface.
type StandardSurfaceSample struct {
	BaseColor        [3]float32
	Base             float32
	Metalness        float32
	SpecularColor    [3]float32
	SpecularRoughness float32
	SpecularIOR      float32
	Coat             float32
	CoatRoughness    float32
	EmissionColor    [3]float32
	Emission         float32
}

// MaterialBuilder accumulates samples for a Material object under
// construction.
type MaterialBuilder struct{ *builder }

// NewMaterial returns a builder for a Material object named name.
func NewMaterial(name string) *MaterialBuilder {
	return &MaterialBuilder{newBuilder(name, TagMaterial, ".material")}
}

// AddSample appends one sample, storing each parameter as a scalar Float32
// or Float32[3] property under .material/standardSurface.
func (b *MaterialBuilder) AddSample(s StandardSurfaceSample) {
	ss := property.NewCompound("standardSurface")
	if existing := b.geom.ChildByName("standardSurface"); existing != nil {
		ss = existing
	} else {
		b.geom.AddChild(ss)
	}

	f1 := datatype.New(datatype.Float32, 1)
	f3 := datatype.New(datatype.Float32, 3)

	addScalar := func(name string, dt datatype.DataType, data []byte) {
		p := ss.ChildByName(name)
		if p == nil {
			p = property.NewScalar(name, dt)
			ss.AddChild(p)
		}
		p.AddScalarSample(data)
	}

	addScalar("baseColor", f3, property.EncodeFloat32s(s.BaseColor[:]))
	addScalar("base", f1, property.EncodeFloat32s([]float32{s.Base}))
	addScalar("metalness", f1, property.EncodeFloat32s([]float32{s.Metalness}))
	addScalar("specularColor", f3, property.EncodeFloat32s(s.SpecularColor[:]))
	addScalar("specularRoughness", f1, property.EncodeFloat32s([]float32{s.SpecularRoughness}))
	addScalar("specularIOR", f1, property.EncodeFloat32s([]float32{s.SpecularIOR}))
	addScalar("coat", f1, property.EncodeFloat32s([]float32{s.Coat}))
	addScalar("coatRoughness", f1, property.EncodeFloat32s([]float32{s.CoatRoughness}))
	addScalar("emissionColor", f3, property.EncodeFloat32s(s.EmissionColor[:]))
	addScalar("emission", f1, property.EncodeFloat32s([]float32{s.Emission}))
}

// IMaterial is a lazy reader over a Material object.
type IMaterial struct{ *reader }

// OpenMaterial opens obj as a material.
func OpenMaterial(obj *object.IObject, lookup property.PoolLookup) (*IMaterial, error) {
	r, err := openReader(obj, lookup, "Material")
	if err != nil {
		return nil, err
	}
	return &IMaterial{r}, nil
}

func (m *IMaterial) standardSurface() (*property.ICompoundProperty, error) {
	idx, ok := m.geom.IndexByName("standardSurface")
	if !ok {
		return nil, errStandardSurfaceMissing
	}
	return m.geom.OpenChildCompound(idx)
}

// NumSamples returns the number of samples.
func (m *IMaterial) NumSamples() (int, error) {
	ss, err := m.standardSurface()
	if err != nil {
		return 0, err
	}
	idx, ok := ss.IndexByName("base")
	if !ok {
		return 0, errStandardSurfaceMissing
	}
	p, err := ss.OpenScalar(idx)
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i.
func (m *IMaterial) Sample(i int) (StandardSurfaceSample, error) {
	var s StandardSurfaceSample

	ss, err := m.standardSurface()
	if err != nil {
		return s, err
	}

	getVec3 := func(name string) ([3]float32, error) {
		var v [3]float32
		idx, ok := ss.IndexByName(name)
		if !ok {
			return v, errStandardSurfaceMissing
		}
		p, err := ss.OpenScalar(idx)
		if err != nil {
			return v, err
		}
		b, err := p.GetSample(i)
		if err != nil {
			return v, err
		}
		copy(v[:], property.DecodeFloat32s(b))
		return v, nil
	}
	getF1 := func(name string) (float32, error) {
		idx, ok := ss.IndexByName(name)
		if !ok {
			return 0, errStandardSurfaceMissing
		}
		p, err := ss.OpenScalar(idx)
		if err != nil {
			return 0, err
		}
		b, err := p.GetSample(i)
		if err != nil {
			return 0, err
		}
		return property.DecodeFloat32s(b)[0], nil
	}

	var err2 error
	if s.BaseColor, err2 = getVec3("baseColor"); err2 != nil {
		return s, err2
	}
	if s.Base, err2 = getF1("base"); err2 != nil {
		return s, err2
	}
	if s.Metalness, err2 = getF1("metalness"); err2 != nil {
		return s, err2
	}
	if s.SpecularColor, err2 = getVec3("specularColor"); err2 != nil {
		return s, err2
	}
	if s.SpecularRoughness, err2 = getF1("specularRoughness"); err2 != nil {
		return s, err2
	}
	if s.SpecularIOR, err2 = getF1("specularIOR"); err2 != nil {
		return s, err2
	}
	if s.Coat, err2 = getF1("coat"); err2 != nil {
		return s, err2
	}
	if s.CoatRoughness, err2 = getF1("coatRoughness"); err2 != nil {
		return s, err2
	}
	if s.EmissionColor, err2 = getVec3("emissionColor"); err2 != nil {
		return s, err2
	}
	if s.Emission, err2 = getF1("emission"); err2 != nil {
		return s, err2
	}
	return s, nil
}
