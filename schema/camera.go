package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// CameraSample is one time sample of a camera's core lens parameters.
type CameraSample struct {
	FocalLength         float32
	LensSqueezeRatio    float32
	HorizontalAperture  float32
	VerticalAperture    float32
	NearClippingPlane   float32
	FarClippingPlane    float32
}

// CameraBuilder accumulates samples for a Camera object under construction.
type CameraBuilder struct{ *builder }

// NewCamera returns a builder for a Camera object named name.
func NewCamera(name string) *CameraBuilder {
	return &CameraBuilder{newBuilder(name, TagCamera, ".camera")}
}

// AddSample appends one sample.
func (b *CameraBuilder) AddSample(s CameraSample) {
	f32 := datatype.New(datatype.Float32, 1)
	b.scalarProp(".focalLength", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.FocalLength}))
	b.scalarProp(".lensSqueezeRatio", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.LensSqueezeRatio}))
	b.scalarProp(".horizontalAperture", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.HorizontalAperture}))
	b.scalarProp(".verticalAperture", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.VerticalAperture}))
	b.scalarProp(".nearClippingPlane", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.NearClippingPlane}))
	b.scalarProp(".farClippingPlane", f32).AddScalarSample(property.EncodeFloat32s([]float32{s.FarClippingPlane}))
}

// ICamera is a lazy reader over a Camera object.
type ICamera struct{ *reader }

// OpenCamera opens obj as a camera.
func OpenCamera(obj *object.IObject, lookup property.PoolLookup) (*ICamera, error) {
	r, err := openReader(obj, lookup, "Camera")
	if err != nil {
		return nil, err
	}
	return &ICamera{r}, nil
}

// NumSamples returns the number of samples.
func (c *ICamera) NumSamples() (int, error) {
	p, err := mustScalar(c.reader, ".focalLength")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i.
func (c *ICamera) Sample(i int) (CameraSample, error) {
	var s CameraSample
	get := func(name string) (float32, error) {
		p, err := mustScalar(c.reader, name)
		if err != nil {
			return 0, err
		}
		b, err := p.GetSample(i)
		if err != nil {
			return 0, err
		}
		return property.DecodeFloat32s(b)[0], nil
	}

	var err error
	if s.FocalLength, err = get(".focalLength"); err != nil {
		return s, err
	}
	if s.LensSqueezeRatio, err = get(".lensSqueezeRatio"); err != nil {
		return s, err
	}
	if s.HorizontalAperture, err = get(".horizontalAperture"); err != nil {
		return s, err
	}
	if s.VerticalAperture, err = get(".verticalAperture"); err != nil {
		return s, err
	}
	if s.NearClippingPlane, err = get(".nearClippingPlane"); err != nil {
		return s, err
	}
	if s.FarClippingPlane, err = get(".farClippingPlane"); err != nil {
		return s, err
	}
	return s, nil
}
