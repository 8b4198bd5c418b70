package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// PointsSample is one time sample of a point cloud: positions with optional
// per-point ids and velocities.
type PointsSample struct {
	Positions  []float32 // xyz triples
	IDs        []uint64  // optional, one per point
	Velocities []float32 // optional, xyz triples
	Box        Box3
}

// PointsBuilder accumulates samples for a Points object under construction.
type PointsBuilder struct{ *builder }

// NewPoints returns a builder for a Points object named name.
func NewPoints(name string) *PointsBuilder {
	return &PointsBuilder{newBuilder(name, TagPoints, ".geom")}
}

// AddSample appends one sample.
func (b *PointsBuilder) AddSample(s PointsSample) {
	b.arrayProp("P", datatype.New(datatype.Float32, 3)).
		AddArraySample(property.EncodeFloat32s(s.Positions), nil)
	if len(s.IDs) > 0 {
		idData := make([]byte, 0, len(s.IDs)*8)
		for _, id := range s.IDs {
			idData = append(idData,
				byte(id), byte(id>>8), byte(id>>16), byte(id>>24),
				byte(id>>32), byte(id>>40), byte(id>>48), byte(id>>56))
		}
		b.arrayProp(".pointIds", datatype.New(datatype.Uint64, 1)).
			AddArraySample(idData, nil)
	}
	if len(s.Velocities) > 0 {
		b.arrayProp(".velocities", datatype.New(datatype.Float32, 3)).
			AddArraySample(property.EncodeFloat32s(s.Velocities), nil)
	}
}

// IPoints is a lazy reader over a Points object.
type IPoints struct{ *reader }

// OpenPoints opens obj as a point cloud.
func OpenPoints(obj *object.IObject, lookup property.PoolLookup) (*IPoints, error) {
	r, err := openReader(obj, lookup, "Points")
	if err != nil {
		return nil, err
	}
	return &IPoints{r}, nil
}

// NumSamples returns the number of samples.
func (p *IPoints) NumSamples() (int, error) {
	a, err := mustArray(p.reader, "P")
	if err != nil {
		return 0, err
	}
	return a.NumSamples(), nil
}

// Sample decodes logical sample i, computing its bounding box from positions.
func (pt *IPoints) Sample(i int) (PointsSample, error) {
	var s PointsSample

	p, err := mustArray(pt.reader, "P")
	if err != nil {
		return s, err
	}
	posData, _, err := p.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Positions = property.DecodeFloat32s(posData)
	s.Box = boundsOf(s.Positions)

	if idArr, ok, err := pt.openArray(".pointIds"); err != nil {
		return s, err
	} else if ok {
		data, _, err := idArr.GetSample(i)
		if err != nil {
			return s, err
		}
		s.IDs = make([]uint64, len(data)/8)
		for j := range s.IDs {
			b := data[j*8:]
			s.IDs[j] = uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
				uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		}
	}

	if velArr, ok, err := pt.openArray(".velocities"); err != nil {
		return s, err
	} else if ok {
		data, _, err := velArr.GetSample(i)
		if err != nil {
			return s, err
		}
		s.Velocities = property.DecodeFloat32s(data)
	}

	return s, nil
}
