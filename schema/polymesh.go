package schema

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// PolyMeshSample is one time sample of a polygon mesh (spec §4.11 "Schema
// reader (mesh example)").
type PolyMeshSample struct {
	Positions   []float32 // xyz triples
	FaceCounts  []int32
	FaceIndices []int32
	Normals     []float32 // optional, xyz triples
	UVs         []float32 // optional, uv pairs
	Box         Box3      // computed on read, ignored on write
}

// PolyMeshBuilder accumulates samples for a PolyMesh object under
// construction.
type PolyMeshBuilder struct{ *builder }

// NewPolyMesh returns a builder for a PolyMesh object named name.
func NewPolyMesh(name string) *PolyMeshBuilder {
	return &PolyMeshBuilder{newBuilder(name, TagPolyMesh, ".geom")}
}

// AddSample appends one sample. Normals and UVs are only ever emitted as
// properties if present on the first sample that carries them.
func (b *PolyMeshBuilder) AddSample(s PolyMeshSample) {
	b.arrayProp("P", datatype.New(datatype.Float32, 3)).
		AddArraySample(property.EncodeFloat32s(s.Positions), nil)
	b.arrayProp(".faceCounts", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.FaceCounts), nil)
	b.arrayProp(".faceIndices", datatype.New(datatype.Int32, 1)).
		AddArraySample(property.EncodeInt32s(s.FaceIndices), nil)
	if len(s.Normals) > 0 {
		b.arrayProp("N", datatype.New(datatype.Float32, 3)).
			AddArraySample(property.EncodeFloat32s(s.Normals), nil)
	}
	if len(s.UVs) > 0 {
		b.arrayProp("uv", datatype.New(datatype.Float32, 2)).
			AddArraySample(property.EncodeFloat32s(s.UVs), nil)
	}
}

// IPolyMesh is a lazy reader over a PolyMesh object.
type IPolyMesh struct{ *reader }

// OpenPolyMesh opens obj as a PolyMesh, failing if its schema tag does not
// contain "PolyMesh".
func OpenPolyMesh(obj *object.IObject, lookup property.PoolLookup) (*IPolyMesh, error) {
	r, err := openReader(obj, lookup, "PolyMesh")
	if err != nil {
		return nil, err
	}
	return &IPolyMesh{r}, nil
}

// NumSamples returns the number of samples, driven by the positions property.
func (m *IPolyMesh) NumSamples() (int, error) {
	p, err := mustArray(m.reader, "P")
	if err != nil {
		return 0, err
	}
	return p.NumSamples(), nil
}

// Sample decodes logical sample i, computing its bounding box from positions.
func (m *IPolyMesh) Sample(i int) (PolyMeshSample, error) {
	var s PolyMeshSample

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

	if n, ok, err := m.openArray("N"); err != nil {
		return s, err
	} else if ok {
		data, _, err := n.GetSample(i)
		if err != nil {
			return s, err
		}
		s.Normals = property.DecodeFloat32s(data)
	}

	if uv, ok, err := m.openArray("uv"); err != nil {
		return s, err
	} else if ok {
		data, _, err := uv.GetSample(i)
		if err != nil {
			return s, err
		}
		s.UVs = property.DecodeFloat32s(data)
	}

	return s, nil
}
