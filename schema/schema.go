// Package schema implements the canonical geometry/shading schemas built on
// top of the property tree: a uniform "schema" metadata tag plus a fixed set
// of property paths under the object's top-level compound (spec §2, §4.11).
// PolyMesh and Xform are fully specified; the remaining eight follow the
// same contract over their own canonical paths.
package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// Schema tag values stored under an object's "schema" metadata key.
const (
	TagPolyMesh = "AbcGeom_PolyMesh_v1"
	TagSubD     = "AbcGeom_SubD_v1"
	TagCurves   = "AbcGeom_Curves_v1"
	TagPoints   = "AbcGeom_Points_v1"
	TagCamera   = "AbcGeom_Camera_v1"
	TagXform    = "AbcGeom_Xform_v1"
	TagNuPatch  = "AbcGeom_NuPatch_v1"
	TagLight    = "AbcGeom_Light_v1"
	TagFaceSet  = "AbcGeom_FaceSet_v1"
	TagMaterial = "AbcMaterial_Material_v1"
)

// Box3 is an axis-aligned bounding box over float32 positions.
type Box3 struct {
	Min [3]float32
	Max [3]float32
}

// emptyBox3 returns a box whose min/max are inverted, ready to be expanded.
func emptyBox3() Box3 {
	return Box3{
		Min: [3]float32{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))},
		Max: [3]float32{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))},
	}
}

// boundsOf computes the bounding box of a flat xyz-triple position array
// (spec item D3, grounded on the original renderer's min/max accumulation).
func boundsOf(positions []float32) Box3 {
	b := emptyBox3()
	for i := 0; i+2 < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := positions[i+axis]
			if v < b.Min[axis] {
				b.Min[axis] = v
			}
			if v > b.Max[axis] {
				b.Max[axis] = v
			}
		}
	}
	if len(positions) == 0 {
		return Box3{}
	}
	return b
}

// builder is the shared scaffolding every schema writer embeds: an object
// tagged with its schema string, and a single top-level compound property.
type builder struct {
	Object *object.Object
	geom   *property.Property
}

func newBuilder(name, tag, compoundName string) *builder {
	obj := object.New(name)
	obj.Meta.Set("schema", tag)
	geom := property.NewCompound(compoundName)
	obj.Properties = geom
	return &builder{Object: obj, geom: geom}
}

func (b *builder) arrayProp(name string, dt datatype.DataType) *property.Property {
	if p := b.geom.ChildByName(name); p != nil {
		return p
	}
	p := property.NewArray(name, dt, false)
	b.geom.AddChild(p)
	return p
}

func (b *builder) scalarProp(name string, dt datatype.DataType) *property.Property {
	if p := b.geom.ChildByName(name); p != nil {
		return p
	}
	p := property.NewScalar(name, dt)
	b.geom.AddChild(p)
	return p
}

// reader is the shared scaffolding every schema reader embeds.
type reader struct {
	obj   *object.IObject
	geom  *property.ICompoundProperty
	lookup property.PoolLookup
}

// openReader verifies the object's schema tag contains want and opens its
// top-level compound property.
func openReader(obj *object.IObject, lookup property.PoolLookup, want string) (*reader, error) {
	tag, ok := obj.Schema()
	if !ok || !strings.Contains(tag, want) {
		return nil, fmt.Errorf("%w: object %q has schema %q, want one containing %q", errs.ErrSchemaMismatch, obj.Name(), tag, want)
	}
	geom, err := obj.Properties()
	if err != nil {
		return nil, err
	}
	return &reader{obj: obj, geom: geom, lookup: lookup}, nil
}

func (r *reader) openArray(name string) (*property.IArrayProperty, bool, error) {
	idx, ok := r.geom.IndexByName(name)
	if !ok {
		return nil, false, nil
	}
	a, err := r.geom.OpenArray(idx)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (r *reader) openScalar(name string) (*property.IScalarProperty, bool, error) {
	idx, ok := r.geom.IndexByName(name)
	if !ok {
		return nil, false, nil
	}
	s, err := r.geom.OpenScalar(idx)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func mustArray(r *reader, name string) (*property.IArrayProperty, error) {
	a, ok, err := r.openArray(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing required property %q", errs.ErrPropertyNotFound, name)
	}
	return a, nil
}

var errStandardSurfaceMissing = fmt.Errorf("%w: standardSurface compound or parameter missing", errs.ErrPropertyNotFound)

func mustScalar(r *reader, name string) (*property.IScalarProperty, error) {
	s, ok, err := r.openScalar(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing required property %q", errs.ErrPropertyNotFound, name)
	}
	return s, nil
}
