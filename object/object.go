// Package object implements named archive objects: a metadata map, a
// top-level compound property, and an ordered list of children, plus
// per-object SpookyV2 hashing (spec §3 "Object", §4.9).
package object

import (
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/property"
)

// Object is the in-memory, writer-side representation of one node in the
// object tree. Name is UTF-8 and empty only for the archive root.
type Object struct {
	Name       string
	Meta       *metadata.Map
	Properties *property.Property // the object's single top-level compound
	Children   []*Object
}

// New returns an object with an empty top-level compound property.
func New(name string) *Object {
	return &Object{
		Name:       name,
		Meta:       metadata.New(),
		Properties: property.NewCompound(""),
	}
}

// AddChild appends a child object.
func (o *Object) AddChild(child *Object) *Object {
	o.Children = append(o.Children, child)
	return o
}
