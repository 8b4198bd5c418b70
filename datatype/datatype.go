// Package datatype defines the plain-old-data element enumeration and the
// (pod, extent) pair that labels every scalar and array property sample.
package datatype

import "fmt"

// Pod is a plain-old-data element kind.
type Pod uint8

const (
	Bool Pod = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float16
	Float32
	Float64
	String
	Wstring
)

func (p Pod) String() string {
	switch p {
	case Bool:
		return "Bool"
	case Int8:
		return "Int8"
	case Uint8:
		return "Uint8"
	case Int16:
		return "Int16"
	case Uint16:
		return "Uint16"
	case Int32:
		return "Int32"
	case Uint32:
		return "Uint32"
	case Int64:
		return "Int64"
	case Uint64:
		return "Uint64"
	case Float16:
		return "Float16"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case String:
		return "String"
	case Wstring:
		return "Wstring"
	default:
		return "Unknown"
	}
}

// IsString reports whether p is String or Wstring, the only PODs whose
// samples are variable-length and always carry materialized dimensions.
func (p Pod) IsString() bool {
	return p == String || p == Wstring
}

// ElementSize returns the on-disk size in bytes of one element of p, or 0
// for the variable-length string PODs.
func (p Pod) ElementSize() int {
	switch p {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// DataType pairs a Pod with its extent: the number of POD elements that make
// up one logical element of a sample (e.g. extent 3 for a vec3 position).
type DataType struct {
	Pod    Pod
	Extent uint8 // 1..255
}

func New(pod Pod, extent uint8) DataType {
	return DataType{Pod: pod, Extent: extent}
}

func (d DataType) String() string {
	return fmt.Sprintf("%s[%d]", d.Pod, d.Extent)
}

// ElementSize returns the byte size of one logical element (ElementSize(pod) * extent),
// or 0 for string PODs.
func (d DataType) ElementSize() int {
	return d.Pod.ElementSize() * int(d.Extent)
}
