package schema

import (
	"math"

	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// OpType is a transform operation kind (spec §4.11 "Xform sample decoding").
type OpType uint8

const (
	OpScale OpType = iota
	OpTranslate
	OpRotateX
	OpRotateY
	OpRotateZ
	OpRotate
	OpMatrix
)

// numValues returns how many float64 values an op of kind t consumes from
// the shared .vals list.
func numValues(t OpType) int {
	switch t {
	case OpScale, OpTranslate:
		return 3
	case OpRotateX, OpRotateY, OpRotateZ:
		return 1
	case OpRotate:
		return 4
	case OpMatrix:
		return 16
	default:
		return 0
	}
}

// XformOp is one operation in a transform's op stack.
type XformOp struct {
	Type   OpType
	Values []float64
}

// XformSample is one time sample of a transform: an ordered op stack plus
// whether it inherits its parent's transform.
type XformSample struct {
	Ops      []XformOp
	Inherits bool
}

// Mat4 is a row-major 4x4 matrix.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b under row-major, row-vector convention: (v*a)*b == v*(a.Mul(b)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

func scaleMat(sx, sy, sz float64) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = sx, sy, sz
	return m
}

func translateMat(tx, ty, tz float64) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = tx, ty, tz
	return m
}

func rotateAxisAngle(ax, ay, az, angleDeg float64) Mat4 {
	theta := angleDeg * math.Pi / 180
	length := math.Sqrt(ax*ax + ay*ay + az*az)
	if length == 0 {
		return Identity4()
	}
	ax, ay, az = ax/length, ay/length, az/length
	s, c := math.Sin(theta), math.Cos(theta)
	t := 1 - c

	m := Identity4()
	m[0] = t*ax*ax + c
	m[1] = t*ax*ay + s*az
	m[2] = t*ax*az - s*ay
	m[4] = t*ax*ay - s*az
	m[5] = t*ay*ay + c
	m[6] = t*ay*az + s*ax
	m[8] = t*ax*az + s*ay
	m[9] = t*ay*az - s*ax
	m[10] = t*az*az + c
	return m
}

// matrixOf returns the 4x4 matrix a single op contributes to the composition.
func matrixOf(op XformOp) Mat4 {
	switch op.Type {
	case OpScale:
		return scaleMat(op.Values[0], op.Values[1], op.Values[2])
	case OpTranslate:
		return translateMat(op.Values[0], op.Values[1], op.Values[2])
	case OpRotateX:
		return rotateAxisAngle(1, 0, 0, op.Values[0])
	case OpRotateY:
		return rotateAxisAngle(0, 1, 0, op.Values[0])
	case OpRotateZ:
		return rotateAxisAngle(0, 0, 1, op.Values[0])
	case OpRotate:
		return rotateAxisAngle(op.Values[0], op.Values[1], op.Values[2], op.Values[3])
	case OpMatrix:
		var m Mat4
		copy(m[:], op.Values)
		return m
	default:
		return Identity4()
	}
}

// Matrix composes the sample's op stack left to right: M = op0 x op1 x ... x opN.
// An empty op stack is the identity.
func (s XformSample) Matrix() Mat4 {
	m := Identity4()
	for _, op := range s.Ops {
		m = m.Mul(matrixOf(op))
	}
	return m
}

// XformBuilder accumulates samples for an Xform object under construction.
type XformBuilder struct{ *builder }

// NewXform returns a builder for a transform object named name.
func NewXform(name string) *XformBuilder {
	return &XformBuilder{newBuilder(name, TagXform, ".xform")}
}

// AddSample appends one sample. An empty op stack is written verbatim
// (identity), never collapsed into a Matrix op (spec §4.11).
func (b *XformBuilder) AddSample(s XformSample) {
	opsBytes := make([]byte, 0, len(s.Ops))
	var vals []float64
	for _, op := range s.Ops {
		opsBytes = append(opsBytes, byte(op.Type)<<4)
		vals = append(vals, op.Values...)
	}
	b.arrayProp(".ops", datatype.New(datatype.Uint8, 1)).
		AddArraySample(opsBytes, nil)
	b.arrayProp(".vals", datatype.New(datatype.Float64, 1)).
		AddArraySample(property.EncodeFloat64s(vals), nil)

	var inheritsByte byte
	if s.Inherits {
		inheritsByte = 1
	}
	b.scalarProp(".inherits", datatype.New(datatype.Bool, 1)).
		AddScalarSample([]byte{inheritsByte})
}

// IXform is a lazy reader over an Xform object.
type IXform struct{ *reader }

// OpenXform opens obj as a transform, failing if its schema tag does not
// contain "Xform".
func OpenXform(obj *object.IObject, lookup property.PoolLookup) (*IXform, error) {
	r, err := openReader(obj, lookup, "Xform")
	if err != nil {
		return nil, err
	}
	return &IXform{r}, nil
}

// NumSamples returns the number of samples.
func (x *IXform) NumSamples() (int, error) {
	a, err := mustArray(x.reader, ".ops")
	if err != nil {
		return 0, err
	}
	return a.NumSamples(), nil
}

// Sample decodes logical sample i.
func (x *IXform) Sample(i int) (XformSample, error) {
	var s XformSample

	opsArr, err := mustArray(x.reader, ".ops")
	if err != nil {
		return s, err
	}
	opsData, _, err := opsArr.GetSample(i)
	if err != nil {
		return s, err
	}

	valsArr, err := mustArray(x.reader, ".vals")
	if err != nil {
		return s, err
	}
	valsData, _, err := valsArr.GetSample(i)
	if err != nil {
		return s, err
	}
	vals := property.DecodeFloat64s(valsData)

	vi := 0
	for _, b := range opsData {
		t := OpType(b >> 4)
		n := numValues(t)
		if vi+n > len(vals) {
			break
		}
		s.Ops = append(s.Ops, XformOp{Type: t, Values: append([]float64(nil), vals[vi:vi+n]...)})
		vi += n
	}

	inheritsProp, err := mustScalar(x.reader, ".inherits")
	if err != nil {
		return s, err
	}
	b, err := inheritsProp.GetSample(i)
	if err != nil {
		return s, err
	}
	s.Inherits = len(b) > 0 && b[0] != 0

	return s, nil
}
