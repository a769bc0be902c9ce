package diff

import (
	"fmt"
	"math"

	"github.com/tphakala/go-rtaudio/dsp"
)

// Kind identifies the payload stored in a ParamData.
type Kind uint8

// Payload kinds. The zero Kind is KindNone.
const (
	KindNone Kind = iota
	KindF32
	KindF64
	KindI32
	KindU32
	KindI64
	KindU64
	KindBool
	KindVolume
	KindVector2D
	KindVector3D
	KindAny
	KindCustomBytes
)

var kindNames = [...]string{
	KindNone:        "none",
	KindF32:         "f32",
	KindF64:         "f64",
	KindI32:         "i32",
	KindU32:         "u32",
	KindI64:         "i64",
	KindU64:         "u64",
	KindBool:        "bool",
	KindVolume:      "volume",
	KindVector2D:    "vector2d",
	KindVector3D:    "vector3d",
	KindAny:         "any",
	KindCustomBytes: "custom_bytes",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Vec2 is a two component vector leaf.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three component vector leaf.
type Vec3 struct {
	X, Y, Z float32
}

// ParamData is the payload of a ParamEvent. Scalars, vectors and volumes are
// stored inline so that constructing and reading them never allocates. Any
// boxes an arbitrary value.
type ParamData struct {
	kind  Kind
	bits  uint64 // scalar payload, or the volume unit
	vec   [3]float32
	any   any
	bytes [CustomBytesLen]byte
}

// NoneData returns an empty payload.
func NoneData() ParamData { return ParamData{} }

// F32Data wraps a float32.
func F32Data(v float32) ParamData {
	return ParamData{kind: KindF32, bits: uint64(math.Float32bits(v))}
}

// F64Data wraps a float64.
func F64Data(v float64) ParamData {
	return ParamData{kind: KindF64, bits: math.Float64bits(v)}
}

// I32Data wraps an int32.
func I32Data(v int32) ParamData {
	return ParamData{kind: KindI32, bits: uint64(uint32(v))}
}

// U32Data wraps a uint32.
func U32Data(v uint32) ParamData {
	return ParamData{kind: KindU32, bits: uint64(v)}
}

// I64Data wraps an int64.
func I64Data(v int64) ParamData {
	return ParamData{kind: KindI64, bits: uint64(v)}
}

// U64Data wraps a uint64.
func U64Data(v uint64) ParamData {
	return ParamData{kind: KindU64, bits: v}
}

// BoolData wraps a bool.
func BoolData(v bool) ParamData {
	d := ParamData{kind: KindBool}
	if v {
		d.bits = 1
	}
	return d
}

// VolumeData wraps a dsp.Volume.
func VolumeData(v dsp.Volume) ParamData {
	return ParamData{kind: KindVolume, bits: uint64(v.Unit), vec: [3]float32{v.Value}}
}

// Vec2Data wraps a Vec2.
func Vec2Data(v Vec2) ParamData {
	return ParamData{kind: KindVector2D, vec: [3]float32{v.X, v.Y}}
}

// Vec3Data wraps a Vec3.
func Vec3Data(v Vec3) ParamData {
	return ParamData{kind: KindVector3D, vec: [3]float32{v.X, v.Y, v.Z}}
}

// AnyData boxes v. A nil v yields a None payload.
func AnyData(v any) ParamData {
	if v == nil {
		return ParamData{}
	}
	return ParamData{kind: KindAny, any: v}
}

// CustomBytesData wraps a fixed size byte payload.
func CustomBytesData(b [CustomBytesLen]byte) ParamData {
	return ParamData{kind: KindCustomBytes, bytes: b}
}

// Kind returns the payload kind.
func (d ParamData) Kind() Kind { return d.kind }

// IsNone reports whether the payload is empty.
func (d ParamData) IsNone() bool { return d.kind == KindNone }

// F32 returns the float32 payload.
func (d ParamData) F32() (float32, bool) {
	return math.Float32frombits(uint32(d.bits)), d.kind == KindF32
}

// F64 returns the float64 payload.
func (d ParamData) F64() (float64, bool) {
	return math.Float64frombits(d.bits), d.kind == KindF64
}

// I32 returns the int32 payload.
func (d ParamData) I32() (int32, bool) {
	return int32(uint32(d.bits)), d.kind == KindI32
}

// U32 returns the uint32 payload.
func (d ParamData) U32() (uint32, bool) {
	return uint32(d.bits), d.kind == KindU32
}

// I64 returns the int64 payload.
func (d ParamData) I64() (int64, bool) {
	return int64(d.bits), d.kind == KindI64
}

// U64 returns the uint64 payload.
func (d ParamData) U64() (uint64, bool) {
	return d.bits, d.kind == KindU64
}

// Bool returns the bool payload.
func (d ParamData) Bool() (bool, bool) {
	return d.bits != 0, d.kind == KindBool
}

// Volume returns the volume payload.
func (d ParamData) Volume() (dsp.Volume, bool) {
	if d.kind != KindVolume {
		return dsp.Volume{}, false
	}
	return dsp.Volume{Unit: dsp.VolumeUnit(d.bits), Value: d.vec[0]}, true
}

// Vec2 returns the two component vector payload.
func (d ParamData) Vec2() (Vec2, bool) {
	return Vec2{X: d.vec[0], Y: d.vec[1]}, d.kind == KindVector2D
}

// Vec3 returns the three component vector payload.
func (d ParamData) Vec3() (Vec3, bool) {
	return Vec3{X: d.vec[0], Y: d.vec[1], Z: d.vec[2]}, d.kind == KindVector3D
}

// Any returns the boxed payload.
func (d ParamData) Any() (any, bool) {
	return d.any, d.kind == KindAny
}

// CustomBytes returns the raw byte payload.
func (d ParamData) CustomBytes() ([CustomBytesLen]byte, bool) {
	return d.bytes, d.kind == KindCustomBytes
}

// AnyAs returns the boxed payload of d as a T.
func AnyAs[T any](d ParamData) (T, bool) {
	v, ok := d.any.(T)
	return v, ok && d.kind == KindAny
}

// String implements fmt.Stringer.
func (d ParamData) String() string {
	switch d.kind {
	case KindNone:
		return "None"
	case KindF32:
		v, _ := d.F32()
		return fmt.Sprintf("F32(%g)", v)
	case KindF64:
		v, _ := d.F64()
		return fmt.Sprintf("F64(%g)", v)
	case KindI32:
		v, _ := d.I32()
		return fmt.Sprintf("I32(%d)", v)
	case KindU32:
		v, _ := d.U32()
		return fmt.Sprintf("U32(%d)", v)
	case KindI64:
		v, _ := d.I64()
		return fmt.Sprintf("I64(%d)", v)
	case KindU64:
		return fmt.Sprintf("U64(%d)", d.bits)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", d.bits != 0)
	case KindVolume:
		v, _ := d.Volume()
		if v.Unit == dsp.UnitDecibels {
			return fmt.Sprintf("Volume(%gdB)", v.Value)
		}
		return fmt.Sprintf("Volume(%g)", v.Value)
	case KindVector2D:
		return fmt.Sprintf("Vector2D(%g, %g)", d.vec[0], d.vec[1])
	case KindVector3D:
		return fmt.Sprintf("Vector3D(%g, %g, %g)", d.vec[0], d.vec[1], d.vec[2])
	case KindAny:
		return fmt.Sprintf("Any(%T)", d.any)
	case KindCustomBytes:
		return fmt.Sprintf("CustomBytes(%x)", d.bytes)
	default:
		return d.kind.String()
	}
}
