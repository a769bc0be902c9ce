package diff

import "github.com/tphakala/go-rtaudio/dsp"

// Codec converts a leaf type to and from its ParamData payload.
type Codec[T any] struct {
	Kind   Kind
	Encode func(T) ParamData
	Decode func(ParamData) (T, bool)
}

// Leaf codecs
var (
	F32Codec    = Codec[float32]{KindF32, F32Data, ParamData.F32}
	F64Codec    = Codec[float64]{KindF64, F64Data, ParamData.F64}
	I32Codec    = Codec[int32]{KindI32, I32Data, ParamData.I32}
	U32Codec    = Codec[uint32]{KindU32, U32Data, ParamData.U32}
	I64Codec    = Codec[int64]{KindI64, I64Data, ParamData.I64}
	U64Codec    = Codec[uint64]{KindU64, U64Data, ParamData.U64}
	BoolCodec   = Codec[bool]{KindBool, BoolData, ParamData.Bool}
	VolumeCodec = Codec[dsp.Volume]{KindVolume, VolumeData, ParamData.Volume}
	Vec2Codec   = Codec[Vec2]{KindVector2D, Vec2Data, ParamData.Vec2}
	Vec3Codec   = Codec[Vec3]{KindVector3D, Vec3Data, ParamData.Vec3}
)

// DiffLeaf emits value if it differs from baseline. NaN always differs.
func DiffLeaf[T comparable](c Codec[T], value, baseline T, path PathBuilder, q EventQueue) {
	if value != baseline {
		PushParam(q, c.Encode(value), path)
	}
}

// PatchLeaf decodes a leaf payload. The path must be fully consumed.
func PatchLeaf[T any](c Codec[T], data ParamData, path Path) (T, error) {
	var zero T
	if len(path) != 0 {
		return zero, errLeafPath(path)
	}
	v, ok := c.Decode(data)
	if !ok {
		return zero, errKind(c.Kind, data)
	}
	return v, nil
}

// SetLeaf applies a leaf patch, which is the new value itself.
func SetLeaf[T any](dst *T, v T) { *dst = v }

// DiffF32 emits value if it differs from baseline.
func DiffF32(value, baseline float32, path PathBuilder, q EventQueue) {
	DiffLeaf(F32Codec, value, baseline, path, q)
}

// PatchF32 decodes a float32 leaf.
func PatchF32(data ParamData, path Path) (float32, error) { return PatchLeaf(F32Codec, data, path) }

// DiffF64 emits value if it differs from baseline.
func DiffF64(value, baseline float64, path PathBuilder, q EventQueue) {
	DiffLeaf(F64Codec, value, baseline, path, q)
}

// PatchF64 decodes a float64 leaf.
func PatchF64(data ParamData, path Path) (float64, error) { return PatchLeaf(F64Codec, data, path) }

// DiffI32 emits value if it differs from baseline.
func DiffI32(value, baseline int32, path PathBuilder, q EventQueue) {
	DiffLeaf(I32Codec, value, baseline, path, q)
}

// PatchI32 decodes an int32 leaf.
func PatchI32(data ParamData, path Path) (int32, error) { return PatchLeaf(I32Codec, data, path) }

// DiffU32 emits value if it differs from baseline.
func DiffU32(value, baseline uint32, path PathBuilder, q EventQueue) {
	DiffLeaf(U32Codec, value, baseline, path, q)
}

// PatchU32 decodes a uint32 leaf.
func PatchU32(data ParamData, path Path) (uint32, error) { return PatchLeaf(U32Codec, data, path) }

// DiffI64 emits value if it differs from baseline.
func DiffI64(value, baseline int64, path PathBuilder, q EventQueue) {
	DiffLeaf(I64Codec, value, baseline, path, q)
}

// PatchI64 decodes an int64 leaf.
func PatchI64(data ParamData, path Path) (int64, error) { return PatchLeaf(I64Codec, data, path) }

// DiffU64 emits value if it differs from baseline.
func DiffU64(value, baseline uint64, path PathBuilder, q EventQueue) {
	DiffLeaf(U64Codec, value, baseline, path, q)
}

// PatchU64 decodes a uint64 leaf.
func PatchU64(data ParamData, path Path) (uint64, error) { return PatchLeaf(U64Codec, data, path) }

// DiffBool emits value if it differs from baseline.
func DiffBool(value, baseline bool, path PathBuilder, q EventQueue) {
	DiffLeaf(BoolCodec, value, baseline, path, q)
}

// PatchBool decodes a bool leaf.
func PatchBool(data ParamData, path Path) (bool, error) { return PatchLeaf(BoolCodec, data, path) }

// DiffVolume emits value if it differs from baseline.
func DiffVolume(value, baseline dsp.Volume, path PathBuilder, q EventQueue) {
	DiffLeaf(VolumeCodec, value, baseline, path, q)
}

// PatchVolume decodes a volume leaf.
func PatchVolume(data ParamData, path Path) (dsp.Volume, error) {
	return PatchLeaf(VolumeCodec, data, path)
}

// DiffVec2 emits value if it differs from baseline.
func DiffVec2(value, baseline Vec2, path PathBuilder, q EventQueue) {
	DiffLeaf(Vec2Codec, value, baseline, path, q)
}

// PatchVec2 decodes a Vec2 leaf.
func PatchVec2(data ParamData, path Path) (Vec2, error) { return PatchLeaf(Vec2Codec, data, path) }

// DiffVec3 emits value if it differs from baseline.
func DiffVec3(value, baseline Vec3, path PathBuilder, q EventQueue) {
	DiffLeaf(Vec3Codec, value, baseline, path, q)
}

// PatchVec3 decodes a Vec3 leaf.
func PatchVec3(data ParamData, path Path) (Vec3, error) { return PatchLeaf(Vec3Codec, data, path) }

// DiffAny emits value boxed in an Any payload if it differs from baseline.
func DiffAny[T comparable](value, baseline T, path PathBuilder, q EventQueue) {
	if value != baseline {
		PushParam(q, ParamData{kind: KindAny, any: value}, path)
	}
}

// PatchAny decodes a boxed T.
func PatchAny[T any](data ParamData, path Path) (T, error) {
	var zero T
	if len(path) != 0 {
		return zero, errLeafPath(path)
	}
	v, ok := AnyAs[T](data)
	if !ok {
		return zero, errAnyType[T](data)
	}
	return v, nil
}

// Leaf elements for use with containers.
var (
	F32Elem    = Elem[float32, float32]{DiffF32, PatchF32, SetLeaf[float32]}
	F64Elem    = Elem[float64, float64]{DiffF64, PatchF64, SetLeaf[float64]}
	I32Elem    = Elem[int32, int32]{DiffI32, PatchI32, SetLeaf[int32]}
	U32Elem    = Elem[uint32, uint32]{DiffU32, PatchU32, SetLeaf[uint32]}
	I64Elem    = Elem[int64, int64]{DiffI64, PatchI64, SetLeaf[int64]}
	U64Elem    = Elem[uint64, uint64]{DiffU64, PatchU64, SetLeaf[uint64]}
	BoolElem   = Elem[bool, bool]{DiffBool, PatchBool, SetLeaf[bool]}
	VolumeElem = Elem[dsp.Volume, dsp.Volume]{DiffVolume, PatchVolume, SetLeaf[dsp.Volume]}
	Vec2Elem   = Elem[Vec2, Vec2]{DiffVec2, PatchVec2, SetLeaf[Vec2]}
	Vec3Elem   = Elem[Vec3, Vec3]{DiffVec3, PatchVec3, SetLeaf[Vec3]}
)

// AnyElem returns the Elem of a comparable type sent as an Any payload.
func AnyElem[T comparable]() Elem[T, T] {
	return Elem[T, T]{DiffAny[T], PatchAny[T], SetLeaf[T]}
}

// Option is an optional leaf. An absent value is sent as a None payload.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// DiffOption emits the option if presence or value changed. An absent value
// is encoded as NoneData.
func DiffOption[T comparable](c Codec[T], value, baseline Option[T], path PathBuilder, q EventQueue) {
	switch {
	case !value.Valid && !baseline.Valid:
	case !value.Valid:
		PushParam(q, NoneData(), path)
	case !baseline.Valid || value.Value != baseline.Value:
		PushParam(q, c.Encode(value.Value), path)
	}
}

// PatchOption decodes an optional leaf.
func PatchOption[T any](c Codec[T], data ParamData, path Path) (Option[T], error) {
	if len(path) != 0 {
		return Option[T]{}, errLeafPath(path)
	}
	if data.IsNone() {
		return None[T](), nil
	}
	v, ok := c.Decode(data)
	if !ok {
		return Option[T]{}, errKind(c.Kind, data)
	}
	return Some(v), nil
}

// OptionElem returns the Elem of an optional leaf.
func OptionElem[T comparable](c Codec[T]) Elem[Option[T], Option[T]] {
	return Elem[Option[T], Option[T]]{
		Diff: func(value, baseline Option[T], path PathBuilder, q EventQueue) {
			DiffOption(c, value, baseline, path, q)
		},
		Patch: func(data ParamData, path Path) (Option[T], error) {
			return PatchOption(c, data, path)
		},
		Apply: SetLeaf[Option[T]],
	}
}
