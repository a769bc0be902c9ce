package diff

import "fmt"

// DiffSlice diffs value against baseline element by element with the element
// index appended to the path. Fixed size arrays are diffed through a[:].
//
// value and baseline must have the same length; DiffSlice panics otherwise.
// Resizing a sequence is not a leaf change and cannot be expressed as a patch.
func DiffSlice[T any](value, baseline []T, path PathBuilder, q EventQueue,
	diffElem func(value, baseline T, path PathBuilder, q EventQueue),
) {
	if len(value) != len(baseline) {
		panic(fmt.Sprintf("diff: DiffSlice length mismatch: value has %d elements, baseline %d",
			len(value), len(baseline)))
	}
	for i := range value {
		diffElem(value[i], baseline[i], path.With(uint32(i)), q)
	}
}

// IndexPatch is a patch addressed to one element of a sequence.
type IndexPatch[P any] struct {
	Index int
	Patch P
}

// PatchSlice decodes a patch for a sequence of length n. The first path
// element is the index, the rest is passed to patchElem.
func PatchSlice[P any](n int, data ParamData, path Path,
	patchElem func(data ParamData, path Path) (P, error),
) (IndexPatch[P], error) {
	idx, rest, ok := path.Head()
	if !ok {
		return IndexPatch[P]{}, fmt.Errorf("%w: empty path for sequence", ErrInvalidPath)
	}
	if uint64(idx) >= uint64(max(n, 0)) {
		return IndexPatch[P]{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidPath, idx, n)
	}

	p, err := patchElem(data, rest)
	if err != nil {
		return IndexPatch[P]{}, err
	}
	return IndexPatch[P]{Index: int(idx), Patch: p}, nil
}

// ApplySlice applies p to the addressed element of s.
func ApplySlice[T, P any](s []T, p IndexPatch[P], apply func(dst *T, patch P)) {
	apply(&s[p.Index], p.Patch)
}

// SliceParam adapts a fixed length slice to Param so that it can be wrapped
// in a Memo. Patch bounds the index by the receiver's current length.
type SliceParam[T, P any] struct {
	Values []T
	Elem   Elem[T, P]
}

// Diff implements Differ.
func (s SliceParam[T, P]) Diff(baseline SliceParam[T, P], path PathBuilder, q EventQueue) {
	DiffSlice(s.Values, baseline.Values, path, q, s.Elem.Diff)
}

// Patch implements Patcher.
func (s SliceParam[T, P]) Patch(data ParamData, path Path) (IndexPatch[P], error) {
	return PatchSlice(len(s.Values), data, path, s.Elem.Patch)
}

// Apply implements Patcher.
func (s *SliceParam[T, P]) Apply(p IndexPatch[P]) {
	ApplySlice(s.Values, p, s.Elem.Apply)
}

// Clone implements Cloner so that a Memo keeps its own baseline storage.
func (s SliceParam[T, P]) Clone() SliceParam[T, P] {
	return SliceParam[T, P]{Values: append([]T(nil), s.Values...), Elem: s.Elem}
}

// tupleIndex splits off a tuple element index below arity.
func tupleIndex(path Path, arity uint32) (uint32, Path, error) {
	idx, rest, ok := path.Head()
	if !ok {
		return 0, nil, fmt.Errorf("%w: empty path for tuple", ErrInvalidPath)
	}
	if idx >= arity {
		return 0, nil, fmt.Errorf("%w: tuple index %d out of range [0,%d)", ErrInvalidPath, idx, arity)
	}
	return idx, rest, nil
}

// Tuple2 is a pair of parameters.
type Tuple2[A, B any] struct {
	A A
	B B
}

// Tuple2Patch addresses one element of a Tuple2. Only the field selected by
// Index is meaningful.
type Tuple2Patch[PA, PB any] struct {
	Index uint32
	A     PA
	B     PB
}

// DiffTuple2 diffs each element with its position appended to the path.
func DiffTuple2[A, B, PA, PB any](value, baseline Tuple2[A, B], path PathBuilder, q EventQueue,
	ea Elem[A, PA], eb Elem[B, PB],
) {
	ea.Diff(value.A, baseline.A, path.With(0), q)
	eb.Diff(value.B, baseline.B, path.With(1), q)
}

// PatchTuple2 decodes a patch for one element of a Tuple2.
func PatchTuple2[A, B, PA, PB any](data ParamData, path Path,
	ea Elem[A, PA], eb Elem[B, PB],
) (p Tuple2Patch[PA, PB], err error) {
	idx, rest, err := tupleIndex(path, 2)
	if err != nil {
		return p, err
	}
	p.Index = idx
	switch idx {
	case 0:
		p.A, err = ea.Patch(data, rest)
	default:
		p.B, err = eb.Patch(data, rest)
	}
	return p, err
}

// ApplyTuple2 applies p to t.
func ApplyTuple2[A, B, PA, PB any](t *Tuple2[A, B], p Tuple2Patch[PA, PB],
	ea Elem[A, PA], eb Elem[B, PB],
) {
	switch p.Index {
	case 0:
		ea.Apply(&t.A, p.A)
	case 1:
		eb.Apply(&t.B, p.B)
	}
}

// Tuple3 is a triple of parameters.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// Tuple3Patch addresses one element of a Tuple3.
type Tuple3Patch[PA, PB, PC any] struct {
	Index uint32
	A     PA
	B     PB
	C     PC
}

// DiffTuple3 diffs each element with its position appended to the path.
func DiffTuple3[A, B, C, PA, PB, PC any](value, baseline Tuple3[A, B, C], path PathBuilder, q EventQueue,
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC],
) {
	ea.Diff(value.A, baseline.A, path.With(0), q)
	eb.Diff(value.B, baseline.B, path.With(1), q)
	ec.Diff(value.C, baseline.C, path.With(2), q)
}

// PatchTuple3 decodes a patch for one element of a Tuple3.
func PatchTuple3[A, B, C, PA, PB, PC any](data ParamData, path Path,
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC],
) (p Tuple3Patch[PA, PB, PC], err error) {
	idx, rest, err := tupleIndex(path, 3)
	if err != nil {
		return p, err
	}
	p.Index = idx
	switch idx {
	case 0:
		p.A, err = ea.Patch(data, rest)
	case 1:
		p.B, err = eb.Patch(data, rest)
	default:
		p.C, err = ec.Patch(data, rest)
	}
	return p, err
}

// ApplyTuple3 applies p to t.
func ApplyTuple3[A, B, C, PA, PB, PC any](t *Tuple3[A, B, C], p Tuple3Patch[PA, PB, PC],
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC],
) {
	switch p.Index {
	case 0:
		ea.Apply(&t.A, p.A)
	case 1:
		eb.Apply(&t.B, p.B)
	case 2:
		ec.Apply(&t.C, p.C)
	}
}

// Tuple4 is a quadruple of parameters.
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Tuple4Patch addresses one element of a Tuple4.
type Tuple4Patch[PA, PB, PC, PD any] struct {
	Index uint32
	A     PA
	B     PB
	C     PC
	D     PD
}

// DiffTuple4 diffs each element with its position appended to the path.
func DiffTuple4[A, B, C, D, PA, PB, PC, PD any](value, baseline Tuple4[A, B, C, D], path PathBuilder, q EventQueue,
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC], ed Elem[D, PD],
) {
	ea.Diff(value.A, baseline.A, path.With(0), q)
	eb.Diff(value.B, baseline.B, path.With(1), q)
	ec.Diff(value.C, baseline.C, path.With(2), q)
	ed.Diff(value.D, baseline.D, path.With(3), q)
}

// PatchTuple4 decodes a patch for one element of a Tuple4.
func PatchTuple4[A, B, C, D, PA, PB, PC, PD any](data ParamData, path Path,
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC], ed Elem[D, PD],
) (p Tuple4Patch[PA, PB, PC, PD], err error) {
	idx, rest, err := tupleIndex(path, 4)
	if err != nil {
		return p, err
	}
	p.Index = idx
	switch idx {
	case 0:
		p.A, err = ea.Patch(data, rest)
	case 1:
		p.B, err = eb.Patch(data, rest)
	case 2:
		p.C, err = ec.Patch(data, rest)
	default:
		p.D, err = ed.Patch(data, rest)
	}
	return p, err
}

// ApplyTuple4 applies p to t.
func ApplyTuple4[A, B, C, D, PA, PB, PC, PD any](t *Tuple4[A, B, C, D], p Tuple4Patch[PA, PB, PC, PD],
	ea Elem[A, PA], eb Elem[B, PB], ec Elem[C, PC], ed Elem[D, PD],
) {
	switch p.Index {
	case 0:
		ea.Apply(&t.A, p.A)
	case 1:
		eb.Apply(&t.B, p.B)
	case 2:
		ec.Apply(&t.C, p.C)
	case 3:
		ed.Apply(&t.D, p.D)
	}
}

// DiffVariant diffs an enum-like value. If the variant changed the whole
// value is sent as an Any payload at path; otherwise diffFields emits only
// the fields that changed within the variant.
func DiffVariant[T any](value, baseline T, path PathBuilder, q EventQueue,
	variant func(T) int,
	diffFields func(value, baseline T, path PathBuilder, q EventQueue),
) {
	if variant(value) != variant(baseline) {
		PushParam(q, AnyData(value), path)
		return
	}
	diffFields(value, baseline, path, q)
}

// VariantPatch is either a whole replacement value or a field patch.
type VariantPatch[T, P any] struct {
	Whole    T
	HasWhole bool
	Field    P
}

// PatchVariant decodes the counterpart of DiffVariant: an Any payload of T at
// an empty path replaces the whole value, anything else goes to patchField.
func PatchVariant[T, P any](data ParamData, path Path,
	patchField func(data ParamData, path Path) (P, error),
) (VariantPatch[T, P], error) {
	if len(path) == 0 {
		v, err := PatchAny[T](data, path)
		if err != nil {
			return VariantPatch[T, P]{}, err
		}
		return VariantPatch[T, P]{Whole: v, HasWhole: true}, nil
	}
	f, err := patchField(data, path)
	if err != nil {
		return VariantPatch[T, P]{}, err
	}
	return VariantPatch[T, P]{Field: f}, nil
}
