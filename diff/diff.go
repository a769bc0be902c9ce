package diff

import (
	"errors"
	"fmt"
	"reflect"
)

// Patch errors
var (
	// ErrInvalidPath is returned when an event path does not address an
	// existing field, index or tuple element.
	ErrInvalidPath = errors.New("invalid parameter path")

	// ErrInvalidData is returned when an event payload does not match the
	// type of the addressed field.
	ErrInvalidData = errors.New("invalid parameter data")
)

// Path is a sequence of field or element indices leading from a parameter
// struct to one of its leaves.
type Path []uint32

// Head splits off the first index. ok is false for an empty path.
func (p Path) Head() (index uint32, rest Path, ok bool) {
	if len(p) == 0 {
		return 0, nil, false
	}
	return p[0], p[1:], true
}

// PathBuilder accumulates a Path while walking a parameter struct. It is a
// value type: With never modifies or aliases the receiver.
type PathBuilder struct {
	inline [inlinePathLen]uint32
	n      int
	spill  []uint32
}

// With returns a copy of b extended by index.
func (b PathBuilder) With(index uint32) PathBuilder {
	switch {
	case b.spill == nil && b.n < inlinePathLen:
		b.inline[b.n] = index
	case b.spill == nil:
		spill := make([]uint32, b.n, b.n+1)
		copy(spill, b.inline[:])
		b.spill = append(spill, index)
	default:
		// cap == len forces append to copy
		b.spill = append(b.spill[:b.n:b.n], index)
	}
	b.n++
	return b
}

// Len returns the path depth.
func (b PathBuilder) Len() int {
	return b.n
}

// Build returns the accumulated path.
func (b PathBuilder) Build() Path {
	p := make(Path, b.n)
	if b.spill != nil {
		copy(p, b.spill)
	} else {
		copy(p, b.inline[:b.n])
	}
	return p
}

// ParamEvent is one changed leaf.
type ParamEvent struct {
	Data ParamData
	Path Path
}

// EventQueue receives the events emitted by a diff.
type EventQueue interface {
	Push(ev ParamEvent)
}

// PushParam pushes data addressed by path onto q.
func PushParam(q EventQueue, data ParamData, path PathBuilder) {
	q.Push(ParamEvent{Data: data, Path: path.Build()})
}

// EventList is a slice-backed EventQueue for use on the control thread.
type EventList struct {
	Events []ParamEvent
}

// Push appends ev.
func (l *EventList) Push(ev ParamEvent) {
	l.Events = append(l.Events, ev)
}

// Len returns the number of collected events.
func (l *EventList) Len() int {
	return len(l.Events)
}

// Reset empties the list and keeps its storage.
func (l *EventList) Reset() {
	clear(l.Events)
	l.Events = l.Events[:0]
}

// Differ is implemented by parameter types that can report how they changed.
type Differ[T any] interface {
	// Diff emits an event for every leaf that differs from baseline.
	Diff(baseline T, path PathBuilder, q EventQueue)
}

// Patcher is implemented by parameter types that can receive changes.
// P is the decoded patch type.
type Patcher[P any] interface {
	// Patch decodes an event addressed to the receiver. It must not modify
	// the receiver.
	Patch(data ParamData, path Path) (P, error)

	// Apply stores a decoded patch.
	Apply(patch P)
}

// Param is a type that is both diffable and patchable.
type Param[T, P any] interface {
	Differ[T]
	Patcher[P]
}

// PatchEvent decodes ev for p and applies the result.
func PatchEvent[P any](p Patcher[P], ev ParamEvent) error {
	patch, err := p.Patch(ev.Data, ev.Path)
	if err != nil {
		return err
	}
	p.Apply(patch)
	return nil
}

// Elem bundles the diff, patch and apply functions of one element type so
// that containers can be diffed generically. Leaf elements are provided as
// package variables (F32Elem, BoolElem, ...); ElemOf builds one for a Param.
type Elem[T, P any] struct {
	Diff  func(value, baseline T, path PathBuilder, q EventQueue)
	Patch func(data ParamData, path Path) (P, error)
	Apply func(dst *T, patch P)
}

// ElemOf returns the Elem of a struct type implementing Param through its
// pointer. Patch is called on the zero value of T, so T's decoding must not
// depend on its contents (SliceParam, for one, does).
func ElemOf[T, P any, PT interface {
	*T
	Param[T, P]
}]() Elem[T, P] {
	return Elem[T, P]{
		Diff: func(value, baseline T, path PathBuilder, q EventQueue) {
			PT(&value).Diff(baseline, path, q)
		},
		Patch: func(data ParamData, path Path) (P, error) {
			var zero T
			return PT(&zero).Patch(data, path)
		},
		Apply: func(dst *T, patch P) {
			PT(dst).Apply(patch)
		},
	}
}

// errLeafPath reports a path that continues past a leaf.
func errLeafPath(path Path) error {
	return fmt.Errorf("%w: %d unused path elements at leaf", ErrInvalidPath, len(path))
}

func errKind(want Kind, got ParamData) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrInvalidData, want, got.Kind())
}

func errAnyType[T any](got ParamData) error {
	return fmt.Errorf("%w: expected any(%s), got %s", ErrInvalidData, reflect.TypeFor[T](), got)
}
