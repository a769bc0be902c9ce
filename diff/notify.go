package diff

import "sync/atomic"

// notifyCounter hands out Notify ids. Ids start at 1, so 0 never names a
// notification.
var notifyCounter atomic.Uint64

func nextNotifyID() uint64 {
	return notifyCounter.Add(1)
}

// Notify wraps a value that is sent whenever Notify is called, even if the
// value itself did not change. Use it for triggers such as "restart".
type Notify[T any] struct {
	value T
	id    uint64
}

// NewNotify wraps value with a fresh id.
func NewNotify[T any](value T) Notify[T] {
	return Notify[T]{value: value, id: nextNotifyID()}
}

// Get returns the wrapped value.
func (n Notify[T]) Get() T { return n.value }

// Set replaces the value and notifies.
func (n *Notify[T]) Set(value T) {
	n.value = value
	n.id = nextNotifyID()
}

// Notify marks the value as changed.
func (n *Notify[T]) Notify() {
	n.id = nextNotifyID()
}

// ID returns the id of the last notification. It is never 0 for a Notify
// built with NewNotify.
func (n Notify[T]) ID() uint64 { return n.id }

// Equal compares notification ids, not values.
func (n Notify[T]) Equal(other Notify[T]) bool { return n.id == other.id }

// Diff implements Differ. The whole Notify is sent as an Any payload whenever
// the ids differ.
func (n Notify[T]) Diff(baseline Notify[T], path PathBuilder, q EventQueue) {
	if n.id != baseline.id {
		PushParam(q, ParamData{kind: KindAny, any: n}, path)
	}
}

// Patch implements Patcher.
func (Notify[T]) Patch(data ParamData, path Path) (Notify[T], error) {
	return PatchAny[Notify[T]](data, path)
}

// Apply implements Patcher. The receiver takes both the value and the id.
func (n *Notify[T]) Apply(patch Notify[T]) {
	*n = patch
}
