package diff

// Cloner is implemented by parameter types holding references (slices, maps,
// pointers) that must be deep copied into a baseline.
type Cloner[T any] interface {
	Clone() T
}

// Memo pairs a parameter value with the baseline it was last diffed against.
type Memo[T Differ[T]] struct {
	value    T
	baseline T
}

// NewMemo returns a Memo whose baseline equals value, so the first Update
// emits nothing.
func NewMemo[T Differ[T]](value T) *Memo[T] {
	return &Memo[T]{value: value, baseline: clone(value)}
}

// Get returns the current value.
func (m *Memo[T]) Get() T { return m.value }

// Set replaces the current value. The change is emitted on the next Update.
func (m *Memo[T]) Set(value T) { m.value = value }

// Ptr returns a pointer to the current value for in-place edits.
func (m *Memo[T]) Ptr() *T { return &m.value }

// Baseline returns the value as of the last Update.
func (m *Memo[T]) Baseline() T { return m.baseline }

// Update emits the changes made since the last Update into q and makes the
// current value the new baseline.
func (m *Memo[T]) Update(q EventQueue) {
	m.value.Diff(m.baseline, PathBuilder{}, q)
	m.baseline = clone(m.value)
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
