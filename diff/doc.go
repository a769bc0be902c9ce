// Package diff propagates parameter changes from a control thread to a
// real-time audio thread without locks.
//
// A parameter struct is diffed against a baseline snapshot of itself. Every
// leaf that changed is emitted as a ParamEvent carrying the encoded value and
// the path of indices leading to it. The receiver decodes each event into a
// typed patch and applies it to exactly the addressed field.
//
// Types opt in by implementing Param by hand:
//
//	type FilterParams struct {
//		Cutoff float32
//		Q      float32
//	}
//
//	func (p FilterParams) Diff(base FilterParams, path diff.PathBuilder, q diff.EventQueue) {
//		diff.DiffF32(p.Cutoff, base.Cutoff, path.With(0), q)
//		diff.DiffF32(p.Q, base.Q, path.With(1), q)
//	}
//
//	func (FilterParams) Patch(data diff.ParamData, path diff.Path) (FilterPatch, error) { ... }
//	func (p *FilterParams) Apply(patch FilterPatch) { ... }
//
// Memo keeps the baseline for you, and NewEventChannel carries the events
// across threads through a bounded lock-free ring.
//
// Invariants:
//   - diffing a value against itself emits nothing
//   - applying every patch decoded from Diff(new, old) to old yields new
package diff
