package diff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-rtaudio/dsp"
)

// filterParams exercises every leaf kind through a hand written Param.
type filterParams struct {
	Cutoff  float32
	Enabled bool
	Gain    dsp.Volume
	Pos     Vec3
	Mode    uint32
	Tag     Option[float64]
}

type filterPatch struct {
	field   uint32
	cutoff  float32
	enabled bool
	gain    dsp.Volume
	pos     Vec3
	mode    uint32
	tag     Option[float64]
}

func (p filterParams) Diff(base filterParams, path PathBuilder, q EventQueue) {
	DiffF32(p.Cutoff, base.Cutoff, path.With(0), q)
	DiffBool(p.Enabled, base.Enabled, path.With(1), q)
	DiffVolume(p.Gain, base.Gain, path.With(2), q)
	DiffVec3(p.Pos, base.Pos, path.With(3), q)
	DiffU32(p.Mode, base.Mode, path.With(4), q)
	DiffOption(F64Codec, p.Tag, base.Tag, path.With(5), q)
}

func (filterParams) Patch(data ParamData, path Path) (filterPatch, error) {
	idx, rest, ok := path.Head()
	if !ok {
		return filterPatch{}, ErrInvalidPath
	}

	p := filterPatch{field: idx}
	var err error
	switch idx {
	case 0:
		p.cutoff, err = PatchF32(data, rest)
	case 1:
		p.enabled, err = PatchBool(data, rest)
	case 2:
		p.gain, err = PatchVolume(data, rest)
	case 3:
		p.pos, err = PatchVec3(data, rest)
	case 4:
		p.mode, err = PatchU32(data, rest)
	case 5:
		p.tag, err = PatchOption(F64Codec, data, rest)
	default:
		err = ErrInvalidPath
	}
	return p, err
}

func (p *filterParams) Apply(patch filterPatch) {
	switch patch.field {
	case 0:
		p.Cutoff = patch.cutoff
	case 1:
		p.Enabled = patch.enabled
	case 2:
		p.Gain = patch.gain
	case 3:
		p.Pos = patch.pos
	case 4:
		p.Mode = patch.mode
	case 5:
		p.Tag = patch.tag
	}
}

// collect diffs value against baseline with elem and returns the events.
func collect[T, P any](e Elem[T, P], value, baseline T) []ParamEvent {
	var q EventList
	e.Diff(value, baseline, PathBuilder{}, &q)
	return q.Events
}

// roundTrip diffs value against baseline, then patches a copy of baseline
// with the resulting events.
func roundTrip[T, P any](t *testing.T, e Elem[T, P], value, baseline T) T {
	t.Helper()

	got := baseline
	for _, ev := range collect(e, value, baseline) {
		p, err := e.Patch(ev.Data, ev.Path)
		require.NoError(t, err, "patch %v at %v", ev.Data, ev.Path)
		e.Apply(&got, p)
	}
	return got
}

func paths(events []ParamEvent) []Path {
	out := make([]Path, len(events))
	for i, ev := range events {
		out[i] = ev.Path
	}
	return out
}
