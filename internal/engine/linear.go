package engine

import "github.com/tphakala/go-rtaudio/internal/simdops"

// LinearKernel interpolates linearly between the two frames either side of
// each output position.
type LinearKernel[F simdops.Float] struct {
	block[F]
}

// NewLinear returns a linear interpolation kernel.
func NewLinear[F simdops.Float](channels int, step Step) (*LinearKernel[F], error) {
	b, err := newBlock[F](channels, linearTaps, step)
	if err != nil {
		return nil, err
	}
	return &LinearKernel[F]{block: b}, nil
}

// ProcessBlock implements FixedIn.
func (l *LinearKernel[F]) ProcessBlock(in, out [][]F) int {
	var (
		end  Position
		n    int
		step = l.step
		inv  = 1 / float64(step.Den)
	)

	for ch := range l.channels {
		hist := l.load(ch, in[ch])
		dst := out[ch][:l.outMax]

		pos := l.pos
		n = 0
		for pos.Index < InputFramesMax {
			x0 := hist[pos.Index]
			x1 := hist[pos.Index+1]
			mu := F(float64(pos.Frac) * inv)
			dst[n] = x0 + (x1-x0)*mu
			n++
			pos.Advance(step)
		}
		end = pos
		l.retire(ch)
	}

	l.finish(end)
	return n
}
