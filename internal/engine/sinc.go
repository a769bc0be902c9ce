package engine

import (
	"fmt"

	"github.com/tphakala/go-rtaudio/internal/filter"
	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// SincKernel is a polyphase Kaiser windowed sinc. Coefficients for a
// sub-sample position are interpolated between table rows with a cubic in
// the fractional phase, evaluated fused with the dot product.
type SincKernel[F simdops.Float] struct {
	block[F]

	params KernelParams
	phases uint64

	// polynomial coefficient tables indexed [phase][tap]
	polyA, polyB, polyC, polyD [][]F

	ops *simdops.Ops[F]
}

// NewSinc designs the filter bank for params and returns the kernel.
func NewSinc[F simdops.Float](channels int, step Step, params KernelParams) (*SincKernel[F], error) {
	b, err := newBlock[F](channels, params.Taps, step)
	if err != nil {
		return nil, err
	}

	half := params.Taps / 2
	proto, err := filter.NewPrototype(params.Cutoff, float64(half), params.Attenuation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKernel, err)
	}

	bank, err := filter.NewCubicBank(params.Phases, params.Taps, func(frac float64, k int) float64 {
		return proto.At(frac + float64(half-1-k))
	}, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKernel, err)
	}

	return &SincKernel[F]{
		block:  b,
		params: params,
		phases: uint64(params.Phases),
		polyA:  convertRows[F](bank.A),
		polyB:  convertRows[F](bank.B),
		polyC:  convertRows[F](bank.C),
		polyD:  convertRows[F](bank.D),
		ops:    simdops.For[F](),
	}, nil
}

// Params returns the kernel design.
func (s *SincKernel[F]) Params() KernelParams {
	return s.params
}

// ProcessBlock implements FixedIn.
func (s *SincKernel[F]) ProcessBlock(in, out [][]F) int {
	var (
		end  Position
		n    int
		step = s.step
		taps = s.taps
		den  = step.Den
		inv  = 1 / float64(den)
	)

	for ch := range s.channels {
		hist := s.load(ch, in[ch])
		dst := out[ch][:s.outMax]

		pos := s.pos
		n = 0
		for pos.Index < InputFramesMax {
			fp := pos.Frac * s.phases
			p, rem := fp/den, fp%den
			window := hist[pos.Index : pos.Index+taps]

			// on a tabulated phase only the constant term remains
			if rem == 0 {
				dst[n] = s.ops.DotProductUnsafe(window, s.polyA[p])
			} else {
				mu := F(float64(rem) * inv)
				dst[n] = s.ops.CubicInterpDot(window, s.polyA[p], s.polyB[p], s.polyC[p], s.polyD[p], mu)
			}
			n++
			pos.Advance(step)
		}
		end = pos
		s.retire(ch)
	}

	s.finish(end)
	return n
}

func convertRows[F simdops.Float](rows [][]float64) [][]F {
	out := make([][]F, len(rows))
	for i, row := range rows {
		out[i] = make([]F, len(row))
		for k, v := range row {
			out[i][k] = F(v)
		}
	}
	return out
}
