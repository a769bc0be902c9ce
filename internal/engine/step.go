package engine

import (
	"math"

	"github.com/tphakala/go-rtaudio/internal/mathutil"
)

// Step is the distance between two output frames measured in input frames,
// held exactly as Whole + Rem/Den.
type Step struct {
	Whole uint64
	Rem   uint64
	Den   uint64
}

// RationalStep returns the exact step for a conversion from inRate to
// outRate, reduced by their greatest common divisor.
func RationalStep(inRate, outRate uint32) Step {
	g := mathutil.GCD(uint64(inRate), uint64(outRate))
	l := uint64(outRate) / g
	m := uint64(inRate) / g
	return Step{Whole: m / l, Rem: m % l, Den: l}
}

// FixedPointStep returns the step for an output/input ratio in 32.32 fixed
// point. The rounding error is fixed at construction and never accumulates.
func FixedPointStep(ratio float64) Step {
	raw := uint64(math.Round(float64(fixedPointOne) / ratio))
	raw = max(raw, 1)
	return Step{Whole: raw >> fixedPointFracBits, Rem: raw & fixedPointMask, Den: fixedPointOne}
}

// Num returns the step in units of 1/Den.
func (s Step) Num() uint64 {
	return s.Whole*s.Den + s.Rem
}

// Ratio returns output frames per input frame.
func (s Step) Ratio() float64 {
	return float64(s.Den) / float64(s.Num())
}

// MaxOutputs returns the largest number of output frames that can fall
// inside n input frames.
func (s Step) MaxOutputs(n int) int {
	num := s.Num()
	return int((uint64(n)*s.Den + num - 1) / num)
}

// Position is a point on the input time line: Index whole frames plus
// Frac/Den of a frame.
type Position struct {
	Index int
	Frac  uint64
}

// Advance moves p forward by one step.
func (p *Position) Advance(s Step) {
	p.Frac += s.Rem
	if p.Frac >= s.Den {
		p.Frac -= s.Den
		p.Index++
	}
	p.Index += int(s.Whole)
}

// alignDelay picks a whole number of output frames of latency for a kernel
// centred halfTaps input frames behind its newest input, and returns it with
// the starting position that makes that latency exact.
func alignDelay(s Step, halfTaps int) (delay int, start Position) {
	center := uint64(halfTaps) * s.Den
	d := center / s.Num()
	p0 := center - d*s.Num()
	return int(d), Position{Index: int(p0 / s.Den), Frac: p0 % s.Den}
}
