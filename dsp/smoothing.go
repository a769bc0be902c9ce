package dsp

import "math"

// SmoothingFilterCoeff holds the coefficients of a one-pole smoothing filter.
// They only depend on the sample rate and the smoothing time, so recompute
// them whenever either changes.
type SmoothingFilterCoeff struct {
	A0 float32
	B1 float32
}

// NewSmoothingFilterCoeff computes coefficients for a filter that moves about
// 63% of the way towards its target every smoothSeconds.
//
// smoothSeconds is floored at MinSmoothSeconds.
func NewSmoothingFilterCoeff(sampleRate SampleRate, smoothSeconds float32) SmoothingFilterCoeff {
	sampleRate.mustValid("NewSmoothingFilterCoeff")

	smooth := max(float64(smoothSeconds), MinSmoothSeconds)
	b1 := math.Exp(-1.0 / (smooth * sampleRate.Float64()))

	return SmoothingFilterCoeff{
		A0: float32(1.0 - b1),
		B1: float32(b1),
	}
}

// SmoothingFilter is a one-pole lowpass used to turn stepped parameter changes
// into ramps. Z1 is the last output.
type SmoothingFilter struct {
	Z1 float32
}

// NewSmoothingFilter returns a filter already resting at value.
func NewSmoothingFilter(value float32) SmoothingFilter {
	return SmoothingFilter{Z1: value}
}

// Process advances the filter one sample towards target and returns the new
// output.
func (f *SmoothingFilter) Process(target float32, coeff SmoothingFilterCoeff) float32 {
	f.Z1 = target*coeff.A0 + f.Z1*coeff.B1
	return f.Z1
}

// processA is Process with target*a0 already computed.
func (f *SmoothingFilter) processA(targetTimesA, b1 float32) float32 {
	f.Z1 = targetTimesA + f.Z1*b1
	return f.Z1
}

// ProcessIntoBuffer fills buffer with successive outputs of the filter moving
// towards target.
func (f *SmoothingFilter) ProcessIntoBuffer(buffer []float32, target float32, coeff SmoothingFilterCoeff) {
	targetTimesA := target * coeff.A0
	z1 := f.Z1
	for i := range buffer {
		z1 = targetTimesA + z1*coeff.B1
		buffer[i] = z1
	}
	f.Z1 = z1
}

// Settle snaps the filter onto target once it is within
// |target|*epsilon + epsilon of it and reports whether the filter now rests
// at target.
func (f *SmoothingFilter) Settle(target, epsilon float32) bool {
	if f.Z1 == target {
		return true
	}

	diff := f.Z1 - target
	if abs32(diff) < abs32(target)*epsilon+epsilon {
		f.Z1 = target
		return true
	}

	return false
}

// HasSettled reports whether the filter output equals target exactly.
func (f *SmoothingFilter) HasSettled(target float32) bool {
	return f.Z1 == target
}

func abs32(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}
