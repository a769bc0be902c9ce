package dsp

import "math"

// OnePoleCoeff holds the coefficients of a first order IIR section.
type OnePoleCoeff struct {
	A0 float32
	B1 float32
	hp bool
}

// clampCutoff keeps a cutoff inside (0, Nyquist).
func clampCutoff(cutoffHz float32, sampleRate SampleRate) float64 {
	sr := sampleRate.Float64()
	return min(max(float64(cutoffHz), minCutoffHz), sr*maxCutoffRatio)
}

// NewOnePoleLowpass designs a one-pole lowpass at cutoffHz.
func NewOnePoleLowpass(cutoffHz float32, sampleRate SampleRate) OnePoleCoeff {
	sampleRate.mustValid("NewOnePoleLowpass")
	b1 := math.Exp(-twoPi * clampCutoff(cutoffHz, sampleRate) / sampleRate.Float64())
	return OnePoleCoeff{A0: float32(1 - b1), B1: float32(b1)}
}

// NewOnePoleHighpass designs a one-pole highpass at cutoffHz.
func NewOnePoleHighpass(cutoffHz float32, sampleRate SampleRate) OnePoleCoeff {
	sampleRate.mustValid("NewOnePoleHighpass")
	b1 := math.Exp(-twoPi * clampCutoff(cutoffHz, sampleRate) / sampleRate.Float64())
	return OnePoleCoeff{A0: float32((1 + b1) / 2), B1: float32(b1), hp: true}
}

// OnePole is the state of a one-pole filter for a single channel.
type OnePole struct {
	z1 float32 // previous output
	x1 float32 // previous input (highpass only)
}

// Process filters one sample.
func (f *OnePole) Process(x float32, c OnePoleCoeff) float32 {
	if c.hp {
		y := c.A0*(x-f.x1) + c.B1*f.z1
		f.x1 = x
		f.z1 = y
		return y
	}
	f.z1 = c.A0*x + c.B1*f.z1
	return f.z1
}

// ProcessBuffer filters buf in place.
func (f *OnePole) ProcessBuffer(buf []float32, c OnePoleCoeff) {
	for i, x := range buf {
		buf[i] = f.Process(x, c)
	}
}

// Reset clears the filter state.
func (f *OnePole) Reset() {
	*f = OnePole{}
}
