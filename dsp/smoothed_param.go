package dsp

// SmootherConfig configures a SmoothedParam.
type SmootherConfig struct {
	// SmoothSeconds is the time constant of the smoothing filter.
	SmoothSeconds float32

	// SettleEpsilon is the threshold below which the smoothed value snaps to
	// its target. Clamped to the float32 machine epsilon.
	SettleEpsilon float32
}

// DefaultSmootherConfig returns a 15 ms smoother with a 0.001 settle threshold.
func DefaultSmootherConfig() SmootherConfig {
	return SmootherConfig{
		SmoothSeconds: DefaultSmoothSeconds,
		SettleEpsilon: DefaultSettleEpsilon,
	}
}

// SmoothedParam is a parameter target paired with the filter that ramps
// towards it.
type SmoothedParam struct {
	targetValue   float32
	targetTimesA  float32
	filter        SmoothingFilter
	coeff         SmoothingFilterCoeff
	smoothSeconds float32
	settleEpsilon float32
}

// NewSmoothedParam returns a parameter resting at value.
func NewSmoothedParam(value float32, config SmootherConfig, sampleRate SampleRate) SmoothedParam {
	smooth := max(config.SmoothSeconds, MinSmoothSeconds)
	coeff := NewSmoothingFilterCoeff(sampleRate, smooth)

	return SmoothedParam{
		targetValue:   value,
		targetTimesA:  value * coeff.A0,
		filter:        NewSmoothingFilter(value),
		coeff:         coeff,
		smoothSeconds: smooth,
		settleEpsilon: max(config.SettleEpsilon, float32Epsilon),
	}
}

// TargetValue returns the value the parameter is moving towards.
func (p *SmoothedParam) TargetValue() float32 {
	return p.targetValue
}

// Current returns the last smoothed output.
func (p *SmoothedParam) Current() float32 {
	return p.filter.Z1
}

// SetValue sets a new target. The output ramps towards it on subsequent calls.
func (p *SmoothedParam) SetValue(value float32) {
	p.targetValue = value
	p.targetTimesA = value * p.coeff.A0
}

// Settle snaps onto the target if close enough and reports whether the
// parameter has settled.
func (p *SmoothedParam) Settle() bool {
	return p.filter.Settle(p.targetValue, p.settleEpsilon)
}

// IsSmoothing reports whether the output still differs from the target.
func (p *SmoothedParam) IsSmoothing() bool {
	return !p.filter.HasSettled(p.targetValue)
}

// HasSettled reports whether the output equals the target.
func (p *SmoothedParam) HasSettled() bool {
	return p.filter.HasSettled(p.targetValue)
}

// HasSettledAt reports whether the parameter has settled exactly at value.
func (p *SmoothedParam) HasSettledAt(value float32) bool {
	return p.targetValue == value && p.filter.HasSettled(p.targetValue)
}

// HasSettledAtOrBelow reports whether the parameter has settled at a target
// no greater than value. Useful to detect a gain that has faded to silence.
func (p *SmoothedParam) HasSettledAtOrBelow(value float32) bool {
	return p.targetValue <= value && p.filter.HasSettled(p.targetValue)
}

// ResetToTarget jumps the output straight to the target.
func (p *SmoothedParam) ResetToTarget() {
	p.filter = NewSmoothingFilter(p.targetValue)
}

// NextSmoothed advances one sample and returns the smoothed value.
func (p *SmoothedParam) NextSmoothed() float32 {
	return p.filter.processA(p.targetTimesA, p.coeff.B1)
}

// ProcessIntoBuffer fills buffer with smoothed values. Once settled the buffer
// is simply filled with the target.
func (p *SmoothedParam) ProcessIntoBuffer(buffer []float32) {
	if !p.IsSmoothing() {
		fill(buffer, p.targetValue)
		return
	}

	p.filter.ProcessIntoBuffer(buffer, p.targetValue, p.coeff)
	p.filter.Settle(p.targetValue, p.settleEpsilon)
}

// SetSmoothSeconds changes the smoothing time.
func (p *SmoothedParam) SetSmoothSeconds(seconds float32, sampleRate SampleRate) {
	p.smoothSeconds = max(seconds, MinSmoothSeconds)
	p.coeff = NewSmoothingFilterCoeff(sampleRate, p.smoothSeconds)
	p.targetTimesA = p.targetValue * p.coeff.A0
}

// UpdateSampleRate recomputes the coefficients for a new sample rate.
func (p *SmoothedParam) UpdateSampleRate(sampleRate SampleRate) {
	p.coeff = NewSmoothingFilterCoeff(sampleRate, p.smoothSeconds)
	p.targetTimesA = p.targetValue * p.coeff.A0
}

// SmoothedParamBuffer pairs a SmoothedParam with a preallocated block buffer
// so a processor can fetch a per-sample parameter curve for each block.
type SmoothedParamBuffer struct {
	smoother         SmoothedParam
	buffer           []float32
	bufferIsConstant bool
}

// NewSmoothedParamBuffer allocates a buffer of maxBlockFrames samples.
func NewSmoothedParamBuffer(value float32, config SmootherConfig, sampleRate SampleRate, maxBlockFrames int) *SmoothedParamBuffer {
	buffer := make([]float32, max(maxBlockFrames, 1))
	fill(buffer, value)

	return &SmoothedParamBuffer{
		smoother:         NewSmoothedParam(value, config, sampleRate),
		buffer:           buffer,
		bufferIsConstant: true,
	}
}

// TargetValue returns the target of the underlying parameter.
func (b *SmoothedParamBuffer) TargetValue() float32 { return b.smoother.TargetValue() }

// SetValue sets a new target.
func (b *SmoothedParamBuffer) SetValue(value float32) { b.smoother.SetValue(value) }

// IsSmoothing reports whether the parameter is still ramping.
func (b *SmoothedParamBuffer) IsSmoothing() bool { return b.smoother.IsSmoothing() }

// HasSettled reports whether the parameter rests at its target.
func (b *SmoothedParamBuffer) HasSettled() bool { return b.smoother.HasSettled() }

// HasSettledAt reports whether the parameter rests exactly at value.
func (b *SmoothedParamBuffer) HasSettledAt(value float32) bool {
	return b.smoother.HasSettledAt(value)
}

// HasSettledAtOrBelow reports whether the parameter rests at or below value.
func (b *SmoothedParamBuffer) HasSettledAtOrBelow(value float32) bool {
	return b.smoother.HasSettledAtOrBelow(value)
}

// Reset jumps to the target and refills the buffer with it.
func (b *SmoothedParamBuffer) Reset() {
	if b.smoother.IsSmoothing() || !b.bufferIsConstant {
		fill(b.buffer, b.smoother.TargetValue())
		b.bufferIsConstant = true
	}
	b.smoother.ResetToTarget()
}

// Get returns the parameter curve for the next frames samples and whether
// every value in it is the same. frames is capped at the buffer capacity.
// The returned slice is reused by the next call.
func (b *SmoothedParamBuffer) Get(frames int) (values []float32, isConstant bool) {
	frames = min(frames, len(b.buffer))

	b.bufferIsConstant = !b.smoother.IsSmoothing()
	b.smoother.ProcessIntoBuffer(b.buffer[:frames])

	return b.buffer[:frames], b.bufferIsConstant || frames < 2
}

// UpdateStream adapts to a new sample rate and maximum block size. Growing
// the block size allocates, so call this outside the audio callback.
func (b *SmoothedParamBuffer) UpdateStream(sampleRate SampleRate, maxBlockFrames int) {
	b.smoother.UpdateSampleRate(sampleRate)

	maxBlockFrames = max(maxBlockFrames, 1)
	switch {
	case len(b.buffer) > maxBlockFrames:
		b.buffer = b.buffer[:maxBlockFrames]
	case len(b.buffer) < maxBlockFrames:
		grown := make([]float32, maxBlockFrames)
		n := copy(grown, b.buffer)
		fill(grown[n:], b.smoother.TargetValue())
		b.buffer = grown
	}
}

func fill(buf []float32, v float32) {
	for i := range buf {
		buf[i] = v
	}
}
