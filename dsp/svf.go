package dsp

import "math"

// SVFMode selects the response of a state variable filter.
type SVFMode uint8

// SVF responses.
const (
	SVFLowpass SVFMode = iota
	SVFHighpass
	SVFBandpass
	SVFNotch
	SVFBell
	SVFLowShelf
	SVFHighShelf
)

// String implements fmt.Stringer.
func (m SVFMode) String() string {
	switch m {
	case SVFLowpass:
		return "lowpass"
	case SVFHighpass:
		return "highpass"
	case SVFBandpass:
		return "bandpass"
	case SVFNotch:
		return "notch"
	case SVFBell:
		return "bell"
	case SVFLowShelf:
		return "lowshelf"
	case SVFHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// SVFCoeff holds the coefficients of a trapezoidal-integrated state variable
// filter (Simper/Cytomic topology). The output is m0*v0 + m1*v1 + m2*v2.
type SVFCoeff struct {
	A1, A2, A3 float32
	M0, M1, M2 float32
}

// NewSVFCoeff designs a filter of the given mode. gainDB is only used by the
// bell and shelf responses. q is clamped to a small positive minimum.
func NewSVFCoeff(mode SVFMode, cutoffHz, q, gainDB float32, sampleRate SampleRate) SVFCoeff {
	sampleRate.mustValid("NewSVFCoeff")

	fc := clampCutoff(cutoffHz, sampleRate)
	qq := max(float64(q), minQ)
	g := math.Tan(math.Pi * fc / sampleRate.Float64())
	k := 1 / qq

	var m0, m1, m2 float64
	switch mode {
	case SVFHighpass:
		m0, m1, m2 = 1, -k, -1
	case SVFBandpass:
		m0, m1, m2 = 0, 1, 0
	case SVFNotch:
		m0, m1, m2 = 1, -k, 0
	case SVFBell:
		a := math.Pow(10, float64(gainDB)/shelfDBDivisor)
		k = 1 / (qq * a)
		m0, m1, m2 = 1, k*(a*a-1), 0
	case SVFLowShelf:
		a := math.Pow(10, float64(gainDB)/shelfDBDivisor)
		g /= math.Sqrt(a)
		m0, m1, m2 = 1, k*(a-1), a*a-1
	case SVFHighShelf:
		a := math.Pow(10, float64(gainDB)/shelfDBDivisor)
		g *= math.Sqrt(a)
		m0, m1, m2 = a*a, k*(1-a)*a, 1-a*a
	default:
		m0, m1, m2 = 0, 0, 1
	}

	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	return SVFCoeff{
		A1: float32(a1), A2: float32(a2), A3: float32(a3),
		M0: float32(m0), M1: float32(m1), M2: float32(m2),
	}
}

// SVF is the per-channel state of a state variable filter.
type SVF struct {
	ic1eq float32
	ic2eq float32
}

// Process filters one sample.
func (s *SVF) Process(v0 float32, c SVFCoeff) float32 {
	v3 := v0 - s.ic2eq
	v1 := c.A1*s.ic1eq + c.A2*v3
	v2 := s.ic2eq + c.A2*s.ic1eq + c.A3*v3
	s.ic1eq = 2*v1 - s.ic1eq
	s.ic2eq = 2*v2 - s.ic2eq

	return c.M0*v0 + c.M1*v1 + c.M2*v2
}

// ProcessBuffer filters buf in place.
func (s *SVF) ProcessBuffer(buf []float32, c SVFCoeff) {
	for i, x := range buf {
		buf[i] = s.Process(x, c)
	}
}

// Reset clears the filter state.
func (s *SVF) Reset() {
	*s = SVF{}
}
