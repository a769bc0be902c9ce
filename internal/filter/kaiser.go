// Package filter designs the windowed-sinc kernels used by the resampling
// engine.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-rtaudio/internal/mathutil"
)

// ErrInvalidParams is returned for an unusable kernel design.
var ErrInvalidParams = fmt.Errorf("invalid filter parameters")

// Prototype is a continuous Kaiser windowed sinc lowpass
//
//	s(τ) = 2fc · sinc(2fc·τ) · kaiser(τ / halfWidth)
//
// evaluated at a time offset τ in input samples. It is zero for
// |τ| >= halfWidth.
type Prototype struct {
	// Cutoff is the -6 dB point as a fraction of the input rate (0, 0.5).
	Cutoff float64

	// HalfWidth is half the kernel length in input samples.
	HalfWidth float64

	// Beta is the Kaiser window shape.
	Beta float64

	i0Beta float64
}

// NewPrototype validates and returns a prototype.
func NewPrototype(cutoff, halfWidth, attenuation float64) (Prototype, error) {
	if cutoff <= 0 || cutoff >= 0.5 {
		return Prototype{}, fmt.Errorf("%w: cutoff %g outside (0, 0.5)", ErrInvalidParams, cutoff)
	}
	if halfWidth < 1 {
		return Prototype{}, fmt.Errorf("%w: half width %g below 1", ErrInvalidParams, halfWidth)
	}
	if attenuation < 0 {
		return Prototype{}, fmt.Errorf("%w: negative attenuation %g dB", ErrInvalidParams, attenuation)
	}

	beta := mathutil.KaiserBeta(attenuation)
	return Prototype{
		Cutoff:    cutoff,
		HalfWidth: halfWidth,
		Beta:      beta,
		i0Beta:    mathutil.BesselI0(beta),
	}, nil
}

// At evaluates the prototype at tau.
func (p Prototype) At(tau float64) float64 {
	u := tau / p.HalfWidth
	if u <= -1 || u >= 1 {
		return 0
	}
	w := mathutil.BesselI0(p.Beta*math.Sqrt(1-u*u)) / p.i0Beta
	twoFc := 2 * p.Cutoff
	return twoFc * mathutil.Sinc(twoFc*tau) * w
}

// Taps samples the prototype at integer offsets into a symmetric FIR of
// 2*HalfWidth-1 taps, normalised to unity DC gain. Used for analysis.
func (p Prototype) Taps() []float64 {
	half := int(p.HalfWidth)
	n := 2*half - 1
	taps := make([]float64, n)
	var sum float64
	for i := range taps {
		taps[i] = p.At(float64(i - half + 1))
		sum += taps[i]
	}
	if sum != 0 {
		for i := range taps {
			taps[i] /= sum
		}
	}
	return taps
}

// KaiserWindow returns a symmetric Kaiser window of length samples.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return nil
	}
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}
	mid := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)
	for i := range w {
		u := (float64(i) - mid) / mid
		w[i] = mathutil.BesselI0(beta*math.Sqrt(max(0, 1-u*u))) / i0Beta
	}
	return w
}

// MagnitudeDB converts a linear magnitude to dB with a -200 dB floor.
func MagnitudeDB(magnitude float64) float64 {
	const floor = 1e-10
	return 20 * math.Log10(max(math.Abs(magnitude), floor))
}
