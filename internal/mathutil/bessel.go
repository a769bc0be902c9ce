// Package mathutil holds the special functions used to design windowed-sinc
// resampling kernels.
package mathutil

import "math"

// BesselI0 returns the zeroth order modified Bessel function of the first
// kind, evaluated by its power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// The series converges for all x; for the β range used by Kaiser windows
// (0..40) it needs well under 100 terms.
func BesselI0(x float64) float64 {
	half := x / 2
	term := 1.0
	sum := 1.0
	for k := 1; k < besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselTolerance {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β giving roughly the requested
// stop-band attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserHighSlope * (attenuation - kaiserHighOffset)
	case attenuation >= kaiserAttLow:
		d := attenuation - kaiserAttLow
		return kaiserMidCoeff*math.Pow(d, kaiserMidExponent) + kaiserMidLinear*d
	default:
		return 0
	}
}

// KaiserTaps estimates the kernel length needed for the attenuation (dB)
// with a transition band of width tb, as a fraction of the sample rate.
// The result is rounded up to a multiple of 4 and clamped to
// [MinTaps, MaxTaps].
func KaiserTaps(attenuation, tb float64) int {
	if tb <= 0 {
		return MaxTaps
	}
	n := int(math.Ceil((attenuation-kaiserLengthOffset)/(kaiserLengthDivide*tb))) + 1
	n = (n + 3) &^ 3
	return min(max(n, MinTaps), MaxTaps)
}

// Kaiser evaluates a Kaiser window at u, where u runs from -1 to 1 across
// the window. It is 0 outside that range.
func Kaiser(u, beta float64) float64 {
	if u <= -1 || u >= 1 {
		return 0
	}
	return BesselI0(beta*math.Sqrt(1-u*u)) / BesselI0(beta)
}

// Sinc returns sin(πx)/(πx).
func Sinc(x float64) float64 {
	if math.Abs(x) < sincEpsilon {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
