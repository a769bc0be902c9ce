// Package testutil holds signal generators and assertions shared by the
// audio tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// Tolerances used across packages.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01
)

// =============================================================================
// Signals
// =============================================================================

// Sine returns frames samples of a sine at freq Hz sampled at rate Hz.
func Sine[F simdops.Float](frames int, freq, rate, amplitude float64) []F {
	out := make([]F, frames)
	for i := range out {
		out[i] = F(amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}
	return out
}

// Constant returns frames copies of v.
func Constant[F simdops.Float](frames int, v F) []F {
	out := make([]F, frames)
	for i := range out {
		out[i] = v
	}
	return out
}

// ZeroCrossingFrequency estimates the frequency of a sine from its rising
// zero crossings, interpolating each crossing between samples.
func ZeroCrossingFrequency[F simdops.Float](s []F, rate float64) float64 {
	first, last := -1.0, -1.0
	crossings := 0
	for i := 1; i < len(s); i++ {
		a, b := float64(s[i-1]), float64(s[i])
		if a < 0 && b >= 0 {
			at := float64(i-1) + a/(a-b)
			if first < 0 {
				first = at
			}
			last = at
			crossings++
		}
	}
	if crossings < 2 {
		return 0
	}
	return float64(crossings-1) * rate / (last - first)
}

// Peak returns the largest absolute sample.
func Peak[F simdops.Float](s []F) float64 {
	var p float64
	for _, v := range s {
		p = max(p, math.Abs(float64(v)))
	}
	return p
}

// RMS returns the root mean square of s.
func RMS[F simdops.Float](s []F) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}

// =============================================================================
// Assertions
// =============================================================================

// AssertSymmetric verifies s[i] == s[n-1-i].
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := range n / 2 {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance, "not symmetric: s[%d]=%g s[%d]=%g", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertFinite verifies no element is NaN or infinite.
func AssertFinite[F simdops.Float](t *testing.T, s []F) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return assert.Fail(t, "non-finite sample", "s[%d] = %g", i, f)
		}
	}
	return true
}

// AssertDCGain verifies the coefficients sum to want.
func AssertDCGain(t *testing.T, coeffs []float64, want, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, want, sum, tolerance, "DC gain = %g, want %g", sum, want)
}

// AssertRelativeError verifies |actual-expected|/|expected| <= tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	rel := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, rel, tolerance,
		"relative error %e exceeds %e (expected=%g, actual=%g)", rel, tolerance, expected, actual)
}

// AssertInRange verifies minVal <= value <= maxVal.
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("%g outside [%g, %g]", value, minVal, maxVal), msgAndArgs...)
	}
	return true
}
