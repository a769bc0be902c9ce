package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// Bank is a table of FIR rows indexed by sub-sample phase, stored as cubic
// polynomials in the fractional phase so a kernel for any position between
// two rows can be evaluated as
//
//	h[k](μ) = A[p][k] + μ(B[p][k] + μ(C[p][k] + μ·D[p][k]))
type Bank struct {
	Phases int
	Taps   int

	A, B, C, D [][]float64
}

// KernelFunc returns tap k of the kernel for a fractional sample position
// frac. frac is sampled slightly outside [0, 1) for the guard rows.
type KernelFunc func(frac float64, k int) float64

// NewCubicBank samples kernel at phases+3 positions and builds the cubic
// coefficient table. With normalize set every sampled row is scaled to
// unity DC gain before the cubic fit.
func NewCubicBank(phases, taps int, kernel KernelFunc, normalize bool) (*Bank, error) {
	if phases < 1 {
		return nil, fmt.Errorf("%w: %d phases", ErrInvalidParams, phases)
	}
	if taps < 1 {
		return nil, fmt.Errorf("%w: %d taps", ErrInvalidParams, taps)
	}

	ops := simdops.Float64Ops()

	// rows[i] holds phase i-1
	rows := make([][]float64, phases+extraRows)
	for i := range rows {
		frac := float64(i-1) / float64(phases)
		row := make([]float64, taps)
		for k := range row {
			row[k] = kernel(frac, k)
		}
		if sum := ops.Sum(row); normalize && sum != 0 {
			ops.Scale(row, row, 1/sum)
		}
		rows[i] = row
	}

	b := &Bank{
		Phases: phases,
		Taps:   taps,
		A:      make([][]float64, phases),
		B:      make([][]float64, phases),
		C:      make([][]float64, phases),
		D:      make([][]float64, phases),
	}
	for p := range phases {
		fm1, f0, f1, f2 := rows[p], rows[p+1], rows[p+2], rows[p+3]
		a := make([]float64, taps)
		bb := make([]float64, taps)
		c := make([]float64, taps)
		d := make([]float64, taps)
		for k := range taps {
			ck := cubicCenterCoeff*(f1[k]+fm1[k]) - f0[k]
			dk := cubicDCoeff * (f2[k] - f1[k] + fm1[k] - f0[k] - cubicCMultiplier*ck)
			a[k] = f0[k]
			bb[k] = f1[k] - f0[k] - dk - ck
			c[k] = ck
			d[k] = dk
		}
		b.A[p], b.B[p], b.C[p], b.D[p] = a, bb, c, d
	}
	return b, nil
}

// Coefficient evaluates tap k at phase p and fraction mu.
func (b *Bank) Coefficient(p, k int, mu float64) float64 {
	return b.A[p][k] + mu*(b.B[p][k]+mu*(b.C[p][k]+mu*b.D[p][k]))
}

// Kernel evaluates every tap at phase p and fraction mu into dst.
func (b *Bank) Kernel(dst []float64, p int, mu float64) []float64 {
	dst = dst[:0]
	for k := range b.Taps {
		dst = append(dst, b.Coefficient(p, k, mu))
	}
	return dst
}

// MemoryUsage returns the approximate size of the table in bytes.
func (b *Bank) MemoryUsage() int64 {
	const bytesPerFloat64 = 8
	const polyCoeffs = 4
	return int64(b.Phases) * int64(b.Taps) * polyCoeffs * bytesPerFloat64
}

// Response is a sampled frequency response. Frequencies are normalised to
// the sample rate, so 0.5 is Nyquist.
type Response struct {
	Frequencies []float64
	Magnitude   []float64
	Phase       []float64
}

// FrequencyResponse evaluates the DTFT of taps at numPoints frequencies
// in [0, 0.5).
func FrequencyResponse(taps []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	r := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}
	for i := range numPoints {
		freq := float64(i) / float64(2*numPoints)
		omega := 2 * math.Pi * freq
		var re, im float64
		for n, h := range taps {
			re += h * math.Cos(omega*float64(n))
			im -= h * math.Sin(omega*float64(n))
		}
		r.Frequencies[i] = freq
		r.Magnitude[i] = math.Hypot(re, im)
		r.Phase[i] = math.Atan2(im, re)
	}
	return r
}

// PeakDB returns the largest magnitude in dB over [lo, hi].
func (r Response) PeakDB(lo, hi float64) float64 {
	peak := math.Inf(-1)
	for i, f := range r.Frequencies {
		if f >= lo && f <= hi {
			peak = max(peak, MagnitudeDB(r.Magnitude[i]))
		}
	}
	return peak
}
