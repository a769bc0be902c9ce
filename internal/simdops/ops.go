// Package simdops dispatches the vector kernels of the resampler to the
// float32 or float64 SIMD implementation through one generic table.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the sample type constraint shared by the DSP packages.
type Float interface {
	float32 | float64
}

// Ops holds the SIMD routines for one sample type. Generic code fetches the
// table once with For and calls through it in the inner loops.
type Ops[F Float] struct {
	// DotProductUnsafe returns sum(a[i]*b[i]). a and b must have equal length.
	DotProductUnsafe func(a, b []F) F

	// Interleave2 writes a[0], b[0], a[1], b[1], ... into dst.
	Interleave2 func(dst, a, b []F)

	// Deinterleave2 splits src = a[0], b[0], a[1], b[1], ... into a and b.
	Deinterleave2 func(a, b, src []F)

	// Mul writes a[i]*b[i] into dst.
	Mul func(dst, a, b []F)

	// Sum returns the sum of a.
	Sum func(a []F) F

	// Scale writes a[i]*s into dst.
	Scale func(dst, a []F, s F)

	// CubicInterpDot returns sum(hist[i] * (a[i] + x*(b[i] + x*(c[i] + x*d[i])))),
	// the dot product of hist with a cubic-interpolated kernel row.
	CubicInterpDot func(hist, a, b, c, d []F, x F) F
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Interleave2:      f32.Interleave2,
		Deinterleave2:    f32.Deinterleave2,
		Mul:              f32.Mul,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
		CubicInterpDot:   f32.CubicInterpDot,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Interleave2:      f64.Interleave2,
		Deinterleave2:    f64.Deinterleave2,
		Mul:              f64.Mul,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
		CubicInterpDot:   f64.CubicInterpDot,
	}
)

// For returns the table for F.
func For[F Float]() *Ops[F] {
	if ops, ok := any(&ops32).(*Ops[F]); ok {
		return ops
	}
	if ops, ok := any(&ops64).(*Ops[F]); ok {
		return ops
	}
	panic("simdops: unsupported float type")
}

// Float64Ops returns the float64 table for non-generic code.
func Float64Ops() *Ops[float64] {
	return &ops64
}
