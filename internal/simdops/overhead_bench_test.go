package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// benchTaps matches a typical high quality kernel length.
const benchTaps = 64

func benchRows[F Float]() (hist, a, b, c, d []F) {
	hist = make([]F, benchTaps)
	a, b, c, d = make([]F, benchTaps), make([]F, benchTaps), make([]F, benchTaps), make([]F, benchTaps)
	for i := range hist {
		hist[i] = F(i) * 0.01
		a[i] = F(i) * 0.02
		b[i] = F(i) * 0.001
		c[i] = F(i) * 0.0005
		d[i] = F(i) * 0.0001
	}
	return hist, a, b, c, d
}

func BenchmarkDirectF64CubicInterpDot(b *testing.B) {
	hist, ra, rb, rc, rd := benchRows[float64]()
	b.ReportAllocs()
	for b.Loop() {
		_ = f64.CubicInterpDot(hist, ra, rb, rc, rd, 0.37)
	}
}

// The table call should cost the same as the direct one.
func BenchmarkIndirectF64CubicInterpDot(b *testing.B) {
	ops := For[float64]()
	hist, ra, rb, rc, rd := benchRows[float64]()
	b.ReportAllocs()
	for b.Loop() {
		_ = ops.CubicInterpDot(hist, ra, rb, rc, rd, 0.37)
	}
}

func BenchmarkDirectF32CubicInterpDot(b *testing.B) {
	hist, ra, rb, rc, rd := benchRows[float32]()
	b.ReportAllocs()
	for b.Loop() {
		_ = f32.CubicInterpDot(hist, ra, rb, rc, rd, 0.37)
	}
}

func BenchmarkIndirectF32CubicInterpDot(b *testing.B) {
	ops := For[float32]()
	hist, ra, rb, rc, rd := benchRows[float32]()
	b.ReportAllocs()
	for b.Loop() {
		_ = ops.CubicInterpDot(hist, ra, rb, rc, rd, 0.37)
	}
}

func BenchmarkIndirectF64DotProduct(b *testing.B) {
	ops := For[float64]()
	hist, ra, _, _, _ := benchRows[float64]()
	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(hist, ra)
	}
}
