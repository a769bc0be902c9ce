package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSelectsTable(t *testing.T) {
	assert.Same(t, &ops32, For[float32]())
	assert.Same(t, &ops64, For[float64]())
	assert.Same(t, Float64Ops(), For[float64]())
}

func TestOpsFloat32(t *testing.T) {
	ops := For[float32]()
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{2, 2, 2, 2, 2}

	assert.InDelta(t, 30, ops.DotProductUnsafe(a, b), 1e-6)
	assert.InDelta(t, 15, ops.Sum(a), 1e-6)

	dst := make([]float32, len(a))
	ops.Scale(dst, a, 0.5)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2, 2.5}, dst)

	il := make([]float32, 2*len(a))
	ops.Interleave2(il, a, b)
	assert.Equal(t, []float32{1, 2, 2, 2, 3, 2, 4, 2, 5, 2}, il)

	l, r := make([]float32, len(a)), make([]float32, len(a))
	ops.Deinterleave2(l, r, il)
	assert.Equal(t, a, l)
	assert.Equal(t, b, r)

	prod := make([]float32, len(a))
	ops.Mul(prod, a, b)
	assert.Equal(t, []float32{2, 4, 6, 8, 10}, prod)
}

func TestOpsFloat64MulInPlace(t *testing.T) {
	ops := For[float64]()
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	ops.Mul(buf, buf, []float64{0.5, 0.5, 2, 2, 0, 1, 1, -1, 3})
	assert.Equal(t, []float64{0.5, 1, 6, 8, 0, 6, 7, -8, 27}, buf)
}

func TestCubicInterpDot(t *testing.T) {
	ops := For[float64]()
	hist := []float64{1, -1, 2, 0.5, 3, 1, -2, 4}
	a := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	b := []float64{1, 0, -1, 0, 1, 0, -1, 0}
	c := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	d := []float64{-0.25, 0, 0.25, 0, -0.25, 0, 0.25, 0}

	for _, x := range []float64{0, 0.3, 0.999} {
		var want float64
		for i := range hist {
			want += hist[i] * (a[i] + x*(b[i]+x*(c[i]+x*d[i])))
		}
		assert.InDelta(t, want, ops.CubicInterpDot(hist, a, b, c, d, x), 1e-12, "x=%g", x)
	}

	// x = 0 reduces to the dot product with a
	assert.InDelta(t, ops.DotProductUnsafe(hist, a), ops.CubicInterpDot(hist, a, b, c, d, 0), 1e-12)
}
