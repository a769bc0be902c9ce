package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-rtaudio/internal/mathutil"
	"github.com/tphakala/go-rtaudio/internal/testutil"
)

const (
	testAttenuation = 100.0
	testCutoff      = 0.2
	testTransition  = 0.05
)

// =============================================================================
// Kaiser window
// =============================================================================

func TestKaiserWindowShape(t *testing.T) {
	for _, n := range []int{11, 21, 51, 64} {
		for _, beta := range []float64{0, 5, 8.65, 10} {
			w := KaiserWindow(n, beta)
			require.Len(t, w, n)
			testutil.AssertSymmetric(t, w, 1e-12)
			testutil.AssertFinite(t, w)

			assert.InDelta(t, 1/mathutil.BesselI0(beta), w[0], 1e-12, "edge n=%d beta=%g", n, beta)
			if n%2 == 1 {
				assert.InDelta(t, 1.0, w[n/2], 1e-12, "center n=%d beta=%g", n, beta)
			}
			for i := 1; i <= (n-1)/2; i++ {
				assert.GreaterOrEqual(t, w[i], w[i-1]-1e-15, "rising half n=%d beta=%g i=%d", n, beta, i)
			}
		}
	}
}

func TestKaiserWindowEdgeCases(t *testing.T) {
	assert.Nil(t, KaiserWindow(0, 5))
	assert.Nil(t, KaiserWindow(-3, 5))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 5))

	for _, v := range KaiserWindow(9, 0) {
		assert.InDelta(t, 1.0, v, 1e-12, "beta 0 is rectangular")
	}
}

// =============================================================================
// Prototype
// =============================================================================

func TestNewPrototypeValidates(t *testing.T) {
	cases := []struct {
		name                      string
		cutoff, half, attenuation float64
	}{
		{"zero cutoff", 0, 16, 80},
		{"nyquist cutoff", 0.5, 16, 80},
		{"tiny width", 0.2, 0.5, 80},
		{"negative attenuation", 0.2, 16, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPrototype(tc.cutoff, tc.half, tc.attenuation)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestPrototypeAt(t *testing.T) {
	p, err := NewPrototype(testCutoff, 16, 80)
	require.NoError(t, err)

	assert.InDelta(t, 2*testCutoff, p.At(0), 1e-12)
	assert.InDelta(t, p.At(3.3), p.At(-3.3), 1e-15)
	assert.Zero(t, p.At(16))
	assert.Zero(t, p.At(-40))
}

func TestPrototypeTapsResponse(t *testing.T) {
	half := float64(mathutil.KaiserTaps(testAttenuation, testTransition) / 2)
	p, err := NewPrototype(testCutoff, half, testAttenuation)
	require.NoError(t, err)

	taps := p.Taps()
	require.Len(t, taps, 2*int(half)-1)
	testutil.AssertSymmetric(t, taps, 1e-15)
	testutil.AssertDCGain(t, taps, 1, 1e-12)

	r := FrequencyResponse(taps, 2048)
	pass := r.PeakDB(0, testCutoff-testTransition)
	stop := r.PeakDB(testCutoff+testTransition, 0.5)
	t.Logf("taps=%d beta=%.3f passband peak=%.5f dB stopband peak=%.1f dB", len(taps), p.Beta, pass, stop)

	assert.InDelta(t, 0, pass, 0.01)
	assert.Less(t, stop, -85.0)
}

// =============================================================================
// Frequency response helpers
// =============================================================================

func TestFrequencyResponseImpulse(t *testing.T) {
	r := FrequencyResponse([]float64{1}, 0)
	require.Len(t, r.Magnitude, defaultResponsePoints)
	for i, m := range r.Magnitude {
		assert.InDelta(t, 1.0, m, 1e-12, "bin %d", i)
	}

	// two tap average has a null at Nyquist
	r = FrequencyResponse([]float64{0.5, 0.5}, 64)
	assert.InDelta(t, 1.0, r.Magnitude[0], 1e-12)
	assert.Less(t, r.Magnitude[63], 0.03)
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0, MagnitudeDB(1), testutil.DBTolerance)
	assert.InDelta(t, -20, MagnitudeDB(0.1), testutil.DBTolerance)
	assert.InDelta(t, -20, MagnitudeDB(-0.1), testutil.DBTolerance)
	assert.InDelta(t, -200, MagnitudeDB(0), testutil.DBTolerance)
	assert.False(t, math.IsInf(MagnitudeDB(0), 0))
}
