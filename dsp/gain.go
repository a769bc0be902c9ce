package dsp

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// ApplyGain multiplies every sample of buf by gain in place.
func ApplyGain[F simdops.Float](buf []F, gain F) {
	simdops.For[F]().Scale(buf, buf, gain)
}

// ApplyGainCurve multiplies buf by a per-sample gain curve, typically the
// output of SmoothedParamBuffer.Get. Only the overlapping prefix is touched.
func ApplyGainCurve(buf, gains []float32) {
	n := min(len(buf), len(gains))
	simdops.For[float32]().Mul(buf[:n], buf[:n], gains[:n])
}

// ApplyGainCurve64 is ApplyGainCurve for float64 buffers.
func ApplyGainCurve64(buf, gains []float64) {
	n := min(len(buf), len(gains))
	vecmath.MulBlockInPlace(buf[:n], gains[:n])
}

// ScaleInto writes src*gain into dst (float64 only).
func ScaleInto(dst, src []float64, gain float64) {
	n := min(len(dst), len(src))
	vecmath.ScaleBlock(dst[:n], src[:n], gain)
}
