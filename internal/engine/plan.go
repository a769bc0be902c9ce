package engine

import (
	"fmt"

	"github.com/tphakala/go-rtaudio/internal/filter"
	"github.com/tphakala/go-rtaudio/internal/mathutil"
)

// Quality selects the interpolation kernel.
type Quality int

const (
	// QualityHigh uses a Kaiser windowed sinc with cubic interpolation
	// between tabulated sub-sample phases. The zero value.
	QualityHigh Quality = iota
	// QualityLow interpolates linearly between neighbouring frames. No
	// anti-alias filtering, about one frame of latency.
	QualityLow
)

// String implements fmt.Stringer.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// KernelParams describes the interpolation kernel chosen for a ratio.
type KernelParams struct {
	Quality Quality

	// Attenuation is the stop-band rejection in dB. Zero for linear.
	Attenuation float64

	// Cutoff is the -6 dB point as a fraction of the input rate.
	Cutoff float64

	// Transition is the full transition width as a fraction of the input rate.
	Transition float64

	// Taps is the kernel length in input frames.
	Taps int

	// Phases is the number of tabulated sub-sample phases. Zero for linear.
	Phases int
}

// ParamsForQuality maps a quality preset and an output/input ratio to kernel
// parameters. Downsampling narrows the cutoff to the output Nyquist, which
// widens the kernel in proportion.
func ParamsForQuality(q Quality, ratio float64) KernelParams {
	nyquist := nyquistFraction * min(1, ratio)

	if q == QualityLow {
		return KernelParams{
			Quality: QualityLow,
			Cutoff:  nyquist,
			Taps:    linearTaps,
		}
	}

	transition := nyquist * transitionFraction
	return KernelParams{
		Quality:     QualityHigh,
		Attenuation: attenuationHigh,
		Cutoff:      nyquist * passbandFraction,
		Transition:  transition,
		Taps:        mathutil.KaiserTaps(attenuationHigh, transition),
		Phases:      filter.DefaultPhases,
	}
}
