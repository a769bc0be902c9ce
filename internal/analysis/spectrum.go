// Package analysis measures resampler output in the frequency domain.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-rtaudio/internal/filter"
)

var (
	// ErrTooShort is returned when a signal is too short to analyse.
	ErrTooShort = errors.New("signal too short")

	// ErrInvalidSize is returned for an FFT size that is not a power of two
	// or cannot hold the kernel.
	ErrInvalidSize = errors.New("invalid FFT size")
)

const (
	// windowBeta gives a Kaiser window with sidelobes below -150 dB, so a
	// strong tone does not mask a weak spur.
	windowBeta = 20.0

	// MainLobeBins is the half width of the window's main lobe in bins. A
	// guard passed to ToneLevel or SpurDB should be at least this wide.
	MainLobeBins = 8

	minAnalysisLen = 64
	dbFloor        = -300.0
)

// Spectrum is a single-sided magnitude spectrum of a windowed signal,
// scaled so a full-scale sine centred on a bin reads 1.0 at that bin.
type Spectrum struct {
	SampleRate float64
	Magnitude  []float64

	size int

	// powerGain converts a sum of squared magnitudes back to a squared
	// amplitude: (sum w)^2 / (N * sum w^2).
	powerGain float64
}

// NewSpectrum windows signal with a Kaiser window and transforms it with a
// real FFT.
func NewSpectrum(signal []float64, sampleRate float64) (*Spectrum, error) {
	n := len(signal)
	if n < minAnalysisLen {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, n, minAnalysisLen)
	}

	window := filter.KaiserWindow(n, windowBeta)
	windowed := make([]float64, n)
	vecmath.MulBlock(windowed, signal, window)

	gain := floats.Sum(window)
	energy := floats.Dot(window, window)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	mag := make([]float64, len(coeffs))
	scale := 2 / gain
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c) * scale
	}
	return &Spectrum{
		SampleRate: sampleRate,
		Magnitude:  mag,
		size:       n,
		powerGain:  gain * gain / (float64(n) * energy),
	}, nil
}

// Bin returns the bin index closest to freq Hz.
func (s *Spectrum) Bin(freq float64) int {
	b := int(math.Round(freq * float64(s.size) / s.SampleRate))
	return min(max(b, 0), len(s.Magnitude)-1)
}

// Freq returns the centre frequency of bin i in Hz.
func (s *Spectrum) Freq(i int) float64 {
	return float64(i) * s.SampleRate / float64(s.size)
}

// ToneLevel returns the amplitude of a sine at freq from the power within
// guard bins of it. The result does not depend on where the tone falls
// between bins as long as guard covers the main lobe (MainLobeBins). DC is
// excluded.
func (s *Spectrum) ToneLevel(freq float64, guard int) float64 {
	b := s.Bin(freq)
	lo, hi := max(b-guard, 1), min(b+guard, len(s.Magnitude)-1)
	if lo > hi {
		return 0
	}
	band := s.Magnitude[lo : hi+1]
	return math.Sqrt(floats.Dot(band, band) * s.powerGain)
}

// SpurDB returns the strongest component more than guard bins away from
// freq, in dB relative to the tone at freq. DC is ignored.
func (s *Spectrum) SpurDB(freq float64, guard int) float64 {
	tone := s.ToneLevel(freq, guard)
	b := s.Bin(freq)

	var spur float64
	for i := 1; i < len(s.Magnitude); i++ {
		if i >= b-guard && i <= b+guard {
			continue
		}
		spur = max(spur, s.Magnitude[i])
	}
	return ToDB(spur) - ToDB(tone)
}

// ToDB converts a magnitude to dB with a floor instead of -Inf.
func ToDB(m float64) float64 {
	if m <= 0 {
		return dbFloor
	}
	return max(20*math.Log10(m), dbFloor)
}

// KernelResponse zero pads taps to size (a power of two) and returns the
// magnitude response in dB for bins 0..size/2, so bin i sits at
// i/size of the sample rate.
func KernelResponse(taps []float64, size int) ([]float64, error) {
	if size < len(taps) || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d for %d taps", ErrInvalidSize, size, len(taps))
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	in := make([]complex128, size)
	for i, h := range taps {
		in[i] = complex(h, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft forward: %w", err)
	}

	db := make([]float64, size/2+1)
	for i := range db {
		db[i] = ToDB(cmplx.Abs(out[i]))
	}
	return db, nil
}
