// Command analyze-kernel prints the interpolation kernel chosen for a rate
// pair, its measured frequency response and the spectral purity of a test
// tone run through the fixed resampler.
//
// Usage:
//
//	analyze-kernel -in 44100 -out 48000
//	analyze-kernel -in 48000 -out 16000 -quality low
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	resampler "github.com/tphakala/go-rtaudio"
	"github.com/tphakala/go-rtaudio/internal/analysis"
	"github.com/tphakala/go-rtaudio/internal/engine"
	"github.com/tphakala/go-rtaudio/internal/filter"
)

const (
	// oversample sets the FFT size relative to the kernel length.
	oversample = 16

	toneSeconds  = 2
	toneFraction = 0.2 // tone frequency as a fraction of the lower rate
	toneAmp      = 0.5
	toneGuard    = 16 // bins around the tone excluded from the spur search
)

func main() {
	in := flag.Uint("in", resampler.RateCD, "input sample rate in Hz")
	out := flag.Uint("out", resampler.RateDAT, "output sample rate in Hz")
	quality := flag.String("quality", "high", "kernel quality: low or high")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	q, err := resampler.ParseQuality(*quality)
	if err != nil {
		logrus.WithError(err).Fatal("bad -quality")
	}

	if err := analyze(uint32(*in), uint32(*out), q); err != nil {
		logrus.WithError(err).Error("analysis failed")
		os.Exit(1)
	}
}

func analyze(inHz, outHz uint32, q resampler.Quality) error {
	inRate, err := resampler.NewSampleRate(inHz)
	if err != nil {
		return err
	}
	outRate, err := resampler.NewSampleRate(outHz)
	if err != nil {
		return err
	}

	ratio := outRate.Float64() / inRate.Float64()
	params := engine.ParamsForQuality(q, ratio)
	r := resampler.NewFixed[float64](1, inRate, outRate, q, false)

	fmt.Printf("=== Kernel for %s -> %s (%s) ===\n", inRate, outRate, q)
	fmt.Printf("  Ratio:        %.6f\n", ratio)
	fmt.Printf("  Taps:         %d\n", params.Taps)
	fmt.Printf("  Phases:       %d\n", params.Phases)
	fmt.Printf("  Cutoff:       %.4f of input rate (%.0f Hz)\n", params.Cutoff, params.Cutoff*inRate.Float64())
	fmt.Printf("  Transition:   %.4f of input rate\n", params.Transition)
	fmt.Printf("  Attenuation:  %.1f dB\n", params.Attenuation)
	fmt.Printf("  Output delay: %d frames\n", r.OutputDelay())
	fmt.Printf("  Pass-through: %v\n\n", r.IsPassthrough())

	if params.Phases > 0 {
		if err := printResponse(params); err != nil {
			return err
		}
	}
	return printTone(inRate, outRate, q)
}

// printResponse measures the prototype's pass-band ripple and stop-band
// rejection.
func printResponse(params engine.KernelParams) error {
	proto, err := filter.NewPrototype(params.Cutoff, float64(params.Taps/2), params.Attenuation)
	if err != nil {
		return err
	}
	taps := proto.Taps()

	size := 1
	for size < len(taps)*oversample {
		size <<= 1
	}
	db, err := analysis.KernelResponse(taps, size)
	if err != nil {
		return err
	}

	passEdge := params.Cutoff - params.Transition/2
	stopEdge := params.Cutoff + params.Transition/2
	ripple, stop := 0.0, math.Inf(-1)
	for i, m := range db {
		f := float64(i) / float64(size)
		switch {
		case f <= passEdge:
			ripple = max(ripple, math.Abs(m))
		case f >= stopEdge:
			stop = max(stop, m)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "printResponse",
		"taps":     len(taps),
		"fft_size": size,
	}).Debug("Measured prototype response")

	fmt.Println("=== Prototype response ===")
	fmt.Printf("  Pass-band edge:   %.4f, ripple %.5f dB\n", passEdge, ripple)
	fmt.Printf("  Stop-band edge:   %.4f, peak %.1f dB\n\n", stopEdge, stop)
	return nil
}

// printTone resamples a sine and reports the strongest spur in the output.
func printTone(inRate, outRate resampler.SampleRate, q resampler.Quality) error {
	freq := toneFraction * math.Min(inRate.Float64(), outRate.Float64())
	frames := toneSeconds * int(inRate.Hz())

	tone := make([]float64, frames)
	for i := range tone {
		tone[i] = toneAmp * math.Sin(2*math.Pi*freq*float64(i)/inRate.Float64())
	}
	resampled := resampler.ResampleInterleaved(tone, 1, inRate, outRate, q)

	sp, err := analysis.NewSpectrum(resampled, outRate.Float64())
	if err != nil {
		return err
	}

	fmt.Println("=== Test tone ===")
	fmt.Printf("  Tone:   %.1f Hz, level %.2f dB\n", freq, analysis.ToDB(sp.ToneLevel(freq, toneGuard)))
	fmt.Printf("  Spur:   %.1f dBc\n", sp.SpurDB(freq, toneGuard))
	return nil
}
