// Command resample-wav converts a PCM WAV file to another sample rate with
// the fixed-ratio resampler.
//
// Usage:
//
//	resample-wav -rate 48000 input.wav output.wav
//	resample-wav -rate 16000 -quality low -planar speech.wav speech_16k.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	resampler "github.com/tphakala/go-rtaudio"
)

const (
	defaultRate     = 48000
	chunkFrames     = 4096
	minRequiredArgs = 2
)

var errUsage = errors.New("usage: resample-wav [options] input.wav output.wav")

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("resample-wav failed")
	}
}

func run(argv []string) error {
	fs := flag.NewFlagSet("resample-wav", flag.ContinueOnError)
	rate := fs.Uint("rate", defaultRate, "target sample rate in Hz")
	quality := fs.String("quality", "high", "kernel quality: low or high")
	planar := fs.Bool("planar", false, "run the resampler in planar mode")
	keepDelay := fs.Bool("keep-delay", false, "keep the leading kernel delay in the output")
	verbose := fs.Bool("v", false, "verbose output")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return errUsage
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	q, err := resampler.ParseQuality(*quality)
	if err != nil {
		return err
	}
	outRate, err := resampler.NewSampleRate(uint32(*rate))
	if err != nil {
		return err
	}

	opts := convertOptions{
		outRate:   outRate,
		quality:   q,
		planar:    *planar,
		trimDelay: !*keepDelay,
	}

	inputPath, outputPath := fs.Arg(0), fs.Arg(1)
	start := time.Now()
	stats, err := convertFile(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf("  %.2fs, %.1fx realtime\n", secs,
			float64(stats.inputFrames)/float64(stats.inputRate)/secs)
	}
	return nil
}
