package resampler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-rtaudio/dsp"
	"github.com/tphakala/go-rtaudio/internal/engine"
)

// Sample is the sample type a resampler operates on.
type Sample interface {
	float32 | float64
}

// SampleRate is a non-zero rate in Hz.
type SampleRate = dsp.SampleRate

// NewSampleRate validates hz. A zero rate returns an error wrapping
// ErrInvalidRate.
func NewSampleRate(hz uint32) (SampleRate, error) {
	r, err := dsp.NewSampleRate(hz)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidRate, err)
	}
	return r, nil
}

// MustSampleRate is like NewSampleRate but panics on zero.
func MustSampleRate(hz uint32) SampleRate {
	return dsp.MustSampleRate(hz)
}

// Quality selects the interpolation kernel.
type Quality = engine.Quality

const (
	// QualityHigh is a Kaiser windowed sinc with cubic sub-phase
	// interpolation. The default.
	QualityHigh = engine.QualityHigh

	// QualityLow is linear interpolation with no anti-alias filter.
	QualityLow = engine.QualityLow
)

// ParseQuality maps "low" or "high" (any case; empty means high) to a
// Quality. Other names return an error wrapping ErrInvalidConfig.
func ParseQuality(name string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case QualityLow.String():
		return QualityLow, nil
	case QualityHigh.String(), "":
		return QualityHigh, nil
	default:
		return QualityHigh, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, name)
	}
}

// Common errors returned by the resampler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrInvalidRate indicates a zero or unrepresentable sample rate.
	ErrInvalidRate = errors.New("invalid sample rate")
)

// FixedConfig holds the construction parameters of a FixedResampler.
type FixedConfig struct {
	// Channels is the number of channels per frame, 1 to MaxChannels.
	Channels int

	// InputRate is the sample rate of the input stream in Hz.
	InputRate uint32

	// OutputRate is the desired output sample rate in Hz.
	OutputRate uint32

	// Quality selects the kernel. The zero value is QualityHigh.
	Quality Quality

	// Interleaved selects ProcessInterleaved over ProcessPlanar.
	Interleaved bool
}

// Validate checks if the configuration is valid.
func (c *FixedConfig) Validate() error {
	if c.InputRate == 0 || c.OutputRate == 0 {
		return fmt.Errorf("%w: %w: rates must be non-zero (input=%d, output=%d)",
			ErrInvalidConfig, ErrInvalidRate, c.InputRate, c.OutputRate)
	}

	if c.Channels < 1 || c.Channels > MaxChannels {
		return fmt.Errorf("%w: channels must be 1-%d, got %d", ErrInvalidConfig, MaxChannels, c.Channels)
	}

	if c.Quality != QualityHigh && c.Quality != QualityLow {
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidConfig, int(c.Quality))
	}

	return nil
}

// LastPacketInfo marks a call as the end of the stream.
type LastPacketInfo struct {
	// DesiredOutputFrames is the exact number of frames the stream should
	// have produced since the last reset once this packet is flushed.
	// Only honoured when HasDesiredOutputFrames is set.
	DesiredOutputFrames uint64

	HasDesiredOutputFrames bool
}

// DesiredOutput returns a LastPacketInfo asking for exactly frames frames.
func DesiredOutput(frames uint64) *LastPacketInfo {
	return &LastPacketInfo{DesiredOutputFrames: frames, HasDesiredOutputFrames: true}
}
