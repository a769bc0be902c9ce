package dsp

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidSampleRate is returned when a sample rate of zero is requested.
var ErrInvalidSampleRate = errors.New("invalid sample rate")

// SampleRate is a sample rate in Hz that is never zero.
//
// The zero value of SampleRate is not a usable rate. Constructors throughout
// this module treat it as a programming error and panic, so a rate obtained
// from NewSampleRate or MustSampleRate can be passed around without further
// checks.
type SampleRate struct {
	hz uint32
}

// NewSampleRate validates hz and returns it as a SampleRate.
func NewSampleRate(hz uint32) (SampleRate, error) {
	if hz == 0 {
		return SampleRate{}, fmt.Errorf("%w: must be greater than zero", ErrInvalidSampleRate)
	}
	return SampleRate{hz: hz}, nil
}

// MustSampleRate is like NewSampleRate but panics on a zero rate.
// Intended for constants and tests.
func MustSampleRate(hz uint32) SampleRate {
	r, err := NewSampleRate(hz)
	if err != nil {
		panic(err)
	}
	return r
}

// Hz returns the rate in Hz.
func (r SampleRate) Hz() uint32 { return r.hz }

// Float64 returns the rate in Hz as a float64.
func (r SampleRate) Float64() float64 { return float64(r.hz) }

// IsValid reports whether r was produced by a constructor (non-zero).
func (r SampleRate) IsValid() bool { return r.hz != 0 }

// String implements fmt.Stringer.
func (r SampleRate) String() string {
	return strconv.FormatUint(uint64(r.hz), 10) + " Hz"
}

// mustValid panics if r is the zero value.
func (r SampleRate) mustValid(caller string) {
	if r.hz == 0 {
		panic(caller + ": zero sample rate")
	}
}
