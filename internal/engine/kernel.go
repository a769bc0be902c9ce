// Package engine implements the fixed-block resampling kernels behind
// FixedResampler.
//
// Each kernel consumes exactly InputFramesMax planar frames per block and
// emits between zero and OutputFramesMax frames. Output positions are kept on
// an exact integer accumulator, so the timing of a stream never drifts no
// matter how many blocks it spans.
package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// ErrInvalidKernel is returned for unusable kernel parameters.
var ErrInvalidKernel = errors.New("invalid kernel")

// FixedIn is a resampling kernel with a fixed input block size.
type FixedIn[F simdops.Float] interface {
	// Channels is the number of planar channels per block.
	Channels() int

	// InputFramesMax is the exact number of frames ProcessBlock consumes
	// per channel.
	InputFramesMax() int

	// OutputFramesMax bounds the frames ProcessBlock writes per channel.
	OutputFramesMax() int

	// OutputDelay is the latency of the kernel in output frames.
	OutputDelay() int

	// Ratio is output frames per input frame.
	Ratio() float64

	// ProcessBlock consumes InputFramesMax frames from each in[ch] and
	// writes the produced frames to the front of each out[ch], returning
	// how many were written. out[ch] must hold OutputFramesMax frames.
	ProcessBlock(in, out [][]F) int

	// Reset clears the history and rewinds the phase.
	Reset()
}

// New builds the kernel for q.
func New[F simdops.Float](channels int, step Step, q Quality) (FixedIn[F], error) {
	switch q {
	case QualityLow:
		k, err := NewLinear[F](channels, step)
		if err != nil {
			return nil, err
		}
		return k, nil
	case QualityHigh:
		k, err := NewSinc[F](channels, step, ParamsForQuality(q, step.Ratio()))
		if err != nil {
			return nil, err
		}
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unknown quality %d", ErrInvalidKernel, int(q))
	}
}

// block holds the state shared by every kernel: per-channel history, the
// phase accumulator and the block geometry.
type block[F simdops.Float] struct {
	channels int
	taps     int
	step     Step
	start    Position
	pos      Position
	delay    int
	outMax   int

	// history[ch] holds taps-1 frames of the previous block followed by
	// the current block.
	history [][]F
}

func newBlock[F simdops.Float](channels, taps int, step Step) (block[F], error) {
	if channels < 1 || channels > MaxChannels {
		return block[F]{}, fmt.Errorf("%w: %d channels outside [1, %d]", ErrInvalidKernel, channels, MaxChannels)
	}
	if taps < linearTaps || taps%2 != 0 {
		return block[F]{}, fmt.Errorf("%w: %d taps", ErrInvalidKernel, taps)
	}
	if step.Den == 0 || step.Num() == 0 {
		return block[F]{}, fmt.Errorf("%w: zero step", ErrInvalidKernel)
	}

	delay, start := alignDelay(step, taps/2)
	b := block[F]{
		channels: channels,
		taps:     taps,
		step:     step,
		start:    start,
		pos:      start,
		delay:    delay,
		outMax:   step.MaxOutputs(InputFramesMax),
		history:  make([][]F, channels),
	}
	for ch := range b.history {
		b.history[ch] = make([]F, taps-1+InputFramesMax)
	}
	return b, nil
}

func (b *block[F]) Channels() int        { return b.channels }
func (b *block[F]) InputFramesMax() int  { return InputFramesMax }
func (b *block[F]) OutputFramesMax() int { return b.outMax }
func (b *block[F]) OutputDelay() int     { return b.delay }
func (b *block[F]) Ratio() float64       { return b.step.Ratio() }

// Reset zeroes the history and rewinds to the starting phase.
func (b *block[F]) Reset() {
	for _, h := range b.history {
		clear(h)
	}
	b.pos = b.start
}

// load appends one block of input behind the kept history.
func (b *block[F]) load(ch int, in []F) []F {
	h := b.history[ch]
	copy(h[b.taps-1:], in[:InputFramesMax])
	return h
}

// retire keeps the newest taps-1 frames as history for the next block.
func (b *block[F]) retire(ch int) {
	h := b.history[ch]
	copy(h, h[InputFramesMax:])
}

// finish commits the phase reached by the last channel.
func (b *block[F]) finish(end Position) {
	end.Index -= InputFramesMax
	b.pos = end
}
