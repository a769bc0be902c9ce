package resampler

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-rtaudio/internal/engine"
	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// FixedResampler converts a stream between two fixed sample rates.
//
// Input is gathered into blocks of InputBlockFrames frames. Every full block
// runs the kernel and its output is handed to the caller's sink. The
// resampler is not safe for concurrent use; it belongs to the audio thread.
type FixedResampler[F Sample] struct {
	kernel engine.FixedIn[F] // nil when the rates match

	channels    int
	inRate      SampleRate
	outRate     SampleRate
	ratio       float64
	quality     Quality
	interleaved bool

	blockFrames int
	outMax      int
	delay       int

	// planar input block and the frames gathered into it so far
	inBlock [][]F
	gather  [][]F // views into inBlock for the interleaved path
	pending int

	outBlock      [][]F
	outViews      [][]F
	interleaveBuf []F

	delayLeft   int
	outputCount uint64

	ops *simdops.Ops[F]
}

// sinks carries whichever output callback the caller supplied.
type sinks[F Sample] struct {
	interleaved func([]F)
	planar      func([][]F)
}

// NewFixed returns a resampler from in to out. It panics on a zero rate or a
// channel count outside [1, MaxChannels].
func NewFixed[F Sample](channels int, in, out SampleRate, quality Quality, interleaved bool) *FixedResampler[F] {
	if !in.IsValid() || !out.IsValid() {
		panic("resampler: NewFixed: zero sample rate")
	}
	mustChannels("NewFixed", channels)

	var kernel engine.FixedIn[F]
	if in != out {
		k, err := engine.New[F](channels, engine.RationalStep(in.Hz(), out.Hz()), quality)
		if err != nil {
			panic(fmt.Sprintf("resampler: NewFixed: %v", err))
		}
		kernel = k
	}

	return newFixed(kernel, channels, in, out, quality, interleaved)
}

// NewFixedFromConfig validates cfg and returns the resampler it describes.
func NewFixedFromConfig[F Sample](cfg FixedConfig) (*FixedResampler[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	in := MustSampleRate(cfg.InputRate)
	out := MustSampleRate(cfg.OutputRate)
	return NewFixed[F](cfg.Channels, in, out, cfg.Quality, cfg.Interleaved), nil
}

// NewArbitraryRatio returns a high quality resampler for an output/input
// ratio that need not be rational. The reported output rate is
// ceil(in * ratio). It panics if ratio is not a positive finite number or
// the output rate does not fit in 32 bits.
func NewArbitraryRatio[F Sample](in SampleRate, ratio float64, channels int, interleaved bool) *FixedResampler[F] {
	if !in.IsValid() {
		panic("resampler: NewArbitraryRatio: zero sample rate")
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		panic(fmt.Sprintf("resampler: NewArbitraryRatio: ratio must be positive and finite, got %v", ratio))
	}
	mustChannels("NewArbitraryRatio", channels)

	outHz := math.Ceil(in.Float64() * ratio)
	if outHz > math.MaxUint32 {
		panic(fmt.Sprintf("resampler: NewArbitraryRatio: output rate %.0f Hz out of range", outHz))
	}
	out := MustSampleRate(uint32(max(outHz, 1)))

	k, err := engine.New[F](channels, engine.FixedPointStep(ratio), QualityHigh)
	if err != nil {
		panic(fmt.Sprintf("resampler: NewArbitraryRatio: %v", err))
	}
	return newFixed(k, channels, in, out, QualityHigh, interleaved)
}

func newFixed[F Sample](kernel engine.FixedIn[F], channels int, in, out SampleRate, quality Quality, interleaved bool) *FixedResampler[F] {
	r := &FixedResampler[F]{
		kernel:      kernel,
		channels:    channels,
		inRate:      in,
		outRate:     out,
		ratio:       out.Float64() / in.Float64(),
		quality:     quality,
		interleaved: interleaved,
		blockFrames: engine.InputFramesMax,
		outMax:      engine.InputFramesMax,
		inBlock:     make([][]F, channels),
		outViews:    make([][]F, channels),
		gather:      make([][]F, channels),
		ops:         simdops.For[F](),
	}
	for ch := range r.inBlock {
		r.inBlock[ch] = make([]F, r.blockFrames)
	}

	if kernel != nil {
		r.ratio = kernel.Ratio()
		r.blockFrames = kernel.InputFramesMax()
		r.outMax = kernel.OutputFramesMax()
		r.delay = kernel.OutputDelay()
		r.outBlock = make([][]F, channels)
		for ch := range r.outBlock {
			r.outBlock[ch] = make([]F, r.outMax)
		}
	} else {
		// pass-through reads the input block directly
		r.outBlock = r.inBlock
	}
	if interleaved {
		r.interleaveBuf = make([]F, r.outMax*channels)
	}
	r.delayLeft = r.delay

	logrus.WithFields(logrus.Fields{
		"function":    "NewFixed",
		"channels":    channels,
		"input_rate":  in.Hz(),
		"output_rate": out.Hz(),
		"quality":     quality.String(),
		"passthrough": kernel == nil,
		"block":       r.blockFrames,
		"max_output":  r.outMax,
		"delay":       r.delay,
	}).Debug("Created fixed resampler")

	return r
}

func mustChannels(caller string, channels int) {
	if channels < 1 || channels > MaxChannels {
		panic(fmt.Sprintf("resampler: %s: channels must be 1-%d, got %d", caller, MaxChannels, channels))
	}
}

// NumChannels returns the number of channels per frame.
func (r *FixedResampler[F]) NumChannels() int { return r.channels }

// InSampleRate returns the input rate.
func (r *FixedResampler[F]) InSampleRate() SampleRate { return r.inRate }

// OutSampleRate returns the output rate.
func (r *FixedResampler[F]) OutSampleRate() SampleRate { return r.outRate }

// Ratio returns output frames per input frame.
func (r *FixedResampler[F]) Ratio() float64 { return r.ratio }

// InputBlockFrames returns the number of input frames processed per block.
func (r *FixedResampler[F]) InputBlockFrames() int { return r.blockFrames }

// MaxOutputBlockFrames bounds the frames in a single sink packet.
func (r *FixedResampler[F]) MaxOutputBlockFrames() int { return r.outMax }

// OutputDelay returns the kernel latency in output frames.
func (r *FixedResampler[F]) OutputDelay() int { return r.delay }

// IsInterleaved reports whether the resampler was built for interleaved I/O.
func (r *FixedResampler[F]) IsInterleaved() bool { return r.interleaved }

// Quality returns the kernel quality.
func (r *FixedResampler[F]) Quality() Quality { return r.quality }

// IsPassthrough reports whether input and output rates match.
func (r *FixedResampler[F]) IsPassthrough() bool { return r.kernel == nil }

// OutAllocFrames returns the number of output frames to allocate for
// inputFrames input frames: inputFrames*out/in + 1.
func (r *FixedResampler[F]) OutAllocFrames(inputFrames uint64) uint64 {
	return inputFrames*uint64(r.outRate.Hz())/uint64(r.inRate.Hz()) + 1
}

// Reset clears kernel history, pending input, the delay trim and the output
// count.
func (r *FixedResampler[F]) Reset() {
	if r.kernel != nil {
		r.kernel.Reset()
	}
	r.pending = 0
	r.delayLeft = r.delay
	r.outputCount = 0
}

// ProcessInterleaved feeds interleaved frames. sink is called with each
// interleaved output packet. A non-nil last flushes the stream and resets
// the resampler; trimDelay drops the leading OutputDelay frames of the
// stream.
//
// It panics if the resampler is planar or len(input) is not a whole number
// of frames.
func (r *FixedResampler[F]) ProcessInterleaved(input []F, sink func([]F), last *LastPacketInfo, trimDelay bool) {
	if !r.interleaved {
		panic("resampler: ProcessInterleaved on a planar resampler")
	}
	if len(input)%r.channels != 0 {
		panic(fmt.Sprintf("resampler: ProcessInterleaved: %d samples is not a multiple of %d channels", len(input), r.channels))
	}

	out := sinks[F]{interleaved: sink}
	frames := len(input) / r.channels
	for done := 0; done < frames; {
		n := min(frames-done, r.blockFrames-r.pending)
		r.gatherInterleaved(input[done*r.channels:(done+n)*r.channels], n)
		done += n
		if r.pending == r.blockFrames {
			r.runBlock(out, trimDelay, last)
		}
	}

	if last != nil {
		r.finish(out, trimDelay, last)
	}
}

// ProcessPlanar feeds one slice per channel. sink is called with one slice
// per channel for each output packet. See ProcessInterleaved for last and
// trimDelay.
//
// It panics if the resampler is interleaved, fewer than NumChannels slices
// are given or they differ in length.
func (r *FixedResampler[F]) ProcessPlanar(input [][]F, sink func([][]F), last *LastPacketInfo, trimDelay bool) {
	if r.interleaved {
		panic("resampler: ProcessPlanar on an interleaved resampler")
	}
	if len(input) < r.channels {
		panic(fmt.Sprintf("resampler: ProcessPlanar: got %d channels, want %d", len(input), r.channels))
	}
	frames := len(input[0])
	for ch := 1; ch < r.channels; ch++ {
		if len(input[ch]) != frames {
			panic(fmt.Sprintf("resampler: ProcessPlanar: channel %d has %d frames, channel 0 has %d", ch, len(input[ch]), frames))
		}
	}

	out := sinks[F]{planar: sink}
	for done := 0; done < frames; {
		n := min(frames-done, r.blockFrames-r.pending)
		for ch := range r.channels {
			copy(r.inBlock[ch][r.pending:], input[ch][done:done+n])
		}
		r.pending += n
		done += n
		if r.pending == r.blockFrames {
			r.runBlock(out, trimDelay, last)
		}
	}

	if last != nil {
		r.finish(out, trimDelay, last)
	}
}

func (r *FixedResampler[F]) gatherInterleaved(src []F, frames int) {
	for ch := range r.channels {
		r.gather[ch] = r.inBlock[ch][r.pending : r.pending+frames]
	}
	deinterleaveInto(r.ops, r.gather, src, frames)
	r.pending += frames
}

// finish flushes the partial block and the kernel tail, then resets.
func (r *FixedResampler[F]) finish(out sinks[F], trimDelay bool, last *LastPacketInfo) {
	if r.pending > 0 {
		r.runBlock(out, trimDelay, last)
	}

	if last.HasDesiredOutputFrames {
		for r.outputCount < last.DesiredOutputFrames {
			r.runZeroBlock(out, trimDelay, last)
		}
	} else if r.kernel != nil {
		r.runZeroBlock(out, trimDelay, last)
	}

	r.Reset()
}

func (r *FixedResampler[F]) runZeroBlock(out sinks[F], trimDelay bool, last *LastPacketInfo) {
	for _, b := range r.inBlock {
		clear(b)
	}
	r.pending = r.blockFrames
	r.runBlock(out, trimDelay, last)
}

// runBlock processes the gathered input, zero padding a short block. In
// pass-through mode only the gathered frames are emitted.
func (r *FixedResampler[F]) runBlock(out sinks[F], trimDelay bool, last *LastPacketInfo) {
	n := r.pending
	if r.kernel != nil {
		for _, b := range r.inBlock {
			clear(b[r.pending:])
		}
		n = r.kernel.ProcessBlock(r.inBlock, r.outBlock)
	}
	r.pending = 0
	r.emit(out, n, trimDelay, last)
}

// emit hands frames [0, n) of the output block to the sink after removing
// any remaining delay and truncating to the desired total.
func (r *FixedResampler[F]) emit(out sinks[F], n int, trimDelay bool, last *LastPacketInfo) {
	start := 0
	if trimDelay && r.delayLeft > 0 {
		start = min(r.delayLeft, n)
		r.delayLeft -= start
	}

	if last != nil && last.HasDesiredOutputFrames {
		if r.outputCount >= last.DesiredOutputFrames {
			return
		}
		remaining := last.DesiredOutputFrames - r.outputCount
		if uint64(n-start) > remaining {
			n = start + int(remaining)
		}
	}
	if n <= start {
		return
	}
	r.outputCount += uint64(n - start)

	for ch := range r.channels {
		r.outViews[ch] = r.outBlock[ch][start:n]
	}
	if out.planar != nil {
		out.planar(r.outViews)
		return
	}
	if out.interleaved != nil {
		buf := r.interleaveBuf[:(n-start)*r.channels]
		interleaveInto(r.ops, buf, r.outViews)
		out.interleaved(buf)
	}
}
