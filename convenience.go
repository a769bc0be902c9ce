package resampler

import (
	"fmt"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// ResampleInterleaved converts a complete interleaved buffer in one call.
// The result holds exactly OutAllocFrames(frames) frames with the kernel
// delay removed. It panics on the same preconditions as NewFixed.
func ResampleInterleaved[F Sample](input []F, channels int, in, out SampleRate, quality Quality) []F {
	r := NewFixed[F](channels, in, out, quality, true)
	frames := uint64(len(input) / channels)
	want := r.OutAllocFrames(frames)

	result := make([]F, 0, want*uint64(channels))
	r.ProcessInterleaved(input, func(packet []F) {
		result = append(result, packet...)
	}, DesiredOutput(want), true)
	return result
}

// ResamplePlanar is the planar form of ResampleInterleaved.
func ResamplePlanar[F Sample](input [][]F, in, out SampleRate, quality Quality) [][]F {
	channels := len(input)
	r := NewFixed[F](channels, in, out, quality, false)
	want := r.OutAllocFrames(uint64(len(input[0])))

	result := make([][]F, channels)
	for ch := range result {
		result[ch] = make([]F, 0, want)
	}
	r.ProcessPlanar(input, func(packet [][]F) {
		for ch := range result {
			result[ch] = append(result[ch], packet[ch]...)
		}
	}, DesiredOutput(want), true)
	return result
}

// Interleave writes planar channels into dst as L,R,L,R,... and returns the
// written prefix of dst. All channels must have the same length and dst must
// hold them all.
func Interleave[F Sample](dst []F, channels [][]F) []F {
	if len(channels) == 0 {
		return dst[:0]
	}
	frames := len(channels[0])
	need := frames * len(channels)
	if len(dst) < need {
		panic(fmt.Sprintf("resampler: Interleave: dst holds %d samples, need %d", len(dst), need))
	}
	dst = dst[:need]
	interleaveInto(simdops.For[F](), dst, channels)
	return dst
}

// Deinterleave splits interleaved src into len(dst) planar channels and
// returns the number of frames written.
func Deinterleave[F Sample](dst [][]F, src []F) int {
	c := len(dst)
	if c == 0 {
		return 0
	}
	frames := len(src) / c
	for ch, d := range dst {
		if len(d) < frames {
			panic(fmt.Sprintf("resampler: Deinterleave: channel %d holds %d frames, need %d", ch, len(d), frames))
		}
	}
	deinterleaveInto(simdops.For[F](), dst, src[:frames*c], frames)
	return frames
}

// deinterleaveInto writes frames frames of src into dst[ch][:frames].
func deinterleaveInto[F Sample](ops *simdops.Ops[F], dst [][]F, src []F, frames int) {
	if len(dst) == stereoChannels {
		ops.Deinterleave2(dst[0][:frames], dst[1][:frames], src)
		return
	}
	c := len(dst)
	for ch, d := range dst {
		for i := range frames {
			d[i] = src[i*c+ch]
		}
	}
}

func interleaveInto[F Sample](ops *simdops.Ops[F], dst []F, channels [][]F) {
	if len(channels) == stereoChannels {
		ops.Interleave2(dst, channels[0], channels[1])
		return
	}
	c := len(channels)
	for ch, src := range channels {
		for i, v := range src {
			dst[i*c+ch] = v
		}
	}
}
