// Package resampler converts streams of audio frames between sample rates
// under real-time constraints.
//
// A [FixedResampler] is built once for a channel count, a pair of rates and a
// [Quality]. All buffers are allocated at construction, so the processing
// calls never allocate and can run inside an audio callback.
//
// # Quick Start
//
// One-shot conversion of an interleaved stereo buffer:
//
//	out := resampler.ResampleInterleaved(in, 2,
//	    resampler.MustSampleRate(48000), resampler.MustSampleRate(44100),
//	    resampler.QualityHigh)
//
// Streaming with a sink that receives each output packet:
//
//	r := resampler.NewFixed[float32](2, inRate, outRate, resampler.QualityHigh, true)
//	for chunk := range chunks {
//	    r.ProcessInterleaved(chunk, write, nil, true)
//	}
//	r.ProcessInterleaved(nil, write, &resampler.LastPacketInfo{}, true)
//
// Packets passed to the sink are only valid for the duration of the call.
//
// # Quality
//
//   - [QualityHigh]: Kaiser windowed sinc, about 100 dB of stop-band
//     rejection, cubic interpolation between 256 tabulated phases. Default.
//   - [QualityLow]: linear interpolation. No anti-alias filter, one frame of
//     latency, very cheap.
//
// # Timing
//
// Output positions advance on an exact integer accumulator: the rate ratio
// reduced by its greatest common divisor for [NewFixed], 32.32 fixed point
// for [NewArbitraryRatio]. Long streams never drift.
//
// # Buffer sizing
//
// [FixedResampler.OutAllocFrames] returns an output frame count that is
// always sufficient when the last packet asks for exactly that many frames
// through [LastPacketInfo], which makes total output deterministic.
package resampler
