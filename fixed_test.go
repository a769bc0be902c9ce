package resampler

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-rtaudio/internal/analysis"
	"github.com/tphakala/go-rtaudio/internal/testutil"
)

// collector gathers sink packets into one slice.
type collector[F Sample] struct {
	samples []F
	packets int
}

func (c *collector[F]) sink(packet []F) {
	c.samples = append(c.samples, packet...)
	c.packets++
}

// stream feeds input in chunks of chunkFrames and finishes with last.
func stream[F Sample](r *FixedResampler[F], input []F, chunkFrames int, last *LastPacketInfo, trim bool) []F {
	var c collector[F]
	step := chunkFrames * r.NumChannels()
	for off := 0; off < len(input); off += step {
		end := min(off+step, len(input))
		r.ProcessInterleaved(input[off:end], c.sink, nil, trim)
	}
	r.ProcessInterleaved(nil, c.sink, last, trim)
	return c.samples
}

func stereoSine[F Sample](frames int, freq, rate float64) []F {
	left := testutil.Sine[F](frames, freq, rate, 0.5)
	right := testutil.Sine[F](frames, freq*1.5, rate, 0.25)
	out := make([]F, 2*frames)
	return Interleave(out, [][]F{left, right})
}

var ratePairs = [][2]uint32{
	{44100, 48000},
	{48000, 44100},
	{48000, 48000},
	{8000, 48000},
	{96000, 22050},
	{44100, 192000},
}

// =============================================================================
// Construction
// =============================================================================

func TestNewFixedAccessors(t *testing.T) {
	r := NewFixed[float32](2, MustSampleRate(44100), MustSampleRate(48000), QualityHigh, true)

	assert.Equal(t, 2, r.NumChannels())
	assert.Equal(t, uint32(44100), r.InSampleRate().Hz())
	assert.Equal(t, uint32(48000), r.OutSampleRate().Hz())
	assert.InDelta(t, 48000.0/44100, r.Ratio(), 1e-12)
	assert.Equal(t, 1024, r.InputBlockFrames())
	assert.Equal(t, 1115, r.MaxOutputBlockFrames())
	assert.Positive(t, r.OutputDelay())
	assert.True(t, r.IsInterleaved())
	assert.Equal(t, QualityHigh, r.Quality())
	assert.False(t, r.IsPassthrough())

	p := NewFixed[float64](1, MustSampleRate(48000), MustSampleRate(48000), QualityLow, false)
	assert.True(t, p.IsPassthrough())
	assert.Zero(t, p.OutputDelay())
	assert.Equal(t, p.InputBlockFrames(), p.MaxOutputBlockFrames())
}

func TestNewFixedPanics(t *testing.T) {
	rate := MustSampleRate(48000)

	assert.Panics(t, func() { NewFixed[float32](2, SampleRate{}, rate, QualityHigh, true) })
	assert.Panics(t, func() { NewFixed[float32](2, rate, SampleRate{}, QualityHigh, true) })
	assert.Panics(t, func() { NewFixed[float32](0, rate, rate, QualityHigh, true) })
	assert.Panics(t, func() { NewFixed[float32](MaxChannels+1, rate, rate, QualityHigh, true) })
	assert.Panics(t, func() { NewFixed[float32](2, rate, MustSampleRate(44100), Quality(42), true) })
}

func TestNewFixedFromConfig(t *testing.T) {
	r, err := NewFixedFromConfig[float32](FixedConfig{Channels: 2, InputRate: 44100, OutputRate: 48000})
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, r.Quality(), "zero quality is high")
	assert.False(t, r.IsInterleaved())

	cases := []struct {
		name    string
		cfg     FixedConfig
		wantErr error
	}{
		{"zero input rate", FixedConfig{Channels: 1, OutputRate: 48000}, ErrInvalidRate},
		{"zero output rate", FixedConfig{Channels: 1, InputRate: 48000}, ErrInvalidRate},
		{"no channels", FixedConfig{InputRate: 48000, OutputRate: 44100}, ErrInvalidConfig},
		{"too many channels", FixedConfig{Channels: 9, InputRate: 48000, OutputRate: 44100}, ErrInvalidConfig},
		{"unknown quality", FixedConfig{Channels: 1, InputRate: 48000, OutputRate: 44100, Quality: 5}, ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFixedFromConfig[float64](tc.cfg)
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewSampleRate(t *testing.T) {
	_, err := NewSampleRate(0)
	require.ErrorIs(t, err, ErrInvalidRate)

	r, err := NewSampleRate(RateCD)
	require.NoError(t, err)
	assert.Equal(t, uint32(RateCD), r.Hz())
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		name string
		want Quality
	}{
		{"low", QualityLow},
		{"LOW", QualityLow},
		{" high ", QualityHigh},
		{"", QualityHigh},
	}
	for _, tt := range tests {
		q, err := ParseQuality(tt.name)
		require.NoError(t, err, "%q", tt.name)
		assert.Equal(t, tt.want, q, "%q", tt.name)
	}

	for _, bad := range []string{"medium", "hq", "lowest"} {
		_, err := ParseQuality(bad)
		require.ErrorIs(t, err, ErrInvalidConfig, "%q", bad)
	}
}

func TestNewArbitraryRatio(t *testing.T) {
	in := MustSampleRate(44100)

	cases := []struct {
		ratio   float64
		outRate uint32
	}{
		{1.5, 66150},
		{0.75, 33075},
		{1.0884, 47999},
	}
	for _, tc := range cases {
		r := NewArbitraryRatio[float32](in, tc.ratio, 2, true)
		assert.Equal(t, tc.outRate, r.OutSampleRate().Hz(), "ratio %v", tc.ratio)
		assert.InDelta(t, tc.ratio, r.Ratio(), 1e-9)
		assert.Equal(t, QualityHigh, r.Quality())
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Panics(t, func() { NewArbitraryRatio[float32](in, bad, 2, true) }, "ratio %v", bad)
	}
	assert.Panics(t, func() { NewArbitraryRatio[float32](in, 1e9, 2, true) })
}

// =============================================================================
// Frame counts
// =============================================================================

// TestOutAllocFramesSufficient runs every rate pair and quality to a flush
// that asks for OutAllocFrames(n) and expects exactly that many frames.
func TestOutAllocFramesSufficient(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityHigh} {
		for _, rates := range ratePairs {
			for _, n := range []int{0, 1, 100, 1000, 1024, 5000} {
				name := fmt.Sprintf("%s/%d-%d/%d", q, rates[0], rates[1], n)
				t.Run(name, func(t *testing.T) {
					r := NewFixed[float32](2, MustSampleRate(rates[0]), MustSampleRate(rates[1]), q, true)
					want := r.OutAllocFrames(uint64(n))

					out := stream(r, stereoSine[float32](n, 440, float64(rates[0])), 333, DesiredOutput(want), true)
					assert.Len(t, out, int(want)*2)
				})
			}
		}
	}
}

func TestOutAllocFrames(t *testing.T) {
	r := NewFixed[float32](1, MustSampleRate(48000), MustSampleRate(44100), QualityLow, true)
	assert.Equal(t, uint64(919), r.OutAllocFrames(1000))
	assert.Equal(t, uint64(1), r.OutAllocFrames(0))

	r = NewFixed[float32](1, MustSampleRate(44100), MustSampleRate(48000), QualityLow, true)
	assert.Equal(t, uint64(48001), r.OutAllocFrames(44100))
}

// TestEndToEndLowQuality converts 1000 stereo frames from 48k to 44.1k with
// the delay trimmed and checks the flushed total.
func TestEndToEndLowQuality(t *testing.T) {
	r := NewFixed[float32](2, MustSampleRate(48000), MustSampleRate(44100), QualityLow, true)
	input := stereoSine[float32](1000, 1000, 48000)
	want := r.OutAllocFrames(1000)

	var c collector[float32]
	r.ProcessInterleaved(input, c.sink, nil, true)
	r.ProcessInterleaved(nil, c.sink, DesiredOutput(want), true)

	assert.Equal(t, int(want), len(c.samples)/2)
	testutil.AssertFinite(t, c.samples)
}

func TestFlushWithoutDesiredEmitsTail(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityHigh} {
		r := NewFixed[float64](1, MustSampleRate(44100), MustSampleRate(48000), q, true)
		const n = 3000

		out := stream(r, testutil.Sine[float64](n, 500, 44100, 1), 1000, &LastPacketInfo{}, true)
		assert.GreaterOrEqual(t, len(out), int(float64(n)*r.Ratio()), q.String())
	}
}

// =============================================================================
// Signal
// =============================================================================

func TestIdentityPassthrough(t *testing.T) {
	input := stereoSine[float64](5000, 1000, 48000)
	out := ResampleInterleaved(input, 2, MustSampleRate(48000), MustSampleRate(48000), QualityHigh)

	require.Len(t, out, len(input)+2, "OutAllocFrames adds one frame")
	assert.Equal(t, input, out[:len(input)])
	assert.Equal(t, []float64{0, 0}, out[len(input):])
}

// TestIdentityThroughKernel forces the sinc kernel at a unity ratio and
// expects the input back once the delay is trimmed.
func TestIdentityThroughKernel(t *testing.T) {
	r := NewArbitraryRatio[float64](MustSampleRate(48000), 1, 1, true)
	require.False(t, r.IsPassthrough())

	input := testutil.Sine[float64](8000, 1000, 48000, 0.9)
	out := stream(r, input, 512, DesiredOutput(uint64(len(input))), true)
	require.Len(t, out, len(input))

	var maxErr float64
	for i := 200; i < len(input)-200; i++ {
		maxErr = max(maxErr, math.Abs(out[i]-input[i]))
	}
	t.Logf("delay=%d max error %.2e", r.OutputDelay(), maxErr)
	assert.Less(t, maxErr, 1e-3)
}

// TestLongStreamNoDrift resamples ten seconds of a 1 kHz tone from 44.1k to
// 48k in odd sized chunks and measures the output frequency.
func TestLongStreamNoDrift(t *testing.T) {
	const (
		inRate  = 44100
		outRate = 48000
		freq    = 1000.0
		seconds = 10
	)

	for _, q := range []Quality{QualityLow, QualityHigh} {
		t.Run(q.String(), func(t *testing.T) {
			r := NewFixed[float32](1, MustSampleRate(inRate), MustSampleRate(outRate), q, true)
			input := testutil.Sine[float32](inRate*seconds, freq, inRate, 0.8)

			out := stream(r, input, 777, DesiredOutput(r.OutAllocFrames(uint64(len(input)))), true)
			got := testutil.ZeroCrossingFrequency(out, outRate)

			t.Logf("measured %.4f Hz over %d frames", got, len(out))
			testutil.AssertRelativeError(t, freq, got, 1e-3)
		})
	}
}

// =============================================================================
// Streaming behaviour
// =============================================================================

func TestSpectralPurity(t *testing.T) {
	tests := []struct {
		quality Quality
		in, out uint32
		maxSpur float64
	}{
		{QualityHigh, 44100, 48000, -90},
		{QualityHigh, 48000, 44100, -90},
		{QualityHigh, 96000, 48000, -90},
		{QualityLow, 44100, 48000, -50},
	}

	const tone = 1000.0
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d_%d", tt.quality, tt.in, tt.out), func(t *testing.T) {
			input := testutil.Sine[float64](2*int(tt.in), tone, float64(tt.in), 0.5)
			out := ResampleInterleaved(input, 1, MustSampleRate(tt.in), MustSampleRate(tt.out), tt.quality)

			sp, err := analysis.NewSpectrum(out, float64(tt.out))
			require.NoError(t, err)

			level := sp.ToneLevel(tone, 16)
			spur := sp.SpurDB(tone, 16)
			t.Logf("tone %.4f, worst spur %.1f dBc", level, spur)
			assert.InDelta(t, 0.5, level, 0.01)
			assert.Less(t, spur, tt.maxSpur)
		})
	}
}

func TestChunkingDoesNotChangeOutput(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityHigh} {
		input := stereoSine[float32](6000, 440, 44100)
		newR := func() *FixedResampler[float32] {
			return NewFixed[float32](2, MustSampleRate(44100), MustSampleRate(48000), q, true)
		}

		whole := stream(newR(), input, len(input), &LastPacketInfo{}, true)
		for _, chunk := range []int{1, 17, 1023, 1024, 1025} {
			assert.Equal(t, whole, stream(newR(), input, chunk, &LastPacketInfo{}, true), "%s chunk %d", q, chunk)
		}
	}
}

func TestPlanarMatchesInterleaved(t *testing.T) {
	const frames = 4000
	in, out := MustSampleRate(48000), MustSampleRate(44100)
	input := stereoSine[float64](frames, 300, 48000)

	inter := ResampleInterleaved(input, 2, in, out, QualityHigh)

	planarIn := [][]float64{make([]float64, frames), make([]float64, frames)}
	require.Equal(t, frames, Deinterleave(planarIn, input))
	planar := ResamplePlanar(planarIn, in, out, QualityHigh)

	require.Len(t, planar, 2)
	require.Len(t, planar[0], len(inter)/2)
	back := make([]float64, len(inter))
	assert.Equal(t, inter, Interleave(back, planar))
}

func TestTrimDelayShiftsOutput(t *testing.T) {
	in, out := MustSampleRate(44100), MustSampleRate(48000)
	input := testutil.Sine[float32](5000, 700, 44100, 0.5)

	raw := stream(NewFixed[float32](1, in, out, QualityHigh, true), input, 1000, &LastPacketInfo{}, false)
	trimmed := stream(NewFixed[float32](1, in, out, QualityHigh, true), input, 1000, &LastPacketInfo{}, true)

	delay := NewFixed[float32](1, in, out, QualityHigh, true).OutputDelay()
	require.Positive(t, delay)
	require.Len(t, trimmed, len(raw)-delay)
	assert.Equal(t, raw[delay:], trimmed)
}

// TestLastPacketResets checks a finished stream leaves the resampler ready
// for an identical second run.
func TestLastPacketResets(t *testing.T) {
	r := NewFixed[float32](2, MustSampleRate(22050), MustSampleRate(44100), QualityHigh, true)
	input := stereoSine[float32](2500, 440, 22050)

	first := stream(r, input, 700, DesiredOutput(r.OutAllocFrames(2500)), true)
	second := stream(r, input, 700, DesiredOutput(r.OutAllocFrames(2500)), true)
	assert.Equal(t, first, second)

	// an explicit Reset mid stream also starts over
	var c collector[float32]
	r.ProcessInterleaved(input[:1000], c.sink, nil, true)
	r.Reset()
	third := stream(r, input, 700, DesiredOutput(r.OutAllocFrames(2500)), true)
	assert.Equal(t, first, third)
}

func TestSinkPacketsAreBounded(t *testing.T) {
	r := NewFixed[float32](2, MustSampleRate(8000), MustSampleRate(48000), QualityHigh, false)
	input := [][]float32{make([]float32, 10000), make([]float32, 10000)}

	packets := 0
	r.ProcessPlanar(input, func(p [][]float32) {
		packets++
		require.Len(t, p, 2)
		assert.LessOrEqual(t, len(p[0]), r.MaxOutputBlockFrames())
		assert.Len(t, p[1], len(p[0]))
	}, nil, true)
	assert.Equal(t, 10000/r.InputBlockFrames(), packets)
}

func TestProcessPanicsOnMisuse(t *testing.T) {
	in, out := MustSampleRate(48000), MustSampleRate(44100)
	inter := NewFixed[float32](2, in, out, QualityLow, true)
	planar := NewFixed[float32](2, in, out, QualityLow, false)
	nop := func([]float32) {}
	nopPlanar := func([][]float32) {}

	assert.Panics(t, func() { inter.ProcessInterleaved(make([]float32, 3), nop, nil, false) })
	assert.Panics(t, func() { inter.ProcessPlanar([][]float32{{1}, {1}}, nopPlanar, nil, false) })
	assert.Panics(t, func() { planar.ProcessInterleaved([]float32{1, 1}, nop, nil, false) })
	assert.Panics(t, func() { planar.ProcessPlanar([][]float32{{1}}, nopPlanar, nil, false) })
	assert.Panics(t, func() { planar.ProcessPlanar([][]float32{{1, 2}, {1}}, nopPlanar, nil, false) })
}

func TestProcessDoesNotAllocate(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityHigh} {
		r := NewFixed[float32](2, MustSampleRate(44100), MustSampleRate(48000), q, true)
		chunk := stereoSine[float32](480, 440, 44100)

		var frames int
		sink := func(p []float32) { frames += len(p) }

		allocs := testing.AllocsPerRun(200, func() {
			r.ProcessInterleaved(chunk, sink, nil, true)
		})
		assert.Zero(t, allocs, q.String())
		assert.Positive(t, frames)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func TestDeinterleaveStereo(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6, 7}
	left, right := make([]float64, 5), make([]float64, 5)

	// the trailing half frame is ignored and extra capacity is untouched
	assert.Equal(t, 3, Deinterleave([][]float64{left, right}, src))
	assert.Equal(t, []float64{1, 3, 5, 0, 0}, left)
	assert.Equal(t, []float64{2, 4, 6, 0, 0}, right)

	assert.Panics(t, func() { Deinterleave([][]float64{left[:2], right}, src) })
}

func TestInterleaveRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 2, 3, 6} {
		planar := make([][]float32, channels)
		for ch := range planar {
			planar[ch] = testutil.Sine[float32](50, float64(100*(ch+1)), 8000, 1)
		}

		inter := Interleave(make([]float32, 50*channels+7), planar)
		require.Len(t, inter, 50*channels)
		assert.Equal(t, planar[channels-1][3], inter[3*channels+channels-1])

		back := make([][]float32, channels)
		for ch := range back {
			back[ch] = make([]float32, 50)
		}
		assert.Equal(t, 50, Deinterleave(back, inter))
		assert.Equal(t, planar, back, "channels %d", channels)
	}

	assert.Panics(t, func() { Interleave(make([]float32, 3), [][]float32{{1, 2}, {3, 4}}) })
	assert.Empty(t, Interleave(make([]float32, 4), nil))
}

func BenchmarkProcessInterleavedStereo(b *testing.B) {
	for _, q := range []Quality{QualityLow, QualityHigh} {
		b.Run(q.String(), func(b *testing.B) {
			r := NewFixed[float32](2, MustSampleRate(44100), MustSampleRate(48000), q, true)
			chunk := stereoSine[float32](4096, 440, 44100)
			sink := func([]float32) {}

			b.ResetTimer()
			for range b.N {
				r.ProcessInterleaved(chunk, sink, nil, false)
			}
		})
	}
}
