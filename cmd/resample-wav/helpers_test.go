package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resampler "github.com/tphakala/go-rtaudio"
	"github.com/tphakala/go-rtaudio/internal/testutil"
)

// writeSineWAV writes a stereo 16-bit sine with the right channel inverted.
func writeSineWAV(t *testing.T, path string, rate, frames int, freq float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	data := make([]int, frames*2)
	for i := range frames {
		v := int(math.Round(16000 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))))
		data[2*i] = v
		data[2*i+1] = -v
	}
	enc := wav.NewEncoder(f, rate, 16, 2, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readWAV(t *testing.T, path string) (*wav.Decoder, *audio.IntBuffer) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return dec, buf
}

func channel(buf *audio.IntBuffer, ch int) []float64 {
	n := buf.Format.NumChannels
	out := make([]float64, len(buf.Data)/n)
	for i := range out {
		out[i] = float64(buf.Data[i*n+ch])
	}
	return out
}

// =============================================================================
// Input validation
// =============================================================================

func TestOpenWAVInputFileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")
}

func TestOpenWAVInputInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(path)
	require.ErrorIs(t, err, errInvalidWAV)
}

func TestOpenWAVInputDescribes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.wav")
	writeSineWAV(t, path, 44100, 1000, 440)

	in, err := openWAVInput(path)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	assert.Equal(t, uint32(44100), in.rate.Hz())
	assert.Equal(t, 2, in.channels)
	assert.Equal(t, 16, in.bitDepth)
	assert.Equal(t, uint64(1000), in.frames)
}

func TestFullScale(t *testing.T) {
	tests := []struct {
		bits int
		want float64
	}{
		{16, 32767},
		{24, 8388607},
		{32, 2147483647},
	}
	for _, tt := range tests {
		got, err := fullScale(tt.bits)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 0)
	}

	_, err := fullScale(8)
	require.ErrorIs(t, err, errUnsupported)
}

// =============================================================================
// Sample conversion
// =============================================================================

func TestSampleConversionRoundTrip(t *testing.T) {
	src := []int{0, 1, -1, 32767, -32767, 12345, -23456}
	floats := intsToFloats(make([]float64, len(src)), src, 32767)
	back := floatsToInts(make([]int, len(src)), floats, 32767)
	assert.Equal(t, src, back)
}

func TestFloatsToIntsClips(t *testing.T) {
	got := floatsToInts(make([]int, 3), []float64{1.5, -2, 0.5}, 32767)
	assert.Equal(t, []int{32767, -32767, 16384}, got)
}

// =============================================================================
// End to end
// =============================================================================

func TestConvertFile(t *testing.T) {
	for _, planar := range []bool{false, true} {
		name := "interleaved"
		if planar {
			name = "planar"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			inPath := filepath.Join(dir, "in.wav")
			outPath := filepath.Join(dir, "out.wav")
			writeSineWAV(t, inPath, 44100, 44100, 1000)

			stats, err := convertFile(inPath, outPath, convertOptions{
				outRate:   resampler.MustSampleRate(48000),
				quality:   resampler.QualityHigh,
				planar:    planar,
				trimDelay: true,
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(44100), stats.inputFrames)
			assert.Equal(t, uint64(48000), stats.outputFrames)

			dec, buf := readWAV(t, outPath)
			assert.Equal(t, uint32(48000), dec.SampleRate)
			assert.Equal(t, 16, int(dec.BitDepth))
			require.Len(t, buf.Data, 48000*2)

			left, right := channel(buf, 0), channel(buf, 1)
			freq := testutil.ZeroCrossingFrequency(left[1000:47000], 48000)
			t.Logf("%s: measured %.3f Hz", name, freq)
			testutil.AssertRelativeError(t, 1000, freq, 1e-3)

			for i := 1000; i < 47000; i++ {
				require.InDelta(t, -left[i], right[i], 1, "frame %d", i)
			}
		})
	}
}

func TestConvertFileKeepDelay(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")
	writeSineWAV(t, inPath, 48000, 4800, 500)

	opts := convertOptions{
		outRate: resampler.MustSampleRate(16000),
		quality: resampler.QualityLow,
	}
	stats, err := convertFile(inPath, outPath, opts)
	require.NoError(t, err)

	delay := resampler.NewFixed[float64](2, resampler.MustSampleRate(48000), opts.outRate, opts.quality, true).OutputDelay()
	assert.Equal(t, uint64(1600+delay), stats.outputFrames)
}
