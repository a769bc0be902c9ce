package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	resampler "github.com/tphakala/go-rtaudio"
)

const (
	wavFormatPCM = 1

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
)

var (
	errInvalidWAV  = errors.New("invalid WAV file")
	errUnsupported = errors.New("unsupported WAV format")
)

type convertOptions struct {
	outRate   resampler.SampleRate
	quality   resampler.Quality
	planar    bool
	trimDelay bool
}

type convertStats struct {
	inputRate    uint32
	outputRate   uint32
	channels     int
	bitDepth     int
	inputFrames  uint64
	outputFrames uint64
}

// wavInput is an open, validated PCM WAV decoder.
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     resampler.SampleRate
	channels int
	bitDepth int
	frames   uint64
}

func openWAVInput(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", errInvalidWAV, path)
	}
	if err := dec.FwdToPCM(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %w", errInvalidWAV, path, err)
	}

	in, err := describeInput(dec)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	in.file = f
	return in, nil
}

func describeInput(dec *wav.Decoder) (*wavInput, error) {
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d", errUnsupported, dec.WavAudioFormat)
	}
	bitDepth := int(dec.BitDepth)
	if _, err := fullScale(bitDepth); err != nil {
		return nil, err
	}
	channels := int(dec.NumChans)
	if channels < 1 || channels > resampler.MaxChannels {
		return nil, fmt.Errorf("%w: %d channels", errUnsupported, channels)
	}
	rate, err := resampler.NewSampleRate(dec.SampleRate)
	if err != nil {
		return nil, err
	}

	var frames uint64
	if blockAlign := uint64(channels * bitDepth / 8); blockAlign > 0 && dec.PCMSize > 0 {
		frames = uint64(dec.PCMSize) / blockAlign
	}
	return &wavInput{decoder: dec, rate: rate, channels: channels, bitDepth: bitDepth, frames: frames}, nil
}

func (w *wavInput) Close() error {
	return w.file.Close()
}

// fullScale returns the positive full-scale integer value for bitDepth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("%w: %d-bit", errUnsupported, bitDepth)
	}
}

// intsToFloats scales PCM integers into [-1, 1].
func intsToFloats(dst []float64, src []int, scale float64) []float64 {
	dst = dst[:len(src)]
	inv := 1 / scale
	for i, v := range src {
		dst[i] = float64(v) * inv
	}
	return dst
}

// floatsToInts scales and clips samples back to PCM integers.
func floatsToInts(dst []int, src []float64, scale float64) []int {
	dst = dst[:len(src)]
	for i, v := range src {
		v = min(max(v, -1), 1) * scale
		if v >= 0 {
			dst[i] = int(v + 0.5)
		} else {
			dst[i] = int(v - 0.5)
		}
	}
	return dst
}

// pcmWriter encodes float packets from the resampler sink.
type pcmWriter struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	scale  float64
	frames uint64
	err    error
}

func newPCMWriter(w io.WriteSeeker, rate resampler.SampleRate, bitDepth, channels int) (*pcmWriter, error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	return &pcmWriter{
		enc: wav.NewEncoder(w, int(rate.Hz()), bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: int(rate.Hz())},
			SourceBitDepth: bitDepth,
		},
		scale: scale,
	}, nil
}

// writeInterleaved is a sink for interleaved packets. The first error sticks.
func (p *pcmWriter) writeInterleaved(packet []float64) {
	if p.err != nil {
		return
	}
	p.buf.Data = floatsToInts(growInts(p.buf.Data, len(packet)), packet, p.scale)
	p.frames += uint64(len(packet) / p.buf.Format.NumChannels)
	p.err = p.enc.Write(p.buf)
}

// planarSink adapts writeInterleaved to planar packets.
func (p *pcmWriter) planarSink() func([][]float64) {
	var scratch []float64
	return func(packet [][]float64) {
		n := len(packet[0]) * len(packet)
		if cap(scratch) < n {
			scratch = make([]float64, n)
		}
		p.writeInterleaved(resampler.Interleave(scratch[:n], packet))
	}
}

func (p *pcmWriter) Close() error {
	if err := p.enc.Close(); err != nil && p.err == nil {
		p.err = err
	}
	return p.err
}

func growInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

// convertFile streams inputPath through a FixedResampler into outputPath.
func convertFile(inputPath, outputPath string, opts convertOptions) (stats *convertStats, err error) {
	in, err := openWAVInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	writer, err := newPCMWriter(out, opts.outRate, in.bitDepth, in.channels)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "convertFile",
		"input":    inputPath,
		"rate":     in.rate.Hz(),
		"target":   opts.outRate.Hz(),
		"channels": in.channels,
		"bits":     in.bitDepth,
		"frames":   in.frames,
		"quality":  opts.quality,
		"planar":   opts.planar,
	}).Debug("Converting WAV file")

	inFrames, err := streamPCM(in, writer, opts)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	return &convertStats{
		inputRate:    in.rate.Hz(),
		outputRate:   opts.outRate.Hz(),
		channels:     in.channels,
		bitDepth:     in.bitDepth,
		inputFrames:  inFrames,
		outputFrames: writer.frames,
	}, nil
}

// streamPCM reads chunks from in, resamples them and writes them to w. It
// returns the number of input frames read.
func streamPCM(in *wavInput, w *pcmWriter, opts convertOptions) (uint64, error) {
	r := resampler.NewFixed[float64](in.channels, in.rate, opts.outRate, opts.quality, !opts.planar)
	scale, err := fullScale(in.bitDepth)
	if err != nil {
		return 0, err
	}

	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: in.channels, SampleRate: int(in.rate.Hz())},
		Data:           make([]int, chunkFrames*in.channels),
		SourceBitDepth: in.bitDepth,
	}
	samples := make([]float64, chunkFrames*in.channels)
	planar := make([][]float64, in.channels)
	for ch := range planar {
		planar[ch] = make([]float64, chunkFrames)
	}
	planarSink := w.planarSink()

	feed := func(chunk []float64, last *resampler.LastPacketInfo) {
		if !opts.planar {
			r.ProcessInterleaved(chunk, w.writeInterleaved, last, opts.trimDelay)
			return
		}
		frames := len(chunk) / in.channels
		views := make([][]float64, in.channels)
		for ch := range views {
			views[ch] = planar[ch][:frames]
		}
		resampler.Deinterleave(views, chunk)
		r.ProcessPlanar(views, planarSink, last, opts.trimDelay)
	}

	var total uint64
	for {
		n, err := in.decoder.PCMBuffer(pcm)
		if err != nil && !errors.Is(err, io.EOF) {
			return total, fmt.Errorf("read PCM: %w", err)
		}
		n -= n % in.channels
		if n == 0 {
			break
		}
		total += uint64(n / in.channels)
		feed(intsToFloats(samples, pcm.Data[:n], scale), nil)
		if w.err != nil {
			return total, fmt.Errorf("write PCM: %w", w.err)
		}
	}

	// the tail flush pads the stream to the exact converted length
	want := r.OutAllocFrames(total) - 1
	if !opts.trimDelay {
		want += uint64(r.OutputDelay())
	}
	feed(samples[:0], resampler.DesiredOutput(want))
	if w.err != nil {
		return total, fmt.Errorf("write PCM: %w", w.err)
	}
	return total, nil
}
