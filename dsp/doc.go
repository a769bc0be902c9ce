// Package dsp contains the real-time building blocks used by the audio thread:
// a fractional delay line, the one-pole smoothing filter that declicks
// parameter changes, smoothed parameters, simple IIR filters and volume
// conversions.
//
// Everything in this package is synchronous and allocation-free once
// constructed. None of the types are safe for concurrent use; they are meant
// to be owned by a single audio-processing goroutine.
//
// # Smoothing parameters
//
// A typical processor keeps a [SmoothedParam] per audible control:
//
//	gain := dsp.NewSmoothedParam(1.0, dsp.DefaultSmootherConfig(), sampleRate)
//
//	// control change arrives (for example from a diff.EventReceiver)
//	gain.SetValue(0.25)
//
//	// per block
//	gain.ProcessIntoBuffer(gainBuf[:frames])
//
// # Delay lines
//
// [DelayLine] reads with linear interpolation at a fractional offset expressed
// as a ratio of the line length:
//
//	line := dsp.NewDelayLine[float32](480)
//	line.SetReadHead(0.5)
//	for i := range buf {
//	    line.Write(buf[i])
//	    buf[i] = line.Read()
//	}
package dsp
