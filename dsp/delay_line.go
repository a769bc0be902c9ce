package dsp

import (
	"math"

	"github.com/tphakala/go-rtaudio/internal/simdops"
)

// DelayLine is a circular buffer read back at a fractional offset behind the
// write cursor, with linear interpolation between the two neighbouring slots.
//
// The write cursor always points at the next slot to be overwritten. The read
// offset is kept in samples within [0, Len()-1]; SetReadHead maps a ratio in
// [0, 1] onto that range.
type DelayLine[F simdops.Float] struct {
	buffer    []F
	writeHead int
	readHead  float64
}

// NewDelayLine allocates a zeroed delay line holding size samples.
// Sizes below one are clamped to one.
func NewDelayLine[F simdops.Float](size int) *DelayLine[F] {
	return &DelayLine[F]{
		buffer: make([]F, max(size, minDelayLineLen)),
	}
}

// Len returns the number of samples the line holds.
func (d *DelayLine[F]) Len() int {
	return len(d.buffer)
}

// ReadHead returns the read offset in samples.
func (d *DelayLine[F]) ReadHead() float64 {
	return d.readHead
}

// WriteHead returns the index of the next slot to be written.
func (d *DelayLine[F]) WriteHead() int {
	return d.writeHead
}

// Write stores sample at the write cursor and advances it.
func (d *DelayLine[F]) Write(sample F) {
	d.buffer[d.writeHead] = sample
	d.writeHead++
	if d.writeHead == len(d.buffer) {
		d.writeHead = 0
	}
}

// SetReadHead sets how far back Read looks, as a ratio of the line length.
// 0 reads the most recently written sample, 1 the oldest one. Values outside
// [0, 1] are clamped; NaN is treated as 0.
func (d *DelayLine[F]) SetReadHead(delay float64) {
	if math.IsNaN(delay) {
		delay = 0
	}
	delay = min(max(delay, 0), 1)
	d.readHead = delay * float64(len(d.buffer)-1)
}

// Read returns the interpolated sample at the current read offset.
func (d *DelayLine[F]) Read() F {
	n := len(d.buffer)

	pos := float64(n+d.writeHead-1) - d.readHead
	base := math.Floor(pos)
	frac := F(pos - base)

	a := int(base) % n
	if a < 0 {
		a += n
	}
	b := a + 1
	if b == n {
		b = 0
	}

	x0 := d.buffer[a]
	return x0 + (d.buffer[b]-x0)*frac
}

// Resize reallocates the line to hold size samples (clamped to at least one).
// The newest min(old, new) samples are kept in chronological order, ending
// just before the write cursor, so Read at the same offset still returns the
// same history. The read offset is clamped to the new length.
func (d *DelayLine[F]) Resize(size int) {
	size = max(size, minDelayLineLen)
	n := len(d.buffer)
	if size == n {
		return
	}

	keep := min(n, size)
	buf := make([]F, size)
	// oldest kept sample first
	start := (d.writeHead - keep + n) % n
	copied := copy(buf[:keep], d.buffer[start:])
	copy(buf[copied:keep], d.buffer)

	d.buffer = buf
	d.writeHead = keep % size
	d.readHead = min(d.readHead, float64(size-1))
}

// Reset zeroes the contents and rewinds the write cursor.
// The read offset is kept.
func (d *DelayLine[F]) Reset() {
	clear(d.buffer)
	d.writeHead = 0
}
