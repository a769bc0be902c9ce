// Package rtqueue provides a bounded lock-free single-producer,
// single-consumer queue for handing values to a real-time thread.
//
// Push and pop never block, never allocate and never take a lock. When the
// ring is full the pushed value is dropped (drop newest) and counted, so
// everything that was accepted is delivered in order.
//
//	prod, cons := rtqueue.New[Event](256).Split()
//
//	// control thread
//	if !prod.TryPush(ev) {
//		log.Warn("event dropped")
//	}
//
//	// audio thread
//	cons.Drain(func(ev Event) { apply(ev) })
package rtqueue

import (
	"math/bits"
	"sync/atomic"
)

// Ring is a bounded SPSC queue. Exactly one goroutine may push and exactly one
// (possibly different) goroutine may pop at a time.
type Ring[T any] struct {
	slots []T
	mask  uint64

	_    [cacheLineSize]byte
	head atomic.Uint64 // next slot to pop, written by the consumer
	_    [cacheLineSize - 8]byte
	tail atomic.Uint64 // next slot to push, written by the producer
	_    [cacheLineSize - 8]byte

	dropped atomic.Uint64
}

// New creates a ring holding at least capacity values. Capacity is rounded
// up to a power of two, minimum 2.
func New[T any](capacity int) *Ring[T] {
	n := uint64(max(capacity, minCapacity))
	if n&(n-1) != 0 {
		n = 1 << bits.Len64(n)
	}

	return &Ring[T]{
		slots: make([]T, n),
		mask:  n - 1,
	}
}

// TryPush appends v. It returns false and counts a drop if the ring is full.
// Producer side only.
func (r *Ring[T]) TryPush(v T) bool {
	t := r.tail.Load()
	if t-r.head.Load() > r.mask {
		r.dropped.Add(1)
		return false
	}

	r.slots[t&r.mask] = v
	r.tail.Store(t + 1)
	return true
}

// TryPop removes the oldest value. Consumer side only.
func (r *Ring[T]) TryPop() (T, bool) {
	var zero T

	h := r.head.Load()
	if h == r.tail.Load() {
		return zero, false
	}

	i := h & r.mask
	v := r.slots[i]
	r.slots[i] = zero // release references held by the slot
	r.head.Store(h + 1)
	return v, true
}

// Drain pops every queued value into fn and returns how many were popped.
// Values pushed while draining may or may not be included. Consumer side only.
func (r *Ring[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := r.TryPop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

// Len returns the number of queued values. The result is a snapshot when
// called concurrently with push or pop.
func (r *Ring[T]) Len() int {
	h := r.head.Load()
	t := r.tail.Load()
	return int(t - h)
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return len(r.slots)
}

// Dropped returns the number of values rejected because the ring was full.
func (r *Ring[T]) Dropped() uint64 {
	return r.dropped.Load()
}

// Split returns producer and consumer handles sharing r.
func (r *Ring[T]) Split() (*Producer[T], *Consumer[T]) {
	return &Producer[T]{r: r}, &Consumer[T]{r: r}
}

// Producer is the push side of a Ring.
type Producer[T any] struct {
	r *Ring[T]
}

// TryPush appends v, see Ring.TryPush.
func (p *Producer[T]) TryPush(v T) bool { return p.r.TryPush(v) }

// Len returns the number of queued values.
func (p *Producer[T]) Len() int { return p.r.Len() }

// Cap returns the ring capacity.
func (p *Producer[T]) Cap() int { return p.r.Cap() }

// Dropped returns the number of rejected pushes.
func (p *Producer[T]) Dropped() uint64 { return p.r.Dropped() }

// Consumer is the pop side of a Ring.
type Consumer[T any] struct {
	r *Ring[T]
}

// TryPop removes the oldest value, see Ring.TryPop.
func (c *Consumer[T]) TryPop() (T, bool) { return c.r.TryPop() }

// Drain pops every queued value into fn.
func (c *Consumer[T]) Drain(fn func(T)) int { return c.r.Drain(fn) }

// Len returns the number of queued values.
func (c *Consumer[T]) Len() int { return c.r.Len() }
