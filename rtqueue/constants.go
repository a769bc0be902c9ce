package rtqueue

// Ring sizing
const (
	minCapacity   = 2  // Smallest ring; capacities are rounded up to a power of two
	cacheLineSize = 64 // Padding between producer and consumer cursors
)
