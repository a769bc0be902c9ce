package diff

// Path and payload sizes
const (
	inlinePathLen  = 6  // Path depth kept inline in a PathBuilder before spilling to the heap
	CustomBytesLen = 20 // Size of a CustomBytes payload
)

// Event channel defaults
const (
	DefaultChannelCapacity = 256 // Default SPSC event channel capacity
	dropLogInterval        = 64  // Log every Nth dropped event after the first
)
