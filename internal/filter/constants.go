package filter

// Cubic phase interpolation weights.
const (
	cubicCenterCoeff = 0.5
	cubicDCoeff      = 1.0 / 6.0
	cubicCMultiplier = 4.0
)

const (
	// DefaultPhases is the number of tabulated sub-sample phases.
	DefaultPhases = 256

	// extraRows are the guard rows either side of the phase table needed by
	// the cubic construction (phase -1 and phases P, P+1).
	extraRows = 3

	defaultResponsePoints = 512
)
