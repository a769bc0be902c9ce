package dsp

// Smoothing filter defaults
const (
	DefaultSmoothSeconds = 0.015 // Default smoothing time constant (15 ms)
	DefaultSettleEpsilon = 0.001 // Default relative/absolute settle threshold
	MinSmoothSeconds     = 1e-5  // Smaller time constants are clamped to this
)

// Volume conversion constants
const (
	DefaultAmpEpsilon = 0.00001 // Amplitudes at or below this are treated as silence
	DefaultDBEpsilon  = -100.0  // Decibel values at or below this are treated as silence

	dbToAmpFactor  = 0.05 // 10^(db/20) == 10^(0.05*db)
	ampToDBFactor  = 20.0 // 20*log10(amp)
	percentScale   = 100.0
	shelfDBDivisor = 40.0 // Shelf/bell gain A = 10^(db/40)
)

// ButterworthQ gives a maximally flat second order response.
const ButterworthQ = 0.7071067811865476

// Filter limits
const (
	minCutoffHz     = 1.0   // Lowest cutoff accepted by the IIR filters
	maxCutoffRatio  = 0.499 // Highest cutoff as a fraction of the sample rate
	minQ            = 0.01  // Lowest Q accepted by the SVF
	twoPi           = 6.283185307179586
	float32Epsilon  = 1.1920929e-07 // math.Nextafter32(1, 2) - 1
	minDelayLineLen = 1             // A delay line always holds at least one sample
)
