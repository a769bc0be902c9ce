package mathutil

// Bessel series
const (
	besselMaxTerms  = 500   // Upper bound on power series terms
	besselTolerance = 1e-17 // Stop when a term adds less than this relative amount
)

// Kaiser design formulas (Kaiser & Schafer)
const (
	kaiserAttHigh      = 50.0    // Above this the linear beta formula applies (dB)
	kaiserAttLow       = 21.0    // Below this a rectangular window suffices (dB)
	kaiserHighSlope    = 0.1102  // beta = 0.1102 * (att - 8.7)
	kaiserHighOffset   = 8.7     // dB
	kaiserMidCoeff     = 0.5842  // beta = 0.5842 * (att-21)^0.4 + 0.07886 * (att-21)
	kaiserMidExponent  = 0.4     //
	kaiserMidLinear    = 0.07886 //
	kaiserLengthOffset = 7.95    // N = (att - 7.95) / (14.36 * tb) + 1
	kaiserLengthDivide = 14.36   //
)

// Filter length bounds
const (
	MinTaps = 4    // Shortest sinc kernel
	MaxTaps = 2048 // Longest sinc kernel
)

const sincEpsilon = 1e-12 // |x| below this is treated as the sinc peak
