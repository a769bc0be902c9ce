package engine

// Block sizing.
const (
	// InputFramesMax is the fixed number of input frames consumed per block.
	InputFramesMax = 1024

	// MaxChannels bounds the channel count of a kernel.
	MaxChannels = 8
)

// Kernel design constants.
const (
	// Stop-band attenuation from bit precision: att = (bits + 1) * 6.02 dB
	dbPerBit = 6.0206 // 20 * log10(2)
	bitsHigh = 16

	attenuationHigh = (bitsHigh + 1) * dbPerBit // ~102 dB

	nyquistFraction    = 0.5  // half the lower of the two rates
	passbandFraction   = 0.95 // -6 dB point relative to the lower Nyquist
	transitionFraction = 0.1  // transition width relative to the lower Nyquist

	// Linear interpolation reads two frames and lags by one.
	linearTaps = 2
)

// Phase accumulator constants.
const (
	// Arbitrary ratios are stepped in 32.32 fixed point.
	fixedPointFracBits = 32
	fixedPointOne      = uint64(1) << fixedPointFracBits
	fixedPointMask     = fixedPointOne - 1
)
