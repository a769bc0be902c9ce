package resampler

import "github.com/tphakala/go-rtaudio/internal/engine"

// Channel limits.
const (
	// MaxChannels is the largest supported channel count.
	MaxChannels = engine.MaxChannels

	stereoChannels = 2
)

// Common sample rates.
const (
	RateTelephony = 8000   // PSTN narrowband
	RateVoIP      = 16000  // wideband speech
	RateSpeech    = 22050  // half CD
	RateCD        = 44100  // Red Book
	RateDAT       = 48000  // DAT, DVD and video
	RateHiRes88   = 88200  // 2x CD
	RateHiRes96   = 96000  // 2x DAT
	RateHiRes176  = 176400 // 4x CD
	RateHiRes192  = 192000 // 4x DAT
)
