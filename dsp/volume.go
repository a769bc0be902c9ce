package dsp

import "math"

// VolumeUnit selects how a Volume value is interpreted.
type VolumeUnit uint8

const (
	// UnitLinear is a perceptual 0..1 scale (0 = mute, 1 = unity gain).
	UnitLinear VolumeUnit = iota
	// UnitDecibels is a gain in dB (0 = unity gain).
	UnitDecibels
)

// Volume is a gain expressed either on a linear volume scale or in decibels.
type Volume struct {
	Unit  VolumeUnit
	Value float32
}

// Common volumes.
var (
	UnityGain = Volume{Unit: UnitLinear, Value: 1}
	Silent    = Volume{Unit: UnitLinear, Value: 0}
)

// LinearVolume returns a volume on the linear scale.
func LinearVolume(v float32) Volume { return Volume{Unit: UnitLinear, Value: v} }

// DecibelVolume returns a volume in decibels.
func DecibelVolume(db float32) Volume { return Volume{Unit: UnitDecibels, Value: db} }

// PercentVolume returns a linear volume from a percentage (100 = unity).
func PercentVolume(percent float32) Volume { return LinearVolume(percent / percentScale) }

// Amp returns the raw amplitude multiplier.
func (v Volume) Amp() float32 {
	if v.Unit == UnitDecibels {
		return DBToAmp(v.Value)
	}
	return LinearVolumeToAmp(v.Value, 0)
}

// AmpClamped is Amp with amplitudes at or below ampEpsilon mapped to silence.
func (v Volume) AmpClamped(ampEpsilon float32) float32 {
	if v.Unit == UnitLinear {
		return LinearVolumeToAmp(v.Value, ampEpsilon)
	}
	if math.IsInf(float64(v.Value), -1) {
		return 0
	}
	if amp := DBToAmp(v.Value); amp > ampEpsilon {
		return amp
	}
	return 0
}

// Decibels returns the volume in dB. Mute maps to -Inf.
func (v Volume) Decibels() float32 {
	if v.Unit == UnitDecibels {
		return v.Value
	}
	if v.Value == 0 {
		return float32(math.Inf(-1))
	}
	return AmpToDB(LinearVolumeToAmp(v.Value, 0))
}

// Linear returns the volume on the linear scale.
func (v Volume) Linear() float32 {
	if v.Unit == UnitLinear {
		return v.Value
	}
	return AmpToLinearVolume(DBToAmp(v.Value), 0)
}

// Percent returns the linear volume as a percentage.
func (v Volume) Percent() float32 { return v.Linear() * percentScale }

// DBToAmp converts decibels to an amplitude multiplier. -Inf maps to 0.
func DBToAmp(db float32) float32 {
	if math.IsInf(float64(db), -1) {
		return 0
	}
	return float32(math.Pow(10, dbToAmpFactor*float64(db)))
}

// AmpToDB converts an amplitude multiplier to decibels. 0 maps to -Inf.
func AmpToDB(amp float32) float32 {
	if amp == 0 {
		return float32(math.Inf(-1))
	}
	return float32(ampToDBFactor * math.Log10(float64(amp)))
}

// LinearVolumeToAmp maps a linear volume onto an amplitude (square law).
// Results at or below ampEpsilon become 0.
func LinearVolumeToAmp(linear, ampEpsilon float32) float32 {
	amp := linear * linear
	if amp <= ampEpsilon {
		return 0
	}
	return amp
}

// AmpToLinearVolume is the inverse of LinearVolumeToAmp.
func AmpToLinearVolume(amp, ampEpsilon float32) float32 {
	if amp <= ampEpsilon {
		return 0
	}
	return float32(math.Sqrt(float64(amp)))
}
