package engine

import "github.com/tphakala/go-rtaudio/internal/filter"

// DefaultPhasesForTest mirrors the phase count the sinc kernel is built with.
const DefaultPhasesForTest = filter.DefaultPhases
