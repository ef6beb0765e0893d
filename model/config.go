package model

import (
	log "github.com/sirupsen/logrus"
)

// Config holds every tunable of the generative core. Out-of-range values
// are clamped, never rejected: the engine favors uninterrupted generation
// over strict validation.
type Config struct {
	// Tempo in beats per minute.
	Tempo float64

	// Strategy selects the phrase generator: "scale" or "walk".
	Strategy string

	// Hawkes process parameters, expressed per bar so the musical
	// character survives tempo changes.
	BaseRate   float64
	Excitation float64
	Decay      float64

	// Octave register bounds for the voice random walks.
	OctaveMin int
	OctaveMax int

	// Voices is the number of simultaneous voices (1..3): the free
	// process voice, then strum, then arpeggio.
	Voices int

	// RateDividers suppresses every Nth trigger of the matching voice;
	// zero or one means no suppression.
	RateDividers []int

	// Chord-similarity predicate knobs.
	MinCommon        int
	EqualCardinality bool

	// Cardinality bounds filtering the chord universe before the graph
	// is built.
	ChordCardMin int
	ChordCardMax int

	// Live shell timing, in seconds.
	Tick         float64
	Lookahead    float64
	SafetyMargin float64
}

func DefaultConfig() Config {
	return Config{
		Tempo:        60,
		Strategy:     "scale",
		BaseRate:     8,
		Excitation:   4,
		Decay:        12,
		OctaveMin:    3,
		OctaveMax:    6,
		Voices:       3,
		RateDividers: []int{1, 1, 2},
		MinCommon:    1,
		ChordCardMin: 3,
		ChordCardMax: 5,
		Tick:         0.05,
		Lookahead:    0.5,
		SafetyMargin: 0.02,
	}
}

// Clamp normalizes the config in place and reports what it had to fix.
func (c *Config) Clamp() {
	logger := log.WithFields(log.Fields{
		"function": "Config.Clamp",
	})
	if c.Tempo < 20 || c.Tempo > 300 {
		clamped := clampFloat(c.Tempo, 20, 300)
		logger.Warnf("tempo %v out of range, clamping to %v", c.Tempo, clamped)
		c.Tempo = clamped
	}
	if c.Strategy != "scale" && c.Strategy != "walk" {
		logger.Warnf("unknown strategy %q, using scale", c.Strategy)
		c.Strategy = "scale"
	}
	if c.BaseRate <= 0 {
		logger.Warnf("base rate %v not positive, using 1", c.BaseRate)
		c.BaseRate = 1
	}
	if c.Excitation < 0 {
		c.Excitation = 0
	}
	if c.Decay < 0 {
		c.Decay = 0
	}
	if c.OctaveMin > c.OctaveMax {
		logger.Warnf("octave bounds reversed (%d..%d), swapping", c.OctaveMin, c.OctaveMax)
		c.OctaveMin, c.OctaveMax = c.OctaveMax, c.OctaveMin
	}
	if c.Voices < 1 {
		c.Voices = 1
	}
	if c.Voices > 3 {
		c.Voices = 3
	}
	for len(c.RateDividers) < c.Voices {
		c.RateDividers = append(c.RateDividers, 1)
	}
	if c.MinCommon < 0 {
		c.MinCommon = 0
	}
	if c.ChordCardMin < 1 {
		c.ChordCardMin = 1
	}
	if c.ChordCardMax < 1 {
		c.ChordCardMax = 1
	}
	if c.ChordCardMax > 12 {
		c.ChordCardMax = 12
	}
	if c.ChordCardMin > c.ChordCardMax {
		logger.Warnf("cardinality bounds reversed (%d..%d), swapping", c.ChordCardMin, c.ChordCardMax)
		c.ChordCardMin, c.ChordCardMax = c.ChordCardMax, c.ChordCardMin
	}
	if c.Tick <= 0 {
		c.Tick = 0.05
	}
	if c.Lookahead < 2*c.Tick {
		c.Lookahead = 2 * c.Tick
	}
	if c.SafetyMargin < 0 {
		c.SafetyMargin = 0
	}
}

// BarSeconds is the duration of one four-beat bar at the configured tempo.
func (c Config) BarSeconds() float64 {
	return 4 * 60 / c.Tempo
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
