// Package orbit animates portfolio projects as bodies orbiting the
// focus-area suns, with satellites, pulsation and hover pause/resume.
package orbit

import "github.com/litescript/ls-cosmos/internal/cosmos"

// Mode selects the rendering mode, which fixes the per-frame angle step.
type Mode int

const (
	ModeFull Mode = iota
	ModeSimple
)

// FixedDelta is the angle step multiplier applied every frame.
func (m Mode) FixedDelta() float64 {
	if m == ModeSimple {
		return 0.2
	}
	return 0.5
}

func (m Mode) String() string {
	if m == ModeSimple {
		return "simple"
	}
	return "full"
}

// ParseMode parses "simple" or "full".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "simple":
		return ModeSimple, true
	case "full", "":
		return ModeFull, true
	}
	return ModeFull, false
}

// Envelope is a pulsation range and its angular speed per millisecond.
type Envelope struct {
	Min   float64
	Max   float64
	Speed float64
}

// Config holds orbit tunables. Lengths marked px are multiplied by
// PixelScale so the same defaults work on a pixel canvas and a terminal.
type Config struct {
	Mode Mode
	Seed int64

	RadiusFactor float64 // of min(width, height)
	RadiusStep   float64 // px per body index
	PixelScale   float64
	SpeedScale   float64

	SatelliteDistanceMin    float64 // px
	SatelliteDistanceSpread float64 // px

	RestPulse  Envelope
	HoverPulse Envelope

	// Sun system.
	SunAnchors      []cosmos.Point
	PropelThreshold float64
	PropelFrames    int
	SunLerp         float64
	SunPadding      float64
	MassNormalizer  float64
	MaxMassBoost    float64
	MaxFrameDelta   float64 // ms
}

// DefaultConfig returns the stock orbit tunables.
func DefaultConfig() Config {
	return Config{
		Mode:                    ModeFull,
		Seed:                    1,
		RadiusFactor:            0.12,
		RadiusStep:              25,
		PixelScale:              1,
		SpeedScale:              1,
		SatelliteDistanceMin:    20,
		SatelliteDistanceSpread: 15,
		RestPulse:               Envelope{Min: 0.92, Max: 1.08, Speed: 0.00002},
		HoverPulse:              Envelope{Min: 0.8, Max: 1.3, Speed: 0.0006},
		SunAnchors: []cosmos.Point{
			{X: 0.22, Y: 0.18},
			{X: 0.82, Y: 0.15},
			{X: 0.20, Y: 0.82},
			{X: 0.80, Y: 0.80},
		},
		PropelThreshold: 0.15,
		PropelFrames:    60,
		SunLerp:         0.005,
		SunPadding:      0.12,
		MassNormalizer:  1000,
		MaxMassBoost:    0.5,
		MaxFrameDelta:   50,
	}
}
