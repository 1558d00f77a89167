// Package navigation implements the discrete navigation state machine:
// picking objects under the pointer, drilling down and back up the
// hierarchy, the hover-driven galaxy preview and camera easing.
package navigation

import "github.com/litescript/ls-cosmos/internal/cosmos"

// Easing selects the camera easer.
type Easing string

const (
	EasingLerp  Easing = "lerp"
	EasingTween Easing = "tween"
)

// Config holds navigation tunables.
type Config struct {
	// Zoom bands: below GalaxyBand galaxies are picked, below SunBand suns,
	// anything above picks planets.
	GalaxyBand float64
	SunBand    float64
	PlanetBand float64

	// PickRadiusFactor scales an object's size into its hit radius.
	PickRadiusFactor float64

	// Camera zoom applied when drilling into each level.
	GalaxyZoom  float64
	SunZoom     float64
	PlanetZoom  float64
	SpecialZoom float64

	// Hover preview of universe-level galaxies (milliseconds).
	AutoZoom          bool
	HoverZoomInDelay  float64
	HoverZoomOutDelay float64

	// Camera easing.
	Easing          Easing
	Smoothing       float64 // lerp factor per frame
	ZoomConvergence float64 // target cleared once |zoom - target| drops below
	TweenDuration   float64 // milliseconds
}

// DefaultConfig returns the stock navigation tunables.
func DefaultConfig() Config {
	return Config{
		GalaxyBand:        1.5,
		SunBand:           4,
		PlanetBand:        7,
		PickRadiusFactor:  1.5,
		GalaxyZoom:        2.5,
		SunZoom:           5,
		PlanetZoom:        8,
		SpecialZoom:       4,
		AutoZoom:          true,
		HoverZoomInDelay:  300,
		HoverZoomOutDelay: 500,
		Easing:            EasingLerp,
		Smoothing:         0.08,
		ZoomConvergence:   0.01,
		TweenDuration:     900,
	}
}

// ZoomFor returns the drill-down zoom for a level. ok is false for levels
// that cannot be drilled into.
func (c Config) ZoomFor(level cosmos.Level) (zoom float64, ok bool) {
	switch level {
	case cosmos.LevelGalaxy:
		return c.GalaxyZoom, true
	case cosmos.LevelSun:
		return c.SunZoom, true
	case cosmos.LevelPlanet:
		return c.PlanetZoom, true
	case cosmos.LevelSpecial:
		return c.SpecialZoom, true
	}
	return 0, false
}

// PickLevel returns the level whose objects are pickable at zoom.
func (c Config) PickLevel(zoom float64) cosmos.Level {
	switch {
	case zoom < c.GalaxyBand:
		return cosmos.LevelGalaxy
	case zoom < c.SunBand:
		return cosmos.LevelSun
	case zoom < c.PlanetBand:
		return cosmos.LevelPlanet
	default:
		// Deepest level: planets stay pickable however far we zoom.
		return cosmos.LevelPlanet
	}
}
