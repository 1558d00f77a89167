package navigation

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/transform"
)

// PickObject returns the nearest object of the zoom band's level whose hit
// radius contains the screen point.
func PickObject(lookup hierarchy.Lookup, cfg Config, sx, sy float64, cam cosmos.Camera, width, height float64) (cosmos.Object, bool) {
	return pickAmong(lookup.ObjectsByLevel(cfg.PickLevel(cam.Zoom)), cfg.PickRadiusFactor, sx, sy, cam, width, height)
}

// PickSpecial is PickObject restricted to special objects. Specials sit
// outside the zoom bands, so they are only tried when the band pick misses.
func PickSpecial(lookup hierarchy.Lookup, cfg Config, sx, sy float64, cam cosmos.Camera, width, height float64) (cosmos.Object, bool) {
	return pickAmong(lookup.ObjectsByLevel(cosmos.LevelSpecial), cfg.PickRadiusFactor, sx, sy, cam, width, height)
}

func pickAmong(candidates []cosmos.Object, factor, sx, sy float64, cam cosmos.Camera, width, height float64) (cosmos.Object, bool) {
	wx, wy := transform.ScreenToWorld(sx, sy, cam, width, height)

	var best cosmos.Object
	bestDist := math.Inf(1)
	for _, o := range candidates {
		d := transform.Distance(wx, wy, o.Position.X, o.Position.Y)
		if d < o.Size*factor && d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// DrillDown returns the navigation state and camera after selecting obj.
// Only the camera target changes, the current pose is left to the easer.
// Objects of an unknown level leave both unchanged.
func DrillDown(nav cosmos.NavState, cam cosmos.Camera, obj cosmos.Object, cfg Config) (cosmos.NavState, cosmos.Camera) {
	zoom, ok := cfg.ZoomFor(obj.Level)
	if !ok {
		return nav, cam
	}

	next := nav
	switch obj.Level {
	case cosmos.LevelGalaxy:
		next = cosmos.NavState{Level: cosmos.LevelGalaxy, GalaxyID: obj.ID}
	case cosmos.LevelSun:
		next = cosmos.NavState{Level: cosmos.LevelSun, GalaxyID: obj.ParentID, SunID: obj.ID}
	case cosmos.LevelPlanet:
		next = cosmos.NavState{Level: cosmos.LevelPlanet, GalaxyID: nav.GalaxyID, SunID: obj.ParentID, PlanetID: obj.ID}
	case cosmos.LevelSpecial:
		next = cosmos.NavState{Level: cosmos.LevelSpecial, SpecialID: obj.ID}
	}
	next.Transitioning = true

	return next, cam.WithTarget(cosmos.CameraPose{CX: obj.Position.X, CY: obj.Position.Y, Zoom: zoom})
}

// Back moves one level up the hierarchy and aims the camera at the new
// focus. At the universe level it is a no-op.
func Back(nav cosmos.NavState, cam cosmos.Camera, lookup hierarchy.Lookup, cfg Config) (cosmos.NavState, cosmos.Camera) {
	var next cosmos.NavState
	focusID := ""

	switch nav.Level {
	case cosmos.LevelGalaxy, cosmos.LevelSpecial:
		next = cosmos.NewNavState()
	case cosmos.LevelSun:
		next = cosmos.NavState{Level: cosmos.LevelGalaxy, GalaxyID: nav.GalaxyID}
		focusID = nav.GalaxyID
	case cosmos.LevelPlanet:
		next = cosmos.NavState{Level: cosmos.LevelSun, GalaxyID: nav.GalaxyID, SunID: nav.SunID}
		focusID = nav.SunID
	default:
		return nav, cam
	}
	next.Transitioning = true

	target := cosmos.UniversePose
	if focusID != "" {
		if o, ok := lookup.ObjectByID(focusID); ok {
			zoom, _ := cfg.ZoomFor(next.Level)
			target = cosmos.CameraPose{CX: o.Position.X, CY: o.Position.Y, Zoom: zoom}
		}
	}
	return next, cam.WithTarget(target)
}
