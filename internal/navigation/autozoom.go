package navigation

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/transform"
)

// AutoZoom previews a galaxy while the pointer dwells on it at the universe
// level. It only ever moves the camera; the navigation state is untouched.
// Timing is driven by frame time so it stays deterministic.
type AutoZoom struct {
	zoomInDelay  float64
	zoomOutDelay float64
	zoom         float64

	hoveredID  string
	hoverStart float64

	previewID   string
	exitPending bool
	exitStart   float64
}

// NewAutoZoom creates the hover preview for cfg.
func NewAutoZoom(cfg Config) *AutoZoom {
	return &AutoZoom{
		zoomInDelay:  cfg.HoverZoomInDelay,
		zoomOutDelay: cfg.HoverZoomOutDelay,
		zoom:         cfg.GalaxyZoom,
	}
}

// Update processes one frame. hovered is the universe-level object under the
// pointer, or nil. When a new camera target is due it is returned with
// ok = true.
func (a *AutoZoom) Update(hovered *cosmos.Object, frameTime float64) (target cosmos.CameraPose, ok bool) {
	if hovered != nil {
		// Any hover cancels a pending zoom-out.
		a.exitPending = false

		if hovered.ID != a.hoveredID {
			a.hoveredID = hovered.ID
			a.hoverStart = frameTime
		}
		if a.previewID != hovered.ID && frameTime-a.hoverStart >= a.zoomInDelay {
			a.previewID = hovered.ID
			return cosmos.CameraPose{CX: hovered.Position.X, CY: hovered.Position.Y, Zoom: a.zoom}, true
		}
		return cosmos.CameraPose{}, false
	}

	a.hoveredID = ""
	if a.previewID == "" {
		return cosmos.CameraPose{}, false
	}
	if !a.exitPending {
		a.exitPending = true
		a.exitStart = frameTime
		return cosmos.CameraPose{}, false
	}
	if frameTime-a.exitStart >= a.zoomOutDelay {
		a.previewID = ""
		a.exitPending = false
		return cosmos.UniversePose, true
	}
	return cosmos.CameraPose{}, false
}

// Previewing returns the id of the galaxy currently previewed.
func (a *AutoZoom) Previewing() string {
	return a.previewID
}

// Reset drops all pending timers.
func (a *AutoZoom) Reset() {
	a.hoveredID = ""
	a.hoverStart = 0
	a.previewID = ""
	a.exitPending = false
	a.exitStart = 0
}

// HoveredGalaxy returns the nearest galaxy whose radius contains the screen
// point, or nil.
func HoveredGalaxy(galaxies []cosmos.Object, sx, sy float64, cam cosmos.Camera, width, height float64) *cosmos.Object {
	wx, wy := transform.ScreenToWorld(sx, sy, cam, width, height)

	var best *cosmos.Object
	bestDist := math.Inf(1)
	for i := range galaxies {
		g := &galaxies[i]
		d := transform.Distance(wx, wy, g.Position.X, g.Position.Y)
		if d < g.Size && d < bestDist {
			best, bestDist = g, d
		}
	}
	return best
}
