// Package transform converts between normalized world coordinates and
// screen pixels for a given camera and viewport size.
package transform

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/cosmos"
)

// ViewportMargin is the slack in pixels an object may sit outside the
// viewport and still count as visible.
const ViewportMargin = 100.0

// WorldToScreen projects a normalized world position onto the screen.
func WorldToScreen(wx, wy float64, cam cosmos.Camera, width, height float64) (sx, sy float64) {
	sx = (wx-cam.CX)*width*cam.Zoom + width/2
	sy = (wy-cam.CY)*height*cam.Zoom + height/2
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(sx, sy float64, cam cosmos.Camera, width, height float64) (wx, wy float64) {
	wx = cam.CX + (sx-width/2)/(width*cam.Zoom)
	wy = cam.CY + (sy-height/2)/(height*cam.Zoom)
	return wx, wy
}

// IsVisibleInViewport reports whether an object at (wx, wy) could touch the
// viewport. radius is compared in pixels as given, it is not scaled.
func IsVisibleInViewport(wx, wy, radius float64, cam cosmos.Camera, width, height float64) bool {
	sx, sy := WorldToScreen(wx, wy, cam, width, height)
	return sx+radius > -ViewportMargin &&
		sx-radius < width+ViewportMargin &&
		sy+radius > -ViewportMargin &&
		sy-radius < height+ViewportMargin
}

// PixelWorld converts a screen position into pixel-space world coordinates
// (world position times viewport size). With no camera, or a centered
// camera at zoom 1, the screen position is returned unchanged.
//
// The general form is arranged so that a centered zoom-1 camera yields
// exactly the identity as well.
func PixelWorld(sx, sy float64, cam *cosmos.Camera, width, height float64) (px, py float64) {
	if cam == nil || (cam.Zoom == 1 && cam.Centered()) {
		return sx, sy
	}
	px = sx/cam.Zoom + (cam.CX*width - (width/2)/cam.Zoom)
	py = sy/cam.Zoom + (cam.CY*height - (height/2)/cam.Zoom)
	return px, py
}

// WorldRadius converts a normalized radius into pixel-space world units.
func WorldRadius(r, width, height float64) float64 {
	return r * min(width, height)
}

// ScreenRadius converts a normalized radius into pixels on screen, using
// the smaller viewport dimension.
func ScreenRadius(r float64, cam cosmos.Camera, width, height float64) float64 {
	return WorldRadius(r, width, height) * cam.Zoom
}

// Distance returns the euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}
