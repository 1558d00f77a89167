// Package scene composes the coordinate transform, navigation, orbit and
// hover packages into one view with a fixed per-frame order, and turns the
// result into a draw list for a Sink.
package scene

import (
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/orbit"
)

// Input is what the host feeds a view every frame.
type Input struct {
	FrameTime float64 // ms, monotonic
	Pointer   hover.Pointer

	// Screen rectangles of the tooltips drawn last frame, if any.
	SunTooltipBounds  *hover.Rect
	BodyTooltipBounds *hover.Rect
}

// ObjectSprite is a hierarchy object in screen space.
type ObjectSprite struct {
	ID      string
	Name    string
	Level   cosmos.Level
	Color   string
	X, Y    float64
	Radius  float64
	Focused bool
}

// SunSprite is a sun of the sun system in screen space.
type SunSprite struct {
	ID         string
	Name       string
	Color      string
	X, Y       float64
	Radius     float64
	Rotation   float64
	Propelling bool
	Hovered    bool
}

// BodySprite is an orbiting body in screen space.
type BodySprite struct {
	ID       string
	Name     string
	Initials string
	Color    string
	X, Y     float64
	Scale    float64
	Path     orbit.PathType
	Hovered  bool
	Paused   bool
}

// SatelliteSprite is a satellite in screen space.
type SatelliteSprite struct {
	BodyID string
	X, Y   float64
	Size   float64
}

// Tooltip is a visible tooltip anchored at a screen point.
type Tooltip struct {
	Kind  string // "sun" or "body"
	ID    string
	Title string
	Lines []string
	X, Y  float64
}

// Frame is the complete draw list of one frame.
type Frame struct {
	Width, Height float64
	FrameTime     float64

	Camera     cosmos.Camera
	Nav        cosmos.NavState
	Previewing string

	Objects    []ObjectSprite
	Suns       []SunSprite
	Bodies     []BodySprite
	Satellites []SatelliteSprite

	SunHoverID  string
	BodyHoverID string
	SunTooltip  *Tooltip
	BodyTooltip *Tooltip
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return len(f.Objects) == 0 && len(f.Suns) == 0 && len(f.Bodies) == 0
}

// Sink consumes frames.
type Sink interface {
	Draw(Frame)
}
