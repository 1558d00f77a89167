package orbit

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
)

// Direction is the sense of rotation around the orbit center.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Sign returns +1 for clockwise and -1 otherwise.
func (d Direction) Sign() float64 {
	if d == CounterClockwise {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// PathType shapes a body's orbit.
type PathType string

const (
	PathComet  PathType = "comet"
	PathPlanet PathType = "planet"
	PathStar   PathType = "star"
)

var pathCycle = [...]PathType{PathComet, PathPlanet, PathStar}

// Body is an orbiting portfolio project.
type Body struct {
	ID      string
	Project hierarchy.Project

	X, Y  float64 // screen position
	Angle float64 // radians

	OrbitRadius    float64
	OrbitSpeed     float64 // radians per frame before the mode delta
	Eccentricity   float64 // [0,1)
	Tilt           float64 // degrees
	VerticalFactor float64
	Direction      Direction
	Path           PathType

	ParentID string       // sun the body orbits
	Center   cosmos.Point // screen position of the parent

	Paused  bool
	Hovered bool

	Satellites []Satellite
	Pulse      Pulsation

	originalSpeed float64
	hasOriginal   bool
}

// Pause stops the body, remembering its speed. Pausing twice keeps the
// first snapshot.
func (b *Body) Pause() {
	if !b.hasOriginal {
		b.originalSpeed = b.OrbitSpeed
		b.hasOriginal = true
	}
	b.OrbitSpeed = 0
	b.Paused = true
}

// Resume restores the speed saved by Pause.
func (b *Body) Resume() {
	if b.hasOriginal {
		b.OrbitSpeed = b.originalSpeed
		b.hasOriginal = false
	}
	b.Paused = false
}

// OriginalOrbitSpeed returns the speed snapshot held while paused.
func (b *Body) OriginalOrbitSpeed() (float64, bool) {
	return b.originalSpeed, b.hasOriginal
}

// Hover marks the body hovered: it stops and pulses with the hover envelope.
func (b *Body) Hover() {
	b.Hovered = true
	b.Pause()
	b.Pulse.Hovered = true
}

// Unhover reverses Hover.
func (b *Body) Unhover() {
	b.Hovered = false
	b.Resume()
	b.Pulse.Hovered = false
}

// Semiaxes returns the ellipse half-axes of the orbit.
func (b *Body) Semiaxes() (a, minor float64) {
	return b.OrbitRadius, b.OrbitRadius * (1 - b.Eccentricity) * b.VerticalFactor
}

// Advance moves a non-paused body one frame along its orbit.
func Advance(b *Body, mode Mode) {
	if b.Paused {
		return
	}
	b.Angle += b.Direction.Sign() * b.OrbitSpeed * mode.FixedDelta()
	a, minor := b.Semiaxes()
	b.X, b.Y = Position(b.Center, a, minor, b.Angle, b.Tilt, mode)
}

// Position returns the point at angle on an ellipse around center. In full
// mode the tilt foreshortens the vertical axis only.
func Position(center cosmos.Point, a, b, angle, tiltDeg float64, mode Mode) (x, y float64) {
	x = center.X + a*math.Cos(angle)
	if mode == ModeSimple {
		return x, center.Y + b*math.Sin(angle)
	}
	tilt := tiltDeg * math.Pi / 180
	return x, center.Y + b*math.Sin(angle)*math.Cos(tilt)
}
