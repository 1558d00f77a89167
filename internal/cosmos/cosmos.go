// Package cosmos defines the value types shared by the navigation surface:
// hierarchy levels, cosmic objects, the camera and the navigation state.
package cosmos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned when a level name is not recognized.
var ErrUnknownLevel = errors.New("unknown level")

// Level is a tier of the cosmic hierarchy.
type Level string

const (
	LevelUniverse Level = "universe"
	LevelGalaxy   Level = "galaxy"
	LevelSun      Level = "sun"
	LevelPlanet   Level = "planet"
	LevelSpecial  Level = "special"
)

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelUniverse:
		return LevelUniverse, nil
	case LevelGalaxy:
		return LevelGalaxy, nil
	case LevelSun:
		return LevelSun, nil
	case LevelPlanet:
		return LevelPlanet, nil
	case LevelSpecial:
		return LevelSpecial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Parent returns the level one step up the hierarchy. Specials and galaxies
// report the universe.
func (l Level) Parent() Level {
	switch l {
	case LevelSun:
		return LevelGalaxy
	case LevelPlanet:
		return LevelSun
	default:
		return LevelUniverse
	}
}

// Depth returns the nesting depth of a level (universe = 0).
func (l Level) Depth() int {
	switch l {
	case LevelGalaxy, LevelSpecial:
		return 1
	case LevelSun:
		return 2
	case LevelPlanet:
		return 3
	default:
		return 0
	}
}

// Point is a 2D coordinate. Depending on context it is a normalized world
// position, a pixel-space world position or a screen position.
type Point struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// Object is a node in the static cosmic hierarchy.
type Object struct {
	ID          string
	Name        string
	Description string
	Position    Point
	Size        float64 // normalized radius
	Level       Level
	ParentID    string // empty for roots
	Color       string
	Kind        string // optional display kind (binary, star, black-hole)
}

// HasParent reports whether the object has a parent reference.
func (o Object) HasParent() bool {
	return o.ParentID != ""
}

// CameraPose is the position/zoom part of a camera. It is also used as the
// easing target.
type CameraPose struct {
	CX   float64
	CY   float64
	Zoom float64
}

// UniversePose is the default pose: centered, no zoom.
var UniversePose = CameraPose{CX: 0.5, CY: 0.5, Zoom: 1}

// Camera is the current viewport. Zoom is always > 0.
type Camera struct {
	CX     float64
	CY     float64
	Zoom   float64
	Target *CameraPose
}

// NewCamera returns a camera resting at the universe pose.
func NewCamera() Camera {
	return Camera{CX: UniversePose.CX, CY: UniversePose.CY, Zoom: UniversePose.Zoom}
}

// Pose returns the camera's current pose.
func (c Camera) Pose() CameraPose {
	return CameraPose{CX: c.CX, CY: c.CY, Zoom: c.Zoom}
}

// WithTarget returns a copy of the camera easing toward p.
func (c Camera) WithTarget(p CameraPose) Camera {
	c.Target = &p
	return c
}

// Centered reports whether the camera is centered on the middle of the world.
func (c Camera) Centered() bool {
	return c.CX == 0.5 && c.CY == 0.5
}

// NavState is the discrete navigation state. Empty ids are undefined.
type NavState struct {
	Level         Level
	GalaxyID      string
	SunID         string
	PlanetID      string
	SpecialID     string
	Transitioning bool
}

// NewNavState returns the initial universe-level state.
func NewNavState() NavState {
	return NavState{Level: LevelUniverse}
}

// FocusID returns the id of the object the state is focused on, or "" at
// the universe level.
func (n NavState) FocusID() string {
	switch n.Level {
	case LevelGalaxy:
		return n.GalaxyID
	case LevelSun:
		return n.SunID
	case LevelPlanet:
		return n.PlanetID
	case LevelSpecial:
		return n.SpecialID
	}
	return ""
}

func (n NavState) String() string {
	if id := n.FocusID(); id != "" {
		return fmt.Sprintf("%s:%s", n.Level, id)
	}
	return string(n.Level)
}
