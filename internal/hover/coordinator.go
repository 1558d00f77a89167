package hover

import (
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/orbit"
)

// Frame is the input of one coordinated hover evaluation.
type Frame struct {
	Pointer       Pointer
	Width, Height float64
	Camera        *cosmos.Camera
	Suns          []SunCandidate
	Bodies        []*orbit.Body

	SunTooltipBounds  *Rect
	BodyTooltipBounds *Rect
	FrameTime         float64
}

// Result is the hover outcome of one frame.
type Result struct {
	SunID         string // sun drawn hovered
	BodyID        string // body drawn hovered
	SunTooltipID  string
	BodyTooltipID string
}

// Coordinator runs the body manager before the sun manager so that a
// visible body tooltip suppresses the sun tooltip in the same frame.
type Coordinator struct {
	Suns   *SunManager
	Bodies *BodyManager
}

// NewCoordinator wires both managers.
func NewCoordinator(sun SunConfig, body BodyConfig, sunListener, bodyListener Listener) *Coordinator {
	return &Coordinator{
		Suns:   NewSunManager(sun, sunListener),
		Bodies: NewBodyManager(body, bodyListener),
	}
}

// ProcessFrame evaluates both managers.
func (c *Coordinator) ProcessFrame(f Frame) Result {
	c.Bodies.ProcessFrame(BodyFrame{
		Pointer:       f.Pointer,
		Bodies:        f.Bodies,
		TooltipBounds: f.BodyTooltipBounds,
		FrameTime:     f.FrameTime,
	})

	sun := c.Suns.ProcessFrame(SunFrame{
		Pointer:            f.Pointer,
		Width:              f.Width,
		Height:             f.Height,
		Camera:             f.Camera,
		Suns:               f.Suns,
		BodyTooltipVisible: c.Bodies.TooltipVisible(),
		TooltipBounds:      f.SunTooltipBounds,
		FrameTime:          f.FrameTime,
	})

	return Result{
		SunID:         sun,
		BodyID:        c.Bodies.Hovered(),
		SunTooltipID:  c.Suns.TooltipID(),
		BodyTooltipID: c.Bodies.TooltipID(),
	}
}

// Reset clears both managers.
func (c *Coordinator) Reset() {
	c.Suns.Reset()
	c.Bodies.Reset()
}
