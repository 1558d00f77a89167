package navigation

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/litescript/ls-cosmos/internal/cosmos"
)

// Easer moves a camera toward its target. When the target is reached the
// returned camera has no target.
type Easer interface {
	Step(cam cosmos.Camera, dt float64) cosmos.Camera
	Reset()
}

// NewEaser returns the easer selected by cfg.
func NewEaser(cfg Config) Easer {
	if cfg.Easing == EasingTween {
		return &TweenEaser{Duration: cfg.TweenDuration, Ease: ease.OutCubic}
	}
	return &LerpEaser{Smoothing: cfg.Smoothing, Convergence: cfg.ZoomConvergence}
}

// LerpEaser closes a fixed fraction of the gap every frame.
type LerpEaser struct {
	Smoothing   float64
	Convergence float64
}

// Step advances one frame. dt is ignored.
func (e *LerpEaser) Step(cam cosmos.Camera, _ float64) cosmos.Camera {
	if cam.Target == nil {
		return cam
	}
	t := *cam.Target
	cam.CX += (t.CX - cam.CX) * e.Smoothing
	cam.CY += (t.CY - cam.CY) * e.Smoothing
	cam.Zoom += (t.Zoom - cam.Zoom) * e.Smoothing

	if math.Abs(cam.Zoom-t.Zoom) < e.Convergence {
		cam.Target = nil
	}
	return cam
}

// Reset is a no-op; the lerp keeps no state.
func (e *LerpEaser) Reset() {}

// TweenEaser eases each camera axis with a gween tween. A change of target
// restarts the tweens from the current pose.
type TweenEaser struct {
	Duration float64 // milliseconds
	Ease     ease.TweenFunc

	active bool
	target cosmos.CameraPose
	cx     *gween.Tween
	cy     *gween.Tween
	zoom   *gween.Tween
}

// Step advances the tweens by dt milliseconds.
func (e *TweenEaser) Step(cam cosmos.Camera, dt float64) cosmos.Camera {
	if cam.Target == nil {
		e.active = false
		return cam
	}
	if !e.active || *cam.Target != e.target {
		e.start(cam)
	}

	x, doneX := e.cx.Update(float32(dt))
	y, doneY := e.cy.Update(float32(dt))
	z, doneZ := e.zoom.Update(float32(dt))

	if doneX && doneY && doneZ {
		cam.CX, cam.CY, cam.Zoom = e.target.CX, e.target.CY, e.target.Zoom
		cam.Target = nil
		e.active = false
		return cam
	}

	cam.CX, cam.CY, cam.Zoom = float64(x), float64(y), float64(z)
	if cam.Zoom <= 0 {
		cam.Zoom = math.SmallestNonzeroFloat32
	}
	return cam
}

func (e *TweenEaser) start(cam cosmos.Camera) {
	fn := e.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	d := float32(e.Duration)
	e.target = *cam.Target
	e.cx = gween.New(float32(cam.CX), float32(e.target.CX), d, fn)
	e.cy = gween.New(float32(cam.CY), float32(e.target.CY), d, fn)
	e.zoom = gween.New(float32(cam.Zoom), float32(e.target.Zoom), d, fn)
	e.active = true
}

// Reset drops any running tween.
func (e *TweenEaser) Reset() {
	e.active = false
	e.cx, e.cy, e.zoom = nil, nil, nil
}
