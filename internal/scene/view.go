package scene

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/navigation"
	"github.com/litescript/ls-cosmos/internal/orbit"
	"github.com/litescript/ls-cosmos/internal/state"
	"github.com/litescript/ls-cosmos/internal/transform"
)

// minSpriteRadius is the smallest screen radius worth drawing.
const minSpriteRadius = 0.5

// Recorder receives everything a view reports. *state.Manager satisfies it.
type Recorder interface {
	navigation.Recorder
	SetViewID(id string)
	Update(stats state.FrameStats)
	RecordTooltip(kind, id string, shown bool)
	RecordReload(source string, err error)
	RecordLifecycle(typ state.EventType)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransition(navigation.Transition) {}
func (nopRecorder) SetViewID(string)                       {}
func (nopRecorder) Update(state.FrameStats)                {}
func (nopRecorder) RecordTooltip(string, string, bool)     {}
func (nopRecorder) RecordReload(string, error)             {}
func (nopRecorder) RecordLifecycle(state.EventType)        {}

// View is one navigation surface. It owns all per-view state: camera,
// navigation, bodies, suns and hover managers. A View is driven from a
// single goroutine.
type View struct {
	ID string

	cfg      config.Config
	logger   *logging.Logger
	rec      Recorder
	universe *hierarchy.Universe

	nav   *navigation.Navigator
	orbit *orbit.Engine
	hover *hover.Coordinator
	sun   hover.SunConfig
	body  hover.BodyConfig

	width, height float64
	initialized   bool
	disposed      bool
}

// New creates a view over universe. Call Init before the first Frame.
// logger and rec may be nil.
func New(cfg config.Config, universe *hierarchy.Universe, logger *logging.Logger, rec Recorder) *View {
	if logger == nil {
		logger = logging.Discard()
	}
	if rec == nil {
		rec = nopRecorder{}
	}

	id := uuid.NewString()
	v := &View{
		ID:       id,
		cfg:      cfg,
		logger:   logger.With("view " + id[:8]),
		rec:      rec,
		universe: universe,
	}
	rec.SetViewID(id)

	v.nav = navigation.New(cfg.Navigation(), universe.Tree, rec, v.logger.With("nav"))
	v.orbit = orbit.NewEngine(cfg.Orbit(), v.logger.With("orbit"))
	v.sun, v.body = cfg.Hover()
	v.hover = hover.NewCoordinator(v.sun, v.body, v.tooltipListener("sun"), v.tooltipListener("body"))
	return v
}

func (v *View) tooltipListener(kind string) hover.Listener {
	return hover.Listener{
		OnShow: func(id string) {
			v.logger.Debug("%s tooltip show %s", kind, id)
			v.rec.RecordTooltip(kind, id, true)
		},
		OnHide: func(id string) {
			v.logger.Debug("%s tooltip hide %s", kind, id)
			v.rec.RecordTooltip(kind, id, false)
		},
	}
}

// Init sizes the view and builds the orbiting bodies. Only the first call
// has an effect.
func (v *View) Init(width, height float64) {
	if v.initialized || v.disposed {
		return
	}
	v.width, v.height = width, height
	v.orbit.Init(v.universe, width, height)
	v.initialized = true
	v.rec.RecordLifecycle(state.EventViewInit)
	v.logger.Info("init %.0fx%.0f, %d objects, %d bodies", width, height, v.universe.Tree.Len(), len(v.orbit.Bodies()))
}

// Initialized reports whether Init has run and Dispose has not.
func (v *View) Initialized() bool {
	return v.initialized && !v.disposed
}

// Size returns the viewport size.
func (v *View) Size() (width, height float64) {
	return v.width, v.height
}

// Universe returns the hierarchy document the view draws.
func (v *View) Universe() *hierarchy.Universe {
	return v.universe
}

// Navigator exposes the view's navigator.
func (v *View) Navigator() *navigation.Navigator {
	return v.nav
}

// Engine exposes the view's orbit engine.
func (v *View) Engine() *orbit.Engine {
	return v.orbit
}

// Hover exposes the view's hover coordinator.
func (v *View) Hover() *hover.Coordinator {
	return v.hover
}

// Frame runs one frame in the fixed order orbit, navigation, hover and
// returns the draw list. Before Init or after Dispose it returns an empty
// frame.
func (v *View) Frame(in Input) Frame {
	if !v.Initialized() {
		return Frame{}
	}
	start := time.Now()

	v.orbit.Update(in.FrameTime, v.nav.Camera(), v.width, v.height)

	v.nav.Hover(in.Pointer.X, in.Pointer.Y, in.Pointer.OnScreen, v.width, v.height, in.FrameTime)
	v.nav.Update(in.FrameTime)

	cam := v.nav.Camera()
	states := v.orbit.Suns().States()
	candidates := make([]hover.SunCandidate, len(states))
	for i, s := range states {
		candidates[i] = hover.SunCandidate{ID: s.ID, X: s.X, Y: s.Y, Size: s.Size}
	}
	res := v.hover.ProcessFrame(hover.Frame{
		Pointer:           in.Pointer,
		Width:             v.width,
		Height:            v.height,
		Camera:            &cam,
		Suns:              candidates,
		Bodies:            v.orbit.Bodies(),
		SunTooltipBounds:  in.SunTooltipBounds,
		BodyTooltipBounds: in.BodyTooltipBounds,
		FrameTime:         in.FrameTime,
	})

	f := v.draw(cam, states, res)
	f.FrameTime = in.FrameTime

	v.rec.Update(state.FrameStats{
		Nav:           f.Nav,
		Camera:        cam,
		SunHoverID:    res.SunID,
		BodyHoverID:   res.BodyID,
		SunTooltipID:  res.SunTooltipID,
		BodyTooltipID: res.BodyTooltipID,
		Bodies:        len(f.Bodies),
		Duration:      time.Since(start),
	})
	return f
}

func (v *View) draw(cam cosmos.Camera, suns []orbit.SunState, res hover.Result) Frame {
	f := Frame{
		Width:       v.width,
		Height:      v.height,
		Camera:      cam,
		Nav:         v.nav.State(),
		Previewing:  v.nav.Previewing(),
		SunHoverID:  res.SunID,
		BodyHoverID: res.BodyID,
	}

	sunSystem := v.orbit.Suns()
	focus := f.Nav.FocusID()
	for _, o := range v.nav.ActiveObjects() {
		if sunSystem.Has(o.ID) {
			continue
		}
		r := transform.ScreenRadius(o.Size, cam, v.width, v.height)
		if r < minSpriteRadius || !transform.IsVisibleInViewport(o.Position.X, o.Position.Y, r, cam, v.width, v.height) {
			continue
		}
		x, y := transform.WorldToScreen(o.Position.X, o.Position.Y, cam, v.width, v.height)
		f.Objects = append(f.Objects, ObjectSprite{
			ID:      o.ID,
			Name:    o.Name,
			Level:   o.Level,
			Color:   o.Color,
			X:       x,
			Y:       y,
			Radius:  r,
			Focused: o.ID == focus || o.ID == f.Previewing,
		})
	}

	for _, s := range suns {
		r := v.sun.BaseSize(s.Size, v.width, v.height) * cam.Zoom
		if !transform.IsVisibleInViewport(s.X, s.Y, r, cam, v.width, v.height) {
			continue
		}
		x, y := transform.WorldToScreen(s.X, s.Y, cam, v.width, v.height)
		f.Suns = append(f.Suns, SunSprite{
			ID:         s.ID,
			Name:       s.Name,
			Color:      s.Color,
			X:          x,
			Y:          y,
			Radius:     r,
			Rotation:   s.RotationAngle,
			Propelling: s.Propelling,
			Hovered:    s.ID == res.SunID,
		})
		if s.ID == res.SunTooltipID {
			f.SunTooltip = v.sunTooltip(s, x, y, r)
		}
	}

	for _, b := range v.orbit.Bodies() {
		f.Bodies = append(f.Bodies, BodySprite{
			ID:       b.ID,
			Name:     b.Project.Name,
			Initials: b.Project.Initials,
			Color:    b.Project.Color,
			X:        b.X,
			Y:        b.Y,
			Scale:    b.Pulse.Scale,
			Path:     b.Path,
			Hovered:  b.Hovered,
			Paused:   b.Paused,
		})
		for _, s := range b.Satellites {
			f.Satellites = append(f.Satellites, SatelliteSprite{BodyID: b.ID, X: s.X, Y: s.Y, Size: s.Size})
		}
		if b.ID == res.BodyTooltipID {
			f.BodyTooltip = v.bodyTooltip(b)
		}
	}
	return f
}

func (v *View) sunTooltip(s orbit.SunState, x, y, r float64) *Tooltip {
	n := 0
	for _, b := range v.orbit.Bodies() {
		if b.ParentID == s.ID {
			n++
		}
	}
	lines := []string{}
	if s.Description != "" {
		lines = append(lines, s.Description)
	}
	lines = append(lines, fmt.Sprintf("%d projects in orbit", n))
	return &Tooltip{Kind: "sun", ID: s.ID, Title: s.Name, Lines: lines, X: x + r, Y: y - r}
}

func (v *View) bodyTooltip(b *orbit.Body) *Tooltip {
	lines := []string{}
	if b.Project.FocusArea != "" {
		lines = append(lines, b.Project.FocusArea)
	}
	lines = append(lines, fmt.Sprintf("%s orbit, %d satellites", b.Path, len(b.Satellites)))
	off := v.body.BaseSize * b.Pulse.Scale
	return &Tooltip{Kind: "body", ID: b.ID, Title: b.Project.Name, Lines: lines, X: b.X + off, Y: b.Y - off}
}

// Click drills into the object under the screen point.
func (v *View) Click(sx, sy float64) (cosmos.Object, bool) {
	if !v.Initialized() {
		return cosmos.Object{}, false
	}
	obj, ok := v.nav.Click(sx, sy, v.width, v.height)
	if ok {
		v.logger.Info("drill down %s %s", obj.Level, obj.ID)
	}
	return obj, ok
}

// Select drills into the object with the given id.
func (v *View) Select(id string) bool {
	obj, ok := v.universe.Tree.ObjectByID(id)
	if !ok || !v.Initialized() {
		return false
	}
	v.nav.Select(obj)
	return true
}

// Back navigates one level up.
func (v *View) Back() bool {
	if !v.Initialized() {
		return false
	}
	ok := v.nav.Back()
	if ok {
		v.logger.Info("back to %s", v.nav.State())
	}
	return ok
}

// Home returns to the universe.
func (v *View) Home() {
	if v.Initialized() {
		v.nav.Home()
	}
}

// Resize changes the viewport. Bodies are rebuilt for the new size since
// orbit radii depend on it.
func (v *View) Resize(width, height float64) {
	if !v.Initialized() || (width == v.width && height == v.height) {
		return
	}
	v.width, v.height = width, height
	v.hover.Reset()
	v.orbit.Init(v.universe, width, height)
	v.logger.Debug("resize %.0fx%.0f", width, height)
}

// Swap replaces the hierarchy document. Navigation returns to the universe
// and all per-view state is rebuilt from the new tree.
func (v *View) Swap(u *hierarchy.Universe) {
	if u == nil || v.disposed {
		return
	}
	v.universe = u
	v.hover.Reset()
	v.nav.SetLookup(u.Tree)
	if v.initialized {
		v.orbit.Init(u, v.width, v.height)
	}
	v.rec.RecordReload(u.Source, nil)
	v.logger.Info("swapped universe from %s", u.Source)
}

// Dispose resets every manager and stops the view. Later calls are no-ops.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.hover.Reset()
	v.nav.Reset()
	v.orbit.Reset()
	v.disposed = true
	if v.initialized {
		v.rec.RecordLifecycle(state.EventViewDispose)
		v.logger.Info("disposed")
	}
}
