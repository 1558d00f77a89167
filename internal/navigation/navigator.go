package navigation

import (
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/logging"
)

// TransitionKind names a navigation change.
type TransitionKind string

const (
	TransitionDrillDown TransitionKind = "DRILL_DOWN"
	TransitionBack      TransitionKind = "BACK"
	TransitionHome      TransitionKind = "HOME"
	TransitionPreview   TransitionKind = "HOVER_ZOOM_IN"
	TransitionUnpreview TransitionKind = "HOVER_ZOOM_OUT"
	TransitionArrived   TransitionKind = "ARRIVED"
)

// Transition describes one navigation change.
type Transition struct {
	Kind     TransitionKind
	From     cosmos.NavState
	To       cosmos.NavState
	ObjectID string
	Target   cosmos.CameraPose
}

// Recorder receives navigation transitions.
type Recorder interface {
	RecordTransition(Transition)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransition(Transition) {}

// Navigator owns the camera and navigation state of one view. Every change
// assigns both together, so readers never see one without the other.
type Navigator struct {
	cfg    Config
	lookup hierarchy.Lookup
	rec    Recorder
	logger *logging.Logger

	nav   cosmos.NavState
	cam   cosmos.Camera
	auto  *AutoZoom
	easer Easer

	lastFrame float64
	hasFrame  bool
}

// New creates a navigator at the universe level. rec and logger may be nil.
func New(cfg Config, lookup hierarchy.Lookup, rec Recorder, logger *logging.Logger) *Navigator {
	if rec == nil {
		rec = nopRecorder{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Navigator{
		cfg:    cfg,
		lookup: lookup,
		rec:    rec,
		logger: logger,
		nav:    cosmos.NewNavState(),
		cam:    cosmos.NewCamera(),
		auto:   NewAutoZoom(cfg),
		easer:  NewEaser(cfg),
	}
}

// Camera returns the current camera.
func (n *Navigator) Camera() cosmos.Camera {
	return n.cam
}

// State returns the current navigation state.
func (n *Navigator) State() cosmos.NavState {
	return n.nav
}

// Config returns the navigator's tunables.
func (n *Navigator) Config() Config {
	return n.cfg
}

// Previewing returns the galaxy being previewed by hover, if any.
func (n *Navigator) Previewing() string {
	return n.auto.Previewing()
}

func (n *Navigator) apply(kind TransitionKind, objectID string, nav cosmos.NavState, cam cosmos.Camera) {
	t := Transition{Kind: kind, From: n.nav, To: nav, ObjectID: objectID}
	if cam.Target != nil {
		t.Target = *cam.Target
	}
	n.nav, n.cam = nav, cam
	n.rec.RecordTransition(t)
	n.logger.Debug("%s %s -> %s", kind, t.From, t.To)
}

// Click picks the object under the screen point and drills into it.
func (n *Navigator) Click(sx, sy, width, height float64) (cosmos.Object, bool) {
	obj, ok := PickObject(n.lookup, n.cfg, sx, sy, n.cam, width, height)
	if !ok {
		obj, ok = PickSpecial(n.lookup, n.cfg, sx, sy, n.cam, width, height)
	}
	if !ok {
		return cosmos.Object{}, false
	}
	n.Select(obj)
	return obj, true
}

// Select drills into obj directly.
func (n *Navigator) Select(obj cosmos.Object) {
	nav, cam := DrillDown(n.nav, n.cam, obj, n.cfg)
	if nav == n.nav {
		return
	}
	n.auto.Reset()
	n.apply(TransitionDrillDown, obj.ID, nav, cam)
}

// Back moves one level up. It reports false at the universe level.
func (n *Navigator) Back() bool {
	if n.nav.Level == cosmos.LevelUniverse {
		return false
	}
	nav, cam := Back(n.nav, n.cam, n.lookup, n.cfg)
	n.auto.Reset()
	n.apply(TransitionBack, nav.FocusID(), nav, cam)
	return true
}

// Home returns straight to the universe.
func (n *Navigator) Home() {
	nav := cosmos.NewNavState()
	nav.Transitioning = true
	n.auto.Reset()
	n.apply(TransitionHome, "", nav, n.cam.WithTarget(cosmos.UniversePose))
}

// Hover feeds the pointer to the galaxy preview. It is only active at the
// universe level.
func (n *Navigator) Hover(sx, sy float64, onScreen bool, width, height, frameTime float64) {
	if !n.cfg.AutoZoom || n.nav.Level != cosmos.LevelUniverse {
		return
	}

	var hovered *cosmos.Object
	if onScreen {
		hovered = HoveredGalaxy(n.lookup.ObjectsByLevel(cosmos.LevelGalaxy), sx, sy, n.cam, width, height)
	}

	target, ok := n.auto.Update(hovered, frameTime)
	if !ok {
		return
	}

	kind, id := TransitionPreview, n.auto.Previewing()
	if id == "" {
		kind = TransitionUnpreview
	}
	n.apply(kind, id, n.nav, n.cam.WithTarget(target))
}

// Update eases the camera one frame toward its target.
func (n *Navigator) Update(frameTime float64) {
	dt := 0.0
	if n.hasFrame {
		dt = frameTime - n.lastFrame
	}
	n.lastFrame, n.hasFrame = frameTime, true

	if n.cam.Target == nil {
		return
	}
	cam := n.easer.Step(n.cam, dt)
	if cam.Target != nil {
		n.cam = cam
		return
	}

	nav := n.nav
	if nav.Transitioning {
		nav.Transitioning = false
		n.apply(TransitionArrived, nav.FocusID(), nav, cam)
		return
	}
	n.cam = cam
}

// SetLookup swaps the hierarchy and resets to the universe.
func (n *Navigator) SetLookup(lookup hierarchy.Lookup) {
	n.lookup = lookup
	n.Reset()
}

// Reset returns to the initial state without easing.
func (n *Navigator) Reset() {
	n.nav = cosmos.NewNavState()
	n.cam = cosmos.NewCamera()
	n.auto.Reset()
	n.easer.Reset()
	n.hasFrame = false
}
