// Package hover decides, every frame, which sun and which orbiting body are
// under the pointer and when their tooltips appear and disappear.
//
// Rendering hover is immediate and purely geometric. Tooltip visibility is
// debounced: once the pointer leaves a target, the tooltip lingers for a
// short delay so the pointer can travel onto it.
package hover

// DefaultHideDelay is the tooltip linger time in milliseconds.
const DefaultHideDelay = 200

// Pointer is the pointer state for one frame, in screen coordinates.
type Pointer struct {
	X, Y            float64
	OnScreen        bool
	OverContentCard bool
	OverTooltip     bool
}

// Rect is a screen-space rectangle.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// DelayTimer is a frame-time driven one-shot timer.
type DelayTimer struct {
	Delay float64

	start  float64
	active bool
}

// Start arms the timer at now unless it is already running.
func (t *DelayTimer) Start(now float64) {
	if t.active {
		return
	}
	t.start = now
	t.active = true
}

// Cancel disarms the timer.
func (t *DelayTimer) Cancel() {
	t.active = false
}

// Active reports whether the timer is armed.
func (t *DelayTimer) Active() bool {
	return t.active
}

// Expired reports whether the timer is armed and Delay has elapsed.
func (t *DelayTimer) Expired(now float64) bool {
	return t.active && now-t.start >= t.Delay
}

// Listener is notified when a manager shows or hides its tooltip. Either
// func may be nil.
type Listener struct {
	OnShow func(id string)
	OnHide func(id string)
}

// tooltip is the debounced visibility shared by both managers.
type tooltip struct {
	timer    DelayTimer
	id       string
	listener Listener
}

func newTooltip(delay float64) tooltip {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return tooltip{timer: DelayTimer{Delay: delay}}
}

// show fires OnShow once per distinct id.
func (t *tooltip) show(id string) {
	t.timer.Cancel()
	if t.id == id {
		return
	}
	t.id = id
	if t.listener.OnShow != nil {
		t.listener.OnShow(id)
	}
}

func (t *tooltip) hide() {
	t.timer.Cancel()
	if t.id == "" {
		return
	}
	old := t.id
	t.id = ""
	if t.listener.OnHide != nil {
		t.listener.OnHide(old)
	}
}

// step applies one frame of the debounce contract.
func (t *tooltip) step(hoveredID string, overTooltip, forceClear bool, now float64) {
	switch {
	case forceClear:
		t.hide()
	case hoveredID != "":
		t.show(hoveredID)
	case t.id == "":
		// Nothing shown, nothing to hide.
	case overTooltip:
		t.timer.Cancel()
	default:
		t.timer.Start(now)
		if t.timer.Expired(now) {
			t.hide()
		}
	}
}

func (t *tooltip) reset() {
	t.timer.Cancel()
	t.id = ""
}

func overTooltip(p Pointer, bounds *Rect) bool {
	return p.OverTooltip || (bounds != nil && bounds.Contains(p.X, p.Y))
}

// forceClear reports whether the pointer has left the surface or sits on a
// content card that is not a tooltip.
func forceClear(p Pointer, overTip bool) bool {
	return !p.OnScreen || (p.OverContentCard && !overTip)
}
