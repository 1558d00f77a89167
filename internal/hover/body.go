package hover

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/orbit"
	"github.com/litescript/ls-cosmos/internal/transform"
)

// BodyConfig holds orbiting body hover tunables.
type BodyConfig struct {
	HideDelay float64 // ms
	BaseSize  float64 // px
	HitMargin float64
}

// DefaultBodyConfig returns the stock body hover tunables.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		HideDelay: DefaultHideDelay,
		BaseSize:  30,
		HitMargin: 1,
	}
}

// BodyFrame is the input of one body hover evaluation. Bodies are in
// screen coordinates.
type BodyFrame struct {
	Pointer       Pointer
	Bodies        []*orbit.Body
	TooltipBounds *Rect
	FrameTime     float64
}

// BodyManager tracks which orbiting body is hovered, pauses it, and
// debounces its tooltip.
type BodyManager struct {
	cfg     BodyConfig
	tip     tooltip
	hovered string
}

// NewBodyManager creates a body manager. listener may be zero.
func NewBodyManager(cfg BodyConfig, listener Listener) *BodyManager {
	m := &BodyManager{cfg: cfg, tip: newTooltip(cfg.HideDelay)}
	m.tip.listener = listener
	return m
}

// ProcessFrame updates hover state on the bodies and reports whether any
// body is hovered.
func (m *BodyManager) ProcessFrame(f BodyFrame) bool {
	overTip := overTooltip(f.Pointer, f.TooltipBounds)
	cleared := forceClear(f.Pointer, overTip)

	var hit *orbit.Body
	if !cleared {
		hit = m.hitTest(f.Pointer, f.Bodies)
	}

	for _, b := range f.Bodies {
		switch {
		case b == hit:
			if !b.Hovered {
				b.Hover()
			}
		case b.Hovered || b.Paused:
			b.Unhover()
		}
	}

	m.hovered = ""
	if hit != nil {
		m.hovered = hit.ID
	}

	m.tip.step(m.hovered, overTip, cleared, f.FrameTime)
	return hit != nil
}

// hitTest returns the nearest body within the hit radius. On equal
// distance the body hovered last frame keeps the hover.
func (m *BodyManager) hitTest(p Pointer, bodies []*orbit.Body) *orbit.Body {
	radius := m.cfg.BaseSize * m.cfg.HitMargin

	var best *orbit.Body
	bestDist := math.Inf(1)
	for _, b := range bodies {
		d := transform.Distance(p.X, p.Y, b.X, b.Y)
		if d > radius {
			continue
		}
		if d < bestDist || (d == bestDist && b.ID == m.hovered) {
			best, bestDist = b, d
		}
	}
	return best
}

// Hovered returns the id of the hovered body.
func (m *BodyManager) Hovered() string {
	return m.hovered
}

// TooltipVisible reports whether a body tooltip is showing.
func (m *BodyManager) TooltipVisible() bool {
	return m.tip.id != ""
}

// TooltipID returns the body whose tooltip is showing.
func (m *BodyManager) TooltipID() string {
	return m.tip.id
}

// HidePending reports whether the tooltip is lingering before a hide.
func (m *BodyManager) HidePending() bool {
	return m.tip.timer.Active()
}

// Reset clears hover, tooltip and timer without notifying the listener.
// Bodies are not touched; the caller owns them.
func (m *BodyManager) Reset() {
	m.hovered = ""
	m.tip.reset()
}
