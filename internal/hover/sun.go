package hover

import (
	"math"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/transform"
)

// SunConfig holds sun hover tunables.
type SunConfig struct {
	HideDelay  float64 // ms
	MinSize    float64 // px, floor of the drawn sun radius
	SizeFactor float64 // of min(width, height) * sun size
	HitMargin  float64 // hit radius = base size * HitMargin
}

// DefaultSunConfig returns the stock sun hover tunables.
func DefaultSunConfig() SunConfig {
	return SunConfig{
		HideDelay:  DefaultHideDelay,
		MinSize:    20,
		SizeFactor: 0.35,
		HitMargin:  1.1,
	}
}

// BaseSize returns the drawn radius of a sun of normalized size.
func (c SunConfig) BaseSize(size, width, height float64) float64 {
	return math.Max(c.MinSize, math.Min(width, height)*size*c.SizeFactor)
}

// SunCandidate is a sun that can be hovered, in normalized world units.
type SunCandidate struct {
	ID   string
	X, Y float64
	Size float64
}

// SunFrame is the input of one sun hover evaluation.
type SunFrame struct {
	Pointer       Pointer
	Width, Height float64
	Camera        *cosmos.Camera
	Suns          []SunCandidate

	// BodyTooltipVisible suppresses the sun tooltip. The rendering hover
	// is still computed and returned.
	BodyTooltipVisible bool
	TooltipBounds      *Rect
	FrameTime          float64
}

// SunManager tracks sun hover and the sun tooltip of one view.
type SunManager struct {
	cfg       SunConfig
	tip       tooltip
	rendering string
}

// NewSunManager creates a sun manager. listener may be zero.
func NewSunManager(cfg SunConfig, listener Listener) *SunManager {
	m := &SunManager{cfg: cfg, tip: newTooltip(cfg.HideDelay)}
	m.tip.listener = listener
	return m
}

// ProcessFrame returns the id of the sun to draw hovered ("" for none) and
// advances the tooltip state.
func (m *SunManager) ProcessFrame(f SunFrame) string {
	overTip := overTooltip(f.Pointer, f.TooltipBounds)
	if forceClear(f.Pointer, overTip) {
		m.rendering = ""
		m.tip.step("", overTip, true, f.FrameTime)
		return ""
	}

	px, py := transform.PixelWorld(f.Pointer.X, f.Pointer.Y, f.Camera, f.Width, f.Height)

	hit := ""
	best := math.Inf(1)
	for _, s := range f.Suns {
		d := transform.Distance(px, py, s.X*f.Width, s.Y*f.Height)
		if d <= m.cfg.BaseSize(s.Size, f.Width, f.Height)*m.cfg.HitMargin && d < best {
			hit, best = s.ID, d
		}
	}
	m.rendering = hit

	m.tip.step(hit, overTip, f.BodyTooltipVisible, f.FrameTime)
	return hit
}

// Hovered returns the sun currently drawn hovered.
func (m *SunManager) Hovered() string {
	return m.rendering
}

// TooltipID returns the sun whose tooltip is showing.
func (m *SunManager) TooltipID() string {
	return m.tip.id
}

// HidePending reports whether the tooltip is lingering before a hide.
func (m *SunManager) HidePending() bool {
	return m.tip.timer.Active()
}

// Reset clears hover, tooltip and timer without notifying the listener.
func (m *SunManager) Reset() {
	m.rendering = ""
	m.tip.reset()
}
