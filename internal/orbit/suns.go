package orbit

import (
	"math"
	"math/rand"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
)

// Drift ranges for the suns' idle float.
const (
	driftAmplitudeMin = 0.003
	driftAmplitudeMax = 0.006
	driftSpeedMin     = 0.00003
	driftSpeedMax     = 0.00008

	rotationMin   = 0.00001
	rotationMax   = 0.0003
	rotationBoost = 0.000015
	rotationDecay = 0.998
	repelForce    = 0.001
	minRepelDist  = 0.001
)

// SunState is the animated state of a focus-area sun, in normalized world
// coordinates.
type SunState struct {
	ID          string
	Name        string
	Description string
	Color       string

	X, Y         float64
	BaseX, BaseY float64
	Size         float64

	RotationAngle float64
	RotationSpeed float64
	Propelling    bool
	propelTimer   int

	driftPhaseX, driftPhaseY float64
	driftSpeedX, driftSpeedY float64
	driftAmpX, driftAmpY     float64
}

// SunSystem drifts the suns of the orbit galaxy and keeps them apart.
type SunSystem struct {
	cfg  Config
	suns []SunState
	byID map[string]int
}

// NewSunSystem places one SunState per sun at the configured anchors (or
// the sun's own position when no anchors are set). mass maps a sun id to
// the total mass of the bodies orbiting it and is used once, here, to size
// the sun.
func NewSunSystem(cfg Config, suns []cosmos.Object, mass map[string]float64, rng *rand.Rand) *SunSystem {
	s := &SunSystem{
		cfg:  cfg,
		suns: make([]SunState, 0, len(suns)),
		byID: make(map[string]int, len(suns)),
	}
	for i, o := range suns {
		pos := o.Position
		if len(cfg.SunAnchors) > 0 {
			pos = cfg.SunAnchors[i%len(cfg.SunAnchors)]
		}
		st := SunState{
			ID:            o.ID,
			Name:          o.Name,
			Description:   o.Description,
			Color:         o.Color,
			X:             pos.X,
			Y:             pos.Y,
			BaseX:         pos.X,
			BaseY:         pos.Y,
			Size:          massSize(o.Size, mass[o.ID], cfg),
			RotationAngle: rng.Float64() * 2 * math.Pi,
			RotationSpeed: rotationMin,
			driftPhaseX:   rng.Float64() * 2 * math.Pi,
			driftPhaseY:   rng.Float64() * 2 * math.Pi,
			driftSpeedX:   between(rng, driftSpeedMin, driftSpeedMax),
			driftSpeedY:   between(rng, driftSpeedMin, driftSpeedMax),
			driftAmpX:     between(rng, driftAmplitudeMin, driftAmplitudeMax),
			driftAmpY:     between(rng, driftAmplitudeMin, driftAmplitudeMax),
		}
		s.byID[o.ID] = len(s.suns)
		s.suns = append(s.suns, st)
	}
	return s
}

// massSize grows a sun with the mass orbiting it, capped at MaxMassBoost.
func massSize(size, mass float64, cfg Config) float64 {
	if cfg.MassNormalizer <= 0 || mass <= 0 {
		return size
	}
	return size * (1 + math.Min(mass/cfg.MassNormalizer, cfg.MaxMassBoost))
}

// Update advances the suns by dt milliseconds.
func (s *SunSystem) Update(dt float64) {
	if s.cfg.MaxFrameDelta > 0 {
		dt = math.Min(dt, s.cfg.MaxFrameDelta)
	}
	thr := s.cfg.PropelThreshold

	for i := range s.suns {
		sun := &s.suns[i]

		sun.driftPhaseX += sun.driftSpeedX * dt
		sun.driftPhaseY += sun.driftSpeedY * dt
		tx := sun.BaseX + math.Sin(sun.driftPhaseX)*sun.driftAmpX
		ty := sun.BaseY + math.Sin(sun.driftPhaseY)*sun.driftAmpY
		sun.X += (tx - sun.X) * s.cfg.SunLerp
		sun.Y += (ty - sun.Y) * s.cfg.SunLerp

		for j := range s.suns {
			if i == j {
				continue
			}
			other := &s.suns[j]
			dx := other.X - sun.X
			dy := other.Y - sun.Y
			dist := math.Hypot(dx, dy)
			if dist >= thr || dist <= minRepelDist {
				continue
			}
			sun.Propelling = true
			sun.propelTimer = s.cfg.PropelFrames
			push := (thr - dist) / thr * repelForce
			sun.X -= dx / dist * push
			sun.Y -= dy / dist * push
			sun.RotationSpeed = math.Min(rotationMax, sun.RotationSpeed+rotationBoost*dt*0.0001)
		}

		if sun.propelTimer > 0 {
			sun.propelTimer--
			if sun.propelTimer == 0 {
				sun.Propelling = false
			}
		}
		if !sun.Propelling {
			sun.RotationSpeed = math.Max(rotationMin, sun.RotationSpeed*rotationDecay)
		}
		sun.RotationAngle += sun.RotationSpeed * dt

		pad := s.cfg.SunPadding
		sun.X = clamp(sun.X, pad, 1-pad)
		sun.Y = clamp(sun.Y, pad, 1-pad)
	}
}

// Position returns the current position of a sun.
func (s *SunSystem) Position(id string) (cosmos.Point, bool) {
	i, ok := s.byID[id]
	if !ok {
		return cosmos.Point{}, false
	}
	return cosmos.Point{X: s.suns[i].X, Y: s.suns[i].Y}, true
}

// Has reports whether id is a sun of the system.
func (s *SunSystem) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// States returns a copy of every sun state.
func (s *SunSystem) States() []SunState {
	out := make([]SunState, len(s.suns))
	copy(out, s.suns)
	return out
}

// IDs returns the sun ids in placement order.
func (s *SunSystem) IDs() []string {
	out := make([]string, len(s.suns))
	for i, st := range s.suns {
		out[i] = st.ID
	}
	return out
}

// Len returns the number of suns.
func (s *SunSystem) Len() int {
	return len(s.suns)
}

// sunsFrom returns the orbit galaxy's suns of u.
func sunsFrom(u *hierarchy.Universe) []cosmos.Object {
	if u == nil {
		return nil
	}
	return u.OrbitSuns()
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
