package orbit

import (
	"math"
	"math/rand"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/hierarchy"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/transform"
)

const defaultMass = 100

// Engine owns the orbiting bodies and the sun system of one view. All
// randomness happens in Init; Update is deterministic.
type Engine struct {
	cfg    Config
	logger *logging.Logger

	lookup hierarchy.Lookup
	bodies []*Body
	byID   map[string]*Body
	suns   *SunSystem

	lastFrame float64
	hasFrame  bool
}

// NewEngine creates an empty engine. Call Init before Update.
func NewEngine(cfg Config, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = 1
	}
	if cfg.SpeedScale <= 0 {
		cfg.SpeedScale = 1
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
		byID:   make(map[string]*Body),
		suns:   NewSunSystem(cfg, nil, nil, rand.New(rand.NewSource(cfg.Seed))),
	}
}

// Config returns the engine's tunables.
func (e *Engine) Config() Config {
	return e.cfg
}

// Init builds one body per project of u around the orbit galaxy's suns,
// replacing any previous bodies.
func (e *Engine) Init(u *hierarchy.Universe, width, height float64) {
	rng := rand.New(rand.NewSource(e.cfg.Seed))
	e.lookup = u.Tree
	e.bodies = nil
	e.byID = make(map[string]*Body, len(u.Projects))
	e.hasFrame = false

	orbitSuns := sunsFrom(u)
	sunIDs := make(map[string]bool, len(orbitSuns))
	for _, s := range orbitSuns {
		sunIDs[s.ID] = true
	}

	n := len(u.Projects)
	for i, p := range u.Projects {
		b := e.newBody(i, n, p, width, height, rng)
		b.ParentID = assignSun(u, p, i, orbitSuns, sunIDs)
		e.bodies = append(e.bodies, b)
		e.byID[b.ID] = b
	}

	promoteComets(e.bodies, e.cfg, rng)

	mass := make(map[string]float64, len(orbitSuns))
	for _, b := range e.bodies {
		mass[b.ParentID] += projectMass(b.Project)
	}
	e.suns = NewSunSystem(e.cfg, orbitSuns, mass, rng)

	cam := cosmos.NewCamera()
	for _, b := range e.bodies {
		b.Center = cosmos.Point{X: width / 2, Y: height / 2}
		if c, ok := e.parentScreen(b.ParentID, cam, width, height); ok {
			b.Center = c
		}
		a, minor := b.Semiaxes()
		b.X, b.Y = Position(b.Center, a, minor, b.Angle, b.Tilt, e.cfg.Mode)
	}

	e.logger.Info("initialized %d bodies around %d suns (%s mode)", len(e.bodies), e.suns.Len(), e.cfg.Mode)
}

func (e *Engine) newBody(i, n int, p hierarchy.Project, width, height float64, rng *rand.Rand) *Body {
	cfg := e.cfg
	speed := p.Speed
	if speed == 0 {
		speed = 0.0005 + 0.0002*float64(i%3)
	}

	b := &Body{
		ID:          p.ID,
		Project:     p,
		Angle:       float64(i) * 2 * math.Pi / float64(n),
		OrbitRadius: math.Min(width, height)*cfg.RadiusFactor + float64(i)*cfg.RadiusStep*cfg.PixelScale,
		OrbitSpeed:  speed * cfg.SpeedScale,
		Path:        pathCycle[i%len(pathCycle)],
		Direction:   Clockwise,
		Pulse: Pulsation{
			Enabled: cfg.Mode == ModeFull,
			Rest:    cfg.RestPulse,
			Hover:   cfg.HoverPulse,
			Scale:   1,
		},
	}
	if i%2 == 1 {
		b.Direction = CounterClockwise
	}

	switch b.Path {
	case PathComet:
		b.Eccentricity = between(rng, 0.5, 0.8)
		b.VerticalFactor = 1.8
	case PathPlanet:
		b.Eccentricity = between(rng, 0.1, 0.25)
		b.VerticalFactor = 1.2
	default:
		b.Eccentricity = between(rng, 0.05, 0.15)
		b.VerticalFactor = 1
	}
	b.Tilt = rng.Float64() * 30

	if cfg.Mode == ModeFull {
		count := 3 + int(math.Floor(projectMass(p)/40))
		b.Satellites = make([]Satellite, count)
		for k := range b.Satellites {
			b.Satellites[k] = Satellite{
				Angle:        float64(k)/float64(count)*2*math.Pi + rng.Float64()*0.5,
				Distance:     (cfg.SatelliteDistanceMin + rng.Float64()*cfg.SatelliteDistanceSpread) * cfg.PixelScale,
				Speed:        between(rng, 0.005, 0.015) * cfg.SpeedScale,
				Eccentricity: between(rng, 0.1, 0.3),
				Size:         between(rng, 0.8, 2.0),
			}
		}
	}
	return b
}

// assignSun picks the sun a project orbits: its focus area's sun when that
// sun belongs to the orbit galaxy, otherwise round-robin by index.
func assignSun(u *hierarchy.Universe, p hierarchy.Project, i int, suns []cosmos.Object, inGalaxy map[string]bool) string {
	if len(suns) == 0 {
		return ""
	}
	if p.FocusArea != "" {
		if id, ok := u.SunForFocusArea(p.FocusArea); ok {
			if inGalaxy[id] {
				return id
			}
			return suns[0].ID
		}
	}
	return suns[i%len(suns)].ID
}

// promoteComets turns the heaviest body around each sun into a slow comet.
func promoteComets(bodies []*Body, cfg Config, rng *rand.Rand) {
	heaviest := make(map[string]*Body)
	var order []string
	for _, b := range bodies {
		cur, ok := heaviest[b.ParentID]
		if !ok {
			order = append(order, b.ParentID)
			heaviest[b.ParentID] = b
			continue
		}
		if cometWeight(b) > cometWeight(cur) {
			heaviest[b.ParentID] = b
		}
	}
	for _, sun := range order {
		b := heaviest[sun]
		b.Path = PathComet
		b.Eccentricity = between(rng, 0.5, 0.8)
		b.OrbitSpeed = between(rng, 0.00008, 0.00012) * cfg.SpeedScale
		b.VerticalFactor = between(rng, 1.8, 2.4)
	}
}

func cometWeight(b *Body) float64 {
	if b.Project.Mass > 0 {
		return b.Project.Mass
	}
	return b.OrbitRadius
}

func projectMass(p hierarchy.Project) float64 {
	if p.Mass > 0 {
		return p.Mass
	}
	return defaultMass
}

// Update advances suns, bodies, satellites and pulsation for one frame.
// frameTime is in milliseconds.
func (e *Engine) Update(frameTime float64, cam cosmos.Camera, width, height float64) {
	dt := 0.0
	if e.hasFrame {
		dt = frameTime - e.lastFrame
	}
	e.lastFrame, e.hasFrame = frameTime, true

	e.suns.Update(dt)

	for _, b := range e.bodies {
		if c, ok := e.parentScreen(b.ParentID, cam, width, height); ok {
			b.Center = c
		}
		Advance(b, e.cfg.Mode)
		if e.cfg.Mode == ModeFull {
			b.Pulse.Update(frameTime)
		}
		AdvanceSatellites(b, e.cfg.Mode)
	}
}

// parentScreen returns the screen position of a body's parent: the live
// sun state when there is one, else the static hierarchy position.
func (e *Engine) parentScreen(id string, cam cosmos.Camera, width, height float64) (cosmos.Point, bool) {
	if id == "" {
		return cosmos.Point{}, false
	}
	pos, ok := e.suns.Position(id)
	if !ok {
		if e.lookup == nil {
			return cosmos.Point{}, false
		}
		o, found := e.lookup.ObjectByID(id)
		if !found {
			return cosmos.Point{}, false
		}
		pos = o.Position
	}
	x, y := transform.WorldToScreen(pos.X, pos.Y, cam, width, height)
	return cosmos.Point{X: x, Y: y}, true
}

// Bodies returns the live bodies. Callers on the frame loop may mutate
// hover state through Body methods.
func (e *Engine) Bodies() []*Body {
	return e.bodies
}

// Body returns the body with the given id.
func (e *Engine) Body(id string) (*Body, bool) {
	b, ok := e.byID[id]
	return b, ok
}

// Suns returns the sun system.
func (e *Engine) Suns() *SunSystem {
	return e.suns
}

// Reset drops all bodies and suns.
func (e *Engine) Reset() {
	e.bodies = nil
	e.byID = make(map[string]*Body)
	e.suns = NewSunSystem(e.cfg, nil, nil, rand.New(rand.NewSource(e.cfg.Seed)))
	e.lookup = nil
	e.hasFrame = false
}
