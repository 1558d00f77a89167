package orbit

import "math"

// Satellite circles its body. Even-indexed satellites turn clockwise.
type Satellite struct {
	Angle        float64
	Distance     float64
	Speed        float64
	Eccentricity float64
	Size         float64
	X, Y         float64
}

// satelliteSign returns the direction for the satellite at index i.
func satelliteSign(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// AdvanceSatellites moves every satellite of b one frame. Satellites keep
// turning while the body itself is paused.
func AdvanceSatellites(b *Body, mode Mode) {
	scale := b.Pulse.Scale
	if scale == 0 {
		scale = 1
	}
	for i := range b.Satellites {
		s := &b.Satellites[i]
		s.Angle += s.Speed * mode.FixedDelta() * satelliteSign(i)
		a := s.Distance * scale
		minor := s.Distance * (1 - s.Eccentricity) * scale
		s.X = b.X + a*math.Cos(s.Angle)
		s.Y = b.Y + minor*math.Sin(s.Angle)
	}
}

// Pulsation breathes a body's display scale.
type Pulsation struct {
	Enabled bool
	Hovered bool
	Rest    Envelope
	Hover   Envelope
	Scale   float64
}

// Envelope returns the envelope currently in effect.
func (p *Pulsation) Envelope() Envelope {
	if p.Hovered {
		return p.Hover
	}
	return p.Rest
}

// Update sets Scale for frameTime (milliseconds).
func (p *Pulsation) Update(frameTime float64) {
	if !p.Enabled {
		p.Scale = 1
		return
	}
	env := p.Envelope()
	mid := (env.Min + env.Max) / 2
	p.Scale = mid + math.Sin(frameTime*env.Speed)*(env.Max-env.Min)/2
}
