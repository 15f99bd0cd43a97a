package game

import "math"

// SunKind selects the sun rendering variant.
type SunKind int

const (
	// SunNormal is a point light with radial falloff.
	SunNormal SunKind = iota
	// SunLightAndDark is the "LaD" variant: a hard vertical split field,
	// one half pure light, one half pure dark.
	SunLightAndDark
)

// Sun is a light source owned by the simulation. The renderer never creates
// or destroys suns, it only reads them once per frame. ID is stable across
// frames and is what render caches key on, so a simulation that rebuilds its
// sun slice every tick must carry IDs over.
type Sun struct {
	ID     int
	Pos    Vec2
	Radius float64
	Kind   SunKind
}

// Asteroid is an occluding obstacle: a world position plus an ordered,
// closed vertex loop relative to that position. Vertices are wound
// counterclockwise in screen coordinates (y down); the winding defines
// which side of each edge is "outward".
type Asteroid struct {
	Pos   Vec2
	Verts []Vec2

	// Spin and Drift animate the demo simulation; zero values are fine.
	Spin  float64
	Drift Vec2
}

// WorldVerts appends the loop's world-space vertices to out and returns it.
// Callers reuse the slice across frames to avoid per-frame allocation.
func (a *Asteroid) WorldVerts(out []Vec2) []Vec2 {
	out = out[:0]
	for _, v := range a.Verts {
		out = append(out, v.Add(a.Pos))
	}
	return out
}

// GameState is the read surface the renderer consumes: suns, obstacles and
// elapsed game time. Time drives every stateless animation (plasma rotation,
// embers, dust), so rendering is deterministic given (state, quality).
type GameState struct {
	Suns      []*Sun
	Asteroids []*Asteroid
	Time      float64

	nextSunID int
}

// AddSun registers a sun and assigns it a stable ID.
func (s *GameState) AddSun(pos Vec2, radius float64, kind SunKind) *Sun {
	sun := &Sun{ID: s.nextSunID, Pos: pos, Radius: radius, Kind: kind}
	s.nextSunID++
	s.Suns = append(s.Suns, sun)
	return sun
}

// Update advances game time and the minimal demo simulation: asteroids
// drift and spin about their own centers.
func (s *GameState) Update(dt float64) {
	s.Time += dt

	for _, a := range s.Asteroids {
		a.Pos = a.Pos.Add(a.Drift.Scale(dt))
		if a.Spin != 0 {
			rad := a.Spin * dt
			sin, cos := math.Sincos(rad)
			for i, v := range a.Verts {
				a.Verts[i] = Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
			}
		}
	}
}
