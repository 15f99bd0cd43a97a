package light

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-of-light/internal/game"
)

// ShadowLength is how far occluding edges project away from a sun, in world
// units. Long enough to leave the playfield at any sane zoom.
const ShadowLength = 2000.0

// Transform is the world-to-screen contract the renderer consumes.
// *game.Camera satisfies it.
type Transform interface {
	WorldToScreen(wx, wy float64) (float64, float64)
	WorldToScreenBatch(pts []game.Vec2, out []rl.Vector2) []rl.Vector2
}

// ShadowQuad is the screen-space region occluded from one sun by one
// polygon edge: the edge's two projected endpoints ("near") and the same
// endpoints pushed away from the sun by ShadowLength ("far").
type ShadowQuad struct {
	Near1, Near2 rl.Vector2
	Far1, Far2   rl.Vector2

	// MidX is the projected edge midpoint's screen x. LaD suns test it
	// against the sun's screen x to pick the shadow treatment per quad.
	MidX float32
}

// ShadowEngine derives shadow quads per sun per frame and memoizes them by
// sun ID. Single-writer: one engine per renderer, one frame at a time.
type ShadowEngine struct {
	transform Transform

	frameQuads map[int][]ShadowQuad

	// scratch buffers reused across queries to keep the hot path
	// allocation-free once warm
	worldScratch  []game.Vec2
	screenScratch []rl.Vector2
}

func NewShadowEngine(transform Transform) *ShadowEngine {
	return &ShadowEngine{
		transform:  transform,
		frameQuads: make(map[int][]ShadowQuad),
	}
}

// ClearFrameCache drops every memoized quad list. The owning render loop
// must call it exactly once per frame, before the first shadow query;
// skipping it leaves stale geometry on screen for moved obstacles.
func (e *ShadowEngine) ClearFrameCache() {
	clear(e.frameQuads)
}

// SunShadowQuads returns the shadow quads cast from sun by the given
// obstacles, computing them at most once per sun per frame. Repeated
// queries within a frame return the memoized slice, unaffected by obstacle
// mutation after the first call. Below high quality the engine skips
// computation entirely and returns nil.
func (e *ShadowEngine) SunShadowQuads(sun *game.Sun, asteroids []*game.Asteroid, policy TierPolicy) []ShadowQuad {
	if !policy.ComputeShadows() {
		return nil
	}
	if quads, ok := e.frameQuads[sun.ID]; ok {
		return quads
	}
	quads := e.compute(sun, asteroids)
	e.frameQuads[sun.ID] = quads
	return quads
}

func (e *ShadowEngine) compute(sun *game.Sun, asteroids []*game.Asteroid) []ShadowQuad {
	quads := []ShadowQuad{}
	for _, a := range asteroids {
		e.worldScratch = a.WorldVerts(e.worldScratch)
		quads = e.appendPolygonQuads(quads, sun, e.worldScratch)
	}
	return quads
}

// appendPolygonQuads walks the vertex loop in winding order and emits one
// quad per back-facing edge: an edge casts iff the dot product of
// (sun - midpoint) with the edge normal is negative.
func (e *ShadowEngine) appendPolygonQuads(quads []ShadowQuad, sun *game.Sun, verts []game.Vec2) []ShadowQuad {
	n := len(verts)
	if n < 2 {
		return quads
	}
	for i := 0; i < n; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%n]

		mid := v1.Add(v2).Scale(0.5)
		normal := v2.Sub(v1).Perp()
		if sun.Pos.Sub(mid).Dot(normal) >= 0 {
			continue // edge faces the sun, cannot occlude
		}

		far1 := projectFromSun(sun.Pos, v1)
		far2 := projectFromSun(sun.Pos, v2)

		pts := [4]game.Vec2{v1, v2, far1, far2}
		e.screenScratch = e.transform.WorldToScreenBatch(pts[:], e.screenScratch)

		quads = append(quads, ShadowQuad{
			Near1: e.screenScratch[0],
			Near2: e.screenScratch[1],
			Far1:  e.screenScratch[2],
			Far2:  e.screenScratch[3],
			MidX:  (e.screenScratch[0].X + e.screenScratch[1].X) / 2,
		})
	}
	return quads
}

// projectFromSun pushes v directly away from the sun by ShadowLength.
// A vertex sitting exactly on the sun gets scale zero: a degenerate quad,
// not a division by zero.
func projectFromSun(sunPos, v game.Vec2) game.Vec2 {
	d := v.Sub(sunPos)
	dist := d.Len()
	if dist == 0 {
		return v
	}
	return v.Add(d.Scale(ShadowLength / dist))
}
