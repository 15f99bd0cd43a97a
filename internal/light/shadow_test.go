package light

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speed-of-light/internal/game"
)

// screenSpace is an identity transform: world coordinates are screen
// coordinates, which keeps shadow geometry assertions exact.
type screenSpace struct{}

func (screenSpace) WorldToScreen(wx, wy float64) (float64, float64) { return wx, wy }

func (screenSpace) WorldToScreenBatch(pts []game.Vec2, out []rl.Vector2) []rl.Vector2 {
	out = out[:0]
	for _, p := range pts {
		out = append(out, rl.NewVector2(float32(p.X), float32(p.Y)))
	}
	return out
}

func squareRightOfSun() *game.Asteroid {
	return &game.Asteroid{
		Verts: []game.Vec2{
			{X: 100, Y: -10}, {X: 100, Y: 10}, {X: 120, Y: 10}, {X: 120, Y: -10},
		},
	}
}

func dist(p rl.Vector2, sun game.Vec2) float64 {
	return math.Hypot(float64(p.X)-sun.X, float64(p.Y)-sun.Y)
}

func TestSquareAsteroidCastsAwayFromSun(t *testing.T) {
	sun := &game.Sun{ID: 1, Pos: game.Vec2{}, Radius: 50}
	engine := NewShadowEngine(screenSpace{})

	quads := engine.SunShadowQuads(sun, []*game.Asteroid{squareRightOfSun()}, PolicyFor(QualityUltra))

	// the sun-facing left edge casts nothing; top, right and bottom edges
	// all face away
	require.Len(t, quads, 3)

	for _, q := range quads {
		// near pair is never the left edge
		assert.False(t, q.Near1.X == 100 && q.Near2.X == 100,
			"sun-facing edge emitted a quad")

		// shadows extend in +x, away from the sun
		assert.Greater(t, q.Far1.X, q.Near1.X)
		assert.Greater(t, q.Far2.X, q.Near2.X)

		// far points sit exactly one shadow length beyond the near points
		assert.InDelta(t, dist(q.Near1, sun.Pos)+ShadowLength, dist(q.Far1, sun.Pos), 0.5)
		assert.InDelta(t, dist(q.Near2, sun.Pos)+ShadowLength, dist(q.Far2, sun.Pos), 0.5)
	}
}

func TestShadowQuadsMemoizedWithinFrame(t *testing.T) {
	sun := &game.Sun{ID: 7, Pos: game.Vec2{}, Radius: 50}
	asteroid := squareRightOfSun()
	engine := NewShadowEngine(screenSpace{})
	policy := PolicyFor(QualityUltra)

	first := engine.SunShadowQuads(sun, []*game.Asteroid{asteroid}, policy)
	require.NotEmpty(t, first)

	// mutating the obstacle mid-frame must not affect the memoized result
	asteroid.Pos = game.Vec2{X: 500, Y: 500}
	second := engine.SunShadowQuads(sun, []*game.Asteroid{asteroid}, policy)
	assert.Equal(t, first, second)

	// a new frame recomputes from current obstacle state
	engine.ClearFrameCache()
	third := engine.SunShadowQuads(sun, []*game.Asteroid{asteroid}, policy)
	require.NotEmpty(t, third)
	assert.NotEqual(t, first[0].Near1, third[0].Near1)
}

func TestShadowQuadsCachedPerSunID(t *testing.T) {
	engine := NewShadowEngine(screenSpace{})
	policy := PolicyFor(QualityUltra)
	obstacles := []*game.Asteroid{squareRightOfSun()}

	left := &game.Sun{ID: 1, Pos: game.Vec2{X: -200}, Radius: 50}
	right := &game.Sun{ID: 2, Pos: game.Vec2{X: 300}, Radius: 50}

	lq := engine.SunShadowQuads(left, obstacles, policy)
	rq := engine.SunShadowQuads(right, obstacles, policy)
	assert.NotEqual(t, lq, rq, "suns with distinct IDs share cache entries")
}

func TestLowTiersSkipShadowComputation(t *testing.T) {
	sun := &game.Sun{ID: 1, Radius: 50}
	obstacles := []*game.Asteroid{squareRightOfSun()}
	engine := NewShadowEngine(screenSpace{})

	assert.Empty(t, engine.SunShadowQuads(sun, obstacles, PolicyFor(QualityLow)))
	assert.Empty(t, engine.SunShadowQuads(sun, obstacles, PolicyFor(QualityMedium)))

	engine.ClearFrameCache()
	assert.NotEmpty(t, engine.SunShadowQuads(sun, obstacles, PolicyFor(QualityHigh)))
}

func TestVertexAtSunCenterDegeneratesSafely(t *testing.T) {
	sunPos := game.Vec2{X: 10, Y: 20}

	p := projectFromSun(sunPos, sunPos)
	assert.Equal(t, sunPos, p, "zero-distance vertex must project onto itself")

	// a polygon touching the sun center renders degenerate quads, never NaN
	sun := &game.Sun{ID: 1, Pos: sunPos, Radius: 50}
	asteroid := &game.Asteroid{Verts: []game.Vec2{
		{X: 10, Y: 20}, {X: 10, Y: 60}, {X: 60, Y: 60},
	}}
	engine := NewShadowEngine(screenSpace{})
	for _, q := range engine.SunShadowQuads(sun, []*game.Asteroid{asteroid}, PolicyFor(QualityUltra)) {
		for _, p := range []rl.Vector2{q.Near1, q.Near2, q.Far1, q.Far2} {
			assert.False(t, math.IsNaN(float64(p.X)) || math.IsNaN(float64(p.Y)))
		}
	}
}

func TestLadMidpointsStraddleSun(t *testing.T) {
	// a box directly above the sun, wide enough that its silhouette edges
	// land on both sides of the sun's x
	sun := &game.Sun{ID: 1, Pos: game.Vec2{}, Radius: 40, Kind: game.SunLightAndDark}
	box := &game.Asteroid{Verts: []game.Vec2{
		{X: -20, Y: -100}, {X: -20, Y: -80}, {X: 20, Y: -80}, {X: 20, Y: -100},
	}}

	engine := NewShadowEngine(screenSpace{})
	quads := engine.SunShadowQuads(sun, []*game.Asteroid{box}, PolicyFor(QualityUltra))
	require.Len(t, quads, 3)

	var dark, light int
	for _, q := range quads {
		if q.MidX < float32(sun.Pos.X) {
			dark++
		} else {
			light++
		}
	}
	assert.Equal(t, 1, dark, "left silhouette edge gets the dark-on-light treatment")
	assert.Equal(t, 2, light, "right and top edges get the light-on-dark treatment")
}
