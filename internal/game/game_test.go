package game

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(1280, 720)
	c.X, c.Y, c.Zoom = 100, -50, 1.5

	sx, sy := c.WorldToScreen(260, 14)
	wx, wy := c.ScreenToWorld(sx, sy)
	assert.InDelta(t, 260, wx, 1e-9)
	assert.InDelta(t, 14, wy, 1e-9)
}

func TestCameraCenterMapsToViewportCenter(t *testing.T) {
	c := NewCamera(800, 600)
	c.X, c.Y = 33, 77

	sx, sy := c.WorldToScreen(33, 77)
	assert.Equal(t, 400.0, sx)
	assert.Equal(t, 300.0, sy)
}

func TestWorldToScreenBatchReusesBuffer(t *testing.T) {
	c := NewCamera(640, 480)
	pts := []Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}

	out := make([]rl.Vector2, 0, 8)
	got := c.WorldToScreenBatch(pts, out)
	require.Len(t, got, 3)
	assert.Same(t, &out[:1][0], &got[0], "batch transform must reuse the caller's buffer")

	// shrinking input reuses the same backing array
	got2 := c.WorldToScreenBatch(pts[:2], got)
	assert.Same(t, &got[0], &got2[0])
}

func TestCameraPanRespectsZoom(t *testing.T) {
	c := NewCamera(640, 480)
	c.Zoom = 2

	c.Pan(100, -50)
	assert.Equal(t, 50.0, c.X)
	assert.Equal(t, -25.0, c.Y)

	c.Zoom = 0 // degenerate zoom must not divide by zero
	c.Pan(10, 10)
	assert.Equal(t, 50.0, c.X)
}

func TestVec2Helpers(t *testing.T) {
	assert.Equal(t, Vec2{X: 3, Y: 4}, Vec2{X: 1, Y: 1}.Add(Vec2{X: 2, Y: 3}))
	assert.Equal(t, 5.0, Vec2{X: 3, Y: 4}.Len())
	assert.Equal(t, Vec2{}, Vec2{}.Normalize(), "zero vector normalizes to zero")

	// Perp of +x points down the screen (positive y): the outward normal
	// of a counterclockwise loop's bottom edge
	assert.Equal(t, Vec2{X: 0, Y: 1}, Vec2{X: 1, Y: 0}.Perp())
}

func TestWorldVertsReusesSlice(t *testing.T) {
	a := &Asteroid{
		Pos:   Vec2{X: 10, Y: 20},
		Verts: []Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
	}

	buf := make([]Vec2, 0, 8)
	out := a.WorldVerts(buf)
	require.Len(t, out, 3)
	assert.Equal(t, Vec2{X: 9, Y: 19}, out[0])
	assert.Same(t, &buf[:1][0], &out[0])
}

func TestAddSunAssignsStableIDs(t *testing.T) {
	s := &GameState{}
	a := s.AddSun(Vec2{}, 50, SunNormal)
	b := s.AddSun(Vec2{X: 100}, 30, SunLightAndDark)

	assert.Equal(t, 0, a.ID)
	assert.Equal(t, 1, b.ID)
	assert.Len(t, s.Suns, 2)
}

func TestUpdateAdvancesTimeAndDrift(t *testing.T) {
	s := &GameState{}
	ast := &Asteroid{Pos: Vec2{X: 1}, Drift: Vec2{X: 10, Y: -4}}
	s.Asteroids = append(s.Asteroids, ast)

	s.Update(0.5)
	assert.Equal(t, 0.5, s.Time)
	assert.Equal(t, Vec2{X: 6, Y: -2}, ast.Pos)
}
