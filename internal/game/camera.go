package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is the world-to-screen transform for a viewport. The renderer only
// consumes WorldToScreen and its batch variant.
type Camera struct {
	X, Y   float64 // world position at the viewport center
	Zoom   float64 // screen pixels per world unit
	Width  float64 // viewport width in pixels
	Height float64 // viewport height in pixels
}

func NewCamera(width, height float64) *Camera {
	return &Camera{Zoom: 1.0, Width: width, Height: height}
}

// WorldToScreen converts a single world point to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := (wy-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld inverts WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (sy-c.Height/2)/c.Zoom + c.Y
	return wx, wy
}

// WorldToScreenBatch transforms pts into out, reusing the caller-owned
// slice. The returned slice aliases out's backing array when capacity
// allows, so hot paths transform whole polygons without allocating.
func (c *Camera) WorldToScreenBatch(pts []Vec2, out []rl.Vector2) []rl.Vector2 {
	out = out[:0]
	for _, p := range pts {
		sx, sy := c.WorldToScreen(p.X, p.Y)
		out = append(out, rl.NewVector2(float32(sx), float32(sy)))
	}
	return out
}

// Pan moves the camera in screen-space pixels, converted to world units.
func (c *Camera) Pan(dx, dy float64) {
	if c.Zoom == 0 {
		return
	}
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}
