// Package debug draws the in-game diagnostic overlay: frame stats plus the
// renderer's normally invisible working geometry (cull radii, shadow quad
// wireframes).
package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-of-light/internal/game"
	"speed-of-light/internal/light"
)

const fontHeight = 18

type Overlay struct {
	visible bool
}

func (d *Overlay) Toggle() { d.visible = !d.visible }

func (d *Overlay) Visible() bool { return d.visible }

// Draw renders the overlay on top of the finished frame. Shadow quads come
// from the renderer's frame cache, so drawing them costs no recomputation.
func (d *Overlay) Draw(state *game.GameState, camera *game.Camera, renderer *light.SunRenderer, quality light.Quality) {
	if !d.visible {
		return
	}

	for _, sun := range state.Suns {
		sx, sy := camera.WorldToScreen(sun.Pos.X, sun.Pos.Y)
		rx, _ := camera.WorldToScreen(sun.Pos.X+sun.Radius, sun.Pos.Y)
		radius := float32(rx - sx)

		rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Yellow)
		rl.DrawRectangle(int32(sx)-2, int32(sy)-2, 4, 4, rl.Red)

		for _, q := range renderer.GetSunShadowQuadsCached(sun, state.Asteroids) {
			col := rl.NewColor(0, 255, 0, 160)
			rl.DrawLineV(q.Near1, q.Near2, col)
			rl.DrawLineV(q.Near2, q.Far2, col)
			rl.DrawLineV(q.Far2, q.Far1, col)
			rl.DrawLineV(q.Far1, q.Near1, col)
		}
	}

	rl.DrawFPS(10, 10)
	stats := fmt.Sprintf("tier=%s suns=%d asteroids=%d zoom=%.2f",
		quality, len(state.Suns), len(state.Asteroids), camera.Zoom)
	rl.DrawText(stats, 10, 10+fontHeight+4, fontHeight, rl.RayWhite)
}
