package light

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlareRenderer is the narrow interface through which the compositing
// pipeline invokes its sibling lens-flare renderer: screen position, screen
// radius and viewport dimensions, nothing else.
type FlareRenderer interface {
	DrawLensFlare(x, y, radius float32, viewportW, viewportH int32)
}

// LensFlare is the default sibling implementation: ghost spots strung along
// the axis from the sun through the screen center, plus a horizontal
// streak. Ghost spacing and sizes jitter deterministically per ghost index.
type LensFlare struct {
	Ghosts int
}

func NewLensFlare() *LensFlare {
	return &LensFlare{Ghosts: 6}
}

func (f *LensFlare) DrawLensFlare(x, y, radius float32, viewportW, viewportH int32) {
	cx := float32(viewportW) / 2
	cy := float32(viewportH) / 2
	axisX := cx - x
	axisY := cy - y

	rl.BeginBlendMode(rl.BlendAdditive)

	// horizontal anamorphic streak through the sun
	streakW := radius * 6
	streakH := radius * 0.22
	rl.DrawEllipse(int32(x), int32(y), streakW, streakH, rl.NewColor(255, 230, 190, 26))
	rl.DrawEllipse(int32(x), int32(y), streakW*0.55, streakH*0.6, rl.NewColor(255, 240, 210, 36))

	for i := 0; i < f.Ghosts; i++ {
		// ghosts march past the center onto the far half of the axis
		t := float32(0.3 + 1.5*hash01(seedFlare, i*3+0))
		gx := x + axisX*t
		gy := y + axisY*t

		if gx < 0 || gx > float32(viewportW) || gy < 0 || gy > float32(viewportH) {
			continue
		}

		gr := radius * float32(0.08+0.22*hash01(seedFlare, i*3+1))
		hue := hash01(seedFlare, i*3+2)
		col := rl.NewColor(
			uint8(160+60*hue),
			uint8(200-40*hue),
			uint8(180+40*math.Abs(hue-0.5)*2),
			22,
		)
		rl.DrawCircleV(rl.NewVector2(gx, gy), gr, col)
		rl.DrawCircleLines(int32(gx), int32(gy), gr*1.18, rl.NewColor(col.R, col.G, col.B, 12))
	}

	rl.EndBlendMode()
}
