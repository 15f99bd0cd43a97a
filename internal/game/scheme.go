package game

import "image/color"

// ColorScheme supplies the non-ultra sun's four-stop glow gradient plus the
// LaD split-field colors. Stops run from the sun core outward; the last
// stop's alpha should be zero so the glow fades into the scene.
type ColorScheme struct {
	GlowStops [4]color.RGBA
	LadLight  color.RGBA
	LadDark   color.RGBA
}

// DefaultScheme is the warm stellar palette used when the host supplies none.
func DefaultScheme() ColorScheme {
	return ColorScheme{
		GlowStops: [4]color.RGBA{
			{R: 255, G: 252, B: 240, A: 255},
			{R: 255, G: 214, B: 130, A: 210},
			{R: 255, G: 150, B: 54, A: 96},
			{R: 255, G: 120, B: 30, A: 0},
		},
		LadLight: color.RGBA{R: 250, G: 248, B: 240, A: 255},
		LadDark:  color.RGBA{R: 12, G: 10, B: 18, A: 255},
	}
}
