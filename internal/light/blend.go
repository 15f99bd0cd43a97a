package light

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raw GL blend factors for rl.SetBlendFactors; raylib forwards them to
// glBlendFunc untouched.
const (
	glZero             = 0
	glOne              = 1
	glOneMinusSrcColor = 0x0301
	glOneMinusSrcAlpha = 0x0303
	glFuncAdd          = 0x8006
)

// beginScreenBlend starts the canvas "screen" operator: brightens without
// ever clipping below the destination. Used by the bloom passes.
func beginScreenBlend() {
	rl.SetBlendFactors(glOne, glOneMinusSrcColor, glFuncAdd)
	rl.BeginBlendMode(rl.BlendCustom)
}

// beginEraseBlend starts the canvas "destination-out" operator: source
// alpha punches holes in what is already drawn. Used by shadow cutouts
// against the ambient/bloom passes.
func beginEraseBlend() {
	rl.SetBlendFactors(glZero, glOneMinusSrcAlpha, glFuncAdd)
	rl.BeginBlendMode(rl.BlendCustom)
}

func endBlend() {
	rl.EndBlendMode()
}
