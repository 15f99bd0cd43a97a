package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"speed-of-light/internal/game"
	"speed-of-light/internal/light"
	"speed-of-light/internal/texpack"
	"speed-of-light/internal/utils"
)

// SceneJSON describes a scene file: a list of suns and obstacle polygons in
// world coordinates.
type SceneJSON struct {
	Suns      []SunJSON      `json:"suns"`
	Asteroids []AsteroidJSON `json:"asteroids"`
}

type SunJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Kind   string  `json:"kind"` // "normal" (default) or "lad"
}

type AsteroidJSON struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Verts [][2]float64 `json:"verts"`
	Spin  float64      `json:"spin"`
	DM    [2]float64   `json:"drift"`
}

// LoadScene reads a scene file into a fresh GameState.
func LoadScene(path string) (*game.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scene SceneJSON
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	state := &game.GameState{}
	for _, s := range scene.Suns {
		kind := game.SunNormal
		if s.Kind == "lad" {
			kind = game.SunLightAndDark
		}
		state.AddSun(game.Vec2{X: s.X, Y: s.Y}, s.Radius, kind)
	}
	for _, a := range scene.Asteroids {
		verts := make([]game.Vec2, len(a.Verts))
		for i, v := range a.Verts {
			verts[i] = game.Vec2{X: v[0], Y: v[1]}
		}
		state.Asteroids = append(state.Asteroids, &game.Asteroid{
			Pos:   game.Vec2{X: a.X, Y: a.Y},
			Verts: verts,
			Spin:  a.Spin,
			Drift: game.Vec2{X: a.DM[0], Y: a.DM[1]},
		})
	}

	utils.Info("Scene loaded: %d suns, %d asteroids", len(state.Suns), len(state.Asteroids))
	return state, nil
}

// DemoScene builds the built-in scene used when no scene file is given: two
// suns, one of them LaD, and a belt of tumbling asteroids between them.
func DemoScene() *game.GameState {
	state := &game.GameState{}

	state.AddSun(game.Vec2{X: -420, Y: -60}, 70, game.SunNormal)
	state.AddSun(game.Vec2{X: 520, Y: 140}, 46, game.SunLightAndDark)

	belt := []struct {
		x, y, spin float64
		verts      []game.Vec2
	}{
		{-80, -180, 0.35, []game.Vec2{{X: -38, Y: 18}, {X: 4, Y: 34}, {X: 40, Y: 12}, {X: 28, Y: -30}, {X: -34, Y: -20}}},
		{60, 40, -0.22, []game.Vec2{{X: -26, Y: 26}, {X: 26, Y: 26}, {X: 26, Y: -26}, {X: -26, Y: -26}}},
		{220, -120, 0.18, []game.Vec2{{X: -30, Y: 6}, {X: -8, Y: 32}, {X: 30, Y: 18}, {X: 22, Y: -16}, {X: -18, Y: -30}}},
		{-220, 160, -0.4, []game.Vec2{{X: -14, Y: 20}, {X: 24, Y: 16}, {X: 18, Y: -22}, {X: -20, Y: -14}}},
	}
	for _, b := range belt {
		state.Asteroids = append(state.Asteroids, &game.Asteroid{
			Pos:   game.Vec2{X: b.x, Y: b.y},
			Verts: b.verts,
			Spin:  b.spin,
			Drift: game.Vec2{X: b.spin * 8, Y: -b.spin * 5},
		})
	}
	return state
}

// warmCacheFromPack preloads baked sprites into the render cache so the
// generators never run for those keys.
func warmCacheFromPack(cache *light.RenderCache, path string) {
	entries, err := texpack.Load(path)
	if err != nil {
		utils.Warn("Texpack %s unusable, falling back to generated sprites: %v", path, err)
		return
	}
	for _, e := range entries {
		cache.Preload(e.Name, e.Width, e.Height, e.Pix)
	}
	utils.Info("Texpack: preloaded %d sprites from %s", len(entries), path)
}

// dumpTextures bakes the generator output for the common radius buckets into
// a pack file, the inverse of warmCacheFromPack.
func dumpTextures(path string) error {
	b := light.NewBuilder()

	var entries []texpack.Entry
	add := func(name string, size int, pix []color.RGBA) {
		entries = append(entries, texpack.Entry{Name: name, Width: size, Height: size, Pix: pix})
	}

	for _, bucket := range []int{32, 48, 64, 96, 128} {
		key := light.GradientKey("sun-sprite", bucket)
		add(key, bucket*2, b.PlasmaPixels(bucket*2, 0))
	}
	add(light.GradientKey("bloom", 64), 256, light.FourStopGlowPixels(256, game.DefaultScheme().GlowStops))
	add("ember-glow", 48, light.EmberGlowPixels(48))
	add("ember-core", 24, light.EmberCorePixels(24))

	if err := texpack.Write(path, entries); err != nil {
		return err
	}
	utils.Info("Baked %d sprites to %s", len(entries), path)
	return nil
}
