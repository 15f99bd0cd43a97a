package main

import (
	"flag"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-of-light/internal/debug"
	"speed-of-light/internal/game"
	"speed-of-light/internal/light"
	"speed-of-light/internal/utils"
)

const edgeScrollMargin = 24 // pixels from the screen border that trigger panning

func main() {
	scenePath := flag.String("scene", "", "Path to a scene JSON file (empty: built-in demo scene)")
	qualityFlag := flag.String("quality", "ultra", "Rendering tier: low, medium, high, ultra")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	packPath := flag.String("texpack", "", "Path to a baked sprite pack to preload")
	dumpPath := flag.String("dump-textures", "", "Bake generated sprites to the given pack file and exit")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	if *debugFlag {
		utils.CurrentLevel = utils.LevelDebug
	} else {
		utils.CurrentLevel = utils.LevelInfo
	}

	if *dumpPath != "" {
		if err := dumpTextures(*dumpPath); err != nil {
			utils.Error("Failed to bake sprite pack: %v", err)
			os.Exit(1)
		}
		return
	}

	quality, err := light.ParseQuality(*qualityFlag)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}

	var state *game.GameState
	if *scenePath != "" {
		state, err = LoadScene(*scenePath)
		if err != nil {
			utils.Error("Failed to load scene: %v", err)
			os.Exit(1)
		}
	} else {
		state = DemoScene()
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.InitWindow(int32(*width), int32(*height), "Speed of Light")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	if err := utils.InitX11(); err != nil {
		utils.Warn("X11 unavailable, edge scrolling limited to window-local mouse: %v", err)
	}

	camera := game.NewCamera(float64(*width), float64(*height))

	cache := light.NewRenderCache()
	if *packPath != "" {
		warmCacheFromPack(cache, *packPath)
	}

	renderer, err := light.NewSunRenderer(cache, camera, game.DefaultScheme(), int32(*width), int32(*height))
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	defer renderer.Unload()
	defer cache.Unload()

	utils.Info("Starting render loop at %s quality", quality)
	run(state, camera, renderer, quality, *debugFlag)
}

func run(state *game.GameState, camera *game.Camera, renderer *light.SunRenderer, quality light.Quality, showOverlay bool) {
	const panSpeed = 420.0 // screen pixels per second

	overlay := &debug.Overlay{}
	if showOverlay {
		overlay.Toggle()
	}

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		state.Update(dt)

		quality = pickQuality(quality)
		if rl.IsKeyPressed(rl.KeyF8) {
			overlay.Toggle()
		}
		panCamera(camera, dt*panSpeed)
		camera.Zoom *= 1 + 0.1*float64(rl.GetMouseWheelMove())
		if camera.Zoom < 0.2 {
			camera.Zoom = 0.2
		}

		// offscreen sun passes happen before the frame opens
		renderer.Begin(quality, state.Time)
		for _, sun := range state.Suns {
			renderer.DrawSun(sun, state.Asteroids)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(6, 8, 14, 255))

		drawAsteroids(state, camera)
		renderer.Composite()
		renderer.DrawUltraSunParticleLayers(state.Suns)
		for _, sun := range state.Suns {
			renderer.DrawLensFlare(sun)
		}

		overlay.Draw(state, camera, renderer, quality)
		rl.EndDrawing()
	}
}

// pickQuality maps the 1-4 keys to tiers.
func pickQuality(current light.Quality) light.Quality {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		return light.QualityLow
	case rl.IsKeyPressed(rl.KeyTwo):
		return light.QualityMedium
	case rl.IsKeyPressed(rl.KeyThree):
		return light.QualityHigh
	case rl.IsKeyPressed(rl.KeyFour):
		return light.QualityUltra
	}
	return current
}

// panCamera combines arrow keys with screen-edge scrolling. The edge scroll
// uses the global pointer so it works even when the window loses focus.
func panCamera(camera *game.Camera, step float64) {
	dx, dy := utils.GlobalEdgeScroll(int(camera.Width), int(camera.Height), edgeScrollMargin)
	if rl.IsKeyDown(rl.KeyLeft) {
		dx = -1
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx = 1
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy = -1
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy = 1
	}
	if dx != 0 || dy != 0 {
		camera.Pan(float64(dx)*step, float64(dy)*step)
	}
}

func drawAsteroids(state *game.GameState, camera *game.Camera) {
	var world []game.Vec2
	var screen []rl.Vector2

	fill := rl.NewColor(52, 48, 46, 255)
	rim := rl.NewColor(84, 78, 72, 255)

	for _, a := range state.Asteroids {
		world = a.WorldVerts(world)
		screen = camera.WorldToScreenBatch(world, screen)
		if len(screen) < 3 {
			continue
		}
		// raylib culls backfacing triangles; feed the fan counterclockwise
		if signedArea(screen) > 0 {
			for i, j := 0, len(screen)-1; i < j; i, j = i+1, j-1 {
				screen[i], screen[j] = screen[j], screen[i]
			}
		}
		rl.DrawTriangleFan(screen, fill)
		for i := range screen {
			rl.DrawLineV(screen[i], screen[(i+1)%len(screen)], rim)
		}
	}
}

// signedArea is the shoelace sum; positive means clockwise in y-down screen
// coordinates.
func signedArea(pts []rl.Vector2) float32 {
	var sum float32
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum
}
