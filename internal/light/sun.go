package light

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-of-light/internal/game"
)

// Sizing of the glow passes relative to the sun's screen radius.
const (
	ambientScale   = 6.0  // ambient falloff disc
	bloomScale     = 2.6  // high-tier bloom disc
	shaftScale     = 4.0  // volumetric shaft reach
	cullScale      = 10.0 // bounding radius for viewport culling
	flareEnvelope  = 4.0  // flare skipped beyond this many radii off screen
	plasmaSpinRate = 0.11 // rad/s, layers counter-rotate
	shaftSpinRate  = 0.035
)

// ultraBloomRings are the concentric bloom radii of the ultra tier,
// as multiples of the sun's screen radius.
var ultraBloomRings = [4]float64{1.5, 2.2, 3.0, 3.8}

// SunRenderer is the per-frame compositing pipeline. It owns two offscreen
// surfaces: a per-sun pass buffer that each sun's ambient/bloom/shaft/cutout
// stack renders into, and the shared lighting layer that finished sun passes
// composite into additively. The caller composites the lighting layer onto
// the main scene once per frame via Composite.
//
// Single-threaded: one renderer instance must only be driven from one
// render loop.
type SunRenderer struct {
	cache     *RenderCache
	shadows   *ShadowEngine
	transform Transform
	scheme    game.ColorScheme
	flare     FlareRenderer
	particles *ParticleLayer

	vw, vh int32

	sunPass    rl.RenderTexture2D
	lightLayer rl.RenderTexture2D

	policy TierPolicy
	time   float64
}

// NewSunRenderer acquires the offscreen surfaces and wires the caches.
// Surface acquisition is the one hard failure: without it the renderer
// cannot operate, so the error is returned for the caller to die on.
func NewSunRenderer(cache *RenderCache, transform Transform, scheme game.ColorScheme, vw, vh int32) (*SunRenderer, error) {
	sunPass := rl.LoadRenderTexture(vw, vh)
	lightLayer := rl.LoadRenderTexture(vw, vh)
	if sunPass.ID == 0 || lightLayer.ID == 0 {
		return nil, fmt.Errorf("sun renderer: failed to acquire %dx%d render surfaces", vw, vh)
	}
	rl.SetTextureFilter(sunPass.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(lightLayer.Texture, rl.FilterBilinear)

	return &SunRenderer{
		cache:      cache,
		shadows:    NewShadowEngine(transform),
		transform:  transform,
		scheme:     scheme,
		flare:      NewLensFlare(),
		particles:  NewParticleLayer(cache),
		vw:         vw,
		vh:         vh,
		sunPass:    sunPass,
		lightLayer: lightLayer,
	}, nil
}

// SetFlareRenderer swaps the sibling lens-flare delegate.
func (r *SunRenderer) SetFlareRenderer(f FlareRenderer) { r.flare = f }

// Begin opens a frame: derives the tier policy, resets the shadow frame
// cache and clears the lighting layer. Call exactly once per frame before
// any DrawSun.
func (r *SunRenderer) Begin(q Quality, time float64) {
	r.policy = PolicyFor(q)
	r.time = time
	r.shadows.ClearFrameCache()

	rl.BeginTextureMode(r.lightLayer)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// ClearFrameCache resets the per-sun shadow quad cache. Begin already does
// this; the method exists for hosts that drive shadow queries outside the
// renderer's own frame sequence.
func (r *SunRenderer) ClearFrameCache() { r.shadows.ClearFrameCache() }

// GetSunShadowQuadsCached exposes the frame-cached shadow geometry.
func (r *SunRenderer) GetSunShadowQuadsCached(sun *game.Sun, asteroids []*game.Asteroid) []ShadowQuad {
	return r.shadows.SunShadowQuads(sun, asteroids, r.policy)
}

// sunScreen projects the sun's center and radius to screen space. The
// radius is measured by projecting a point on the rim so any uniform-scale
// transform works.
func (r *SunRenderer) sunScreen(sun *game.Sun) (sx, sy, radius float64) {
	sx, sy = r.transform.WorldToScreen(sun.Pos.X, sun.Pos.Y)
	rx, _ := r.transform.WorldToScreen(sun.Pos.X+sun.Radius, sun.Pos.Y)
	return sx, sy, math.Abs(rx - sx)
}

// DrawSun renders one sun's full pass stack and composites it into the
// lighting layer. Must not be called while another render-texture mode is
// open. Draw order (ultra): ambient, plasma body, bloom, volumetric shafts,
// shadow cutouts, then the additive composite.
func (r *SunRenderer) DrawSun(sun *game.Sun, asteroids []*game.Asteroid) {
	sx, sy, radius := r.sunScreen(sun)

	// cull before any expensive pass; generous margin since the ambient
	// disc reaches far beyond the body
	margin := radius * cullScale
	if sx+margin < 0 || sx-margin > float64(r.vw) || sy+margin < 0 || sy-margin > float64(r.vh) {
		return
	}

	quads := r.shadows.SunShadowQuads(sun, asteroids, r.policy)

	rl.BeginTextureMode(r.sunPass)
	rl.ClearBackground(rl.Blank)

	if sun.Kind == game.SunLightAndDark {
		r.drawLadField(sx)
		r.drawLadShadows(quads, float32(sx))
	} else {
		if r.policy.Ambient() {
			r.drawAmbient(sx, sy, radius)
		}
		r.drawBody(sx, sy, radius)
		if r.policy.Bloom() {
			r.drawBloom(sx, sy, radius)
		}
		if r.policy.Volumetrics() {
			r.DrawSunRays(sun)
		}
		// the cutouts come last so they carve ambient, bloom and
		// shafts alike
		r.drawShadowCutouts(quads)
	}

	rl.EndTextureMode()

	// composite the finished sun pass into the shared lighting layer
	rl.BeginTextureMode(r.lightLayer)
	rl.BeginBlendMode(rl.BlendAdditive)
	r.drawFullscreen(r.sunPass.Texture, rl.White)
	rl.EndBlendMode()
	rl.EndTextureMode()
}

// Composite draws the finished lighting layer onto the current target.
// The owning loop calls it once per frame, after every DrawSun.
func (r *SunRenderer) Composite() {
	rl.BeginBlendMode(rl.BlendAdditive)
	r.drawFullscreen(r.lightLayer.Texture, rl.White)
	rl.EndBlendMode()
}

// DrawSunRays renders the rotating volumetric shaft layers for one sun into
// the current target. Ultra only; no-op below.
func (r *SunRenderer) DrawSunRays(sun *game.Sun) {
	if !r.policy.Volumetrics() {
		return
	}
	sx, sy, radius := r.sunScreen(sun)
	bundle := r.cache.BundleFor(radius)

	rot := r.time * shaftSpinRate * 180 / math.Pi

	rl.BeginBlendMode(rl.BlendAdditive)
	// two counter-rotating layers, drawn oversized at low alpha so the
	// bilinear filter reads as blur
	r.drawRotated(bundle.ShaftOuter, sx, sy, radius*shaftScale, float32(rot), rl.NewColor(255, 255, 255, 54))
	r.drawRotated(bundle.ShaftInner, sx, sy, radius*shaftScale*0.7, float32(-rot*1.4), rl.NewColor(255, 255, 255, 72))
	rl.EndBlendMode()
}

// DrawUltraSunParticleLayers draws embers for each sun plus the global
// light dust, additively, on top of the already-composited scene. Ultra
// only.
func (r *SunRenderer) DrawUltraSunParticleLayers(suns []*game.Sun) {
	if !r.policy.Particles() {
		return
	}
	vw, vh := float64(r.vw), float64(r.vh)
	for _, sun := range suns {
		sx, sy, radius := r.sunScreen(sun)
		margin := radius * cullScale
		if sx+margin < 0 || sx-margin > vw || sy+margin < 0 || sy-margin > vh {
			continue
		}
		r.particles.DrawSunEmbers(sun, sx, sy, radius, r.time, vw, vh)
	}
	r.particles.DrawLightDust(r.time, vw, vh)
}

// DrawLensFlare invokes the sibling flare renderer for one sun. Skipped
// below high quality and when the sun sits outside the viewport envelope.
func (r *SunRenderer) DrawLensFlare(sun *game.Sun) {
	if !r.policy.LensFlare() {
		return
	}
	sx, sy, radius := r.sunScreen(sun)
	env := radius * flareEnvelope
	if sx+env < 0 || sx-env > float64(r.vw) || sy+env < 0 || sy-env > float64(r.vh) {
		return
	}
	r.flare.DrawLensFlare(float32(sx), float32(sy), float32(radius), r.vw, r.vh)
}

// Unload releases the offscreen surfaces. Cache textures are owned by the
// injected RenderCache and released by its own Unload.
func (r *SunRenderer) Unload() {
	rl.UnloadRenderTexture(r.sunPass)
	rl.UnloadRenderTexture(r.lightLayer)
}

// --- individual passes ---

func (r *SunRenderer) drawAmbient(sx, sy, radius float64) {
	bucket := RadiusBucket(radius)
	tex := r.cache.Gradient(GradientKey("ambient", bucket), func() ([]color.RGBA, int, int) {
		size := bucket * 4
		return FourStopGlowPixels(size, r.scheme.GlowStops), size, size
	})
	r.drawRotated(tex, sx, sy, radius*ambientScale, 0, rl.White)
}

func (r *SunRenderer) drawBody(sx, sy, radius float64) {
	if r.policy.PlasmaBody() {
		bundle := r.cache.BundleFor(radius)
		spin := r.time * plasmaSpinRate * 180 / math.Pi

		r.drawRotated(bundle.Plasma[0], sx, sy, radius*2.04, float32(spin), rl.White)
		rl.BeginBlendMode(rl.BlendAdditive)
		r.drawRotated(bundle.Plasma[1], sx, sy, radius*2.0, float32(-spin*0.8), rl.NewColor(255, 255, 255, 180))
		rl.EndBlendMode()

		// hard white core and surface sheen
		rl.DrawCircleV(rl.NewVector2(float32(sx), float32(sy)), float32(radius*0.42), rl.White)
		tex := r.surfaceGradient(radius)
		r.drawRotated(tex, sx, sy, radius*2.0, 0, rl.NewColor(255, 255, 255, 90))
		return
	}

	// flat sprite body for every lower tier; a baked texpack sprite
	// preloaded under "sun-sprite" wins over the generated gradient
	bucket := RadiusBucket(radius)
	tex := r.cache.Gradient(GradientKey("sun-sprite", bucket), func() ([]color.RGBA, int, int) {
		size := bucket * 2
		return RadialPixels(size,
			color.RGBA{R: 255, G: 250, B: 235, A: 255},
			color.RGBA{R: 255, G: 165, B: 60, A: 0}), size, size
	})
	r.drawRotated(tex, sx, sy, radius*2.2, 0, rl.White)
}

func (r *SunRenderer) surfaceGradient(radius float64) rl.Texture2D {
	bucket := RadiusBucket(radius)
	return r.cache.Gradient(GradientKey("surface", bucket), func() ([]color.RGBA, int, int) {
		size := bucket * 2
		return RadialPixels(size,
			color.RGBA{R: 255, G: 255, B: 255, A: 0},
			color.RGBA{R: 255, G: 140, B: 40, A: 160}), size, size
	})
}

func (r *SunRenderer) drawBloom(sx, sy, radius float64) {
	bucket := RadiusBucket(radius)
	tex := r.cache.Gradient(GradientKey("bloom", bucket), func() ([]color.RGBA, int, int) {
		size := bucket * 4
		return RadialPixels(size,
			color.RGBA{R: 255, G: 236, B: 200, A: 190},
			color.RGBA{R: 255, G: 180, B: 90, A: 0}), size, size
	})

	beginScreenBlend()
	if r.policy.Volumetrics() {
		// ultra bloom: four concentric rings plus the anisotropic
		// horizontal stretch
		for i, ring := range ultraBloomRings {
			alpha := uint8(120 >> i)
			r.drawRotated(tex, sx, sy, radius*ring*2, 0, rl.NewColor(255, 255, 255, alpha))
		}
		stretch := r.cache.Gradient(GradientKey("stretch", bucket), func() ([]color.RGBA, int, int) {
			w := bucket * 8
			return StretchPixels(w, color.RGBA{R: 255, G: 220, B: 170, A: 120}), w, w / 4
		})
		r.drawStretched(stretch, sx, sy, radius*8, radius*2)
	} else {
		r.drawRotated(tex, sx, sy, radius*bloomScale*2, 0, rl.White)
	}
	endBlend()
}

// drawShadowCutouts erases the sun's glow inside each shadow quad using
// destination-out compositing.
func (r *SunRenderer) drawShadowCutouts(quads []ShadowQuad) {
	if len(quads) == 0 {
		return
	}
	beginEraseBlend()
	for i := range quads {
		drawQuadStrip(&quads[i], rl.White)
	}
	endBlend()
}

// drawLadField fills the viewport with the hard vertical split: light to
// the left of the sun, dark to the right.
func (r *SunRenderer) drawLadField(sx float64) {
	split := int32(sx)
	if split < 0 {
		split = 0
	}
	if split > r.vw {
		split = r.vw
	}
	light := rl.NewColor(r.scheme.LadLight.R, r.scheme.LadLight.G, r.scheme.LadLight.B, r.scheme.LadLight.A)
	dark := rl.NewColor(r.scheme.LadDark.R, r.scheme.LadDark.G, r.scheme.LadDark.B, r.scheme.LadDark.A)
	rl.DrawRectangle(0, 0, split, r.vh, light)
	rl.DrawRectangle(split, 0, r.vw-split, r.vh, dark)
}

// drawLadShadows draws each shadow segment with the treatment its own
// midpoint picks: dark soft quads on the light half, light "anti-shadows"
// on the dark half. One asteroid straddling the sun's x gets both.
func (r *SunRenderer) drawLadShadows(quads []ShadowQuad, sunX float32) {
	light := r.scheme.LadLight
	dark := r.scheme.LadDark
	for i := range quads {
		q := &quads[i]
		c := dark
		if q.MidX >= sunX {
			c = light
		}
		drawSoftQuad(q, rl.NewColor(c.R, c.G, c.B, 235))
	}
}

// drawSoftQuad renders a shadow quad with a soft edge: a full-alpha core
// plus two flanking penumbra triangles at lower alpha, expanded sideways
// from the far ends.
func drawSoftQuad(q *ShadowQuad, col rl.Color) {
	drawQuadStrip(q, col)

	pen := col
	pen.A = col.A / 4

	rotate := func(near, far rl.Vector2, s, c float32) rl.Vector2 {
		dx, dy := far.X-near.X, far.Y-near.Y
		return rl.NewVector2(near.X+dx*c-dy*s, near.Y+dx*s+dy*c)
	}
	// push each far point ~4.5 degrees sideways, away from the core
	const sin, cos = 0.0785, 0.9969
	drawTri(q.Near1, q.Far1, rotate(q.Near1, q.Far1, -sin, cos), pen)
	drawTri(q.Near2, q.Far2, rotate(q.Near2, q.Far2, sin, cos), pen)
}

// drawQuadStrip draws the quad as a two-triangle strip, reordering so the
// first triangle is counterclockwise; raylib culls backfacing triangles.
func drawQuadStrip(q *ShadowQuad, col rl.Color) {
	strip := [4]rl.Vector2{q.Near1, q.Near2, q.Far1, q.Far2}
	if crossZ(strip[0], strip[1], strip[2]) > 0 {
		strip = [4]rl.Vector2{q.Near2, q.Near1, q.Far2, q.Far1}
	}
	rl.DrawTriangleStrip(strip[:], col)
}

// drawTri draws one triangle in whichever vertex order survives culling.
func drawTri(a, b, c rl.Vector2, col rl.Color) {
	if crossZ(a, b, c) > 0 {
		a, b = b, a
	}
	rl.DrawTriangle(a, b, c, col)
}

// crossZ is the z-component of (b-a) x (c-a). Negative means the triangle
// is counterclockwise in raylib's y-down screen space.
func crossZ(a, b, c rl.Vector2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// --- draw helpers ---

// drawFullscreen blits a render-texture color buffer over the viewport,
// flipping Y the way raylib render textures require.
func (r *SunRenderer) drawFullscreen(tex rl.Texture2D, tint rl.Color) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(r.vw), float32(r.vh))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, tint)
}

// drawRotated draws tex centered at (x, y) scaled to size px and rotated.
func (r *SunRenderer) drawRotated(tex rl.Texture2D, x, y, size float64, rotation float32, tint rl.Color) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(size), float32(size))
	origin := rl.NewVector2(float32(size)/2, float32(size)/2)
	rl.DrawTexturePro(tex, src, dst, origin, rotation, tint)
}

// drawStretched draws tex centered at (x, y) with independent width/height.
func (r *SunRenderer) drawStretched(tex rl.Texture2D, x, y, w, h float64) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	origin := rl.NewVector2(float32(w)/2, float32(h)/2)
	rl.DrawTexturePro(tex, src, dst, origin, 0, rl.White)
}
