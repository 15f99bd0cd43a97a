package light

import (
	"image/color"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Quantization steps bounding cache cardinality. Suns whose screen radii
// round to the same bucket share one texture bundle, so cache size grows
// with the number of distinct buckets observed, never with frame count.
const (
	RadiusBucketStep = 16 // px
	RadiusBucketMin  = 32 // px; floor avoids degenerate tiny textures
)

// RadiusBucket quantizes a screen radius to its texture bucket.
func RadiusBucket(r float64) int {
	b := int(r/RadiusBucketStep+0.5) * RadiusBucketStep
	if b < RadiusBucketMin {
		b = RadiusBucketMin
	}
	return b
}

// LengthBucket quantizes a raw ray length for ramp/gradient keying.
func LengthBucket(l float64) int {
	b := int(l/shaftLenBucket+0.5) * int(shaftLenBucket)
	if b < int(shaftLenBucket) {
		b = int(shaftLenBucket)
	}
	return b
}

// GradientKey builds a gradient cache key from a discrete tag and a
// quantized bucket. The tag keeps unrelated gradient kinds that happen to
// share a bucket value from colliding.
func GradientKey(tag string, bucket int) string {
	return tag + ":" + strconv.Itoa(bucket)
}

// SunTextures is the per-radius-bucket texture bundle: two plasma noise
// layers for the animated body and the two shaft layers for volumetrics.
type SunTextures struct {
	Bucket     int
	Plasma     [2]rl.Texture2D
	ShaftOuter rl.Texture2D
	ShaftInner rl.Texture2D
}

// RenderCache owns every generated GPU texture. It is caller-owned and
// injected into the renderer, so tests and multiple renderer instances get
// independent state. Entries are immutable once stored and live until
// Unload; there is no mid-session invalidation.
type RenderCache struct {
	builder *Builder

	bundles   map[int]*SunTextures
	gradients map[string]rl.Texture2D

	// preloaded pixels (from a baked texture pack) consulted before
	// procedural generation, keyed like gradients
	preloaded map[string]preloadedPixels

	emberGlow, emberCore rl.Texture2D
	embersReady          bool

	// upload maps pixels to a GPU texture; replaced in tests so cache
	// behavior is checkable without a GL context
	upload func(pix []color.RGBA, w, h int) rl.Texture2D
}

type preloadedPixels struct {
	w, h int
	pix  []color.RGBA
}

func NewRenderCache() *RenderCache {
	return &RenderCache{
		builder:   NewBuilder(),
		bundles:   make(map[int]*SunTextures),
		gradients: make(map[string]rl.Texture2D),
		preloaded: make(map[string]preloadedPixels),
		upload:    textureFromPixels,
	}
}

// Preload registers baked pixels for a gradient key. A later Gradient call
// with the same key uploads these instead of generating, which is how a
// texture pack warms the cache.
func (c *RenderCache) Preload(key string, w, h int, pix []color.RGBA) {
	c.preloaded[key] = preloadedPixels{w: w, h: h, pix: pix}
}

// BundleFor returns the texture bundle for a screen radius, building it on
// first sight of the bucket. Equal buckets return the identical bundle.
func (c *RenderCache) BundleFor(screenRadius float64) *SunTextures {
	bucket := RadiusBucket(screenRadius)
	if b, ok := c.bundles[bucket]; ok {
		return b
	}

	plasmaSize := bucket * 2
	shaftSize := bucket * 4

	b := &SunTextures{Bucket: bucket}
	b.Plasma[0] = c.upload(c.builder.PlasmaPixels(plasmaSize, 0), plasmaSize, plasmaSize)
	b.Plasma[1] = c.upload(c.builder.PlasmaPixels(plasmaSize, 1), plasmaSize, plasmaSize)
	b.ShaftOuter = c.upload(c.builder.ShaftPixels(shaftSize, ShaftRaysOuter, "shaft-outer"), shaftSize, shaftSize)
	b.ShaftInner = c.upload(c.builder.ShaftPixels(shaftSize, ShaftRaysInner, "shaft-inner"), shaftSize, shaftSize)
	c.bundles[bucket] = b
	return b
}

// Gradient returns the texture for key, uploading preloaded pixels or
// generating via gen on first use.
func (c *RenderCache) Gradient(key string, gen func() (pix []color.RGBA, w, h int)) rl.Texture2D {
	if tex, ok := c.gradients[key]; ok {
		return tex
	}
	var tex rl.Texture2D
	if pre, ok := c.preloaded[key]; ok {
		tex = c.upload(pre.pix, pre.w, pre.h)
	} else {
		pix, w, h := gen()
		tex = c.upload(pix, w, h)
	}
	c.gradients[key] = tex
	return tex
}

// EmberSprites returns the shared glow and core sprites for ember and
// light-dust particles.
func (c *RenderCache) EmberSprites() (glow, core rl.Texture2D) {
	if !c.embersReady {
		const size = 48
		c.emberGlow = c.upload(EmberGlowPixels(size), size, size)
		c.emberCore = c.upload(EmberCorePixels(size/2), size/2, size/2)
		c.embersReady = true
	}
	return c.emberGlow, c.emberCore
}

// Unload releases every GPU texture. The cache is unusable afterwards.
func (c *RenderCache) Unload() {
	for _, b := range c.bundles {
		rl.UnloadTexture(b.Plasma[0])
		rl.UnloadTexture(b.Plasma[1])
		rl.UnloadTexture(b.ShaftOuter)
		rl.UnloadTexture(b.ShaftInner)
	}
	for _, tex := range c.gradients {
		rl.UnloadTexture(tex)
	}
	if c.embersReady {
		rl.UnloadTexture(c.emberGlow)
		rl.UnloadTexture(c.emberCore)
	}
	clear(c.bundles)
	clear(c.gradients)
	c.embersReady = false
}

// textureFromPixels uploads a straight-alpha RGBA buffer as a bilinear
// filtered texture.
func textureFromPixels(pix []color.RGBA, w, h int) rl.Texture2D {
	img := rl.GenImageColor(w, h, rl.Blank)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.UpdateTexture(tex, pix)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}
