package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speed-of-light/internal/game"
)

func TestPlasmaPixelsDeterministic(t *testing.T) {
	a := NewBuilder().PlasmaPixels(64, 0)
	b := NewBuilder().PlasmaPixels(64, 0)
	assert.Equal(t, a, b, "same bucket and seed must rebuild identical pixels")

	other := NewBuilder().PlasmaPixels(64, 1)
	assert.NotEqual(t, a, other, "layers use independent seeds")
}

func TestPlasmaFalloff(t *testing.T) {
	const size = 64
	pix := NewBuilder().PlasmaPixels(size, 0)
	require.Len(t, pix, size*size)

	center := pix[(size/2)*size+size/2]
	corner := pix[0]
	assert.Greater(t, center.A, uint8(200), "body core is near opaque")
	assert.Equal(t, uint8(0), corner.A, "alpha falls to zero outside the disc")
}

func TestShaftPixelsDeterministicPerTag(t *testing.T) {
	a := NewBuilder().ShaftPixels(128, ShaftRaysOuter, "shaft-outer")
	b := NewBuilder().ShaftPixels(128, ShaftRaysOuter, "shaft-outer")
	assert.Equal(t, a, b)

	inner := NewBuilder().ShaftPixels(128, ShaftRaysInner, "shaft-inner")
	assert.NotEqual(t, a, inner)
}

func TestRayRampsShareLengthBuckets(t *testing.T) {
	b := NewBuilder()

	r1 := b.rampFor("shaft-outer", 100)
	r2 := b.rampFor("shaft-outer", 101) // same 24px bucket
	assert.Same(t, &r1[0], &r2[0], "near-equal lengths share one ramp")
	assert.Equal(t, 1, b.RampCount())

	b.rampFor("shaft-inner", 100)
	assert.Equal(t, 2, b.RampCount(), "tags keep ramps separate")

	b.rampFor("shaft-outer", 400)
	assert.Equal(t, 3, b.RampCount())
}

func TestRampCountBoundedByBuckets(t *testing.T) {
	b := NewBuilder()
	// hundreds of raw lengths collapse into a handful of buckets
	for l := 30.0; l < 200; l += 0.5 {
		b.rampFor("shaft-outer", l)
	}
	assert.LessOrEqual(t, b.RampCount(), 9)
}

func TestFourStopGlowPixels(t *testing.T) {
	const size = 32
	pix := FourStopGlowPixels(size, game.DefaultScheme().GlowStops)
	require.Len(t, pix, size*size)

	center := pix[(size/2)*size+size/2]
	corner := pix[0]
	assert.Greater(t, center.A, corner.A, "glow fades outward")
	assert.Equal(t, uint8(0), corner.A, "outermost stop is transparent")
}

func TestStretchPixelsAspect(t *testing.T) {
	const w = 64
	pix := StretchPixels(w, game.DefaultScheme().GlowStops[1])
	assert.Len(t, pix, w*(w/4), "stretch sprite is a 4:1 ellipse")
}

func TestEmberSpritePixels(t *testing.T) {
	glow := EmberGlowPixels(48)
	core := EmberCorePixels(24)
	assert.Len(t, glow, 48*48)
	assert.Len(t, core, 24*24)

	// the core sprite is hotter than the glow at its center
	g := glow[24*48+24]
	c := core[12*24+12]
	assert.GreaterOrEqual(t, c.A, g.A)
}
