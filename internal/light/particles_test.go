package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmberAlphaEnvelope(t *testing.T) {
	assert.Zero(t, emberAlpha(0), "ember is invisible at birth")
	assert.Zero(t, emberAlpha(1), "ember is invisible at the rim")

	var peak float64
	for tt := 0.01; tt < 1; tt += 0.01 {
		a := emberAlpha(tt)
		assert.GreaterOrEqual(t, a, 0.0)
		if a > peak {
			peak = a
		}
	}
	assert.Greater(t, peak, 0.5, "interior maximum is strictly positive")
}

func TestEmberProgressWrapsDeterministically(t *testing.T) {
	e := &EmberStatic{Speed: 1, Offset: 0.25}

	assert.InDelta(t, 0.75, emberProgress(e, 0.5), 1e-12)
	assert.InDelta(t, 0.75, emberProgress(e, 1.5), 1e-12, "progress wraps modulo 1")
	assert.InDelta(t, emberProgress(e, 42.125), emberProgress(e, 42.125), 0,
		"position is a pure function of time")
}

func TestEmberSetDerivedFromSunID(t *testing.T) {
	a := newEmberSet(3)
	b := newEmberSet(3)
	require.Len(t, a, embersPerSun)
	assert.Equal(t, a, b, "same sun ID regenerates the identical set")

	other := newEmberSet(4)
	assert.NotEqual(t, a, other, "distinct suns get distinct ember sets")
}

func TestEmberOffsetScalesWithRadius(t *testing.T) {
	e := &newEmberSet(1)[0]
	dx1, dy1, s1 := emberOffset(e, 2.5, 50)
	dx2, dy2, s2 := emberOffset(e, 2.5, 100)

	assert.InDelta(t, dx1*2, dx2, 1e-9)
	assert.InDelta(t, dy1*2, dy2, 1e-9)
	assert.InDelta(t, s1*2, s2, 1e-9)
}

func TestDustWrapsInsideViewport(t *testing.T) {
	const vw, vh = 1280.0, 720.0
	dust := newDustField()
	require.Len(t, dust, dustCount)

	for _, time := range []float64{0, 17.3, 1e4} {
		for i := range dust {
			x, y := dustPosition(&dust[i], time, vw, vh)
			assert.GreaterOrEqual(t, x, 0.0)
			assert.Less(t, x, vw)
			assert.GreaterOrEqual(t, y, 0.0)
			assert.Less(t, y, vh)
		}
	}
}

func TestEmberDescriptorsCachedPerSun(t *testing.T) {
	layer := NewParticleLayer(nil)

	first := layer.embersFor(9)
	second := layer.embersFor(9)
	assert.Same(t, &first[0], &second[0], "descriptor set is generated once per sun ID")
	assert.Len(t, layer.embers, 1)

	layer.embersFor(10)
	assert.Len(t, layer.embers, 2)
}
