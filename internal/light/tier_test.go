package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuality(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityMedium, QualityHigh, QualityUltra} {
		parsed, err := ParseQuality(q.String())
		require.NoError(t, err)
		assert.Equal(t, q, parsed)
	}

	_, err := ParseQuality("extreme")
	assert.Error(t, err)
}

func TestTierPolicyGating(t *testing.T) {
	tests := []struct {
		quality                    Quality
		ambient, shadows, bloom    bool
		volumetrics, particles     bool
		plasma, flare              bool
	}{
		{QualityLow, false, false, false, false, false, false, false},
		{QualityMedium, true, false, false, false, false, false, false},
		{QualityHigh, true, true, true, false, false, false, true},
		{QualityUltra, true, true, true, true, true, true, true},
	}

	for _, tt := range tests {
		p := PolicyFor(tt.quality)
		assert.Equal(t, tt.ambient, p.Ambient(), "%s ambient", tt.quality)
		assert.Equal(t, tt.shadows, p.ComputeShadows(), "%s shadows", tt.quality)
		assert.Equal(t, tt.bloom, p.Bloom(), "%s bloom", tt.quality)
		assert.Equal(t, tt.volumetrics, p.Volumetrics(), "%s volumetrics", tt.quality)
		assert.Equal(t, tt.particles, p.Particles(), "%s particles", tt.quality)
		assert.Equal(t, tt.plasma, p.PlasmaBody(), "%s plasma", tt.quality)
		assert.Equal(t, tt.flare, p.LensFlare(), "%s flare", tt.quality)
	}
}
