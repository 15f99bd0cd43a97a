package light

import "fmt"

// Quality selects the rendering tier. It is caller-driven configuration
// read once per frame; the renderer holds no tier state of its own.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityUltra
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityUltra:
		return "ultra"
	}
	return "unknown"
}

func ParseQuality(s string) (Quality, error) {
	switch s {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	case "ultra":
		return QualityUltra, nil
	}
	return QualityLow, fmt.Errorf("unknown quality tier %q", s)
}

// TierPolicy is the per-frame dispatch derived once from the quality
// setting, replacing scattered tier comparisons in draw calls.
type TierPolicy struct {
	quality Quality
}

func PolicyFor(q Quality) TierPolicy { return TierPolicy{quality: q} }

// Ambient reports whether the per-sun ambient falloff pass renders.
func (p TierPolicy) Ambient() bool { return p.quality >= QualityMedium }

// ComputeShadows reports whether shadow geometry is derived at all. Below
// high tier shadow queries return empty without touching the obstacle list.
func (p TierPolicy) ComputeShadows() bool { return p.quality >= QualityHigh }

// Bloom reports whether the screen-blend bloom pass renders.
func (p TierPolicy) Bloom() bool { return p.quality >= QualityHigh }

// Volumetrics reports whether shaft textures render.
func (p TierPolicy) Volumetrics() bool { return p.quality == QualityUltra }

// PlasmaBody reports whether the animated plasma sun body replaces the flat
// radial sprite.
func (p TierPolicy) PlasmaBody() bool { return p.quality == QualityUltra }

// Particles reports whether ember and light-dust layers render.
func (p TierPolicy) Particles() bool { return p.quality == QualityUltra }

// LensFlare reports whether the sibling flare renderer is invoked.
func (p TierPolicy) LensFlare() bool { return p.quality >= QualityHigh }
