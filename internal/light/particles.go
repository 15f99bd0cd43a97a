package light

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-of-light/internal/game"
)

// Ultra-tier particle layers: per-sun embers and global light dust. Both
// are stateless: descriptors are generated once per sun (or once globally)
// and every frame's positions are pure functions of elapsed game time, so
// the animation is deterministic and restartable with no lifecycle
// bookkeeping.

const (
	embersPerSun = 24
	dustCount    = 90

	emberFadeInEnd = 0.15
)

// EmberStatic is one ember's immutable parameter set.
type EmberStatic struct {
	Speed      float64 // progress cycles per second
	Offset     float64 // phase offset so embers desynchronize
	OrbitAngle float64 // base angle around the sun
	Span       float64 // radial travel as a multiple of sun radius
	SwirlAmp   float64
	SwirlFreq  float64
	ArcAmp     float64 // tangential arc-bend amplitude
	ArcFreq    float64
	Size       float64 // base sprite size relative to sun radius
}

// DustStatic is one global light-dust mote.
type DustStatic struct {
	X, Y   float64 // initial position as a fraction of the viewport
	SpeedX float64 // px/s
	SpeedY float64
	Size   float64
	Alpha  float64
}

// emberProgress is the ember's position along its outward life, in [0, 1).
func emberProgress(e *EmberStatic, time float64) float64 {
	t := time*e.Speed + e.Offset
	return t - math.Floor(t)
}

// emberAlpha fades embers in quickly near the core and out with an
// accelerating tail at the rim: fadeIn(t) * fadeOut(t)^2. Zero at both
// t=0 and t=1 with a positive interior maximum.
func emberAlpha(t float64) float64 {
	fadeIn := clamp01(t / emberFadeInEnd)
	fadeOut := 1 - t
	return fadeIn * fadeOut * fadeOut
}

// emberOffset returns the ember's screen offset from the sun center and
// its current sprite scale, for a sun of the given screen radius.
func emberOffset(e *EmberStatic, time, screenRadius float64) (dx, dy, size float64) {
	t := emberProgress(e, time)

	angle := e.OrbitAngle + e.SwirlAmp*math.Sin(time*e.SwirlFreq+t*3.1)
	dist := screenRadius * (0.35 + t*e.Span)
	arc := e.ArcAmp * screenRadius * math.Sin(t*math.Pi*e.ArcFreq+time*0.7)

	sin, cos := math.Sincos(angle)
	// radial travel plus tangential arc bend
	dx = cos*dist - sin*arc
	dy = sin*dist + cos*arc
	size = e.Size * screenRadius * (1 - 0.3*t)
	return dx, dy, size
}

// newEmberSet derives a sun's ember descriptors from its stable ID.
func newEmberSet(sunID int) []EmberStatic {
	seed := seedEmber ^ mix64(uint64(int64(sunID)))
	set := make([]EmberStatic, embersPerSun)
	for i := range set {
		set[i] = EmberStatic{
			Speed:      0.05 + 0.08*hash01(seed, i*8+0),
			Offset:     hash01(seed, i*8+1),
			OrbitAngle: 2 * math.Pi * hash01(seed, i*8+2),
			Span:       1.6 + 1.2*hash01(seed, i*8+3),
			SwirlAmp:   0.25 + 0.35*hash01(seed, i*8+4),
			SwirlFreq:  0.3 + 0.5*hash01(seed, i*8+5),
			ArcAmp:     0.08 + 0.12*hash01(seed, i*8+6),
			ArcFreq:    1 + 2*hash01(seed, i*8+7),
			Size:       0.06 + 0.05*hash01(seed, i*8+5),
		}
	}
	return set
}

func newDustField() []DustStatic {
	set := make([]DustStatic, dustCount)
	for i := range set {
		set[i] = DustStatic{
			X:      hash01(seedDust, i*6+0),
			Y:      hash01(seedDust, i*6+1),
			SpeedX: 4 + 14*hash01(seedDust, i*6+2),
			SpeedY: -3 + 6*hash01(seedDust, i*6+3),
			Size:   1 + 2.5*hash01(seedDust, i*6+4),
			Alpha:  0.15 + 0.35*hash01(seedDust, i*6+5),
		}
	}
	return set
}

// dustPosition wraps a mote's drift against the viewport.
func dustPosition(d *DustStatic, time, vw, vh float64) (x, y float64) {
	x = math.Mod(d.X*vw+time*d.SpeedX, vw)
	if x < 0 {
		x += vw
	}
	y = math.Mod(d.Y*vh+time*d.SpeedY, vh)
	if y < 0 {
		y += vh
	}
	return x, y
}

// ParticleLayer draws embers and dust additively on top of the composited
// lighting layer. Descriptor sets are cached; nothing in them mutates.
type ParticleLayer struct {
	cache  *RenderCache
	embers map[int][]EmberStatic
	dust   []DustStatic
}

func NewParticleLayer(cache *RenderCache) *ParticleLayer {
	return &ParticleLayer{
		cache:  cache,
		embers: make(map[int][]EmberStatic),
		dust:   newDustField(),
	}
}

// embersFor returns the cached descriptor set for a sun, generating it on
// first sight of the sun's ID.
func (p *ParticleLayer) embersFor(sunID int) []EmberStatic {
	if set, ok := p.embers[sunID]; ok {
		return set
	}
	set := newEmberSet(sunID)
	p.embers[sunID] = set
	return set
}

// DrawSunEmbers renders one sun's embers around its screen position.
func (p *ParticleLayer) DrawSunEmbers(sun *game.Sun, sx, sy, screenRadius, time float64, vw, vh float64) {
	glow, core := p.cache.EmberSprites()

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range p.embersFor(sun.ID) {
		e := &p.embers[sun.ID][i]
		t := emberProgress(e, time)
		a := emberAlpha(t)
		if a <= 0.003 {
			continue
		}
		dx, dy, size := emberOffset(e, time, screenRadius)
		x, y := sx+dx, sy+dy
		if x+size < 0 || x-size > vw || y+size < 0 || y-size > vh {
			continue
		}
		tint := rl.NewColor(255, 255, 255, uint8(255*a))
		drawSpriteCentered(glow, float32(x), float32(y), float32(size*2), tint)
		drawSpriteCentered(core, float32(x), float32(y), float32(size*0.8), tint)
	}
	rl.EndBlendMode()
}

// DrawLightDust renders the global drifting motes across the viewport.
func (p *ParticleLayer) DrawLightDust(time float64, vw, vh float64) {
	glow, _ := p.cache.EmberSprites()

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range p.dust {
		d := &p.dust[i]
		x, y := dustPosition(d, time, vw, vh)
		tint := rl.NewColor(255, 244, 220, uint8(255*d.Alpha))
		drawSpriteCentered(glow, float32(x), float32(y), float32(d.Size*3), tint)
	}
	rl.EndBlendMode()
}

func drawSpriteCentered(tex rl.Texture2D, x, y, size float32, tint rl.Color) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(x, y, size, size)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(size/2, size/2), 0, tint)
}
