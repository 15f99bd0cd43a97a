package light

import (
	"image/color"
	"math"
)

// Procedural pixel generation for every texture the renderer caches. All
// functions here are pure CPU: they take a quantized size bucket plus fixed
// seeds and return straight-alpha RGBA buffers, so they are deterministic
// (rebuilding after an eviction yields identical pixels) and testable
// without a GPU. Upload happens in cache.go.

// Plasma layer shaping. Brightness = falloff^plasmaExp * (base + plasma*gain),
// with alpha = falloff so the disc clips itself when drawn.
const (
	plasmaExp      = 1.6
	plasmaBase     = 0.55
	plasmaGain     = 0.45
	plasmaFreq     = 0.09 // noise lattice cells per pixel
	plasmaCoreFrac = 0.30 // white-core overlay radius as a fraction of R
)

// Shaft layer ray counts differ so the two layers never beat against each
// other while rotating.
const (
	ShaftRaysOuter = 32
	ShaftRaysInner = 20

	shaftJitter      = 0.7  // per-ray angular jitter in ray-spacing units
	shaftLenBucket   = 24.0 // px; ray lengths quantize to this before ramp lookup
	shaftMinLenFrac  = 0.55
	shaftLenSpread   = 0.45
	shaftMinWidthPx  = 2.5
	shaftWidthSpread = 4.0
)

// Builder rasterizes procedural pixels. It owns the CPU-side ramp cache:
// ray intensity ramps are keyed by layer tag plus quantized length so the
// number of distinct ramps stays small even though raw ray lengths vary
// continuously.
type Builder struct {
	ramps map[string][]float32
}

func NewBuilder() *Builder {
	return &Builder{ramps: make(map[string][]float32)}
}

// warmRamp maps brightness in [0,1] to a white-to-orange color, white at
// full brightness.
func warmRamp(b float64) (r, g, bl uint8) {
	b = clamp01(b)
	return uint8(255 * (0.92 + 0.08*b)),
		uint8(255 * (0.45 + 0.55*b)),
		uint8(255 * (0.10 + 0.80*b*b))
}

// PlasmaPixels builds one animated sun-surface noise layer. layer selects
// the seed pair; identical (size, layer) inputs produce identical pixels.
func (b *Builder) PlasmaPixels(size, layer int) []color.RGBA {
	seed := seedPlasmaA
	if layer != 0 {
		seed = seedPlasmaB
	}
	// Offsetting the sample domain by the layer index decorrelates the two
	// layers even where their seeds collide with lattice symmetry.
	domainOff := float64(layer) * 37.0

	pix := make([]color.RGBA, size*size)
	c := float64(size-1) / 2
	radius := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			r := math.Hypot(dx, dy) / radius
			if r >= 1 {
				continue
			}
			falloff := 1 - r

			n1 := valueNoise2D(seed, float64(x)*plasmaFreq+domainOff, float64(y)*plasmaFreq)
			n2 := valueNoise2D(seed^seedShaft, float64(x)*plasmaFreq*2.3, float64(y)*plasmaFreq*2.3+domainOff)
			plasma := 0.6*n1 + 0.4*n2

			bright := math.Pow(falloff, plasmaExp) * (plasmaBase + plasma*plasmaGain)

			// additive white core overlay
			coreR := plasmaCoreFrac
			if r < coreR {
				t := 1 - r/coreR
				bright += t * t
			}

			cr, cg, cb := warmRamp(bright)
			pix[y*size+x] = color.RGBA{R: cr, G: cg, B: cb, A: uint8(255 * falloff)}
		}
	}
	return pix
}

// rampFor returns the shared intensity ramp for a ray of the given layer
// tag and raw pixel length. Length quantizes to shaftLenBucket first, so
// rays of similar length reuse one ramp.
func (b *Builder) rampFor(tag string, rawLen float64) []float32 {
	bucket := LengthBucket(rawLen)
	key := GradientKey(tag, bucket)
	if ramp, ok := b.ramps[key]; ok {
		return ramp
	}
	n := bucket
	if n < 8 {
		n = 8
	}
	ramp := make([]float32, n)
	for i := range ramp {
		t := float64(i) / float64(n-1)
		// bright at the root, soft quadratic tail
		ramp[i] = float32((1 - t) * (1 - t))
	}
	b.ramps[key] = ramp
	return ramp
}

// RampCount reports how many distinct ray ramps have been built, which is
// bounded by the number of (tag, length bucket) pairs observed.
func (b *Builder) RampCount() int { return len(b.ramps) }

type shaftRay struct {
	angle  float64
	length float64
	width  float64
	ramp   []float32
}

// ShaftPixels builds a radial shaft texture: rays at evenly spaced angles
// with deterministic per-ray jitter, each drawn as two overlapping
// elongated ellipses (a soft edge plus a bright spine at 40% width).
func (b *Builder) ShaftPixels(size, rayCount int, tag string) []color.RGBA {
	c := float64(size-1) / 2
	radius := float64(size) / 2

	rays := make([]shaftRay, rayCount)
	for i := range rays {
		spacing := 2 * math.Pi / float64(rayCount)
		jitter := (hash01(seedShaft, i*3+0) - 0.5) * spacing * shaftJitter
		length := radius * (shaftMinLenFrac + shaftLenSpread*hash01(seedShaft, i*3+1))
		width := shaftMinWidthPx + shaftWidthSpread*hash01(seedShaft, i*3+2)
		rays[i] = shaftRay{
			angle:  spacing*float64(i) + jitter,
			length: length,
			width:  width,
			ramp:   b.rampFor(tag, length),
		}
	}

	intensity := make([]float32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Hypot(dx, dy)
			if dist >= radius {
				continue
			}
			var sum float32
			for i := range rays {
				ray := &rays[i]
				// coordinates along/across the ray
				along := dx*math.Cos(ray.angle) + dy*math.Sin(ray.angle)
				if along <= 0 || along >= ray.length {
					continue
				}
				across := -dx*math.Sin(ray.angle) + dy*math.Cos(ray.angle)

				idx := int(along / ray.length * float64(len(ray.ramp)-1))
				root := ray.ramp[idx]

				// soft edge ellipse
				w := ray.width * (1 + along/ray.length)
				e := across / w
				soft := float32(math.Exp(-e * e * 2))
				// bright spine
				es := across / (w * 0.4)
				spine := float32(math.Exp(-es*es*2)) * 0.8

				sum += root * (soft*0.5 + spine)
			}
			if sum > 1 {
				sum = 1
			}
			intensity[y*size+x] = sum
		}
	}

	pix := make([]color.RGBA, size*size)
	for i, v := range intensity {
		cr, cg, cb := warmRamp(float64(v))
		pix[i] = color.RGBA{R: cr, G: cg, B: cb, A: uint8(255 * v)}
	}
	return pix
}

// EmberGlowPixels is the soft additive halo sprite behind each ember.
func EmberGlowPixels(size int) []color.RGBA {
	return radialSprite(size, func(r float64) (color.RGBA, float64) {
		a := math.Pow(1-r, 2.2) * 0.85
		return color.RGBA{R: 255, G: 170, B: 64}, a
	})
}

// EmberCorePixels is the small hot center sprite of each ember.
func EmberCorePixels(size int) []color.RGBA {
	return radialSprite(size, func(r float64) (color.RGBA, float64) {
		a := math.Pow(1-r, 1.2)
		return color.RGBA{R: 255, G: 236, B: 200}, a
	})
}

// FourStopGlowPixels builds the non-ultra sun glow disc from the color
// scheme's four gradient stops at positions 0, 1/3, 2/3, 1.
func FourStopGlowPixels(size int, stops [4]color.RGBA) []color.RGBA {
	return radialSprite(size, func(r float64) (color.RGBA, float64) {
		t := r * 3
		i := int(t)
		if i > 2 {
			i = 2
		}
		f := t - float64(i)
		c0, c1 := stops[i], stops[i+1]
		out := color.RGBA{
			R: lerpByte(c0.R, c1.R, f),
			G: lerpByte(c0.G, c1.G, f),
			B: lerpByte(c0.B, c1.B, f),
		}
		a := float64(lerpByte(c0.A, c1.A, f)) / 255
		return out, a
	})
}

// RadialPixels is a plain two-color radial gradient disc.
func RadialPixels(size int, inner, outer color.RGBA) []color.RGBA {
	return radialSprite(size, func(r float64) (color.RGBA, float64) {
		return color.RGBA{
			R: lerpByte(inner.R, outer.R, r),
			G: lerpByte(inner.G, outer.G, r),
			B: lerpByte(inner.B, outer.B, r),
		}, float64(lerpByte(inner.A, outer.A, r)) / 255
	})
}

// StretchPixels is the anisotropic flare gradient: a horizontal ellipse
// (4:1 aspect) fading from tint at the center to transparent at the rim.
func StretchPixels(width int, tint color.RGBA) []color.RGBA {
	height := width / 4
	if height < 1 {
		height = 1
	}
	pix := make([]color.RGBA, width*height)
	cx, cy := float64(width-1)/2, float64(height-1)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ex := (float64(x) - cx) / (float64(width) / 2)
			ey := (float64(y) - cy) / (float64(height) / 2)
			r := math.Sqrt(ex*ex + ey*ey)
			if r >= 1 {
				continue
			}
			a := math.Pow(1-r, 2) * float64(tint.A) / 255
			pix[y*width+x] = color.RGBA{
				R: tint.R, G: tint.G, B: tint.B,
				A: uint8(255 * a),
			}
		}
	}
	return pix
}

func radialSprite(size int, at func(r float64) (color.RGBA, float64)) []color.RGBA {
	pix := make([]color.RGBA, size*size)
	c := float64(size-1) / 2
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			r := math.Hypot(dx, dy) / radius
			if r >= 1 {
				continue
			}
			col, a := at(r)
			col.A = uint8(255 * clamp01(a))
			pix[y*size+x] = col
		}
	}
	return pix
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*clamp01(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
