package light

// Seeded integer hashing for every procedural jitter in the renderer.
// All functions are pure integer math: the same seed and coordinates yield
// the same value on every run and platform, so texture generation is
// reproducible and visual regression tests can assert exact pixels.

// Fixed layer seeds. Two independent streams per plasma layer keep the
// blended noise from showing axis-aligned correlation.
const (
	seedPlasmaA uint64 = 0x9e3779b97f4a7c15
	seedPlasmaB uint64 = 0xbf58476d1ce4e5b9
	seedShaft   uint64 = 0x94d049bb133111eb
	seedEmber   uint64 = 0xd6e8feb86659fd93
	seedDust    uint64 = 0xa0761d6478bd642f
	seedFlare   uint64 = 0xe7037ed1a0b428db
)

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// hash01 hashes an index under a seed into [0, 1).
func hash01(seed uint64, n int) float64 {
	h := mix64(seed ^ mix64(uint64(int64(n))+0x632be59bd9b4e019))
	return float64(h>>11) / (1 << 53)
}

// hash2D hashes integer pixel coordinates under a seed into [0, 1).
func hash2D(seed uint64, x, y int) float64 {
	h := mix64(seed ^ mix64(uint64(int64(x))*0x9e3779b97f4a7c15^uint64(int64(y))+0x2545f4914f6cdd1d))
	return float64(h>>11) / (1 << 53)
}

// valueNoise2D is smoothed value noise at an arbitrary point: the four
// surrounding lattice hashes blended with a smoothstep weight. Range [0, 1).
func valueNoise2D(seed uint64, x, y float64) float64 {
	xi, yi := floorInt(x), floorInt(y)
	fx, fy := x-float64(xi), y-float64(yi)

	// smoothstep
	u := fx * fx * (3 - 2*fx)
	v := fy * fy * (3 - 2*fy)

	a := hash2D(seed, xi, yi)
	b := hash2D(seed, xi+1, yi)
	c := hash2D(seed, xi, yi+1)
	d := hash2D(seed, xi+1, yi+1)

	return a + (b-a)*u + (c-a)*v + (a-b-c+d)*u*v
}

func floorInt(f float64) int {
	i := int(f)
	if f < float64(i) {
		i--
	}
	return i
}
