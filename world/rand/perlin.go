package rand

// Perlin is vanilla's "improved" 3D Perlin noise generator: a 256-entry
// permutation table shuffled with the LCG, plus a per-instance offset
// vector, sampled with the standard fade/lerp/grad formulation.
type Perlin struct {
	perm   [512]int
	xo, yo, zo float64
}

// NewPerlin constructs a Perlin generator, consuming r's state exactly the
// way vanilla's NoiseGeneratorImproved constructor does: three
// NextDouble()*256 draws for the offsets, then a Fisher-Yates-style shuffle
// of [0,255] driven by NextIntN.
func NewPerlin(r *Random) *Perlin {
	p := &Perlin{
		xo: r.NextDouble() * 256,
		yo: r.NextDouble() * 256,
		zo: r.NextDouble() * 256,
	}
	var base [256]int
	for i := range base {
		base[i] = i
	}
	for i := 0; i < 256; i++ {
		j := int(r.NextIntN(int32(256 - i)))
		base[i], base[i+j] = base[i+j], base[i]
	}
	for i := 0; i < 512; i++ {
		p.perm[i] = base[i&255]
	}
	return p
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }
func lerp(t, a, b float64) float64 { return a + t*(b-a) }

// grad implements the 12-gradient-direction dot product used by vanilla's
// improved noise (Ken Perlin's reference implementation).
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	var u, v float64
	if h < 8 {
		u = x
	} else {
		u = y
	}
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Sample3D evaluates the noise field at (x, y, z), offset by the
// generator's own (xo, yo, zo).
func (p *Perlin) Sample3D(x, y, z float64) float64 {
	x += p.xo
	y += p.yo
	z += p.zo

	fx, fy, fz := floorInt(x), floorInt(y), floorInt(z)
	X, Y, Z := fx&255, fy&255, fz&255

	x -= float64(fx)
	y -= float64(fy)
	z -= float64(fz)

	u, v, w := fade(x), fade(y), fade(z)

	a := p.perm[X] + Y
	aa := p.perm[a] + Z
	ab := p.perm[a+1] + Z
	b := p.perm[X+1] + Y
	ba := p.perm[b] + Z
	bb := p.perm[b+1] + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad(p.perm[aa], x, y, z), grad(p.perm[ba], x-1, y, z)),
			lerp(u, grad(p.perm[ab], x, y-1, z), grad(p.perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p.perm[aa+1], x, y, z-1), grad(p.perm[ba+1], x-1, y, z-1)),
			lerp(u, grad(p.perm[ab+1], x, y-1, z-1), grad(p.perm[bb+1], x-1, y-1, z-1))))
}

func floorInt(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}
