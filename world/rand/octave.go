package rand

// Octave stacks N independent Perlin generators, each sampled at double the
// previous generator's frequency and half its amplitude, matching vanilla's
// NoiseGeneratorOctaves. Construction order matters: all N
// Perlin generators are built against the same Random, consuming its state
// in sequence, so the octave count and construction order must match
// vanilla exactly for downstream values to line up.
type Octave struct {
	layers []*Perlin
}

// NewOctave builds an Octave stack of n Perlin generators from r.
func NewOctave(r *Random, n int) *Octave {
	o := &Octave{layers: make([]*Perlin, n)}
	for i := range o.layers {
		o.layers[i] = NewPerlin(r)
	}
	return o
}

// Sample3D accumulates noise_i(x*f, y*f, z*f)/f over every octave, where f
// doubles each octave starting at 1. All three coordinates are scaled
// alike; Sample3DYScale gives y a separate scale.
func (o *Octave) Sample3D(x, y, z float64) float64 {
	var result float64
	freq := 1.0
	for _, p := range o.layers {
		result += p.Sample3D(x*freq, y*freq, z*freq) / freq
		freq *= 2
	}
	return result
}

// Sample3DYScale samples as Sample3D does, but scales the y coordinate by a
// separate factor per octave before division — the shape vanilla's terrain
// "main" noise uses, where vertical frequency does not simply track
// horizontal frequency.
func (o *Octave) Sample3DYScale(x, y, z, yScale, yMax float64) float64 {
	var result float64
	freq := 1.0
	for _, p := range o.layers {
		fx, fz := x*freq, z*freq
		fy := y*freq*yScale
		ySample := fy
		if yMax > 0 {
			clampMax := yMax * freq
			if ySample > clampMax {
				ySample = clampMax
			}
		}
		result += p.Sample3D(fx, ySample, fz) / freq
		freq *= 2
	}
	return result
}

// Sample2D evaluates the stack at y=0, used for the 2D surface/detail
// noises.
func (o *Octave) Sample2D(x, z float64) float64 { return o.Sample3D(x, 0, z) }

// Fill3D evaluates Sample3D over a lattice of (nx, ny, nz) points starting
// at (x0, y0, z0) with spacing (dx, dy, dz), writing results into out in
// x-major, then z, then y order (matching vanilla's noise array layout used
// by the terrain generator's lattice fill). out must have length nx*ny*nz.
func (o *Octave) Fill3D(out []float64, x0, y0, z0 float64, nx, ny, nz int, dx, dy, dz float64) {
	idx := 0
	for ix := 0; ix < nx; ix++ {
		x := x0 + float64(ix)*dx
		for iz := 0; iz < nz; iz++ {
			z := z0 + float64(iz)*dz
			for iy := 0; iy < ny; iy++ {
				y := y0 + float64(iy)*dy
				out[idx] = o.Sample3D(x, y, z)
				idx++
			}
		}
	}
}
