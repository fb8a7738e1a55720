// Package rand implements the legacy 48-bit linear congruential generator
// that drives every deterministic derivation in the 1.2.5 generator (PRNG
// seeding, Perlin permutation tables, ravine walks, decoration), plus the
// noise generators built on top of it; the biome layer chain derives its
// cell seeds with its own arithmetic instead. It is
// deliberately independent of math/rand: vanilla's output sequence must be
// reproduced bit-for-bit, which a different generator algorithm cannot do
// no matter how it is seeded.
package rand

import "math"

const (
	multiplier int64 = 0x5DEECE66D
	increment  int64 = 0xB
	mask       int64 = (1 << 48) - 1
)

// Random is java.util.Random's 48-bit LCG. The zero value is not usable;
// construct with New.
type Random struct {
	seed int64

	haveNextGaussian bool
	nextGaussian     float64
}

// New creates a Random seeded the same way java.util.Random is: the seed is
// scrambled with the multiplier before first use.
func New(seed int64) *Random {
	r := &Random{}
	r.SetSeed(seed)
	return r
}

// SetSeed re-seeds r, matching java.util.Random.setSeed and clearing the
// cached Gaussian value.
func (r *Random) SetSeed(seed int64) {
	r.seed = (seed ^ multiplier) & mask
	r.haveNextGaussian = false
}

// Next advances the generator state and returns the top `bits` bits of the
// new state.
func (r *Random) Next(bits uint) int32 {
	r.seed = (r.seed*multiplier + increment) & mask
	return int32(r.seed >> (48 - bits))
}

// NextInt returns a uniformly distributed signed 32-bit integer.
func (r *Random) NextInt() int32 { return r.Next(32) }

// NextIntN returns a uniformly distributed integer in [0, bound), matching
// java.util.Random.nextInt(int) including its power-of-two fast path and
// rejection sampling for non-powers-of-two.
func (r *Random) NextIntN(bound int32) int32 {
	if bound <= 0 {
		panic("rand: bound must be positive")
	}
	if bound&(bound-1) == 0 {
		return int32((int64(bound) * int64(r.Next(31))) >> 31)
	}
	var bits, val int32
	for {
		bits = r.Next(31)
		val = bits % bound
		if bits-val+(bound-1) >= 0 {
			break
		}
	}
	return val
}

// NextLong returns a uniformly distributed signed 64-bit integer, combining
// two Next(32) draws as high/low halves.
func (r *Random) NextLong() int64 {
	hi := int64(r.Next(32))
	lo := int64(r.Next(32))
	return (hi << 32) + lo
}

// NextFloat returns a uniformly distributed float32 in [0, 1).
func (r *Random) NextFloat() float32 {
	return float32(r.Next(24)) / float32(1<<24)
}

// NextDouble returns a uniformly distributed float64 in [0, 1), combining
// two draws the way java.util.Random.nextDouble does.
func (r *Random) NextDouble() float64 {
	hi := int64(r.Next(26))
	lo := int64(r.Next(27))
	return float64((hi<<27)+lo) / float64(int64(1)<<53)
}

// NextGaussian returns a standard-normal sample using the polar Box-Muller
// transform, caching the second value of each generated pair exactly as
// java.util.Random does.
func (r *Random) NextGaussian() float64 {
	if r.haveNextGaussian {
		r.haveNextGaussian = false
		return r.nextGaussian
	}
	var v1, v2, s float64
	for {
		v1 = 2*r.NextDouble() - 1
		v2 = 2*r.NextDouble() - 1
		s = v1*v1 + v2*v2
		if s != 0 && s < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(s) / s)
	r.nextGaussian = v2 * mul
	r.haveNextGaussian = true
	return v1 * mul
}
