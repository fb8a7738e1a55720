// Package classic125 implements the vanilla 1.2.5 world generation
// pipeline: the biome layer stack, the terrain generator, the ravine carver
// and the post-surface decoration pass, each a self-contained,
// seed-driven component wired together by Generator.
package classic125

// Layer is a single stage of the biome layer chain. Layers
// compose by sampling a parent layer over a shifted, scaled window and
// applying their own per-cell mutation; Sample is the only method a
// composed chain needs to expose upward.
type Layer interface {
	// Sample returns a w*h grid of legacy biome ids (row-major, x-major
	// within a row) covering the area starting at world coordinate (x, z)
	// at this layer's resolution.
	Sample(x, z, w, h int32) []uint8
}

// LayerFunc adapts a plain function to the Layer interface.
type LayerFunc func(x, z, w, h int32) []uint8

func (f LayerFunc) Sample(x, z, w, h int32) []uint8 { return f(x, z, w, h) }

// seededLayer is the common base every concrete layer embeds: it owns the
// per-layer base seed (world seed mixed with a fixed salt) and the
// per-call cell-seed/next-int machinery vanilla's layer chain uses.
type seededLayer struct {
	baseSeed int64
	// worldSeed is the world seed the layer was built from; the per-cell
	// state is derived from baseSeed alone.
	worldSeed int64
	state     int64
}

// newSeededLayer derives a layer's base seed from the world seed and a fixed
// per-layer salt.
func newSeededLayer(worldSeed, salt int64) *seededLayer {
	l := &seededLayer{worldSeed: worldSeed}
	l.baseSeed = salt
	l.baseSeed = l.baseSeed*6364136223846793005 + 1442695040888963407
	l.baseSeed += worldSeed
	l.baseSeed = l.baseSeed*6364136223846793005 + 1442695040888963407
	l.baseSeed += worldSeed
	l.baseSeed = l.baseSeed*6364136223846793005 + 1442695040888963407
	l.baseSeed += worldSeed
	return l
}

// initCellSeed derives the per-cell state for world coordinate (wx, wz):
// initialize with base_seed, fold in wx, fold in wz, then fold in base_seed
// twice more.
func (l *seededLayer) initCellSeed(wx, wz int64) {
	cs := l.baseSeed
	cs = cs*6364136223846793005 + wx
	cs = cs*6364136223846793005 + wz
	cs = cs*6364136223846793005 + l.baseSeed
	cs = cs*6364136223846793005 + l.baseSeed
	l.state = cs
}

// nextInt draws a bounded integer from the current cell state and advances
// it: next_int(n) is floor((state >>> 24) mod n), after which state
// advances as state*a + b with the base seed.
func (l *seededLayer) nextInt(n int32) int32 {
	v := int32(uint64(l.state)>>24) % n
	if v < 0 {
		v += n
	}
	l.state = l.state*6364136223846793005 + l.baseSeed
	return v
}

// choose picks one of the up to four candidate values uniformly using
// nextInt(len(candidates)).
func (l *seededLayer) choose(candidates ...uint8) uint8 {
	return candidates[l.nextInt(int32(len(candidates)))]
}
