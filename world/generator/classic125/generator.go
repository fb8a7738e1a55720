// Package classic125 implements vanilla Minecraft 1.2.5's terrain, biome and
// ravine generation algorithms. Output is deterministic for a given world
// seed but is not bit-identical to vanilla's: the biome layer chain carries
// a single biome-id grid through every stage, and column weighting uses a
// Gaussian kernel.
package classic125

import "github.com/oldstone-mc/vanilla125/world"

// Generator wires the biome layer stack, terrain density field, ravine
// carver and decoration pass into the single world.Generator entry point a
// Level calls on a cache miss.
type Generator struct {
	seed int64

	biomes    *BiomeStack
	terrain   *Terrain
	ravine    *Ravine
	decorator *Decorator
}

// NewGenerator builds a Generator for worldSeed against env. Building the
// noise fields is expensive (each Octave constructs its per-octave Perlin
// tables up front), so a Generator is meant to be built once and reused
// across every chunk in a world.
func NewGenerator(env *world.Environment, worldSeed int64) *Generator {
	biomes := NewBiomeStack(worldSeed)
	return &Generator{
		seed:      worldSeed,
		biomes:    biomes,
		terrain:   NewTerrain(env, biomes, worldSeed),
		ravine:    NewRavine(env, worldSeed),
		decorator: NewDecorator(env, worldSeed),
	}
}

// GenerateChunk implements world.Generator. It drives a freshly created
// chunk at pos through every generation stage in order, matching the
// monotonic Status progression world.Chunk enforces.
func (g *Generator) GenerateChunk(env *world.Environment, pos world.ChunkPos) (*world.Chunk, error) {
	c := world.NewChunk(env, pos)
	cx, cz := pos.X(), pos.Z()

	if err := g.generateBiomes(c, cx, cz); err != nil {
		return nil, err
	}
	if err := g.terrain.GenerateTerrain(c, cx, cz); err != nil {
		return nil, err
	}
	if err := g.ravine.Carve(c, cx, cz); err != nil {
		return nil, err
	}
	if err := g.terrain.ApplySurface(c, cx, cz); err != nil {
		return nil, err
	}
	if err := g.decorator.Decorate(c, cx, cz); err != nil {
		return nil, err
	}

	c.MarkHeightmapsDirty(env.Heightmaps...)
	if err := c.RecomputeHeightmaps(env.Heightmaps); err != nil {
		return nil, err
	}
	c.CompactPalette()
	return c, nil
}

// generateBiomes samples the scale-1 biome grid for (cx, cz) and writes it
// into c's biome array, translating legacy layer ids to registered runtime
// indices via BiomeForLegacyID.
func (g *Generator) generateBiomes(c *world.Chunk, cx, cz int32) error {
	if err := c.RequireStatus(world.BiomesGenerated); err != nil {
		return err
	}
	grid := g.biomes.ChunkGrid16(cx, cz)
	for z := uint8(0); z < world.ChunkWidth; z++ {
		for x := uint8(0); x < world.ChunkWidth; x++ {
			legacyID := grid[int(z)*16+int(x)]
			biome := BiomeForLegacyID(legacyID)
			idx, ok := c.Environment().Biomes.IndexOf(biome)
			if !ok {
				idx = c.Environment().Biomes.MustRegister(biome)
			}
			if err := c.SetBiome(x, z, idx); err != nil {
				return err
			}
		}
	}
	return c.Advance(world.BiomesGenerated)
}
