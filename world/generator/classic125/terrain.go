package classic125

import (
	"github.com/oldstone-mc/vanilla125/world"
	"github.com/oldstone-mc/vanilla125/world/rand"
)

// SeaLevel is vanilla 1.2.5's fixed water line.
const SeaLevel = 62

// lattice dimensions: 5×17×5 points spaced 4 blocks horizontally and
// 8 blocks vertically, covering y ∈ [0, 128].
const (
	latticeX   = 5
	latticeY   = 17
	latticeZ   = 5
	cellSizeXZ = 4
	cellSizeY  = 8
	terrainMaxY = 128
)

// gaussianKernel is the 5×5 weighting kernel used when blending a column's
// neighbor biomes: entry [dz+2][dx+2] is 4·exp(-(dx²+dz²)/8).
var gaussianKernel = [5][5]float64{
	{1.4715177646858, 2.141045714076, 2.4261226388505, 2.141045714076, 1.4715177646858},
	{2.141045714076, 3.1152031322856, 3.5299876103384, 3.1152031322856, 2.141045714076},
	{2.4261226388505, 3.5299876103384, 4, 3.5299876103384, 2.4261226388505},
	{2.141045714076, 3.1152031322856, 3.5299876103384, 3.1152031322856, 2.141045714076},
	{1.4715177646858, 2.141045714076, 2.4261226388505, 2.141045714076, 1.4715177646858},
}

// Terrain builds the density field and surface pass of the 1.2.5 generator.
// Its six octave-Perlin fields are constructed once, in a
// fixed order, directly against the world seed's LCG stream: the octave
// counts (16/16/8/10/16/4) follow vanilla's ChunkProviderGenerate
// construction order. The ravine carver does not share this stream; it
// seeds its own generators.
type Terrain struct {
	env    *world.Environment
	biomes *BiomeStack

	minLimit *rand.Octave
	maxLimit *rand.Octave
	main     *rand.Octave
	scale    *rand.Octave
	depth    *rand.Octave
	surface  *rand.Octave

	airRID, stoneRID, waterRID world.RuntimeIndex
}

// NewTerrain constructs the terrain generator's noise fields from seed, in
// the fixed vanilla construction order.
func NewTerrain(env *world.Environment, biomes *BiomeStack, seed int64) *Terrain {
	r := rand.New(seed)
	t := &Terrain{
		env:      env,
		biomes:   biomes,
		minLimit: rand.NewOctave(r, 16),
		maxLimit: rand.NewOctave(r, 16),
		main:     rand.NewOctave(r, 8),
		scale:    rand.NewOctave(r, 10),
		depth:    rand.NewOctave(r, 16),
		surface:  rand.NewOctave(r, 4),
	}
	t.airRID = env.AirIndex
	t.stoneRID, _ = env.Blocks.IndexOf(world.Stone)
	t.waterRID, _ = env.Blocks.IndexOf(world.Water)
	return t
}

// columnParams is the per-lattice-column weighted height/variation plus the
// centre scale-4 biome. The surface pass does not use this biome; it reads
// the per-column scale-1 biome instead.
type columnParams struct {
	baseHeight      float64
	heightVariation float64
	biome           *world.BiomeType
}

func (t *Terrain) columnParamsAt(wx, wz int32) columnParams {
	window := t.biomes.Scale4Window5x5(wx, wz)

	var heightSum, varSum, weightSum float64
	for dx := 0; dx < 5; dx++ {
		for dz := 0; dz < 5; dz++ {
			b := BiomeForLegacyID(window[dx][dz])
			weight := gaussianKernel[dx][dz] / (b.BaseHeight() + 2.0)
			if weight < 0 {
				weight = 1.0e-4 / (b.BaseHeight() + 2.0)
			}
			heightSum += b.BaseHeight() * weight
			varSum += b.HeightVariation() * weight
			weightSum += weight
		}
	}
	center := BiomeForLegacyID(t.biomes.scale4.Sample(wx, wz, 1, 1)[0])

	baseHeight := heightSum/weightSum*0.9 + 0.1
	heightVar := varSum / weightSum

	return columnParams{baseHeight: baseHeight, heightVariation: heightVar, biome: center}
}

// densityLattice holds the 5×17×5 density field for one chunk, plus the
// column parameters it was built from (reused by the surface pass).
type densityLattice struct {
	density [latticeX][latticeY][latticeZ]float64
	columns [latticeX][latticeZ]columnParams
}

func (t *Terrain) buildLattice(cx, cz int32) *densityLattice {
	l := &densityLattice{}
	for ix := 0; ix < latticeX; ix++ {
		for iz := 0; iz < latticeZ; iz++ {
			wx := cx*16 + int32(ix*cellSizeXZ)
			wz := cz*16 + int32(iz*cellSizeXZ)
			l.columns[ix][iz] = t.columnParamsAt(wx, wz)
		}
	}

	const coordScale = 684.412
	const heightScale = 684.412
	for ix := 0; ix < latticeX; ix++ {
		wx := float64(cx*16) + float64(ix*cellSizeXZ)
		for iz := 0; iz < latticeZ; iz++ {
			wz := float64(cz*16) + float64(iz*cellSizeXZ)
			col := l.columns[ix][iz]

			depthNoise := t.depth.Sample2D(wx/200, wz/200) * 8
			if depthNoise < 0 {
				depthNoise *= 0.3
			}
			baseHeight := col.baseHeight*17.0/16.0 + 4 + depthNoise*0.2
			heightVar := col.heightVariation

			for iy := 0; iy < latticeY; iy++ {
				wy := float64(iy * cellSizeY)

				min := t.minLimit.Sample3D(wx/coordScale, wy/heightScale, wz/coordScale) / 512
				max := t.maxLimit.Sample3D(wx/coordScale, wy/heightScale, wz/coordScale) / 512
				main := t.main.Sample3D(wx/(coordScale/80), wy/(heightScale/160), wz/(coordScale/80)) / 10

				mainClamped := clamp01((main+1)/2)
				density := lerp(mainClamped, min, max)

				heightAdj := baseHeight - wy/8.0*(1.0+heightVar*0.01)
				density += heightAdj

				if wy > baseHeight+heightVar*8 {
					falloff := (wy - (baseHeight + heightVar*8)) * 0.2
					density -= falloff
				}

				l.density[ix][iy][iz] = density
			}
		}
	}
	return l
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

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// GenerateTerrain fills c's blocks from the density field built from
// cx, cz. c must not already be past TerrainGenerated.
func (t *Terrain) GenerateTerrain(c *world.Chunk, cx, cz int32) error {
	if err := c.RequireStatus(world.TerrainGenerated); err != nil {
		return err
	}
	lattice := t.buildLattice(cx, cz)

	for lx := 0; lx < latticeX-1; lx++ {
		for lz := 0; lz < latticeZ-1; lz++ {
			for ly := 0; ly < latticeY-1; ly++ {
				c000 := lattice.density[lx][ly][lz]
				c100 := lattice.density[lx+1][ly][lz]
				c010 := lattice.density[lx][ly][lz+1]
				c110 := lattice.density[lx+1][ly][lz+1]
				c001 := lattice.density[lx][ly+1][lz]
				c101 := lattice.density[lx+1][ly+1][lz]
				c011 := lattice.density[lx][ly+1][lz+1]
				c111 := lattice.density[lx+1][ly+1][lz+1]

				for by := 0; by < cellSizeY; by++ {
					fy := float64(by) / cellSizeY
					d00 := lerp(fy, c000, c001)
					d10 := lerp(fy, c100, c101)
					d01 := lerp(fy, c010, c011)
					d11 := lerp(fy, c110, c111)
					y := int16(ly*cellSizeY + by)
					if int(y) >= world.ChunkHeight {
						continue
					}
					for bx := 0; bx < cellSizeXZ; bx++ {
						fx := float64(bx) / cellSizeXZ
						d0 := lerp(fx, d00, d10)
						d1 := lerp(fx, d01, d11)
						for bz := 0; bz < cellSizeXZ; bz++ {
							fz := float64(bz) / cellSizeXZ
							density := lerp(fz, d0, d1)

							x := uint8(lx*cellSizeXZ + bx)
							z := uint8(lz*cellSizeXZ + bz)

							var rid world.RuntimeIndex
							switch {
							case density > 0:
								rid = t.stoneRID
							case y <= SeaLevel:
								rid = t.waterRID
							default:
								rid = t.airRID
							}
							if err := c.SetBlock(x, y, z, rid); err != nil {
								return err
							}
						}
					}
				}
			}
		}
	}
	return c.Advance(world.TerrainGenerated)
}

// ApplySurface walks each column top-down replacing the first solid blocks
// found with the surface/filler blocks of that column's biome, taken from
// the BiomeStack's scale-1 chunk grid.
func (t *Terrain) ApplySurface(c *world.Chunk, cx, cz int32) error {
	if err := c.RequireStatus(world.SurfaceApplied); err != nil {
		return err
	}

	for x := uint8(0); x < world.ChunkWidth; x++ {
		for z := uint8(0); z < world.ChunkWidth; z++ {
			wx := float64(cx)*16 + float64(x)
			wz := float64(cz)*16 + float64(z)

			biomeID := t.biomes.ChunkGrid16(cx, cz)[int(z)*16+int(x)]
			biome := BiomeForLegacyID(biomeID)
			if err := t.applySurfaceColumn(c, x, z, wx, wz, biome); err != nil {
				return err
			}
		}
	}
	return c.Advance(world.SurfaceApplied)
}

func (t *Terrain) applySurfaceColumn(c *world.Chunk, x, z uint8, wx, wz float64, biome *world.BiomeType) error {
	surfaceRID, _ := t.env.Blocks.IndexOf(biome.Surface())
	fillerRID, _ := t.env.Blocks.IndexOf(biome.Filler())
	sandRID, _ := t.env.Blocks.IndexOf(world.Sand)

	noise := t.surface.Sample2D(wx*0.0625, wz*0.0625)
	depth := int(noise/3.0+3.0+float64(biome.MaxDepth()%4)) + 1

	remaining := -1
	for y := int16(world.ChunkHeight - 1); y >= 0; y-- {
		rid, err := c.Block(x, y, z)
		if err != nil {
			return err
		}
		isAir := rid == t.airRID
		isWater := rid == t.waterRID

		switch {
		case isAir:
			remaining = -1
		case isWater && remaining == -1:
			// still above the surface; keep scanning down for stone.
		case remaining == -1 && rid == t.stoneRID:
			remaining = depth
			place := surfaceRID
			if y < SeaLevel-1 {
				place = fillerRID
			}
			if y >= SeaLevel-2 && y <= SeaLevel+1 && biome == world.Beach {
				place = sandRID
			}
			if err := c.SetBlock(x, y, z, place); err != nil {
				return err
			}
			remaining--
		case remaining > 0:
			if err := c.SetBlock(x, y, z, fillerRID); err != nil {
				return err
			}
			remaining--
		}
	}
	return nil
}
