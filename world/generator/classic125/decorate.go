package classic125

import (
	"github.com/oldstone-mc/vanilla125/world"
	"github.com/oldstone-mc/vanilla125/world/rand"
)

// decorationSalt is folded into the per-chunk decoration seed so each
// feature kind (ore, tall grass, sugar cane, trees, lakes) draws from an
// independent section of the chunk's PRNG stream, using the legacy LCG
// instead of math/rand so placement is reproducible for a given seed.
type decorationSalt int64

const (
	saltTrees      decorationSalt = 1
	saltTallGrass  decorationSalt = 2
	saltSugarCane  decorationSalt = 3
	saltOre        decorationSalt = 4
	saltWaterLakes decorationSalt = 5
	saltLavaLakes  decorationSalt = 6
)

// oreType describes one vein kind: the block to place, the host block it
// may replace, how many veins per chunk, how large each vein is, and the
// y-range it can appear in.
type oreType struct {
	ore        *world.BlockType
	host       *world.BlockType
	veins      int
	veinSize   int
	minY, maxY int
}

var vanillaOres = []oreType{
	{world.Dirt, world.Stone, 20, 32, 0, 128},
	{world.Gravel, world.Stone, 10, 16, 0, 128},
	{world.CoalOre, world.Stone, 20, 16, 0, 128},
	{world.IronOre, world.Stone, 20, 8, 0, 64},
	{world.GoldOre, world.Stone, 2, 8, 0, 32},
	{world.RedstoneOre, world.Stone, 8, 7, 0, 16},
	{world.DiamondOre, world.Stone, 1, 7, 0, 16},
	{world.LapisOre, world.Stone, 1, 6, 0, 32},
}

// Decorator runs the post-surface population pass: once a chunk has reached
// SurfaceApplied, it seeds one Random per feature kind from
// (worldSeed, cx, cz, salt) and places ore veins, trees, tall grass and
// sugar cane, then advances the chunk to Populated and Full. Features are
// confined to the target chunk's own 16x16 column range, so unlike vanilla's
// neighbor-straddling decoration this pass never reads or mutates a
// neighboring chunk.
type Decorator struct {
	env       *world.Environment
	worldSeed int64

	rids map[*world.BlockType]world.RuntimeIndex
}

// NewDecorator constructs a decorator bound to env and worldSeed.
func NewDecorator(env *world.Environment, worldSeed int64) *Decorator {
	d := &Decorator{env: env, worldSeed: worldSeed, rids: make(map[*world.BlockType]world.RuntimeIndex)}
	for _, b := range []*world.BlockType{
		world.Stone, world.Dirt, world.Gravel, world.CoalOre, world.IronOre,
		world.GoldOre, world.RedstoneOre, world.DiamondOre, world.LapisOre,
		world.OakLog, world.OakLeaves, world.TallGrass, world.SugarCane, world.Grass, world.Sand,
		world.Water, world.Lava,
	} {
		if idx, ok := env.Blocks.IndexOf(b); ok {
			d.rids[b] = idx
		}
	}
	return d
}

func (d *Decorator) rngFor(cx, cz int32, salt decorationSalt) *rand.Random {
	seed := d.worldSeed
	seed = seed*6364136223846793005 + int64(cx)
	seed = seed*6364136223846793005 + int64(cz)
	seed ^= int64(salt) * 0x9E3779B97F4A7C15
	return rand.New(seed)
}

// Decorate runs every feature pass over c and advances its status to Full.
// c must have reached SurfaceApplied but not yet Populated.
func (d *Decorator) Decorate(c *world.Chunk, cx, cz int32) error {
	if err := c.RequireStatus(world.Populated); err != nil {
		return err
	}
	d.placeOres(c, cx, cz)
	d.placeTallGrass(c, cx, cz)
	d.placeSugarCane(c, cx, cz)
	d.placeTrees(c, cx, cz)
	d.placeLakes(c, cx, cz)

	if err := c.Advance(world.Populated); err != nil {
		return err
	}
	return c.Advance(world.Full)
}

func (d *Decorator) highestSolid(c *world.Chunk, x, z uint8, airRID world.RuntimeIndex) int16 {
	for y := int16(world.ChunkHeight - 1); y > 0; y-- {
		rid, err := c.Block(x, y, z)
		if err != nil {
			return -1
		}
		if rid != airRID {
			return y
		}
	}
	return -1
}

func (d *Decorator) placeOres(c *world.Chunk, cx, cz int32) {
	r := d.rngFor(cx, cz, saltOre)
	stoneRID := d.rids[world.Stone]
	for _, ore := range vanillaOres {
		oreRID, ok := d.rids[ore.ore]
		if !ok {
			continue
		}
		for v := 0; v < ore.veins; v++ {
			ox := uint8(r.NextIntN(16))
			oz := uint8(r.NextIntN(16))
			spread := ore.maxY - ore.minY
			if spread <= 0 {
				spread = 1
			}
			oy := int16(ore.minY + int(r.NextIntN(int32(spread))))
			for n := 0; n < ore.veinSize; n++ {
				dx := uint8((int(ox) + int(r.NextIntN(3)) - 1) & 0xF)
				dz := uint8((int(oz) + int(r.NextIntN(3)) - 1) & 0xF)
				dy := oy + int16(r.NextIntN(3)) - 1
				if dy < 0 || int(dy) >= world.ChunkHeight {
					continue
				}
				rid, err := c.Block(dx, dy, dz)
				if err != nil || rid != stoneRID {
					continue
				}
				_ = c.SetBlock(dx, dy, dz, oreRID)
			}
		}
	}
}

func (d *Decorator) placeTallGrass(c *world.Chunk, cx, cz int32) {
	r := d.rngFor(cx, cz, saltTallGrass)
	grassRID, okG := d.rids[world.Grass]
	tallGrassRID, okT := d.rids[world.TallGrass]
	airRID := d.env.AirIndex
	if !okG || !okT {
		return
	}
	amount := 12 + int(r.NextIntN(4))
	for i := 0; i < amount; i++ {
		x := uint8(r.NextIntN(16))
		z := uint8(r.NextIntN(16))
		y := d.highestSolid(c, x, z, airRID)
		if y < 0 || y+1 >= world.ChunkHeight {
			continue
		}
		below, err := c.Block(x, y, z)
		if err != nil || below != grassRID {
			continue
		}
		_ = c.SetBlock(x, y+1, z, tallGrassRID)
	}
}

func (d *Decorator) placeSugarCane(c *world.Chunk, cx, cz int32) {
	r := d.rngFor(cx, cz, saltSugarCane)
	caneRID, ok := d.rids[world.SugarCane]
	airRID := d.env.AirIndex
	if !ok {
		return
	}
	amount := int(r.NextIntN(3))
	for i := 0; i < amount; i++ {
		x := uint8(r.NextIntN(16))
		z := uint8(r.NextIntN(16))
		y := d.highestSolid(c, x, z, airRID)
		if y < 0 || int(y) > SeaLevel+2 || y+1 >= world.ChunkHeight {
			continue
		}
		height := 1 + int(r.NextIntN(3))
		for h := 0; h < height; h++ {
			if int(y)+1+h >= world.ChunkHeight {
				break
			}
			_ = c.SetBlock(x, y+1+int16(h), z, caneRID)
		}
	}
}

func (d *Decorator) placeTrees(c *world.Chunk, cx, cz int32) {
	r := d.rngFor(cx, cz, saltTrees)
	logRID, okL := d.rids[world.OakLog]
	leavesRID, okLeaf := d.rids[world.OakLeaves]
	grassRID, okG := d.rids[world.Grass]
	airRID := d.env.AirIndex
	if !okL || !okLeaf || !okG {
		return
	}

	count := int(r.NextIntN(3))
	for i := 0; i < count; i++ {
		x := uint8(4 + r.NextIntN(8))
		z := uint8(4 + r.NextIntN(8))
		y := d.highestSolid(c, x, z, airRID)
		if y < 0 || y+6 >= world.ChunkHeight {
			continue
		}
		below, err := c.Block(x, y, z)
		if err != nil || below != grassRID {
			continue
		}
		d.placeTree(c, x, y+1, z, 4+int16(r.NextIntN(3)), logRID, leavesRID)
	}
}

func (d *Decorator) placeTree(c *world.Chunk, x uint8, baseY int16, z uint8, height int16, logRID, leavesRID world.RuntimeIndex) {
	for h := int16(0); h < height; h++ {
		y := baseY + h
		if int(y) >= world.ChunkHeight {
			return
		}
		_ = c.SetBlock(x, y, z, logRID)
	}
	top := baseY + height
	for dy := int16(-2); dy <= 1; dy++ {
		y := top + dy
		if y < 0 || int(y) >= world.ChunkHeight {
			continue
		}
		radius := uint8(2)
		if dy >= 0 {
			radius = 1
		}
		for dx := -int(radius); dx <= int(radius); dx++ {
			for dz := -int(radius); dz <= int(radius); dz++ {
				if dx == 0 && dz == 0 && dy < 1 {
					continue
				}
				lx, lz := int(x)+dx, int(z)+dz
				if lx < 0 || lx >= 16 || lz < 0 || lz >= 16 {
					continue
				}
				existing, err := c.Block(uint8(lx), y, uint8(lz))
				if err != nil || existing == logRID {
					continue
				}
				_ = c.SetBlock(uint8(lx), y, uint8(lz), leavesRID)
			}
		}
	}
}

// placeLakes occasionally hollows a small flattened-ellipsoid lake out of
// solid stone and fills its lower half with liquid, once for water and once
// for lava, each gated by an independent chance roll.
func (d *Decorator) placeLakes(c *world.Chunk, cx, cz int32) {
	d.placeLake(c, cx, cz, saltWaterLakes, 4, world.Water, SeaLevel)
	d.placeLake(c, cx, cz, saltLavaLakes, 8, world.Lava, SeaLevel-10)
}

func (d *Decorator) placeLake(c *world.Chunk, cx, cz int32, salt decorationSalt, chance int, liquid *world.BlockType, maxY int) {
	r := d.rngFor(cx, cz, salt)
	if r.NextIntN(int32(chance)) != 0 {
		return
	}
	liquidRID, okLiquid := d.rids[liquid]
	stoneRID, okStone := d.rids[world.Stone]
	dirtRID, okDirt := d.rids[world.Dirt]
	if !okLiquid || !okStone {
		return
	}
	if maxY < 12 {
		maxY = 12
	}

	lx := 4 + int(r.NextIntN(8))
	lz := 4 + int(r.NextIntN(8))
	ly := 4 + int(r.NextIntN(int32(maxY-4)))
	hRadius := 3 + int(r.NextIntN(3))
	vRadius := 2 + int(r.NextIntN(2))

	for dx := -hRadius; dx <= hRadius; dx++ {
		x := lx + dx
		if x < 0 || x >= 16 {
			continue
		}
		nx := float64(dx) / float64(hRadius)
		for dz := -hRadius; dz <= hRadius; dz++ {
			z := lz + dz
			if z < 0 || z >= 16 {
				continue
			}
			nz := float64(dz) / float64(hRadius)
			if nx*nx+nz*nz >= 1.0 {
				continue
			}
			for dy := -vRadius; dy <= vRadius; dy++ {
				y := ly + dy
				if y < 1 || y >= world.ChunkHeight {
					continue
				}
				ny := float64(dy) / float64(vRadius)
				if nx*nx+ny*ny+nz*nz >= 1.0 {
					continue
				}
				rid, err := c.Block(uint8(x), int16(y), uint8(z))
				if err != nil || rid != stoneRID {
					continue
				}
				switch {
				case dy == -vRadius && okDirt:
					_ = c.SetBlock(uint8(x), int16(y), uint8(z), dirtRID)
				case dy <= 0:
					_ = c.SetBlock(uint8(x), int16(y), uint8(z), liquidRID)
				default:
					_ = c.SetBlock(uint8(x), int16(y), uint8(z), d.env.AirIndex)
				}
			}
		}
	}
}
