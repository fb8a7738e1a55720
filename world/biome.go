package world

// BiomeType is a statically defined biome descriptor. Like
// BlockType, identity is by pointer.
type BiomeType struct {
	name        string
	legacyID    uint8
	temperature float64
	rainfall    float64
	surface     *BlockType
	filler      *BlockType
	maxDepth    int
	// baseHeight and heightVariation parameterise the terrain generator's
	// column weighting; they are vanilla 1.2.5's per-biome
	// height/height-variation pair, not derived at runtime.
	baseHeight      float64
	heightVariation float64
}

func (b *BiomeType) Name() string { return b.name }

func (b *BiomeType) legacyKey() (id uint16, meta uint8, ok bool) {
	return uint16(b.legacyID), 0, true
}

func (b *BiomeType) Temperature() float64      { return b.temperature }
func (b *BiomeType) Rainfall() float64         { return b.rainfall }
func (b *BiomeType) Surface() *BlockType       { return b.surface }
func (b *BiomeType) Filler() *BlockType        { return b.filler }
func (b *BiomeType) MaxDepth() int             { return b.maxDepth }
func (b *BiomeType) BaseHeight() float64       { return b.baseHeight }
func (b *BiomeType) HeightVariation() float64  { return b.heightVariation }
func (b *BiomeType) LegacyID() uint8           { return b.legacyID }

func newBiome(name string, id uint8, temp, rain, baseHeight, heightVar float64, surface, filler *BlockType) *BiomeType {
	return &BiomeType{
		name: name, legacyID: id, temperature: temp, rainfall: rain,
		baseHeight: baseHeight, heightVariation: heightVar,
		surface: surface, filler: filler, maxDepth: 4,
	}
}

// The 1.2.5 overworld biome table, with vanilla legacy ids and the
// base-height/height-variation pair the terrain generator blends. Values
// are taken from vanilla's BiomeGenBase table.
var (
	Ocean          = newBiome("minecraft:ocean", 0, 0.5, 0.5, -1.0, 0.4, Sand, Sand)
	Plains         = newBiome("minecraft:plains", 1, 0.8, 0.4, 0.1, 0.3, Grass, Dirt)
	Desert         = newBiome("minecraft:desert", 2, 2.0, 0.0, 0.1, 0.2, Sand, Sand)
	ExtremeHills   = newBiome("minecraft:extreme_hills", 3, 0.2, 0.3, 1.0, 0.5, Grass, Dirt)
	Forest         = newBiome("minecraft:forest", 4, 0.7, 0.8, 0.1, 0.3, Grass, Dirt)
	Taiga          = newBiome("minecraft:taiga", 5, 0.05, 0.8, 0.1, 0.3, Grass, Dirt)
	Swampland      = newBiome("minecraft:swampland", 6, 0.8, 0.9, -0.2, 0.1, Grass, Dirt)
	River          = newBiome("minecraft:river", 7, 0.5, 0.5, -0.5, 0.0, Grass, Dirt)
	FrozenOcean    = newBiome("minecraft:frozen_ocean", 10, 0.0, 0.5, -1.0, 0.4, Sand, Sand)
	FrozenRiver    = newBiome("minecraft:frozen_river", 11, 0.0, 0.5, -0.5, 0.0, Grass, Dirt)
	IcePlains      = newBiome("minecraft:ice_flats", 12, 0.0, 0.5, 0.1, 0.3, Grass, Dirt)
	IceMountains   = newBiome("minecraft:ice_mountains", 13, 0.0, 0.5, 0.45, 0.3, Grass, Dirt)
	MushroomIsland = newBiome("minecraft:mushroom_fields", 14, 0.9, 1.0, 0.2, 0.3, Grass, Dirt)
	Beach          = newBiome("minecraft:beach", 16, 0.8, 0.4, 0.0, 0.025, Sand, Sand)
	DesertHills    = newBiome("minecraft:desert_hills", 17, 2.0, 0.0, 0.45, 0.3, Sand, Sand)
	ForestHills    = newBiome("minecraft:forest_hills", 18, 0.7, 0.8, 0.45, 0.3, Grass, Dirt)
	TaigaHills     = newBiome("minecraft:taiga_hills", 19, 0.05, 0.8, 0.45, 0.3, Grass, Dirt)
	ExtremeHillsEdge = newBiome("minecraft:smaller_extreme_hills", 20, 0.2, 0.3, 0.575, 0.5, Grass, Dirt)
)

// RegisterVanillaBiomes registers the 1.2.5 overworld biome table into r.
func RegisterVanillaBiomes(r *Registry[*BiomeType]) error {
	for _, b := range []*BiomeType{
		Ocean, Plains, Desert, ExtremeHills, Forest, Taiga, Swampland, River,
		FrozenOcean, FrozenRiver, IcePlains, IceMountains, MushroomIsland,
		Beach, DesertHills, ForestHills, TaigaHills, ExtremeHillsEdge,
	} {
		if _, err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}
