package world

// BlockType is a statically defined block descriptor. 1.2.5 predates block
// states, so a BlockType plus 4 bits of legacy metadata fully describes a
// block. BlockType values are created once, as package-level
// variables, and never copied; equality between two *BlockType values is
// pointer identity.
type BlockType struct {
	name string
	// defaultState is a metadata value for placing a block without an
	// explicit state. newBlock leaves it at 0 and nothing reads it: the
	// generator always picks a state explicitly, and the Anvil decoder maps
	// an unknown (id, meta) pair to Environment.FallbackBlock.
	defaultState uint8
	legacyID     uint16
	legacyMeta   uint8
	hasLegacy    bool

	// solid and liquid classify the block for the heightmap predicates
	// registered in heightmap.go. motionBlocking is not set or read;
	// MotionBlocking derives its answer from solid and liquid.
	solid          bool
	motionBlocking bool
	liquid         bool
}

func (b *BlockType) Name() string { return b.name }

func (b *BlockType) legacyKey() (id uint16, meta uint8, ok bool) {
	return b.legacyID, b.legacyMeta, b.hasLegacy
}

// Solid reports whether the block counts as ground for the "solid"
// heightmap kind.
func (b *BlockType) Solid() bool { return b.solid }

// MotionBlocking reports whether the block counts as an obstruction for the
// "motion-blocking" heightmap kind: solid blocks and liquids block motion;
// air and non-solid plants or layers such as tall grass, sugar cane and
// snow layers do not.
func (b *BlockType) MotionBlocking() bool { return b.solid || b.liquid }

// Liquid reports whether the block is a fluid (water or lava, any level).
func (b *BlockType) Liquid() bool { return b.liquid }

func newBlock(name string, id uint16, meta uint8, solid, liquid bool) *BlockType {
	return &BlockType{
		name:       name,
		legacyID:   id,
		legacyMeta: meta,
		hasLegacy:  true,
		solid:      solid,
		liquid:     liquid,
	}
}

// The 1.2.5 block table used by the terrain generator, surface pass, ravine
// carver and decoration pass. Legacy ids/metas match vanilla's numeric ids;
// this is not an exhaustive table of every 1.2.5 block, only those this
// library's generation pipeline can place — callers extending the registry
// with additional blocks (for Anvil round-tripping of blocks this library
// never generates) register their own BlockType values the same way.
var (
	Air         = newBlock("minecraft:air", 0, 0, false, false)
	Stone       = newBlock("minecraft:stone", 1, 0, true, false)
	Grass       = newBlock("minecraft:grass", 2, 0, true, false)
	Dirt        = newBlock("minecraft:dirt", 3, 0, true, false)
	Bedrock     = newBlock("minecraft:bedrock", 7, 0, true, false)
	FlowingWater = newBlock("minecraft:flowing_water", 8, 0, false, true)
	Water       = newBlock("minecraft:water", 9, 0, false, true)
	FlowingLava = newBlock("minecraft:flowing_lava", 10, 0, false, true)
	Lava        = newBlock("minecraft:lava", 11, 0, false, true)
	Sand        = newBlock("minecraft:sand", 12, 0, true, false)
	Gravel      = newBlock("minecraft:gravel", 13, 0, true, false)
	CoalOre     = newBlock("minecraft:coal_ore", 16, 0, true, false)
	IronOre     = newBlock("minecraft:iron_ore", 15, 0, true, false)
	GoldOre     = newBlock("minecraft:gold_ore", 14, 0, true, false)
	LapisOre    = newBlock("minecraft:lapis_ore", 21, 0, true, false)
	DiamondOre  = newBlock("minecraft:diamond_ore", 56, 0, true, false)
	RedstoneOre = newBlock("minecraft:redstone_ore", 73, 0, true, false)
	OakLog      = newBlock("minecraft:log", 17, 0, true, false)
	OakLeaves   = newBlock("minecraft:leaves", 18, 0, true, false)
	Sandstone   = newBlock("minecraft:sandstone", 24, 0, true, false)
	Clay        = newBlock("minecraft:clay", 82, 0, true, false)
	SugarCane   = newBlock("minecraft:reeds", 83, 0, false, false)
	Cactus      = newBlock("minecraft:cactus", 81, 0, true, false)
	TallGrass   = newBlock("minecraft:tallgrass", 31, 1, false, false)
	Ice         = newBlock("minecraft:ice", 79, 0, true, false)
	SnowLayer   = newBlock("minecraft:snow_layer", 78, 0, false, false)
	SnowBlock   = newBlock("minecraft:snow", 80, 0, true, false)
	Obsidian    = newBlock("minecraft:obsidian", 49, 0, true, false)
)

// RegisterVanillaBlocks registers the 1.2.5 block table this library's
// generator and Anvil translator rely on into r, in the order needed so
// that Air always ends up at runtime index 0 (palette-local index 0 is
// reserved for "air if present").
func RegisterVanillaBlocks(r *Registry[*BlockType]) error {
	for _, b := range []*BlockType{
		Air, Stone, Grass, Dirt, Bedrock, FlowingWater, Water, FlowingLava, Lava,
		Sand, Gravel, GoldOre, IronOre, CoalOre, OakLog, OakLeaves, Sandstone,
		LapisOre, DiamondOre, RedstoneOre, Clay, SugarCane, Cactus, TallGrass,
		Ice, SnowLayer, SnowBlock, Obsidian,
	} {
		if _, err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}
