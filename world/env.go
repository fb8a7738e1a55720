package world

import "github.com/google/uuid"

// Environment is the bundle of registries (blocks, biomes, heightmap
// kinds) shared, read-only, by every chunk in a Level. Mutating the
// registries inside an Environment after any chunk has been touched is
// undefined behaviour: the registries are append-only and meant to be
// finalised once at process start.
type Environment struct {
	// ID is a random identifier drawn by NewEnvironment for each
	// Environment, used only to tag log records so
	// that output from multiple Environments in the same process (tests,
	// tools embedding this library) can be told apart.
	ID uuid.UUID

	Blocks     *Registry[*BlockType]
	Biomes     *Registry[*BiomeType]
	Heightmaps []HeightmapKind

	// AirIndex and fallbackRID cache frequently dereferenced indices.
	AirIndex     RuntimeIndex
	fallbackRID  RuntimeIndex
	hasFallback  bool
}

// NewEnvironment builds an Environment around the given registries. If the
// Blocks registry does not contain Air yet, Air is registered at the next
// free index (index 0 is expected to be air by sub-chunk palette
// convention, though this is advisory, not enforced).
func NewEnvironment(blocks *Registry[*BlockType], biomes *Registry[*BiomeType]) (*Environment, error) {
	air, ok := blocks.IndexOf(Air)
	if !ok {
		var err error
		air, err = blocks.Register(Air)
		if err != nil {
			return nil, err
		}
	}
	return &Environment{
		ID:         uuid.New(),
		Blocks:     blocks,
		Biomes:     biomes,
		Heightmaps: StandardHeightmapKinds,
		AirIndex:   air,
	}, nil
}

// NewVanillaEnvironment builds an Environment pre-populated with the full
// 1.2.5 block and biome tables (block.go, biome.go).
func NewVanillaEnvironment() (*Environment, error) {
	blocks := NewRegistry[*BlockType](64)
	if err := RegisterVanillaBlocks(blocks); err != nil {
		return nil, err
	}
	biomes := NewRegistry[*BiomeType](32)
	if err := RegisterVanillaBiomes(biomes); err != nil {
		return nil, err
	}
	env, err := NewEnvironment(blocks, biomes)
	if err != nil {
		return nil, err
	}
	env.SetFallbackBlock(Stone)
	return env, nil
}

// SetFallbackBlock configures the block index substituted at the Anvil
// boundary for legacy (id, meta) pairs with no registered mapping
// (UnknownBlock).
func (e *Environment) SetFallbackBlock(b *BlockType) {
	idx, ok := e.Blocks.IndexOf(b)
	if !ok {
		idx = e.Blocks.MustRegister(b)
	}
	e.fallbackRID = idx
	e.hasFallback = true
}

// FallbackBlock returns the configured UnknownBlock fallback, defaulting to
// air if none was set.
func (e *Environment) FallbackBlock() RuntimeIndex {
	if e.hasFallback {
		return e.fallbackRID
	}
	return e.AirIndex
}

// HeightmapKind looks up a registered heightmap kind by name.
func (e *Environment) HeightmapKind(name string) (HeightmapKind, bool) {
	for _, k := range e.Heightmaps {
		if k.Name() == name {
			return k, true
		}
	}
	return HeightmapKind{}, false
}
