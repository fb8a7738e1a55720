package world

// Status is the generation stage a Chunk has reached. Status
// advances monotonically; a generation pass refuses to run on a chunk whose
// Status already equals or exceeds that pass's output stage.
type Status uint8

const (
	Empty Status = iota
	BiomesGenerated
	TerrainGenerated
	Carved
	SurfaceApplied
	Populated
	Full
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "Empty"
	case BiomesGenerated:
		return "BiomesGenerated"
	case TerrainGenerated:
		return "TerrainGenerated"
	case Carved:
		return "Carved"
	case SurfaceApplied:
		return "SurfaceApplied"
	case Populated:
		return "Populated"
	case Full:
		return "Full"
	default:
		return "Status(?)"
	}
}

// ChunkHeight / ChunkWidth describe the 1.2.5 chunk shape: 16×16
// columns, 256 blocks tall, i.e. up to 16 stacked 16-cube sub-chunks.
const (
	ChunkWidth    = 16
	ChunkHeight   = 256
	SubChunkCount = ChunkHeight / 16
)

// Chunk is a 16×16×256 column of blocks plus a biome grid, heightmaps and a
// generation Status. Sub-chunks are allocated lazily: an unset
// *SubChunk slot represents an all-air 16-cube, so empty sub-chunks never
// need a backing allocation.
type Chunk struct {
	env *Environment
	pos ChunkPos

	sub [SubChunkCount]*SubChunk

	biomes [ChunkWidth * ChunkWidth]RuntimeIndex

	heights map[string][]uint16 // keyed by HeightmapKind.Name(), one u16 per column
	dirty   map[string]bool     // heightmap kinds whose stored values may be stale

	status Status
}

// NewChunk creates an empty chunk at pos, entirely filled with air and the
// environment's zero-value biome (index 0 of the biome registry).
func NewChunk(env *Environment, pos ChunkPos) *Chunk {
	c := &Chunk{
		env:     env,
		pos:     pos,
		heights: make(map[string][]uint16, len(env.Heightmaps)),
		dirty:   make(map[string]bool, len(env.Heightmaps)),
	}
	for _, k := range env.Heightmaps {
		c.heights[k.Name()] = make([]uint16, ChunkWidth*ChunkWidth)
	}
	return c
}

// Position returns the chunk's column coordinates.
func (c *Chunk) Position() ChunkPos { return c.pos }

// Status returns the chunk's current generation stage.
func (c *Chunk) Status() Status { return c.status }

// Advance moves the chunk's status forward to next. It returns a
// StatusRegression error if next does not strictly follow the current
// status, enforcing the monotonic-advance invariant generation stages
// depend on.
func (c *Chunk) Advance(next Status) error {
	if next <= c.status {
		return newError("Chunk.Advance", StatusRegression, nil)
	}
	c.status = next
	return nil
}

// RequireStatus returns a StatusRegression error if the chunk's status is
// already at or past want, otherwise nil. Generation passes call this
// before doing any work.
func (c *Chunk) RequireStatus(want Status) error {
	if c.status >= want {
		return newError("Chunk.RequireStatus", StatusRegression, nil)
	}
	return nil
}

func inChunkBounds(x, z uint8) bool { return x < ChunkWidth && z < ChunkWidth }

// Block returns the runtime block index at chunk-local coordinates.
func (c *Chunk) Block(x uint8, y int16, z uint8) (RuntimeIndex, error) {
	if !inChunkBounds(x, z) || y < 0 || int(y) >= ChunkHeight {
		return 0, newError("Chunk.Block", OutOfBounds, nil)
	}
	sub := c.sub[y>>4]
	if sub == nil {
		return c.env.AirIndex, nil
	}
	return sub.Get(x, uint8(y&0xF), z), nil
}

// SetBlock stores rid at chunk-local coordinates. Setting a block does not
// automatically update heightmaps; see MarkHeightmapsDirty.
func (c *Chunk) SetBlock(x uint8, y int16, z uint8, rid RuntimeIndex) error {
	if !inChunkBounds(x, z) || y < 0 || int(y) >= ChunkHeight {
		return newError("Chunk.SetBlock", OutOfBounds, nil)
	}
	si := y >> 4
	sub := c.sub[si]
	if sub == nil {
		if rid == c.env.AirIndex {
			return nil
		}
		sub = NewSubChunk(c.env.AirIndex)
		c.sub[si] = sub
	}
	sub.Set(x, uint8(y&0xF), z, rid)
	return nil
}

// SubChunkAt returns the sub-chunk holding y, or nil if it has not been
// allocated (all-air).
func (c *Chunk) SubChunkAt(y int16) *SubChunk {
	if y < 0 || int(y) >= ChunkHeight {
		return nil
	}
	return c.sub[y>>4]
}

// SetSubChunk installs sub at the given sub-chunk slot (0..15), replacing
// whatever was there. Used by the Anvil source when loading persisted
// sections.
func (c *Chunk) SetSubChunk(index int, sub *SubChunk) error {
	if index < 0 || index >= SubChunkCount {
		return newError("Chunk.SetSubChunk", OutOfBounds, nil)
	}
	c.sub[index] = sub
	return nil
}

func biomeIndex(x, z uint8) int { return int(z)*ChunkWidth + int(x) }

// Biome returns the runtime biome index of column (x, z).
func (c *Chunk) Biome(x, z uint8) (RuntimeIndex, error) {
	if !inChunkBounds(x, z) {
		return 0, newError("Chunk.Biome", OutOfBounds, nil)
	}
	return c.biomes[biomeIndex(x, z)], nil
}

// SetBiome sets the biome of column (x, z).
func (c *Chunk) SetBiome(x, z uint8, rid RuntimeIndex) error {
	if !inChunkBounds(x, z) {
		return newError("Chunk.SetBiome", OutOfBounds, nil)
	}
	c.biomes[biomeIndex(x, z)] = rid
	return nil
}

// Height returns the stored height for column (x, z) under the named
// heightmap kind. Heights are stored, not recomputed on read.
func (c *Chunk) Height(kind HeightmapKind, x, z uint8) (uint16, error) {
	if !inChunkBounds(x, z) {
		return 0, newError("Chunk.Height", OutOfBounds, nil)
	}
	arr, ok := c.heights[kind.Name()]
	if !ok {
		return 0, nil
	}
	return arr[biomeIndex(x, z)], nil
}

// SetHeight directly overwrites a stored height value, bypassing
// RecomputeHeightmaps. Used by the Anvil source to install persisted
// heightmaps.
func (c *Chunk) SetHeight(kind HeightmapKind, x, z uint8, h uint16) error {
	if !inChunkBounds(x, z) {
		return newError("Chunk.SetHeight", OutOfBounds, nil)
	}
	arr, ok := c.heights[kind.Name()]
	if !ok {
		arr = make([]uint16, ChunkWidth*ChunkWidth)
		c.heights[kind.Name()] = arr
	}
	arr[biomeIndex(x, z)] = h
	return nil
}

// MarkHeightmapsDirty flags the given kinds as needing recomputation. Block
// edits do not implicitly dirty heightmaps; callers that mutate blocks are
// responsible for calling this.
func (c *Chunk) MarkHeightmapsDirty(kinds ...HeightmapKind) {
	for _, k := range kinds {
		c.dirty[k.Name()] = true
	}
}

// Dirty reports whether kind's stored heightmap may be stale.
func (c *Chunk) Dirty(kind HeightmapKind) bool { return c.dirty[kind.Name()] }

// RecomputeHeightmaps recomputes the stored height arrays for the given
// kinds by scanning each column from the top down for the highest y where
// the kind's predicate holds, storing 0 if none does.
func (c *Chunk) RecomputeHeightmaps(kinds []HeightmapKind) error {
	for _, k := range kinds {
		arr, ok := c.heights[k.Name()]
		if !ok {
			arr = make([]uint16, ChunkWidth*ChunkWidth)
			c.heights[k.Name()] = arr
		}
		for x := uint8(0); x < ChunkWidth; x++ {
			for z := uint8(0); z < ChunkWidth; z++ {
				h := uint16(0)
				for y := int16(ChunkHeight - 1); y >= 0; y-- {
					rid, err := c.Block(x, y, z)
					if err != nil {
						return err
					}
					if k.Predicate(c.env.Blocks.Get(rid)) {
						h = uint16(y + 1)
						break
					}
				}
				arr[biomeIndex(x, z)] = h
			}
		}
		delete(c.dirty, k.Name())
	}
	return nil
}

// CompactPalette drops unreferenced palette entries from every allocated
// sub-chunk and re-packs them to the minimum bit width.
func (c *Chunk) CompactPalette() {
	for _, sub := range c.sub {
		if sub != nil {
			sub.Compact()
		}
	}
}

// Environment returns the shared registries this chunk was built against.
func (c *Chunk) Environment() *Environment { return c.env }

// SetLoadedStatus installs s directly, bypassing the monotonic-advance check
// Advance enforces. It exists only for Source implementations reconstructing
// a chunk whose generation history is not being replayed, only its final
// state.
func (c *Chunk) SetLoadedStatus(s Status) { c.status = s }
