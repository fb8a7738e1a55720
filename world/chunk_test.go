package world

import "testing"

func testEnv(t *testing.T) *Environment {
	t.Helper()
	env, err := NewVanillaEnvironment()
	if err != nil {
		t.Fatalf("NewVanillaEnvironment: %v", err)
	}
	return env
}

func TestChunkAdvanceIsMonotonic(t *testing.T) {
	c := NewChunk(testEnv(t), ChunkPos{0, 0})
	if err := c.Advance(BiomesGenerated); err != nil {
		t.Fatalf("Advance(BiomesGenerated): %v", err)
	}
	if err := c.Advance(TerrainGenerated); err != nil {
		t.Fatalf("Advance(TerrainGenerated): %v", err)
	}
	if err := c.Advance(BiomesGenerated); err == nil {
		t.Fatal("Advance backward succeeded, want StatusRegression")
	}
	if err := c.Advance(TerrainGenerated); err == nil {
		t.Fatal("Advance to the same status succeeded, want StatusRegression")
	}
}

func TestChunkRequireStatusRejectsAlreadyPast(t *testing.T) {
	c := NewChunk(testEnv(t), ChunkPos{0, 0})
	if err := c.RequireStatus(BiomesGenerated); err != nil {
		t.Fatalf("RequireStatus on a fresh chunk: %v", err)
	}
	if err := c.Advance(BiomesGenerated); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := c.RequireStatus(BiomesGenerated); err == nil {
		t.Fatal("RequireStatus succeeded for a status already reached")
	}
}

func TestChunkSetLoadedStatusBypassesMonotonicCheck(t *testing.T) {
	c := NewChunk(testEnv(t), ChunkPos{0, 0})
	c.SetLoadedStatus(Full)
	if c.Status() != Full {
		t.Fatalf("Status() = %v, want Full", c.Status())
	}
	c.SetLoadedStatus(Empty)
	if c.Status() != Empty {
		t.Fatalf("Status() = %v, want Empty after regressing via SetLoadedStatus", c.Status())
	}
}

func TestChunkBlockRoundTripAllocatesSubChunkLazily(t *testing.T) {
	env := testEnv(t)
	c := NewChunk(env, ChunkPos{0, 0})
	if sub := c.SubChunkAt(0); sub != nil {
		t.Fatal("fresh chunk already has an allocated sub-chunk")
	}
	stoneRID, _ := env.Blocks.IndexOf(Stone)
	if err := c.SetBlock(3, 10, 7, stoneRID); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if sub := c.SubChunkAt(10); sub == nil {
		t.Fatal("SetBlock with a non-air block did not allocate a sub-chunk")
	}
	got, err := c.Block(3, 10, 7)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if got != stoneRID {
		t.Fatalf("Block(3,10,7) = %d, want %d", got, stoneRID)
	}
}

func TestChunkSetBlockAirOnUnallocatedSubChunkStaysLazy(t *testing.T) {
	env := testEnv(t)
	c := NewChunk(env, ChunkPos{0, 0})
	if err := c.SetBlock(0, 0, 0, env.AirIndex); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if sub := c.SubChunkAt(0); sub != nil {
		t.Fatal("setting air on an unallocated sub-chunk allocated one anyway")
	}
}

func TestChunkBlockOutOfBounds(t *testing.T) {
	c := NewChunk(testEnv(t), ChunkPos{0, 0})
	if _, err := c.Block(16, 0, 0); err == nil {
		t.Fatal("Block with x=16 succeeded, want OutOfBounds")
	}
	if _, err := c.Block(0, -1, 0); err == nil {
		t.Fatal("Block with y=-1 succeeded, want OutOfBounds")
	}
	if _, err := c.Block(0, ChunkHeight, 0); err == nil {
		t.Fatal("Block with y=ChunkHeight succeeded, want OutOfBounds")
	}
}

func TestChunkBiomeRoundTrip(t *testing.T) {
	env := testEnv(t)
	c := NewChunk(env, ChunkPos{0, 0})
	plainsRID, _ := env.Biomes.IndexOf(Plains)
	if err := c.SetBiome(5, 9, plainsRID); err != nil {
		t.Fatalf("SetBiome: %v", err)
	}
	got, err := c.Biome(5, 9)
	if err != nil {
		t.Fatalf("Biome: %v", err)
	}
	if got != plainsRID {
		t.Fatalf("Biome(5,9) = %d, want %d", got, plainsRID)
	}
}

func TestChunkRecomputeHeightmapsFindsTopmostSolidBlock(t *testing.T) {
	env := testEnv(t)
	c := NewChunk(env, ChunkPos{0, 0})
	stoneRID, _ := env.Blocks.IndexOf(Stone)
	if err := c.SetBlock(0, 5, 0, stoneRID); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	if err := c.SetBlock(0, 20, 0, stoneRID); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	c.MarkHeightmapsDirty(HeightmapSolid)
	if err := c.RecomputeHeightmaps([]HeightmapKind{HeightmapSolid}); err != nil {
		t.Fatalf("RecomputeHeightmaps: %v", err)
	}
	h, err := c.Height(HeightmapSolid, 0, 0)
	if err != nil {
		t.Fatalf("Height: %v", err)
	}
	if h != 21 {
		t.Fatalf("Height(solid, 0, 0) = %d, want 21 (one above the topmost solid block at y=20)", h)
	}
	if c.Dirty(HeightmapSolid) {
		t.Fatal("RecomputeHeightmaps left the kind marked dirty")
	}
}

func TestChunkRecomputeHeightmapsAllAirColumnIsZero(t *testing.T) {
	c := NewChunk(testEnv(t), ChunkPos{0, 0})
	if err := c.RecomputeHeightmaps([]HeightmapKind{HeightmapSolid}); err != nil {
		t.Fatalf("RecomputeHeightmaps: %v", err)
	}
	h, err := c.Height(HeightmapSolid, 0, 0)
	if err != nil {
		t.Fatalf("Height: %v", err)
	}
	if h != 0 {
		t.Fatalf("Height(solid, 0, 0) = %d, want 0 for an all-air column", h)
	}
}

func TestChunkCompactPaletteOnlyTouchesAllocatedSubChunks(t *testing.T) {
	env := testEnv(t)
	c := NewChunk(env, ChunkPos{0, 0})
	stoneRID, _ := env.Blocks.IndexOf(Stone)
	if err := c.SetBlock(0, 0, 0, stoneRID); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	c.CompactPalette() // must not panic on the 15 unallocated sub-chunks
	sub := c.SubChunkAt(0)
	if sub == nil {
		t.Fatal("expected an allocated sub-chunk at y=0")
	}
	if len(sub.Palette()) > 2 {
		t.Fatalf("Palette() has %d entries after Compact, want at most 2", len(sub.Palette()))
	}
}
