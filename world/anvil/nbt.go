package anvil

import (
	"github.com/oldstone-mc/vanilla125/world"
)

// levelTag mirrors the 1.2.5 per-chunk NBT layout's root "Level" compound
// (xPos/zPos/TerrainPopulated/LastUpdate/Sections/Biomes/HeightMap),
// decoded with gophertunnel's struct-tag nbt.Unmarshal.
type rootTag struct {
	Level levelTag `nbt:"Level"`
}

type levelTag struct {
	XPos             int32         `nbt:"xPos"`
	ZPos             int32         `nbt:"zPos"`
	TerrainPopulated byte          `nbt:"TerrainPopulated"`
	LastUpdate       int64         `nbt:"LastUpdate"`
	Sections         []sectionTag  `nbt:"Sections"`
	Biomes           []byte        `nbt:"Biomes"`
	HeightMap        []int32       `nbt:"HeightMap"`
	// Status records this library's own generation stage, a field vanilla
	// files never carry; a file without it loads as world.Full when its
	// TerrainPopulated flag is set and as world.SurfaceApplied otherwise.
	Status *byte `nbt:"GeneratorStatus,omitempty"`
}

type sectionTag struct {
	Y          byte   `nbt:"Y"`
	Blocks     []byte `nbt:"Blocks"`
	Data       []byte `nbt:"Data"`
	BlockLight []byte `nbt:"BlockLight"`
	SkyLight   []byte `nbt:"SkyLight"`
}

// nibbleGet reads a 4-bit value from a 2048-byte nibble array (2 values per
// byte, low nibble first), the packing every 1.2.5 section array below
// Blocks uses.
func nibbleGet(arr []byte, index int) byte {
	b := arr[index>>1]
	if index&1 == 0 {
		return b & 0xF
	}
	return b >> 4
}

func nibbleSet(arr []byte, index int, v byte) {
	i := index >> 1
	if index&1 == 0 {
		arr[i] = (arr[i] & 0xF0) | (v & 0xF)
	} else {
		arr[i] = (arr[i] & 0x0F) | ((v & 0xF) << 4)
	}
}

// sectionCellIndex matches world.Chunk/SubChunk's y*256+z*16+x layout, which
// is also vanilla's own Blocks/Data array layout, so no reordering is needed
// between the two.
func sectionCellIndex(x, y, z uint8) int { return int(y)*256 + int(z)*16 + int(x) }

// decodeSection fills sub from a 1.2.5 section's flat Blocks/Data byte
// arrays, translating each (id, meta) pair through blocks via
// Registry.LegacyToIndex. unknown receives every (id, meta) pair that had no
// registered mapping, deduplicated by the caller.
func decodeSection(tag sectionTag, env *world.Environment, unknown func(id uint16, meta uint8)) *world.SubChunk {
	sub := world.NewSubChunk(env.AirIndex)
	for y := uint8(0); y < 16; y++ {
		for z := uint8(0); z < 16; z++ {
			for x := uint8(0); x < 16; x++ {
				i := sectionCellIndex(x, y, z)
				id := uint16(tag.Blocks[i])
				meta := nibbleGet(tag.Data, i)
				rid, ok := env.Blocks.LegacyToIndex(id, meta)
				if !ok {
					unknown(id, meta)
					rid = env.FallbackBlock()
				}
				sub.Set(x, y, z, rid)
			}
		}
	}
	return sub
}

// encodeSection is the inverse of decodeSection: it flattens sub's blocks
// back into a 1.2.5 section's Blocks/Data arrays via Registry.IndexToLegacy.
// A runtime index with no legacy mapping (a block this library generates
// that predates no vanilla id, which cannot happen for the vanilla table but
// could for a caller-registered extension) is written as air.
func encodeSection(sub *world.SubChunk, env *world.Environment, y uint8) sectionTag {
	tag := sectionTag{
		Y:          y,
		Blocks:     make([]byte, 4096),
		Data:       make([]byte, 2048),
		BlockLight: make([]byte, 2048),
		SkyLight:   make([]byte, 2048),
	}
	for by := uint8(0); by < 16; by++ {
		for z := uint8(0); z < 16; z++ {
			for x := uint8(0); x < 16; x++ {
				i := sectionCellIndex(x, by, z)
				rid := sub.Get(x, by, z)
				id, meta, ok := env.Blocks.IndexToLegacy(rid)
				if !ok {
					id, meta = 0, 0
				}
				tag.Blocks[i] = byte(id)
				nibbleSet(tag.Data, i, meta)
			}
		}
	}
	for i := range tag.SkyLight {
		tag.SkyLight[i] = 0xFF
	}
	return tag
}
