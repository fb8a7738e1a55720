package world

import (
	"math/bits"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// subChunkVolume is the number of cells in a 16×16×16 sub-chunk.
const subChunkVolume = 16 * 16 * 16

// minPaletteBits is the minimum packed-array bit width: ceil(log2(palette
// size)), never below 4.
const minPaletteBits = 4

// SubChunk is a 16×16×16 paletted block volume: a dense palette of runtime
// block indices plus a bit-packed array of palette-local indices. Index
// layout within the cube is y*256 + z*16 + x, matching vanilla's section
// layout.
type SubChunk struct {
	palette []RuntimeIndex
	// indexOfPalette maps a runtime index back to its palette slot, so
	// repeated inserts of the same block are O(1) instead of a linear scan.
	indexOfPalette map[RuntimeIndex]int
	bits           int
	words          []uint32
}

// NewSubChunk creates an empty sub-chunk. air is the runtime index used to
// fill every cell; if it is the only block ever stored, the sub-chunk still
// allocates a one-entry palette (absent/empty representation is a decision
// left to the caller — see Chunk.sub, which stores *SubChunk as nil for
// "no sub-chunk allocated yet").
func NewSubChunk(air RuntimeIndex) *SubChunk {
	s := &SubChunk{
		palette:        []RuntimeIndex{air},
		indexOfPalette: map[RuntimeIndex]int{air: 0},
		bits:           minPaletteBits,
	}
	s.words = make([]uint32, wordsForBits(s.bits, subChunkVolume))
	return s
}

func cellIndex(x, y, z uint8) int { return int(y)*256 + int(z)*16 + int(x) }

func wordsForBits(bitWidth, count int) int {
	perWord := 32 / bitWidth
	return (count + perWord - 1) / perWord
}

// paletteIndex returns the palette slot for rid, inserting it (and growing
// the backing array if the bit width boundary is crossed) if necessary.
func (s *SubChunk) paletteIndex(rid RuntimeIndex) int {
	if i, ok := s.indexOfPalette[rid]; ok {
		return i
	}
	i := len(s.palette)
	s.palette = append(s.palette, rid)
	s.indexOfPalette[rid] = i

	needed := bitsForPaletteSize(len(s.palette))
	if needed > s.bits {
		s.repack(needed)
	}
	return i
}

func bitsForPaletteSize(size int) int {
	if size <= 1 {
		return minPaletteBits
	}
	b := bits.Len(uint(size - 1))
	if b < minPaletteBits {
		b = minPaletteBits
	}
	return b
}

// repack re-encodes the packed array at a new (larger) bit width.
func (s *SubChunk) repack(newBits int) {
	old := s.words
	oldBits := s.bits
	s.bits = newBits
	s.words = make([]uint32, wordsForBits(newBits, subChunkVolume))
	for i := 0; i < subChunkVolume; i++ {
		v := readPacked(old, oldBits, i)
		writePacked(s.words, newBits, i, v)
	}
}

func readPacked(words []uint32, bitWidth, i int) uint32 {
	perWord := 32 / bitWidth
	word := i / perWord
	shift := uint(i%perWord) * uint(bitWidth)
	mask := uint32(1)<<uint(bitWidth) - 1
	return (words[word] >> shift) & mask
}

func writePacked(words []uint32, bitWidth, i int, v uint32) {
	perWord := 32 / bitWidth
	word := i / perWord
	shift := uint(i%perWord) * uint(bitWidth)
	mask := uint32(1)<<uint(bitWidth) - 1
	words[word] = (words[word] &^ (mask << shift)) | ((v & mask) << shift)
}

// Get returns the runtime block index stored at the given local
// coordinates.
func (s *SubChunk) Get(x, y, z uint8) RuntimeIndex {
	local := readPacked(s.words, s.bits, cellIndex(x, y, z))
	return s.palette[local]
}

// Set stores rid at the given local coordinates, growing the palette (and
// repacking the backing array if needed) to fit it.
func (s *SubChunk) Set(x, y, z uint8, rid RuntimeIndex) {
	local := s.paletteIndex(rid)
	writePacked(s.words, s.bits, cellIndex(x, y, z), uint32(local))
}

// Palette returns the sub-chunk's current palette, in palette-local index
// order. Callers must not mutate the returned slice.
func (s *SubChunk) Palette() []RuntimeIndex { return s.palette }

// BitWidth returns the current packed-array bit width.
func (s *SubChunk) BitWidth() int { return s.bits }

// Compact drops unreferenced palette entries, sorts the survivors by
// runtime index for a stable on-disk palette order, and re-packs the
// backing array to the minimum bit width that fits them. It is the
// SubChunk-level half of Chunk.CompactPalette.
func (s *SubChunk) Compact() {
	referenced := make([]bool, len(s.palette))
	for i := 0; i < subChunkVolume; i++ {
		referenced[readPacked(s.words, s.bits, i)] = true
	}

	type survivor struct {
		oldIndex int
		rid      RuntimeIndex
	}
	survivors := make([]survivor, 0, len(s.palette))
	for old, rid := range s.palette {
		if referenced[old] {
			survivors = append(survivors, survivor{old, rid})
		}
	}
	slices.SortFunc(survivors, func(a, b survivor) int {
		switch {
		case a.rid < b.rid:
			return -1
		case a.rid > b.rid:
			return 1
		default:
			return 0
		}
	})

	remap := make([]int, len(s.palette))
	newPalette := make([]RuntimeIndex, len(survivors))
	for newIdx, sv := range survivors {
		remap[sv.oldIndex] = newIdx
		newPalette[newIdx] = sv.rid
	}

	newBits := bitsForPaletteSize(len(newPalette))
	newWords := make([]uint32, wordsForBits(newBits, subChunkVolume))
	for i := 0; i < subChunkVolume; i++ {
		old := readPacked(s.words, s.bits, i)
		writePacked(newWords, newBits, i, uint32(remap[old]))
	}

	s.palette = newPalette
	s.bits = newBits
	s.words = newWords
	maps.Clear(s.indexOfPalette)
	for i, rid := range newPalette {
		s.indexOfPalette[rid] = i
	}
}
