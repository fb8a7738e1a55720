package world

import "fmt"

// ChunkPos identifies a chunk by its column coordinates, in chunk units
// (not block units).
type ChunkPos [2]int32

func (p ChunkPos) X() int32 { return p[0] }
func (p ChunkPos) Z() int32 { return p[1] }

func (p ChunkPos) String() string { return fmt.Sprintf("ChunkPos{%d, %d}", p[0], p[1]) }

// RegionPos identifies the Anvil region file a chunk belongs to.
type RegionPos [2]int32

// Region returns the RegionPos containing p.
func (p ChunkPos) Region() RegionPos {
	return RegionPos{p[0] >> 5, p[1] >> 5}
}
