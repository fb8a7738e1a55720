package world

// HeightmapKind names a predicate over blocks used when computing
// per-column heights. The predicate itself lives with the
// BlockType (Solid/MotionBlocking), so a HeightmapKind is just a stable
// name plus a selector function over a *BlockType.
type HeightmapKind struct {
	name string
	pred func(*BlockType) bool
}

func (h HeightmapKind) Name() string { return h.name }

// Predicate reports whether b counts as "present" for this heightmap kind.
func (h HeightmapKind) Predicate(b *BlockType) bool { return h.pred(b) }

var (
	// HeightmapSolid tracks the highest solid (non-liquid, non-air) block.
	HeightmapSolid = HeightmapKind{name: "solid", pred: func(b *BlockType) bool { return b.Solid() }}
	// HeightmapMotionBlocking tracks the highest block that obstructs
	// motion, i.e. any solid or liquid block.
	HeightmapMotionBlocking = HeightmapKind{name: "motion-blocking", pred: func(b *BlockType) bool { return b.MotionBlocking() }}
)

// StandardHeightmapKinds is the set of heightmap kinds this library
// maintains on every generated chunk.
var StandardHeightmapKinds = []HeightmapKind{HeightmapSolid, HeightmapMotionBlocking}
