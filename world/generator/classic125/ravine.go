package classic125

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oldstone-mc/vanilla125/world"
	"github.com/oldstone-mc/vanilla125/world/rand"
)

// RavineRadius is the neighborhood radius (in chunks) of origin chunks
// whose ravines can reach a given target chunk.
const RavineRadius = 8

const (
	ravineSaltA int64 = 341873128712
	ravineSaltB int64 = 132897987541
)

// Ravine carves a single target chunk by visiting every origin chunk in a
// (2*RavineRadius+1)^2 neighborhood, each independently seeded, so that
// carving order across origins cannot affect the result.
type Ravine struct {
	env      *world.Environment
	worldSeed int64

	airRID, stoneRID, waterRID world.RuntimeIndex
}

// NewRavine constructs a carver bound to env and worldSeed.
func NewRavine(env *world.Environment, worldSeed int64) *Ravine {
	r := &Ravine{env: env, worldSeed: worldSeed}
	r.airRID = env.AirIndex
	r.stoneRID, _ = env.Blocks.IndexOf(world.Stone)
	r.waterRID, _ = env.Blocks.IndexOf(world.Water)
	return r
}

// Carve runs the ravine pass over c, the chunk at (cx, cz), scanning every
// origin chunk within RavineRadius. c must have reached TerrainGenerated
// but not yet Carved.
func (rv *Ravine) Carve(c *world.Chunk, cx, cz int32) error {
	if err := c.RequireStatus(world.Carved); err != nil {
		return err
	}
	for ox := cx - RavineRadius; ox <= cx+RavineRadius; ox++ {
		for oz := cz - RavineRadius; oz <= cz+RavineRadius; oz++ {
			rv.carveFromOrigin(c, cx, cz, ox, oz)
		}
	}
	return c.Advance(world.Carved)
}

// carveFromOrigin seeds a PRNG deterministically from (worldSeed, ox, oz)
// and, with probability 1/50, walks one ravine (with a further 1/4 chance,
// one to four ravines) that may or may not reach the target chunk.
func (rv *Ravine) carveFromOrigin(c *world.Chunk, cx, cz, ox, oz int32) {
	seed := rv.worldSeed ^ (int64(ox)*ravineSaltA ^ int64(oz)*ravineSaltB)
	r := rand.New(seed)
	oa := r.NextLong()
	ob := r.NextLong()
	carverSeed := oa*int64(cx) ^ ob*int64(cz) ^ rv.worldSeed
	cr := rand.New(carverSeed)

	if cr.NextIntN(50) != 0 {
		return
	}

	startX := float64(ox*16) + float64(cr.NextIntN(16))
	startY := float64(cr.NextIntN(40) + 20)
	startZ := float64(oz*16) + float64(cr.NextIntN(16))

	length := 1
	if cr.NextIntN(4) == 0 {
		// Occasionally carve several ravines from the same origin, as
		// vanilla's WorldGenRavine does (the outer caller re-derives the
		// walk from fresh random draws each time).
		length = int(cr.NextIntN(4)) + 1
	}
	for i := 0; i < length; i++ {
		rv.walk(c, cx, cz, cr, startX, startY, startZ)
	}
}

func (rv *Ravine) walk(c *world.Chunk, cx, cz int32, r *rand.Random, startX, startY, startZ float64) {
	yaw := float64(r.NextFloat()) * math.Pi * 2
	yawDelta := 0.0
	pitch := (float64(r.NextFloat()) - 0.5) * 2 / 8
	pitchDelta := 0.0

	baseRadius := (float64(r.NextFloat())*2 + float64(r.NextFloat())) * 2
	steps := 112 - int(r.NextIntN(28))

	pos := mgl64.Vec3{startX, startY, startZ}

	for step := 0; step < steps; step++ {
		frac := float64(step) / float64(steps)
		radiusAtStep := baseRadius * (1.0 - math.Sin(frac*math.Pi)*0.5 + 0.25)

		dir := mgl64.Vec3{
			math.Cos(pitch) * math.Cos(yaw),
			math.Sin(pitch),
			math.Cos(pitch) * math.Sin(yaw),
		}
		pos = pos.Add(dir)

		yawDelta = yawDelta*0.7 + (float64(r.NextFloat())-float64(r.NextFloat()))*2
		pitchDelta = pitchDelta*0.9 + (float64(r.NextFloat())-float64(r.NextFloat()))
		yaw += yawDelta * 0.1
		pitch += pitchDelta * 0.1

		if r.NextIntN(4) == 0 {
			continue
		}

		dx, dz := pos.X()-float64(cx*16), pos.Z()-float64(cz*16)
		if dx < -16-radiusAtStep*2 || dx > 32+radiusAtStep*2 || dz < -16-radiusAtStep*2 || dz > 32+radiusAtStep*2 {
			continue
		}
		rv.carveEllipsoid(c, pos, radiusAtStep*0.5, radiusAtStep)
	}
}

// carveEllipsoid replaces blocks within an ellipsoid centered at center
// (world coordinates) with air above sea level or water below it, clipped
// to c's column range.
func (rv *Ravine) carveEllipsoid(c *world.Chunk, center mgl64.Vec3, vRadius, hRadius float64) {
	pos := c.Position()
	minX, maxX := int(center.X()-hRadius), int(center.X()+hRadius)
	minY, maxY := int(center.Y()-vRadius), int(center.Y()+vRadius)
	minZ, maxZ := int(center.Z()-hRadius), int(center.Z()+hRadius)

	if minY < 1 {
		minY = 1
	}
	if maxY > world.ChunkHeight-8 {
		maxY = world.ChunkHeight - 8
	}

	for bx := minX; bx <= maxX; bx++ {
		lx := bx - int(pos.X())*16
		if lx < 0 || lx >= 16 {
			continue
		}
		for bz := minZ; bz <= maxZ; bz++ {
			lz := bz - int(pos.Z())*16
			if lz < 0 || lz >= 16 {
				continue
			}
			dx := (float64(bx) - center.X()) / hRadius
			dz := (float64(bz) - center.Z()) / hRadius
			if dx*dx+dz*dz >= 1.0 {
				continue
			}
			for by := minY; by <= maxY; by++ {
				dy := (float64(by) - center.Y()) / vRadius
				if dx*dx+dy*dy+dz*dz >= 1.0 {
					continue
				}
				rv.carveBlock(c, uint8(lx), int16(by), uint8(lz))
			}
		}
	}
}

func (rv *Ravine) carveBlock(c *world.Chunk, x uint8, y int16, z uint8) {
	rid, err := c.Block(x, y, z)
	if err != nil || rid == rv.airRID || rid == rv.waterRID {
		return
	}
	if int(y) <= SeaLevel {
		_ = c.SetBlock(x, y, z, rv.waterRID)
		return
	}
	_ = c.SetBlock(x, y, z, rv.airRID)
}
