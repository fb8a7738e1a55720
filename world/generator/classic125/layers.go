package classic125

// Legacy biome ids used internally by the layer chain before translation
// to runtime registry indices. These match world.BiomeType.LegacyID for the
// concrete biomes. landPlaceholder is an alias for idPlains, not a
// separate id.
const (
	idOcean          uint8 = 0
	idPlains         uint8 = 1
	idDesert         uint8 = 2
	idExtremeHills   uint8 = 3
	idForest         uint8 = 4
	idTaiga          uint8 = 5
	idSwampland      uint8 = 6
	idRiver          uint8 = 7
	idFrozenOcean    uint8 = 10
	idFrozenRiver    uint8 = 11
	idIcePlains      uint8 = 12
	idIceMountains   uint8 = 13
	idMushroomIsland uint8 = 14
	idBeach          uint8 = 16
	idDesertHills    uint8 = 17
	idForestHills    uint8 = 18
	idTaigaHills     uint8 = 19
	idExtremeHillsEdge uint8 = 20

	// landPlaceholder marks a land cell before the biome layer assigns it a
	// concrete climate biome.
	landPlaceholder uint8 = 1
)

// salts, one per layer kind, each mixed into the world seed to derive that
// layer's cell-seed stream, in the spirit of vanilla's per-layer magic
// salts. The values are arbitrary and not all distinct: layers whose salts
// are equal (island/add-island, remove-too-much-ocean/add-snow,
// cool-warm/hills) draw the same stream, and both add-island layers share
// saltAddIsland.
const (
	saltIsland          int64 = 1
	saltFuzzyZoom       int64 = 2000
	saltAddIsland       int64 = 1
	saltZoom            int64 = 2001
	saltRemoveTooMuchOcean int64 = 2
	saltAddSnow         int64 = 2
	saltCoolWarm        int64 = 3
	saltHeatIce         int64 = 4
	saltSpecial         int64 = 5
	saltBiome           int64 = 200
	saltRiverInit       int64 = 100
	saltAddIsland2      int64 = 3
	saltShore           int64 = 1000
	saltRiverMix        int64 = 1001
	saltSmooth          int64 = 1002
	saltVoronoi         int64 = 10
)

// islandLayer is the root of the chain: land with 1/10
// probability, biased toward land near the origin so chunk (0,0) always has
// somewhere to put spawn.
type islandLayer struct{ *seededLayer }

func newIslandLayer(worldSeed int64) *islandLayer {
	return &islandLayer{newSeededLayer(worldSeed, saltIsland)}
}

func (l *islandLayer) Sample(x, z, w, h int32) []uint8 {
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			wx, wz := int64(x+ix), int64(z+iz)
			l.initCellSeed(wx, wz)
			v := idOcean
			if l.nextInt(10) == 0 {
				v = landPlaceholder
			}
			if wx == 0 && wz == 0 {
				v = landPlaceholder
			}
			out[iz*w+ix] = v
		}
	}
	return out
}

// zoomLayer doubles a parent layer's resolution. When fuzzy
// is true every output cell not aligned with a parent cell is chosen
// uniformly among the relevant parent corners ("fuzzy picks uniformly");
// otherwise the bottom-right cell of each 2x2 block picks the majority
// value among its four parent corners, falling back to a uniform pick on a
// four-way tie ("smooth picks the majority, else uniform").
type zoomLayer struct {
	*seededLayer
	parent Layer
	fuzzy  bool
}

func newZoomLayer(worldSeed int64, salt int64, parent Layer, fuzzy bool) *zoomLayer {
	return &zoomLayer{newSeededLayer(worldSeed, salt), parent, fuzzy}
}

func (l *zoomLayer) selectRandom(a, b uint8) uint8 {
	if l.nextInt(2) == 0 {
		return a
	}
	return b
}

func (l *zoomLayer) selectModeOrRandom(a, b, c, d uint8) uint8 {
	switch {
	case b == c && c == d:
		return b
	case a == b && a == c:
		return a
	case a == b && a == d:
		return a
	case a == c && a == d:
		return a
	case a == b:
		return a
	case a == c:
		return a
	case a == d:
		return a
	case b == c:
		return b
	case b == d:
		return b
	case c == d:
		return c
	default:
		candidates := [4]uint8{a, b, c, d}
		return candidates[l.nextInt(4)]
	}
}

func (l *zoomLayer) Sample(x, z, w, h int32) []uint8 {
	px, pz := x>>1, z>>1
	pw, ph := (w>>1)+3, (h>>1)+3
	parentGrid := l.parent.Sample(px, pz, pw, ph)

	newW, newH := (pw-1)<<1, (ph-1)<<1
	buf := make([]uint8, int32(newW)*int32(newH))

	for iz := int32(0); iz < ph-1; iz++ {
		a := parentGrid[iz*pw]
		b := parentGrid[(iz+1)*pw]
		for ix := int32(0); ix < pw-1; ix++ {
			wx, wz := (px+ix)<<1, (pz+iz)<<1
			l.initCellSeed(int64(wx), int64(wz))

			c := parentGrid[iz*pw+ix+1]
			d := parentGrid[(iz+1)*pw+ix+1]

			ox, oz := ix<<1, iz<<1
			buf[oz*newW+ox] = a
			buf[oz*newW+ox+1] = l.selectRandom(a, c)
			buf[(oz+1)*newW+ox] = l.selectRandom(a, b)
			if l.fuzzy {
				candidates := [4]uint8{a, b, c, d}
				buf[(oz+1)*newW+ox+1] = candidates[l.nextInt(4)]
			} else {
				buf[(oz+1)*newW+ox+1] = l.selectModeOrRandom(a, b, c, d)
			}
			a, b = c, d
		}
	}

	out := make([]uint8, w*h)
	offX, offZ := x&1, z&1
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			out[iz*w+ix] = buf[(iz+offZ)*int32(newW)+ix+offX]
		}
	}
	return out
}

// neighborMutateLayer is the shared shape of the per-cell mutation layers
// (add island, remove too much ocean, add snow, cool/warm, heat/ice,
// special): each samples its parent with a one-cell border and applies
// mutate(center, north, south, west, east).
type neighborMutateLayer struct {
	*seededLayer
	parent Layer
	mutate func(l *seededLayer, center, north, south, west, east uint8) uint8
}

func newNeighborMutateLayer(worldSeed, salt int64, parent Layer, mutate func(*seededLayer, uint8, uint8, uint8, uint8, uint8) uint8) *neighborMutateLayer {
	return &neighborMutateLayer{newSeededLayer(worldSeed, salt), parent, mutate}
}

func (l *neighborMutateLayer) Sample(x, z, w, h int32) []uint8 {
	pw, ph := w+2, h+2
	parentGrid := l.parent.Sample(x-1, z-1, pw, ph)

	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			center := parentGrid[(iz+1)*pw+ix+1]
			north := parentGrid[iz*pw+ix+1]
			south := parentGrid[(iz+2)*pw+ix+1]
			west := parentGrid[(iz+1)*pw+ix]
			east := parentGrid[(iz+1)*pw+ix+2]
			l.initCellSeed(int64(x+ix), int64(z+iz))
			out[iz*w+ix] = l.mutate(l.seededLayer, center, north, south, west, east)
		}
	}
	return out
}

func isOceanID(id uint8) bool { return id == idOcean || id == idFrozenOcean }

func addIslandMutate(l *seededLayer, center, n, s, w, e uint8) uint8 {
	if !isOceanID(center) {
		return center
	}
	landNeighbors := 0
	for _, v := range [4]uint8{n, s, w, e} {
		if !isOceanID(v) {
			landNeighbors++
		}
	}
	if landNeighbors > 0 && l.nextInt(3) == 0 {
		return landPlaceholder
	}
	if landNeighbors == 4 {
		return landPlaceholder
	}
	return center
}

func removeTooMuchOceanMutate(l *seededLayer, center, n, s, w, e uint8) uint8 {
	if isOceanID(center) {
		return center
	}
	oceanNeighbors := 0
	for _, v := range [4]uint8{n, s, w, e} {
		if isOceanID(v) {
			oceanNeighbors++
		}
	}
	if oceanNeighbors == 4 && l.nextInt(2) == 0 {
		return idOcean
	}
	return center
}

func addSnowMutate(l *seededLayer, center, _, _, _, _ uint8) uint8 {
	if isOceanID(center) {
		return center
	}
	if l.nextInt(5) == 0 {
		return idIcePlains
	}
	return idPlains
}

func coolWarmMutate(l *seededLayer, center, n, s, w, e uint8) uint8 {
	if center != idPlains {
		return center
	}
	for _, v := range [4]uint8{n, s, w, e} {
		if v == idIcePlains {
			return idTaiga
		}
	}
	return center
}

func heatIceMutate(l *seededLayer, center, n, s, w, e uint8) uint8 {
	if center != idIcePlains {
		return center
	}
	for _, v := range [4]uint8{n, s, w, e} {
		if v == idTaiga || v == idPlains {
			return idIcePlains
		}
	}
	return center
}

// specialMutate assigns final climate biomes to land placeholders: plains
// cells become one of plains/forest/desert/swampland/extreme-hills, taiga
// stays taiga, ice-plains stays ice-plains, with a small chance of a hills
// variant.
func specialMutate(l *seededLayer, center, _, _, _, _ uint8) uint8 {
	switch center {
	case idPlains:
		switch l.nextInt(6) {
		case 0:
			return idDesert
		case 1:
			return idForest
		case 2:
			return idSwampland
		case 3:
			return idExtremeHills
		default:
			return idPlains
		}
	case idIcePlains:
		if l.nextInt(20) == 0 {
			return idIceMountains
		}
		return idIcePlains
	case idTaiga:
		if l.nextInt(20) == 0 {
			return idTaigaHills
		}
		return idTaiga
	default:
		return center
	}
}

// biomeLayer is the identity pass over the climate ids
// produced above: the mutation chain already assigned concrete biome ids,
// so this layer exists to keep the pipeline's stage names aligned with
// vanilla's own layer chain. It maps landPlaceholder to idPlains, which is
// the same value, and passes every other id through unchanged.
type biomeLayer struct {
	*seededLayer
	parent Layer
}

func newBiomeLayer(worldSeed int64, parent Layer) *biomeLayer {
	return &biomeLayer{newSeededLayer(worldSeed, saltBiome), parent}
}

func (l *biomeLayer) Sample(x, z, w, h int32) []uint8 {
	grid := l.parent.Sample(x, z, w, h)
	out := make([]uint8, len(grid))
	for i, v := range grid {
		if v == landPlaceholder {
			v = idPlains
		}
		out[i] = v
	}
	return out
}

// hillsLayer occasionally promotes an interior biome cell to
// its "hills" variant when surrounded on all four sides by the same biome.
type hillsLayer struct {
	*seededLayer
	parent Layer
}

func newHillsLayer(worldSeed int64, parent Layer) *hillsLayer {
	return &hillsLayer{newSeededLayer(worldSeed, saltAddIsland2), parent}
}

func hillsVariant(id uint8) (uint8, bool) {
	switch id {
	case idDesert:
		return idDesertHills, true
	case idForest:
		return idForestHills, true
	case idTaiga:
		return idTaigaHills, true
	case idExtremeHills:
		return idExtremeHillsEdge, true
	default:
		return 0, false
	}
}

func (l *hillsLayer) Sample(x, z, w, h int32) []uint8 {
	pw, ph := w+2, h+2
	grid := l.parent.Sample(x-1, z-1, pw, ph)
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			center := grid[(iz+1)*pw+ix+1]
			l.initCellSeed(int64(x+ix), int64(z+iz))
			out[iz*w+ix] = center
			if variant, ok := hillsVariant(center); ok && l.nextInt(3) == 0 {
				if grid[iz*pw+ix+1] == center && grid[(iz+2)*pw+ix+1] == center &&
					grid[(iz+1)*pw+ix] == center && grid[(iz+1)*pw+ix+2] == center {
					out[iz*w+ix] = variant
				}
			}
		}
	}
	return out
}

// shoreLayer turns land cells adjacent to ocean into beach
// (or, for ice biomes, leaves them unchanged — 1.2.5 has no ice beaches).
type shoreLayer struct {
	*seededLayer
	parent Layer
}

func newShoreLayer(worldSeed int64, parent Layer) *shoreLayer {
	return &shoreLayer{newSeededLayer(worldSeed, saltShore), parent}
}

func (l *shoreLayer) Sample(x, z, w, h int32) []uint8 {
	pw, ph := w+2, h+2
	grid := l.parent.Sample(x-1, z-1, pw, ph)
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			center := grid[(iz+1)*pw+ix+1]
			out[iz*w+ix] = center
			if isOceanID(center) || center == idRiver || center == idIcePlains || center == idIceMountains {
				continue
			}
			neighbors := [4]uint8{
				grid[iz*pw+ix+1], grid[(iz+2)*pw+ix+1],
				grid[(iz+1)*pw+ix], grid[(iz+1)*pw+ix+2],
			}
			for _, n := range neighbors {
				if isOceanID(n) {
					out[iz*w+ix] = idBeach
					break
				}
			}
		}
	}
	return out
}

// riverInitLayer seeds the parallel river chain: every cell gets the low 8
// bits of a random draw in [2, 300000], independent of the main biome chain until
// riverMixLayer merges them.
type riverInitLayer struct{ *seededLayer }

func newRiverInitLayer(worldSeed int64) *riverInitLayer {
	return &riverInitLayer{newSeededLayer(worldSeed, saltRiverInit)}
}

func (l *riverInitLayer) Sample(x, z, w, h int32) []uint8 {
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			l.initCellSeed(int64(x+ix), int64(z+iz))
			out[iz*w+ix] = uint8(l.nextInt(299999) + 2)
		}
	}
	return out
}

// riverLayer turns the river-init noise field into a binary river/not-river
// grid by detecting edges between differently valued neighbor cells, the
// way vanilla's GenLayerRiver does.
type riverLayer struct {
	*seededLayer
	parent Layer
}

func newRiverLayer(worldSeed int64, parent Layer) *riverLayer {
	return &riverLayer{newSeededLayer(worldSeed, saltRiverMix), parent}
}

func (l *riverLayer) Sample(x, z, w, h int32) []uint8 {
	pw, ph := w+2, h+2
	grid := l.parent.Sample(x-1, z-1, pw, ph)
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			center := grid[(iz+1)*pw+ix+1] % 3
			n := grid[iz*pw+ix+1] % 3
			s := grid[(iz+2)*pw+ix+1] % 3
			wv := grid[(iz+1)*pw+ix] % 3
			e := grid[(iz+1)*pw+ix+2] % 3
			if center == n && center == s && center == wv && center == e {
				out[iz*w+ix] = idOcean
			} else {
				out[iz*w+ix] = idRiver
			}
		}
	}
	return out
}

// riverMixLayer merges the main biome chain with the river chain: a river
// cell carves through any land biome (becoming river, or frozen river over
// ice biomes) but never through ocean.
type riverMixLayer struct {
	biomes Layer
	rivers Layer
}

func newRiverMixLayer(biomes, rivers Layer) *riverMixLayer {
	return &riverMixLayer{biomes, rivers}
}

func (l *riverMixLayer) Sample(x, z, w, h int32) []uint8 {
	b := l.biomes.Sample(x, z, w, h)
	r := l.rivers.Sample(x, z, w, h)
	out := make([]uint8, len(b))
	for i := range b {
		out[i] = b[i]
		if isOceanID(b[i]) {
			continue
		}
		if r[i] == idRiver {
			if b[i] == idIcePlains || b[i] == idIceMountains {
				out[i] = idFrozenRiver
			} else {
				out[i] = idRiver
			}
		}
	}
	return out
}

// smoothLayer removes single-cell diagonal-only biome
// islands, matching vanilla's GenLayerSmooth.
type smoothLayer struct {
	*seededLayer
	parent Layer
}

func newSmoothLayer(worldSeed int64, parent Layer) *smoothLayer {
	return &smoothLayer{newSeededLayer(worldSeed, saltSmooth), parent}
}

func (l *smoothLayer) Sample(x, z, w, h int32) []uint8 {
	pw, ph := w+2, h+2
	grid := l.parent.Sample(x-1, z-1, pw, ph)
	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			center := grid[(iz+1)*pw+ix+1]
			n := grid[iz*pw+ix+1]
			s := grid[(iz+2)*pw+ix+1]
			wv := grid[(iz+1)*pw+ix]
			e := grid[(iz+1)*pw+ix+2]
			out[iz*w+ix] = center
			if n == s && wv == e {
				l.initCellSeed(int64(x+ix), int64(z+iz))
				if l.nextInt(2) == 0 {
					out[iz*w+ix] = wv
				} else {
					out[iz*w+ix] = n
				}
			}
		}
	}
	return out
}

// voronoiZoomLayer is the final scale-1 zoom: instead of the
// ordinary zoom tie-breaking rules, each output cell picks the nearest of
// its four candidate parent cells after perturbing the candidate positions
// with a small per-axis jitter drawn from the cell seed.
type voronoiZoomLayer struct {
	*seededLayer
	parent Layer
}

func newVoronoiZoomLayer(worldSeed int64, parent Layer) *voronoiZoomLayer {
	return &voronoiZoomLayer{newSeededLayer(worldSeed, saltVoronoi), parent}
}

func (l *voronoiZoomLayer) Sample(x, z, w, h int32) []uint8 {
	px, pz := (x-2)>>2, (z-2)>>2
	pw, ph := (w>>2)+3, (h>>2)+3
	grid := l.parent.Sample(px, pz, pw, ph)

	out := make([]uint8, w*h)
	for iz := int32(0); iz < h; iz++ {
		for ix := int32(0); ix < w; ix++ {
			wx, wz := x+ix, z+iz
			cellX, cellZ := (wx-2)>>2, (wz-2)>>2
			localX, localZ := float64((wx-2)&3)/4, float64((wz-2)&3)/4

			best, bestDist := uint8(0), float64(-1)
			for dz := int32(0); dz < 2; dz++ {
				for dx := int32(0); dx < 2; dx++ {
					gx, gz := cellX-px+dx, cellZ-pz+dz
					l.initCellSeed(int64(cellX+dx), int64(cellZ+dz))
					jx := (float64(l.nextInt(1024))/1024 - 0.5) * 0.9
					jz := (float64(l.nextInt(1024))/1024 - 0.5) * 0.9
					ddx := float64(dx) + jx - localX
					ddz := float64(dz) + jz - localZ
					dist := ddx*ddx + ddz*ddz
					if bestDist < 0 || dist < bestDist {
						bestDist = dist
						best = grid[gz*pw+gx]
					}
				}
			}
			out[iz*w+ix] = best
		}
	}
	return out
}
