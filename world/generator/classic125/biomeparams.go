package classic125

import "github.com/oldstone-mc/vanilla125/world"

// biomeByLegacyID maps the layer chain's internal legacy biome ids to the
// registered world.BiomeType descriptors (world/biome.go), the handoff
// point between the biome layer stack and the rest of the generator.
var biomeByLegacyID = map[uint8]*world.BiomeType{
	idOcean:            world.Ocean,
	idPlains:           world.Plains,
	idDesert:           world.Desert,
	idExtremeHills:     world.ExtremeHills,
	idForest:           world.Forest,
	idTaiga:            world.Taiga,
	idSwampland:        world.Swampland,
	idRiver:            world.River,
	idFrozenOcean:      world.FrozenOcean,
	idFrozenRiver:      world.FrozenRiver,
	idIcePlains:        world.IcePlains,
	idIceMountains:     world.IceMountains,
	idMushroomIsland:   world.MushroomIsland,
	idBeach:            world.Beach,
	idDesertHills:      world.DesertHills,
	idForestHills:      world.ForestHills,
	idTaigaHills:       world.TaigaHills,
	idExtremeHillsEdge: world.ExtremeHillsEdge,
}

// BiomeForLegacyID resolves a layer-chain legacy id to its registered
// descriptor, falling back to Plains for any id the chain can still emit
// but that has no dedicated BiomeType (there are none by construction, but
// the fallback keeps this total for defensive callers).
func BiomeForLegacyID(id uint8) *world.BiomeType {
	if b, ok := biomeByLegacyID[id]; ok {
		return b
	}
	return world.Plains
}
