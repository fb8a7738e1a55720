// Command inspect_palette generates a single chunk with the vanilla 1.2.5
// pipeline, saves it to an Anvil region directory, and prints a summary of
// the generated chunk's block palette, biome composition and heightmap — a
// smoke test of the generate/save path exercised from the command line
// rather than a test binary. The saved chunk is not read back.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oldstone-mc/vanilla125/internal/cfg"
	"github.com/oldstone-mc/vanilla125/world"
	"github.com/oldstone-mc/vanilla125/world/anvil"
	"github.com/oldstone-mc/vanilla125/world/generator/classic125"
)

// checkSeaLevel warns if conf.World.SeaLevel disagrees with the fixed sea
// level the classic125 generator actually carves and floods to, since
// SeaLevel is config metadata describing the world, not a live override.
func checkSeaLevel(log *slog.Logger, conf cfg.GeneratorConfig) {
	if conf.World.SeaLevel != 0 && conf.World.SeaLevel != classic125.SeaLevel {
		log.Warn("inspect_palette: config sea_level disagrees with generator sea level",
			"config_sea_level", conf.World.SeaLevel, "generator_sea_level", classic125.SeaLevel)
	}
}

func main() {
	configPath := flag.String("config", "vanilla125.toml", "path to the generator TOML config")
	cx := flag.Int("cx", 0, "chunk x coordinate to generate")
	cz := flag.Int("cz", 0, "chunk z coordinate to generate")
	flag.Parse()

	if err := run(*configPath, int32(*cx), int32(*cz)); err != nil {
		fmt.Fprintln(os.Stderr, "inspect_palette:", err)
		os.Exit(1)
	}
}

func run(configPath string, cx, cz int32) error {
	conf, err := cfg.Load(configPath)
	if err != nil {
		return err
	}
	if conf.World.Seed == 0 {
		return fmt.Errorf("config at %s has no world.seed set", configPath)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	checkSeaLevel(log, conf)

	env, err := world.NewVanillaEnvironment()
	if err != nil {
		return err
	}
	src, err := anvil.NewSource(conf.World.RegionDirectory, log)
	if err != nil {
		return err
	}
	if err := src.SetCompression(conf.Storage.Compression); err != nil {
		return err
	}
	defer src.Close()

	lvl := world.NewLevel(world.Config{
		Environment: env,
		Source:      src,
		Generator:   classic125.NewGenerator(env, conf.World.Seed),
		Log:         log,
	})

	pos := world.ChunkPos{cx, cz}
	c, ok, err := lvl.Chunk(pos)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("chunk %v could not be produced", pos)
	}
	if err := lvl.Save(pos); err != nil {
		return err
	}

	printSummary(env, c)
	return nil
}

func printSummary(env *world.Environment, c *world.Chunk) {
	fmt.Printf("chunk %v status=%s\n", c.Position(), c.Status())

	blockCounts := make(map[string]int)
	for y := int16(0); y < world.ChunkHeight; y++ {
		sub := c.SubChunkAt(y)
		if sub == nil {
			y += 15
			continue
		}
		for _, rid := range sub.Palette() {
			blockCounts[env.Blocks.Get(rid).Name()]++
		}
	}
	fmt.Println("distinct blocks across sub-chunk palettes:")
	for name, count := range blockCounts {
		fmt.Printf("  %-28s %d\n", name, count)
	}

	biomeCounts := make(map[string]int)
	for x := uint8(0); x < world.ChunkWidth; x++ {
		for z := uint8(0); z < world.ChunkWidth; z++ {
			rid, _ := c.Biome(x, z)
			biomeCounts[env.Biomes.Get(rid).Name()]++
		}
	}
	fmt.Println("biome column counts:")
	for name, count := range biomeCounts {
		fmt.Printf("  %-28s %d\n", name, count)
	}

	h, _ := c.Height(world.HeightmapSolid, 8, 8)
	fmt.Printf("solid height at (8,8): %d\n", h)
}
