// Package cfg loads and saves the TOML configuration file that parameterises
// a generator run: world seed, sea level, storage directory and
// compression preference, generation toggles, and logging options. It
// follows a plain TOML-tagged struct round-tripped with pelletier/go-toml
// rather than the stdlib encoding/json or a hand-rolled parser.
package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// GeneratorConfig is the on-disk configuration for a generator/Anvil-source
// pairing.
type GeneratorConfig struct {
	World struct {
		// Seed is the world seed every noise field and layer chain is
		// derived from. Required.
		Seed int64 `toml:"seed"`
		// SeaLevel documents the fixed water line this config's world was
		// generated against. Vanilla 1.2.5 always fills to
		// classic125.SeaLevel (62); this field exists so a future
		// version's generator, which may use a different sea level, has
		// somewhere in the config to say so, and so tooling can flag a
		// config whose declared sea level disagrees with the generator
		// actually in use.
		SeaLevel int `toml:"sea_level"`
		// RegionDirectory is where Anvil .mca files are read from and
		// written to.
		RegionDirectory string `toml:"region_directory"`
	} `toml:"world"`

	Storage struct {
		// Compression selects the payload codec anvil.Source writes new
		// chunks with: "zlib" or "gzip". Anvil readers accept either
		// regardless of this setting; it only governs writes.
		Compression string `toml:"compression"`
	} `toml:"storage"`

	Generation struct {
		// RavineRadius is loaded and saved with the file. Nothing in this
		// module reads it: the ravine carver always uses the constant
		// classic125.RavineRadius.
		RavineRadius int `toml:"ravine_radius"`
		// Decorate is loaded and saved with the file (Default sets it to
		// true). Nothing in this module reads it: classic125.Generator
		// always runs the decoration pass.
		Decorate bool `toml:"decorate"`
	} `toml:"generation"`

	Log struct {
		// Level is one of "debug", "info", "warn", "error".
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the configuration this library ships with when no file is
// present yet: decoration on, logging at info level, no fixed seed (the
// caller must set one before use).
func Default() GeneratorConfig {
	var c GeneratorConfig
	c.World.RegionDirectory = "region"
	c.World.SeaLevel = 62
	c.Storage.Compression = "zlib"
	c.Generation.Decorate = true
	c.Log.Level = "info"
	return c
}

// Load reads the TOML configuration at path, writing out Default() first if
// the file does not exist yet (matching Whitelist.reloadLocked's
// create-on-first-use behaviour).
func Load(path string) (GeneratorConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c := Default()
			return c, Save(path, c)
		}
		return GeneratorConfig{}, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := toml.Unmarshal(contents, &c); err != nil {
		return GeneratorConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Save writes c to path, creating parent directories as needed.
func Save(path string, c GeneratorConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	encoded, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o666); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
