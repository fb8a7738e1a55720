package world

import (
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Generator produces a brand-new chunk for a position the Source has no
// data for. Implementations live in world/generator/classic125.
type Generator interface {
	GenerateChunk(env *Environment, pos ChunkPos) (*Chunk, error)
}

// Config configures a Level, following the same exported-struct-with-
// documented-defaults shape as dragonfly's server.Config.
type Config struct {
	// Environment supplies the registries every chunk in this Level is
	// built against. Required.
	Environment *Environment
	// Source is the backing store chunks are loaded from and saved to. If
	// nil, NopSource is used (a purely in-memory, generate-only Level).
	Source Source
	// Generator produces chunks the Source reports Absent for. If nil,
	// requesting an absent chunk returns (nil, false) instead of
	// generating one.
	Generator Generator
	// Log is the Level's logger. Defaults to slog.Default(). The Level
	// writes no records to it itself; recoverable load errors are logged by
	// the Source on the Source's own logger.
	Log *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Source == nil {
		c.Source = NopSource{}
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.Environment != nil {
		c.Log = c.Log.With("env_id", c.Environment.ID.String())
	}
	return c
}

// Level is a single-owner, single-threaded cache of Chunks keyed by
// ChunkPos, backed by a pluggable Source. Concurrent use of
// a Level from multiple goroutines is the caller's responsibility.
type Level struct {
	conf Config

	chunks map[ChunkPos]*Chunk
	// order records insertion order so All() can yield chunks in the order
	// they were first loaded/installed.
	order []ChunkPos

	// regionGroups buckets loaded chunk positions by their Anvil region,
	// hashed with xxhash, so a caller flushing an entire region's worth of
	// dirty chunks (a common Anvil access pattern) doesn't need to
	// re-derive the grouping on every flush.
	regionGroups map[uint64][]ChunkPos
}

// NewLevel creates a Level from conf.
func NewLevel(conf Config) *Level {
	conf = conf.withDefaults()
	return &Level{
		conf:         conf,
		chunks:       make(map[ChunkPos]*Chunk),
		regionGroups: make(map[uint64][]ChunkPos),
	}
}

// Environment returns the Level's shared registries.
func (l *Level) Environment() *Environment { return l.conf.Environment }

func regionHash(r RegionPos) uint64 {
	var buf [8]byte
	buf[0] = byte(r[0])
	buf[1] = byte(r[0] >> 8)
	buf[2] = byte(r[0] >> 16)
	buf[3] = byte(r[0] >> 24)
	buf[4] = byte(r[1])
	buf[5] = byte(r[1] >> 8)
	buf[6] = byte(r[1] >> 16)
	buf[7] = byte(r[1] >> 24)
	return xxhash.Sum64(buf[:])
}

// Chunk returns the chunk at pos, loading it from the Source (and
// generating it if absent and a Generator is configured) if it is not
// already cached. The bool result is false if the chunk could not be
// obtained (absent with no Generator).
func (l *Level) Chunk(pos ChunkPos) (*Chunk, bool, error) {
	if c, ok := l.chunks[pos]; ok {
		return c, true, nil
	}

	res, err := l.conf.Source.Load(l.conf.Environment, pos)
	if err != nil {
		return nil, false, newError("Level.Chunk", IoFailed, err)
	}

	var c *Chunk
	switch res.Outcome {
	case OutcomeLoaded:
		c = res.Chunk
	case OutcomeAbsent:
		if l.conf.Generator == nil {
			return nil, false, nil
		}
		c, err = l.conf.Generator.GenerateChunk(l.conf.Environment, pos)
		if err != nil {
			return nil, false, err
		}
	}

	l.install(pos, c)
	return c, true, nil
}

// install caches c at pos and records it for ordered iteration and region
// grouping. It does not persist c; callers that want persistence call Save
// explicitly.
func (l *Level) install(pos ChunkPos, c *Chunk) {
	if _, exists := l.chunks[pos]; !exists {
		l.order = append(l.order, pos)
		rh := regionHash(pos.Region())
		l.regionGroups[rh] = append(l.regionGroups[rh], pos)
	}
	l.chunks[pos] = c
}

// Install directly installs an already-built chunk (e.g. one constructed by
// a test or by a caller driving generation itself) without going through
// the Source.
func (l *Level) Install(pos ChunkPos, c *Chunk) { l.install(pos, c) }

// Save persists the chunk at pos through the Source, if the chunk is
// loaded and the Source supports saving.
func (l *Level) Save(pos ChunkPos) error {
	c, ok := l.chunks[pos]
	if !ok || !l.conf.Source.SupportsSave() {
		return nil
	}
	if err := l.conf.Source.Save(pos, c); err != nil {
		return newError("Level.Save", IoFailed, err)
	}
	return nil
}

// SaveRegion saves every currently loaded chunk belonging to the same
// Anvil region as pos, using the xxhash-derived grouping built up as
// chunks are installed.
func (l *Level) SaveRegion(pos ChunkPos) error {
	rh := regionHash(pos.Region())
	for _, p := range l.regionGroups[rh] {
		if err := l.Save(p); err != nil {
			return err
		}
	}
	return nil
}

// Evict drops the chunk at pos from the cache, optionally flushing it
// through Save first. The evicted chunk is handed back so the caller can
// take ownership of it: handing a chunk to external code requires evicting
// it from the level first.
func (l *Level) Evict(pos ChunkPos, flush bool) (*Chunk, error) {
	c, ok := l.chunks[pos]
	if !ok {
		return nil, nil
	}
	if flush {
		if err := l.Save(pos); err != nil {
			return nil, err
		}
	}
	delete(l.chunks, pos)
	if i := slices.Index(l.order, pos); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	rh := regionHash(pos.Region())
	group := l.regionGroups[rh]
	if i := slices.Index(group, pos); i >= 0 {
		l.regionGroups[rh] = slices.Delete(group, i, i+1)
	}
	return c, nil
}

// Loaded reports whether pos is currently cached.
func (l *Level) Loaded(pos ChunkPos) bool {
	_, ok := l.chunks[pos]
	return ok
}

// All returns every currently loaded chunk's position, in insertion order.
func (l *Level) All() []ChunkPos {
	return slices.Clone(l.order)
}
