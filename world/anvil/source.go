package anvil

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sandertv/gophertunnel/minecraft/nbt"

	"github.com/oldstone-mc/vanilla125/world"
)

// Source is a world.Source backed by a directory of Anvil region files. It
// is safe for concurrent use: region file access is serialized per Source
// instance with a single mutex, favoring coarse, obviously-correct locking
// over a per-region lock table for a format whose reads and writes are
// already dominated by disk I/O rather than lock contention.
type Source struct {
	dir string
	log *slog.Logger

	mu      sync.Mutex
	regions map[world.RegionPos]*regionFile

	writeScheme compressionScheme

	warnedUnknown map[uint32]bool
	onUnknown     func(id, meta byte)
}

// NewSource opens (creating if necessary) an Anvil source rooted at dir.
// New chunks are written zlib-compressed; use SetCompression to prefer
// gzip instead.
func NewSource(dir string, log *slog.Logger) (*Source, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Source{
		dir:           dir,
		log:           log,
		regions:       make(map[world.RegionPos]*regionFile),
		writeScheme:   compressionZlib,
		warnedUnknown: make(map[uint32]bool),
	}, nil
}

// SetCompression selects the codec used to write new chunk payloads:
// "zlib" or "gzip" (case-insensitive). Existing stored chunks are read
// correctly under either scheme regardless of this setting; it only
// governs writes from this point on.
func (s *Source) SetCompression(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch strings.ToLower(name) {
	case "", "zlib":
		s.writeScheme = compressionZlib
	case "gzip":
		s.writeScheme = compressionGZip
	default:
		return fmt.Errorf("anvil: unknown compression preference %q", name)
	}
	return nil
}

func regionFileName(r world.RegionPos) string {
	return fmt.Sprintf("r.%d.%d.mca", r[0], r[1])
}

func (s *Source) regionFor(r world.RegionPos) (*regionFile, error) {
	if rf, ok := s.regions[r]; ok {
		return rf, nil
	}
	rf, err := openRegionFile(filepath.Join(s.dir, regionFileName(r)))
	if err != nil {
		return nil, err
	}
	s.regions[r] = rf
	return rf, nil
}

// localCoords returns a chunk position's coordinates within its region file.
// A bitwise AND against 31 is equivalent to floor-mod 32 for two's-complement
// ints, so it is correct for negative chunk coordinates without a branch.
func localCoords(pos world.ChunkPos) (lx, lz int) {
	return int(pos.X() & 31), int(pos.Z() & 31)
}

// Load implements world.Source. Structural errors in the stored data
// (truncated header, failed decompression, malformed NBT) degrade to
// OutcomeAbsent; only I/O failures from the filesystem are returned as
// errors.
func (s *Source) Load(env *world.Environment, pos world.ChunkPos) (world.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With("env_id", env.ID.String())

	rf, err := s.regionFor(pos.Region())
	if err != nil {
		return world.LoadResult{}, err
	}
	lx, lz := localCoords(pos)
	if !rf.has(lx, lz) {
		return world.LoadResult{Outcome: world.OutcomeAbsent}, nil
	}

	payload, scheme, ok, err := rf.readChunk(lx, lz)
	if err == errRegionTruncated {
		log.Warn("anvil: region entry truncated, treating chunk as absent", "pos", pos)
		return world.LoadResult{Outcome: world.OutcomeAbsent}, nil
	}
	if err != nil {
		return world.LoadResult{}, err
	}
	if !ok {
		return world.LoadResult{Outcome: world.OutcomeAbsent}, nil
	}

	raw, err := decompress(payload, scheme)
	if err != nil {
		log.Warn("anvil: chunk payload failed to decompress, treating as absent", "pos", pos, "err", err)
		return world.LoadResult{Outcome: world.OutcomeAbsent}, nil
	}

	var root rootTag
	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(raw), nbt.BigEndian)
	if err := dec.Decode(&root); err != nil {
		log.Warn("anvil: chunk NBT malformed, treating as absent", "pos", pos, "err", err)
		return world.LoadResult{Outcome: world.OutcomeAbsent}, nil
	}

	c := s.buildChunk(env, pos, root, log)
	return world.LoadResult{Outcome: world.OutcomeLoaded, Chunk: c}, nil
}

func decompress(payload []byte, scheme compressionScheme) ([]byte, error) {
	var r io.Reader
	switch scheme {
	case compressionGZip:
		gz, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("anvil: unknown compression scheme %d", scheme)
	}
	return io.ReadAll(bufferedReader(r))
}

func (s *Source) buildChunk(env *world.Environment, pos world.ChunkPos, root rootTag, log *slog.Logger) *world.Chunk {
	c := world.NewChunk(env, pos)
	lvl := root.Level

	for _, sec := range lvl.Sections {
		if int(sec.Y) >= world.SubChunkCount {
			continue
		}
		sub := decodeSection(sec, env, func(id uint16, meta uint8) {
			s.warnUnknown(id, meta, log)
		})
		_ = c.SetSubChunk(int(sec.Y), sub)
	}

	for z := uint8(0); z < world.ChunkWidth; z++ {
		for x := uint8(0); x < world.ChunkWidth; x++ {
			i := int(z)*16 + int(x)
			var legacyBiomeID uint8
			if i < len(lvl.Biomes) {
				legacyBiomeID = lvl.Biomes[i]
			}
			biome, ok := env.Biomes.LegacyToIndex(uint16(legacyBiomeID), 0)
			if !ok {
				biome = 0
			}
			_ = c.SetBiome(x, z, biome)
		}
	}

	for z := uint8(0); z < world.ChunkWidth; z++ {
		for x := uint8(0); x < world.ChunkWidth; x++ {
			i := int(z)*16 + int(x)
			var h int32
			if i < len(lvl.HeightMap) {
				h = lvl.HeightMap[i]
			}
			if h < 0 {
				h = 0
			}
			_ = c.SetHeight(world.HeightmapMotionBlocking, x, z, uint16(h))
		}
	}
	_ = c.RecomputeHeightmaps([]world.HeightmapKind{world.HeightmapSolid})

	status := world.Full
	if lvl.Status != nil {
		status = world.Status(*lvl.Status)
	} else if lvl.TerrainPopulated == 0 {
		status = world.SurfaceApplied
	}
	c.SetLoadedStatus(status)
	return c
}

// Save implements world.Source, writing c back as a compressed 1.2.5 chunk
// NBT payload using the codec selected by SetCompression (zlib by default).
func (s *Source) Save(pos world.ChunkPos, c *world.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.regionFor(pos.Region())
	if err != nil {
		return err
	}
	lx, lz := localCoords(pos)

	root := s.encodeChunk(pos, c)

	var nbtBuf bytes.Buffer
	enc := nbt.NewEncoderWithEncoding(&nbtBuf, nbt.BigEndian)
	if err := enc.Encode(root); err != nil {
		return err
	}

	var cBuf bytes.Buffer
	var w io.WriteCloser
	switch s.writeScheme {
	case compressionGZip:
		w = gzip.NewWriter(&cBuf)
	default:
		w = zlib.NewWriter(&cBuf)
	}
	if _, err := w.Write(nbtBuf.Bytes()); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return rf.writeChunk(lx, lz, cBuf.Bytes(), s.writeScheme, uint32(time.Now().Unix()))
}

func (s *Source) encodeChunk(pos world.ChunkPos, c *world.Chunk) rootTag {
	env := c.Environment()
	lvl := levelTag{
		XPos:             pos.X(),
		ZPos:             pos.Z(),
		LastUpdate:       time.Now().Unix(),
		Biomes:           make([]byte, 256),
		HeightMap:        make([]int32, 256),
	}
	if c.Status() >= world.SurfaceApplied {
		lvl.TerrainPopulated = 1
	}
	status := byte(c.Status())
	lvl.Status = &status

	for i := 0; i < world.SubChunkCount; i++ {
		sub := c.SubChunkAt(int16(i) * 16)
		if sub == nil {
			continue
		}
		lvl.Sections = append(lvl.Sections, encodeSection(sub, env, byte(i)))
	}

	for z := uint8(0); z < world.ChunkWidth; z++ {
		for x := uint8(0); x < world.ChunkWidth; x++ {
			i := int(z)*16 + int(x)
			rid, _ := c.Biome(x, z)
			legacyID, _, _ := env.Biomes.IndexToLegacy(rid)
			lvl.Biomes[i] = byte(legacyID)

			h, _ := c.Height(world.HeightmapMotionBlocking, x, z)
			lvl.HeightMap[i] = int32(h)
		}
	}

	return rootTag{Level: lvl}
}

func (s *Source) warnUnknown(id uint16, meta uint8, log *slog.Logger) {
	key := uint32(id)<<8 | uint32(meta)
	if s.warnedUnknown[key] {
		return
	}
	s.warnedUnknown[key] = true
	log.Warn("anvil: unknown legacy block, substituting fallback", "id", id, "meta", meta)
	if s.onUnknown != nil {
		s.onUnknown(byte(id), meta)
	}
}

// OnUnknownBlock registers fn to be called, once per distinct (id, meta)
// pair, whenever the Anvil decoder meets a legacy block it cannot map to a
// registered block and falls back to env.FallbackBlock(). Passing nil
// clears any previously registered callback.
func (s *Source) OnUnknownBlock(fn func(id, meta byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnknown = fn
}

// SupportsSave implements world.Source.
func (s *Source) SupportsSave() bool { return true }

// Close flushes and closes every region file this Source has opened.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for r, rf := range s.regions {
		if err := rf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.regions, r)
	}
	return firstErr
}
