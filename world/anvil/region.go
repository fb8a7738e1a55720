// Package anvil implements the Anvil region file format: a world.Source
// that reads and writes .mca files, each holding up to 32×32
// chunks as independently zlib/gzip-compressed NBT payloads behind a fixed
// 8 KiB header of sector offsets and timestamps.
package anvil

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

const (
	sectorSize   = 4096
	headerSize   = 2 * sectorSize
	regionWidth  = 32
	maxChunkSize = 1 << 20 // 1 MiB; generous bound against a corrupt length prefix.
)

// compressionScheme is the single length-prefix byte preceding a chunk's
// payload: 1 for gzip, 2 for zlib.
type compressionScheme byte

const (
	compressionGZip compressionScheme = 1
	compressionZlib compressionScheme = 2
)

// regionFile is a single .mca file's sector-allocation table plus the
// backing file handle. It is not safe for concurrent use; anvil.Source
// serializes all region access behind its own mutex.
type regionFile struct {
	f *os.File

	// offsets[i] packs (sectorOffset<<8 | sectorCount) for local chunk index
	// i = localZ*32+localX, read directly from the 8 KiB header.
	offsets    [regionWidth * regionWidth]uint32
	timestamps [regionWidth * regionWidth]uint32

	// used tracks which sectors (by index, 0 = first header sector) are
	// occupied, so writes can find or extend free space without scanning
	// the whole file on every call.
	used map[uint32]bool
}

// openRegionFile opens (creating if necessary) the region file at path and
// parses its header. A freshly created file gets a blank two-sector header.
func openRegionFile(path string) (*regionFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	rf := &regionFile{f: f, used: map[uint32]bool{0: true, 1: true}}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < headerSize {
		if err := f.Truncate(headerSize); err != nil {
			f.Close()
			return nil, err
		}
		return rf, nil
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, headerSize), header); err != nil {
		f.Close()
		return nil, err
	}
	for i := 0; i < regionWidth*regionWidth; i++ {
		rf.offsets[i] = binary.BigEndian.Uint32(header[i*4:])
		rf.timestamps[i] = binary.BigEndian.Uint32(header[sectorSize+i*4:])
		sectorOffset, sectorCount := rf.offsets[i]>>8, rf.offsets[i]&0xFF
		for s := uint32(0); s < sectorCount; s++ {
			rf.used[sectorOffset+s] = true
		}
	}
	return rf, nil
}

func localIndex(lx, lz int) int { return lz*regionWidth + lx }

// has reports whether the region file has a stored chunk at local
// coordinates (lx, lz).
func (rf *regionFile) has(lx, lz int) bool {
	return rf.offsets[localIndex(lx, lz)] != 0
}

// readChunk returns the raw (still compressed) payload and its compression
// scheme for the chunk at local coordinates (lx, lz), or ok=false if absent.
func (rf *regionFile) readChunk(lx, lz int) (data []byte, scheme compressionScheme, ok bool, err error) {
	entry := rf.offsets[localIndex(lx, lz)]
	if entry == 0 {
		return nil, 0, false, nil
	}
	sectorOffset, sectorCount := entry>>8, entry&0xFF
	byteOffset := int64(sectorOffset) * sectorSize
	maxLen := int64(sectorCount) * sectorSize

	var lenBuf [5]byte
	if _, err := rf.f.ReadAt(lenBuf[:], byteOffset); err != nil {
		if err == io.EOF {
			return nil, 0, false, errRegionTruncated
		}
		return nil, 0, false, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:4])
	if length == 0 || int64(length) > maxLen || int64(length) > maxChunkSize {
		return nil, 0, false, errRegionTruncated
	}
	scheme = compressionScheme(lenBuf[4])

	payload := make([]byte, length-1)
	if _, err := rf.f.ReadAt(payload, byteOffset+5); err != nil {
		if err == io.EOF {
			return nil, 0, false, errRegionTruncated
		}
		return nil, 0, false, err
	}
	return payload, scheme, true, nil
}

// writeChunk compresses-already payload (compressed bytes, scheme already
// applied by the caller) into the file, allocating new sectors if the
// existing allocation (if any) is too small, and updates the header.
func (rf *regionFile) writeChunk(lx, lz int, payload []byte, scheme compressionScheme, timestamp uint32) error {
	total := 5 + len(payload)
	neededSectors := uint32((total + sectorSize - 1) / sectorSize)
	if neededSectors == 0 {
		neededSectors = 1
	}
	if neededSectors > 0xFF {
		return errRegionTruncated
	}

	idx := localIndex(lx, lz)
	oldEntry := rf.offsets[idx]
	if oldEntry != 0 {
		oldOffset, oldCount := oldEntry>>8, oldEntry&0xFF
		for s := uint32(0); s < oldCount; s++ {
			delete(rf.used, oldOffset+s)
		}
	}

	sectorOffset := rf.allocate(neededSectors)

	buf := make([]byte, neededSectors*sectorSize)
	binary.BigEndian.PutUint32(buf[:4], uint32(len(payload)+1))
	buf[4] = byte(scheme)
	copy(buf[5:], payload)

	if _, err := rf.f.WriteAt(buf, int64(sectorOffset)*sectorSize); err != nil {
		return err
	}

	rf.offsets[idx] = sectorOffset<<8 | neededSectors
	rf.timestamps[idx] = timestamp
	for s := uint32(0); s < neededSectors; s++ {
		rf.used[sectorOffset+s] = true
	}
	return rf.writeHeaderEntry(idx)
}

// allocate finds the first run of n free sectors at or after sector 2 (the
// header occupies sectors 0-1), extending past the highest used sector if no
// run that large is free.
func (rf *regionFile) allocate(n uint32) uint32 {
	var highest uint32 = 1
	for s := range rf.used {
		if s > highest {
			highest = s
		}
	}

	var run, start uint32
	for s := uint32(2); s <= highest; s++ {
		if rf.used[s] {
			run = 0
			continue
		}
		if run == 0 {
			start = s
		}
		run++
		if run == n {
			return start
		}
	}
	return highest + 1
}

func (rf *regionFile) writeHeaderEntry(idx int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], rf.offsets[idx])
	if _, err := rf.f.WriteAt(buf[:], int64(idx*4)); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(buf[:], rf.timestamps[idx])
	_, err := rf.f.WriteAt(buf[:], int64(sectorSize+idx*4))
	return err
}

func (rf *regionFile) Close() error { return rf.f.Close() }

// bufferedReader wraps the decompressed chunk stream; kept as a named type
// so callers decoding NBT from it read through a buffer rather than making
// one syscall per small NBT read.
func bufferedReader(r io.Reader) *bufio.Reader { return bufio.NewReaderSize(r, 8192) }
