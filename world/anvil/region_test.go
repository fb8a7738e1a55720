package anvil

import (
	"os"
	"path/filepath"
	"testing"
)

func tempRegionFile(t *testing.T) *regionFile {
	t.Helper()
	dir := t.TempDir()
	rf, err := openRegionFile(filepath.Join(dir, "r.0.0.mca"))
	if err != nil {
		t.Fatalf("openRegionFile: %v", err)
	}
	t.Cleanup(func() { rf.Close() })
	return rf
}

func TestOpenRegionFileCreatesBlankHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")
	rf, err := openRegionFile(path)
	if err != nil {
		t.Fatalf("openRegionFile: %v", err)
	}
	defer rf.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != headerSize {
		t.Fatalf("freshly created region file is %d bytes, want %d", info.Size(), headerSize)
	}
	if rf.has(0, 0) {
		t.Fatal("freshly created region file reports a chunk present at (0,0)")
	}
}

func TestWriteChunkThenReadChunkRoundTrips(t *testing.T) {
	rf := tempRegionFile(t)
	payload := []byte("a small compressed-in-spirit payload")

	if err := rf.writeChunk(5, 9, payload, compressionZlib, 12345); err != nil {
		t.Fatalf("writeChunk: %v", err)
	}
	if !rf.has(5, 9) {
		t.Fatal("has(5,9) = false after writeChunk")
	}

	got, scheme, ok, err := rf.readChunk(5, 9)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	if !ok {
		t.Fatal("readChunk reported absent for a chunk just written")
	}
	if scheme != compressionZlib {
		t.Fatalf("scheme = %d, want %d (zlib)", scheme, compressionZlib)
	}
	if string(got) != string(payload) {
		t.Fatalf("readChunk payload = %q, want %q", got, payload)
	}
}

func TestReadChunkAbsentReportsNotOK(t *testing.T) {
	rf := tempRegionFile(t)
	_, _, ok, err := rf.readChunk(3, 3)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	if ok {
		t.Fatal("readChunk reported ok=true for a never-written chunk")
	}
}

func TestWriteChunkOverwriteReusesOrReallocatesSectors(t *testing.T) {
	rf := tempRegionFile(t)
	small := []byte("short")
	large := make([]byte, sectorSize*3)
	for i := range large {
		large[i] = byte(i)
	}

	if err := rf.writeChunk(0, 0, small, compressionGZip, 1); err != nil {
		t.Fatalf("writeChunk(small): %v", err)
	}
	if err := rf.writeChunk(0, 0, large, compressionGZip, 2); err != nil {
		t.Fatalf("writeChunk(large): %v", err)
	}

	got, scheme, ok, err := rf.readChunk(0, 0)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	if !ok {
		t.Fatal("readChunk reported absent after overwrite")
	}
	if scheme != compressionGZip {
		t.Fatalf("scheme = %d, want %d", scheme, compressionGZip)
	}
	if len(got) != len(large) {
		t.Fatalf("payload length = %d, want %d", len(got), len(large))
	}
	for i := range large {
		if got[i] != large[i] {
			t.Fatalf("payload byte %d = %d, want %d", i, got[i], large[i])
		}
	}
}

func TestWriteChunkPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")
	payload := []byte("persisted across a reopen")

	rf, err := openRegionFile(path)
	if err != nil {
		t.Fatalf("openRegionFile: %v", err)
	}
	if err := rf.writeChunk(10, 20, payload, compressionZlib, 1); err != nil {
		t.Fatalf("writeChunk: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf2, err := openRegionFile(path)
	if err != nil {
		t.Fatalf("re-openRegionFile: %v", err)
	}
	defer rf2.Close()

	if !rf2.has(10, 20) {
		t.Fatal("has(10,20) = false after reopening the region file")
	}
	got, _, ok, err := rf2.readChunk(10, 20)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	if !ok || string(got) != string(payload) {
		t.Fatalf("readChunk after reopen = (%q, %v), want (%q, true)", got, ok, payload)
	}
}

func TestDistinctLocalCoordinatesDoNotCollide(t *testing.T) {
	rf := tempRegionFile(t)
	if err := rf.writeChunk(1, 1, []byte("one"), compressionZlib, 1); err != nil {
		t.Fatalf("writeChunk: %v", err)
	}
	if err := rf.writeChunk(2, 2, []byte("two"), compressionZlib, 1); err != nil {
		t.Fatalf("writeChunk: %v", err)
	}
	a, _, _, err := rf.readChunk(1, 1)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	b, _, _, err := rf.readChunk(2, 2)
	if err != nil {
		t.Fatalf("readChunk: %v", err)
	}
	if string(a) != "one" || string(b) != "two" {
		t.Fatalf("got (%q, %q), want (\"one\", \"two\")", a, b)
	}
}
