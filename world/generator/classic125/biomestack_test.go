package classic125

import "testing"

func TestChunkGrid16IsDeterministicForASeed(t *testing.T) {
	a := NewBiomeStack(42).ChunkGrid16(3, -5)
	b := NewBiomeStack(42).ChunkGrid16(3, -5)
	if len(a) != 256 || len(b) != 256 {
		t.Fatalf("ChunkGrid16 returned %d/%d cells, want 256", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d diverged across independently built stacks for the same seed: %d != %d", i, a[i], b[i])
		}
	}
}

func TestChunkGrid16DifferentSeedsCanDiverge(t *testing.T) {
	a := NewBiomeStack(1).ChunkGrid16(0, 0)
	b := NewBiomeStack(2).ChunkGrid16(0, 0)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two distinct seeds produced an identical 16x16 biome grid at origin, expected at least one cell to differ")
	}
}

func TestChunkGrid16AdjacentChunksTile(t *testing.T) {
	s := NewBiomeStack(7)
	whole := s.scale1.Sample(0, 0, 32, 16)
	left := s.ChunkGrid16(0, 0)
	right := s.ChunkGrid16(1, 0)
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			if got, want := left[z*16+x], whole[z*32+x]; got != want {
				t.Fatalf("left chunk cell (%d,%d) = %d, want %d", x, z, got, want)
			}
			if got, want := right[z*16+x], whole[z*32+16+x]; got != want {
				t.Fatalf("right chunk cell (%d,%d) = %d, want %d", x, z, got, want)
			}
		}
	}
}

func TestScale4Window5x5IsCenteredOnTheRequestedColumn(t *testing.T) {
	s := NewBiomeStack(99)
	wx, wz := int32(40), int32(-24)
	window := s.Scale4Window5x5(wx, wz)

	cx, cz := wx>>2, wz>>2
	full := s.scale4.Sample(cx-2, cz-2, 5, 5)
	for iz := 0; iz < 5; iz++ {
		for ix := 0; ix < 5; ix++ {
			if got, want := window[ix][iz], full[int32(iz)*5+int32(ix)]; got != want {
				t.Fatalf("window[%d][%d] = %d, want %d", ix, iz, got, want)
			}
		}
	}
}
