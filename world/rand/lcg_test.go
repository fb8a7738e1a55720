package rand

import "testing"

func TestNextIntKnownSeedZero(t *testing.T) {
	// java.util.Random(0).nextInt() is a widely documented fixed point for
	// this LCG; matching it pins down Next/NextInt's bit-shift direction and
	// the multiplier/increment constants independently of any other test.
	r := New(0)
	if got := r.NextInt(); got != -1155484576 {
		t.Fatalf("NextInt() with seed 0 = %d, want -1155484576", got)
	}
}

func TestSetSeedIsReproducible(t *testing.T) {
	r1 := New(12345)
	r2 := New(12345)
	for i := 0; i < 64; i++ {
		a, b := r1.NextInt(), r2.NextInt()
		if a != b {
			t.Fatalf("draw %d diverged: %d != %d", i, a, b)
		}
	}
}

func TestNextIntNRangeAndDeterminism(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.NextIntN(37)
		if v < 0 || v >= 37 {
			t.Fatalf("NextIntN(37) out of range: %d", v)
		}
	}

	r1, r2 := New(99), New(99)
	for i := 0; i < 100; i++ {
		if a, b := r1.NextIntN(1000), r2.NextIntN(1000); a != b {
			t.Fatalf("NextIntN diverged at draw %d: %d != %d", i, a, b)
		}
	}
}

func TestNextIntNPowerOfTwoFastPath(t *testing.T) {
	r := New(1)
	for i := 0; i < 200; i++ {
		v := r.NextIntN(64)
		if v < 0 || v >= 64 {
			t.Fatalf("NextIntN(64) out of range: %d", v)
		}
	}
}

func TestNextIntNPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive bound")
		}
	}()
	New(1).NextIntN(0)
}

func TestNextDoubleRange(t *testing.T) {
	r := New(55)
	for i := 0; i < 500; i++ {
		v := r.NextDouble()
		if v < 0 || v >= 1 {
			t.Fatalf("NextDouble out of [0,1): %v", v)
		}
	}
}

func TestNextGaussianCachesPair(t *testing.T) {
	r1 := New(3)
	first := r1.NextGaussian()
	second := r1.NextGaussian()
	if first == second {
		t.Fatalf("expected distinct consecutive Gaussian draws, got %v twice", first)
	}

	r2 := New(3)
	if got := r2.NextGaussian(); got != first {
		t.Fatalf("NextGaussian not reproducible: got %v, want %v", got, first)
	}
}

func TestNextLongCombinesTwoDraws(t *testing.T) {
	r := New(2024)
	seen := make(map[int64]bool)
	for i := 0; i < 32; i++ {
		v := r.NextLong()
		if seen[v] {
			t.Fatalf("NextLong repeated a value within 32 draws: %d", v)
		}
		seen[v] = true
	}
}
