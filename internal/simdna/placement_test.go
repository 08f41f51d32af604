package simdna

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestOccupancy(t *testing.T) {
	occ := newOccupancy(10)

	if !occ.free(0, 10) {
		t.Fatal("fresh occupancy should be entirely free")
	}

	occ.claim(3, 6)
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"before the claim", 0, 3, true},
		{"after the claim", 6, 10, true},
		{"inside the claim", 4, 5, false},
		{"overlapping the left edge", 2, 4, false},
		{"overlapping the right edge", 5, 7, false},
		{"spanning the claim", 0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := occ.free(tt.start, tt.end); got != tt.want {
				t.Errorf("free(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestPlaceUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		occ := newOccupancy(20)
		start, ok := placeUniform(rng, occ, 5, 100)
		if !ok {
			t.Fatal("placeUniform() failed on an empty sequence")
		}
		if start < 0 || start > 15 {
			t.Fatalf("placeUniform() start = %d, want within [0, 15]", start)
		}
	}
}

func TestPlaceUniform_AvoidsOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	// only [0, 5) is left free
	occ := newOccupancy(20)
	occ.claim(5, 20)

	for i := 0; i < 50; i++ {
		start, ok := placeUniform(rng, occ, 5, 1000)
		if !ok {
			t.Fatal("placeUniform() failed with a free interval available")
		}
		if start != 0 {
			t.Fatalf("placeUniform() start = %d, want 0", start)
		}
	}
}

func TestPlaceUniform_TooLong(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	occ := newOccupancy(4)

	if _, ok := placeUniform(rng, occ, 10, 100); ok {
		t.Error("placeUniform() placed a motif longer than the sequence")
	}
}

func TestPlaceUniform_Exhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	// a fully claimed sequence can never admit a placement
	occ := newOccupancy(20)
	occ.claim(0, 20)

	if _, ok := placeUniform(rng, occ, 5, 50); ok {
		t.Error("placeUniform() reported success on a fully occupied sequence")
	}
}

func TestUniformInt(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := uniformInt(rng, 3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("uniformInt() = %d, want within [3, 7]", v)
		}
		seen[v] = true
	}
	for v := 3; v <= 7; v++ {
		if !seen[v] {
			t.Errorf("uniformInt() never produced %d", v)
		}
	}
}

func TestUniformInt_DegenerateRange(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	if v := uniformInt(rng, 4, 4); v != 4 {
		t.Errorf("uniformInt(4, 4) = %d, want 4", v)
	}
}
