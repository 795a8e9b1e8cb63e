package random

import "testing"

func TestFixed(t *testing.T) {
	s := Fixed(0.25)
	for i := 0; i < 3; i++ {
		if got := s.Next(); got != 0.25 {
			t.Fatalf("Next() = %v, want 0.25", got)
		}
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	want := []float64{0.1, 0.2, 0.1, 0.2}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestSeededReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %v", i, va)
		}
	}
	if a.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", a.Seed())
	}
}

func TestIntn(t *testing.T) {
	tests := []struct {
		name    string
		sampler Sampler
		n       int
		want    int
	}{
		{"zero sample", Fixed(0), 50, 0},
		{"mid sample", Fixed(0.5), 50, 25},
		{"upper bound clamps", Fixed(0.999999999), 50, 49},
		{"out of range sample clamps", Fixed(1.5), 10, 9},
		{"non-positive n", Fixed(0.5), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intn(tt.sampler, tt.n); got != tt.want {
				t.Errorf("Intn = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
}
