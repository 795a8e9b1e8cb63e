package orbital

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"
)

func TestHohmannEarthMars(t *testing.T) {
	dv := HohmannDeltaV(1.0, 1.524)
	if !scalar.EqualWithinAbs(dv, 5.6, 0.5) {
		t.Fatalf("Earth-Mars Δv = %f km/s, want ≈5.6", dv)
	}
	if !scalar.EqualWithinAbs(dv, 5.596037, 1e-5) {
		t.Errorf("Earth-Mars Δv = %f km/s, want 5.596037", dv)
	}
	tof := HohmannTimeOfFlightDays(1.0, 1.524)
	if !scalar.EqualWithinAbs(tof, 258.9, 0.1) {
		t.Errorf("Earth-Mars time of flight = %f days, want ~258.9", tof)
	}
}

func TestHohmannBurnSigns(t *testing.T) {
	dv1, dv2 := HohmannBurns(1.0, 1.524)
	if dv1 <= 0 || dv2 <= 0 {
		t.Fatalf("outbound burns should be positive: %f, %f", dv1, dv2)
	}
	dv1, dv2 = HohmannBurns(1.524, 1.0)
	if dv1 >= 0 || dv2 >= 0 {
		t.Fatalf("inbound burns should be negative: %f, %f", dv1, dv2)
	}
}

func TestHohmannProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r1 := rapid.Float64Range(0.1, 50).Draw(t, "r1")
		r2 := rapid.Float64Range(0.1, 50).Draw(t, "r2")
		if dv := HohmannDeltaV(r1, r1); dv != 0 {
			t.Fatalf("HohmannDeltaV(%v, %v) = %v, want 0", r1, r1, dv)
		}
		if a, b := HohmannDeltaV(r1, r2), HohmannDeltaV(r2, r1); a != b {
			t.Fatalf("asymmetric: %v vs %v", a, b)
		}
	})
}

func TestHohmannRejectsNonPositiveRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero radius")
		}
	}()
	HohmannDeltaV(0, 1)
}
