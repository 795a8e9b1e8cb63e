package propulsion

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"

	"github.com/oxygene76/cycler-planner/pkg/random"
)

var (
	chemical = Profile{ID: "chemical_rocket", Name: "Chemical Rocket", DeltaVCapacityKmS: 8, ExhaustVelocityKmS: 3.5,
		ThrustToWeight: 0.05, PayloadMassFraction: 0.1, Reliability: 0.95, CostPerKgPayload: 10000, AvailabilityYear: 1950}
	nuclearThermal = Profile{ID: "nuclear_thermal", Name: "Nuclear Thermal Rocket", DeltaVCapacityKmS: 12, ExhaustVelocityKmS: 8,
		ThrustToWeight: 0.03, PayloadMassFraction: 0.15, Reliability: 0.9, CostPerKgPayload: 25000, AvailabilityYear: 2035}
	ionDrive = Profile{ID: "ion_drive", Name: "Ion Drive", DeltaVCapacityKmS: 25, ExhaustVelocityKmS: 30,
		ThrustToWeight: 0.001, PayloadMassFraction: 0.05, Reliability: 0.85, CostPerKgPayload: 50000, AvailabilityYear: 2045}
)

func testCatalog() *Catalog {
	return NewCatalog([]Profile{ionDrive, chemical, nuclearThermal}, map[string]string{"chemical": "chemical_rocket"})
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog()
	p, ok := c.Lookup("Chemical")
	if !ok || p.ID != "chemical_rocket" {
		t.Fatalf("alias lookup failed: %v %v", p, ok)
	}
	if _, ok := c.Lookup("warp_drive"); ok {
		t.Fatal("unknown id should not resolve")
	}
	all := c.All()
	if all[0].ID != "chemical_rocket" || all[2].ID != "ion_drive" {
		t.Errorf("All() not ordered by availability: %v", all)
	}
}

func TestCatalogAvailable(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		year int
		want []string
	}{
		{1900, nil},
		{1950, []string{"chemical_rocket"}},
		{2024, []string{"chemical_rocket"}},
		{2035, []string{"chemical_rocket", "nuclear_thermal"}},
		{2100, []string{"chemical_rocket", "nuclear_thermal", "ion_drive"}},
	}
	for _, tt := range tests {
		got := c.Available(tt.year)
		if len(got) != len(tt.want) {
			t.Fatalf("Available(%d) = %d profiles, want %d", tt.year, len(got), len(tt.want))
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("Available(%d)[%d] = %s, want %s", tt.year, i, got[i].ID, id)
			}
		}
	}
}

func TestCatalogAvailableMonotonic(t *testing.T) {
	c := testCatalog()
	rapid.Check(t, func(t *rapid.T) {
		y1 := rapid.IntRange(1800, 2200).Draw(t, "y1")
		y2 := rapid.IntRange(y1, 2300).Draw(t, "y2")
		early, late := c.Available(y1), c.Available(y2)
		if len(late) < len(early) {
			t.Fatalf("Available(%d) has %d, Available(%d) has %d", y1, len(early), y2, len(late))
		}
		for i := range early {
			if early[i].ID != late[i].ID {
				t.Fatalf("profile %s dropped between %d and %d", early[i].ID, y1, y2)
			}
		}
	})
}

func TestCatalogRejectsInvalidProfiles(t *testing.T) {
	bad := []Profile{
		{ID: "neg_fraction", ExhaustVelocityKmS: 3, ThrustToWeight: 0.1, PayloadMassFraction: -0.1},
		{ID: "big_fraction", ExhaustVelocityKmS: 3, ThrustToWeight: 0.1, PayloadMassFraction: 1.5},
		{ID: "no_exhaust", ExhaustVelocityKmS: 0, ThrustToWeight: 0.1, PayloadMassFraction: 0.5},
		{ID: "bad_reliability", ExhaustVelocityKmS: 3, ThrustToWeight: 0.1, PayloadMassFraction: 0.5, Reliability: 1.2},
	}
	for _, p := range bad {
		t.Run(p.ID, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			NewCatalog([]Profile{p}, nil)
		})
	}
}

func TestSpecificImpulse(t *testing.T) {
	if isp := chemical.SpecificImpulse(); !scalar.EqualWithinAbs(isp, 356.9, 0.1) {
		t.Errorf("chemical Isp = %f s, want ~356.9", isp)
	}
}

func TestEstimateCost(t *testing.T) {
	if got := chemical.EstimateCost(1000); got.Int64() != 10_000_000 {
		t.Errorf("cost = %s, want 10000000", got)
	}
	if got := chemical.EstimateCost(0.5); got.Int64() != 10000 {
		t.Errorf("partial kg cost = %s, want 10000", got)
	}
	if got := chemical.EstimateCost(-3); !got.IsZero() {
		t.Errorf("negative payload cost = %s, want 0", got)
	}
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name    string
		deltaV  float64
		profile Profile
		sample  float64
		want    int
	}{
		{"chemical low bucket no jitter", 3, chemical, 0, 100},
		{"chemical bucket boundary is inclusive", 5, chemical, 0, 100},
		{"chemical mid bucket half jitter", 5.6, chemical, 0.5, 250},
		{"nuclear thermal", 5.6, nuclearThermal, 0, 132},    // 200 / sqrt(8/3.5)
		{"ion drive spiral penalty", 5.6, ionDrive, 0, 216}, // 200 / sqrt(30/3.5) / sqrt(0.1)
		{"deep space", 40, chemical, 0.999, 599},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewDurationEstimator(random.Fixed(tt.sample))
			if got := e.DurationDays(tt.deltaV, tt.profile); got != tt.want {
				t.Errorf("DurationDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDurationDaysPositive(t *testing.T) {
	fast := Profile{ID: "torch", ExhaustVelocityKmS: 1e7, ThrustToWeight: 1, PayloadMassFraction: 1}
	e := NewDurationEstimator(random.Fixed(0))
	if got := e.DurationDays(0, fast); got < 1 {
		t.Fatalf("DurationDays = %d, want >= 1", got)
	}
}

func TestEstimateFuelKg(t *testing.T) {
	f := NewFuelCalculator(DefaultReferencePayloadKg)
	if got := f.EstimateFuelKg(0, chemical); got != 0 {
		t.Fatalf("fuel for zero Δv = %v, want 0", got)
	}
	// 10000 kg total * (1 - e^(-5.596/3.5))
	want := 10000 * (1 - math.Exp(-5.596/3.5))
	if got := f.EstimateFuelKg(5.596, chemical); !scalar.EqualWithinRel(got, want, 1e-12) {
		t.Errorf("fuel = %f, want %f", got, want)
	}
}

func TestEstimateFuelDecreasesWithExhaustVelocity(t *testing.T) {
	f := NewFuelCalculator(DefaultReferencePayloadKg)
	rapid.Check(t, func(t *rapid.T) {
		dv := rapid.Float64Range(0.1, 20).Draw(t, "dv")
		ve := rapid.Float64Range(2, 200).Draw(t, "ve")
		step := rapid.Float64Range(1.01, 10).Draw(t, "step")
		slow := Profile{ID: "slow", ExhaustVelocityKmS: ve, PayloadMassFraction: 0.2}
		fast := Profile{ID: "fast", ExhaustVelocityKmS: ve * step, PayloadMassFraction: 0.2}
		if a, b := f.EstimateFuelKg(dv, slow), f.EstimateFuelKg(dv, fast); !(b < a) {
			t.Fatalf("fuel did not decrease: Ve %v -> %v gave %v -> %v", ve, ve*step, a, b)
		}
	})
}
