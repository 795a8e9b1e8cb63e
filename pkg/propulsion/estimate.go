package propulsion

import (
	"fmt"
	"math"

	"github.com/oxygene76/cycler-planner/pkg/random"
)

// DefaultReferencePayloadKg is the nominal payload fuel estimates are quoted for
const DefaultReferencePayloadKg = 1000.0

// lowThrustThreshold marks systems that must spiral out of and into gravity wells
const lowThrustThreshold = 0.01

// durationBucket is a stepped base duration: Base + jitter in [0, Jitter)
type durationBucket struct {
	MaxDeltaV float64 // inclusive upper bound (km/s)
	Base      int     // days
	Jitter    int     // days
}

var durationBuckets = []durationBucket{
	{MaxDeltaV: 5, Base: 100, Jitter: 50},   // Earth-Moon like
	{MaxDeltaV: 10, Base: 200, Jitter: 100}, // Earth-Venus/Mars
	{MaxDeltaV: 15, Base: 300, Jitter: 150}, // Venus-Mars
	{MaxDeltaV: math.Inf(1), Base: 400, Jitter: 200},
}

// DurationEstimator maps Δv and propulsion performance onto transit days
type DurationEstimator struct {
	sampler random.Sampler
}

// NewDurationEstimator creates an estimator drawing bucket jitter from sampler
func NewDurationEstimator(sampler random.Sampler) *DurationEstimator {
	if sampler == nil {
		panic("propulsion: nil sampler")
	}
	return &DurationEstimator{sampler: sampler}
}

// BaseDays returns the jittered bucket duration for a Δv magnitude
func (e *DurationEstimator) BaseDays(deltaVKmS float64) int {
	dv := math.Abs(deltaVKmS)
	for _, b := range durationBuckets {
		if dv <= b.MaxDeltaV {
			return b.Base + random.Intn(e.sampler, b.Jitter)
		}
	}
	// NaN falls through every comparison
	panic(fmt.Errorf("propulsion: invalid delta-v %v", deltaVKmS))
}

// DurationDays returns the estimated transit time in whole days, never less than one
func (e *DurationEstimator) DurationDays(deltaVKmS float64, p Profile) int {
	base := float64(e.BaseDays(deltaVKmS))

	efficiency := p.ExhaustVelocityKmS / ChemicalBaselineExhaustKmS
	adjusted := base / math.Sqrt(efficiency)

	if p.ThrustToWeight < lowThrustThreshold {
		adjusted *= 1 / math.Sqrt(p.ThrustToWeight*100)
	}

	days := int(math.Round(adjusted))
	if days < 1 {
		days = 1
	}
	return days
}

// FuelCalculator estimates propellant mass with the Tsiolkovsky rocket equation
type FuelCalculator struct {
	referencePayloadKg float64
}

// NewFuelCalculator creates a calculator quoting fuel for referencePayloadKg
func NewFuelCalculator(referencePayloadKg float64) *FuelCalculator {
	if !(referencePayloadKg > 0) {
		panic(fmt.Errorf("propulsion: reference payload must be positive, got %v", referencePayloadKg))
	}
	return &FuelCalculator{referencePayloadKg: referencePayloadKg}
}

// ReferencePayloadKg returns the nominal payload.
func (f *FuelCalculator) ReferencePayloadKg() float64 {
	return f.referencePayloadKg
}

// EstimateFuelKg returns the fuel for deltaVKmS on profile p.
//
//	m0/mf = exp(Δv/Ve)
//	fuel  = (payload / payload_fraction) * (1 - mf/m0)
func (f *FuelCalculator) EstimateFuelKg(deltaVKmS float64, p Profile) float64 {
	deltaV := math.Abs(deltaVKmS) * 1000
	exhaust := p.ExhaustVelocityKmS * 1000

	massRatio := math.Exp(deltaV / exhaust)
	totalMass := f.referencePayloadKg / p.PayloadMassFraction
	return totalMass * (1 - 1/massRatio)
}
