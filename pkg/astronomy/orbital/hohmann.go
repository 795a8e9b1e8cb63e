package orbital

import (
	"fmt"
	"math"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.495978707e8
	// MuSun is the heliocentric gravitational parameter (km³/s²)
	MuSun = 1.32712440018e11
)

// HohmannDeltaV returns the total Δv (km/s) of a two-burn Hohmann transfer
// between coplanar circular heliocentric orbits of radii r1 and r2 (AU).
func HohmannDeltaV(r1AU, r2AU float64) float64 {
	dv1, dv2 := HohmannBurns(r1AU, r2AU)
	return math.Abs(dv1) + math.Abs(dv2)
}

// HohmannBurns returns the departure and arrival burns (km/s). Signs follow
// the direction of the transfer: outbound burns are positive.
func HohmannBurns(r1AU, r2AU float64) (dv1, dv2 float64) {
	if !(r1AU > 0) || !(r2AU > 0) {
		panic(fmt.Errorf("orbital: Hohmann radii must be positive (r1=%v AU, r2=%v AU)", r1AU, r2AU))
	}
	r1 := r1AU * AU
	r2 := r2AU * AU
	aTransfer := 0.5 * (r1 + r2)

	v1 := math.Sqrt(MuSun / r1)
	vt1 := math.Sqrt(MuSun * (2/r1 - 1/aTransfer))
	dv1 = vt1 - v1

	v2 := math.Sqrt(MuSun / r2)
	vt2 := math.Sqrt(MuSun * (2/r2 - 1/aTransfer))
	dv2 = v2 - vt2
	return dv1, dv2
}

// HohmannTimeOfFlightDays returns half the period of the transfer ellipse.
func HohmannTimeOfFlightDays(r1AU, r2AU float64) float64 {
	aTransfer := 0.5 * (r1AU + r2AU) * AU
	return math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/MuSun) / secondsPerDay
}
