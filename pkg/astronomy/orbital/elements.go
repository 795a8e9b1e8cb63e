package orbital

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrbitalElements represents coplanar Keplerian elements at an instant
type OrbitalElements struct {
	SemiMajorAxisAU float64 // a - Semi-major axis (AU)
	Eccentricity    float64 // e - Eccentricity (0-1)
	MeanMotion      float64 // n - Mean motion (radians/day)
	MeanAnomaly     float64 // M - Mean anomaly (radians)
}

// State is a heliocentric ecliptic position and velocity
type State struct {
	BodyID       string  `json:"body_id"`
	PositionAU   r3.Vec  `json:"position_au"`
	VelocityKmS  r3.Vec  `json:"velocity_km_s"`
	DistanceAU   float64 `json:"distance_au"`
	LongitudeRad float64 `json:"longitude_rad"`
}

// Elements returns the circular elements of b at date.
func (b OrbitalBodyProfile) Elements(date, epoch time.Time) OrbitalElements {
	return OrbitalElements{
		SemiMajorAxisAU: b.SemiMajorAxisAU,
		MeanMotion:      b.MeanMotion(),
		MeanAnomaly:     b.MeanAnomaly(date, epoch),
	}
}

// ToCartesian converts the elements to an in-plane position (AU) and
// velocity (AU/day). Periapsis lies on +X.
func (oe OrbitalElements) ToCartesian() (pos, vel r3.Vec) {
	E := oe.solveKeplersEquation()
	cosE, sinE := math.Cos(E), math.Sin(E)
	root := math.Sqrt(1 - oe.Eccentricity*oe.Eccentricity)

	pos = r3.Vec{
		X: oe.SemiMajorAxisAU * (cosE - oe.Eccentricity),
		Y: oe.SemiMajorAxisAU * root * sinE,
	}

	factor := oe.SemiMajorAxisAU * oe.MeanMotion / (1 - oe.Eccentricity*cosE)
	vel = r3.Vec{
		X: -factor * sinE,
		Y: factor * root * cosE,
	}
	return pos, vel
}

// solveKeplersEquation solves M = E - e*sin(E) for E
func (oe OrbitalElements) solveKeplersEquation() float64 {
	// Newton-Raphson iteration
	E := oe.MeanAnomaly
	if oe.Eccentricity > 0.8 {
		E = math.Pi
	}

	const (
		tolerance     = 1e-10
		maxIterations = 50
	)
	for i := 0; i < maxIterations; i++ {
		f := E - oe.Eccentricity*math.Sin(E) - oe.MeanAnomaly
		fp := 1 - oe.Eccentricity*math.Cos(E)

		deltaE := f / fp
		E -= deltaE
		if math.Abs(deltaE) < tolerance {
			break
		}
	}
	return E
}

// StateAt returns the heliocentric state of b at date
func StateAt(b OrbitalBodyProfile, date, epoch time.Time) State {
	pos, vel := b.Elements(date, epoch).ToCartesian()
	return State{
		BodyID:       b.ID,
		PositionAU:   pos,
		VelocityKmS:  r3.Scale(AU/secondsPerDay, vel),
		DistanceAU:   r3.Norm(pos),
		LongitudeRad: NormalizeAngle(math.Atan2(pos.Y, pos.X)),
	}
}

// SeparationAU returns the straight-line distance between a and b at date
func SeparationAU(a, b OrbitalBodyProfile, date, epoch time.Time) float64 {
	pa, _ := a.Elements(date, epoch).ToCartesian()
	pb, _ := b.Elements(date, epoch).ToCartesian()
	return r3.Norm(r3.Sub(pa, pb))
}
