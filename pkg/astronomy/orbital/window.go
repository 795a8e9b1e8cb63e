package orbital

import (
	"math"
	"sort"
	"time"

	"cosmossdk.io/errors"

	"github.com/oxygene76/cycler-planner/internal/types"
)

// BodyPair is an unordered pair of body ids
type BodyPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewBodyPair returns the canonical (sorted, lower case) form of a pair
func NewBodyPair(a, b string) BodyPair {
	ids := []string{normalizeID(a), normalizeID(b)}
	sort.Strings(ids)
	return BodyPair{A: ids[0], B: ids[1]}
}

// String implements the Stringer interface.
func (p BodyPair) String() string {
	return p.A + "-" + p.B
}

// PhasePolicy decides which alignment a body pair departs on. Pairs not
// listed target opposition.
type PhasePolicy struct {
	conjunction map[BodyPair]bool
}

// NewPhasePolicy marks the given pairs as inferior-conjunction transfers.
func NewPhasePolicy(conjunctionPairs ...BodyPair) PhasePolicy {
	p := PhasePolicy{conjunction: make(map[BodyPair]bool, len(conjunctionPairs))}
	for _, pair := range conjunctionPairs {
		p.conjunction[NewBodyPair(pair.A, pair.B)] = true
	}
	return p
}

// TargetPhase returns the phase angle to wait for and the transfer type it implies
func (p PhasePolicy) TargetPhase(originID, destinationID string) (float64, types.TransferType) {
	if p.conjunction[NewBodyPair(originID, destinationID)] {
		return 0, types.TransferConjunction
	}
	return math.Pi, types.TransferOpposition
}

// Window is the launch-timing part of a transfer plan
type Window struct {
	PhaseAngle        float64 // Current phase angle (radians, [0, 2π))
	TargetPhase       float64 // Phase angle the transfer departs on (radians)
	WaitDays          float64 // Days until the nearer alignment, in [0, synodic/2]
	SynodicPeriodDays float64
	TransferType      types.TransferType
}

// WindowCalculator computes phase geometry between two circular orbits
type WindowCalculator struct {
	epoch  time.Time
	policy PhasePolicy
}

// NewWindowCalculator creates a calculator measuring anomalies from epoch
func NewWindowCalculator(epoch time.Time, policy PhasePolicy) *WindowCalculator {
	return &WindowCalculator{epoch: epoch, policy: policy}
}

// Epoch returns the reference epoch.
func (w *WindowCalculator) Epoch() time.Time {
	return w.epoch
}

// PhaseAngle returns (dest - origin) mean anomaly at date, wrapped to [0, 2π)
func (w *WindowCalculator) PhaseAngle(origin, destination OrbitalBodyProfile, date time.Time) float64 {
	return NormalizeAngle(destination.MeanAnomaly(date, w.epoch) - origin.MeanAnomaly(date, w.epoch))
}

// ComputeWindow finds the wait until the next favourable alignment. Bodies
// sharing a period never change relative phase and yield ErrDegenerateOrbit.
func (w *WindowCalculator) ComputeWindow(origin, destination OrbitalBodyProfile, launchDate time.Time) (Window, error) {
	synodic, err := SynodicPeriod(origin.OrbitalPeriodDays, destination.OrbitalPeriodDays)
	if err != nil {
		return Window{}, errors.Wrapf(err, "%s and %s", origin.ID, destination.ID)
	}

	angularVelocityDiff := destination.MeanMotion() - origin.MeanMotion()
	if angularVelocityDiff == 0 {
		return Window{}, errors.Wrapf(types.ErrDegenerateOrbit, "%s and %s have identical mean motion", origin.ID, destination.ID)
	}

	phase := w.PhaseAngle(origin, destination, launchDate)
	target, transferType := w.policy.TargetPhase(origin.ID, destination.ID)

	daysToOptimal := math.Mod(math.Abs((target-phase)/angularVelocityDiff), synodic)
	// Pick the nearer of the two symmetric alignments in one synodic cycle
	if daysToOptimal > synodic/2 {
		daysToOptimal = synodic - daysToOptimal
	}

	return Window{
		PhaseAngle:        phase,
		TargetPhase:       target,
		WaitDays:          daysToOptimal,
		SynodicPeriodDays: synodic,
		TransferType:      transferType,
	}, nil
}

// SynodicPeriod returns |p1*p2| / |p1-p2| in the units of the inputs.
func SynodicPeriod(p1, p2 float64) (float64, error) {
	diff := math.Abs(p1 - p2)
	if diff == 0 {
		return 0, errors.Wrapf(types.ErrDegenerateOrbit, "equal orbital periods (%.4f days)", p1)
	}
	s := math.Abs(p1*p2) / diff
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return 0, errors.Wrapf(types.ErrDegenerateOrbit, "synodic period of %.4f and %.4f days is not finite", p1, p2)
	}
	return s, nil
}
