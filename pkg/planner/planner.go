// Package planner assembles transfer plans and cycler matches from the
// orbital, propulsion and cycler components. A Planner holds only immutable
// catalogs and is safe for concurrent use.
package planner

import (
	"math"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/oxygene76/cycler-planner/internal/types"
	"github.com/oxygene76/cycler-planner/pkg/astronomy/orbital"
	"github.com/oxygene76/cycler-planner/pkg/cycler"
	"github.com/oxygene76/cycler-planner/pkg/propulsion"
	"github.com/oxygene76/cycler-planner/pkg/random"
)

// Re-exported error taxonomy.
var (
	ErrUnknownBody           = types.ErrUnknownBody
	ErrDegenerateOrbit       = types.ErrDegenerateOrbit
	ErrNoPropulsionAvailable = types.ErrNoPropulsionAvailable
	ErrNoRouteDefined        = types.ErrNoRouteDefined
	ErrInvalidRequest        = types.ErrInvalidRequest
)

// Catalogs is the reference data a Planner reads
type Catalogs struct {
	Bodies     *orbital.BodyCatalog
	Propulsion *propulsion.Catalog
	Routes     *cycler.RouteCatalog
	Policy     orbital.PhasePolicy
}

// Settings are the engine tunables
type Settings struct {
	Epoch               time.Time
	ReferencePayloadKg  float64
	LaunchWindowDays    int
	ScheduleHorizonDays float64
}

// DefaultSettings mirrors the reference constants
func DefaultSettings() Settings {
	return Settings{
		Epoch:               orbital.DefaultEpoch,
		ReferencePayloadKg:  propulsion.DefaultReferencePayloadKg,
		LaunchWindowDays:    cycler.DefaultWindowDays,
		ScheduleHorizonDays: cycler.DefaultScheduleHorizonDays,
	}
}

// Option customises a Planner
type Option func(*Planner)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithClock replaces time.Now for cycler phase lookups.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// Planner is the top-level planning entry point
type Planner struct {
	catalogs Catalogs
	settings Settings
	window   *orbital.WindowCalculator
	duration *propulsion.DurationEstimator
	fuel     *propulsion.FuelCalculator
	cyclers  *cycler.Service
	logger   log.Logger
	now      func() time.Time
}

// New creates a planner. Missing catalogs or a nil sampler are wiring
// errors and panic.
func New(catalogs Catalogs, settings Settings, sampler random.Sampler, opts ...Option) *Planner {
	if catalogs.Bodies == nil || catalogs.Propulsion == nil || catalogs.Routes == nil {
		panic("planner: bodies, propulsion and routes catalogs are required")
	}
	if settings.Epoch.IsZero() {
		settings.Epoch = orbital.DefaultEpoch
	}
	if settings.ReferencePayloadKg == 0 {
		settings.ReferencePayloadKg = propulsion.DefaultReferencePayloadKg
	}

	p := &Planner{
		catalogs: catalogs,
		settings: settings,
		window:   orbital.NewWindowCalculator(settings.Epoch, catalogs.Policy),
		duration: propulsion.NewDurationEstimator(sampler),
		fuel:     propulsion.NewFuelCalculator(settings.ReferencePayloadKg),
		cyclers: cycler.NewService(catalogs.Routes, catalogs.Propulsion, cycler.ServiceConfig{
			Epoch:               settings.Epoch,
			WindowDays:          settings.LaunchWindowDays,
			ScheduleHorizonDays: settings.ScheduleHorizonDays,
		}),
		logger: log.NewNopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalogs returns the reference data the planner was built with.
func (p *Planner) Catalogs() Catalogs {
	return p.catalogs
}

// PlanTransfer computes the next favourable window from launchDate and the
// cost of flying it on the given propulsion.
func (p *Planner) PlanTransfer(originID, destinationID string, launchDate time.Time, propulsionID string) (types.TransferPlan, error) {
	origin, dest, err := p.resolveBodies(originID, destinationID)
	if err != nil {
		return types.TransferPlan{}, err
	}

	prop, ok := p.catalogs.Propulsion.Lookup(propulsionID)
	if !ok {
		return types.TransferPlan{}, errors.Wrapf(ErrNoPropulsionAvailable, "unknown propulsion %q", propulsionID)
	}
	if !prop.AvailableIn(launchDate.Year()) {
		return types.TransferPlan{}, errors.Wrapf(ErrNoPropulsionAvailable,
			"%s is not available until %d (requested %d)", prop.ID, prop.AvailabilityYear, launchDate.Year())
	}

	window, err := p.window.ComputeWindow(origin, dest, launchDate)
	if err != nil {
		return types.TransferPlan{}, err
	}

	deltaV := orbital.HohmannDeltaV(origin.SemiMajorAxisAU, dest.SemiMajorAxisAU)
	transferDays := p.duration.DurationDays(deltaV, prop)
	fuel := p.fuel.EstimateFuelKg(deltaV, prop)

	launch, err := orbital.AddDays(launchDate, window.WaitDays)
	if err != nil {
		return types.TransferPlan{}, errors.Wrapf(err, "%s-%s launch", origin.ID, dest.ID)
	}
	arrival, err := orbital.AddDays(launch, float64(transferDays))
	if err != nil {
		return types.TransferPlan{}, errors.Wrapf(err, "%s-%s arrival", origin.ID, dest.ID)
	}
	plan := types.TransferPlan{
		OriginID:            origin.ID,
		DestinationID:       dest.ID,
		RequestedDate:       launchDate,
		LaunchDate:          launch,
		WaitDays:            window.WaitDays,
		TransferTimeDays:    transferDays,
		HohmannFlightDays:   orbital.HohmannTimeOfFlightDays(origin.SemiMajorAxisAU, dest.SemiMajorAxisAU),
		ArrivalDate:         arrival,
		DeltaVRequiredKmS:   deltaV,
		ExceedsCapacity:     deltaV > prop.DeltaVCapacityKmS,
		PropulsionID:        prop.ID,
		TransferType:        window.TransferType,
		SynodicPeriodDays:   window.SynodicPeriodDays,
		LaunchSeparationAU:  orbital.SeparationAU(origin, dest, launch, p.settings.Epoch),
		FuelMassKg:          fuel,
		ReliabilityFactor:   prop.Reliability,
		CostEstimateCredits: prop.EstimateCost(p.settings.ReferencePayloadKg),
	}

	p.logger.Debug("transfer planned",
		"origin", plan.OriginID,
		"destination", plan.DestinationID,
		"propulsion", plan.PropulsionID,
		"wait_days", math.Round(plan.WaitDays*100)/100,
		"delta_v_km_s", math.Round(deltaV*1000)/1000,
		"transfer_days", transferDays,
	)
	if plan.ExceedsCapacity {
		p.logger.Warn("delta-v exceeds propulsion capacity",
			"propulsion", prop.ID, "required", deltaV, "capacity", prop.DeltaVCapacityKmS)
	}
	return plan, nil
}

// FindCyclerRoute looks up the cycler serving the pair and checks it can be
// flown with technology available in asOfYear.
func (p *Planner) FindCyclerRoute(originID, destinationID string, cargoWeightKg float64, asOfYear int) (types.CyclerMatch, error) {
	origin, dest, err := p.resolveBodies(originID, destinationID)
	if err != nil {
		return types.CyclerMatch{}, err
	}

	match, err := p.cyclers.FindRoute(origin.ID, dest.ID, cargoWeightKg, asOfYear, p.now())
	if err != nil {
		return types.CyclerMatch{}, err
	}

	p.logger.Debug("cycler route matched",
		"route", match.RouteID,
		"phase", match.CyclerPhase,
		"utilization", match.CargoCapacityUtilization,
		"eligible", match.EligiblePropulsionIDs,
	)
	if match.CargoCapacityUtilization > 1 {
		p.logger.Warn("cargo exceeds cycler capacity",
			"route", match.RouteID, "cargo_kg", cargoWeightKg, "capacity_kg", match.CargoCapacityKg)
	}
	return match, nil
}

// BodyStates returns the heliocentric state of every catalog body at date.
func (p *Planner) BodyStates(date time.Time) []orbital.State {
	bodies := p.catalogs.Bodies.All()
	states := make([]orbital.State, 0, len(bodies))
	for _, b := range bodies {
		states = append(states, orbital.StateAt(b, date, p.settings.Epoch))
	}
	return states
}

func (p *Planner) resolveBodies(originID, destinationID string) (orbital.OrbitalBodyProfile, orbital.OrbitalBodyProfile, error) {
	origin, ok := p.catalogs.Bodies.Lookup(originID)
	if !ok {
		return orbital.OrbitalBodyProfile{}, orbital.OrbitalBodyProfile{}, errors.Wrapf(ErrUnknownBody, "origin %q", originID)
	}
	dest, ok := p.catalogs.Bodies.Lookup(destinationID)
	if !ok {
		return orbital.OrbitalBodyProfile{}, orbital.OrbitalBodyProfile{}, errors.Wrapf(ErrUnknownBody, "destination %q", destinationID)
	}
	return origin, dest, nil
}
