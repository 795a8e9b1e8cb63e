package cycler

import (
	"math"
	"time"

	"cosmossdk.io/errors"

	"github.com/oxygene76/cycler-planner/internal/types"
	"github.com/oxygene76/cycler-planner/pkg/astronomy/orbital"
	"github.com/oxygene76/cycler-planner/pkg/propulsion"
)

const (
	// DefaultWindowDays is how long a departure window stays open
	DefaultWindowDays = 30
	// DefaultScheduleHorizonDays bounds how far ahead a window counts as schedulable
	DefaultScheduleHorizonDays = 365
)

// ServiceConfig tunes launch-window reporting
type ServiceConfig struct {
	Epoch               time.Time
	WindowDays          int
	ScheduleHorizonDays float64
}

// Service evaluates cycler routes against the propulsion catalog
type Service struct {
	routes     *RouteCatalog
	propulsion *propulsion.Catalog
	cfg        ServiceConfig
}

// NewService wires the route and propulsion catalogs together. Zero config
// fields fall back to the defaults.
func NewService(routes *RouteCatalog, prop *propulsion.Catalog, cfg ServiceConfig) *Service {
	if cfg.Epoch.IsZero() {
		cfg.Epoch = orbital.DefaultEpoch
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}
	if cfg.ScheduleHorizonDays <= 0 {
		cfg.ScheduleHorizonDays = DefaultScheduleHorizonDays
	}
	return &Service{routes: routes, propulsion: prop, cfg: cfg}
}

// Phase returns where the cycler sits in its loop at date, in [0, 1).
// Phase 0 is the origin encounter.
func (s *Service) Phase(route RouteProfile, date time.Time) float64 {
	days := orbital.DaysSince(s.cfg.Epoch, date)
	p := math.Mod(days, route.PeriodDays) / route.PeriodDays
	if p < 0 {
		p += 1
	}
	if p >= 1 {
		p = 0
	}
	return p
}

// NextLaunchWindow returns the window centred on the next origin encounter
// at or after now.
func (s *Service) NextLaunchWindow(route RouteProfile, now time.Time) (types.LaunchWindow, error) {
	phase := s.Phase(route, now)
	daysUntil := 0.0
	if phase > 0 {
		daysUntil = (1 - phase) * route.PeriodDays
	}

	optimal, err := orbital.AddDays(now, daysUntil)
	if err != nil {
		return types.LaunchWindow{}, err
	}
	start, err := orbital.AddDays(optimal, -float64(s.cfg.WindowDays)/2)
	if err != nil {
		return types.LaunchWindow{}, err
	}
	end, err := orbital.AddDays(start, float64(s.cfg.WindowDays))
	if err != nil {
		return types.LaunchWindow{}, err
	}
	return types.LaunchWindow{
		Start:           start,
		End:             end,
		Optimal:         optimal,
		DurationDays:    s.cfg.WindowDays,
		DaysUntilLaunch: daysUntil,
		Schedulable:     daysUntil <= s.cfg.ScheduleHorizonDays,
	}, nil
}

// FindRoute matches a cargo request to the cycler serving (origin, destination).
// Utilization is cargo / capacity and is deliberately not capped at 1.
func (s *Service) FindRoute(originID, destinationID string, cargoWeightKg float64, asOfYear int, now time.Time) (types.CyclerMatch, error) {
	if cargoWeightKg < 0 || math.IsNaN(cargoWeightKg) || math.IsInf(cargoWeightKg, 0) {
		return types.CyclerMatch{}, errors.Wrapf(types.ErrInvalidRequest, "cargo weight must be a non-negative number, got %v", cargoWeightKg)
	}

	route, ok := s.routes.Lookup(originID, destinationID)
	if !ok {
		return types.CyclerMatch{}, errors.Wrapf(types.ErrNoRouteDefined, "%s", orbital.NewBodyPair(originID, destinationID))
	}

	eligible := s.eligiblePropulsion(route, asOfYear)
	if len(eligible) == 0 {
		return types.CyclerMatch{}, errors.Wrapf(types.ErrNoPropulsionAvailable,
			"route %s prefers %v, none available by %d", route.RouteID, route.PreferredPropulsionIDs, asOfYear)
	}

	window, err := s.NextLaunchWindow(route, now)
	if err != nil {
		return types.CyclerMatch{}, errors.Wrapf(err, "route %s", route.RouteID)
	}

	return types.CyclerMatch{
		RouteID:                  route.RouteID,
		RouteName:                route.Name,
		PeriodDays:               route.PeriodDays,
		CargoCapacityKg:          route.CargoCapacityKg,
		PassengerCapacity:        route.PassengerCapacity,
		DeltaVRequirementKmS:     route.DeltaVRequirementKmS,
		EligiblePropulsionIDs:    eligible,
		CyclerPhase:              s.Phase(route, now),
		NextLaunchWindow:         window,
		CargoCapacityUtilization: cargoWeightKg / route.CargoCapacityKg,
		EstimatedTravelDays:      route.PeriodDays / 2,
	}, nil
}

// eligiblePropulsion keeps route preference order
func (s *Service) eligiblePropulsion(route RouteProfile, year int) []string {
	available := make(map[string]bool)
	for _, p := range s.propulsion.Available(year) {
		available[p.ID] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, id := range route.PreferredPropulsionIDs {
		p, ok := s.propulsion.Lookup(id)
		if !ok || !available[p.ID] || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.ID)
	}
	return out
}

// Routes exposes the route catalog.
func (s *Service) Routes() *RouteCatalog {
	return s.routes
}
