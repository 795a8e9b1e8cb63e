package cycler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxygene76/cycler-planner/pkg/astronomy/orbital"
)

// RouteProfile is a fixed periodic trajectory between two bodies
type RouteProfile struct {
	RouteID                string           `json:"route_id"`
	Name                   string           `json:"name"`
	Bodies                 orbital.BodyPair `json:"bodies"` // unordered
	PeriodDays             float64          `json:"period_days"`
	DeltaVRequirementKmS   float64          `json:"delta_v_requirement_km_s"`
	PreferredPropulsionIDs []string         `json:"preferred_propulsion_ids"` // ordered by preference
	CargoCapacityKg        float64          `json:"cargo_capacity_kg"`
	PassengerCapacity      int              `json:"passenger_capacity"`
}

func (r RouteProfile) validate() error {
	switch {
	case strings.TrimSpace(r.RouteID) == "":
		return fmt.Errorf("route id cannot be empty")
	case r.Bodies.A == "" || r.Bodies.B == "":
		return fmt.Errorf("route %s: both bodies must be set", r.RouteID)
	case r.Bodies.A == r.Bodies.B:
		return fmt.Errorf("route %s: bodies must differ", r.RouteID)
	case !(r.PeriodDays > 0) || r.PeriodDays > orbital.MaxCalendarDays:
		return fmt.Errorf("route %s: period must be in (0, %g] days, got %v", r.RouteID, orbital.MaxCalendarDays, r.PeriodDays)
	case !(r.CargoCapacityKg > 0):
		return fmt.Errorf("route %s: cargo capacity must be positive, got %v", r.RouteID, r.CargoCapacityKg)
	case r.PassengerCapacity < 0:
		return fmt.Errorf("route %s: passenger capacity cannot be negative", r.RouteID)
	case len(r.PreferredPropulsionIDs) == 0:
		return fmt.Errorf("route %s: at least one preferred propulsion is required", r.RouteID)
	}
	seen := make(map[string]bool, len(r.PreferredPropulsionIDs))
	for _, id := range r.PreferredPropulsionIDs {
		if seen[id] {
			return fmt.Errorf("route %s: propulsion %s listed twice", r.RouteID, id)
		}
		seen[id] = true
	}
	return nil
}

// RouteCatalog is the enumerated set of cycler routes, one per body pair.
type RouteCatalog struct {
	byPair map[orbital.BodyPair]RouteProfile
}

// NewRouteCatalog builds the catalog; invalid routes or two routes on the
// same pair panic.
func NewRouteCatalog(routes []RouteProfile) *RouteCatalog {
	c := &RouteCatalog{byPair: make(map[orbital.BodyPair]RouteProfile, len(routes))}
	ids := make(map[string]bool, len(routes))
	for _, r := range routes {
		r.Bodies = orbital.NewBodyPair(r.Bodies.A, r.Bodies.B)
		r.PreferredPropulsionIDs = normalizeIDs(r.PreferredPropulsionIDs)
		if err := r.validate(); err != nil {
			panic(fmt.Errorf("cycler: %w", err))
		}
		if ids[r.RouteID] {
			panic(fmt.Errorf("cycler: duplicate route id %s", r.RouteID))
		}
		ids[r.RouteID] = true
		if existing, dup := c.byPair[r.Bodies]; dup {
			panic(fmt.Errorf("cycler: routes %s and %s both serve %s", existing.RouteID, r.RouteID, r.Bodies))
		}
		c.byPair[r.Bodies] = r
	}
	return c
}

// Lookup returns the route serving the unordered pair (a, b)
func (c *RouteCatalog) Lookup(a, b string) (RouteProfile, bool) {
	r, ok := c.byPair[orbital.NewBodyPair(a, b)]
	if !ok {
		return RouteProfile{}, false
	}
	r.PreferredPropulsionIDs = append([]string(nil), r.PreferredPropulsionIDs...)
	return r, true
}

// All returns every route sorted by id
func (c *RouteCatalog) All() []RouteProfile {
	out := make([]RouteProfile, 0, len(c.byPair))
	for _, r := range c.byPair {
		r.PreferredPropulsionIDs = append([]string(nil), r.PreferredPropulsionIDs...)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RouteID < out[j].RouteID })
	return out
}

func normalizeIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.ToLower(strings.TrimSpace(id))
	}
	return out
}
