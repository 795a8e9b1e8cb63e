package propulsion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	sdkmath "cosmossdk.io/math"
)

const (
	// StandardGravity is g0 in m/s²
	StandardGravity = 9.80665

	// ChemicalBaselineExhaustKmS is the exhaust velocity every efficiency factor is normalised to
	ChemicalBaselineExhaustKmS = 3.5
)

// Profile describes a propulsion technology. Immutable once catalogued.
type Profile struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DeltaVCapacityKmS   float64 `json:"delta_v_capacity_km_s"`
	ExhaustVelocityKmS  float64 `json:"exhaust_velocity_km_s"`
	ThrustToWeight      float64 `json:"thrust_to_weight"`
	PayloadMassFraction float64 `json:"payload_mass_fraction"` // (0, 1]
	Reliability         float64 `json:"reliability"`           // [0, 1]
	CostPerKgPayload    int64   `json:"cost_per_kg_payload"`   // credits
	AvailabilityYear    int     `json:"availability_year"`
}

// SpecificImpulse returns Isp in seconds
func (p Profile) SpecificImpulse() float64 {
	return p.ExhaustVelocityKmS * 1000 / StandardGravity
}

// AvailableIn reports whether the technology exists in year
func (p Profile) AvailableIn(year int) bool {
	return p.AvailabilityYear <= year
}

// EstimateCost returns the credit cost of lifting payloadKg, rounded up to whole kilograms
func (p Profile) EstimateCost(payloadKg float64) sdkmath.Int {
	if payloadKg <= 0 {
		return sdkmath.ZeroInt()
	}
	kg := int64(math.Ceil(payloadKg))
	return sdkmath.LegacyNewDec(p.CostPerKgPayload).MulInt64(kg).TruncateInt()
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("propulsion id cannot be empty")
	case !(p.ExhaustVelocityKmS > 0):
		return fmt.Errorf("propulsion %s: exhaust velocity must be positive, got %v", p.ID, p.ExhaustVelocityKmS)
	case !(p.ThrustToWeight > 0):
		return fmt.Errorf("propulsion %s: thrust to weight must be positive, got %v", p.ID, p.ThrustToWeight)
	case !(p.PayloadMassFraction > 0) || p.PayloadMassFraction > 1:
		return fmt.Errorf("propulsion %s: payload mass fraction must be in (0, 1], got %v", p.ID, p.PayloadMassFraction)
	case p.Reliability < 0 || p.Reliability > 1 || math.IsNaN(p.Reliability):
		return fmt.Errorf("propulsion %s: reliability must be in [0, 1], got %v", p.ID, p.Reliability)
	case p.DeltaVCapacityKmS < 0 || math.IsNaN(p.DeltaVCapacityKmS):
		return fmt.Errorf("propulsion %s: delta-v capacity cannot be negative", p.ID)
	case p.CostPerKgPayload < 0:
		return fmt.Errorf("propulsion %s: cost per kg cannot be negative", p.ID)
	}
	return nil
}

// Catalog is a read-only registry of propulsion profiles
type Catalog struct {
	profiles []Profile // sorted by availability year, then id
	byID     map[string]int
	aliases  map[string]string
}

// NewCatalog builds a catalog. Invalid or duplicate profiles panic.
func NewCatalog(profiles []Profile, aliases map[string]string) *Catalog {
	c := &Catalog{
		profiles: make([]Profile, 0, len(profiles)),
		byID:     make(map[string]int, len(profiles)),
		aliases:  make(map[string]string, len(aliases)),
	}
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			panic(fmt.Errorf("propulsion: %w", err))
		}
		p.ID = normalizeID(p.ID)
		if seen[p.ID] {
			panic(fmt.Errorf("propulsion: duplicate profile %s", p.ID))
		}
		seen[p.ID] = true
		c.profiles = append(c.profiles, p)
	}
	sort.SliceStable(c.profiles, func(i, j int) bool {
		if c.profiles[i].AvailabilityYear != c.profiles[j].AvailabilityYear {
			return c.profiles[i].AvailabilityYear < c.profiles[j].AvailabilityYear
		}
		return c.profiles[i].ID < c.profiles[j].ID
	})
	for i, p := range c.profiles {
		c.byID[p.ID] = i
	}
	for alias, target := range aliases {
		t := normalizeID(target)
		if !seen[t] {
			panic(fmt.Errorf("propulsion: alias %s points at unknown profile %s", alias, target))
		}
		c.aliases[normalizeID(alias)] = t
	}
	return c
}

// Lookup resolves an id or alias
func (c *Catalog) Lookup(id string) (Profile, bool) {
	key := normalizeID(id)
	if target, ok := c.aliases[key]; ok {
		key = target
	}
	i, ok := c.byID[key]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i], true
}

// Available returns the profiles with AvailabilityYear <= year, oldest first.
// The result only grows as year increases.
func (c *Catalog) Available(year int) []Profile {
	n := sort.Search(len(c.profiles), func(i int) bool {
		return c.profiles[i].AvailabilityYear > year
	})
	out := make([]Profile, n)
	copy(out, c.profiles[:n])
	return out
}

// All returns every profile, oldest technology first
func (c *Catalog) All() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
