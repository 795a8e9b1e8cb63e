package orbital

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"cosmossdk.io/errors"

	"github.com/oxygene76/cycler-planner/internal/types"
)

const (
	// TwoPi is one full revolution in radians
	TwoPi = 2 * math.Pi

	secondsPerDay = 86400.0

	// MaxCalendarDays is the largest offset AddDays accepts, about 2.7 billion years
	MaxCalendarDays = 1e12
)

// DefaultEpoch is the reference date mean anomalies are measured from.
var DefaultEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// OrbitalBodyProfile is immutable reference data for a body on a circular
// heliocentric orbit.
type OrbitalBodyProfile struct {
	ID                string  `json:"id"`                  // Catalog identifier, lower case
	OrbitalPeriodDays float64 `json:"orbital_period_days"` // Sidereal period (days)
	SemiMajorAxisAU   float64 `json:"semi_major_axis_au"`  // a - Semi-major axis (AU)
}

// MeanMotion returns the mean motion in radians per day
func (b OrbitalBodyProfile) MeanMotion() float64 {
	return TwoPi / b.OrbitalPeriodDays
}

// MeanAnomaly returns the angular position in [0, 2π) at date, measured from epoch
func (b OrbitalBodyProfile) MeanAnomaly(date, epoch time.Time) float64 {
	return NormalizeAngle(b.MeanMotion() * DaysSince(epoch, date))
}

func (b OrbitalBodyProfile) validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("body id cannot be empty")
	}
	if !(b.OrbitalPeriodDays > 0) || math.IsInf(b.OrbitalPeriodDays, 0) {
		return fmt.Errorf("body %s: orbital period must be positive, got %v", b.ID, b.OrbitalPeriodDays)
	}
	if !(b.SemiMajorAxisAU > 0) || math.IsInf(b.SemiMajorAxisAU, 0) {
		return fmt.Errorf("body %s: semi-major axis must be positive, got %v", b.ID, b.SemiMajorAxisAU)
	}
	return nil
}

// DaysSince returns the signed number of days from epoch to date. It does
// not go through time.Duration, which saturates after about 292 years.
func DaysSince(epoch, date time.Time) float64 {
	secs := float64(date.Unix() - epoch.Unix())
	nanos := float64(date.Nanosecond() - epoch.Nanosecond())
	return (secs + nanos/1e9) / secondsPerDay
}

// AddDays shifts t by a fractional number of days: whole days through the
// calendar, the remainder as a duration. Offsets beyond MaxCalendarDays
// yield ErrInvalidRequest.
func AddDays(t time.Time, d float64) (time.Time, error) {
	if math.IsNaN(d) || math.Abs(d) > MaxCalendarDays {
		return time.Time{}, errors.Wrapf(types.ErrInvalidRequest, "%v days cannot be expressed as a calendar date", d)
	}
	whole := math.Trunc(d)
	rem := time.Duration((d - whole) * secondsPerDay * float64(time.Second))
	return t.AddDate(0, 0, int(whole)).Add(rem), nil
}

// NormalizeAngle wraps an angle into [0, 2π)
func NormalizeAngle(rad float64) float64 {
	a := math.Mod(rad, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// BodyCatalog is a read-only lookup of body profiles keyed by id.
type BodyCatalog struct {
	bodies  map[string]OrbitalBodyProfile
	aliases map[string]string
}

// NewBodyCatalog builds a catalog from profiles. Aliases map an alternate
// name onto a catalog id (e.g. "moon" -> "luna"). Invalid profiles,
// duplicate ids or dangling aliases are configuration errors and panic.
func NewBodyCatalog(profiles []OrbitalBodyProfile, aliases map[string]string) *BodyCatalog {
	c := &BodyCatalog{
		bodies:  make(map[string]OrbitalBodyProfile, len(profiles)),
		aliases: make(map[string]string, len(aliases)),
	}
	for _, p := range profiles {
		if err := p.validate(); err != nil {
			panic(fmt.Errorf("orbital: %w", err))
		}
		id := normalizeID(p.ID)
		if _, dup := c.bodies[id]; dup {
			panic(fmt.Errorf("orbital: duplicate body %s", id))
		}
		p.ID = id
		c.bodies[id] = p
	}
	for alias, target := range aliases {
		t := normalizeID(target)
		if _, ok := c.bodies[t]; !ok {
			panic(fmt.Errorf("orbital: alias %s points at unknown body %s", alias, target))
		}
		c.aliases[normalizeID(alias)] = t
	}
	return c
}

// Lookup resolves an id or alias, case-insensitively
func (c *BodyCatalog) Lookup(id string) (OrbitalBodyProfile, bool) {
	key := normalizeID(id)
	if target, ok := c.aliases[key]; ok {
		key = target
	}
	p, ok := c.bodies[key]
	return p, ok
}

// All returns every profile sorted by id
func (c *BodyCatalog) All() []OrbitalBodyProfile {
	out := make([]OrbitalBodyProfile, 0, len(c.bodies))
	for _, p := range c.bodies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of bodies.
func (c *BodyCatalog) Len() int {
	return len(c.bodies)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
