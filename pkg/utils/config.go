package utils

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/cycler-planner/pkg/astronomy/orbital"
	"github.com/oxygene76/cycler-planner/pkg/cycler"
	"github.com/oxygene76/cycler-planner/pkg/planner"
	"github.com/oxygene76/cycler-planner/pkg/propulsion"
	"github.com/oxygene76/cycler-planner/pkg/random"
)

const (
	epochLayout = "2006-01-02"
	envPrefix   = "CYCLERPLANNER"
	homeDirName = ".cycler-planner"
)

// Config represents the planner configuration
type Config struct {
	Engine           EngineConfig       `yaml:"engine" mapstructure:"engine"`
	Log              LogConfig          `yaml:"log" mapstructure:"log"`
	Bodies           []BodyConfig       `yaml:"bodies" mapstructure:"bodies"`
	BodyAliases      map[string]string  `yaml:"body_aliases" mapstructure:"body_aliases"`
	Propulsion       []PropulsionConfig `yaml:"propulsion" mapstructure:"propulsion"`
	PropulsionAlias  map[string]string  `yaml:"propulsion_aliases" mapstructure:"propulsion_aliases"`
	Routes           []RouteConfig      `yaml:"routes" mapstructure:"routes"`
	ConjunctionPairs [][]string         `yaml:"conjunction_pairs" mapstructure:"conjunction_pairs"`
}

// EngineConfig contains the engine tunables
type EngineConfig struct {
	Epoch               string  `yaml:"epoch" mapstructure:"epoch"` // YYYY-MM-DD, UTC
	ReferencePayloadKg  float64 `yaml:"reference_payload_kg" mapstructure:"reference_payload_kg"`
	LaunchWindowDays    int     `yaml:"launch_window_days" mapstructure:"launch_window_days"`
	ScheduleHorizonDays float64 `yaml:"schedule_horizon_days" mapstructure:"schedule_horizon_days"`
	Seed                uint64  `yaml:"seed" mapstructure:"seed"` // 0 draws a fresh seed
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// BodyConfig describes one orbital body
type BodyConfig struct {
	ID                string  `yaml:"id" mapstructure:"id"`
	OrbitalPeriodDays float64 `yaml:"orbital_period_days" mapstructure:"orbital_period_days"`
	SemiMajorAxisAU   float64 `yaml:"semi_major_axis_au" mapstructure:"semi_major_axis_au"`
}

// PropulsionConfig describes one propulsion technology
type PropulsionConfig struct {
	ID                  string  `yaml:"id" mapstructure:"id"`
	Name                string  `yaml:"name" mapstructure:"name"`
	DeltaVCapacityKmS   float64 `yaml:"delta_v_capacity_km_s" mapstructure:"delta_v_capacity_km_s"`
	ExhaustVelocityKmS  float64 `yaml:"exhaust_velocity_km_s" mapstructure:"exhaust_velocity_km_s"`
	ThrustToWeight      float64 `yaml:"thrust_to_weight" mapstructure:"thrust_to_weight"`
	PayloadMassFraction float64 `yaml:"payload_mass_fraction" mapstructure:"payload_mass_fraction"`
	Reliability         float64 `yaml:"reliability" mapstructure:"reliability"`
	CostPerKgPayload    int64   `yaml:"cost_per_kg_payload" mapstructure:"cost_per_kg_payload"`
	AvailabilityYear    int     `yaml:"availability_year" mapstructure:"availability_year"`
}

// RouteConfig describes one cycler route
type RouteConfig struct {
	ID                   string   `yaml:"id" mapstructure:"id"`
	Name                 string   `yaml:"name" mapstructure:"name"`
	Bodies               []string `yaml:"bodies" mapstructure:"bodies"`
	PeriodDays           float64  `yaml:"period_days" mapstructure:"period_days"`
	DeltaVRequirementKmS float64  `yaml:"delta_v_requirement_km_s" mapstructure:"delta_v_requirement_km_s"`
	PreferredPropulsion  []string `yaml:"preferred_propulsion" mapstructure:"preferred_propulsion"`
	CargoCapacityKg      float64  `yaml:"cargo_capacity_kg" mapstructure:"cargo_capacity_kg"`
	PassengerCapacity    int      `yaml:"passenger_capacity" mapstructure:"passenger_capacity"`
}

// DefaultConfig returns the reference solar-system tables
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Epoch:               orbital.DefaultEpoch.Format(epochLayout),
			ReferencePayloadKg:  propulsion.DefaultReferencePayloadKg,
			LaunchWindowDays:    cycler.DefaultWindowDays,
			ScheduleHorizonDays: cycler.DefaultScheduleHorizonDays,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Bodies: []BodyConfig{
			{ID: "earth", OrbitalPeriodDays: 365.25, SemiMajorAxisAU: 1.0},
			{ID: "venus", OrbitalPeriodDays: 224.7, SemiMajorAxisAU: 0.723},
			{ID: "mars", OrbitalPeriodDays: 686.98, SemiMajorAxisAU: 1.524},
			{ID: "luna", OrbitalPeriodDays: 27.32, SemiMajorAxisAU: 1.0}, // sidereal month, relative to Earth
		},
		BodyAliases: map[string]string{"moon": "luna"},
		Propulsion: []PropulsionConfig{
			{ID: "chemical_rocket", Name: "Chemical Rocket", DeltaVCapacityKmS: 8.0, ExhaustVelocityKmS: 3.5,
				ThrustToWeight: 0.05, PayloadMassFraction: 0.1, Reliability: 0.95, CostPerKgPayload: 10000, AvailabilityYear: 1950},
			{ID: "nuclear_thermal", Name: "Nuclear Thermal Rocket", DeltaVCapacityKmS: 12.0, ExhaustVelocityKmS: 8.0,
				ThrustToWeight: 0.03, PayloadMassFraction: 0.15, Reliability: 0.90, CostPerKgPayload: 25000, AvailabilityYear: 2035},
			{ID: "ion_drive", Name: "Ion Drive", DeltaVCapacityKmS: 25.0, ExhaustVelocityKmS: 30.0,
				ThrustToWeight: 0.001, PayloadMassFraction: 0.05, Reliability: 0.85, CostPerKgPayload: 50000, AvailabilityYear: 2045},
			{ID: "nuclear_electric", Name: "Nuclear Electric Propulsion", DeltaVCapacityKmS: 35.0, ExhaustVelocityKmS: 50.0,
				ThrustToWeight: 0.0005, PayloadMassFraction: 0.03, Reliability: 0.80, CostPerKgPayload: 75000, AvailabilityYear: 2050},
			{ID: "antimatter_catalyzed", Name: "Antimatter Catalyzed Rocket", DeltaVCapacityKmS: 50.0, ExhaustVelocityKmS: 100.0,
				ThrustToWeight: 0.02, PayloadMassFraction: 0.20, Reliability: 0.70, CostPerKgPayload: 200000, AvailabilityYear: 2070},
		},
		PropulsionAlias: map[string]string{"chemical": "chemical_rocket"},
		Routes: []RouteConfig{
			{ID: "earth_venus_cycler", Name: "Earth-Venus Cycler", Bodies: []string{"earth", "venus"},
				PeriodDays: 584, DeltaVRequirementKmS: 6.5, PreferredPropulsion: []string{"chemical_rocket", "nuclear_thermal"},
				CargoCapacityKg: 50000, PassengerCapacity: 20},
			{ID: "earth_mars_cycler", Name: "Earth-Mars Cycler", Bodies: []string{"earth", "mars"},
				PeriodDays: 780, DeltaVRequirementKmS: 8.0, PreferredPropulsion: []string{"nuclear_thermal", "ion_drive", "chemical_rocket"},
				CargoCapacityKg: 75000, PassengerCapacity: 15},
			{ID: "venus_mars_cycler", Name: "Venus-Mars Cycler", Bodies: []string{"venus", "mars"},
				PeriodDays: 414, DeltaVRequirementKmS: 4.5, PreferredPropulsion: []string{"chemical_rocket", "nuclear_thermal"},
				CargoCapacityKg: 35000, PassengerCapacity: 12},
		},
		ConjunctionPairs: [][]string{{"earth", "venus"}},
	}
}

// LoadConfig searches the default locations for config.yaml. A missing file
// yields DefaultConfig.
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	homeDir, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(homeDir, homeDirName))
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// LoadConfigFile loads configuration from an explicit path
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// newViper seeds a fresh instance with DefaultConfig so partial files only
// override what they name.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("engine.epoch", def.Engine.Epoch)
	v.SetDefault("engine.reference_payload_kg", def.Engine.ReferencePayloadKg)
	v.SetDefault("engine.launch_window_days", def.Engine.LaunchWindowDays)
	v.SetDefault("engine.schedule_horizon_days", def.Engine.ScheduleHorizonDays)
	v.SetDefault("engine.seed", def.Engine.Seed)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Catalog sections are replaced wholesale, never merged
	def := DefaultConfig()
	if !v.IsSet("bodies") {
		config.Bodies = def.Bodies
		if !v.IsSet("body_aliases") {
			config.BodyAliases = def.BodyAliases
		}
	}
	if !v.IsSet("propulsion") {
		config.Propulsion = def.Propulsion
		if !v.IsSet("propulsion_aliases") {
			config.PropulsionAlias = def.PropulsionAlias
		}
	}
	if !v.IsSet("routes") {
		config.Routes = def.Routes
	}
	if !v.IsSet("conjunction_pairs") {
		config.ConjunctionPairs = def.ConjunctionPairs
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// SaveConfig writes the configuration as YAML to path
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the path of the default config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, homeDirName, "config.yaml"), nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if _, err := config.EpochTime(); err != nil {
		return err
	}
	if !(config.Engine.ReferencePayloadKg > 0) {
		return fmt.Errorf("reference payload must be positive")
	}
	if config.Engine.LaunchWindowDays < 0 || config.Engine.ScheduleHorizonDays < 0 {
		return fmt.Errorf("launch window and schedule horizon cannot be negative")
	}

	bodies := make(map[string]bool, len(config.Bodies))
	for _, b := range config.Bodies {
		id := normalize(b.ID)
		if id == "" {
			return fmt.Errorf("body id cannot be empty")
		}
		if bodies[id] {
			return fmt.Errorf("duplicate body: %s", id)
		}
		if !positiveFinite(b.OrbitalPeriodDays) || !positiveFinite(b.SemiMajorAxisAU) {
			return fmt.Errorf("body %s: period and semi-major axis must be positive", id)
		}
		bodies[id] = true
	}
	for alias, target := range config.BodyAliases {
		if !bodies[normalize(target)] {
			return fmt.Errorf("body alias %s points at unknown body %s", alias, target)
		}
	}

	props := make(map[string]bool, len(config.Propulsion))
	for _, p := range config.Propulsion {
		profile := p.profile()
		if err := profile.Validate(); err != nil {
			return err
		}
		id := normalize(p.ID)
		if props[id] {
			return fmt.Errorf("duplicate propulsion: %s", id)
		}
		props[id] = true
	}
	for alias, target := range config.PropulsionAlias {
		if !props[normalize(target)] {
			return fmt.Errorf("propulsion alias %s points at unknown propulsion %s", alias, target)
		}
	}

	pairs := make(map[orbital.BodyPair]string, len(config.Routes))
	for _, r := range config.Routes {
		if len(r.Bodies) != 2 {
			return fmt.Errorf("route %s: exactly two bodies required", r.ID)
		}
		for _, b := range r.Bodies {
			if !bodies[normalize(b)] {
				return fmt.Errorf("route %s references unknown body %s", r.ID, b)
			}
		}
		if normalize(r.Bodies[0]) == normalize(r.Bodies[1]) {
			return fmt.Errorf("route %s: bodies must differ", r.ID)
		}
		pair := orbital.NewBodyPair(r.Bodies[0], r.Bodies[1])
		if other, dup := pairs[pair]; dup {
			return fmt.Errorf("routes %s and %s both serve %s", other, r.ID, pair)
		}
		pairs[pair] = r.ID
		if len(r.PreferredPropulsion) == 0 {
			return fmt.Errorf("route %s: at least one preferred propulsion is required", r.ID)
		}
		preferred := make(map[string]bool, len(r.PreferredPropulsion))
		for _, id := range r.PreferredPropulsion {
			resolved := config.resolvePropulsion(id)
			if !props[resolved] {
				return fmt.Errorf("route %s references unknown propulsion %s", r.ID, id)
			}
			if preferred[resolved] {
				return fmt.Errorf("route %s: duplicate propulsion %s", r.ID, resolved)
			}
			preferred[resolved] = true
		}
		if !positiveFinite(r.PeriodDays) || !positiveFinite(r.CargoCapacityKg) {
			return fmt.Errorf("route %s: period and cargo capacity must be positive", r.ID)
		}
		if r.PeriodDays > orbital.MaxCalendarDays {
			return fmt.Errorf("route %s: period exceeds %g days", r.ID, orbital.MaxCalendarDays)
		}
	}

	for _, pair := range config.ConjunctionPairs {
		if len(pair) != 2 {
			return fmt.Errorf("conjunction pair %v must name two bodies", pair)
		}
		for _, b := range pair {
			if !bodies[normalize(b)] {
				return fmt.Errorf("conjunction pair %v references unknown body %s", pair, b)
			}
		}
		if normalize(pair[0]) == normalize(pair[1]) {
			return fmt.Errorf("conjunction pair %v: bodies must differ", pair)
		}
	}
	return nil
}

// resolvePropulsion maps an id or alias to its canonical propulsion id
func (c *Config) resolvePropulsion(id string) string {
	key := normalize(id)
	for alias, target := range c.PropulsionAlias {
		if normalize(alias) == key {
			return normalize(target)
		}
	}
	return key
}

// EpochTime parses the configured reference epoch
func (c *Config) EpochTime() (time.Time, error) {
	if c.Engine.Epoch == "" {
		return orbital.DefaultEpoch, nil
	}
	t, err := time.ParseInLocation(epochLayout, c.Engine.Epoch, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch %q: %w", c.Engine.Epoch, err)
	}
	return t, nil
}

// Settings converts the engine section into planner settings.
func (c *Config) Settings() (planner.Settings, error) {
	epoch, err := c.EpochTime()
	if err != nil {
		return planner.Settings{}, err
	}
	return planner.Settings{
		Epoch:               epoch,
		ReferencePayloadKg:  c.Engine.ReferencePayloadKg,
		LaunchWindowDays:    c.Engine.LaunchWindowDays,
		ScheduleHorizonDays: c.Engine.ScheduleHorizonDays,
	}, nil
}

// Catalogs builds the immutable catalogs. Call only on a validated config;
// the catalog constructors panic on bad data.
func (c *Config) Catalogs() planner.Catalogs {
	bodies := make([]orbital.OrbitalBodyProfile, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		bodies = append(bodies, orbital.OrbitalBodyProfile{
			ID:                b.ID,
			OrbitalPeriodDays: b.OrbitalPeriodDays,
			SemiMajorAxisAU:   b.SemiMajorAxisAU,
		})
	}

	profiles := make([]propulsion.Profile, 0, len(c.Propulsion))
	for _, p := range c.Propulsion {
		profiles = append(profiles, p.profile())
	}

	routes := make([]cycler.RouteProfile, 0, len(c.Routes))
	for _, r := range c.Routes {
		preferred := make([]string, 0, len(r.PreferredPropulsion))
		for _, id := range r.PreferredPropulsion {
			preferred = append(preferred, c.resolvePropulsion(id))
		}
		routes = append(routes, cycler.RouteProfile{
			RouteID:                r.ID,
			Name:                   r.Name,
			Bodies:                 orbital.NewBodyPair(r.Bodies[0], r.Bodies[1]),
			PeriodDays:             r.PeriodDays,
			DeltaVRequirementKmS:   r.DeltaVRequirementKmS,
			PreferredPropulsionIDs: preferred,
			CargoCapacityKg:        r.CargoCapacityKg,
			PassengerCapacity:      r.PassengerCapacity,
		})
	}

	pairs := make([]orbital.BodyPair, 0, len(c.ConjunctionPairs))
	for _, p := range c.ConjunctionPairs {
		pairs = append(pairs, orbital.NewBodyPair(p[0], p[1]))
	}

	return planner.Catalogs{
		Bodies:     orbital.NewBodyCatalog(bodies, c.BodyAliases),
		Propulsion: propulsion.NewCatalog(profiles, c.PropulsionAlias),
		Routes:     cycler.NewRouteCatalog(routes),
		Policy:     orbital.NewPhasePolicy(pairs...),
	}
}

// Sampler returns the production jitter source. A zero seed draws one from crypto/rand.
func (c *Config) Sampler() (*random.Seeded, error) {
	seed := c.Engine.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return random.NewSeeded(seed), nil
}

func (p PropulsionConfig) profile() propulsion.Profile {
	return propulsion.Profile{
		ID:                  p.ID,
		Name:                p.Name,
		DeltaVCapacityKmS:   p.DeltaVCapacityKmS,
		ExhaustVelocityKmS:  p.ExhaustVelocityKmS,
		ThrustToWeight:      p.ThrustToWeight,
		PayloadMassFraction: p.PayloadMassFraction,
		Reliability:         p.Reliability,
		CostPerKgPayload:    p.CostPerKgPayload,
		AvailabilityYear:    p.AvailabilityYear,
	}
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
