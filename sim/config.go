package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure returned from
// Config.Validate and NewRun.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultRunLength is the number of simulated minutes in a standard run.
const DefaultRunLength = 500

// distributionTolerance bounds how far the class probabilities may drift from 1.
const distributionTolerance = 1e-6

// ArrivalConfig groups the arrival process parameters.
type ArrivalConfig struct {
	RatePerHour  float64           `yaml:"rate_per_hour" json:"rate_per_hour"` // ships per hour; per-minute probability is rate/60
	Distribution ClassDistribution `yaml:"class_distribution" json:"class_distribution"`
}

// ContainerCounts is the number of containers moved for each ship class.
type ContainerCounts struct {
	Small  int `yaml:"small" json:"small"`
	Medium int `yaml:"medium" json:"medium"`
	Large  int `yaml:"large" json:"large"`
}

// For returns the container count of a class.
func (c ContainerCounts) For(class ShipClass) int {
	switch class {
	case ClassSmall:
		return c.Small
	case ClassMedium:
		return c.Medium
	case ClassLarge:
		return c.Large
	default:
		return 0
	}
}

// BerthConfig groups berth and harbour movement parameters.
type BerthConfig struct {
	Count               int     `yaml:"count" json:"count"`
	ProductivityPerHour float64 `yaml:"productivity_per_hour" json:"productivity_per_hour"` // containers per hour per berth
	PilotageMinutes     int     `yaml:"pilotage_minutes" json:"pilotage_minutes"`
	MooringMinutes      int     `yaml:"mooring_minutes" json:"mooring_minutes"` // applies to both mooring and unmooring
}

// FinanceConfig groups prices and fixed costs.
type FinanceConfig struct {
	IncomePerContainer float64 `yaml:"income_per_container" json:"income_per_container"`
	CostPerContainer   float64 `yaml:"cost_per_container" json:"cost_per_container"`
	MonthlyMaintenance float64 `yaml:"monthly_maintenance" json:"monthly_maintenance"` // charged once per 60 simulated minutes
}

// WeatherConfig groups the weather process parameters.
type WeatherConfig struct {
	BadProbability float64 `yaml:"bad_probability" json:"bad_probability"`
	MinDuration    int     `yaml:"min_duration" json:"min_duration"`
	MaxDuration    int     `yaml:"max_duration" json:"max_duration"`
}

// Config is the immutable parameter set for one Run.
// Changing any field means discarding the Run and calling NewRun again.
type Config struct {
	Arrival        ArrivalConfig   `yaml:"arrival" json:"arrival"`
	Containers     ContainerCounts `yaml:"containers" json:"containers"`
	Berths         BerthConfig     `yaml:"berths" json:"berths"`
	Finance        FinanceConfig   `yaml:"finance" json:"finance"`
	Weather        WeatherConfig   `yaml:"weather" json:"weather"`
	UsePriority    bool            `yaml:"use_priority" json:"use_priority"`
	RunLength      int             `yaml:"run_length" json:"run_length"`           // minutes
	StepMultiplier int             `yaml:"step_multiplier" json:"step_multiplier"` // ticks per external trigger
	Seed           int64           `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the parameters the port model starts with.
func DefaultConfig() Config {
	return Config{
		Arrival: ArrivalConfig{
			RatePerHour:  2.0,
			Distribution: ClassDistribution{Small: 0.5, Medium: 0.3, Large: 0.2},
		},
		Containers: ContainerCounts{Small: 200, Medium: 500, Large: 1000},
		Berths: BerthConfig{
			Count:               3,
			ProductivityPerHour: 3000,
			PilotageMinutes:     30,
			MooringMinutes:      5,
		},
		Finance: FinanceConfig{
			IncomePerContainer: 10.0,
			CostPerContainer:   2.0,
			MonthlyMaintenance: 50000.0,
		},
		Weather: WeatherConfig{
			BadProbability: 0.1,
			MinDuration:    10,
			MaxDuration:    50,
		},
		UsePriority:    true,
		RunLength:      DefaultRunLength,
		StepMultiplier: 1,
		Seed:           42,
	}
}

// ServiceMinutes is the whole-minute service duration for a class:
// containers / productivity, converted to minutes and rounded up.
func (c Config) ServiceMinutes(class ShipClass) int {
	minutes := math.Ceil(c.serviceMinutesExact(class))
	if minutes < 1 {
		return 1
	}
	return int(minutes)
}

func (c Config) serviceMinutesExact(class ShipClass) float64 {
	return float64(c.Containers.For(class)) / c.Berths.ProductivityPerHour * 60
}

// Validate checks every field and returns an error wrapping ErrInvalidConfig
// for the first problem found.
func (c Config) Validate() error {
	d := c.Arrival.Distribution
	for _, class := range AllShipClasses {
		p := d.Probability(class)
		if err := validateProbability("class_distribution."+class.String(), p); err != nil {
			return err
		}
	}
	if math.Abs(d.Sum()-1) > distributionTolerance {
		return invalid("class_distribution must sum to 1, got %v", d.Sum())
	}
	if err := validateFiniteNonNegative("rate_per_hour", c.Arrival.RatePerHour); err != nil {
		return err
	}
	if c.Arrival.RatePerHour > 60 {
		return invalid("rate_per_hour must be at most 60 (one ship per minute), got %v", c.Arrival.RatePerHour)
	}
	for _, class := range AllShipClasses {
		if n := c.Containers.For(class); n <= 0 {
			return invalid("containers.%s must be positive, got %d", class, n)
		}
	}
	if c.Berths.Count < 1 {
		return invalid("berths.count must be at least 1, got %d", c.Berths.Count)
	}
	if err := validateFinitePositive("productivity_per_hour", c.Berths.ProductivityPerHour); err != nil {
		return err
	}
	if c.Berths.PilotageMinutes < 0 {
		return invalid("pilotage_minutes must be non-negative, got %d", c.Berths.PilotageMinutes)
	}
	if c.Berths.MooringMinutes <= 0 {
		return invalid("mooring_minutes must be positive, got %d", c.Berths.MooringMinutes)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"income_per_container", c.Finance.IncomePerContainer},
		{"cost_per_container", c.Finance.CostPerContainer},
		{"monthly_maintenance", c.Finance.MonthlyMaintenance},
	} {
		if err := validateFiniteNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if err := validateProbability("bad_probability", c.Weather.BadProbability); err != nil {
		return err
	}
	if c.Weather.MinDuration < 1 {
		return invalid("weather.min_duration must be at least 1, got %d", c.Weather.MinDuration)
	}
	if c.Weather.MaxDuration < c.Weather.MinDuration {
		return invalid("weather.max_duration (%d) must be >= min_duration (%d)", c.Weather.MaxDuration, c.Weather.MinDuration)
	}
	if c.RunLength <= 0 {
		return invalid("run_length must be positive, got %d", c.RunLength)
	}
	if c.StepMultiplier < 1 {
		return invalid("step_multiplier must be at least 1, got %d", c.StepMultiplier)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func validateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return invalid("%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

func validateFiniteNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid("%s must be a finite non-negative number, got %v", name, v)
	}
	return nil
}

func validateFinitePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("%s must be a finite positive number, got %v", name, v)
	}
	return nil
}

// LoadConfig reads a YAML run configuration layered over DefaultConfig.
// Unknown keys are rejected so that typos surface as errors.
// The result is not validated; NewRun does that.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading port config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes layered over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing port config: %w", err)
	}
	return cfg, nil
}
