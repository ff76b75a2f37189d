// Package config provides configuration loading and access for the trainer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all trainer configuration parameters.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Sprites    SpritesConfig    `yaml:"sprites"`
	Dino       DinoConfig       `yaml:"dino"`
	Cactus     CactusConfig     `yaml:"cactus"`
	Bird       BirdConfig       `yaml:"bird"`
	Cloud      CloudConfig      `yaml:"cloud"`
	SpeedMod   SpeedModConfig   `yaml:"speed_mod"`
	Settings   SettingsConfig   `yaml:"settings"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	AI         AIConfig         `yaml:"ai"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Storage    StorageConfig    `yaml:"storage"`
}

// CanvasConfig holds the visible field dimensions.
type CanvasConfig struct {
	Width       float64 `yaml:"width" ini:"width"`
	Height      float64 `yaml:"height" ini:"height"`
	GroundWidth float64 `yaml:"ground_width" ini:"ground_width"` // ground texture wraps after this many pixels
}

// SpriteSize is the collision footprint of one sprite.
type SpriteSize struct {
	W float64 `yaml:"w" ini:"w"`
	H float64 `yaml:"h" ini:"h"`
}

// SpritesConfig holds the footprint of every actor sprite.
type SpritesConfig struct {
	Dino          SpriteSize `yaml:"dino"`
	DinoDuck      SpriteSize `yaml:"dino_duck"`
	Cactus        SpriteSize `yaml:"cactus"`
	CactusDouble  SpriteSize `yaml:"cactus_double"`
	CactusDoubleB SpriteSize `yaml:"cactus_double_b"`
	CactusTriple  SpriteSize `yaml:"cactus_triple"`
	Bird          SpriteSize `yaml:"bird"`
	Cloud         SpriteSize `yaml:"cloud"`
}

// DinoConfig holds agent placement.
type DinoConfig struct {
	X            float64 `yaml:"x" ini:"x"`
	GroundOffset float64 `yaml:"ground_offset" ini:"ground_offset"`
}

// CactusConfig holds ground hazard placement.
type CactusConfig struct {
	GroundOffset float64 `yaml:"ground_offset" ini:"ground_offset"`
}

// BirdConfig holds aerial hazard placement.
type BirdConfig struct {
	AltitudeMin int `yaml:"altitude_min" ini:"altitude_min"` // pixels above the ground line
	AltitudeMax int `yaml:"altitude_max" ini:"altitude_max"`
	WingsRate   int `yaml:"wings_rate" ini:"wings_rate"` // frames between wing flaps
}

// CloudConfig holds decorative cloud placement.
type CloudConfig struct {
	YMin int `yaml:"y_min" ini:"y_min"`
	YMax int `yaml:"y_max" ini:"y_max"`
}

// SpeedModConfig bounds the per-instance speed multiplier, in tenths.
type SpeedModConfig struct {
	Min int `yaml:"min" ini:"min"`
	Max int `yaml:"max" ini:"max"`
}

// SpawnRatesConfig holds spawn moduli in frames per category.
type SpawnRatesConfig struct {
	Cacti  int `yaml:"cacti" ini:"cacti"`
	Birds  int `yaml:"birds" ini:"birds"`
	Clouds int `yaml:"clouds" ini:"clouds"`
}

// SettingsConfig is the baseline of the settings the difficulty ramp changes.
type SettingsConfig struct {
	BgSpeed           float64          `yaml:"bg_speed" ini:"bg_speed"`
	BirdSpeed         float64          `yaml:"bird_speed" ini:"bird_speed"`
	CloudSpeed        float64          `yaml:"cloud_speed" ini:"cloud_speed"`
	DinoGravity       float64          `yaml:"dino_gravity" ini:"dino_gravity"`
	DinoLift          float64          `yaml:"dino_lift" ini:"dino_lift"`
	DinoLegsRate      int              `yaml:"dino_legs_rate" ini:"dino_legs_rate"`
	SpawnRates        SpawnRatesConfig `yaml:"spawn_rates" ini:"-"`
	ScoreIncreaseRate int              `yaml:"score_increase_rate" ini:"score_increase_rate"`
}

// DifficultyConfig holds the level thresholds of the difficulty ramp.
type DifficultyConfig struct {
	LevelDivisor  int     `yaml:"level_divisor" ini:"level_divisor"`   // level = score / this
	BirdLevel     int     `yaml:"bird_level" ini:"bird_level"`         // birds appear above this level
	LinearFrom    int     `yaml:"linear_from" ini:"linear_from"`       // first level of the linear band
	GeometricFrom int     `yaml:"geometric_from" ini:"geometric_from"` // first level of the geometric band
	LegRateFloor  int     `yaml:"leg_rate_floor" ini:"leg_rate_floor"`
	LevelNorm     float64 `yaml:"level_norm" ini:"level_norm"` // perception divides level by this
}

// AIConfig holds evolution parameters.
type AIConfig struct {
	PopulationSize    int     `yaml:"population_size" ini:"population_size"`
	MutationRate      float64 `yaml:"mutation_rate" ini:"mutation_rate"`
	MutationDeviation float64 `yaml:"mutation_deviation" ini:"mutation_deviation"`
	MutableFields     string  `yaml:"mutable_fields" ini:"mutable_fields"` // bias, weight or bias+weight
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	GenerationWindow int `yaml:"generation_window" ini:"generation_window"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend" ini:"backend"` // memory or sqlite
	Path    string `yaml:"path" ini:"path"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or INI file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		if strings.EqualFold(filepath.Ext(path), ".ini") {
			if err := cfg.overlayINI(path); err != nil {
				return nil, err
			}
		} else {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// Unmarshal into same struct - only overwrites fields present in file
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Canvas.Width > 0 && c.Canvas.Height > 0, "canvas must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	check(c.Canvas.GroundWidth > 0, "canvas.ground_width must be positive")
	check(c.AI.PopulationSize >= 1, "ai.population_size must be >= 1, got %d", c.AI.PopulationSize)
	check(c.AI.MutationRate >= 0 && c.AI.MutationRate <= 1, "ai.mutation_rate must be in [0,1], got %v", c.AI.MutationRate)
	check(c.AI.MutationDeviation >= 0, "ai.mutation_deviation must be >= 0, got %v", c.AI.MutationDeviation)
	switch c.AI.MutableFields {
	case "bias", "weight", "bias+weight":
	default:
		problems = append(problems, fmt.Sprintf("ai.mutable_fields must be bias, weight or bias+weight, got %q", c.AI.MutableFields))
	}

	s := c.Settings
	check(s.DinoGravity > 0, "settings.dino_gravity must be positive")
	check(s.DinoLift > 0, "settings.dino_lift must be positive")
	check(s.BgSpeed >= 0 && s.BirdSpeed >= 0 && s.CloudSpeed >= 0, "settings speeds must be >= 0")
	check(s.DinoLegsRate >= 1, "settings.dino_legs_rate must be >= 1")
	check(s.SpawnRates.Cacti >= 1 && s.SpawnRates.Birds >= 1 && s.SpawnRates.Clouds >= 1, "settings.spawn_rates must be >= 1")
	check(s.ScoreIncreaseRate >= 1, "settings.score_increase_rate must be >= 1")

	check(c.SpeedMod.Min <= c.SpeedMod.Max, "speed_mod.min must not exceed speed_mod.max")
	check(c.Bird.AltitudeMin <= c.Bird.AltitudeMax, "bird.altitude_min must not exceed bird.altitude_max")
	check(c.Bird.WingsRate >= 1, "bird.wings_rate must be >= 1")
	check(c.Cloud.YMin <= c.Cloud.YMax, "cloud.y_min must not exceed cloud.y_max")
	check(c.Difficulty.LevelDivisor >= 1, "difficulty.level_divisor must be >= 1")
	check(c.Difficulty.LevelNorm > 0, "difficulty.level_norm must be positive")
	check(c.Difficulty.LinearFrom <= c.Difficulty.GeometricFrom, "difficulty.linear_from must not exceed geometric_from")

	switch c.Storage.Backend {
	case "", "memory", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("storage.backend must be memory or sqlite, got %q", c.Storage.Backend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
