// Package config provides configuration loading and access for the sand-table games.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Projector    ProjectorConfig    `yaml:"projector"`
	Sensor       SensorConfig       `yaml:"sensor"`
	Timing       TimingConfig       `yaml:"timing"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Steering     SteeringConfig     `yaml:"steering"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Effects      EffectsConfig      `yaml:"effects"`
	Survival     GameConfig         `yaml:"survival"`
	Feeding      GameConfig         `yaml:"feeding"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Monitor      MonitorConfig      `yaml:"monitor"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ProjectorConfig holds the display surface settings.
type ProjectorConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SensorConfig holds the depth sensor frame size and the calibrated region of interest.
type SensorConfig struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	ROI    ROIConfig `yaml:"roi"`
}

// ROIConfig is a rectangle in sensor pixels.
type ROIConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig holds the fixed screen durations, in seconds.
type TimingConfig struct {
	IntroDisplay    float64 `yaml:"intro_display"`    // INTRO → PLAYING after this
	LevelTransition float64 `yaml:"level_transition"` // LEVEL_COMPLETE → PLAYING after this
	ResultsDisplay  float64 `yaml:"results_display"`  // SHOWING_RESULTS → IDLE after this
	StabilizeWarmup float64 `yaml:"stabilize_warmup"` // sensor settling window after a ROI change
}

// SpawnConfig holds spawn placement parameters.
type SpawnConfig struct {
	AgentInset       float64 `yaml:"agent_inset"`       // fraction removed per side for prey/threats
	CollectibleInset float64 `yaml:"collectible_inset"` // fraction removed per side for food
	MaxAttempts      int     `yaml:"max_attempts"`      // rejection sampling budget
}

// CollectiblesConfig holds food item parameters for the feeding game.
type CollectiblesConfig struct {
	MaxSimultaneous int     `yaml:"max_simultaneous"`
	MaxAge          float64 `yaml:"max_age"`        // seconds; items older than this are removed
	CollectMargin   float64 `yaml:"collect_margin"` // added to prey size for the pickup distance
	Size            float64 `yaml:"size"`
}

// SteeringConfig holds species movement parameters.
type SteeringConfig struct {
	ThreatInfluence float64       `yaml:"threat_influence"` // threat radius = size * this
	Fish            SpeciesConfig `yaml:"fish"`
	Shark           SpeciesConfig `yaml:"shark"`
}

// SpeciesConfig holds the steering parameters of one species.
type SpeciesConfig struct {
	Size             float64 `yaml:"size"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxForce         float64 `yaml:"max_force"`
	Perception       float64 `yaml:"perception"`      // neighbour / prey search radius
	SeparationDist   float64 `yaml:"separation_dist"` // desired spacing
	SeparationWeight float64 `yaml:"separation_weight"`
	AlignmentWeight  float64 `yaml:"alignment_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	FleeWeight       float64 `yaml:"flee_weight"`
	WanderWeight     float64 `yaml:"wander_weight"`
	WaterLookahead   float64 `yaml:"water_lookahead"` // distance ahead probed for land
	WaterWeight      float64 `yaml:"water_weight"`
	BoundaryMargin   float64 `yaml:"boundary_margin"` // soft ROI edge
}

// TerrainConfig holds the synthetic sand table used when no sensor is attached.
type TerrainConfig struct {
	Seed       int64   `yaml:"seed"`
	Scale      float64 `yaml:"scale"` // noise features per sensor pixel
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
	SeaLevel   float64 `yaml:"sea_level"` // noise value mapped to elevation zero
	Relief     float64 `yaml:"relief"`    // elevation units per unit of noise
}

// EffectsConfig holds celebration particle parameters.
type EffectsConfig struct {
	Confetti        int     `yaml:"confetti"`
	VictoryConfetti int     `yaml:"victory_confetti"`
	Stars           int     `yaml:"stars"`
	Gravity         float64 `yaml:"gravity"`
	Drag            float64 `yaml:"drag"`
}

// GameConfig holds one game variant's level table.
type GameConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig is one row of a level table.
type LevelConfig struct {
	Number             int     `yaml:"number"`
	InitialPopulation  int     `yaml:"initial_population"`
	MaxThreats         int     `yaml:"max_threats"`         // survival only
	TargetCollectibles int     `yaml:"target_collectibles"` // feeding only
	SpawnInterval      float64 `yaml:"spawn_interval"`      // seconds
	Duration           float64 `yaml:"duration"`            // seconds
	Name               string  `yaml:"name"`
}

// TelemetryConfig holds stats output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
	LogLevels bool   `yaml:"log_levels"` // log a stats line per finished level
}

// MonitorConfig holds the websocket snapshot feed parameters.
type MonitorConfig struct {
	Addr         string `yaml:"addr"`          // empty disables the feed
	PublishEvery int    `yaml:"publish_every"` // frames between snapshots
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	IntroDisplay    time.Duration
	LevelTransition time.Duration
	ResultsDisplay  time.Duration
	StabilizeWarmup time.Duration
	CollectibleAge  time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration and sets the global config.
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file. Level lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Projector.Width <= 0 || c.Projector.Height <= 0 {
		errs = append(errs, fmt.Errorf("projector: resolution must be positive, got %dx%d", c.Projector.Width, c.Projector.Height))
	}
	if c.Sensor.ROI.Width < 0 || c.Sensor.ROI.Height < 0 {
		errs = append(errs, errors.New("sensor.roi: negative extent"))
	}
	if c.Timing.IntroDisplay < 0 || c.Timing.LevelTransition < 0 || c.Timing.ResultsDisplay < 0 {
		errs = append(errs, errors.New("timing: durations must not be negative"))
	}
	if c.Spawn.AgentInset < 0 || c.Spawn.AgentInset >= 0.5 {
		errs = append(errs, fmt.Errorf("spawn.agent_inset: %v outside [0, 0.5)", c.Spawn.AgentInset))
	}
	if c.Spawn.CollectibleInset < 0 || c.Spawn.CollectibleInset >= 0.5 {
		errs = append(errs, fmt.Errorf("spawn.collectible_inset: %v outside [0, 0.5)", c.Spawn.CollectibleInset))
	}
	if c.Spawn.MaxAttempts <= 0 {
		errs = append(errs, errors.New("spawn.max_attempts: must be positive"))
	}
	if c.Collectibles.MaxSimultaneous < 0 {
		errs = append(errs, errors.New("collectibles.max_simultaneous: must not be negative"))
	}
	errs = append(errs, validateLevels("survival", c.Survival.Levels)...)
	errs = append(errs, validateLevels("feeding", c.Feeding.Levels)...)
	return errors.Join(errs...)
}

func validateLevels(game string, levels []LevelConfig) []error {
	var errs []error
	if len(levels) == 0 {
		errs = append(errs, fmt.Errorf("%s.levels: table is empty", game))
	}
	for i, l := range levels {
		if l.Number != i+1 {
			errs = append(errs, fmt.Errorf("%s.levels[%d]: number %d, want %d", game, i, l.Number, i+1))
		}
		if l.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s.levels[%d]: duration must be positive", game, i))
		}
		if l.SpawnInterval < 0 || l.InitialPopulation < 0 || l.MaxThreats < 0 || l.TargetCollectibles < 0 {
			errs = append(errs, fmt.Errorf("%s.levels[%d]: negative value", game, i))
		}
	}
	return errs
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.IntroDisplay = Seconds(c.Timing.IntroDisplay)
	c.Derived.LevelTransition = Seconds(c.Timing.LevelTransition)
	c.Derived.ResultsDisplay = Seconds(c.Timing.ResultsDisplay)
	c.Derived.StabilizeWarmup = Seconds(c.Timing.StabilizeWarmup)
	c.Derived.CollectibleAge = Seconds(c.Collectibles.MaxAge)

	// ROI defaults to the whole sensor frame
	if c.Sensor.ROI.Width == 0 || c.Sensor.ROI.Height == 0 {
		c.Sensor.ROI = ROIConfig{Width: float64(c.Sensor.Width), Height: float64(c.Sensor.Height)}
	}
}

// Seconds converts a config value in seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the config to a YAML file.
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
