package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/ballpit/constants"
	"github.com/lixenwraith/ballpit/engine"
	"github.com/lixenwraith/ballpit/input"
	"github.com/lixenwraith/ballpit/physics"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration that reads and writes TOML strings such as "30s"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the on-disk tuning file
type Config struct {
	Physics     Physics     `toml:"physics"`
	Interaction Interaction `toml:"interaction"`
	Spawn       Spawn       `toml:"spawn"`
	Display     Display     `toml:"display"`
	Audio       Audio       `toml:"audio"`
}

// Physics holds integrator and collision tuning; radius is read once at startup
type Physics struct {
	Radius        float64 `toml:"radius"`
	Gravity       float64 `toml:"gravity"`
	StepScale     float64 `toml:"step_scale"`
	AirResistance float64 `toml:"air_resistance"`
	Restitution   float64 `toml:"restitution"`
	WallSpin      float64 `toml:"wall_spin"`
}

// Interaction tunes the throw on pointer release
type Interaction struct {
	ThrowScale float64 `toml:"throw_scale"`
	SpinRange  float64 `toml:"spin_range"`
}

// Spawn controls the population ceiling and the shrinking spawn cadence
type Spawn struct {
	Cap             int      `toml:"cap"`
	InitialInterval Duration `toml:"initial_interval"`
	MinInterval     Duration `toml:"min_interval"`
	Ratio           float64  `toml:"ratio"`
}

// Display maps canvas units to terminal cells and sets the physics tick
type Display struct {
	CellWidth    float64  `toml:"cell_width"`
	CellHeight   float64  `toml:"cell_height"`
	Label        string   `toml:"label"`
	TickInterval Duration `toml:"tick_interval"`
}

// Audio controls impact sounds
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Physics: Physics{
			Radius:        constants.BodyRadius,
			Gravity:       constants.Gravity,
			StepScale:     constants.StepScale,
			AirResistance: constants.AirResistance,
			Restitution:   constants.Restitution,
			WallSpin:      constants.WallSpin,
		},
		Interaction: Interaction{
			ThrowScale: constants.ThrowScale,
			SpinRange:  constants.SpinRange,
		},
		Spawn: Spawn{
			Cap:             constants.PopulationCap,
			InitialInterval: Duration(constants.InitialSpawnInterval),
			MinInterval:     Duration(constants.MinSpawnInterval),
			Ratio:           constants.SpawnIntervalRatio,
		},
		Display: Display{
			CellWidth:    constants.CellWidth,
			CellHeight:   constants.CellHeight,
			Label:        constants.BodyLabel,
			TickInterval: Duration(constants.TickInterval),
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// Load reads path over the defaults; keys missing from the file keep their default value
// An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes TOML into cfg and validates the result
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Encode renders cfg as TOML
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate rejects values that would break simulation invariants
func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case p.Radius <= 0:
		return fmt.Errorf("%w: physics.radius must be positive, got %v", ErrInvalidConfig, p.Radius)
	case p.StepScale < 0:
		return fmt.Errorf("%w: physics.step_scale must not be negative", ErrInvalidConfig)
	case p.AirResistance < 0 || p.AirResistance >= 1:
		return fmt.Errorf("%w: physics.air_resistance must be in [0, 1), got %v", ErrInvalidConfig, p.AirResistance)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("%w: physics.restitution must be in [0, 1], got %v", ErrInvalidConfig, p.Restitution)
	}

	if c.Interaction.SpinRange < 0 {
		return fmt.Errorf("%w: interaction.spin_range must not be negative", ErrInvalidConfig)
	}

	s := c.Spawn
	switch {
	case s.Cap < 1 || s.Cap > constants.PopulationCap:
		return fmt.Errorf("%w: spawn.cap must be in [1, %d], got %d", ErrInvalidConfig, constants.PopulationCap, s.Cap)
	case s.MinInterval <= 0:
		return fmt.Errorf("%w: spawn.min_interval must be positive", ErrInvalidConfig)
	case s.InitialInterval < s.MinInterval:
		return fmt.Errorf("%w: spawn.initial_interval %v is below min_interval %v",
			ErrInvalidConfig, time.Duration(s.InitialInterval), time.Duration(s.MinInterval))
	case s.Ratio <= 0 || s.Ratio > 1:
		return fmt.Errorf("%w: spawn.ratio must be in (0, 1], got %v", ErrInvalidConfig, s.Ratio)
	}

	d := c.Display
	switch {
	case d.CellWidth <= 0 || d.CellHeight <= 0:
		return fmt.Errorf("%w: display cell size must be positive", ErrInvalidConfig)
	case d.TickInterval <= 0:
		return fmt.Errorf("%w: display.tick_interval must be positive", ErrInvalidConfig)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0, 1], got %v", ErrInvalidConfig, c.Audio.Volume)
	}
	return nil
}

// PhysicsParams converts the physics section
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Radius:        c.Physics.Radius,
		Gravity:       c.Physics.Gravity,
		StepScale:     c.Physics.StepScale,
		AirResistance: c.Physics.AirResistance,
		Restitution:   c.Physics.Restitution,
		WallSpin:      c.Physics.WallSpin,
	}
}

// CellScale converts the display cell size
func (c *Config) CellScale() input.CellScale {
	return input.CellScale{Width: c.Display.CellWidth, Height: c.Display.CellHeight}
}

// Options builds simulation options with the given RNG seed
func (c *Config) Options(seed uint64) engine.Options {
	return engine.Options{
		Params: c.PhysicsParams(),
		Throw: input.ThrowConfig{
			Scale:     c.Interaction.ThrowScale,
			SpinRange: c.Interaction.SpinRange,
		},
		Spawn: engine.SpawnConfig{
			Cap:             c.Spawn.Cap,
			InitialInterval: time.Duration(c.Spawn.InitialInterval),
			MinInterval:     time.Duration(c.Spawn.MinInterval),
			Ratio:           c.Spawn.Ratio,
		},
		TickInterval: time.Duration(c.Display.TickInterval),
		Seed:         seed,
	}
}
