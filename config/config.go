// Package config loads the sandbox and replay configuration from TOML and environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/physics"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

// EnvPrefix scopes environment overrides, e.g. TRICKBIKE_VEHICLE_DRIVE_MAX_SPEED
const EnvPrefix = "TRICKBIKE"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// InputConfig holds keyboard and gesture settings
type InputConfig struct {
	HoldWindow  time.Duration        `mapstructure:"hold_window"`
	RepeatGrace time.Duration        `mapstructure:"repeat_grace"`
	Joystick    input.JoystickConfig `mapstructure:"joystick"`
}

// LogConfig holds file logging settings
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	File    string `mapstructure:"file"`
	MaxSize int64  `mapstructure:"max_size"`
}

// TerrainConfig describes the test track
type TerrainConfig struct {
	Profile []physics.ProfilePoint `mapstructure:"profile"`
}

// AudioConfig holds cue playback settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// Config is the complete runtime configuration
type Config struct {
	Vehicle vehicle.Tuning   `mapstructure:"vehicle"`
	Respawn respawn.Settings `mapstructure:"respawn"`
	Loop    engine.Settings  `mapstructure:"loop"`
	Input   InputConfig      `mapstructure:"input"`
	Log     LogConfig        `mapstructure:"log"`
	Terrain TerrainConfig    `mapstructure:"terrain"`
	Audio   AudioConfig      `mapstructure:"audio"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Vehicle: vehicle.DefaultTuning(),
		Respawn: respawn.DefaultSettings(),
		Loop:    engine.DefaultSettings(),
		Input: InputConfig{
			HoldWindow:  parameter.KeyHoldWindow,
			RepeatGrace: parameter.KeyRepeatGrace,
			Joystick:    input.DefaultJoystickConfig(),
		},
		Log: LogConfig{
			Level:   "info",
			Dir:     parameter.LogDir,
			File:    parameter.LogFileName,
			MaxSize: parameter.MaxLogSize,
		},
		Terrain: TerrainConfig{Profile: DefaultTrack()},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.AudioMasterVolume,
		},
	}
}

// DefaultTrack is a run-up, a kicker, a drop and a second jump
func DefaultTrack() []physics.ProfilePoint {
	return []physics.ProfilePoint{
		{Z: -50, Y: 0},
		{Z: 20, Y: 0},
		{Z: 35, Y: 4},
		{Z: 36, Y: 0},
		{Z: 70, Y: 0},
		{Z: 90, Y: -3},
		{Z: 120, Y: -3},
		{Z: 140, Y: 3},
		{Z: 142, Y: -3},
		{Z: 400, Y: -3},
	}
}

// Load reads path (optional, TOML) over the defaults and applies environment overrides
// An empty path loads defaults and environment only
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := setDefaults(v, Default()); err != nil {
		return nil, fmt.Errorf("error setting defaults: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every leaf of def so file and environment lookups resolve per key
func setDefaults(v *viper.Viper, def Config) error {
	var tree map[string]any
	if err := mapstructure.Decode(def, &tree); err != nil {
		return err
	}
	flatten(v, "", tree)
	return nil
}

func flatten(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			flatten(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// Validate checks every section, wrapping failures in ErrInvalid
func (c *Config) Validate() error {
	if err := c.Vehicle.Validate(); err != nil {
		return fmt.Errorf("%w: vehicle: %w", ErrInvalid, err)
	}
	if err := c.Respawn.Validate(); err != nil {
		return fmt.Errorf("%w: respawn: %w", ErrInvalid, err)
	}
	if err := c.Loop.Validate(); err != nil {
		return fmt.Errorf("%w: loop: %w", ErrInvalid, err)
	}
	if err := c.validateInput(); err != nil {
		return fmt.Errorf("%w: input: %w", ErrInvalid, err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	if c.Log.MaxSize <= 0 {
		return fmt.Errorf("%w: log.max_size must be positive, got %d", ErrInvalid, c.Log.MaxSize)
	}
	if _, err := physics.NewProfile(c.Terrain.Profile, physics.LayerGround); err != nil {
		return fmt.Errorf("%w: terrain: %w", ErrInvalid, err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0,1], got %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

func (c *Config) validateInput() error {
	in := c.Input
	if in.HoldWindow <= 0 || in.RepeatGrace < 0 {
		return fmt.Errorf("hold_window must be positive and repeat_grace non-negative")
	}
	j := in.Joystick
	if !(j.Deadzone >= 0 && j.Deadzone < 1) {
		return fmt.Errorf("joystick.deadzone must be in [0,1), got %v", j.Deadzone)
	}
	if !(j.SectorAngle > 0 && j.SectorAngle < 90) {
		return fmt.Errorf("joystick.sector_angle must be in (0,90), got %v", j.SectorAngle)
	}
	if !(j.ActionThreshold > j.Deadzone && j.ActionThreshold <= 1) {
		return fmt.Errorf("joystick.action_threshold must be in (deadzone,1], got %v", j.ActionThreshold)
	}
	if !(j.Radius > 0) {
		return fmt.Errorf("joystick.radius must be positive, got %v", j.Radius)
	}
	return nil
}

// LogLevel returns the parsed level, info on error
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// TerrainProfile builds the track profile
func (c *Config) TerrainProfile() (*physics.Profile, error) {
	return physics.NewProfile(c.Terrain.Profile, physics.LayerGround)
}
