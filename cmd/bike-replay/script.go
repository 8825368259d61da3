package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/viper"

	"github.com/lixenwraith/trickbike/input"
)

// scriptFile is a recorded input sequence with its playback settings
type scriptFile struct {
	// FrameDt is the fixed frame delta in seconds for deterministic playback
	FrameDt float64 `mapstructure:"frame_dt"`
	// Duration is the total simulated time, 0 plays the steps plus Tail
	Duration float64 `mapstructure:"duration"`
	// Tail keeps simulating with neutral input after the last step
	Tail  float64      `mapstructure:"tail"`
	Loop  bool         `mapstructure:"loop"`
	Steps []input.Step `mapstructure:"steps"`
}

const (
	defaultFrameDt = 1.0 / 60
	defaultTail    = 1.0
)

func loadScript(path string) (*scriptFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	v := viper.New()
	v.SetDefault("frame_dt", defaultFrameDt)
	v.SetDefault("tail", defaultTail)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	var sf scriptFile
	if err := v.Unmarshal(&sf); err != nil {
		return nil, fmt.Errorf("error decoding script: %w", err)
	}
	if err := sf.validate(); err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", path, err)
	}
	return &sf, nil
}

func (sf *scriptFile) validate() error {
	if !(sf.FrameDt > 0) || math.IsInf(sf.FrameDt, 0) {
		return fmt.Errorf("frame_dt must be positive, got %v", sf.FrameDt)
	}
	if sf.Duration < 0 || sf.Tail < 0 {
		return fmt.Errorf("duration and tail must be non-negative")
	}
	if sf.Loop && sf.Duration == 0 {
		return fmt.Errorf("looping script needs an explicit duration")
	}
	if len(sf.Steps) == 0 {
		return fmt.Errorf("script has no steps")
	}
	return nil
}

// total returns the simulated time covered by playback
func (sf *scriptFile) total(script *input.Script) float64 {
	if sf.Duration > 0 {
		return sf.Duration
	}
	return script.Duration() + sf.Tail
}

// frames returns the number of fixed frames needed to cover total seconds
func (sf *scriptFile) frames(total float64) int {
	return int(math.Ceil(total/sf.FrameDt - 1e-9))
}
