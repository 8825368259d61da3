package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/trickbike/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bike.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, parameter.MaxSpeed, cfg.Vehicle.Drive.MaxSpeed)
	assert.Equal(t, parameter.SpringStrength, cfg.Vehicle.Suspension.SpringStrength)
	assert.Equal(t, mgl64.Vec3{0, parameter.FrontMountY, parameter.FrontMountZ}, cfg.Vehicle.Suspension.FrontMount)
	assert.Equal(t, parameter.FixedTimeStep, cfg.Loop.FixedTimeStep)
	assert.Equal(t, parameter.FallThreshold, cfg.Respawn.FallThreshold)
	assert.Equal(t, parameter.KeyHoldWindow, cfg.Input.HoldWindow)
	assert.Equal(t, parameter.JoystickActionThreshold, cfg.Input.Joystick.ActionThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Vehicle.Trick.RequireStickReset)
	assert.Len(t, cfg.Terrain.Profile, len(DefaultTrack()))
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
[vehicle.drive]
max_speed = 55
charge_throttle_scale = 1

[vehicle.suspension]
front_mount = [0, -0.2, 0.8]

[vehicle.trick]
require_stick_reset = false

[input]
hold_window = "200ms"

[log]
level = "debug"

[[respawn.triggers]]
position = [0, 0, 50]
half_extents = [4, 4, 1]
yaw = 15

[[terrain.profile]]
z = 0
y = 0

[[terrain.profile]]
z = 10
y = 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 55.0, cfg.Vehicle.Drive.MaxSpeed)
	assert.Equal(t, 1.0, cfg.Vehicle.Drive.ChargeThrottleScale)
	assert.Equal(t, parameter.AccelerationForce, cfg.Vehicle.Drive.AccelerationForce, "unset keys keep defaults")
	assert.Equal(t, mgl64.Vec3{0, -0.2, 0.8}, cfg.Vehicle.Suspension.FrontMount)
	assert.False(t, cfg.Vehicle.Trick.RequireStickReset)
	assert.Equal(t, 200*time.Millisecond, cfg.Input.HoldWindow)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	require.Len(t, cfg.Respawn.Triggers, 1)
	assert.Equal(t, 15.0, cfg.Respawn.Triggers[0].Yaw)
	require.Len(t, cfg.Terrain.Profile, 2)
	assert.Equal(t, 2.0, cfg.Terrain.Profile[1].Y)

	profile, err := cfg.TerrainProfile()
	require.NoError(t, err)
	h, _ := profile.HeightAt(0, 5)
	assert.InDelta(t, 1.0, h, 1e-12)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRICKBIKE_VEHICLE_NITRO_BURN_RATE", "25")
	t.Setenv("TRICKBIKE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.Vehicle.Nitro.BurnRate)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/bike.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative rest":    "[vehicle.suspension]\nrest_length = -1\n",
		"bad level":        "[log]\nlevel = \"loud\"\n",
		"inverted jump":    "[vehicle.jump]\nmin_force = 900\nmax_force = 100\n",
		"zero timestep":    "[loop]\nfixed_time_step = 0\n",
		"threshold order":  "[input.joystick]\naction_threshold = 0.05\n",
		"short profile":    "[[terrain.profile]]\nz = 0\ny = 0\n",
		"negative trigger": "[[respawn.triggers]]\nposition = [0, 0, 0]\nhalf_extents = [1, -1, 1]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[vehicle\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestBundledConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "configs", "bike.toml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Len(t, cfg.Respawn.Triggers, 1)
	assert.Len(t, cfg.Terrain.Profile, 10)
	assert.Equal(t, 120*time.Millisecond, cfg.Input.HoldWindow)
}
