package vehicle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/physics"
)

// ChassisTuning configures the rigid body
type ChassisTuning struct {
	Mass            float64    `mapstructure:"mass"`
	Size            mgl64.Vec3 `mapstructure:"size"`
	CenterOfMass    mgl64.Vec3 `mapstructure:"center_of_mass"`
	LinearDamping   float64    `mapstructure:"linear_damping"`
	AngularDamping  float64    `mapstructure:"angular_damping"`
	MaxAngularSpeed float64    `mapstructure:"max_angular_speed"`
	ContactRadius   float64    `mapstructure:"contact_radius"`

	// MountContactRadius keeps each wheel mount above terrain so a bottomed-out ray still starts outside it
	MountContactRadius float64 `mapstructure:"mount_contact_radius"`
}

// BodyConfig converts the chassis tuning for the physics provider, with contacts at both wheel mounts
func (t Tuning) BodyConfig() physics.BodyConfig {
	c := t.Chassis
	cfg := physics.BodyConfig{
		Mass:            c.Mass,
		Size:            c.Size,
		CenterOfMass:    c.CenterOfMass,
		LinearDamping:   c.LinearDamping,
		AngularDamping:  c.AngularDamping,
		MaxAngularSpeed: c.MaxAngularSpeed,
		GravityScale:    1,
		ContactRadius:   c.ContactRadius,
	}
	if c.MountContactRadius > 0 {
		cfg.Contacts = []physics.ContactPoint{
			{Local: t.Suspension.FrontMount, Radius: c.MountContactRadius},
			{Local: t.Suspension.RearMount, Radius: c.MountContactRadius},
		}
	}
	return cfg
}

// SuspensionTuning configures the per-wheel raycast spring
type SuspensionTuning struct {
	WheelRadius      float64    `mapstructure:"wheel_radius"`
	RestLength       float64    `mapstructure:"rest_length"`
	SpringStrength   float64    `mapstructure:"spring_strength"`
	SpringDamper     float64    `mapstructure:"spring_damper"`
	GripFactor       float64    `mapstructure:"grip_factor"`
	UprightStiffness float64    `mapstructure:"upright_stiffness"`
	FrontMount       mgl64.Vec3 `mapstructure:"front_mount"`
	RearMount        mgl64.Vec3 `mapstructure:"rear_mount"`
}

type DriveTuning struct {
	AccelerationForce    float64 `mapstructure:"acceleration_force"`
	BrakeRatio           float64 `mapstructure:"brake_ratio"`
	MaxSpeed             float64 `mapstructure:"max_speed"`
	MaxSteerAngle        float64 `mapstructure:"max_steer_angle"`
	SteerSpeed           float64 `mapstructure:"steer_speed"`
	TurnSpeed            float64 `mapstructure:"turn_speed"`
	BoostSpeedMultiplier float64 `mapstructure:"boost_speed_multiplier"`
	BoostAccelMultiplier float64 `mapstructure:"boost_accel_multiplier"`
	ChargeThrottleScale  float64 `mapstructure:"charge_throttle_scale"`
	StickThreshold       float64 `mapstructure:"stick_threshold"` // pushed into gesture sources each frame
	ExtraGravity         float64 `mapstructure:"extra_gravity"`
}

type GroundTuning struct {
	ProbeLength       float64           `mapstructure:"probe_length"`
	GroundedThreshold float64           `mapstructure:"grounded_threshold"`
	MissDistance      float64           `mapstructure:"miss_distance"`
	Mask              physics.LayerMask `mapstructure:"mask"`
}

type JumpTuning struct {
	MinForce      float64 `mapstructure:"min_force"`
	MaxForce      float64 `mapstructure:"max_force"`
	ChargeTime    float64 `mapstructure:"charge_time"`
	Squash        float64 `mapstructure:"squash"`
	RelaxSpeed    float64 `mapstructure:"relax_speed"`
	UpWeight      float64 `mapstructure:"up_weight"`
	ForwardWeight float64 `mapstructure:"forward_weight"`
}

type TrickTuning struct {
	MinHeight         float64 `mapstructure:"min_height"`
	RequireStickReset bool    `mapstructure:"require_stick_reset"`
	Deadzone          float64 `mapstructure:"deadzone"`
	Speed             float64 `mapstructure:"speed"`
	ReturnSpeed       float64 `mapstructure:"return_speed"`
	CrashThreshold    float64 `mapstructure:"crash_threshold"`
	PartSpread        float64 `mapstructure:"part_spread"`
	PartSpinSpeed     float64 `mapstructure:"part_spin_speed"`
}

type NitroTuning struct {
	Max        float64 `mapstructure:"max"`
	Initial    float64 `mapstructure:"initial"`
	BurnRate   float64 `mapstructure:"burn_rate"`
	RewardRate float64 `mapstructure:"reward_rate"`
}

type VisualTuning struct {
	LeanAngle float64 `mapstructure:"lean_angle"`
	LeanSpeed float64 `mapstructure:"lean_speed"`
}

// Tuning is the complete per-vehicle parameter set
type Tuning struct {
	Chassis    ChassisTuning    `mapstructure:"chassis"`
	Suspension SuspensionTuning `mapstructure:"suspension"`
	Drive      DriveTuning      `mapstructure:"drive"`
	Ground     GroundTuning     `mapstructure:"ground"`
	Jump       JumpTuning       `mapstructure:"jump"`
	Trick      TrickTuning      `mapstructure:"trick"`
	Nitro      NitroTuning      `mapstructure:"nitro"`
	Visual     VisualTuning     `mapstructure:"visual"`
}

// DefaultTuning returns the stock arcade tuning
func DefaultTuning() Tuning {
	return Tuning{
		Chassis: ChassisTuning{
			Mass:            parameter.BikeMass,
			Size:            mgl64.Vec3{parameter.BikeSizeX, parameter.BikeSizeY, parameter.BikeSizeZ},
			CenterOfMass:    mgl64.Vec3{0, parameter.BikeCenterOfMassY, 0},
			LinearDamping:   parameter.BikeLinearDamping,
			AngularDamping:  parameter.BikeAngularDamping,
			MaxAngularSpeed: parameter.BikeMaxAngularSpeed,
			ContactRadius:   parameter.BikeContactRadius,

			MountContactRadius: parameter.MountContactRadius,
		},
		Suspension: SuspensionTuning{
			WheelRadius:      parameter.WheelRadius,
			RestLength:       parameter.SuspensionRestLength,
			SpringStrength:   parameter.SpringStrength,
			SpringDamper:     parameter.SpringDamper,
			GripFactor:       parameter.GripFactor,
			UprightStiffness: parameter.UprightStiffness,
			FrontMount:       mgl64.Vec3{0, parameter.FrontMountY, parameter.FrontMountZ},
			RearMount:        mgl64.Vec3{0, parameter.RearMountY, parameter.RearMountZ},
		},
		Drive: DriveTuning{
			AccelerationForce:    parameter.AccelerationForce,
			BrakeRatio:           parameter.BrakeRatio,
			MaxSpeed:             parameter.MaxSpeed,
			MaxSteerAngle:        parameter.MaxSteerAngle,
			SteerSpeed:           parameter.SteerSpeed,
			TurnSpeed:            parameter.TurnSpeed,
			BoostSpeedMultiplier: parameter.BoostSpeedMultiplier,
			BoostAccelMultiplier: parameter.BoostAccelMultiplier,
			ChargeThrottleScale:  parameter.ChargeThrottleScale,
			StickThreshold:       parameter.JoystickActionThreshold,
			ExtraGravity:         parameter.ExtraGravity,
		},
		Ground: GroundTuning{
			ProbeLength:       parameter.GroundProbeLength,
			GroundedThreshold: parameter.GroundedThreshold,
			MissDistance:      parameter.GroundMissDistance,
			Mask:              physics.LayerMask(parameter.GroundLayerMask),
		},
		Jump: JumpTuning{
			MinForce:      parameter.MinJumpForce,
			MaxForce:      parameter.MaxJumpForce,
			ChargeTime:    parameter.JumpChargeTime,
			Squash:        parameter.JumpSquash,
			RelaxSpeed:    parameter.JumpRelaxSpeed,
			UpWeight:      parameter.JumpUpWeight,
			ForwardWeight: parameter.JumpForwardWeight,
		},
		Trick: TrickTuning{
			MinHeight:         parameter.MinTrickHeight,
			RequireStickReset: parameter.RequireStickReset,
			Deadzone:          parameter.TrickDeadzone,
			Speed:             parameter.TrickSpeed,
			ReturnSpeed:       parameter.TrickReturnSpeed,
			CrashThreshold:    parameter.CrashThreshold,
			PartSpread:        parameter.PartSpread,
			PartSpinSpeed:     parameter.PartSpinSpeed,
		},
		Nitro: NitroTuning{
			Max:        parameter.NitroMax,
			Initial:    parameter.NitroInitial,
			BurnRate:   parameter.NitroBurnRate,
			RewardRate: parameter.NitroRewardRate,
		},
		Visual: VisualTuning{
			LeanAngle: parameter.LeanAngle,
			LeanSpeed: parameter.LeanSpeed,
		},
	}
}

// Validate rejects tunings that would produce non-finite or degenerate behavior
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"chassis.mass", t.Chassis.Mass},
		{"suspension.wheel_radius", t.Suspension.WheelRadius},
		{"suspension.rest_length", t.Suspension.RestLength},
		{"drive.max_speed", t.Drive.MaxSpeed},
		{"drive.boost_speed_multiplier", t.Drive.BoostSpeedMultiplier},
		{"drive.boost_accel_multiplier", t.Drive.BoostAccelMultiplier},
		{"ground.probe_length", t.Ground.ProbeLength},
		{"ground.grounded_threshold", t.Ground.GroundedThreshold},
		{"jump.charge_time", t.Jump.ChargeTime},
		{"trick.deadzone", t.Trick.Deadzone},
		{"trick.part_spread", t.Trick.PartSpread},
		{"nitro.max", t.Nitro.Max},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%s must be positive and finite, got %v", p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"chassis.linear_damping", t.Chassis.LinearDamping},
		{"chassis.angular_damping", t.Chassis.AngularDamping},
		{"chassis.max_angular_speed", t.Chassis.MaxAngularSpeed},
		{"chassis.contact_radius", t.Chassis.ContactRadius},
		{"chassis.mount_contact_radius", t.Chassis.MountContactRadius},
		{"suspension.spring_strength", t.Suspension.SpringStrength},
		{"suspension.spring_damper", t.Suspension.SpringDamper},
		{"suspension.grip_factor", t.Suspension.GripFactor},
		{"suspension.upright_stiffness", t.Suspension.UprightStiffness},
		{"drive.acceleration_force", t.Drive.AccelerationForce},
		{"drive.brake_ratio", t.Drive.BrakeRatio},
		{"drive.max_steer_angle", t.Drive.MaxSteerAngle},
		{"drive.steer_speed", t.Drive.SteerSpeed},
		{"drive.turn_speed", t.Drive.TurnSpeed},
		{"drive.extra_gravity", t.Drive.ExtraGravity},
		{"jump.min_force", t.Jump.MinForce},
		{"jump.max_force", t.Jump.MaxForce},
		{"jump.squash", t.Jump.Squash},
		{"jump.relax_speed", t.Jump.RelaxSpeed},
		{"trick.min_height", t.Trick.MinHeight},
		{"trick.speed", t.Trick.Speed},
		{"trick.return_speed", t.Trick.ReturnSpeed},
		{"trick.crash_threshold", t.Trick.CrashThreshold},
		{"trick.part_spin_speed", t.Trick.PartSpinSpeed},
		{"nitro.burn_rate", t.Nitro.BurnRate},
		{"nitro.reward_rate", t.Nitro.RewardRate},
		{"visual.lean_angle", t.Visual.LeanAngle},
		{"visual.lean_speed", t.Visual.LeanSpeed},
	}
	for _, p := range nonNegative {
		if !(p.v >= 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%s must be non-negative and finite, got %v", p.name, p.v)
		}
	}

	if t.Drive.ChargeThrottleScale < 0 || t.Drive.ChargeThrottleScale > 1 || math.IsNaN(t.Drive.ChargeThrottleScale) {
		return fmt.Errorf("drive.charge_throttle_scale must be in [0,1], got %v", t.Drive.ChargeThrottleScale)
	}
	if t.Chassis.MountContactRadius >= t.Suspension.RestLength {
		return fmt.Errorf("chassis.mount_contact_radius %v must be below suspension.rest_length %v",
			t.Chassis.MountContactRadius, t.Suspension.RestLength)
	}
	if !(t.Drive.StickThreshold > 0 && t.Drive.StickThreshold <= 1) {
		return fmt.Errorf("drive.stick_threshold must be in (0,1], got %v", t.Drive.StickThreshold)
	}
	if t.Jump.MaxForce < t.Jump.MinForce {
		return fmt.Errorf("jump.max_force %v below jump.min_force %v", t.Jump.MaxForce, t.Jump.MinForce)
	}
	if t.Jump.UpWeight < 0 || t.Jump.ForwardWeight < 0 || t.Jump.UpWeight+t.Jump.ForwardWeight == 0 {
		return fmt.Errorf("jump weights must be non-negative and not both zero")
	}
	if t.Nitro.Initial < 0 || t.Nitro.Initial > t.Nitro.Max {
		return fmt.Errorf("nitro.initial %v outside [0, %v]", t.Nitro.Initial, t.Nitro.Max)
	}
	if t.Ground.Mask == 0 {
		return fmt.Errorf("ground.mask must select at least one layer")
	}
	return nil
}
