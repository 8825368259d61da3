package parameter

// Rigid body
const (
	// BikeMass in kg
	BikeMass = 80.0

	// BikeSizeX/Y/Z are the chassis box extents used for the inertia tensor
	BikeSizeX = 0.5
	BikeSizeY = 1.0
	BikeSizeZ = 2.0

	// BikeCenterOfMassY lowers the center of mass below the origin so the body resists rolling over
	BikeCenterOfMassY = -0.5

	BikeLinearDamping  = 0.05
	BikeAngularDamping = 0.5

	// BikeMaxAngularSpeed in rad/s
	BikeMaxAngularSpeed = 7.0

	// BikeContactRadius is the chassis sphere that keeps a bottomed-out body above terrain
	BikeContactRadius = 0.15

	// MountContactRadius is the sphere at each wheel mount, capping suspension compression at 1 - r/RestLength
	MountContactRadius = 0.05
)

// Suspension
const (
	WheelRadius          = 0.4
	SuspensionRestLength = 0.5
	SpringStrength       = 500.0
	SpringDamper         = 50.0
	GripFactor           = 0.5

	// UprightStiffness of 0 lets the body tumble freely
	UprightStiffness = 10.0

	// UprightMinStiffness is the threshold at or below which the stabilizer is disabled
	UprightMinStiffness = 0.1

	// Wheel mounts in body-local space
	FrontMountY = -0.1
	FrontMountZ = 0.7
	RearMountY  = -0.1
	RearMountZ  = -0.7
)

// Drive
const (
	// AccelerationForce in N applied at the rear contact
	AccelerationForce = 3000.0

	// BrakeRatio scales the acceleration magnitude when braking
	BrakeRatio = 0.5

	MaxSpeed      = 40.0
	MaxSteerAngle = 30.0
	SteerSpeed    = 5.0

	// TurnSpeed in degrees per second of direct body yaw
	TurnSpeed = 80.0

	BoostSpeedMultiplier = 1.5
	BoostAccelMultiplier = 2.0

	// ChargeThrottleScale is the gas kept while a gesture source holds charge
	ChargeThrottleScale = 0.8

	// ExtraGravity in m/s² applied while airborne
	ExtraGravity = 20.0
)

// Ground classification
const (
	GroundProbeLength  = 100.0
	GroundedThreshold  = 0.8
	GroundMissDistance = 100.0

	// GroundLayerMask selects the drivable collision category
	GroundLayerMask uint32 = 1 << 3
)

// Jump
const (
	MinJumpForce   = 300.0
	MaxJumpForce   = 1000.0
	JumpChargeTime = 0.8
	JumpSquash     = 0.2
	JumpRelaxSpeed = 10.0

	// Impulse direction blend, normalized before use
	JumpUpWeight      = 0.9
	JumpForwardWeight = 0.1
)

// Tricks
const (
	MinTrickHeight    = 2.5
	RequireStickReset = true
	TrickDeadzone     = 0.1
	TrickSpeed        = 5.0
	TrickReturnSpeed  = 10.0

	// CrashThreshold is the explosion amount above which a landing counts as a crash
	CrashThreshold = 0.1

	// PartSpread is the displacement amplitude of exploded parts at full stick
	PartSpread = 0.5

	// PartSpinSpeed in degrees per second at full horizontal stick
	PartSpinSpeed = 100.0
)

// Nitro
const (
	NitroMax        = 100.0
	NitroInitial    = 100.0
	NitroBurnRate   = 40.0
	NitroRewardRate = 30.0
)

// Visuals
const (
	LeanAngle = 35.0
	LeanSpeed = 5.0
)
