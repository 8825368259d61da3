package parameter

// Respawn policy
const (
	// FallThreshold is the height below which the vehicle is respawned
	FallThreshold = -20.0

	// AutosaveInterval in seconds between checkpoint autosave attempts
	AutosaveInterval = 1.0

	// AutosaveMinUpDot is the minimum dot(body up, world up) for an autosave
	AutosaveMinUpDot = 0.5

	// RespawnLift raises the respawn point above the checkpoint to avoid ground overlap
	RespawnLift = 2.0
)

// Spawn placement
const (
	// SpawnZ is the track position of the initial checkpoint
	SpawnZ = 0.0

	// SpawnHeight above the terrain, the suspension settles the drop
	SpawnHeight = 1.0
)
