package parameter

import "time"

// Integration
const (
	// PhysicsTimeStep is the fixed simulation step
	PhysicsTimeStep = time.Second / 60

	// PhysicsStepSeconds is PhysicsTimeStep in seconds for the engine
	PhysicsStepSeconds = 1.0 / 60.0

	// DefaultStepsPerFrame is the number of fixed steps per rendered frame
	DefaultStepsPerFrame = 1
)

// World parameters and their power-up overrides
const (
	DefaultFPS = 60
	SpeedFPS   = 120

	// Damping is the fraction of velocity kept per second
	DefaultDamping  = 0.7
	FrictionDamping = 0.2

	// GravityY applies while the gravity power-up is live (y up)
	GravityY = -400.0
)

// Bodies
const (
	PuckRadius    = 35.0
	PaddleRadius  = PuckRadius
	PowerUpRadius = 20.0
	BodyMass      = 1.0

	// EdgeMargin keeps paddles this far from their limits
	EdgeMargin = PuckRadius - 5
)

// Materials
const (
	WallElasticity = 0.8
	WallFriction   = 0.2
	PuckElasticity = 0.8
	PuckFriction   = 0.2
)
