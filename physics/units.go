package physics

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/slowtacocar/Hockey/vmath"
)

const (
	// PixelsPerMeter maps game units onto the engine's metre-scaled solver
	// Keeps a 1700 unit/s paddle under the solver's per-step translation cap
	PixelsPerMeter = 100.0

	VelocityIterations = 8
	PositionIterations = 3

	// maxLinearDamping stands in for "stop every step"
	maxLinearDamping = 1e9
)

func toB2(v vmath.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X/PixelsPerMeter, v.Y/PixelsPerMeter)
}

func fromB2(v box2d.B2Vec2) vmath.Vec2 {
	return vmath.V2(v.X*PixelsPerMeter, v.Y*PixelsPerMeter)
}

// LinearDampingFor converts a per-second velocity retention factor into the
// engine's per-body damping coefficient for a fixed step dt
// The engine scales velocity by 1/(1+dt*c) per step; solving against
// factor^dt keeps the same decay per simulated second
func LinearDampingFor(factor, dt float64) float64 {
	if dt <= 0 || factor >= 1 {
		return 0
	}
	if factor <= 0 {
		return maxLinearDamping
	}
	return (math.Pow(factor, -dt) - 1) / dt
}
