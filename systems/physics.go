package systems

import (
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/parameter"
)

// PhysicsSystem advances the world by StepsPerFrame fixed steps.
// Collision handlers registered on the world fire inside these steps.
type PhysicsSystem struct{}

// NewPhysicsSystem creates the stepping system
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

// Priority implements engine.System
func (ps *PhysicsSystem) Priority() int {
	return parameter.PriorityPhysics
}

// Update implements engine.System
func (ps *PhysicsSystem) Update(s *engine.GameState) {
	for i := 0; i < s.StepsPerFrame; i++ {
		if err := s.World.Step(); err != nil {
			s.Log.Error().Err(err).Int64("frame", s.Frame).Msg("physics step")
			return
		}
	}
}
