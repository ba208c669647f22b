package systems

import (
	"time"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/vmath"
)

// PowerUpSystem owns the power-up lifecycle: consumption on puck contact,
// per-flag expiry with world parameter revert, and the spawn policy
type PowerUpSystem struct {
	state *engine.GameState
}

// NewPowerUpSystem creates the system and registers the (PowerUp, Puck) pickup handler
func NewPowerUpSystem(s *engine.GameState) *PowerUpSystem {
	ps := &PowerUpSystem{state: s}
	s.World.AddHandler(physics.TypePowerUp, physics.TypePuck, ps)
	return ps
}

// Priority implements engine.System
func (ps *PowerUpSystem) Priority() int {
	return parameter.PriorityPowerUp
}

// Begin consumes the power-up. It runs inside World.Step.
// Accepting the contact is safe: the removed shape's contact is disabled before
// the solver runs, so the puck does not bounce off the pickup.
func (ps *PowerUpSystem) Begin(w *physics.World, powerUp, _ *physics.Shape) physics.ContactDecision {
	s := ps.state
	kind, ok := s.PowerUps.Delete(powerUp.Handle())
	w.Remove(powerUp.Handle())
	if !ok {
		return physics.ContactAccept
	}

	now := s.Now()
	if s.Effects.Activate(kind, now) {
		s.Log.Debug().Stringer("kind", kind).Msg("power-up activated")
	}
	s.PushEvent(engine.EventPowerUpConsumed, kind)
	return physics.ContactAccept
}

// Update implements engine.System
func (ps *PowerUpSystem) Update(s *engine.GameState) {
	now := s.Now()
	ps.applyEffects(s, now)
	ps.trySpawn(s, now)
}

// applyEffects expires stale flags and drives world parameters from the live ones
func (ps *PowerUpSystem) applyEffects(s *engine.GameState, now time.Time) {
	for _, kind := range engine.PowerUpKinds {
		e := s.Effects.For(kind)
		if e.Expired(now) {
			s.Effects.Deactivate(kind)
			s.PushEvent(engine.EventPowerUpExpired, kind)
		}
	}

	gravity := vmath.Vec2{}
	if s.Effects.Gravity.Active {
		gravity = vmath.V2(0, parameter.GravityY)
	}
	if s.World.Gravity() != gravity {
		s.World.SetGravity(gravity)
	}

	fps := parameter.DefaultFPS
	if s.Effects.Speed.Active {
		fps = parameter.SpeedFPS
	}
	s.TargetFPS = fps

	damping := parameter.DefaultDamping
	if s.Effects.Friction.Active {
		damping = parameter.FrictionDamping
	}
	if s.World.Damping() != damping {
		s.World.SetDamping(damping)
	}
}

// trySpawn rolls once per PowerUpSpawnInterval; the timer resets on every roll
func (ps *PowerUpSystem) trySpawn(s *engine.GameState, now time.Time) {
	if now.Sub(s.LastSpawnAttempt) < parameter.PowerUpSpawnInterval {
		return
	}
	s.LastSpawnAttempt = now

	if s.Rand.IntRange(1, parameter.PowerUpSpawnOdds) != 1 {
		return
	}

	kind := engine.PowerUpKinds[s.Rand.Intn(len(engine.PowerUpKinds))]
	lo, hi := s.Geometry.Interior(parameter.PowerUpRadius)
	pos := vmath.V2(s.Rand.FloatRange(lo.X, hi.X), s.Rand.FloatRange(lo.Y, hi.Y))

	s.SpawnPowerUp(kind, pos)
	s.PushEvent(engine.EventPowerUpSpawned, kind)
	s.Log.Debug().Stringer("kind", kind).Float64("x", pos.X).Float64("y", pos.Y).Msg("power-up spawned")
}
