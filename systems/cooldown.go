package systems

import (
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/vmath"
)

// CooldownSystem runs player 2's special move.
//
// Ready (TimeToNextHit == 0) and Cooling (> 0). While Special is held, the move
// is ready, the hold is not spent, no goal is in progress and a puck exists, the
// paddle seeks the oldest puck at MaxVelocity. The first frame those conditions
// fail after an engaged frame is the release: TimeToNextHit resets to
// CooldownLength and is not decremented on that frame.
type CooldownSystem struct{}

// NewCooldownSystem creates the special-move system
func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

// Priority implements engine.System
func (cs *CooldownSystem) Priority() int {
	return parameter.PriorityCooldown
}

// Update implements engine.System
func (cs *CooldownSystem) Update(s *engine.GameState) {
	c := &s.Cooldown
	_, p2, ok := s.PaddleShapes()

	var puck *physics.Shape
	if pucks := s.LivePucks(); len(pucks) > 0 {
		puck = pucks[0]
	}

	engage := ok && puck != nil &&
		s.KeyHeld(input.KeySpecial) &&
		c.Ready() &&
		!c.Spent &&
		!s.Round.GoalInProgress()

	if engage {
		if !c.Engaged {
			s.PushEvent(engine.EventSpecialEngaged, nil)
		}
		c.Engaged = true
		// TimeToCooldown >= 0 still engages; the frame at 0 spends the hold
		if c.TimeToCooldown > 0 {
			c.TimeToCooldown--
		} else {
			c.Spent = true
		}
		p2.SetVelocity(specialVelocity(s, p2.Position(), puck.Position()))
		return
	}

	if c.Engaged {
		c.Engaged = false
		c.TimeToNextHit = parameter.CooldownLength
		s.PushEvent(engine.EventSpecialReleased, nil)
	} else if c.TimeToNextHit > 0 {
		c.TimeToNextHit--
	}
	c.TimeToCooldown = parameter.HitLength
	c.Spent = false
}

// specialVelocity seeks the puck, refusing to push left once at the center line
func specialVelocity(s *engine.GameState, paddle, puck vmath.Vec2) vmath.Vec2 {
	v := physics.Seek(paddle, puck, parameter.MaxVelocity, parameter.SeekThreshold)
	lo, _ := s.Geometry.Player2Bounds()
	if paddle.X <= lo.X && v.X < 0 {
		v.X = 0
	}
	return v
}
