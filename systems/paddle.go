package systems

import (
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/vmath"
)

// PaddleSystem drives player 1 toward the pointer and player 2 from the directional keys
type PaddleSystem struct{}

// NewPaddleSystem creates the paddle control system
func NewPaddleSystem() *PaddleSystem {
	return &PaddleSystem{}
}

// Priority implements engine.System
func (ps *PaddleSystem) Priority() int {
	return parameter.PriorityPaddle
}

// Update implements engine.System
func (ps *PaddleSystem) Update(s *engine.GameState) {
	p1, p2, ok := s.PaddleShapes()
	if !ok {
		return
	}
	p1.SetVelocity(pointerVelocity(s, p1.Position()))
	p2.SetVelocity(keyVelocity(s, p2.Position()))
}

// pointerVelocity follows the pointer, clamped to player 1's half.
// The pointer is in screen space; the clamp is symmetric about the rink's
// vertical center so it can be applied before the flip.
func pointerVelocity(s *engine.GameState, pos vmath.Vec2) vmath.Vec2 {
	if s.Input == nil {
		return vmath.Vec2{}
	}
	g := s.Geometry
	lo, hi := g.Player1Bounds()
	ptr := s.Input.PointerPosition()

	target := vmath.V2(
		vmath.Clamp(ptr.X, lo.X, hi.X),
		g.FlipY(vmath.Clamp(ptr.Y, lo.Y, hi.Y)),
	)
	return physics.Follow(pos, target, parameter.MaxVelocity, parameter.SeekThreshold, parameter.PointerGain)
}

// keyVelocity maps held directions to ±ControlledVelocity per axis.
// Each direction is gated by position so the paddle stays in player 2's half;
// Down wins over Up and Right over Left when both are held.
func keyVelocity(s *engine.GameState, pos vmath.Vec2) vmath.Vec2 {
	lo, hi := s.Geometry.Player2Bounds()
	var v vmath.Vec2

	if s.KeyHeld(input.KeyUp) && pos.Y <= hi.Y {
		v.Y = parameter.ControlledVelocity
	}
	if s.KeyHeld(input.KeyLeft) && pos.X >= lo.X {
		v.X = -parameter.ControlledVelocity
	}
	if s.KeyHeld(input.KeyDown) && pos.Y >= lo.Y {
		v.Y = -parameter.ControlledVelocity
	}
	if s.KeyHeld(input.KeyRight) && pos.X <= hi.X {
		v.X = parameter.ControlledVelocity
	}
	return v
}
