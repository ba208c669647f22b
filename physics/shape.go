package physics

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/slowtacocar/Hockey/vmath"
)

// CollisionType tags a shape for handler dispatch
type CollisionType uint8

const (
	TypeNone CollisionType = iota
	TypePuck
	TypePowerUp
	TypePaddle
	TypeWall
	TypeSensor
	TypeGoal // solid back wall of a goal box
)

func (t CollisionType) String() string {
	switch t {
	case TypePuck:
		return "puck"
	case TypePowerUp:
		return "powerup"
	case TypePaddle:
		return "paddle"
	case TypeWall:
		return "wall"
	case TypeSensor:
		return "sensor"
	case TypeGoal:
		return "goal"
	default:
		return "none"
	}
}

// ShapeKind is the geometric form of a shape
type ShapeKind uint8

const (
	KindCircle ShapeKind = iota
	KindSegment
)

// Material holds surface response properties
type Material struct {
	Elasticity float64 // restitution in [0,1]
	Friction   float64
}

// CircleDef describes a dynamic circle with its own body
type CircleDef struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64
	Mass     float64
	Material Material
	Type     CollisionType
	Sensor   bool
	Bullet   bool // continuous collision against other dynamic bodies
}

// SegmentDef describes a static line segment on the shared static body
type SegmentDef struct {
	A, B     vmath.Vec2
	Material Material
	Type     CollisionType
	Sensor   bool
}

// Shape is a collision shape attached to exactly one body
// Dynamic circles own their body; segments share the world's static body
type Shape struct {
	handle Handle

	Kind   ShapeKind
	Type   CollisionType
	Radius float64
	A, B   vmath.Vec2 // segment endpoints, game units
	Sensor bool
	Material

	body    *box2d.B2Body
	fixture *box2d.B2Fixture
	static  bool
}

// Handle returns the shape's handle; stale once the shape is removed
func (s *Shape) Handle() Handle { return s.handle }

// Static reports whether the shape sits on the world's static body
func (s *Shape) Static() bool { return s.static }

// Position returns the body position in game units, zero after removal
func (s *Shape) Position() vmath.Vec2 {
	if s.body == nil {
		return vmath.Vec2{}
	}
	if s.static {
		return s.A.Add(s.B).Scale(0.5)
	}
	return fromB2(s.body.GetPosition())
}

// SetPosition teleports a dynamic body
func (s *Shape) SetPosition(p vmath.Vec2) {
	if s.body == nil || s.static {
		return
	}
	s.body.SetTransform(toB2(p), s.body.GetAngle())
}

// Velocity returns linear velocity in game units per second
func (s *Shape) Velocity() vmath.Vec2 {
	if s.body == nil || s.static {
		return vmath.Vec2{}
	}
	return fromB2(s.body.GetLinearVelocity())
}

// SetVelocity overrides linear velocity
func (s *Shape) SetVelocity(v vmath.Vec2) {
	if s.body == nil || s.static {
		return
	}
	s.body.SetLinearVelocity(toB2(v))
	s.body.SetAwake(true)
}

// Mass returns the body mass in game units
func (s *Shape) Mass() float64 {
	if s.body == nil || s.static {
		return 0
	}
	return s.body.GetMass()
}

// Moment returns the moment of inertia about the center in game units
func (s *Shape) Moment() float64 {
	if s.body == nil || s.static {
		return 0
	}
	return s.body.GetInertia() * PixelsPerMeter * PixelsPerMeter
}

// MomentForCircle returns the moment of a solid circle, m*r²/2
func MomentForCircle(mass, radius float64) float64 {
	return mass * radius * radius / 2
}

// densityFor returns the engine density giving a circle of radius r (game units) mass m
func densityFor(mass, radius float64) float64 {
	rm := radius / PixelsPerMeter
	area := math.Pi * rm * rm
	if area == 0 {
		return 0
	}
	return mass / area
}
