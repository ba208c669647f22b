package physics

import (
	"errors"

	"github.com/ByteArena/box2d"
	"github.com/slowtacocar/Hockey/vmath"
)

// ErrReentrantStep is returned when Step is called from inside a contact handler
var ErrReentrantStep = errors.New("physics: step called while stepping")

// World owns every body and shape in the simulation
// Gravity and damping are plain inputs; callers re-evaluate them each frame
// Not safe for concurrent use
type World struct {
	engine box2d.B2World
	static *box2d.B2Body

	shapes   arena
	handlers map[TypePair]Handler
	rejected map[fixturePair]struct{}

	// Bodies of shapes removed mid-step, destroyed once the step returns
	pending []*box2d.B2Body

	gravity  vmath.Vec2
	damping  float64
	dt       float64
	stepping bool
}

// NewWorld creates an empty world stepping at dt seconds with the given velocity retention per second
func NewWorld(dt, damping float64) *World {
	w := &World{
		handlers: make(map[TypePair]Handler),
		rejected: make(map[fixturePair]struct{}),
		damping:  damping,
		dt:       dt,
	}
	w.engine = box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	w.engine.SetContactListener(contactListener{w: w})

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	w.static = w.engine.CreateBody(&bd)
	return w
}

// AddHandler registers h for contacts between shapes tagged a and b
// A later registration for the same pair (in either order) replaces the earlier one
func (w *World) AddHandler(a, b CollisionType, h Handler) {
	delete(w.handlers, TypePair{A: b, B: a})
	w.handlers[TypePair{A: a, B: b}] = h
}

// lookup returns the handler for the pair and whether the arguments must be swapped to match it
func (w *World) lookup(a, b CollisionType) (Handler, bool) {
	if h, ok := w.handlers[TypePair{A: a, B: b}]; ok {
		return h, false
	}
	if h, ok := w.handlers[TypePair{A: b, B: a}]; ok {
		return h, true
	}
	return nil, false
}

// AddCircle creates a dynamic body with one circle shape
func (w *World) AddCircle(def CircleDef) Handle {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = toB2(def.Position)
	bd.LinearVelocity = toB2(def.Velocity)
	bd.LinearDamping = LinearDampingFor(w.damping, w.dt)
	bd.AllowSleep = false
	bd.Bullet = def.Bullet
	body := w.engine.CreateBody(&bd)

	circle := box2d.MakeB2CircleShape()
	circle.M_radius = def.Radius / PixelsPerMeter

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &circle
	fd.Density = densityFor(def.Mass, def.Radius)
	fd.Restitution = def.Material.Elasticity
	fd.Friction = def.Material.Friction
	fd.IsSensor = def.Sensor

	s := &Shape{
		Kind:     KindCircle,
		Type:     def.Type,
		Radius:   def.Radius,
		Sensor:   def.Sensor,
		Material: def.Material,
		body:     body,
	}
	h := w.shapes.insert(s)
	fd.UserData = h
	s.fixture = body.CreateFixtureFromDef(&fd)
	body.SetUserData(h)
	return h
}

// AddSegment attaches a static segment to the shared static body
func (w *World) AddSegment(def SegmentDef) Handle {
	edge := box2d.MakeB2EdgeShape()
	edge.Set(toB2(def.A), toB2(def.B))

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &edge
	fd.Restitution = def.Material.Elasticity
	fd.Friction = def.Material.Friction
	fd.IsSensor = def.Sensor

	s := &Shape{
		Kind:     KindSegment,
		Type:     def.Type,
		A:        def.A,
		B:        def.B,
		Sensor:   def.Sensor,
		Material: def.Material,
		body:     w.static,
		static:   true,
	}
	h := w.shapes.insert(s)
	fd.UserData = h
	s.fixture = w.static.CreateFixtureFromDef(&fd)
	return h
}

// Shape resolves a handle; false once the shape has been removed
func (w *World) Shape(h Handle) (*Shape, bool) {
	return w.shapes.get(h)
}

// Alive reports whether h still refers to a shape in the world
func (w *World) Alive(h Handle) bool {
	_, ok := w.shapes.get(h)
	return ok
}

func (w *World) shapeOf(f *box2d.B2Fixture) (*Shape, bool) {
	if f == nil {
		return nil, false
	}
	h, ok := f.GetUserData().(Handle)
	if !ok {
		return nil, false
	}
	return w.shapes.get(h)
}

// Remove takes a dynamic shape and its body out of the world
// The handle is invalidated immediately; when called during Step the engine
// body is destroyed after the step returns and its contacts are disabled until then
// Static geometry cannot be removed
func (w *World) Remove(h Handle) bool {
	s, ok := w.shapes.get(h)
	if !ok || s.static {
		return false
	}
	w.shapes.release(h)

	body := s.body
	s.body = nil
	s.fixture = nil
	if w.stepping {
		w.pending = append(w.pending, body)
	} else {
		w.engine.DestroyBody(body)
	}
	return true
}

// Each calls fn for every live shape
func (w *World) Each(fn func(*Shape)) {
	w.shapes.each(fn)
}

// Handles returns the live handles of shapes tagged t
func (w *World) Handles(t CollisionType) []Handle {
	var out []Handle
	w.shapes.each(func(s *Shape) {
		if s.Type == t {
			out = append(out, s.handle)
		}
	})
	return out
}

// Count returns the number of live shapes
func (w *World) Count() int {
	return w.shapes.count()
}

// Gravity returns the current gravity in game units per second squared
func (w *World) Gravity() vmath.Vec2 { return w.gravity }

// SetGravity replaces world gravity
func (w *World) SetGravity(g vmath.Vec2) {
	if g == w.gravity {
		return
	}
	w.gravity = g
	w.engine.SetGravity(toB2(g))
}

// Damping returns the fraction of velocity kept per second
func (w *World) Damping() float64 { return w.damping }

// SetDamping replaces the global velocity retention and reapplies it to every dynamic body
func (w *World) SetDamping(d float64) {
	if d == w.damping {
		return
	}
	w.damping = d
	c := LinearDampingFor(d, w.dt)
	w.shapes.each(func(s *Shape) {
		if !s.static && s.body != nil {
			s.body.SetLinearDamping(c)
		}
	})
}

// TimeStep returns the fixed step in seconds
func (w *World) TimeStep() float64 { return w.dt }

// Step advances the simulation by one fixed step
// Begin-contact handlers run synchronously before Step returns
func (w *World) Step() error {
	if w.stepping {
		return ErrReentrantStep
	}
	w.stepping = true
	w.engine.Step(w.dt, VelocityIterations, PositionIterations)
	w.stepping = false

	for _, body := range w.pending {
		w.engine.DestroyBody(body)
	}
	w.pending = w.pending[:0]
	return nil
}
