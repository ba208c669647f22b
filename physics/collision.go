package physics

import "github.com/ByteArena/box2d"

// ContactDecision is a begin-contact handler's verdict
type ContactDecision bool

const (
	// ContactAccept lets the engine resolve the contact normally
	// A shape removed by the handler produces no response regardless
	ContactAccept ContactDecision = true

	// ContactReject suppresses physical response for the rest of the contact
	ContactReject ContactDecision = false
)

// Handler reacts to the first step in which two tagged shapes touch
// a carries the pair's first type, b the second
// Runs synchronously inside Step; may remove shapes but must not step the world
type Handler interface {
	Begin(w *World, a, b *Shape) ContactDecision
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(w *World, a, b *Shape) ContactDecision

func (f HandlerFunc) Begin(w *World, a, b *Shape) ContactDecision { return f(w, a, b) }

// TypePair keys the handler table; order matters and is normalized on dispatch
type TypePair struct {
	A, B CollisionType
}

type fixturePair struct {
	a, b *box2d.B2Fixture
}

func pairOf(c box2d.B2ContactInterface) fixturePair {
	return fixturePair{a: c.GetFixtureA(), b: c.GetFixtureB()}
}

// contactListener bridges engine callbacks to the handler table
type contactListener struct {
	w *World
}

func (l contactListener) BeginContact(c box2d.B2ContactInterface) {
	w := l.w
	sa, okA := w.shapeOf(c.GetFixtureA())
	sb, okB := w.shapeOf(c.GetFixtureB())
	if !okA || !okB {
		return
	}

	h, swapped := w.lookup(sa.Type, sb.Type)
	if h == nil {
		return
	}
	if swapped {
		sa, sb = sb, sa
	}

	if h.Begin(w, sa, sb) == ContactReject {
		w.rejected[pairOf(c)] = struct{}{}
	}
}

func (l contactListener) EndContact(c box2d.B2ContactInterface) {
	delete(l.w.rejected, pairOf(c))
}

func (l contactListener) PreSolve(c box2d.B2ContactInterface, _ box2d.B2Manifold) {
	w := l.w
	if _, ok := w.rejected[pairOf(c)]; ok {
		c.SetEnabled(false)
		return
	}
	// A shape removed earlier in this step still has a body until the step ends
	if _, ok := w.shapeOf(c.GetFixtureA()); !ok {
		c.SetEnabled(false)
		return
	}
	if _, ok := w.shapeOf(c.GetFixtureB()); !ok {
		c.SetEnabled(false)
	}
}

func (l contactListener) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}
