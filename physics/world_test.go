package physics

import (
	"testing"

	"github.com/slowtacocar/Hockey/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDt = 1.0 / 60.0

func puckDef(pos, vel vmath.Vec2) CircleDef {
	return CircleDef{
		Position: pos,
		Velocity: vel,
		Radius:   35,
		Mass:     1,
		Material: Material{Elasticity: 0.8, Friction: 0.2},
		Type:     TypePuck,
	}
}

func powerUpDef(pos vmath.Vec2) CircleDef {
	return CircleDef{Position: pos, Radius: 20, Mass: 1, Type: TypePowerUp}
}

func stepN(t *testing.T, w *World, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, w.Step())
	}
}

func TestStepIntegratesVelocity(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddCircle(puckDef(vmath.V2(500, 500), vmath.V2(600, 0)))

	stepN(t, w, 1)

	s, ok := w.Shape(h)
	require.True(t, ok)
	assert.InDelta(t, 510, s.Position().X, 0.5)
	assert.InDelta(t, 500, s.Position().Y, 1e-6)
	assert.InDelta(t, 600, s.Velocity().X, 1e-6)
}

func TestCircleMassAndMoment(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddCircle(puckDef(vmath.V2(0, 0), vmath.Vec2{}))
	s, ok := w.Shape(h)
	require.True(t, ok)

	assert.InDelta(t, 1.0, s.Mass(), 1e-9)
	assert.InDelta(t, MomentForCircle(1, 35), s.Moment(), 1e-6)
}

func TestGravityAccelerates(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddCircle(puckDef(vmath.V2(500, 5000), vmath.Vec2{}))
	w.SetGravity(vmath.V2(0, -400))

	stepN(t, w, 60)

	s, _ := w.Shape(h)
	assert.InDelta(t, -400, s.Velocity().Y, 1e-6)
	assert.Equal(t, vmath.V2(0, -400), w.Gravity())
}

func TestDampingKeepsFractionPerSecond(t *testing.T) {
	w := NewWorld(testDt, 0.5)
	h := w.AddCircle(puckDef(vmath.V2(0, 0), vmath.V2(100, 0)))

	stepN(t, w, 60)

	s, _ := w.Shape(h)
	assert.InDelta(t, 50, s.Velocity().X, 0.01)
}

func TestSetDampingReappliesToExistingBodies(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddCircle(puckDef(vmath.V2(0, 0), vmath.V2(100, 0)))

	w.SetDamping(0.5)
	assert.Equal(t, 0.5, w.Damping())
	stepN(t, w, 60)

	s, _ := w.Shape(h)
	assert.InDelta(t, 50, s.Velocity().X, 0.01)
}

func TestLinearDampingFor(t *testing.T) {
	assert.Equal(t, 0.0, LinearDampingFor(1, testDt))
	assert.Equal(t, 0.0, LinearDampingFor(0.5, 0))
	assert.Greater(t, LinearDampingFor(0.2, testDt), LinearDampingFor(0.7, testDt))
	assert.Greater(t, LinearDampingFor(0, testDt), 1e6)
}

func TestHandlerConsumesPowerUpWithoutBounce(t *testing.T) {
	w := NewWorld(testDt, 1)
	puck := w.AddCircle(puckDef(vmath.V2(500, 500), vmath.Vec2{}))
	pu := w.AddCircle(powerUpDef(vmath.V2(520, 500)))

	calls := 0
	w.AddHandler(TypePowerUp, TypePuck, HandlerFunc(func(w *World, a, b *Shape) ContactDecision {
		calls++
		assert.Equal(t, TypePowerUp, a.Type)
		assert.Equal(t, TypePuck, b.Type)
		assert.True(t, w.Remove(a.Handle()))
		return ContactAccept
	}))

	stepN(t, w, 3)

	assert.Equal(t, 1, calls)
	assert.False(t, w.Alive(pu))
	assert.Equal(t, 1, w.Count())

	s, ok := w.Shape(puck)
	require.True(t, ok)
	assert.InDelta(t, 0, s.Velocity().Mag(), 1e-9)
	assert.InDelta(t, 500, s.Position().X, 1e-9)
}

func TestHandlerArgumentsFollowRegistrationOrder(t *testing.T) {
	w := NewWorld(testDt, 1)
	w.AddCircle(powerUpDef(vmath.V2(520, 500)))
	w.AddCircle(puckDef(vmath.V2(500, 500), vmath.Vec2{}))

	var first, second CollisionType
	w.AddHandler(TypePuck, TypePowerUp, HandlerFunc(func(_ *World, a, b *Shape) ContactDecision {
		first, second = a.Type, b.Type
		return ContactReject
	}))

	stepN(t, w, 1)

	assert.Equal(t, TypePuck, first)
	assert.Equal(t, TypePowerUp, second)
}

func TestRejectSuppressesResponse(t *testing.T) {
	w := NewWorld(testDt, 1)
	a := w.AddCircle(CircleDef{Position: vmath.V2(500, 500), Radius: 35, Mass: 1, Type: TypePaddle})
	b := w.AddCircle(puckDef(vmath.V2(530, 500), vmath.Vec2{}))

	w.AddHandler(TypePaddle, TypePuck, HandlerFunc(func(*World, *Shape, *Shape) ContactDecision {
		return ContactReject
	}))

	stepN(t, w, 5)

	sa, _ := w.Shape(a)
	sb, _ := w.Shape(b)
	assert.InDelta(t, 500, sa.Position().X, 1e-9)
	assert.InDelta(t, 530, sb.Position().X, 1e-9)
}

func TestUnhandledOverlapSeparates(t *testing.T) {
	w := NewWorld(testDt, 1)
	a := w.AddCircle(CircleDef{Position: vmath.V2(500, 500), Radius: 35, Mass: 1, Type: TypePaddle})
	b := w.AddCircle(puckDef(vmath.V2(530, 500), vmath.Vec2{}))

	stepN(t, w, 30)

	sa, _ := w.Shape(a)
	sb, _ := w.Shape(b)
	assert.Greater(t, vmath.Dist(sa.Position(), sb.Position()), 30.0)
}

func TestHandlerCannotStepWorld(t *testing.T) {
	w := NewWorld(testDt, 1)
	w.AddCircle(puckDef(vmath.V2(500, 500), vmath.Vec2{}))
	w.AddCircle(powerUpDef(vmath.V2(520, 500)))

	var nested error
	w.AddHandler(TypePowerUp, TypePuck, HandlerFunc(func(w *World, _, _ *Shape) ContactDecision {
		nested = w.Step()
		return ContactAccept
	}))

	stepN(t, w, 1)
	assert.ErrorIs(t, nested, ErrReentrantStep)
}

func TestWallBouncesPuck(t *testing.T) {
	w := NewWorld(testDt, 1)
	w.AddSegment(SegmentDef{
		A:        vmath.V2(600, 0),
		B:        vmath.V2(600, 1000),
		Material: Material{Elasticity: 0.8, Friction: 0.2},
		Type:     TypeWall,
	})
	h := w.AddCircle(puckDef(vmath.V2(500, 500), vmath.V2(600, 0)))

	stepN(t, w, 30)

	s, _ := w.Shape(h)
	assert.Less(t, s.Velocity().X, 0.0)
	assert.Less(t, s.Position().X, 600.0)
}

func TestSensorSegmentHasNoResponse(t *testing.T) {
	w := NewWorld(testDt, 1)
	w.AddSegment(SegmentDef{A: vmath.V2(600, 0), B: vmath.V2(600, 1000), Type: TypeSensor, Sensor: true})
	h := w.AddCircle(puckDef(vmath.V2(500, 500), vmath.V2(600, 0)))

	stepN(t, w, 30)

	s, _ := w.Shape(h)
	assert.InDelta(t, 600, s.Velocity().X, 1e-6)
	assert.Greater(t, s.Position().X, 635.0)
}

func TestRemoveInvalidatesHandle(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddCircle(puckDef(vmath.V2(0, 0), vmath.Vec2{}))
	s, _ := w.Shape(h)

	assert.True(t, w.Remove(h))
	assert.False(t, w.Alive(h))
	assert.False(t, w.Remove(h), "second removal must be a no-op")

	_, ok := w.Shape(h)
	assert.False(t, ok)

	// The detached shape no longer reaches an engine body
	assert.Equal(t, vmath.Vec2{}, s.Position())
	s.SetVelocity(vmath.V2(1, 1))
	assert.Equal(t, vmath.Vec2{}, s.Velocity())
}

func TestRecycledSlotDoesNotRevive(t *testing.T) {
	w := NewWorld(testDt, 1)
	old := w.AddCircle(puckDef(vmath.V2(0, 0), vmath.Vec2{}))
	require.True(t, w.Remove(old))

	fresh := w.AddCircle(puckDef(vmath.V2(100, 0), vmath.Vec2{}))
	assert.NotEqual(t, old, fresh)
	assert.False(t, w.Alive(old))
	assert.True(t, w.Alive(fresh))
}

func TestStaticGeometryIsPermanent(t *testing.T) {
	w := NewWorld(testDt, 1)
	h := w.AddSegment(SegmentDef{A: vmath.V2(0, 0), B: vmath.V2(10, 0), Type: TypeWall})

	assert.False(t, w.Remove(h))
	assert.True(t, w.Alive(h))

	s, _ := w.Shape(h)
	assert.True(t, s.Static())
	assert.Equal(t, vmath.V2(5, 0), s.Position())
}

func TestHandlesFiltersByType(t *testing.T) {
	w := NewWorld(testDt, 1)
	w.AddCircle(puckDef(vmath.V2(0, 0), vmath.Vec2{}))
	w.AddCircle(powerUpDef(vmath.V2(300, 0)))
	w.AddCircle(powerUpDef(vmath.V2(600, 0)))

	assert.Len(t, w.Handles(TypePowerUp), 2)
	assert.Len(t, w.Handles(TypePuck), 1)
	assert.Empty(t, w.Handles(TypeWall))
}

func TestTableIsGenerationChecked(t *testing.T) {
	w := NewWorld(testDt, 1)
	tbl := NewTable[string](w)

	h := w.AddCircle(powerUpDef(vmath.V2(0, 0)))
	tbl.Set(h, "gravity")

	v, ok := tbl.Get(h)
	require.True(t, ok)
	assert.Equal(t, "gravity", v)
	assert.Equal(t, 1, tbl.Len())

	require.True(t, w.Remove(h))
	_, ok = tbl.Get(h)
	assert.False(t, ok, "entry must not outlive its shape")

	recycled := w.AddCircle(powerUpDef(vmath.V2(0, 0)))
	_, ok = tbl.Get(recycled)
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())

	tbl.Set(h, "stale")
	assert.Equal(t, 0, tbl.Len(), "stale handles cannot be stored")
}

func TestTableDeleteReturnsValueAfterRemoval(t *testing.T) {
	w := NewWorld(testDt, 1)
	tbl := NewTable[int](w)
	h := w.AddCircle(powerUpDef(vmath.V2(0, 0)))
	tbl.Set(h, 2)

	require.True(t, w.Remove(h))
	v, ok := tbl.Delete(h)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = tbl.Delete(h)
	assert.False(t, ok)
}
