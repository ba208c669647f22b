package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/vmath"
)

// spawningSeed finds a seed whose first spawn roll hits
func spawningSeed(t *testing.T) uint64 {
	t.Helper()
	for seed := uint64(1); seed < 1_000_000; seed++ {
		if vmath.NewFastRand(seed).IntRange(1, parameter.PowerUpSpawnOdds) == 1 {
			return seed
		}
	}
	t.Fatal("no spawning seed found")
	return 0
}

// missingSeed finds a seed whose first spawn roll misses
func missingSeed(t *testing.T) uint64 {
	t.Helper()
	for seed := uint64(1); seed < 1000; seed++ {
		if vmath.NewFastRand(seed).IntRange(1, parameter.PowerUpSpawnOdds) != 1 {
			return seed
		}
	}
	t.Fatal("no missing seed found")
	return 0
}

func TestEffectsDriveWorld(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	ps := NewPowerUpSystem(s)
	now := s.Now()

	for _, k := range engine.PowerUpKinds {
		require.True(t, s.Effects.Activate(k, now))
	}
	ps.Update(s)

	assert.Equal(t, vmath.V2(0, parameter.GravityY), s.World.Gravity())
	assert.Equal(t, parameter.SpeedFPS, s.TargetFPS)
	assert.Equal(t, parameter.FrictionDamping, s.World.Damping())
}

func TestEffectExpiresAfterDuration(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	s.Rand = vmath.NewFastRand(missingSeed(t))
	ps := NewPowerUpSystem(s)

	for _, k := range engine.PowerUpKinds {
		s.Effects.Activate(k, s.Now())
	}
	ps.Update(s)
	eventTypes(s)

	clock.Advance(parameter.PowerUpDuration)
	ps.Update(s)
	assert.True(t, s.Effects.Gravity.Active, "still live at exactly the duration")
	assert.Equal(t, parameter.SpeedFPS, s.TargetFPS)

	clock.Advance(time.Millisecond)
	ps.Update(s)
	assert.False(t, s.Effects.Any())
	assert.Equal(t, vmath.Vec2{}, s.World.Gravity())
	assert.Equal(t, parameter.DefaultFPS, s.TargetFPS)
	assert.Equal(t, parameter.DefaultDamping, s.World.Damping())

	var expired []engine.PowerUpKind
	for _, ev := range s.Events.Consume() {
		if ev.Type == engine.EventPowerUpExpired {
			expired = append(expired, ev.Payload.(engine.PowerUpKind))
		}
	}
	assert.ElementsMatch(t, engine.PowerUpKinds[:], expired)
}

func TestEffectsExpireIndependently(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	ps := NewPowerUpSystem(s)

	s.Effects.Activate(engine.PowerUpGravity, s.Now())
	clock.Advance(5 * time.Second)
	s.Effects.Activate(engine.PowerUpFriction, s.Now())

	clock.Advance(5*time.Second + time.Millisecond)
	ps.Update(s)

	assert.False(t, s.Effects.Gravity.Active)
	assert.True(t, s.Effects.Friction.Active)
	assert.Equal(t, vmath.Vec2{}, s.World.Gravity())
	assert.Equal(t, parameter.FrictionDamping, s.World.Damping())
}

func TestRetriggerKeepsTimestamp(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	start := s.Now()

	require.True(t, s.Effects.Activate(engine.PowerUpSpeed, start))
	clock.Advance(5 * time.Second)
	assert.False(t, s.Effects.Activate(engine.PowerUpSpeed, s.Now()))
	assert.Equal(t, start, s.Effects.Speed.ActivatedAt)
}

func TestSpawnRollsOncePerInterval(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	seed := spawningSeed(t)
	s.Rand = vmath.NewFastRand(seed)
	ps := NewPowerUpSystem(s)

	clock.Advance(parameter.PowerUpSpawnInterval - time.Millisecond)
	ps.Update(s)
	assert.Equal(t, 0, s.PowerUps.Len(), "no roll before the interval")

	clock.Advance(time.Millisecond)
	ps.Update(s)
	require.Equal(t, 1, s.PowerUps.Len())
	assert.Equal(t, s.Now(), s.LastSpawnAttempt)

	h := s.PowerUps.Handles()[0]
	shape, ok := s.World.Shape(h)
	require.True(t, ok)
	lo, hi := s.Geometry.Interior(parameter.PowerUpRadius)
	pos := shape.Position()
	assert.True(t, pos.X >= lo.X-1e-6 && pos.X <= hi.X+1e-6, "x %v outside [%v, %v]", pos.X, lo.X, hi.X)
	assert.True(t, pos.Y >= lo.Y-1e-6 && pos.Y <= hi.Y+1e-6, "y %v outside [%v, %v]", pos.Y, lo.Y, hi.Y)

	assert.Contains(t, eventTypes(s), engine.EventPowerUpSpawned)
}

func TestSpawnMissStillResetsTimer(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	s.Rand = vmath.NewFastRand(missingSeed(t))
	ps := NewPowerUpSystem(s)

	clock.Advance(parameter.PowerUpSpawnInterval)
	ps.Update(s)

	assert.Equal(t, 0, s.PowerUps.Len())
	assert.Equal(t, s.Now(), s.LastSpawnAttempt)
}

func TestPuckPicksUpPowerUp(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	NewPowerUpSystem(s)
	phys := NewPhysicsSystem()

	at := vmath.V2(700, 400)
	s.SpawnPowerUp(engine.PowerUpGravity, at)
	puck := s.SpawnPuck(at.Sub(vmath.V2(parameter.PuckRadius+parameter.PowerUpRadius+5, 0)))
	shape, _ := s.World.Shape(puck)
	shape.SetVelocity(vmath.V2(600, 0))

	for i := 0; i < 10 && s.PowerUps.Len() > 0; i++ {
		phys.Update(s)
	}

	assert.Equal(t, 0, s.PowerUps.Len())
	assert.True(t, s.Effects.Gravity.Active)
	assert.Equal(t, s.Now(), s.Effects.Gravity.ActivatedAt)
	assert.True(t, s.World.Alive(puck), "the puck survives the pickup")
	assert.Contains(t, eventTypes(s), engine.EventPowerUpConsumed)
}
