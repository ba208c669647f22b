package systems

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/vmath"
)

// shotState is a full HD rink without paddles and with the round machine and
// stepping system ready, so a puck can be fired freely at either goal
func shotState(t *testing.T) (*engine.GameState, *engine.MockTimeProvider, *PhysicsSystem, *RoundSystem) {
	t.Helper()
	s, clock, _ := newSizedState(t, 1920, 1080)
	require.True(t, s.World.Remove(s.Paddle1))
	require.True(t, s.World.Remove(s.Paddle2))

	rs, err := NewRoundSystem(s)
	require.NoError(t, err)
	return s, clock, NewPhysicsSystem(), rs
}

// playFrames runs physics then the round machine for n frames and counts goal events
func playFrames(s *engine.GameState, clock *engine.MockTimeProvider, ps *PhysicsSystem, rs *RoundSystem, n int) int {
	goals := 0
	for i := 0; i < n; i++ {
		clock.Advance(time.Second / 60)
		s.Frame++
		ps.Update(s)
		rs.Update(s)
		for _, typ := range eventTypes(s) {
			if typ == engine.EventGoal {
				goals++
			}
		}
	}
	return goals
}

func TestPuckShotIntoGoalScores(t *testing.T) {
	speeds := []float64{300, 800, parameter.MaxVelocity, 3000}

	for _, speed := range speeds {
		t.Run(fmt.Sprintf("left at %.0f", speed), func(t *testing.T) {
			s, clock, ps, rs := shotState(t)
			puck := s.SpawnPuck(s.Geometry.ServeLeft())
			sh, ok := s.World.Shape(puck)
			require.True(t, ok)
			sh.SetVelocity(vmath.V2(-speed, 0))

			assert.Equal(t, 1, playFrames(s, clock, ps, rs, 150))
			assert.Equal(t, 0, s.Round.Score1)
			assert.Equal(t, 1, s.Round.Score2)
			assert.False(t, s.World.Alive(puck), "scored puck is removed")
		})

		t.Run(fmt.Sprintf("right at %.0f", speed), func(t *testing.T) {
			s, clock, ps, rs := shotState(t)
			puck := s.SpawnPuck(s.Geometry.ServeRight())
			sh, ok := s.World.Shape(puck)
			require.True(t, ok)
			sh.SetVelocity(vmath.V2(speed, 0))

			assert.Equal(t, 1, playFrames(s, clock, ps, rs, 150))
			assert.Equal(t, 1, s.Round.Score1)
			assert.Equal(t, 0, s.Round.Score2)
			assert.False(t, s.World.Alive(puck), "scored puck is removed")
		})
	}
}

func TestPuckOffEndWallDoesNotScore(t *testing.T) {
	s, clock, ps, rs := shotState(t)

	// Below the goal mouth: bounces off the end walls only
	puck := s.SpawnPuck(vmath.V2(s.Geometry.ServeLeft().X, 200))
	sh, ok := s.World.Shape(puck)
	require.True(t, ok)
	sh.SetVelocity(vmath.V2(-parameter.MaxVelocity, 0))

	assert.Zero(t, playFrames(s, clock, ps, rs, 150))
	assert.Zero(t, s.Round.Score1)
	assert.Zero(t, s.Round.Score2)
	assert.True(t, s.World.Alive(puck))
}
