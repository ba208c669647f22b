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

func newRound(t *testing.T, s *engine.GameState) *RoundSystem {
	t.Helper()
	rs, err := NewRoundSystem(s)
	require.NoError(t, err)
	return rs
}

func TestRoundStartsServing(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	rs := newRound(t, s)

	assert.Equal(t, "Serving", rs.State())
	assert.Equal(t, engine.PhaseServing, s.Round.Phase)
	assert.Empty(t, s.Pucks)
}

func TestGoalLinesAreInclusive(t *testing.T) {
	cases := []struct {
		name   string
		x      float64
		scorer int
	}{
		{"left line", parameter.GoalLineLeftX, 2},
		{"right line", 1620 + parameter.GoalLineRightInset, 1},
		{"inside left", parameter.GoalLineLeftX + 1, 0},
		{"inside right", 1620 + parameter.GoalLineRightInset - 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := engine.NewTestGameState()
			rs := newRound(t, s)
			s.SpawnPuck(vmath.V2(tc.x, s.Geometry.MidY()))

			rs.Update(s)

			switch tc.scorer {
			case 0:
				assert.Equal(t, 0, s.Round.Score1+s.Round.Score2)
				assert.Len(t, s.Pucks, 1)
			case 1:
				assert.Equal(t, 1, s.Round.Score1)
				assert.Empty(t, s.Pucks)
			case 2:
				assert.Equal(t, 1, s.Round.Score2)
				assert.Empty(t, s.Pucks)
			}
		})
	}
}

func TestGoalScenarioNarrowScreen(t *testing.T) {
	s, clock, _ := newSizedState(t, 1300, 700)
	require.Equal(t, 1115.0, s.Geometry.GoalLineRight())
	rs := newRound(t, s)

	s.SpawnPuck(vmath.V2(100, s.Geometry.MidY()))
	clock.Advance(16 * time.Millisecond)
	rs.Update(s)

	assert.Equal(t, 0, s.Round.Score1)
	assert.Equal(t, 1, s.Round.Score2)
	assert.Equal(t, parameter.BannerGoal, s.Round.Banner)
	assert.Equal(t, "Score: 0 - 1", s.Round.ScoreText())
	assert.Equal(t, "GoalScored", rs.State())
	assert.Empty(t, s.Pucks)

	events := s.Events.Consume()
	require.Len(t, events, 1)
	assert.Equal(t, engine.EventGoal, events[0].Type)
	assert.Equal(t, engine.GoalPayload{Scorer: 2, Score1: 0, Score2: 1}, events[0].Payload)
}

func TestServeAfterGoalOnConcedingSide(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	rs := newRound(t, s)

	s.SpawnPuck(vmath.V2(1800, s.Geometry.MidY()))
	rs.Update(s)
	require.Equal(t, 1, s.Round.Score1)
	eventTypes(s)

	clock.Advance(999 * time.Millisecond)
	rs.Update(s)
	assert.Equal(t, "GoalScored", rs.State())
	assert.Empty(t, s.Pucks)

	clock.Advance(time.Millisecond)
	rs.Update(s)
	assert.Equal(t, "Serving", rs.State())
	assert.Empty(t, s.Round.Banner)
	require.Len(t, s.Pucks, 1)

	pucks := s.LivePucks()
	assertNear(t, s.Geometry.ServeRight(), pucks[0].Position())
	assert.Equal(t, []engine.EventType{engine.EventPuckServed}, eventTypes(s))

	// The countdown runs from the goal; the existing puck suppresses the GO serve
	clock.Advance(3000 * time.Millisecond)
	rs.Update(s)
	assert.Equal(t, parameter.BannerGo, s.Round.Banner)
	assert.Len(t, s.Pucks, 1)

	clock.Advance(500 * time.Millisecond)
	rs.Update(s)
	assert.Equal(t, "Playing", rs.State())
	assert.Equal(t, engine.PhasePlaying, s.Round.Phase)
	assert.Empty(t, s.Round.Banner)
}

func TestCountdownBannersAndSingleServe(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	rs := newRound(t, s)

	steps := []struct {
		at     time.Duration
		banner string
		pucks  int
	}{
		{2499 * time.Millisecond, "", 0},
		{2500 * time.Millisecond, "3", 0},
		{3000 * time.Millisecond, "2", 0},
		{3500 * time.Millisecond, "1", 0},
		{3999 * time.Millisecond, "1", 0},
		{4000 * time.Millisecond, "GO!", 1},
		{4200 * time.Millisecond, "GO!", 1},
	}

	for _, st := range steps {
		clock.SetTime(engine.TestEpoch.Add(st.at))
		rs.Update(s)
		assert.Equal(t, st.banner, s.Round.Banner, "at %v", st.at)
		assert.Len(t, s.Pucks, st.pucks, "at %v", st.at)
	}

	var countdown []string
	for _, ev := range s.Events.Consume() {
		if ev.Type == engine.EventCountdown {
			countdown = append(countdown, ev.Payload.(string))
		}
	}
	assert.Equal(t, []string{"3", "2", "1", "GO!"}, countdown)

	pucks := s.LivePucks()
	require.Len(t, pucks, 1)
	assertNear(t, s.Geometry.ServeLeft(), pucks[0].Position())

	clock.SetTime(engine.TestEpoch.Add(4500 * time.Millisecond))
	rs.Update(s)
	assert.Equal(t, "Playing", rs.State())
	assert.Empty(t, s.Round.Banner)
}

func TestCountdownServesWhenFrameSkipsGo(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	rs := newRound(t, s)

	clock.SetTime(engine.TestEpoch.Add(5 * time.Second))
	rs.Update(s)

	assert.Len(t, s.Pucks, 1)
	assert.Equal(t, "Playing", rs.State())
}

func TestMatchWinSequence(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	rs := newRound(t, s)
	s.Round.Score1 = 6
	s.Round.Score2 = 3

	s.SpawnPuck(vmath.V2(1800, s.Geometry.MidY()))
	rs.Update(s)

	assert.Equal(t, 7, s.Round.Score1)
	assert.True(t, s.Round.Win1)
	assert.False(t, s.Round.Win2)
	assert.Equal(t, "MatchWon", rs.State())
	assert.Equal(t, parameter.BannerGoal, s.Round.Banner)
	assert.Equal(t, []engine.EventType{engine.EventGoal, engine.EventMatchWon}, eventTypes(s))

	clock.Advance(999 * time.Millisecond)
	rs.Update(s)
	assert.Equal(t, parameter.BannerGoal, s.Round.Banner)

	clock.Advance(time.Millisecond)
	rs.Update(s)
	assert.Equal(t, parameter.BannerP1Wins, s.Round.Banner)
	assert.Empty(t, s.Pucks, "no serve after a winning goal")

	clock.Advance(1000 * time.Millisecond)
	rs.Update(s)
	assert.Equal(t, "Serving", rs.State())
	assert.Equal(t, 0, s.Round.Score1)
	assert.Equal(t, 0, s.Round.Score2)
	assert.False(t, s.Round.Win1)
	assert.Empty(t, s.Round.Banner)
	assert.Empty(t, s.Pucks)

	// Fresh countdown from the reset
	clock.Advance(4000 * time.Millisecond)
	rs.Update(s)
	require.Len(t, s.Pucks, 1)
	assertNear(t, s.Geometry.ServeLeft(), s.LivePucks()[0].Position())
}

func TestPlayerTwoWins(t *testing.T) {
	s, clock, _ := engine.NewTestGameState()
	rs := newRound(t, s)
	s.Round.Score2 = 6

	s.SpawnPuck(vmath.V2(100, s.Geometry.MidY()))
	rs.Update(s)
	assert.True(t, s.Round.Win2)
	assert.False(t, s.Round.Win1)

	clock.Advance(time.Second)
	rs.Update(s)
	assert.Equal(t, parameter.BannerP2Wins, s.Round.Banner)
}

func TestGoalIgnoredOutsideLivePlay(t *testing.T) {
	s, _, _ := engine.NewTestGameState()
	rs := newRound(t, s)

	s.SpawnPuck(vmath.V2(100, s.Geometry.MidY()))
	rs.Update(s)
	require.Equal(t, "GoalScored", rs.State())

	// A second puck in a goal while the banner is up waits for the next live frame
	s.SpawnPuck(vmath.V2(100, s.Geometry.MidY()))
	rs.Update(s)
	assert.Equal(t, 1, s.Round.Score2)
	assert.True(t, s.Round.GoalInProgress())
}
