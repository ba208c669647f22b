package systems

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/vmath"
)

// eventTypes drains the queue and returns the event types in order
func eventTypes(s *engine.GameState) []engine.EventType {
	var types []engine.EventType
	for _, ev := range s.Events.Consume() {
		types = append(types, ev.Type)
	}
	return types
}

// newSizedState builds a session for an arbitrary virtual screen on a mock clock
func newSizedState(t *testing.T, w, h int) (*engine.GameState, *engine.MockTimeProvider, *engine.ScriptedInput) {
	t.Helper()
	clock := engine.NewMockTimeProvider(engine.TestEpoch)
	in := engine.NewScriptedInput()
	s, err := engine.NewGameState(engine.Options{
		Width:  w,
		Height: h,
		Seed:   7,
		Clock:  clock,
		Input:  in,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return s, clock, in
}

// stepFrames advances the clock by one 60 fps frame and runs sys, n times
func stepFrames(s *engine.GameState, clock *engine.MockTimeProvider, sys engine.System, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second / 60)
		s.Frame++
		sys.Update(s)
	}
}

// assertNear compares vectors within the engine's unit-conversion rounding
func assertNear(t *testing.T, want, got vmath.Vec2, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-6, msgAndArgs...)
}
