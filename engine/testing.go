package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/vmath"
)

// TestEpoch is the mock clock start used by NewTestGameState
var TestEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// ScriptedInput is an InputSource whose keys and pointer are set directly by tests
type ScriptedInput struct {
	Pointer vmath.Vec2
	Held    map[input.Key]bool
}

// NewScriptedInput creates an input source with nothing held
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{Held: make(map[input.Key]bool)}
}

// PointerPosition implements InputSource
func (s *ScriptedInput) PointerPosition() vmath.Vec2 { return s.Pointer }

// IsKeyHeld implements InputSource
func (s *ScriptedInput) IsKeyHeld(k input.Key) bool { return s.Held[k] }

// NewTestGameState creates a 1920x1080 session on a mock clock with a fixed seed.
// This is a test helper; it panics on setup failure.
func NewTestGameState() (*GameState, *MockTimeProvider, *ScriptedInput) {
	clock := NewMockTimeProvider(TestEpoch)
	in := NewScriptedInput()
	s, err := NewGameState(Options{
		Width:  1920,
		Height: 1080,
		Seed:   42,
		Clock:  clock,
		Input:  in,
		Logger: zerolog.Nop(),
	})
	if err != nil {
		panic(err)
	}
	return s, clock, in
}
