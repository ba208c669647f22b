package systems

import (
	"github.com/gdamore/tcell/v2"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/parameter"
)

// InputSystem samples the terminal once per frame: it drains buffered events
// into the input state so the rest of the frame sees a stable snapshot
type InputSystem struct {
	state  *input.State
	events <-chan tcell.Event
}

// NewInputSystem creates the sampler over a terminal event channel
func NewInputSystem(state *input.State, events <-chan tcell.Event) *InputSystem {
	return &InputSystem{state: state, events: events}
}

// Priority implements engine.System
func (is *InputSystem) Priority() int {
	return parameter.PriorityInput
}

// Update implements engine.System
func (is *InputSystem) Update(s *engine.GameState) {
	is.state.Pump(is.events, s.Now())
}
