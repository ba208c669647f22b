package systems

import (
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/parameter"
)

// ControlSystem turns the Quit and Screenshot keys into session actions.
// Both fire on the press edge so a held key acts once.
type ControlSystem struct {
	quitHeld       bool
	screenshotHeld bool
}

// NewControlSystem creates the session control system
func NewControlSystem() *ControlSystem {
	return &ControlSystem{}
}

// Priority implements engine.System
func (cs *ControlSystem) Priority() int {
	return parameter.PriorityControl
}

// Update implements engine.System
func (cs *ControlSystem) Update(s *engine.GameState) {
	quit := s.KeyHeld(input.KeyQuit)
	if quit && !cs.quitHeld {
		s.PushEvent(engine.EventQuitRequest, nil)
	}
	cs.quitHeld = quit

	shot := s.KeyHeld(input.KeyScreenshot)
	if shot && !cs.screenshotHeld {
		s.PushEvent(engine.EventScreenshotRequest, nil)
	}
	cs.screenshotHeld = shot
}

// HandleEvents stops the loop after this frame on any quit request.
// Requests come from Update above, after InputSystem has drained the terminal channel.
func (cs *ControlSystem) HandleEvents(s *engine.GameState, events []engine.GameEvent) {
	for _, ev := range events {
		if ev.Type == engine.EventQuitRequest {
			s.Running = false
			s.Log.Info().Int64("frame", s.Frame).Msg("quit requested")
			return
		}
	}
}
