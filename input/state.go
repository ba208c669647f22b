package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/slowtacocar/Hockey/vmath"
)

const (
	DefaultHoldWindow  = 120 * time.Millisecond
	DefaultRepeatDelay = 500 * time.Millisecond
)

// PointerMapper converts a terminal cell to screen-space virtual coordinates (y down)
type PointerMapper func(col, row int) vmath.Vec2

// State turns the terminal's discrete key-press and mouse events into the
// held-key and pointer-position view the game samples once per frame.
//
// Terminals report presses and auto-repeats but no releases. A key counts as
// held while presses keep arriving: RepeatDelay after the first press bridges
// the terminal's auto-repeat delay, HoldWindow after each repeat.
// State is owned by the game loop goroutine; events arrive via Pump.
type State struct {
	table  *KeyTable
	mapper PointerMapper

	HoldWindow  time.Duration
	RepeatDelay time.Duration

	firstPress [keyCount]time.Time
	lastPress  [keyCount]time.Time
	pressed    [keyCount]bool // press seen since the previous Pump

	pointer vmath.Vec2
	now     time.Time
}

// NewState creates an input state with default hold timing
func NewState(table *KeyTable, mapper PointerMapper) *State {
	return &State{
		table:       table,
		mapper:      mapper,
		HoldWindow:  DefaultHoldWindow,
		RepeatDelay: DefaultRepeatDelay,
	}
}

// Pump drains every event currently buffered in events without blocking,
// then fixes the sampling instant used by IsKeyHeld to now
func (s *State) Pump(events <-chan tcell.Event, now time.Time) {
	s.pressed = [keyCount]bool{}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				s.now = now
				return
			}
			s.HandleEvent(ev, now)
		default:
			s.now = now
			return
		}
	}
}

// HandleEvent applies a single terminal event observed at now
func (s *State) HandleEvent(ev tcell.Event, now time.Time) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if k, ok := s.table.Resolve(e); ok {
			s.Press(k, now)
		}
	case *tcell.EventMouse:
		if s.mapper != nil {
			col, row := e.Position()
			s.pointer = s.mapper(col, row)
		}
	}
}

// Press records a press or auto-repeat of k at now
func (s *State) Press(k Key, now time.Time) {
	if k == KeyNone || k >= keyCount {
		return
	}
	if !s.heldAt(k, now) {
		s.firstPress[k] = now
	}
	s.lastPress[k] = now
	s.pressed[k] = true
}

// Release forgets any pending hold of k
func (s *State) Release(k Key) {
	if k == KeyNone || k >= keyCount {
		return
	}
	s.firstPress[k] = time.Time{}
	s.lastPress[k] = time.Time{}
}

// IsKeyHeld reports whether k was held at the last Pump instant
func (s *State) IsKeyHeld(k Key) bool {
	if k == KeyNone || k >= keyCount {
		return false
	}
	return s.pressed[k] || s.heldAt(k, s.now)
}

// PointerPosition returns the last known pointer position (screen space, y down)
func (s *State) PointerPosition() vmath.Vec2 {
	return s.pointer
}

// SetPointer overrides the pointer position
func (s *State) SetPointer(p vmath.Vec2) {
	s.pointer = p
}

func (s *State) heldAt(k Key, now time.Time) bool {
	last := s.lastPress[k]
	if last.IsZero() {
		return false
	}
	window := s.HoldWindow
	// Only one press so far: bridge the gap until auto-repeat starts
	if last.Equal(s.firstPress[k]) {
		window = max(s.RepeatDelay, s.HoldWindow)
	}
	return now.Sub(last) <= window
}
