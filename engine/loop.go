package engine

import (
	"context"
	"sort"
	"time"
)

// System is one stage of the per-frame pipeline
type System interface {
	// Priority orders systems within a frame (lower runs first)
	Priority() int
	Update(s *GameState)
}

// EventHandler receives the events drained at the end of each frame
type EventHandler interface {
	HandleEvents(s *GameState, events []GameEvent)
}

// Presenter draws the finished frame
type Presenter interface {
	Present(s *GameState) error
}

// FrameObserver is notified after every frame with its wall-clock cost
type FrameObserver interface {
	ObserveFrame(s *GameState, elapsed time.Duration)
}

// Loop runs systems in priority order once per frame, then drains events
// to handlers, then presents. Everything happens on the calling goroutine.
type Loop struct {
	state     *GameState
	systems   []System
	handlers  []EventHandler
	presenter Presenter
	observers []FrameObserver

	// sleep blocks until d elapses or ctx ends; replaced in tests
	sleep func(ctx context.Context, d time.Duration)

	fpsWindowStart  time.Time
	fpsWindowFrames int
}

// NewLoop creates a loop over state. presenter may be nil (headless).
func NewLoop(state *GameState, presenter Presenter) *Loop {
	return &Loop{
		state:     state,
		presenter: presenter,
		sleep:     sleepContext,
	}
}

// AddSystem inserts a pipeline stage by priority; equal priorities keep
// registration order. Systems that also implement EventHandler or
// FrameObserver are registered for those callbacks.
func (l *Loop) AddSystem(sys System) {
	l.systems = append(l.systems, sys)
	sort.SliceStable(l.systems, func(i, j int) bool {
		return l.systems[i].Priority() < l.systems[j].Priority()
	})
	l.Attach(sys)
}

// Attach registers x for whichever of EventHandler and FrameObserver it implements
func (l *Loop) Attach(x any) {
	if h, ok := x.(EventHandler); ok {
		l.handlers = append(l.handlers, h)
	}
	if o, ok := x.(FrameObserver); ok {
		l.observers = append(l.observers, o)
	}
}

// State returns the loop's game state
func (l *Loop) State() *GameState {
	return l.state
}

// Frame runs exactly one frame without pacing
func (l *Loop) Frame() error {
	s := l.state
	start := s.Clock.Now()
	s.Frame++

	for _, sys := range l.systems {
		sys.Update(s)
	}

	if events := s.Events.Consume(); len(events) > 0 {
		for _, h := range l.handlers {
			h.HandleEvents(s, events)
		}
	}

	if l.presenter != nil {
		if err := l.presenter.Present(s); err != nil {
			return err
		}
	}

	l.trackFPS(start)
	elapsed := s.Clock.Now().Sub(start)
	for _, o := range l.observers {
		o.ObserveFrame(s, elapsed)
	}
	return nil
}

// Run paces frames at the state's TargetFPS until Running is cleared or ctx ends.
// The quit flag is checked only between frames.
func (l *Loop) Run(ctx context.Context) error {
	s := l.state
	for s.Running {
		if err := ctx.Err(); err != nil {
			return nil
		}

		start := s.Clock.Now()
		if err := l.Frame(); err != nil {
			return err
		}

		if !s.Running {
			break
		}
		budget := frameBudget(s.TargetFPS)
		if spent := s.Clock.Now().Sub(start); spent < budget {
			l.sleep(ctx, budget-spent)
		}
	}
	s.Log.Debug().Int64("frames", s.Frame).Msg("loop stopped")
	return nil
}

func (l *Loop) trackFPS(now time.Time) {
	if l.fpsWindowStart.IsZero() {
		l.fpsWindowStart = now
	}
	l.fpsWindowFrames++
	if window := now.Sub(l.fpsWindowStart); window >= time.Second {
		l.state.MeasuredFPS = float64(l.fpsWindowFrames) / window.Seconds()
		l.fpsWindowStart = now
		l.fpsWindowFrames = 0
	}
}

func frameBudget(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
