package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// EventBufferSize is the capacity of the input event channel
const EventBufferSize = 256

// TerminalService manages the screen lifecycle and input polling
type TerminalService struct {
	screen    tcell.Screen
	colorMode ColorMode
	eventCh   chan tcell.Event
	stopCh    chan struct{}
	doneCh    chan struct{}
	mu        sync.Mutex
	running   bool
	inited    bool
}

// NewService creates a terminal service over screen; nil opens the real terminal at Init
func NewService(screen tcell.Screen, mode ColorMode) *TerminalService {
	return &TerminalService{
		screen:    screen,
		colorMode: mode,
		eventCh:   make(chan tcell.Event, EventBufferSize),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Init opens the screen, enables mouse motion reporting and hides the cursor
func (s *TerminalService) Init() error {
	if s.screen == nil {
		scr, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal open: %w", err)
		}
		s.screen = scr
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	s.screen.EnableMouse(tcell.MouseMotionEvents)
	s.screen.HideCursor()
	s.screen.Clear()

	s.mu.Lock()
	s.inited = true
	s.mu.Unlock()
	return nil
}

// Start launches the input polling goroutine
func (s *TerminalService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return fmt.Errorf("terminal not initialized")
	}
	if s.running {
		return nil
	}
	s.running = true

	go s.pollLoop()
	return nil
}

// pollLoop forwards screen events until the screen is finalized or Stop is called
func (s *TerminalService) pollLoop() {
	defer close(s.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMINAL POLL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Stderr.Sync()
			os.Exit(1)
		}
	}()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Name implements service.Service
func (s *TerminalService) Name() string {
	return "terminal"
}

// Stop finalizes the screen, which also ends the polling goroutine
func (s *TerminalService) Stop() error {
	s.mu.Lock()
	wasRunning := s.running
	inited := s.inited
	s.running = false
	s.inited = false
	s.mu.Unlock()

	if !inited {
		return nil
	}
	if wasRunning {
		close(s.stopCh)
	}
	s.screen.Fini()
	if wasRunning {
		<-s.doneCh
	}
	return nil
}

// Screen returns the wrapped screen
func (s *TerminalService) Screen() tcell.Screen {
	return s.screen
}

// ColorMode returns the configured color depth
func (s *TerminalService) ColorMode() ColorMode {
	return s.colorMode
}

// Events returns the input event channel
func (s *TerminalService) Events() <-chan tcell.Event {
	return s.eventCh
}
