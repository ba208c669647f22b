// Package engine provides the frame loop, shared game state and event plumbing for hockey.
//
// Event System
//
// Systems report what happened during a frame by pushing events to the shared
// EventQueue instead of calling each other. The loop drains the queue once per
// frame after every system has updated and hands the batch to the systems that
// implement EventHandler (audio cues, telemetry, session control).
//
// Event Flow:
//  1. Producer pushes: state.PushEvent(EventGoal, GoalPayload{Scorer: 2})
//  2. Event stored in lock-free ring buffer (capacity: 256 events)
//  3. Loop drains the buffer at the end of the frame
//  4. Each EventHandler receives the drained batch in FIFO order
//
// Terminal events never reach this queue directly: the terminal's polling
// goroutine feeds a tcell channel that InputSystem drains on the loop
// goroutine. Pushes and consumption both happen on the loop goroutine.
package engine

import (
	"sync/atomic"
	"time"
)

const eventQueueSize = 256

// EventType represents the type of game event
type EventType int

const (
	// EventGoal signals a puck crossed a goal line.
	// Payload: GoalPayload
	EventGoal EventType = iota

	// EventMatchWon signals a player reached the winning score.
	// Payload: GoalPayload (Scorer is the winner)
	EventMatchWon

	// EventCountdown signals a serve countdown banner change ("3", "2", "1", "GO!").
	// Payload: string banner text
	EventCountdown

	// EventPuckServed signals the countdown finished and a puck entered play.
	// Payload: nil
	EventPuckServed

	// EventPowerUpSpawned signals a power-up appeared in the rink.
	// Payload: PowerUpKind
	EventPowerUpSpawned

	// EventPowerUpConsumed signals a puck touched a power-up.
	// Payload: PowerUpKind
	EventPowerUpConsumed

	// EventPowerUpExpired signals an active effect ran out.
	// Payload: PowerUpKind
	EventPowerUpExpired

	// EventSpecialEngaged signals player 2 started a special move.
	// Payload: nil
	EventSpecialEngaged

	// EventSpecialReleased signals the special move ended and cooldown began.
	// Payload: nil
	EventSpecialReleased

	// EventScreenshotRequest asks for the current frame to be captured.
	// Payload: nil
	EventScreenshotRequest

	// EventQuitRequest asks the loop to stop after the current frame.
	// Payload: nil
	EventQuitRequest
)

// String returns the name of the event type for debugging
func (e EventType) String() string {
	switch e {
	case EventGoal:
		return "Goal"
	case EventMatchWon:
		return "MatchWon"
	case EventCountdown:
		return "Countdown"
	case EventPuckServed:
		return "PuckServed"
	case EventPowerUpSpawned:
		return "PowerUpSpawned"
	case EventPowerUpConsumed:
		return "PowerUpConsumed"
	case EventPowerUpExpired:
		return "PowerUpExpired"
	case EventSpecialEngaged:
		return "SpecialEngaged"
	case EventSpecialReleased:
		return "SpecialReleased"
	case EventScreenshotRequest:
		return "ScreenshotRequest"
	case EventQuitRequest:
		return "QuitRequest"
	default:
		return "Unknown"
	}
}

// GoalPayload carries the scoring player (1 or 2) and the score after the goal
type GoalPayload struct {
	Scorer int
	Score1 int
	Score2 int
}

// GameEvent represents a single game event with associated metadata.
// Frame and Timestamp are stamped by GameState.PushEvent.
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}

// EventQueue is a lock-free ring buffer for game events.
//
// Push is safe for multiple concurrent producers. Consume is designed for a
// single consumer (the game loop). When the buffer is full the oldest events
// are overwritten.
type EventQueue struct {
	events [eventQueueSize]GameEvent
	head   atomic.Uint64 // next position to read
	tail   atomic.Uint64 // next position to write
}

// NewEventQueue creates an empty event queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event to the queue, claiming a slot via CAS
func (eq *EventQueue) Push(event GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			eq.events[currentTail%eventQueueSize] = event

			// Overwriting unread events: drag head forward
			currentHead := eq.head.Load()
			if nextTail-currentHead > eventQueueSize {
				eq.head.CompareAndSwap(currentHead, nextTail-eventQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and marks them consumed.
// Returns nil when the queue is empty.
func (eq *EventQueue) Consume() []GameEvent {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()

	result := eq.snapshot(currentHead, currentTail)
	if result == nil {
		return nil
	}

	for !eq.head.CompareAndSwap(currentHead, currentTail) {
		currentHead = eq.head.Load()
		if currentHead >= currentTail {
			break
		}
	}
	return result
}

// Peek returns pending events without consuming them
func (eq *EventQueue) Peek() []GameEvent {
	return eq.snapshot(eq.head.Load(), eq.tail.Load())
}

// Len returns the number of pending events, capped at buffer capacity
func (eq *EventQueue) Len() int {
	available := eq.tail.Load() - eq.head.Load()
	if available > eventQueueSize {
		return eventQueueSize
	}
	return int(available)
}

func (eq *EventQueue) snapshot(head, tail uint64) []GameEvent {
	available := tail - head
	if available == 0 || tail < head {
		return nil
	}
	if available > eventQueueSize {
		available = eventQueueSize
		head = tail - eventQueueSize
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(head+i)%eventQueueSize]
	}
	return result
}
