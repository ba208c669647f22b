package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

// EventID names an external trigger; 0 is reserved for tick transitions
type EventID int

const (
	StateNone StateID = 0

	// EventTick marks a transition evaluated on every Update
	EventTick EventID = 0
)

// Machine is a hierarchical finite state machine with a single active leaf.
// T is the context type passed to actions and guards (e.g., *engine.GameState).
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID // Root -> ... -> Leaf
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from root to this node for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    EventID       // EventTick = evaluated every Update
	Guard    GuardFunc[T]  // nil = always true
	Action   ActionFunc[T] // runs after exits and before enters; may be nil
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
