package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters InitialStateID, running OnEnter from root to leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if node.Path == nil {
		return fmt.Errorf("paths not compiled")
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances the FSM by dt: runs the leaf's OnUpdate actions, then takes the
// first tick transition whose guard passes, searching from leaf up to root
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action(ctx)
	}

	m.fire(ctx, EventTick)
}

// HandleEvent routes an external event through the active path.
// Returns true if the event triggered a transition.
func (m *Machine[T]) HandleEvent(ctx T, event EventID) bool {
	if m.activeStateID == StateNone || event == EventTick {
		return false
	}
	return m.fire(ctx, event)
}

// fire takes the first matching transition, bubbling leaf -> root
func (m *Machine[T]) fire(ctx T, event EventID) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != event {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change with LCA-scoped exit/enter actions
func (m *Machine[T]) transition(ctx T, trans Transition[T]) {
	targetNode, ok := m.nodes[trans.TargetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", trans.TargetID))
	}

	// Self-transition re-enters the leaf
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	if trans.TargetID == m.activeStateID {
		lcaIndex = len(currentPath) - 2
	} else {
		minLen := min(len(currentPath), len(targetPath))
		for i := 0; i < minLen; i++ {
			if currentPath[i] != targetPath[i] {
				break
			}
			lcaIndex = i
		}
	}

	// Exit phase: walk up from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action(ctx)
		}
	}

	if trans.Action != nil {
		trans.Action(ctx)
	}

	m.activeStateID = trans.TargetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter phase: walk down from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// State returns the active leaf state
func (m *Machine[T]) State() StateID {
	return m.activeStateID
}

// StateName returns the active leaf's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns the accumulated Update time since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// InState reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) InState(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}
