package systems

import (
	"time"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/engine/fsm"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/physics"
)

// Round machine states. Serving and Playing share the live parent, which owns
// the goal transition so a goal is detected in either.
const (
	stateLive fsm.StateID = iota + 1
	stateServing
	statePlaying
	stateGoalScored
	stateMatchWon
)

const eventGoal fsm.EventID = 1

// RoundSystem drives goals, scoring, the serve countdown and match wins
type RoundSystem struct {
	machine *fsm.Machine[*engine.GameState]
	last    time.Time
	centerX float64

	// Pucks that touched a goal box back wall during this frame's steps, by scorer
	backTouch map[physics.Handle]int
}

// NewRoundSystem builds the round machine and enters Serving
func NewRoundSystem(s *engine.GameState) (*RoundSystem, error) {
	m := fsm.NewMachine[*engine.GameState]()

	m.AddState(stateLive, "Live", fsm.StateNone)
	m.AddState(stateServing, "Serving", stateLive)
	m.AddState(statePlaying, "Playing", stateLive)
	m.AddState(stateGoalScored, "GoalScored", fsm.StateNone)
	m.AddState(stateMatchWon, "MatchWon", fsm.StateNone)

	m.OnEnter(stateServing, enterServing)
	m.OnUpdate(stateServing, updateCountdown)
	m.OnEnter(statePlaying, func(s *engine.GameState) {
		s.Round.Phase = engine.PhasePlaying
		s.Round.Banner = ""
	})
	m.OnEnter(stateGoalScored, func(s *engine.GameState) {
		s.Round.Phase = engine.PhaseGoalScored
	})
	m.OnEnter(stateMatchWon, enterMatchWon)
	m.OnUpdate(stateMatchWon, updateMatchWon)

	m.AddTransition(stateLive, fsm.Transition[*engine.GameState]{
		TargetID: stateGoalScored,
		Event:    eventGoal,
	})
	m.AddTransition(stateServing, fsm.Transition[*engine.GameState]{
		TargetID: statePlaying,
		Guard: func(s *engine.GameState) bool {
			return s.Now().Sub(s.Round.CountdownFrom) >= parameter.CountdownEnd
		},
	})
	m.AddTransition(stateGoalScored, fsm.Transition[*engine.GameState]{
		TargetID: stateMatchWon,
		Guard: func(s *engine.GameState) bool {
			return s.Round.Win1 || s.Round.Win2
		},
	})
	m.AddTransition(stateGoalScored, fsm.Transition[*engine.GameState]{
		TargetID: stateServing,
		Guard: func(s *engine.GameState) bool {
			return s.Now().Sub(s.Round.LastGoalAt) >= parameter.GoalBannerDelay
		},
		Action: serveAfterGoal,
	})
	m.AddTransition(stateMatchWon, fsm.Transition[*engine.GameState]{
		TargetID: stateServing,
		Guard: func(s *engine.GameState) bool {
			return s.Now().Sub(s.Round.LastGoalAt) >= parameter.WinResetDelay
		},
		Action: resetMatch,
	})

	m.InitialStateID = stateServing
	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	if err := m.Init(s); err != nil {
		return nil, err
	}

	rs := &RoundSystem{
		machine:   m,
		last:      s.Now(),
		centerX:   s.Geometry.CenterX,
		backTouch: make(map[physics.Handle]int),
	}
	s.World.AddHandler(physics.TypeGoal, physics.TypePuck, rs)
	return rs, nil
}

// Begin records a puck reaching a goal box back wall. It runs inside World.Step.
// The engine keeps a contact skin around edges and resolves fast pucks by
// time of impact, so a puck bouncing off the back wall may never be sampled
// with its center on the goal line.
func (rs *RoundSystem) Begin(_ *physics.World, back, puck *physics.Shape) physics.ContactDecision {
	scorer := 2
	if back.A.X > rs.centerX {
		scorer = 1
	}
	rs.backTouch[puck.Handle()] = scorer
	return physics.ContactAccept
}

// Priority implements engine.System
func (rs *RoundSystem) Priority() int {
	return parameter.PriorityRound
}

// Update implements engine.System
func (rs *RoundSystem) Update(s *engine.GameState) {
	now := s.Now()
	dt := now.Sub(rs.last)
	rs.last = now

	if rs.machine.InState(stateLive) && rs.detectGoals(s, now) {
		rs.machine.HandleEvent(s, eventGoal)
	}
	clear(rs.backTouch)
	rs.machine.Update(s, dt)
}

// State returns the active round machine state name
func (rs *RoundSystem) State() string {
	return rs.machine.StateName()
}

// detectGoals scores every puck at or beyond a goal line, or that touched a
// goal box back wall since the last frame. Returns true if any scored.
func (rs *RoundSystem) detectGoals(s *engine.GameState, now time.Time) bool {
	left, right := s.Geometry.GoalLineLeft(), s.Geometry.GoalLineRight()
	scored := false

	for _, puck := range s.LivePucks() {
		x := puck.Position().X
		var scorer int
		switch {
		case x <= left:
			scorer = 2
		case x >= right:
			scorer = 1
		default:
			scorer = rs.backTouch[puck.Handle()]
		}
		if scorer == 0 {
			continue
		}

		s.RemovePuck(puck.Handle())
		recordGoal(s, scorer, now)
		scored = true
	}
	return scored
}

func recordGoal(s *engine.GameState, scorer int, now time.Time) {
	r := &s.Round
	if scorer == 1 {
		r.Score1++
	} else {
		r.Score2++
	}
	r.Scorer = scorer
	r.LastGoalAt = now
	r.Banner = parameter.BannerGoal

	// Exactly one win flag, player 1 checked first
	r.Win1 = r.Score1 >= parameter.WinningScore
	r.Win2 = !r.Win1 && r.Score2 >= parameter.WinningScore

	payload := engine.GoalPayload{Scorer: scorer, Score1: r.Score1, Score2: r.Score2}
	s.PushEvent(engine.EventGoal, payload)
	s.Log.Info().Int("scorer", scorer).Int("score1", r.Score1).Int("score2", r.Score2).Msg("goal")
}

func enterServing(s *engine.GameState) {
	s.Round.Phase = engine.PhaseServing
}

// serveAfterGoal clears the goal banner and puts a puck on the conceding side
func serveAfterGoal(s *engine.GameState) {
	r := &s.Round
	r.Banner = ""
	r.CountdownFrom = r.LastGoalAt
	if r.Scorer == 2 {
		r.ServeSide = 1
		s.SpawnPuck(s.Geometry.ServeLeft())
	} else {
		r.ServeSide = 2
		s.SpawnPuck(s.Geometry.ServeRight())
	}
	s.PushEvent(engine.EventPuckServed, nil)
}

// updateCountdown shows "3", "2", "1", "GO!" and serves from GO on when no puck exists
func updateCountdown(s *engine.GameState) {
	r := &s.Round
	elapsed := s.Now().Sub(r.CountdownFrom)

	if elapsed >= parameter.CountdownGo && len(s.LivePucks()) == 0 {
		if r.ServeSide == 2 {
			s.SpawnPuck(s.Geometry.ServeRight())
		} else {
			s.SpawnPuck(s.Geometry.ServeLeft())
		}
		s.PushEvent(engine.EventPuckServed, nil)
	}

	var banner string
	switch {
	case elapsed >= parameter.CountdownEnd:
		return
	case elapsed >= parameter.CountdownGo:
		banner = parameter.BannerGo
	case elapsed >= parameter.CountdownOne:
		banner = parameter.BannerOne
	case elapsed >= parameter.CountdownTwo:
		banner = parameter.BannerTwo
	case elapsed >= parameter.CountdownThree:
		banner = parameter.BannerThree
	default:
		return
	}

	if r.Banner != banner {
		r.Banner = banner
		s.PushEvent(engine.EventCountdown, banner)
	}
}

func enterMatchWon(s *engine.GameState) {
	s.Round.Phase = engine.PhaseMatchWon
	winner := 1
	if s.Round.Win2 {
		winner = 2
	}
	s.PushEvent(engine.EventMatchWon, engine.GoalPayload{
		Scorer: winner,
		Score1: s.Round.Score1,
		Score2: s.Round.Score2,
	})
	s.Log.Info().Int("winner", winner).Msg("match won")
}

// updateMatchWon swaps "Goal!" for the winner banner once GoalBannerDelay has passed
func updateMatchWon(s *engine.GameState) {
	r := &s.Round
	if s.Now().Sub(r.LastGoalAt) < parameter.GoalBannerDelay {
		return
	}
	if r.Win1 {
		r.Banner = parameter.BannerP1Wins
	} else {
		r.Banner = parameter.BannerP2Wins
	}
}

// resetMatch zeroes the score and starts a fresh countdown from now.
// Player 1 receives the first serve of the new match.
func resetMatch(s *engine.GameState) {
	r := &s.Round
	r.Score1, r.Score2 = 0, 0
	r.Win1, r.Win2 = false, false
	r.Scorer = 0
	r.Banner = ""
	r.ServeSide = 1
	r.CountdownFrom = s.Now()
}
