package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/vmath"
)

// PowerUpKind identifies one of the three rink power-ups
type PowerUpKind uint8

const (
	PowerUpGravity PowerUpKind = iota + 1
	PowerUpSpeed
	PowerUpFriction
)

// PowerUpKinds lists the spawnable kinds; spawn picks uniformly among them
var PowerUpKinds = [...]PowerUpKind{PowerUpGravity, PowerUpSpeed, PowerUpFriction}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpGravity:
		return "gravity"
	case PowerUpSpeed:
		return "speed"
	case PowerUpFriction:
		return "friction"
	default:
		return "unknown"
	}
}

// Effect is one power-up flag with its activation timestamp
type Effect struct {
	Active      bool
	ActivatedAt time.Time
}

// Expired reports whether an active effect has outlived PowerUpDuration at now.
// An effect is live for the whole closed interval [ActivatedAt, ActivatedAt+duration].
func (e Effect) Expired(now time.Time) bool {
	return e.Active && now.Sub(e.ActivatedAt) > parameter.PowerUpDuration
}

// ActivePowerUpEffects holds the three independent effect flags
type ActivePowerUpEffects struct {
	Gravity  Effect
	Speed    Effect
	Friction Effect
}

// For returns the effect slot for kind, nil for unknown kinds
func (e *ActivePowerUpEffects) For(kind PowerUpKind) *Effect {
	switch kind {
	case PowerUpGravity:
		return &e.Gravity
	case PowerUpSpeed:
		return &e.Speed
	case PowerUpFriction:
		return &e.Friction
	default:
		return nil
	}
}

// Activate sets the kind's flag and stamps now.
// Re-activating a live effect leaves its timestamp untouched; returns false in that case.
func (e *ActivePowerUpEffects) Activate(kind PowerUpKind, now time.Time) bool {
	slot := e.For(kind)
	if slot == nil || slot.Active {
		return false
	}
	slot.Active = true
	slot.ActivatedAt = now
	return true
}

// Deactivate clears the kind's flag
func (e *ActivePowerUpEffects) Deactivate(kind PowerUpKind) {
	if slot := e.For(kind); slot != nil {
		*slot = Effect{}
	}
}

// Any reports whether at least one effect is active
func (e *ActivePowerUpEffects) Any() bool {
	return e.Gravity.Active || e.Speed.Active || e.Friction.Active
}

// CooldownState is player 2's special-move bookkeeping, counted in frames
type CooldownState struct {
	// TimeToNextHit is 0 when the move is ready
	TimeToNextHit int
	// TimeToCooldown counts remaining engaged frames, floored at 0.
	// The move stays available on the frame it reaches 0, so a full hold
	// lasts HitLength+1 frames.
	TimeToCooldown int
	// Spent is set by the engaged frame that found TimeToCooldown at 0
	Spent bool
	// Engaged is true while the move is driving the paddle
	Engaged bool
}

// NewCooldownState starts cooling, so the move is unavailable right after launch
func NewCooldownState() CooldownState {
	return CooldownState{
		TimeToNextHit:  parameter.CooldownLength,
		TimeToCooldown: parameter.HitLength,
	}
}

// Ready reports whether the special move may engage
func (c CooldownState) Ready() bool {
	return c.TimeToNextHit == 0
}

// Readout is the HUD cooldown number
func (c CooldownState) Readout() int {
	return int(vmath.Round(float64(c.TimeToNextHit) / parameter.CooldownReadoutDivisor))
}

// RoundPhase is the round state machine's current state
type RoundPhase uint8

const (
	PhaseServing RoundPhase = iota
	PhasePlaying
	PhaseGoalScored
	PhaseMatchWon
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseServing:
		return "Serving"
	case PhasePlaying:
		return "Playing"
	case PhaseGoalScored:
		return "GoalScored"
	case PhaseMatchWon:
		return "MatchWon"
	default:
		return "Unknown"
	}
}

// RoundState is the score and round bookkeeping driven by the round system
type RoundState struct {
	Phase  RoundPhase
	Score1 int
	Score2 int

	// Win1/Win2 latch once a player reaches the winning score
	Win1 bool
	Win2 bool

	// LastGoalAt is the most recent goal instant
	LastGoalAt time.Time
	// CountdownFrom is the instant the serve countdown is measured from
	CountdownFrom time.Time
	// ServeSide is the player (1 or 2) whose half receives the next puck
	ServeSide int
	// Scorer of the goal in progress
	Scorer int

	// Banner is the centered HUD message; empty when none
	Banner string
}

// GoalInProgress reports whether the special move and play are suspended by a goal
func (r RoundState) GoalInProgress() bool {
	return r.Phase == PhaseGoalScored || r.Phase == PhaseMatchWon
}

// ScoreText is the HUD score line
func (r RoundState) ScoreText() string {
	return fmt.Sprintf(parameter.ScoreTemplate, r.Score1, r.Score2)
}

// InputSource is the per-frame input view the game samples
type InputSource interface {
	// PointerPosition is in screen-space virtual units (y down)
	PointerPosition() vmath.Vec2
	IsKeyHeld(k input.Key) bool
}

// Options configures a new GameState
type Options struct {
	Width, Height int
	StepsPerFrame int
	Seed          uint64
	Clock         Clock
	Input         InputSource
	Logger        zerolog.Logger
}

// GameState is the single aggregate passed to every system.
// It is created once per session and mutated only on the loop goroutine.
type GameState struct {
	World    *physics.World
	Geometry parameter.Geometry
	Clock    Clock
	Input    InputSource
	Rand     *vmath.FastRand
	Events   *EventQueue
	Log      zerolog.Logger

	Paddle1 physics.Handle
	Paddle2 physics.Handle

	// Pucks in play, oldest first; goals remove entries
	Pucks []physics.Handle
	// PowerUps maps live power-up shapes to their kind
	PowerUps *physics.Table[PowerUpKind]
	// LastSpawnAttempt is when the spawn policy last rolled
	LastSpawnAttempt time.Time

	Effects  ActivePowerUpEffects
	Cooldown CooldownState
	Round    RoundState

	TargetFPS     int
	StepsPerFrame int
	Frame         int64
	Running       bool

	// MeasuredFPS is the rolling frame rate shown in the caption
	MeasuredFPS float64
}

// NewGameState builds the world, static rink, paddles and default timers
func NewGameState(opts Options) (*GameState, error) {
	geom, err := parameter.NewGeometry(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("rink geometry: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewTimeProvider()
	}
	steps := opts.StepsPerFrame
	if steps < 1 {
		steps = parameter.DefaultStepsPerFrame
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}

	world := physics.NewWorld(parameter.PhysicsStepSeconds, parameter.DefaultDamping)
	world.SetGravity(vmath.Vec2{})

	s := &GameState{
		World:         world,
		Geometry:      geom,
		Clock:         clock,
		Input:         opts.Input,
		Rand:          vmath.NewFastRand(seed),
		Events:        NewEventQueue(),
		Log:           opts.Logger,
		PowerUps:      physics.NewTable[PowerUpKind](world),
		Cooldown:      NewCooldownState(),
		TargetFPS:     parameter.DefaultFPS,
		StepsPerFrame: steps,
		Running:       true,
	}

	wallMat := physics.Material{Elasticity: parameter.WallElasticity, Friction: parameter.WallFriction}
	for _, seg := range geom.Walls() {
		world.AddSegment(physics.SegmentDef{A: seg.A, B: seg.B, Material: wallMat, Type: physics.TypeWall})
	}
	for _, seg := range geom.GoalBacks() {
		world.AddSegment(physics.SegmentDef{A: seg.A, B: seg.B, Material: wallMat, Type: physics.TypeGoal})
	}
	for _, seg := range geom.Sensors() {
		world.AddSegment(physics.SegmentDef{A: seg.A, B: seg.B, Type: physics.TypeSensor, Sensor: true})
	}

	s.Paddle1 = world.AddCircle(paddleDef(geom.Paddle1Start()))
	s.Paddle2 = world.AddCircle(paddleDef(geom.Paddle2Start()))

	now := clock.Now()
	s.LastSpawnAttempt = now
	s.Round = RoundState{
		Phase:         PhaseServing,
		CountdownFrom: now,
		ServeSide:     1,
	}

	return s, nil
}

func paddleDef(pos vmath.Vec2) physics.CircleDef {
	return physics.CircleDef{
		Position: pos,
		Radius:   parameter.PaddleRadius,
		Mass:     parameter.BodyMass,
		Material: physics.Material{Elasticity: parameter.PuckElasticity, Friction: parameter.PuckFriction},
		Type:     physics.TypePaddle,
		Bullet:   true,
	}
}

// Now returns the clock's current instant
func (s *GameState) Now() time.Time {
	return s.Clock.Now()
}

// PushEvent stamps and enqueues a game event
func (s *GameState) PushEvent(t EventType, payload any) {
	s.Events.Push(GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     s.Frame,
		Timestamp: s.Clock.Now(),
	})
}

// SpawnPuck adds a puck at rest at pos
func (s *GameState) SpawnPuck(pos vmath.Vec2) physics.Handle {
	h := s.World.AddCircle(physics.CircleDef{
		Position: pos,
		Radius:   parameter.PuckRadius,
		Mass:     parameter.BodyMass,
		Material: physics.Material{Elasticity: parameter.PuckElasticity, Friction: parameter.PuckFriction},
		Type:     physics.TypePuck,
		Bullet:   true,
	})
	s.Pucks = append(s.Pucks, h)
	return h
}

// RemovePuck removes the puck from the world and the puck list
func (s *GameState) RemovePuck(h physics.Handle) {
	s.World.Remove(h)
	for i, p := range s.Pucks {
		if p == h {
			s.Pucks = append(s.Pucks[:i], s.Pucks[i+1:]...)
			return
		}
	}
}

// LivePucks returns the puck shapes still in the world, pruning stale handles
func (s *GameState) LivePucks() []*physics.Shape {
	live := s.Pucks[:0]
	shapes := make([]*physics.Shape, 0, len(s.Pucks))
	for _, h := range s.Pucks {
		if sh, ok := s.World.Shape(h); ok {
			live = append(live, h)
			shapes = append(shapes, sh)
		}
	}
	s.Pucks = live
	return shapes
}

// SpawnPowerUp adds a static-in-place power-up disc of kind at pos
func (s *GameState) SpawnPowerUp(kind PowerUpKind, pos vmath.Vec2) physics.Handle {
	h := s.World.AddCircle(physics.CircleDef{
		Position: pos,
		Radius:   parameter.PowerUpRadius,
		Mass:     parameter.BodyMass,
		Material: physics.Material{Elasticity: parameter.PuckElasticity, Friction: parameter.PuckFriction},
		Type:     physics.TypePowerUp,
	})
	s.PowerUps.Set(h, kind)
	return h
}

// PaddleShapes returns both paddles; ok is false if either was removed
func (s *GameState) PaddleShapes() (p1, p2 *physics.Shape, ok bool) {
	p1, ok1 := s.World.Shape(s.Paddle1)
	p2, ok2 := s.World.Shape(s.Paddle2)
	return p1, p2, ok1 && ok2
}

// KeyHeld is a nil-safe input query
func (s *GameState) KeyHeld(k input.Key) bool {
	return s.Input != nil && s.Input.IsKeyHeld(k)
}
