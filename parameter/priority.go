package parameter

// System Execution Priorities (lower runs first)
// Order follows the frame: step, sample input, react, update round, emit cues
const (
	PriorityPhysics  = 10
	PriorityInput    = 20
	PriorityControl  = 30 // After input, quit/screenshot edges
	PriorityPowerUp  = 40 // Effects must be applied before next step
	PriorityPaddle   = 50
	PriorityCooldown = 60 // After paddle, overrides player 2 velocity while engaged
	PriorityRound    = 70
	PriorityAudio    = 240
)
