package parameter

import "time"

// Scoring
const (
	// WinningScore ends the match when either player reaches it
	WinningScore = 7

	// GoalBannerDelay is how long "Goal!" stays up before the next serve (or win banner)
	GoalBannerDelay = 1000 * time.Millisecond

	// WinResetDelay is the time after the winning goal when scores reset
	WinResetDelay = 2000 * time.Millisecond
)

// Serve countdown, offsets from the countdown origin
const (
	CountdownThree = 2500 * time.Millisecond
	CountdownTwo   = 3000 * time.Millisecond
	CountdownOne   = 3500 * time.Millisecond
	CountdownGo    = 4000 * time.Millisecond
	CountdownEnd   = 4500 * time.Millisecond
)

// Banner text
const (
	BannerGoal    = "Goal!"
	BannerP1Wins  = "Player 1 Wins!"
	BannerP2Wins  = "Player 2 Wins!"
	BannerThree   = "3"
	BannerTwo     = "2"
	BannerOne     = "1"
	BannerGo      = "GO!"
	ScoreTemplate = "Score: %d - %d"
)

// Power-ups
const (
	// PowerUpDuration is the lifetime of an effect from its activation
	PowerUpDuration = 10 * time.Second

	// PowerUpSpawnInterval is the minimum gap between spawn attempts
	PowerUpSpawnInterval = 10 * time.Second

	// PowerUpSpawnOdds: one attempt spawns when a draw in [1, PowerUpSpawnOdds] hits 1
	PowerUpSpawnOdds = 1000
)

// Player 2 special move (frames)
const (
	// CooldownLength is the number of frames before the special can be reused
	CooldownLength = 200

	// HitLength is the special's hold counter start; a full hold lasts HitLength+1 frames
	HitLength = 20

	// CooldownReadoutDivisor converts frames into the HUD readout
	CooldownReadoutDivisor = 6
)

// Paddle control
const (
	// MaxVelocity is the pointer-follow and special-seek speed
	MaxVelocity = 1700.0

	// ControlledVelocity is player 2's keyboard speed per axis
	ControlledVelocity = 750.0

	// SeekThreshold: at or below this distance a seeking paddle is considered arrived
	SeekThreshold = 20.0

	// PointerGain scales pointer delta into velocity below SeekThreshold
	PointerGain = MaxVelocity / SeekThreshold
)
