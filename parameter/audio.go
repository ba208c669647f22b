package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMasterVolume scales every cue (linear, 0..1)
	AudioMasterVolume = 0.6
)

// Goal horn: two stacked saw tones
const (
	GoalSoundDuration = 700 * time.Millisecond
	GoalSoundAttack   = 20 * time.Millisecond
	GoalSoundRelease  = 300 * time.Millisecond
)

// Pickup chime
const (
	PickupSoundDuration           = 500 * time.Millisecond
	PickupSoundAttack             = 5 * time.Millisecond
	PickupSoundFundamentalRelease = 450 * time.Millisecond
	PickupSoundOvertoneRelease    = 200 * time.Millisecond
)

// Special move whoosh
const (
	SpecialSoundDuration = 250 * time.Millisecond
	SpecialSoundAttack   = 100 * time.Millisecond
	SpecialSoundRelease  = 150 * time.Millisecond
)

// Countdown tick and GO
const (
	TickSoundDuration = 90 * time.Millisecond
	TickSoundAttack   = 5 * time.Millisecond
	TickSoundRelease  = 40 * time.Millisecond

	GoSoundDuration = 300 * time.Millisecond
	GoSoundAttack   = 5 * time.Millisecond
	GoSoundRelease  = 150 * time.Millisecond
)

// Win fanfare: three rising notes
const (
	WinSoundNoteDuration = 180 * time.Millisecond
	WinSoundAttack       = 5 * time.Millisecond
	WinSoundRelease      = 80 * time.Millisecond
)
