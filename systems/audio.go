package systems

import (
	"github.com/slowtacocar/Hockey/audio"
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/parameter"
)

// AudioSystem maps drained game events to sound cues
type AudioSystem struct {
	player audio.Player
}

// NewAudioSystem creates the audio system; a nil player mutes it
func NewAudioSystem(player audio.Player) *AudioSystem {
	return &AudioSystem{player: player}
}

// Priority implements engine.System
func (as *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

// Update implements engine.System
func (as *AudioSystem) Update(_ *engine.GameState) {}

// HandleEvents implements engine.EventHandler
func (as *AudioSystem) HandleEvents(_ *engine.GameState, events []engine.GameEvent) {
	if as.player == nil {
		return
	}
	for _, ev := range events {
		if c, ok := cueFor(ev); ok {
			as.player.Play(c)
		}
	}
}

func cueFor(ev engine.GameEvent) (audio.Cue, bool) {
	switch ev.Type {
	case engine.EventGoal:
		return audio.CueGoal, true
	case engine.EventPowerUpConsumed:
		return audio.CuePickup, true
	case engine.EventSpecialEngaged:
		return audio.CueSpecial, true
	case engine.EventMatchWon:
		return audio.CueWin, true
	case engine.EventCountdown:
		banner, _ := ev.Payload.(string)
		switch banner {
		case parameter.BannerGo:
			return audio.CueGo, true
		case "":
			return 0, false
		default:
			return audio.CueCountdown, true
		}
	}
	return 0, false
}
