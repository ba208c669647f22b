package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/slowtacocar/Hockey/parameter"
)

// SoundManager synthesises cues into a single mixer on the system speaker.
// Before Start succeeds, or after Stop, Play is a silent no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	master      float64
	initialized bool
	playing     bool

	// played counts cues handed to the mixer, for diagnostics
	played map[Cue]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		master: parameter.AudioMasterVolume,
		played: make(map[Cue]int),
	}
}

// Name implements service.Service
func (sm *SoundManager) Name() string {
	return "audio"
}

// Init opens the speaker
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	sm.initialized = true
	return nil
}

// Start attaches the mixer to the speaker
func (sm *SoundManager) Start() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return fmt.Errorf("speaker not initialized")
	}
	if !sm.playing {
		speaker.Play(sm.mixer)
		sm.playing = true
	}
	return nil
}

// Enabled reports whether cues reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.playing
}

// Play implements Player
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playing {
		return
	}

	streamer := GetSoundEffect(c, sm.rate, sm.master)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played[c]++
}

// Played returns how many times c was handed to the mixer
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

// Stop clears pending sounds and closes the speaker
func (sm *SoundManager) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
	sm.playing = false
	return nil
}
