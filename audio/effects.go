package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/slowtacocar/Hockey/parameter"
	"github.com/slowtacocar/Hockey/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so 0 maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// CreateGoalSound generates a low horn
func CreateGoalSound(rate beep.SampleRate, master float64) beep.Streamer {
	low := tone(146.83, WaveSaw, parameter.GoalSoundDuration, parameter.GoalSoundAttack, parameter.GoalSoundRelease, rate)
	fifth := tone(220.0, WaveSaw, parameter.GoalSoundDuration, parameter.GoalSoundAttack, parameter.GoalSoundRelease, rate)
	return newVolume(beep.Mix(newVolume(low, 0.6), newVolume(fifth, 0.4)), master*0.5)
}

// CreatePickupSound generates a bell ding
func CreatePickupSound(rate beep.SampleRate, master float64) beep.Streamer {
	// Fundamental (A5) plus octave overtone
	fund := tone(880.0, WaveSine, parameter.PickupSoundDuration, parameter.PickupSoundAttack, parameter.PickupSoundFundamentalRelease, rate)
	over := tone(1760.0, WaveSine, parameter.PickupSoundDuration, parameter.PickupSoundAttack, parameter.PickupSoundOvertoneRelease, rate)
	return newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), master)
}

// CreateSpecialSound generates a noise whoosh
func CreateSpecialSound(rate beep.SampleRate, master float64) beep.Streamer {
	noise := tone(0, WaveNoise, parameter.SpecialSoundDuration, parameter.SpecialSoundAttack, parameter.SpecialSoundRelease, rate)
	return newVolume(noise, master*0.4)
}

// CreateCountdownSound generates a short square blip
func CreateCountdownSound(rate beep.SampleRate, master float64) beep.Streamer {
	blip := tone(660.0, WaveSquare, parameter.TickSoundDuration, parameter.TickSoundAttack, parameter.TickSoundRelease, rate)
	return newVolume(blip, master*0.3)
}

// CreateGoSound generates the higher serve blip
func CreateGoSound(rate beep.SampleRate, master float64) beep.Streamer {
	blip := tone(1320.0, WaveSquare, parameter.GoSoundDuration, parameter.GoSoundAttack, parameter.GoSoundRelease, rate)
	return newVolume(blip, master*0.3)
}

// CreateWinSound generates a rising three-note fanfare (C5, E5, G5)
func CreateWinSound(rate beep.SampleRate, master float64) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		seq = append(seq, tone(f, WaveSquare, parameter.WinSoundNoteDuration, parameter.WinSoundAttack, parameter.WinSoundRelease, rate))
	}
	return newVolume(beep.Seq(seq...), master*0.4)
}

// GetSoundEffect returns a fresh streamer for the cue, nil for unknown cues
func GetSoundEffect(c Cue, rate beep.SampleRate, master float64) beep.Streamer {
	switch c {
	case CueGoal:
		return CreateGoalSound(rate, master)
	case CuePickup:
		return CreatePickupSound(rate, master)
	case CueSpecial:
		return CreateSpecialSound(rate, master)
	case CueCountdown:
		return CreateCountdownSound(rate, master)
	case CueGo:
		return CreateGoSound(rate, master)
	case CueWin:
		return CreateWinSound(rate, master)
	default:
		return nil
	}
}
