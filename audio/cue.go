package audio

// Cue identifies a game sound
type Cue int

const (
	CueGoal Cue = iota
	CuePickup
	CueSpecial
	CueCountdown
	CueGo
	CueWin
)

// Cues lists every cue
var Cues = []Cue{CueGoal, CuePickup, CueSpecial, CueCountdown, CueGo, CueWin}

func (c Cue) String() string {
	switch c {
	case CueGoal:
		return "goal"
	case CuePickup:
		return "pickup"
	case CueSpecial:
		return "special"
	case CueCountdown:
		return "countdown"
	case CueGo:
		return "go"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// Player plays cues; implementations must not block the caller
type Player interface {
	Play(c Cue)
}
