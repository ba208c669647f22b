package physics

import "github.com/slowtacocar/Hockey/vmath"

// Seek returns a velocity of the given speed from pos toward target
// At or inside the arrival threshold (measured on rounded components) the result is zero,
// so a body resting on its target never receives a normalized zero-length vector
func Seek(pos, target vmath.Vec2, speed, arrival float64) vmath.Vec2 {
	delta := target.Sub(pos)
	mag := delta.RoundedMag()
	if mag <= arrival {
		return vmath.Vec2{}
	}
	return delta.Scale(speed / mag)
}

// Follow returns a velocity that closes the gap to target within a frame or two
// Beyond the arrival threshold it saturates at speed; inside it the delta is
// scaled by gain, which eases the body onto the target without overshoot jitter
func Follow(pos, target vmath.Vec2, speed, arrival, gain float64) vmath.Vec2 {
	delta := target.Sub(pos)
	mag := delta.RoundedMag()
	if mag > arrival {
		return delta.Scale(speed / mag)
	}
	return delta.Scale(gain)
}
