package vmath

import "math"

// Vec2 is a float64 2D vector in physics space (y up)
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) MagSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Mag() float64 { return math.Sqrt(v.MagSq()) }

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Mag()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// RoundedMag returns the length of the vector after rounding each component
// Sub-unit jitter on either axis does not contribute to the result
func (v Vec2) RoundedMag() float64 {
	rx, ry := Round(v.X), Round(v.Y)
	return math.Sqrt(rx*rx + ry*ry)
}

// ClampMagnitude limits vector to maxMag while preserving direction
func (v Vec2) ClampMagnitude(maxMag float64) Vec2 {
	mag := v.Mag()
	if mag <= maxMag || mag == 0 {
		return v
	}
	return v.Scale(maxMag / mag)
}

// Dist returns the Euclidean distance between two points
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Mag()
}
