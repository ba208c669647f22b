package parameter

import (
	"fmt"

	"github.com/slowtacocar/Hockey/vmath"
)

const (
	// RinkOffsetX is the distance from the screen's left edge to the back of the left goal
	RinkOffsetX = 150.0

	// RinkSideInset is the horizontal screen space not used by the rink
	RinkSideInset = 300.0

	// GoalLineLeftX is fixed; the right goal line is RinkX + GoalLineRightInset
	GoalLineLeftX      = 185.0
	GoalLineRightInset = 115.0
)

// Segment is a static line segment in physics space
type Segment struct {
	A, B vmath.Vec2
}

// Geometry is the rink layout derived from the virtual screen size
// Physics space has y up; screen space has y down, see FlipY
type Geometry struct {
	ScreenW, ScreenH float64

	RinkX, RinkY float64 // playable length and height
	PaddingY     float64 // vertical gap above and below the rink

	WallLeft, WallRight   float64 // goal-line walls
	BackLeft, BackRight   float64 // back walls of the goal boxes
	Bottom, Top           float64 // rink floor and ceiling
	MouthLow, MouthHigh   float64 // goal mouth span
	CenterX               float64
}

// NewGeometry lays out the rink for a virtual screen
func NewGeometry(screenW, screenH int) (Geometry, error) {
	w, h := float64(screenW), float64(screenH)
	if w <= RinkSideInset+2*PuckRadius {
		return Geometry{}, fmt.Errorf("screen width %d too small for a rink", screenW)
	}
	rinkX := w - RinkSideInset
	rinkY := rinkX / 2
	if rinkY > h {
		return Geometry{}, fmt.Errorf("screen %dx%d cannot fit a %.0fx%.0f rink", screenW, screenH, rinkX, rinkY)
	}
	padY := (h - rinkY) / 2

	return Geometry{
		ScreenW:   w,
		ScreenH:   h,
		RinkX:     rinkX,
		RinkY:     rinkY,
		PaddingY:  padY,
		WallLeft:  rinkX/20 + RinkOffsetX,
		WallRight: rinkX*0.95 + RinkOffsetX,
		BackLeft:  RinkOffsetX,
		BackRight: rinkX + RinkOffsetX,
		Bottom:    padY,
		Top:       rinkY + padY,
		MouthLow:  padY + rinkY*0.3,
		MouthHigh: rinkY*0.7 + padY,
		CenterX:   w / 2,
	}, nil
}

// Walls returns the solid rink outline and the goal box sides.
// The goal boxes' back walls are separate, see GoalBacks.
func (g Geometry) Walls() []Segment {
	v := vmath.V2
	return []Segment{
		{v(g.WallLeft, g.Bottom), v(g.WallRight, g.Bottom)},
		{v(g.WallRight, g.Bottom), v(g.WallRight, g.MouthLow)},
		{v(g.WallRight, g.MouthHigh), v(g.WallRight, g.Top)},
		{v(g.WallRight, g.Top), v(g.WallLeft, g.Top)},
		{v(g.WallLeft, g.Bottom), v(g.WallLeft, g.MouthLow)},
		{v(g.WallLeft, g.MouthHigh), v(g.WallLeft, g.Top)},
		{v(g.BackLeft, g.MouthLow), v(g.WallLeft, g.MouthLow)},
		{v(g.BackLeft, g.MouthHigh), v(g.WallLeft, g.MouthHigh)},
		{v(g.BackRight, g.MouthLow), v(g.WallRight, g.MouthLow)},
		{v(g.BackRight, g.MouthHigh), v(g.WallRight, g.MouthHigh)},
	}
}

// GoalBacks returns the left and right goal box back walls.
// A puck touching one has its center on the goal line, less the engine's contact skin.
func (g Geometry) GoalBacks() [2]Segment {
	v := vmath.V2
	return [2]Segment{
		{v(g.BackLeft, g.MouthLow), v(g.BackLeft, g.MouthHigh)},
		{v(g.BackRight, g.MouthLow), v(g.BackRight, g.MouthHigh)},
	}
}

// Sensors returns the two goal mouths and the center line
func (g Geometry) Sensors() []Segment {
	v := vmath.V2
	return []Segment{
		{v(g.WallLeft, g.MouthLow), v(g.WallLeft, g.MouthHigh)},
		{v(g.WallRight, g.MouthLow), v(g.WallRight, g.MouthHigh)},
		{v(g.CenterX, g.Bottom), v(g.CenterX, g.Top)},
	}
}

// GoalLineLeft is the x at or below which a puck counts for player 2
func (g Geometry) GoalLineLeft() float64 { return GoalLineLeftX }

// GoalLineRight is the x at or above which a puck counts for player 1
func (g Geometry) GoalLineRight() float64 { return g.RinkX + GoalLineRightInset }

// MidY is the vertical center in physics space
func (g Geometry) MidY() float64 { return g.ScreenH / 2 }

// FlipY converts between physics and screen y
func (g Geometry) FlipY(y float64) float64 { return g.ScreenH - y }

// Paddle1Start and Paddle2Start are the initial paddle positions
func (g Geometry) Paddle1Start() vmath.Vec2 {
	return vmath.V2(g.RinkX/8+RinkOffsetX, g.MidY())
}

func (g Geometry) Paddle2Start() vmath.Vec2 {
	return vmath.V2(g.ScreenW-(g.RinkX/8+RinkOffsetX), g.MidY())
}

// ServeLeft and ServeRight are the puck serve points on each player's side
func (g Geometry) ServeLeft() vmath.Vec2 {
	return vmath.V2(g.RinkX/4+RinkOffsetX, g.MidY())
}

func (g Geometry) ServeRight() vmath.Vec2 {
	return vmath.V2(g.RinkX*0.75+RinkOffsetX, g.MidY())
}

// Interior returns the bounds a circle of the given radius can occupy without touching a wall
func (g Geometry) Interior(radius float64) (lo, hi vmath.Vec2) {
	return vmath.V2(g.WallLeft+radius, g.Bottom+radius), vmath.V2(g.WallRight-radius, g.Top-radius)
}

// Player1Bounds limits the pointer target to player 1's half
func (g Geometry) Player1Bounds() (lo, hi vmath.Vec2) {
	return vmath.V2(g.RinkX*0.05+RinkOffsetX+EdgeMargin, g.Bottom+EdgeMargin),
		vmath.V2(g.CenterX-EdgeMargin, g.Top-EdgeMargin)
}

// Player2Bounds limits keyboard movement to player 2's half
func (g Geometry) Player2Bounds() (lo, hi vmath.Vec2) {
	return vmath.V2(g.CenterX+EdgeMargin, g.Bottom+EdgeMargin),
		vmath.V2(g.WallRight-EdgeMargin, g.Top-EdgeMargin)
}
