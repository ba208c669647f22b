package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/vmath"
)

// Anchor places a text line on the screen
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorCenter
	AnchorBottomCenter
)

// Primitive is one shape to draw, in screen-space virtual units (y down)
type Primitive struct {
	Kind   physics.ShapeKind
	Center vmath.Vec2
	Radius float64
	A, B   vmath.Vec2
	Role   Role
}

// Renderer is the per-frame drawing surface
type Renderer interface {
	Clear()
	DrawShape(p Primitive)
	DrawText(text string, anchor Anchor, role Role)
	Present() error
}

// Snapshotter is implemented by renderers that can dump the last frame as text
type Snapshotter interface {
	Snapshot() string
}

// TcellRenderer scales the virtual screen onto the terminal's cell grid
type TcellRenderer struct {
	screen   tcell.Screen
	canvas   *Canvas
	palette  Palette
	virtualW float64
	virtualH float64
	cols     int
	rows     int
}

// NewTcellRenderer creates a renderer mapping a virtualW x virtualH screen onto screen
func NewTcellRenderer(screen tcell.Screen, palette Palette, virtualW, virtualH int) *TcellRenderer {
	cols, rows := screen.Size()
	return &TcellRenderer{
		screen:   screen,
		canvas:   NewCanvas(cols, rows, palette.Base),
		palette:  palette,
		virtualW: float64(virtualW),
		virtualH: float64(virtualH),
		cols:     cols,
		rows:     rows,
	}
}

// Clear starts a new frame, picking up terminal resizes
func (r *TcellRenderer) Clear() {
	cols, rows := r.screen.Size()
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		r.canvas.Resize(cols, rows)
		r.screen.Sync()
		return
	}
	r.canvas.Clear()
}

// toCell maps a virtual point to the cell containing it
func (r *TcellRenderer) toCell(p vmath.Vec2) (int, int) {
	return int(math.Floor(p.X * float64(r.cols) / r.virtualW)),
		int(math.Floor(p.Y * float64(r.rows) / r.virtualH))
}

// CellToVirtual maps a cell to the virtual point at its center
func (r *TcellRenderer) CellToVirtual(col, row int) vmath.Vec2 {
	if r.cols == 0 || r.rows == 0 {
		return vmath.Vec2{}
	}
	return vmath.V2(
		(float64(col)+0.5)*r.virtualW/float64(r.cols),
		(float64(row)+0.5)*r.virtualH/float64(r.rows),
	)
}

// DrawShape implements Renderer
func (r *TcellRenderer) DrawShape(p Primitive) {
	glyph := r.palette.Rune(p.Role)
	if glyph == 0 {
		return
	}
	style := r.palette.Style(p.Role)

	switch p.Kind {
	case physics.KindCircle:
		r.fillCircle(p.Center, p.Radius, glyph, style)
	case physics.KindSegment:
		r.strokeSegment(p.A, p.B, glyph, style)
	}
}

// fillCircle sets every cell whose center lies inside the circle.
// A circle smaller than a cell still marks the cell under its center.
func (r *TcellRenderer) fillCircle(c vmath.Vec2, radius float64, glyph rune, style tcell.Style) {
	x0, y0 := r.toCell(c.Sub(vmath.V2(radius, radius)))
	x1, y1 := r.toCell(c.Add(vmath.V2(radius, radius)))
	rr := radius * radius

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.CellToVirtual(x, y).Sub(c).MagSq() <= rr {
				r.canvas.Set(x, y, glyph, style)
			}
		}
	}
	cx, cy := r.toCell(c)
	r.canvas.Set(cx, cy, glyph, style)
}

// strokeSegment samples the segment at half-cell spacing
func (r *TcellRenderer) strokeSegment(a, b vmath.Vec2, glyph rune, style tcell.Style) {
	if r.cols == 0 || r.rows == 0 {
		return
	}
	cellW := r.virtualW / float64(r.cols)
	cellH := r.virtualH / float64(r.rows)
	step := math.Min(cellW, cellH) / 2

	n := int(math.Ceil(vmath.Dist(a, b)/step)) + 1
	d := b.Sub(a)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := r.toCell(a.Add(d.Scale(t)))
		// The far edge maps one past the last cell
		x, y = min(x, r.cols-1), min(y, r.rows-1)
		r.canvas.Set(x, y, glyph, style)
	}
}

// DrawText implements Renderer
func (r *TcellRenderer) DrawText(text string, anchor Anchor, role Role) {
	if text == "" {
		return
	}
	n := len([]rune(text))
	var x, y int
	switch anchor {
	case AnchorTopLeft:
		x, y = 1, 0
	case AnchorTopRight:
		x, y = r.cols-n-1, 0
	case AnchorCenter:
		x, y = (r.cols-n)/2, r.rows/2
	case AnchorBottomCenter:
		x, y = (r.cols-n)/2, r.rows-1
	}
	r.canvas.SetString(max(x, 0), y, text, r.palette.Style(role))
}

// Present implements Renderer
func (r *TcellRenderer) Present() error {
	r.canvas.Flush(r.screen)
	r.screen.Show()
	return nil
}

// Snapshot implements Snapshotter
func (r *TcellRenderer) Snapshot() string {
	return r.canvas.Text()
}
