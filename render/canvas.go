package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one terminal cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Canvas is a cell grid composed once per frame and flushed to the screen
type Canvas struct {
	cells  []Cell
	width  int
	height int
	base   tcell.Style
}

// NewCanvas creates a canvas with the specified dimensions
func NewCanvas(width, height int, base tcell.Style) *Canvas {
	c := &Canvas{base: base}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.width = width
	c.height = height
	c.Clear()
}

// Clear resets all cells to blank using exponential copy
func (c *Canvas) Clear() {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Rune: ' ', Style: c.base}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

// Bounds returns canvas dimensions
func (c *Canvas) Bounds() (int, int) {
	return c.width, c.height
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set writes one cell; out-of-bounds writes are dropped
func (c *Canvas) Set(x, y int, r rune, style tcell.Style) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Style: style}
}

// Get reads one cell; out-of-bounds reads return a blank cell
func (c *Canvas) Get(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{Rune: ' ', Style: c.base}
	}
	return c.cells[y*c.width+x]
}

// SetString writes s left to right from (x, y), clipping at the edges
func (c *Canvas) SetString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.Set(x, y, r, style)
		x++
	}
}

// Flush copies the canvas to screen
func (c *Canvas) Flush(screen tcell.Screen) {
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x, cell := range row {
			screen.SetContent(x, y, cell.Rune, nil, cell.Style)
		}
	}
}

// Text returns the canvas as plain text, one line per row, trailing blanks trimmed
func (c *Canvas) Text() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := 0; y < c.height; y++ {
		line := make([]rune, c.width)
		for x := 0; x < c.width; x++ {
			r := c.cells[y*c.width+x].Rune
			if r == 0 {
				r = ' '
			}
			line[x] = r
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
