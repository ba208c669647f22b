package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowtacocar/Hockey/physics"
	"github.com/slowtacocar/Hockey/terminal"
	"github.com/slowtacocar/Hockey/vmath"
)

// newSimRenderer maps a 1920x1080 virtual screen onto an 80x24 simulation screen
func newSimRenderer(t *testing.T) (*TcellRenderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	sim.SetSize(80, 24)
	return NewTcellRenderer(sim, NewPalette(terminal.ColorModeTrueColor), 1920, 1080), sim
}

func TestCellMapping(t *testing.T) {
	r, _ := newSimRenderer(t)

	x, y := r.toCell(vmath.V2(0, 0))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = r.toCell(vmath.V2(1919, 1079))
	assert.Equal(t, 79, x)
	assert.Equal(t, 23, y)

	// Cell centers round-trip
	p := r.CellToVirtual(40, 12)
	x, y = r.toCell(p)
	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)
	assert.InDelta(t, 40.5*24, p.X, 1e-9)
	assert.InDelta(t, 12.5*45, p.Y, 1e-9)
}

func TestDrawCircleAndPresent(t *testing.T) {
	r, sim := newSimRenderer(t)

	r.Clear()
	r.DrawShape(Primitive{Kind: physics.KindCircle, Center: vmath.V2(960, 540), Radius: 35, Role: RolePuck})
	require.NoError(t, r.Present())

	x, y := r.toCell(vmath.V2(960, 540))
	mainc, _, _, _ := sim.GetContent(x, y)
	assert.Equal(t, '●', mainc)
	assert.Contains(t, r.Snapshot(), "●")
}

func TestDrawSegment(t *testing.T) {
	r, _ := newSimRenderer(t)

	r.Clear()
	r.DrawShape(Primitive{Kind: physics.KindSegment, A: vmath.V2(0, 540), B: vmath.V2(1920, 540), Role: RoleWall})

	lines := strings.Split(r.Snapshot(), "\n")
	_, row := r.toCell(vmath.V2(0, 540))
	assert.Equal(t, strings.Repeat("█", 80), lines[row])
}

func TestDrawTextAnchors(t *testing.T) {
	r, _ := newSimRenderer(t)

	r.Clear()
	r.DrawText("Score: 1 - 2", AnchorTopLeft, RoleText)
	r.DrawText("33", AnchorTopRight, RoleText)
	r.DrawText("GO!", AnchorCenter, RoleBanner)
	r.DrawText("Hockey  60 fps", AnchorBottomCenter, RoleCaption)

	lines := strings.Split(r.Snapshot(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], " Score: 1 - 2"))
	assert.True(t, strings.HasSuffix(lines[0], "33"))
	assert.Equal(t, 77, strings.Index(lines[0], "33"))
	assert.Equal(t, "GO!", strings.TrimSpace(lines[12]))
	assert.Equal(t, "Hockey  60 fps", strings.TrimSpace(lines[23]))
}

func TestClearPicksUpResize(t *testing.T) {
	r, sim := newSimRenderer(t)

	sim.SetSize(40, 12)
	r.Clear()
	w, h := r.canvas.Bounds()
	assert.Equal(t, 40, w)
	assert.Equal(t, 12, h)
}

func TestPaletteModes(t *testing.T) {
	tc := NewPalette(terminal.ColorModeTrueColor)
	p256 := NewPalette(terminal.ColorMode256)

	assert.NotEqual(t, tc.Style(RolePaddle1), p256.Style(RolePaddle1))
	assert.Equal(t, tc.Rune(RolePuck), p256.Rune(RolePuck))
	assert.Equal(t, rune(0), tc.Rune(RoleText))
	assert.Equal(t, tc.Base, tc.Style(RoleNone))
}
