package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/slowtacocar/Hockey/terminal"
)

// Role is what a drawn cell represents; the palette maps it to a style and glyph
type Role uint8

const (
	RoleNone Role = iota
	RoleWall
	RoleSensor
	RolePuck
	RolePaddle1
	RolePaddle2
	RoleGravity
	RoleSpeed
	RoleFriction
	RoleText
	RoleBanner
	RoleCaption
	roleCount
)

// RGB color definitions (Tokyo Night base)
var (
	RgbBackground = RGB{26, 27, 38}
	RgbWall       = RGB{192, 202, 245}
	RgbPuck       = RGB{255, 255, 255}
	RgbPaddle1    = RGB{122, 162, 247}
	RgbPaddle2    = RGB{247, 118, 142}
	RgbGravity    = RGB{187, 154, 247}
	RgbSpeed      = RGB{224, 175, 104}
	RgbFriction   = RGB{115, 218, 202}
	RgbText       = RGB{192, 202, 245}
	RgbBanner     = RGB{255, 158, 100}
	RgbCaption    = RGB{86, 95, 137}
)

// Palette holds the per-role styles and glyphs for one color mode
type Palette struct {
	styles [roleCount]tcell.Style
	runes  [roleCount]rune
	Base   tcell.Style
}

// NewPalette builds the role table for the terminal's color depth
func NewPalette(mode terminal.ColorMode) Palette {
	var p Palette

	if mode == terminal.ColorModeTrueColor {
		p.Base = tcell.StyleDefault.Background(RgbBackground.Tcell())
		fg := func(c RGB) tcell.Style { return p.Base.Foreground(c.Tcell()) }

		p.styles[RoleWall] = fg(RgbWall)
		p.styles[RoleSensor] = fg(RgbBackground.Blend(RgbWall, 0.35))
		p.styles[RolePuck] = fg(RgbPuck)
		p.styles[RolePaddle1] = fg(RgbPaddle1)
		p.styles[RolePaddle2] = fg(RgbPaddle2)
		p.styles[RoleGravity] = fg(RgbGravity)
		p.styles[RoleSpeed] = fg(RgbSpeed)
		p.styles[RoleFriction] = fg(RgbFriction)
		p.styles[RoleText] = fg(RgbText)
		p.styles[RoleBanner] = fg(RgbBanner).Bold(true)
		p.styles[RoleCaption] = fg(RgbCaption)
	} else {
		p.Base = tcell.StyleDefault
		fg := func(c tcell.Color) tcell.Style { return p.Base.Foreground(c) }

		p.styles[RoleWall] = fg(tcell.ColorWhite)
		p.styles[RoleSensor] = fg(tcell.ColorGray)
		p.styles[RolePuck] = fg(tcell.ColorWhite).Bold(true)
		p.styles[RolePaddle1] = fg(tcell.ColorBlue)
		p.styles[RolePaddle2] = fg(tcell.ColorRed)
		p.styles[RoleGravity] = fg(tcell.ColorPurple)
		p.styles[RoleSpeed] = fg(tcell.ColorYellow)
		p.styles[RoleFriction] = fg(tcell.ColorTeal)
		p.styles[RoleText] = fg(tcell.ColorWhite)
		p.styles[RoleBanner] = fg(tcell.ColorOrange).Bold(true)
		p.styles[RoleCaption] = fg(tcell.ColorGray)
	}

	p.runes[RoleWall] = '█'
	p.runes[RoleSensor] = '┊'
	p.runes[RolePuck] = '●'
	p.runes[RolePaddle1] = '█'
	p.runes[RolePaddle2] = '█'
	p.runes[RoleGravity] = 'G'
	p.runes[RoleSpeed] = 'S'
	p.runes[RoleFriction] = 'F'
	return p
}

// Style returns the role's style, the base style for unknown roles
func (p Palette) Style(r Role) tcell.Style {
	if r >= roleCount || r == RoleNone {
		return p.Base
	}
	return p.styles[r]
}

// Rune returns the fill glyph for shape roles, 0 for text roles
func (p Palette) Rune(r Role) rune {
	if r >= roleCount {
		return 0
	}
	return p.runes[r]
}
