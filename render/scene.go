package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/physics"
)

// DefaultScreenshotPath is where screenshots land when none is configured
const DefaultScreenshotPath = "hockey.txt"

// Scene turns the game state into draw calls: rink, bodies and HUD.
// It is the loop's presenter and handles screenshot requests.
type Scene struct {
	r              Renderer
	screenshotPath string
	pendingShot    bool

	// writeFile is replaced in tests
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewScene creates a presenter over r
func NewScene(r Renderer, screenshotPath string) *Scene {
	if screenshotPath == "" {
		screenshotPath = DefaultScreenshotPath
	}
	return &Scene{
		r:              r,
		screenshotPath: screenshotPath,
		writeFile:      os.WriteFile,
	}
}

// HandleEvents implements engine.EventHandler
func (sc *Scene) HandleEvents(_ *engine.GameState, events []engine.GameEvent) {
	for _, ev := range events {
		if ev.Type == engine.EventScreenshotRequest {
			sc.pendingShot = true
		}
	}
}

// Present implements engine.Presenter
func (sc *Scene) Present(s *engine.GameState) error {
	sc.r.Clear()

	s.World.Each(func(sh *physics.Shape) {
		sc.r.DrawShape(primitiveFor(s, sh))
	})

	sc.r.DrawText(s.Round.ScoreText(), AnchorTopLeft, RoleText)
	sc.r.DrawText(strconv.Itoa(s.Cooldown.Readout()), AnchorTopRight, RoleText)
	sc.r.DrawText(s.Round.Banner, AnchorCenter, RoleBanner)
	sc.r.DrawText(Caption(s), AnchorBottomCenter, RoleCaption)

	if err := sc.r.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	if sc.pendingShot {
		sc.pendingShot = false
		sc.saveScreenshot(s)
	}
	return nil
}

// saveScreenshot writes the presented frame as text. Failure is logged, never fatal.
func (sc *Scene) saveScreenshot(s *engine.GameState) {
	snap, ok := sc.r.(Snapshotter)
	if !ok {
		s.Log.Warn().Msg("renderer cannot take screenshots")
		return
	}
	if err := sc.writeFile(sc.screenshotPath, []byte(snap.Snapshot()), 0o644); err != nil {
		s.Log.Error().Err(err).Str("path", sc.screenshotPath).Msg("screenshot")
		return
	}
	s.Log.Info().Str("path", sc.screenshotPath).Int64("frame", s.Frame).Msg("screenshot saved")
}

// Caption is the status line: measured fps and the live power-ups
func Caption(s *engine.GameState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hockey  %.0f fps", s.MeasuredFPS)
	for _, k := range engine.PowerUpKinds {
		if s.Effects.For(k).Active {
			sb.WriteString("  ")
			sb.WriteString(k.String())
		}
	}
	return sb.String()
}

// primitiveFor converts a physics shape into screen space with its draw role
func primitiveFor(s *engine.GameState, sh *physics.Shape) Primitive {
	g := s.Geometry
	p := Primitive{Kind: sh.Kind, Radius: sh.Radius, Role: roleFor(s, sh)}

	if sh.Kind == physics.KindSegment {
		p.A = sh.A
		p.B = sh.B
		p.A.Y = g.FlipY(p.A.Y)
		p.B.Y = g.FlipY(p.B.Y)
		return p
	}

	pos := sh.Position()
	pos.Y = g.FlipY(pos.Y)
	p.Center = pos
	return p
}

func roleFor(s *engine.GameState, sh *physics.Shape) Role {
	switch sh.Type {
	case physics.TypeWall, physics.TypeGoal:
		return RoleWall
	case physics.TypeSensor:
		return RoleSensor
	case physics.TypePuck:
		return RolePuck
	case physics.TypePaddle:
		if sh.Handle() == s.Paddle1 {
			return RolePaddle1
		}
		return RolePaddle2
	case physics.TypePowerUp:
		kind, _ := s.PowerUps.Get(sh.Handle())
		switch kind {
		case engine.PowerUpGravity:
			return RoleGravity
		case engine.PowerUpSpeed:
			return RoleSpeed
		case engine.PowerUpFriction:
			return RoleFriction
		}
	}
	return RoleNone
}
