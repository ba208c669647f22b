package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/slowtacocar/Hockey/audio"
	"github.com/slowtacocar/Hockey/config"
	"github.com/slowtacocar/Hockey/engine"
	"github.com/slowtacocar/Hockey/input"
	"github.com/slowtacocar/Hockey/render"
	"github.com/slowtacocar/Hockey/service"
	"github.com/slowtacocar/Hockey/status"
	"github.com/slowtacocar/Hockey/systems"
	"github.com/slowtacocar/Hockey/terminal"
	"github.com/slowtacocar/Hockey/vmath"
)

func main() {
	fs := pflag.NewFlagSet("hockey", pflag.ExitOnError)
	if err := config.RegisterFlags(fs); err != nil {
		fmt.Fprintf(os.Stderr, "Flag setup failed: %v\n", err)
		os.Exit(1)
	}
	fs.Parse(os.Args[1:])

	configFile, _ := fs.GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration failed: %v\n", err)
		os.Exit(1)
	}
	if mute, _ := fs.GetBool("mute"); mute {
		cfg.AudioEnabled = false
	}

	logger, logFile := setupLogging(cfg.Debug)
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("session failed")
		if logFile != nil {
			logFile.Close()
		}
		fmt.Fprintf(os.Stderr, "hockey: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		logFile.Close()
	}
}

// run wires one session and blocks until it ends
func run(cfg config.Config, logger zerolog.Logger) error {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			logger.Error().Interface("panic", r).Msg("crashed")
			fmt.Fprintf(os.Stderr, "\n\x1b[31mHOCKEY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	colorMode, err := terminal.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	keys, err := input.ApplyBindings(input.DefaultKeyTable(), cfg.Keys)
	if err != nil {
		return err
	}

	hub := service.NewHub(logger)
	term := terminal.NewService(nil, colorMode)
	hub.Add(term, true)

	var player audio.Player
	if cfg.AudioEnabled {
		sm := audio.NewSoundManager()
		// Game runs without sound if the device is unavailable
		hub.Add(sm, false)
		player = sm
	}

	if err := hub.InitAll(); err != nil {
		return err
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			logger.Warn().Err(err).Msg("service shutdown")
		}
	}()

	renderer := render.NewTcellRenderer(term.Screen(), render.NewPalette(colorMode), cfg.Width, cfg.Height)

	in := input.NewState(keys, renderer.CellToVirtual)
	in.HoldWindow = cfg.HoldWindow
	in.RepeatDelay = cfg.RepeatDelay

	state, err := engine.NewGameState(engine.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		StepsPerFrame: cfg.StepsPerFrame,
		Seed:          cfg.Seed,
		Input:         in,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	// Park the pointer on player 1 until the mouse first moves
	start := state.Geometry.Paddle1Start()
	in.SetPointer(vmath.V2(start.X, state.Geometry.FlipY(start.Y)))

	round, err := systems.NewRoundSystem(state)
	if err != nil {
		return fmt.Errorf("round machine: %w", err)
	}

	// Debug sessions export otel metrics to a file; otherwise the global meter is a no-op
	if cfg.Debug {
		if f, err := openMetricsFile(); err != nil {
			logger.Warn().Err(err).Msg("metrics export disabled")
		} else {
			defer f.Close()
			mp, err := status.NewMeterProvider(f, status.ExportInterval)
			if err != nil {
				logger.Warn().Err(err).Msg("metrics export disabled")
			} else {
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					if err := mp.Shutdown(ctx); err != nil {
						logger.Warn().Err(err).Msg("metrics export shutdown")
					}
				}()
			}
		}
	}

	metrics, err := status.NewMetrics(status.NewRegistry())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	scene := render.NewScene(renderer, cfg.ScreenshotPath)
	loop := engine.NewLoop(state, scene)
	loop.AddSystem(systems.NewPhysicsSystem())
	loop.AddSystem(systems.NewInputSystem(in, term.Events()))
	loop.AddSystem(systems.NewControlSystem())
	loop.AddSystem(systems.NewPowerUpSystem(state))
	loop.AddSystem(systems.NewPaddleSystem())
	loop.AddSystem(systems.NewCooldownSystem())
	loop.AddSystem(round)
	loop.AddSystem(systems.NewAudioSystem(player))
	loop.Attach(scene)
	loop.Attach(metrics)

	if err := hub.StartAll(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Stringer("color", colorMode).
		Bool("audio", hub.Active("audio")).
		Str("config", cfg.File).
		Msg("session started")

	err = loop.Run(ctx)
	metrics.LogSummary(logger)
	logger.Info().Int64("frames", state.Frame).Msg("session ended")
	return err
}
