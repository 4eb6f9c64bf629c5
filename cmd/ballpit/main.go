package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballpit/audio"
	"github.com/lixenwraith/ballpit/config"
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/engine"
	"github.com/lixenwraith/ballpit/input"
	"github.com/lixenwraith/ballpit/render"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML tuning file, reloaded on change")
	logFlag    = flag.String("log", filepath.Join(os.TempDir(), "ballpit.log"), "Log file path")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
	seedFlag   = flag.Uint64("seed", 0, "RNG seed for spawn placement and throw spin, 0 picks one from the clock")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the simulation crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logger, closeLog, err := openLogger(*logFlag, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("starting", "config", *configFlag, "seed", seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashScreen(screen)

	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()

	scale := cfg.CellScale()
	opts := cfg.Options(seed)
	width, height := render.Viewport(screen, scale)

	sim := engine.NewSimulation(opts, width, height, engine.NewMonotonicTimeProvider(), logger)
	renderer := render.NewTerminalRenderer(screen, scale, opts.Params.Radius, cfg.Display.Label)
	sim.SetFrameSink(renderer)

	// Audio failure is not fatal; the manager stays silent without a device
	// Cleanup is a no-op unless a path below initialized the speaker
	sound := audio.NewSoundManager(cfg.Audio.Volume)
	defer sound.Cleanup()
	sound.SetMuted(*muteFlag)
	if cfg.Audio.Enabled && !*muteFlag {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "error", err)
		}
	}
	sim.SetImpactSink(sound)

	var (
		updates <-chan *config.Config
		errs    <-chan error
	)
	if *configFlag != "" {
		watcher, err := config.Watch(*configFlag)
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else {
			defer watcher.Close()
			updates, errs = watcher.Updates(), watcher.Errors()
		}
	}

	machine := input.NewMachine(scale)

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	sim.Draw()

	timer := time.NewTimer(sim.TickInterval())
	defer timer.Stop()

	for {
		select {
		case ev := <-eventChan:
			intent := machine.Process(ev)
			if intent == nil {
				break
			}
			switch intent.Type {
			case input.IntentQuit:
				logger.Info("quit")
				return
			case input.IntentPause:
				sim.TogglePause()
			case input.IntentReset:
				sim.Reset()
			case input.IntentMute:
				muted := sound.ToggleMute()
				if !muted && cfg.Audio.Enabled {
					if err := sound.Initialize(); err != nil {
						logger.Warn("audio unavailable", "error", err)
					}
				}
				logger.Info("mute toggled", "muted", muted)
			case input.IntentResize:
				screen.Sync()
				sim.Resize(render.Viewport(screen, scale))
				sim.Draw()
			case input.IntentPointerDown:
				sim.PointerDown(intent.Point)
			case input.IntentPointerMove:
				sim.PointerMove(intent.Point)
			case input.IntentPointerUp:
				sim.PointerUp(intent.Point)
			}

		case <-timer.C:
			sim.RunDue()

		case next := <-updates:
			cfg.Physics = next.Physics
			cfg.Interaction = next.Interaction
			cfg.Spawn = next.Spawn
			cfg.Audio = next.Audio
			sim.Apply(next.Options(seed))
			sound.SetVolume(next.Audio.Volume)

			if next.Display != cfg.Display {
				cfg.Display = next.Display
				scale = cfg.CellScale()
				machine.SetScale(scale)
				renderer.SetScale(scale)
				renderer.SetLabel(cfg.Display.Label)
				sim.Resize(render.Viewport(screen, scale))
				sim.Draw()
			}
			logger.Info("config reloaded")

		case err := <-errs:
			logger.Warn("config reload failed", "error", err)
		}

		timer.Reset(nextWait(sim))
	}
}

// nextWait returns how long the loop may sleep before the next scheduled task
func nextWait(sim *engine.Simulation) time.Duration {
	tick := sim.TickInterval()
	// Scheduled time is frozen while paused; poll slowly for input only
	if sim.Clock.IsPaused() {
		return tick * 2
	}
	wait := sim.Until()
	if wait < 0 {
		return tick
	}
	return wait
}

// openLogger writes structured logs to path; the terminal is owned by the screen
func openLogger(path string, debugLevel bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugLevel {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { f.Close() }, nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nDrag bodies with the mouse and release to throw.\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}
