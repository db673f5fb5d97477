// cmd/ballpit/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-ballpit/pkg/audio"
	"github.com/opd-ai/go-ballpit/pkg/config"
	"github.com/opd-ai/go-ballpit/pkg/engine"
	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/health"
	"github.com/opd-ai/go-ballpit/pkg/input"
	"github.com/opd-ai/go-ballpit/pkg/logging"
	"github.com/opd-ai/go-ballpit/pkg/render"
	engorender "github.com/opd-ai/go-ballpit/pkg/render/engo"
)

const (
	windowTitle = "Go Ball Pit"

	// healthEvery is the number of headless ticks between health checks
	healthEvery = 100
	// maxHeapMB is the heap size the headless health check tolerates
	maxHeapMB = 512
)

// options holds the command line
type options struct {
	configPath string
	envFile    string
	preset     string
	renderer   string
	width      float64
	height     float64
	balls      int
	seed       uint64
	audio      bool
	fullscreen bool
	ticks      uint64
	logFile    string

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("ballpit", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "ballpit.json", "Path to configuration file")
	fs.StringVar(&opts.envFile, "env", ".env", "Path to a dotenv file")
	fs.StringVar(&opts.preset, "preset", "", "Arena preset: classic, crowded, sparse or pocket")
	fs.StringVar(&opts.renderer, "renderer", "", "Renderer type: 'engo', 'terminal' or 'headless'")
	fs.Float64Var(&opts.width, "width", 0, "Arena width")
	fs.Float64Var(&opts.height, "height", 0, "Arena height")
	fs.IntVar(&opts.balls, "balls", 0, "Number of balls")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for ball placement")
	fs.BoolVar(&opts.audio, "audio", false, "Play collision sounds")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (Engo only)")
	fs.Uint64Var(&opts.ticks, "ticks", 0, "Stop after this many ticks (terminal and headless)")
	fs.StringVar(&opts.logFile, "log", "", "Write logs to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig layers defaults, the config file, the preset, dotenv and
// environment variables, then explicit flags
func loadConfig(opts *options) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if _, err := os.Stat(opts.configPath); err == nil {
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else if opts.set["config"] {
		return nil, fmt.Errorf("config file %s: %w", opts.configPath, err)
	}

	if opts.preset != "" {
		p := config.GetPreset(opts.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q, have %v", opts.preset, config.ListPresets())
		}
		p.Apply(cfg)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if opts.set["renderer"] {
		cfg.Renderer = opts.renderer
	}
	if opts.set["width"] {
		cfg.ArenaWidth = opts.width
	}
	if opts.set["height"] {
		cfg.ArenaHeight = opts.height
	}
	if opts.set["balls"] {
		cfg.BallCount = opts.balls
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["audio"] {
		cfg.Audio = opts.audio
	}
	if opts.set["fullscreen"] {
		cfg.Fullscreen = opts.fullscreen
	}
	if opts.set["log"] {
		cfg.LogFile = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, func() error, error) {
	if cfg.LogFile == "" {
		if cfg.Renderer == config.RendererTerminal {
			// stdout belongs to the terminal surface
			return logging.Discard(), func() error { return nil }, nil
		}
		return logging.NewLogger(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, logging.OptionsFromEnv()), f.Close, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "ballpit:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	simOpts := engine.Options{Logger: logger, Context: ctx}
	// the engo shell steps simulated time itself in fixed ticks
	var frameClock *engine.ManualClock
	if cfg.Renderer == config.RendererEngo {
		frameClock = engine.NewManualClock(time.Now())
		simOpts.Clock = frameClock
	}
	sim := engine.NewSimulation(cfg, simOpts)

	palette := render.NewPalette(cfg.Palette...)
	pointer := input.NewPointer(sim, sim.Arena)
	pointer.IdleDelay = cfg.IdleDelay.Std()
	pointer.DoubleClickWindow = cfg.DoubleClickWindow.Std()
	pointer.OnDoubleClick = func(b *entity.Ball) {
		fill := palette.Next(b)
		logger.Info(ctx, "ball recolored", "ball_id", b.ID, "fill", fill)
	}

	if cfg.Audio {
		sm := audio.NewSoundManager(cfg.AudioVolume, logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn(ctx, "audio disabled", "error", err)
		}
		sm.Attach(sim.EventBus)
		defer sm.Cleanup()
	}

	logger.Info(ctx, "starting ball pit",
		"renderer", cfg.Renderer,
		"balls", cfg.BallCount,
		"width", cfg.ArenaWidth,
		"height", cfg.ArenaHeight,
	)

	switch cfg.Renderer {
	case config.RendererEngo:
		engorender.Run(windowTitle, sim, pointer, frameClock, cfg.TickInterval.Std(), cfg.Fullscreen)
		return nil
	case config.RendererTerminal:
		return runTerminal(ctx, cfg, sim, pointer, opts.ticks)
	default:
		return runHeadless(ctx, cfg, sim, logger, opts.ticks)
	}
}

// runTerminal draws into the terminal and reads the mouse through tcell
func runTerminal(ctx context.Context, cfg *config.Config, sim *engine.Simulation, pointer *input.Pointer, ticks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	surface := render.NewTerminalSurface(screen, sim.Arena, cfg.TerminalScale)
	events := input.NewTerminalInput(pointer, surface)

	loop := engine.NewLoop(sim, surface, cfg.TickInterval.Std())
	loop.MaxTicks = ticks
	loop.OnTick = func() { pointer.Poll(time.Now()) }

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			now := time.Now()
			err := loop.Submit(ctx, func(*engine.Simulation) {
				if !events.Handle(ev, now) {
					cancel()
				}
			})
			if err != nil {
				return
			}
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runHeadless ticks the simulation without drawing, for soak runs and
// scripted checks
func runHeadless(ctx context.Context, cfg *config.Config, sim *engine.Simulation, logger *logging.Logger, ticks uint64) error {
	surface := render.NewNullSurface(logger)
	loop := engine.NewLoop(sim, surface, cfg.TickInterval.Std())
	loop.MaxTicks = ticks

	checker := health.ForSimulation(sim, maxHeapMB)
	unhealthy := 0
	loop.OnTick = func() {
		if sim.Tick%healthEvery != 0 {
			return
		}
		status := checker.CheckHealth(ctx)
		if !status.Healthy() {
			unhealthy++
			logger.Warn(ctx, "simulation unhealthy", "tick", sim.Tick, "failed", status.Failed(), "checks", status.Checks)
		}
	}

	err := loop.Run(ctx)

	moving := 0
	for _, b := range sim.Snapshot() {
		if b.Direction != nil {
			moving++
		}
	}
	logger.Info(ctx, "headless run finished",
		"ticks", sim.Tick,
		"frames", surface.Frames(),
		"moving", moving,
		"unhealthy_checks", unhealthy,
	)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
