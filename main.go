package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/arena-games/arena/config"
	"github.com/arena-games/arena/game"
	"github.com/arena-games/arena/profiling"
	"github.com/arena-games/arena/round"
	"github.com/arena-games/arena/sound"
	"github.com/arena-games/arena/sound/speaker"
	"github.com/arena-games/arena/terminal"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	rules, err := round.RulesFor(cfg.Mode)
	if err != nil {
		return err
	}
	arena := rules.DefaultArena()
	if cfg.ArenaWidth > 0 {
		arena = round.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := round.New(rules, arena, seed)
	logger.Info("starting", "mode", cfg.Mode, "frontend", cfg.Frontend,
		"arena", fmt.Sprintf("%.0fx%.0f", arena.Width, arena.Height), "seed", seed)

	var profiler *profiling.Profiler
	if cfg.ProfileDir != "" {
		profiler, err = profiling.New(cfg.ProfileDir, logger, time.Now())
		if err != nil {
			return err
		}
	}

	if cfg.Frontend == config.FrontendTerminal {
		return runTerminal(cfg, r, logger, profiler)
	}
	return runWindow(cfg, r, logger, profiler)
}

// newLogger writes to the log file when one is set. The terminal frontend
// owns the screen, so without a file its logs are discarded.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	case cfg.Frontend == config.FrontendTerminal:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "arena",
	})
	return logger, closeLog, nil
}

func runWindow(cfg config.Config, r *round.Round, logger *log.Logger, profiler *profiling.Profiler) error {
	var sink sound.Sink = sound.Silent{}
	if cfg.SoundEnabled() {
		sink = game.NewAudioSink(cfg.Volume, logger)
	}

	g := game.NewGame(r, game.Options{
		Sound:    sink,
		Logger:   logger,
		Profiler: profiler,
	})

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Arena: " + cfg.Mode)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("window closed", "score", r.Score(), "wave", r.Wave())
	return nil
}

func runTerminal(cfg config.Config, r *round.Round, logger *log.Logger, profiler *profiling.Profiler) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	var sink sound.Sink = sound.Silent{}
	if cfg.SoundEnabled() {
		s, err := speaker.New(cfg.Volume, logger)
		if err != nil {
			// Non-fatal, the game runs muted
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer s.Close()
			sink = s
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f := terminal.New(screen, r, terminal.Options{
		TPS:      cfg.TPS,
		Sound:    sink,
		Logger:   logger,
		Profiler: profiler,
	})
	return f.Run(ctx)
}
