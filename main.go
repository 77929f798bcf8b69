package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stopwatch_tui/internal"
	"stopwatch_tui/internal/clock"
	"stopwatch_tui/internal/config"
	"stopwatch_tui/internal/frame"
	"stopwatch_tui/internal/lap"
	"stopwatch_tui/internal/logging"
	"stopwatch_tui/internal/timer"
)

type cli struct {
	Config string `help:"YAML config file." type:"path" default:"stopwatch.yaml"`
	FPS    int    `help:"Display refresh rate in frames per second (overrides config)."`
	DB     string `help:"Lap database path (overrides config)."`
	Debug  bool   `help:"Enable debug logging."`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("stopwatch"),
		kong.Description("A terminal stopwatch with lap recording."),
	)

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cli) error {
	cfg, err := config.LoadOrCreate(args.Config)
	if err != nil {
		return err
	}
	if args.FPS != 0 {
		cfg.Frame.Rate = args.FPS
	}
	if args.DB != "" {
		cfg.Storage.Path = args.DB
	}
	if args.Debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	defer log.Sync()

	repo, err := lap.NewRepository(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	frames := frame.NewTicker(cfg.Frame.Rate)
	defer frames.Stop()

	engine := timer.New(clock.NewSystem(), frames, timer.WithLogger(log.Named("timer")))
	defer engine.Close()

	m := internal.NewModel(engine, repo, log.Named("ui"))
	p := tea.NewProgram(m, tea.WithAltScreen())

	relay := internal.NewRelay(engine, p.Send)
	defer relay.Close()

	log.Info("stopwatch starting",
		zap.Int("frame_rate", cfg.Frame.Rate),
		zap.String("db", cfg.Storage.Path))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
