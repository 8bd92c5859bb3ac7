package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/bot"
	"github.com/lox/sevenandahalf/internal/config"
	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/display"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/player"
	"github.com/lox/sevenandahalf/internal/randutil"
	"github.com/lox/sevenandahalf/internal/transport"
	"github.com/lox/sevenandahalf/internal/tui"
)

// CLI plays one game. Flags override the config file and the environment.
type CLI struct {
	Players     int              `arg:"" help:"Number of players (1-10)"`
	Config      string           `short:"c" default:"sevenandahalf.hcl" help:"Path to HCL configuration file"`
	Env         string           `default:".env" help:"Path to a dotenv file with SEVENANDAHALF_* variables"`
	Transport   string           `short:"t" help:"Channel transport: pipe, tcp or websocket (overrides config)"`
	Strategy    string           `short:"s" help:"Player strategy: random, stand or threshold (overrides config)"`
	Seed        *int64           `help:"Deterministic RNG seed (optional)"`
	ReadTimeout *time.Duration   `help:"Timeout for each exchange with a player, 0 disables (overrides config)"`
	LogLevel    string           `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	Output      string           `short:"o" help:"Output style: plain, pretty or tui (overrides config)"`
	Version     kong.VersionFlag `short:"v" help:"Show version"`
}

// Validate rejects a bad table size before anything is opened.
func (c *CLI) Validate() error {
	if c.Players < 1 || c.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", game.MaxPlayers, c.Players)
	}
	return nil
}

func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *CLI) run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal while the TUI runs, so logs wait.
	var logBuf bytes.Buffer
	logOut := stderr
	if cfg.Output == config.OutputTUI {
		logOut = &logBuf
		defer func() { _, _ = logBuf.WriteTo(stderr) }()
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})

	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = randutil.Seed()
		logger.Info("Using random seed", "seed", seed)
	}

	bots := make([]bot.Bot, cfg.Players)
	for i := range bots {
		b, err := bot.New(cfg.Strategy, randutil.Derive(seed, i+1), logger)
		if err != nil {
			return err
		}
		bots[i] = b
	}

	tr, err := transport.New(cfg.Transport, logger)
	if err != nil {
		return fmt.Errorf("opening transport: %w", err)
	}
	defer func() {
		if err := tr.Close(); err != nil {
			logger.Warn("Failed to close transport", "error", err)
		}
	}()

	spawn := func(id int, conn transport.Conn) dealer.Runner {
		return player.New(id, conn, bots[id-1], logger)
	}

	monitors := dealer.MultiMonitor{dealer.NewLogMonitor(logger)}
	var program *tea.Program
	switch cfg.Output {
	case config.OutputTUI:
		program = tea.NewProgram(tui.NewTUIModel(logger), tea.WithAltScreen(), tea.WithOutput(stdout))
		monitors = append(monitors, tui.NewMonitor(program))
	default:
		monitors = append(monitors, display.NewPrinter(stdout, cfg.Output == config.OutputPretty))
	}

	d, err := dealer.New(
		dealer.Config{Players: cfg.Players, Timeout: cfg.ReadTimeout},
		tr,
		game.NewRandomDeck(randutil.New(seed)),
		spawn,
		logger,
		dealer.WithMonitor(monitors),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting game",
		"game", d.GameID(),
		"players", cfg.Players,
		"transport", tr.Name(),
		"strategy", cfg.Strategy,
		"timeout", cfg.ReadTimeout)

	if program == nil {
		if _, err := d.Run(ctx); err != nil {
			return fmt.Errorf("game failed: %w", err)
		}
		return nil
	}
	return runWithTUI(ctx, d, program, stdout, logger)
}

// runWithTUI plays the game behind a bubbletea program. Quitting the program
// early abandons the game. The summary is printed again once the terminal is
// restored.
func runWithTUI(ctx context.Context, d *dealer.Dealer, program *tea.Program, stdout io.Writer, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result *dealer.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = d.Run(ctx)
	}()

	_, tuiErr := program.Run()
	cancel()
	<-done

	if tuiErr != nil {
		return fmt.Errorf("running TUI: %w", tuiErr)
	}
	if errors.Is(runErr, context.Canceled) {
		logger.Info("Game abandoned", "game", d.GameID())
		return nil
	}
	if runErr != nil {
		return fmt.Errorf("game failed: %w", runErr)
	}

	display.NewPrinter(stdout, true).OnGameComplete(result)
	return nil
}

// loadConfig layers the config file, the environment and the flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(c.Env); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg.Players = c.Players
	if c.Transport != "" {
		cfg.Transport = c.Transport
	}
	if c.Strategy != "" {
		cfg.Strategy = c.Strategy
	}
	if c.Seed != nil {
		cfg.Seed = c.Seed
	}
	if c.ReadTimeout != nil {
		cfg.ReadTimeout = *c.ReadTimeout
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
