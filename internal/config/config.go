// Package config layers the simulator settings: built-in defaults, then an
// optional HCL file, then a .env file and SEVENANDAHALF_* environment
// variables. Command line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/lox/sevenandahalf/internal/bot"
	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/transport"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SEVENANDAHALF_"

// Output styles
const (
	OutputPlain  = "plain"
	OutputPretty = "pretty"
	OutputTUI    = "tui"
)

// Outputs lists the accepted output styles.
func Outputs() []string {
	return []string{OutputPlain, OutputPretty, OutputTUI}
}

// Config holds everything needed to run one game.
type Config struct {
	Players     int
	Transport   string        `env:"TRANSPORT"`
	Strategy    string        `env:"STRATEGY"`
	Seed        *int64        `env:"SEED"`
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`
	LogLevel    string        `env:"LOG_LEVEL"`
	Output      string        `env:"OUTPUT"`
}

// fileConfig mirrors the HCL layout. Every block is optional.
type fileConfig struct {
	Game   *gameBlock   `hcl:"game,block"`
	Log    *logBlock    `hcl:"log,block"`
	Output *outputBlock `hcl:"output,block"`
}

type gameBlock struct {
	Transport   string `hcl:"transport,optional"`
	Strategy    string `hcl:"strategy,optional"`
	ReadTimeout string `hcl:"read_timeout,optional"`
	Seed        *int64 `hcl:"seed,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
}

type outputBlock struct {
	Style string `hcl:"style,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Transport:   transport.Pipe,
		Strategy:    bot.StrategyRandom,
		ReadTimeout: dealer.DefaultTimeout,
		LogLevel:    "info",
		Output:      OutputPlain,
	}
}

// Load reads an HCL file over the defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return LoadBytes(src, filename)
}

// LoadBytes parses HCL source over the defaults. filename is only used in
// diagnostics.
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if g := fc.Game; g != nil {
		if g.Transport != "" {
			cfg.Transport = g.Transport
		}
		if g.Strategy != "" {
			cfg.Strategy = g.Strategy
		}
		if g.ReadTimeout != "" {
			d, err := time.ParseDuration(g.ReadTimeout)
			if err != nil {
				return nil, fmt.Errorf("game.read_timeout: %w", err)
			}
			cfg.ReadTimeout = d
		}
		if g.Seed != nil {
			seed := *g.Seed
			cfg.Seed = &seed
		}
	}
	if fc.Log != nil && fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if fc.Output != nil && fc.Output.Style != "" {
		cfg.Output = fc.Output.Style
	}
	return cfg, nil
}

// ApplyEnv loads dotenvPath, if it exists, then applies SEVENANDAHALF_*
// variables. Variables already present in the environment win over the file.
func (c *Config) ApplyEnv(dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Players < 1 || c.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", game.MaxPlayers, c.Players)
	}
	if !slices.Contains(transport.Names(), c.Transport) {
		return fmt.Errorf("invalid transport %q (want one of %s)", c.Transport, strings.Join(transport.Names(), ", "))
	}
	if !slices.Contains(bot.Strategies(), c.Strategy) {
		return fmt.Errorf("invalid strategy %q (want one of %s)", c.Strategy, strings.Join(bot.Strategies(), ", "))
	}
	if !slices.Contains(Outputs(), c.Output) {
		return fmt.Errorf("invalid output %q (want one of %s)", c.Output, strings.Join(Outputs(), ", "))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read timeout must not be negative, got %s", c.ReadTimeout)
	}
	return nil
}
