package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/threadtable/internal/config"
	"git.home.luguber.info/inful/threadtable/internal/observability"
)

// Global carries process-wide state into subcommands. Tests replace the
// streams and the context.
type Global struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) stdin() io.Reader {
	if g == nil || g.Stdin == nil {
		return os.Stdin
	}
	return g.Stdin
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"threadtable.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Transform TransformCmd `cmd:"" default:"withargs" help:"Generate the offset thread table"`
	Inspect   InspectCmd   `cmd:"" help:"Summarize a thread-table document"`
	Init      InitCmd      `cmd:"" help:"Write an example configuration file"`
	Watch     WatchCmd     `cmd:"" help:"Regenerate the thread table whenever the input or configuration changes"`
}

// AfterApply runs after flag parsing; sets up logging before any config is read.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel))
	if c.Verbose {
		level = config.LogLevelDebug
	}
	observability.Setup(level, config.LogFormatText)
	return nil
}

// loadConfig reads the configuration, tolerating a missing file, and
// reconfigures logging from it. --verbose wins over the file.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if c.Verbose {
		level = config.LogLevelDebug
	}
	observability.Setup(level, cfg.Logging.Format)
	return cfg, nil
}

// logWarnings reports settings that are valid but probably a mistake. It runs
// after command line overrides are applied.
func logWarnings(cfg *config.Config) {
	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", slog.String("warning", w))
	}
}
