package commands

import (
	"fmt"

	"git.home.luguber.info/inful/threadtable/internal/config"
	"git.home.luguber.info/inful/threadtable/internal/docio"
	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/metrics"
)

// TransformCmd implements the 'transform' command.
type TransformCmd struct {
	Input     string    `short:"i" help:"Input thread document ('-' for stdin); overrides input"`
	Output    string    `short:"o" help:"Output thread document ('-' for stdout); overrides output"`
	Name      string    `help:"Catalog name written to Name and CustomName; overrides name"`
	Offset    []float64 `help:"Diameter offset, repeatable or comma separated; replaces offsets. Negative values need the = form: --offset=-0.05"`
	Separator *string   `name:"separator" help:"Text placed between the original class and the offset; overrides class_separator"`
	Keep      bool      `name:"keep-original" help:"Keep the original thread entries next to the generated ones"`
	DryRun    bool      `name:"dry-run" help:"Transform and report without writing the output"`
}

func (t *TransformCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	t.apply(cfg)
	if err := requireIO(cfg); err != nil {
		return err
	}
	logWarnings(cfg)

	j := &job{
		cfg:      cfg,
		recorder: metrics.NewPrometheusRecorder(nil),
		stdin:    g.stdin(),
		stdout:   g.stdout(),
		dryRun:   t.DryRun,
	}
	rep, err := j.run(g.context())
	if err != nil {
		return err
	}
	if t.DryRun && cfg.Output != docio.Stdio {
		_, _ = fmt.Fprintf(g.stdout(), "%d sizes, %d designations, %d generated, %d dropped (dry run, %s not written)\n",
			rep.Sizes, rep.Designations, rep.Generated, rep.Dropped, cfg.Output)
	}
	return nil
}

// apply layers the command line over the configuration file.
func (t *TransformCmd) apply(cfg *config.Config) {
	if t.Input != "" {
		cfg.Input = t.Input
	}
	if t.Output != "" {
		cfg.Output = t.Output
	}
	if t.Name != "" {
		cfg.Name = t.Name
	}
	if len(t.Offset) > 0 {
		cfg.Offsets = t.Offset
	}
	if t.Separator != nil {
		cfg.ClassSeparator = *t.Separator
	}
	if t.Keep {
		cfg.ReserveOriginal = true
	}
}

// requireIO fills the stdout default and rejects a missing input.
func requireIO(cfg *config.Config) error {
	if cfg.Input == "" {
		return tterrors.ValidationFailed("input", "no input document; set input in the configuration or pass -i")
	}
	if cfg.Output == "" {
		cfg.Output = docio.Stdio
	}
	return nil
}
