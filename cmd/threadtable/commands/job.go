package commands

import (
	"context"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/threadtable/internal/config"
	"git.home.luguber.info/inful/threadtable/internal/docio"
	"git.home.luguber.info/inful/threadtable/internal/logfields"
	"git.home.luguber.info/inful/threadtable/internal/metrics"
	"git.home.luguber.info/inful/threadtable/internal/observability"
	"git.home.luguber.info/inful/threadtable/internal/patcher"
	"git.home.luguber.info/inful/threadtable/internal/transform"
)

// job performs one read-transform-write cycle for a configuration.
type job struct {
	cfg      *config.Config
	recorder *metrics.PrometheusRecorder
	stdin    io.Reader
	stdout   io.Writer
	dryRun   bool
}

func (j *job) run(ctx context.Context) (*transform.Report, error) {
	ctx = observability.WithRunID(ctx, observability.NewRunID())
	ctx = observability.WithInput(ctx, j.cfg.Input)
	logger := observability.Logger(ctx)

	logger.Info("Starting transformation",
		logfields.Output(j.cfg.Output),
		logfields.Catalog(j.cfg.Name),
		logfields.Offsets(j.cfg.Offsets))

	text, err := docio.Read(j.cfg.Input, j.stdin)
	if err != nil {
		return nil, err
	}

	rep, err := transform.Run(text, transformOptions(j.cfg),
		transform.WithLogger(logger),
		transform.WithRecorder(j.recorder))
	j.exportMetrics(logger)
	if err != nil {
		return nil, err
	}

	if j.dryRun {
		logger.Info("Dry run, output not written", logfields.Output(j.cfg.Output))
	} else if err := docio.Write(j.cfg.Output, rep.Output, j.stdout); err != nil {
		return nil, err
	}

	logger.Info("Transformation finished",
		logfields.Output(j.cfg.Output),
		slog.Int("sizes", rep.Sizes),
		slog.Int("designations", rep.Designations),
		slog.Int("generated", rep.Generated),
		slog.Int("dropped", rep.Dropped),
		slog.Int("pruned_designations", rep.Pruned.Designations),
		slog.Int("pruned_sizes", rep.Pruned.Sizes),
		logfields.DurationMS(float64(rep.Duration.Microseconds())/1000))
	return rep, nil
}

func (j *job) exportMetrics(logger *slog.Logger) {
	if j.cfg.Metrics.Textfile == "" {
		return
	}
	if err := j.recorder.WriteTextfile(j.cfg.Metrics.Textfile); err != nil {
		logger.Warn("Failed to write metrics textfile",
			logfields.Path(j.cfg.Metrics.Textfile),
			logfields.Error(err))
	}
}

// transformOptions converts the configuration into pipeline options.
func transformOptions(cfg *config.Config) transform.Options {
	return transform.Options{
		Name: cfg.Name,
		Options: patcher.Options{
			Offsets:         append([]float64(nil), cfg.Offsets...),
			HandleInternal:  cfg.HandleInternal,
			HandleExternal:  cfg.HandleExternal,
			ReserveOriginal: cfg.ReserveOriginal,
			ClassSeparator:  cfg.ClassSeparator,
			SizeFilter:      patcher.OnlySizes(cfg.OnlySizes...),
		},
	}
}
