package transform

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/threadtable/internal/logfields"
	"git.home.luguber.info/inful/threadtable/internal/patcher"
	"git.home.luguber.info/inful/threadtable/internal/pruner"
	"git.home.luguber.info/inful/threadtable/internal/threaddoc"
)

// Observer receives diagnostics while the pipeline walks the catalog.
type Observer interface {
	SizeVisited(index int, size threaddoc.Scalar, designations int)
	DesignationPatched(size threaddoc.Scalar, d *threaddoc.Designation, res patcher.Result)
	Pruned(st pruner.Stats)
	StageFinished(stage string, d time.Duration)
}

// NopObserver discards all diagnostics.
type NopObserver struct{}

func (NopObserver) SizeVisited(int, threaddoc.Scalar, int)                                      {}
func (NopObserver) DesignationPatched(threaddoc.Scalar, *threaddoc.Designation, patcher.Result) {}
func (NopObserver) Pruned(pruner.Stats)                                                         {}
func (NopObserver) StageFinished(string, time.Duration)                                         {}

// LogObserver writes diagnostics to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an observer logging to l (slog.Default when nil).
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{logger: l}
}

func (o *LogObserver) SizeVisited(index int, size threaddoc.Scalar, designations int) {
	o.logger.Debug("Processing thread size",
		slog.Int(logfields.KeyIndex, index),
		logfields.Size(size.String()),
		slog.Int(logfields.KeyDesignations, designations))
}

func (o *LogObserver) DesignationPatched(size threaddoc.Scalar, d *threaddoc.Designation, res patcher.Result) {
	o.logger.Debug("Designation patched",
		logfields.Size(size.String()),
		logfields.Designation(d.ThreadDesignation()),
		slog.Int("original", res.Original),
		slog.Int("eligible", res.Eligible),
		slog.Int("generated", res.Generated),
		slog.Int("retained", res.Retained))
	for _, w := range res.Warnings {
		o.logger.Warn("Diameter left unchanged",
			logfields.Size(size.String()),
			logfields.Designation(d.ThreadDesignation()),
			slog.String("detail", w))
	}
}

func (o *LogObserver) Pruned(st pruner.Stats) {
	if st.Sizes == 0 && st.Designations == 0 {
		return
	}
	o.logger.Info("Pruned empty containers",
		slog.Int("sizes", st.Sizes),
		slog.Int(logfields.KeyDesignations, st.Designations))
}

func (o *LogObserver) StageFinished(stage string, d time.Duration) {
	o.logger.Debug("Stage finished", logfields.Stage(stage), slog.Duration("duration", d))
}
