package commands

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/threadtable/internal/config"
	"git.home.luguber.info/inful/threadtable/internal/docio"
	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/logfields"
	"git.home.luguber.info/inful/threadtable/internal/metrics"
	"git.home.luguber.info/inful/threadtable/internal/observability"
	"git.home.luguber.info/inful/threadtable/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	TransformCmd `embed:""`

	Listen string `name:"metrics-listen" help:"Serve Prometheus metrics on this address; overrides metrics.listen"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(g.context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	w.apply(cfg)
	if w.Listen != "" {
		cfg.Metrics.Listen = w.Listen
	}
	if err := requireWatchIO(cfg); err != nil {
		return err
	}
	logWarnings(cfg)

	recorder := metrics.NewPrometheusRecorder(nil)
	if cfg.Metrics.Listen != "" {
		srv, err := serveMetrics(cfg.Metrics.Listen, recorder)
		if err != nil {
			return err
		}
		defer shutdownServer(srv)
	}

	paths := []string{cfg.Input}
	if _, err := os.Stat(root.Config); err == nil {
		paths = append(paths, root.Config)
	}

	watcher, err := watch.New(watch.Options{
		Paths:        paths,
		Debounce:     cfg.Watch.Debounce,
		PollInterval: cfg.Watch.PollInterval,
		Recorder:     recorder,
		Logger:       slog.Default(),
	}, func(ctx context.Context, trigger string) error {
		return w.regenerate(observability.WithTrigger(ctx, trigger), g, root, recorder)
	})
	if err != nil {
		return err
	}

	// A broken input at startup is reported, not fatal; the next change retries.
	_ = watcher.Regenerate(ctx, watch.TriggerStartup)
	return watcher.Run(ctx)
}

// regenerate reloads the configuration so edits to it take effect, then runs
// one transformation. The watched paths are fixed at startup.
func (w *WatchCmd) regenerate(ctx context.Context, g *Global, root *CLI, recorder *metrics.PrometheusRecorder) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	w.apply(cfg)
	if err := requireWatchIO(cfg); err != nil {
		return err
	}
	j := &job{cfg: cfg, recorder: recorder, stdin: g.stdin(), stdout: g.stdout(), dryRun: w.DryRun}
	_, err = j.run(ctx)
	return err
}

// requireWatchIO is requireIO plus the constraints of a long-running watch:
// real files on both ends, and an output that is not the watched input.
func requireWatchIO(cfg *config.Config) error {
	if err := requireIO(cfg); err != nil {
		return err
	}
	if cfg.Input == docio.Stdio || cfg.Output == docio.Stdio {
		return tterrors.ValidationFailed("input", "watch needs file paths for input and output, not stdin/stdout")
	}
	if sameFile(cfg.Input, cfg.Output) {
		return tterrors.ValidationFailed("output", "watch cannot write to its own input; every write would trigger another run")
	}
	return nil
}

// sameFile reports whether two paths name the same document, either lexically
// or, when both exist, as the same inode.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

func serveMetrics(addr string, recorder *metrics.PrometheusRecorder) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, tterrors.Wrap(err, tterrors.CategoryRuntime, tterrors.SeverityFatal, "failed to listen for metrics").
			WithContext("addr", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(recorder.Registry()))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", slog.String("addr", ln.Addr().String()))
	return srv, nil
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
