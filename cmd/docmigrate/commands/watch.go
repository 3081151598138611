package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/open-constructs/docmigrate/internal/config"
	"github.com/open-constructs/docmigrate/internal/metrics"
	"github.com/open-constructs/docmigrate/internal/report"
	"github.com/open-constructs/docmigrate/internal/watch"
)

// WatchCmd implements the 'watch' command: continuous migration runs driven
// by filesystem events on the source tree.
type WatchCmd struct {
	DryRun bool `help:"Report changes without writing any files"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		go func() {
			if err := recorder.Serve(cfg.Metrics.Listen); err != nil {
				slog.Error("metrics endpoint failed", "listen", cfg.Metrics.Listen, "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(watch.Options{
		Root:     cfg.SourceDir,
		Debounce: cfg.Watch.DebounceDuration(),
		Interval: cfg.Watch.IntervalDuration(),
	}, func(ctx context.Context) error {
		return w.migrate(ctx, cfg, recorder)
	})
	if err != nil {
		return err
	}

	slog.Info("watching source tree", "root", cfg.SourceDir, "debounce", cfg.Watch.DebounceDuration())
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("watch stopped")
	return nil
}

// migrate runs one full convert+rename pass. Errors are returned to the
// watcher, which logs them and keeps watching.
func (w *WatchCmd) migrate(ctx context.Context, cfg *config.Config, recorder *metrics.Recorder) error {
	rep := report.New("watch")
	if err := runConvert(cfg, w.DryRun, rep); err != nil {
		return err
	}
	if err := runRename(cfg, w.DryRun, rep); err != nil {
		return err
	}
	rep.WriteSummary(os.Stdout)
	if recorder != nil {
		recorder.ObserveRun(rep)
	}
	return finishRun(ctx, cfg, rep)
}
