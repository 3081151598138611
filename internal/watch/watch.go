// Package watch re-runs the migration when the source tree changes.
//
// Filesystem events are debounced into a quiet window so editor save bursts
// trigger one run, and an optional gocron schedule forces periodic full runs
// even when nothing changes (useful while upstream fetches land out of band).
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
)

// Options configures a Watcher.
type Options struct {
	// Root is the directory tree to watch.
	Root string
	// Debounce is the quiet window after the last event before a run fires.
	Debounce time.Duration
	// Interval, when positive, schedules periodic runs regardless of events.
	Interval time.Duration
}

// Watcher invokes a callback after debounced source changes.
type Watcher struct {
	opts Options
	run  func(ctx context.Context) error
}

// New creates a Watcher that calls run on every trigger.
func New(opts Options, run func(ctx context.Context) error) (*Watcher, error) {
	if opts.Root == "" {
		return nil, apperrors.ValidationError("watch root is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if run == nil {
		return nil, apperrors.ValidationError("run callback is required")
	}
	return &Watcher{opts: opts, run: run}, nil
}

// Run blocks until ctx is canceled, invoking the callback after debounced
// filesystem events and on the optional schedule.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "create filesystem watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := addRecursive(fsw, w.opts.Root); err != nil {
		return err
	}

	triggers := make(chan string, 1)

	var scheduler gocron.Scheduler
	if w.opts.Interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryConvert, "create scheduler")
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(w.opts.Interval),
			gocron.NewTask(func() { requestRun(triggers, "schedule") }),
			gocron.WithName("periodic-migration"),
		)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryConvert, "schedule periodic run")
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	debounce := time.NewTimer(time.Hour)
	stopTimer(debounce)
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories must be watched as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(fsw, event.Name)
				}
			}
			pending = true
			stopTimer(debounce)
			debounce.Reset(w.opts.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("filesystem watcher error", "error", err)

		case <-debounce.C:
			if pending {
				pending = false
				requestRun(triggers, "filesystem")
			}

		case reason := <-triggers:
			slog.Info("triggering migration run", "reason", reason)
			if err := w.run(ctx); err != nil {
				slog.Error("migration run failed", "error", err)
			}
		}
	}
}

// requestRun coalesces triggers: at most one run can be queued at a time.
func requestRun(triggers chan string, reason string) {
	select {
	case triggers <- reason:
	default:
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(event.Name)
	// Ignore our own atomic-write temp files and editor droppings.
	if strings.HasPrefix(base, ".docmigrate-") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, "walk watch tree").WithContext("path", path)
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return apperrors.Wrap(err, apperrors.CategoryFileSystem, "watch directory").WithContext("dir", path)
			}
		}
		return nil
	})
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
