package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/hooks/errors"
)

// debounceWindow coalesces bursts of filesystem events (editors often
// write several times per save) into a single re-run.
const debounceWindow = 300 * time.Millisecond

// Watch re-runs the selected stage whenever files in the work tree
// change. It blocks until ctx is cancelled. Runs always use the full
// tracked file set, since staged state is meaningless mid-edit.
func (r *Runner) Watch(ctx context.Context, opts Options) error {
	root, err := r.repo.Root(ctx)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}
	defer watcher.Close()

	// fsnotify watches are per-directory, not recursive
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || strings.HasPrefix(name, ".grove-hooks-cache") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to watch work tree")
	}

	opts.AllFiles = true
	opts.Files = nil

	// Initial run before the first change
	if _, err := r.Run(ctx, opts); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New directories need their own watch
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}

			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil

			r.log.Debug("Work tree changed, re-running hooks")
			if _, err := r.Run(ctx, opts); err != nil {
				return err
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.WithError(watchErr).Warn("File watcher error")
		}
	}
}
