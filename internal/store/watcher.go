package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called once per burst of writes to the database files.
type ChangeCallback func()

// DefaultDebounce is the quiet period Watch waits for before reporting.
const DefaultDebounce = 200 * time.Millisecond

// Watch observes the directory holding the database file at dbPath and
// calls cb after writes to the database or its WAL/journal settle for
// debounce. It reports changes made by any process, this one included,
// and returns when ctx is cancelled.
func Watch(ctx context.Context, dbPath string, debounce time.Duration, logger *slog.Logger, cb ChangeCallback) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	watched := map[string]struct{}{
		abs:              {},
		abs + "-wal":     {},
		abs + "-journal": {},
	}

	logger.Info("watcher: started", slog.String("db", abs))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			fire = nil
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, ok := watched[ev.Name]; !ok {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("watcher: db file changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
