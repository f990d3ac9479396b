// Package watch monitors session log directories for new rollout writes
// so the dashboard can refresh ahead of its interval tick.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codexmeter/codexmeter/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Watcher watches one directory at a time and publishes a debounced
// signal when a rollout file inside it is written or created.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan struct{}
	stop    chan struct{}

	mu            sync.Mutex
	dir           string
	debounceTimer *time.Timer
}

// New creates a Watcher. It watches nothing until Retarget is called.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fs,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one signal per debounced burst of rollout writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Retarget switches the watch to the directory containing path. Watching
// the directory rather than the file catches new rollout files too. A
// directory that cannot be watched is logged and skipped; the interval
// tick still refreshes without it.
func (w *Watcher) Retarget(path string) {
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return
	}

	if w.dir != "" {
		if err := w.fs.Remove(w.dir); err != nil {
			logger.Debug("failed to unwatch directory", "dir", w.dir, "error", err)
		}
	}

	if err := w.fs.Add(dir); err != nil {
		logger.Warn("failed to watch session directory", "dir", dir, "error", err)
		w.dir = ""
		return
	}
	w.dir = dir
}

// Close stops the watch loop and releases the fsnotify handle.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			// Only rollout files matter; editors and tooling touch
			// other files in these directories.
			if !strings.HasPrefix(filepath.Base(event.Name), "rollout-") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mu.Lock()
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.signal)
				w.mu.Unlock()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("session watcher error", "error", err)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
