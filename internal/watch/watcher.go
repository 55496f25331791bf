// Package watch monitors the on-disk handler registry files for external
// changes so the association table can be refreshed without polling.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"defapp/internal/log"
)

// Change represents a modification to a watched file
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors individual files for rewrites using fsnotify. Because the
// preference file is replaced wholesale by writers, the parent directory is
// watched and events are filtered down to the tracked files.
type Watcher struct {
	// Files being watched, by absolute path
	files map[string]struct{}

	// Channel to receive file changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the files set
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a new file watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		files:     make(map[string]struct{}),
		changes:   make(chan Change, 10),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// AddFile starts watching a file for rewrites. The file itself need not
// exist yet, but its parent directory must.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid watch path %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.mutex.Lock()
	w.files[abs] = struct{}{}
	w.mutex.Unlock()
	return nil
}

// Start begins delivering changes on the Changes channel
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			name := filepath.Clean(event.Name)
			w.mutex.RLock()
			_, tracked := w.files[name]
			w.mutex.RUnlock()
			if !tracked {
				continue
			}

			change := Change{Path: name, Op: event.Op, Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				log.Debugf("dropping change notification for %s", name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

// Changes returns the channel of file changes
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Stop halts the watcher and releases the underlying fsnotify resources
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		w.fsWatcher.Close()
		return
	}
	w.running = false
	close(w.stopChan)
	w.fsWatcher.Close()
}
