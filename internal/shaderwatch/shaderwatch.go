// Package shaderwatch reports changes to shader source files.
//
// A Watcher runs one goroutine that reads file system notifications and
// forwards the names of changed files on a buffered channel. It never
// touches the event queue; the frame loop collects the names with Pending
// and turns them into events itself.
package shaderwatch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Buffer is the number of changes held before further changes are
// dropped. A dropped change is harmless as long as one for the same file
// is still pending.
const Buffer = 16

// Watcher watches a fixed set of files.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]string
	changes chan string
	done    chan struct{}
	wake    func()
	wg      sync.WaitGroup
}

// New watches paths. Their directories are watched rather than the files
// themselves, because many editors save by writing a new file and renaming
// it over the old one. wake is called after each forwarded change and may
// be nil; it is called from the watcher goroutine.
func New(paths []string, wake func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shaderwatch: %w", err)
	}
	w := &Watcher{
		watcher: fw,
		files:   make(map[string]string, len(paths)),
		changes: make(chan string, Buffer),
		done:    make(chan struct{}),
		wake:    wake,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("shaderwatch: %w", err)
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("shaderwatch: watch %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, ok := w.files[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			select {
			case w.changes <- path:
			default:
				slog.Debug("shader change dropped", "path", path)
			}
			if w.wake != nil {
				w.wake()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("shader watcher error", "err", err)
		}
	}
}

// Pending returns the files changed since the last call, each once, in
// the order they first changed. It never blocks.
func (w *Watcher) Pending() []string {
	var paths []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.changes:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Close stops the watcher goroutine and releases the notification handle.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
