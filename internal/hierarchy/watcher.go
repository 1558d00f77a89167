package hierarchy

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is published when the watched universe file changes. Exactly one
// of Universe and Err is set.
type Reload struct {
	Universe *Universe
	Err      error
}

// Watcher re-parses a universe file whenever it changes on disk.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the universe file at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: 100 * time.Millisecond,
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// which replace the file on save are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.emit()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publish(Reload{Err: err})
		}
	}
}

func (w *Watcher) emit() {
	u, err := Load(w.Path)
	if err != nil {
		w.publish(Reload{Err: err})
		return
	}
	w.publish(Reload{Universe: u})
}

// publish drops the reload when nobody is draining the channel; the next
// write produces a fresh one.
func (w *Watcher) publish(r Reload) {
	select {
	case w.reloads <- r:
	default:
	}
}
