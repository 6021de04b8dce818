package rampfx

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher reloads the configuration when its file changes.
// The parent directory is watched so atomic renames by editors are seen.
type configWatcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	reload   func() error
	onError  func(error)
	cancel   context.CancelFunc
	done     chan struct{}
}

// watchConfig starts watching path. reload runs once per burst of changes
// after debounce has passed without further events.
func watchConfig(parent context.Context, path string, debounce time.Duration, reload func() error, onError func(error)) (*configWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	ctx, cancel := context.WithCancel(parent)
	w := &configWatcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		reload:   reload,
		onError:  onError,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine.
func (w *configWatcher) Close() {
	w.cancel()
	<-w.done
}

// relevant reports whether an event touches the watched file.
func (w *configWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

func (w *configWatcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			if err := w.reload(); err != nil && w.onError != nil {
				w.onError(err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}
