package cache

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Event reports that a watched directory's content changed and its
// cached listing is no longer trustworthy.
type Event struct {
	Dir string
}

// Watcher observes directories whose listings have been cached and
// publishes invalidation events. The store is invalidated before the
// event is delivered, so consumers re-reading through the cache see
// fresh content.
type Watcher struct {
	store *Store

	ctx    context.Context
	cancel context.CancelFunc

	fsw    *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup

	mu      sync.Mutex
	watched map[string]struct{}
}

// NewWatcher starts a filesystem watcher feeding invalidations into the
// store. store may be nil when caching is disabled; events still flow.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:   store,
		ctx:     ctx,
		cancel:  cancel,
		fsw:     fsw,
		events:  make(chan Event, 16),
		watched: make(map[string]struct{}),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events returns the invalidation event channel. It closes after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch registers a directory for invalidation tracking. Repeated
// registrations are cheap no-ops.
func (w *Watcher) Watch(dir string) {
	w.mu.Lock()
	if _, ok := w.watched[dir]; ok {
		w.mu.Unlock()
		return
	}
	w.watched[dir] = struct{}{}
	w.mu.Unlock()
	if err := w.fsw.Add(dir); err != nil {
		events.Cache.WatchError(err)
	}
}

// Stop cancels the watcher; the events channel closes once the
// event-pump goroutine exits.
func (w *Watcher) Stop() {
	w.cancel()
	w.fsw.Close()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			dir := filepath.Dir(evt.Name)
			w.mu.Lock()
			_, tracked := w.watched[dir]
			if !tracked {
				// Events on the watched directory itself carry its
				// own path.
				dir = evt.Name
				_, tracked = w.watched[dir]
			}
			w.mu.Unlock()
			if !tracked {
				continue
			}
			if w.store != nil {
				w.store.Invalidate(dir)
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Dir: dir}:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			events.Cache.WatchError(err)
		}
	}
}
