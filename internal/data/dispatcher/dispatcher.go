// Package dispatcher folds cache invalidation events into refresh
// decisions: an external content change only matters when the affected
// directory is currently displayed as an open ring.
package dispatcher

import (
	"sync"

	"github.com/atomicstack/radial-shell/internal/cache"
)

// Result describes what a handled event requires of the UI.
type Result struct {
	// Refresh is true when a displayed ring must reload its content.
	Refresh bool
	// Level is the ring level to refresh; meaningful only with Refresh.
	Level int
	// Dir is the invalidated directory.
	Dir string
}

// Dispatcher tracks which directories back currently open rings.
type Dispatcher struct {
	mu        sync.Mutex
	displayed map[string]int
}

// New returns a dispatcher with nothing displayed.
func New() *Dispatcher {
	return &Dispatcher{displayed: make(map[string]int)}
}

// SetDisplayed replaces the directory-to-ring-level mapping. The UI
// calls this whenever the ring stack changes.
func (d *Dispatcher) SetDisplayed(dirs map[string]int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.displayed = make(map[string]int, len(dirs))
	for dir, level := range dirs {
		d.displayed[dir] = level
	}
}

// Handle resolves an invalidation event against the displayed set.
func (d *Dispatcher) Handle(evt cache.Event) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	level, ok := d.displayed[evt.Dir]
	if !ok {
		return Result{Dir: evt.Dir}
	}
	return Result{Refresh: true, Level: level, Dir: evt.Dir}
}
