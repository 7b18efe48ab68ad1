// Package provider hosts the content sources the navigation engine
// pulls nodes from: the synchronous root supply and the asynchronous
// child fetches for nodes flagged as needing dynamic loading.
package provider

import (
	"context"
	"sync"

	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/node"
	"github.com/google/uuid"
)

// Provider supplies nodes for one content domain.
type Provider interface {
	// ID is the stable identifier nodes reference via their provider id.
	ID() string
	// ProvideFunctions returns the provider's root-level nodes. Called
	// once per show of the overlay.
	ProvideFunctions() []*node.Node
	// LoadChildren returns fresh children for a node needing dynamic
	// loading. Must be safe to call repeatedly.
	LoadChildren(ctx context.Context, n *node.Node) ([]*node.Node, error)
}

// Refresher is an optional hook called before ProvideFunctions so a
// provider can re-sync external state.
type Refresher interface {
	Refresh()
}

// Registry is the explicit active-instance registry providers are
// looked up through. It is passed to whoever needs it; there is no
// package-global instance.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider, replacing any previous registration under
// the same id.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.ID()
	if _, exists := r.providers[id]; !exists {
		r.order = append(r.order, id)
	}
	r.providers[id] = p
	events.Provider.Registered(id, uuid.NewString())
}

// Find locates a provider by id.
func (r *Registry) Find(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}

// LoaderFor satisfies the engine's provider lookup.
func (r *Registry) LoaderFor(id string) (engine.Loader, bool) {
	p, ok := r.Find(id)
	if !ok {
		return nil, false
	}
	return p, true
}

// RootNodes refreshes every provider that supports it, then collects
// all root nodes in registration order.
func (r *Registry) RootNodes() []*node.Node {
	r.mu.RLock()
	ordered := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		ordered = append(ordered, r.providers[id])
	}
	r.mu.RUnlock()

	var roots []*node.Node
	for _, p := range ordered {
		if ref, ok := p.(Refresher); ok {
			ref.Refresh()
		}
		roots = append(roots, p.ProvideFunctions()...)
	}
	return roots
}
