package engine

import (
	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/logging"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/node"
)

// PendingLoad describes an in-flight navigation fetch. The caller runs
// Loader.LoadChildren on a background context and hands the result to
// CompleteNavigate with the same token.
type PendingLoad struct {
	Token  uint64
	Level  int
	Index  int
	Node   *node.Node
	Loader Loader

	byClick bool
}

// NavigateInto starts a navigate-into transition on the node at
// (level, index). Nodes with materialized children push synchronously
// and return (nil, true). Nodes needing dynamic loading return a
// PendingLoad; while one is in flight every further navigation is
// rejected. All failure modes are silent no-ops returning (nil, false).
func (e *Engine) NavigateInto(level, index int, byClick bool) (*PendingLoad, bool) {
	r := e.Ring(level)
	if r == nil {
		return nil, false
	}
	n := r.nodeAt(index)
	if n == nil {
		return nil, false
	}
	if !n.NeedsDynamicLoading() {
		return nil, e.push(level, index, byClick, true, nil)
	}
	if e.pending != nil {
		events.Engine.NavigateBlocked(level, index)
		return nil, false
	}
	loader, ok := e.providers.LoaderFor(n.ProviderID())
	if !ok {
		// A registered node pointing at an unregistered provider is a
		// configuration bug, not a transient failure.
		events.Provider.Missing(n.ProviderID(), n.ID())
		return nil, false
	}
	r.Selected = index
	if level != 0 {
		r.Collapsed = true
	}
	e.loadSeq++
	e.pending = &PendingLoad{
		Token:   e.loadSeq,
		Level:   level,
		Index:   index,
		Node:    n,
		Loader:  loader,
		byClick: byClick,
	}
	e.invalidate()
	events.Engine.NavigateBegin(level, index, n.ID(), e.pending.Token)
	return e.pending, true
}

// CompleteNavigate finishes an async navigation. Before any mutation it
// re-validates that (level, index) still denote the same in-flight
// node; the stack may have been truncated or replaced while the fetch
// was pending, in which case the result is discarded silently. Empty
// results never push a ring. There is no retry: a failed load leaves
// the stack on the source ring.
func (e *Engine) CompleteNavigate(token uint64, children []*node.Node, err error) bool {
	if e.pending == nil || e.pending.Token != token {
		events.Engine.NavigateStale(token, "no matching load")
		return false
	}
	p := e.pending
	e.pending = nil
	e.invalidate()

	r := e.Ring(p.Level)
	if r == nil || r.nodeAt(p.Index) != p.Node {
		events.Engine.NavigateStale(token, "stack changed during load")
		return false
	}
	restore := func() {
		if p.Level != 0 {
			r.Collapsed = false
		}
		r.Selected = -1
	}
	if err != nil {
		restore()
		logging.Error(err)
		return false
	}
	if len(children) == 0 {
		restore()
		return false
	}
	if !e.push(p.Level, p.Index, p.byClick, true, children) {
		restore()
		return false
	}
	events.Engine.NavigateComplete(token, len(children))
	return true
}

// RefreshRing swaps a ring's node list in place after its source
// content changed externally. Rings above it are discarded; an empty
// replacement collapses back to the parent level.
func (e *Engine) RefreshRing(level int, children []*node.Node) {
	r := e.Ring(level)
	if r == nil || r.source == nil {
		return
	}
	if len(children) == 0 {
		e.CollapseToLevel(level - 1)
		return
	}
	parent := e.Ring(level - 1)
	if parent == nil {
		return
	}
	e.stack = e.stack[:level+1]
	if e.active > level {
		e.active = level
	}
	r.Nodes = children
	r.revision++
	if r.Hovered >= len(children) {
		r.setHover(-1)
	}
	r.Selected = -1
	r.Slice = geometry.ChildSlice(parent.Slice, len(parent.Nodes), parent.Selected,
		r.source.Layout().ChildSlicePref(), len(children))
	e.invalidate()
}
