// Package engine implements the radial navigation core: the ring stack
// state machine, pointer interaction resolution, and the coordination
// of asynchronous child loading. All mutation must happen from a single
// execution context; content fetches run elsewhere and marshal their
// results back through CompleteNavigate.
package engine

import (
	"context"
	"hash/fnv"

	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/node"
	"github.com/google/uuid"
)

// Loader fetches fresh children for a node flagged as needing dynamic
// loading. Implementations must be safe to call repeatedly.
type Loader interface {
	LoadChildren(ctx context.Context, n *node.Node) ([]*node.Node, error)
}

// Providers resolves the loader responsible for a provider id.
type Providers interface {
	LoaderFor(providerID string) (Loader, bool)
}

// Engine owns the ring stack and every transition on it.
type Engine struct {
	layout    Layout
	providers Providers
	center    geometry.Point

	stack    []*RingState
	active   int
	snapshot string

	pending *PendingLoad
	loadSeq uint64

	wasInsideActive bool

	configs     []RingConfiguration
	configHash  uint64
	configValid bool
}

// New constructs an engine with the given metrics and provider lookup.
func New(layout Layout, providers Providers) *Engine {
	return &Engine{layout: layout, providers: providers}
}

// SetCenter fixes the point rings are laid out around.
func (e *Engine) SetCenter(p geometry.Point) {
	e.center = p
}

// Center returns the current ring center.
func (e *Engine) Center() geometry.Point {
	return e.center
}

// ShowRoot replaces the stack with a fresh ring 0 holding the given
// root nodes. Ring 0 is always a full circle; nodes with an ItemAngle
// hint produce a weighted layout.
func (e *Engine) ShowRoot(nodes []*node.Node) {
	e.stack = nil
	e.active = 0
	e.wasInsideActive = false
	e.snapshot = uuid.NewString()
	if len(nodes) > 0 {
		e.stack = []*RingState{newRing(nodes, rootSlice(nodes), nil, false)}
	}
	e.invalidate()
	events.Engine.ShowRoot(e.snapshot, len(nodes))
}

func rootSlice(nodes []*node.Node) geometry.SliceConfig {
	weighted := false
	weights := make([]float64, len(nodes))
	for i, n := range nodes {
		if a := n.Layout().ItemAngle; a > 0 {
			weights[i] = a
			weighted = true
		} else {
			weights[i] = geometry.DefaultItemAngle
		}
	}
	if weighted {
		return geometry.WeightedFullCircleSlice(weights)
	}
	return geometry.FullCircleSlice(len(nodes))
}

// Reset empties the stack entirely. Any in-flight load stays pending
// and is discarded by the post-await validity check.
func (e *Engine) Reset() {
	e.stack = nil
	e.active = 0
	e.wasInsideActive = false
	e.invalidate()
	events.Engine.Reset()
}

// Depth returns the number of open rings.
func (e *Engine) Depth() int {
	return len(e.stack)
}

// ActiveLevel returns the ring currently receiving focus.
func (e *Engine) ActiveLevel() int {
	return e.active
}

// Ring returns the state at a level, or nil when out of bounds.
func (e *Engine) Ring(level int) *RingState {
	if level < 0 || level >= len(e.stack) {
		return nil
	}
	return e.stack[level]
}

// Loading reports whether a navigation fetch is in flight.
func (e *Engine) Loading() bool {
	return e.pending != nil
}

// Hover marks the item at (level, index) as hovered, firing hover-exit
// and hover-enter callbacks on the affected nodes. Out-of-bounds input
// clears the hover for valid levels and is otherwise ignored.
func (e *Engine) Hover(level, index int) {
	r := e.Ring(level)
	if r == nil {
		return
	}
	if index < 0 || index >= len(r.Nodes) {
		index = -1
	}
	if r.setHover(index) {
		e.invalidate()
		if n := r.nodeAt(index); n != nil {
			events.Pointer.Hover(level, index, n.ID())
		}
	}
}

// ClearHover removes the hover mark from every ring.
func (e *Engine) ClearHover() {
	changed := false
	for _, r := range e.stack {
		if r.setHover(-1) {
			changed = true
		}
	}
	if changed {
		e.invalidate()
	}
}

// Expand opens the children (or context actions) of the node at
// (level, index) as a new ring. Returns false when the transition is a
// no-op: stale coordinates or nothing to show.
func (e *Engine) Expand(level, index int, byClick bool) bool {
	return e.push(level, index, byClick, false, nil)
}

// CollapseToLevel truncates the stack so level is the outermost ring
// and returns focus to it. Out-of-bounds levels are a silent no-op;
// calling it twice is the same as calling it once.
func (e *Engine) CollapseToLevel(level int) {
	if level < 0 || level >= len(e.stack) {
		return
	}
	e.stack = e.stack[:level+1]
	r := e.stack[level]
	r.Collapsed = false
	r.Selected = -1
	e.active = level
	e.wasInsideActive = false
	e.invalidate()
	events.Engine.Collapse(level, len(e.stack))
}

// push implements expand and the push half of navigate-into. children
// overrides the node's own child list when non-nil (dynamic loads).
func (e *Engine) push(level, index int, byClick, collapseSource bool, children []*node.Node) bool {
	r := e.Ring(level)
	if r == nil {
		return false
	}
	n := r.nodeAt(index)
	if n == nil {
		return false
	}
	if children == nil {
		children = n.DisplayChildren()
	}
	if len(children) == 0 {
		return false
	}
	r.Selected = index
	if collapseSource && level != 0 {
		r.Collapsed = true
	}
	slice := geometry.ChildSlice(r.Slice, len(r.Nodes), index, n.Layout().ChildSlicePref(), len(children))
	e.stack = append(e.stack[:level+1], newRing(children, slice, n, byClick))
	e.active = level + 1
	e.wasInsideActive = false
	e.invalidate()
	events.Engine.Expand(level, index, n.ID(), len(children))
	return true
}

func (e *Engine) invalidate() {
	e.configValid = false
}

// Configurations returns the render-facing projection of the stack,
// recomputed only when the structural state hash changed since the
// previous call.
func (e *Engine) Configurations() []RingConfiguration {
	h := e.stateHash()
	if e.configValid && h == e.configHash {
		return e.configs
	}
	configs := make([]RingConfiguration, len(e.stack))
	inner := e.layout.BaseRadius
	for i, r := range e.stack {
		thickness := e.layout.ringThickness(r)
		configs[i] = RingConfiguration{
			Level:       i,
			InnerRadius: inner,
			Thickness:   thickness,
			IconSize:    e.layout.ringIconSize(r),
			Nodes:       r.Nodes,
			Hovered:     r.Hovered,
			Slice:       r.Slice,
		}
		inner += thickness
	}
	e.configs = configs
	e.configHash = h
	e.configValid = true
	return configs
}

// stateHash folds the structural state that configuration output
// depends on: ring sizes, hover/selection, collapse flags, and the
// active level.
func (e *Engine) stateHash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 64)
	put := func(v int) {
		buf = append(buf[:0],
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		h.Write(buf)
	}
	put(len(e.stack))
	put(e.active)
	if e.pending != nil {
		put(int(e.pending.Token))
	} else {
		put(-1)
	}
	for _, r := range e.stack {
		put(len(r.Nodes))
		put(r.Hovered)
		put(r.Selected)
		put(r.revision)
		flags := 0
		if r.Collapsed {
			flags |= 1
		}
		if r.OpenedByClick {
			flags |= 2
		}
		put(flags)
	}
	return h.Sum64()
}

// ringGeometries projects the current configurations into hit-testing
// input.
func (e *Engine) ringGeometries() []geometry.RingGeometry {
	configs := e.Configurations()
	rings := make([]geometry.RingGeometry, len(configs))
	for i, c := range configs {
		rings[i] = geometry.RingGeometry{
			Band:  geometry.Band{Inner: c.InnerRadius, Thickness: c.Thickness},
			Slice: c.Slice,
			Count: len(c.Nodes),
		}
	}
	return rings
}
