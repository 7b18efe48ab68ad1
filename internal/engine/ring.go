package engine

import (
	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/node"
)

// RingState is one level of the open navigation stack. The engine owns
// every RingState exclusively; nodes are shared read-only with their
// originating provider.
type RingState struct {
	Nodes         []*node.Node
	Hovered       int // -1 when nothing is hovered
	Selected      int // -1 when no child ring is attached
	Collapsed     bool
	OpenedByClick bool
	Slice         geometry.SliceConfig

	// source is the parent node this ring was opened from; nil for
	// ring 0. It carries the thickness and icon-size overrides.
	source *node.Node
	// revision changes whenever the node list is swapped in place, so
	// the configuration cache notices content refreshes.
	revision int
}

func newRing(nodes []*node.Node, slice geometry.SliceConfig, source *node.Node, byClick bool) *RingState {
	return &RingState{
		Nodes:         nodes,
		Hovered:       -1,
		Selected:      -1,
		OpenedByClick: byClick,
		Slice:         slice,
		source:        source,
	}
}

// Source returns the parent node the ring was opened from, nil for ring 0.
func (r *RingState) Source() *node.Node {
	return r.source
}

// Count returns the number of nodes shown at this level.
func (r *RingState) Count() int {
	return len(r.Nodes)
}

func (r *RingState) nodeAt(index int) *node.Node {
	if index < 0 || index >= len(r.Nodes) {
		return nil
	}
	return r.Nodes[index]
}

func (r *RingState) setHover(index int) bool {
	if index == r.Hovered {
		return false
	}
	if prev := r.nodeAt(r.Hovered); prev != nil {
		prev.HoverExit()
	}
	r.Hovered = index
	if next := r.nodeAt(index); next != nil {
		next.HoverEnter()
	}
	return true
}

// RingConfiguration is the derived, render-facing projection of one
// ring. It is a disposable recomputation, never authoritative state.
type RingConfiguration struct {
	Level       int
	InnerRadius float64
	Thickness   float64
	IconSize    float64
	Nodes       []*node.Node
	Hovered     int
	Slice       geometry.SliceConfig
}

// Layout fixes the radial metrics of the ring stack.
type Layout struct {
	CloseZoneRadius    float64
	BaseRadius         float64
	Thickness          float64
	CollapsedThickness float64
	IconSize           float64
}

// DefaultLayout returns the metrics used when the configuration does
// not override them.
func DefaultLayout() Layout {
	return Layout{
		CloseZoneRadius:    30,
		BaseRadius:         60,
		Thickness:          70,
		CollapsedThickness: 22,
		IconSize:           40,
	}
}

func (l Layout) ringThickness(r *RingState) float64 {
	if r.Collapsed {
		return l.CollapsedThickness
	}
	if src := r.source; src != nil {
		if t := src.Layout().ChildThickness; t > 0 {
			return t
		}
	}
	return l.Thickness
}

func (l Layout) ringIconSize(r *RingState) float64 {
	if src := r.source; src != nil {
		if s := src.Layout().ChildIconSize; s > 0 {
			return s
		}
	}
	return l.IconSize
}
