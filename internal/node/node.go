// Package node defines the immutable tree of selectable items the
// navigation engine operates on. Nodes are constructed by providers,
// validated once, and never mutated afterwards.
package node

import (
	"errors"
	"fmt"

	"github.com/atomicstack/radial-shell/internal/geometry"
)

// LayoutHints carries a node's preferences for its own angular width
// and for the slice its children occupy. Zero values mean "inherit".
type LayoutHints struct {
	ChildLayout    geometry.Layout
	ItemAngle      float64 // this node's own width within its ring
	ChildItemAngle float64 // per-item width of the children's slice
	ChildMode      geometry.ArcMode
	ChildThickness float64
	ChildIconSize  float64
	MaxChildren    int // cap on displayed children, 0 = unlimited
}

// ChildSlicePref projects the hints into the geometry calculator's input.
func (h LayoutHints) ChildSlicePref() geometry.ChildLayout {
	return geometry.ChildLayout{
		Layout:    h.ChildLayout,
		ItemAngle: h.ChildItemAngle,
		Mode:      h.ChildMode,
	}
}

// Spec is the constructor input for a Node.
type Spec struct {
	ID             string
	Name           string
	Icon           string
	ProviderID     string
	Children       []*Node
	ContextActions []*Node
	Layout         LayoutHints
	Interactions   Interactions
	Meta           Metadata
	OnHoverEnter   func()
	OnHoverExit    func()
}

// Node is one selectable unit: a category, application, file, folder,
// or pure action. Immutable once constructed.
type Node struct {
	id             string
	name           string
	icon           string
	providerID     string
	children       []*Node
	contextActions []*Node
	layout         LayoutHints
	interactions   Interactions
	meta           Metadata
	onHoverEnter   func()
	onHoverExit    func()
}

var errMissingID = errors.New("node: id must not be empty")

// New validates the spec and constructs an immutable node.
func New(spec Spec) (*Node, error) {
	if spec.ID == "" {
		return nil, errMissingID
	}
	primary := spec.Interactions.Primary.Default
	hasContent := len(spec.Children) > 0 || len(spec.ContextActions) > 0
	if primary.Kind == Expand && !hasContent {
		return nil, fmt.Errorf("node %q: expanding category needs children or context actions", spec.ID)
	}
	if hasContent && !revealsContent(spec.Interactions) {
		return nil, fmt.Errorf("node %q: children can never be revealed by its bindings", spec.ID)
	}
	n := &Node{
		id:             spec.ID,
		name:           spec.Name,
		icon:           spec.Icon,
		providerID:     spec.ProviderID,
		children:       append([]*Node(nil), spec.Children...),
		contextActions: append([]*Node(nil), spec.ContextActions...),
		layout:         spec.Layout,
		interactions:   spec.Interactions,
		meta:           spec.Meta,
		onHoverEnter:   spec.OnHoverEnter,
		onHoverExit:    spec.OnHoverExit,
	}
	return n, nil
}

// revealsContent reports whether any binding can expose the node's
// children or context actions.
func revealsContent(i Interactions) bool {
	for _, b := range []Binding{i.Primary, i.Secondary, i.Tertiary, i.BoundaryCross} {
		if b.Default.Kind == Expand || b.Default.Kind == NavigateInto {
			return true
		}
		for _, alt := range b.Modified {
			if alt.Kind == Expand || alt.Kind == NavigateInto {
				return true
			}
		}
	}
	return false
}

// MustNew constructs a node and panics on an invalid spec. Intended for
// static trees assembled at startup.
func MustNew(spec Spec) *Node {
	n, err := New(spec)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Node) ID() string                 { return n.id }
func (n *Node) Name() string               { return n.name }
func (n *Node) Icon() string               { return n.icon }
func (n *Node) ProviderID() string         { return n.providerID }
func (n *Node) Layout() LayoutHints        { return n.layout }
func (n *Node) Interactions() Interactions { return n.interactions }
func (n *Node) Meta() Metadata             { return n.meta }

// Children returns the node's ordered child list. Callers must treat
// the slice as read-only.
func (n *Node) Children() []*Node { return n.children }

// ContextActions returns the nodes shown on a secondary gesture instead
// of as primary children.
func (n *Node) ContextActions() []*Node { return n.contextActions }

// DisplayChildren returns the children a ring should show: the child
// list, falling back to context actions, capped by MaxChildren.
func (n *Node) DisplayChildren() []*Node {
	items := n.children
	if len(items) == 0 {
		items = n.contextActions
	}
	if max := n.layout.MaxChildren; max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

// IsLeaf is derived, never stored: no children, no context actions, and
// a primary behavior that executes.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0 &&
		len(n.contextActions) == 0 &&
		n.interactions.Primary.Default.Executes()
}

// NeedsDynamicLoading reports whether selecting the node requires an
// async content fetch: a navigate-into primary or boundary behavior,
// provider metadata carrying a content path, and no children yet.
func (n *Node) NeedsDynamicLoading() bool {
	if len(n.children) > 0 {
		return false
	}
	if n.interactions.Primary.Default.Kind != NavigateInto &&
		n.interactions.BoundaryCross.Default.Kind != NavigateInto {
		return false
	}
	_, ok := ContentPath(n.meta)
	return ok
}

// WithProviderID returns a copy of the node re-tagged with a different
// provider id. The child and context-action lists are shared; they are
// immutable anyway.
func (n *Node) WithProviderID(providerID string) *Node {
	clone := *n
	clone.providerID = providerID
	return &clone
}

// HoverEnter fires the node's hover-enter callback, if any.
func (n *Node) HoverEnter() {
	if n.onHoverEnter != nil {
		n.onHoverEnter()
	}
}

// HoverExit fires the node's hover-exit callback, if any.
func (n *Node) HoverExit() {
	if n.onHoverExit != nil {
		n.onHoverExit()
	}
}
