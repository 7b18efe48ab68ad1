package engine

import (
	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/node"
)

// PointerUpdate is the result of one pointer-move tick.
type PointerUpdate struct {
	Hit  geometry.Hit
	Kind geometry.HitKind
	// Crossed is set when the pointer left the active ring's outer edge
	// while hovering an item. The caller dispatches the node's
	// boundary-cross binding in response.
	Crossed *geometry.Hit
}

// PointerMoved resolves a pointer position against the current stack
// and updates hover state. It is synchronous and never touches I/O.
func (e *Engine) PointerMoved(p geometry.Point) PointerUpdate {
	if len(e.stack) == 0 {
		return PointerUpdate{Kind: geometry.HitNone}
	}
	rings := e.ringGeometries()
	hit, kind := geometry.HitTest(rings, e.layout.CloseZoneRadius, e.active, e.center, p)

	var crossed *geometry.Hit
	if e.active >= 0 && e.active < len(rings) {
		dist := geometry.PointerDistance(e.center, p)
		inside := dist <= rings[e.active].Band.Outer()
		if e.wasInsideActive && !inside && kind == geometry.HitItem && hit.Level == e.active {
			h := hit
			crossed = &h
			if n := e.stack[hit.Level].nodeAt(hit.Index); n != nil {
				events.Pointer.BoundaryCross(hit.Level, hit.Index, n.ID())
			}
		}
		e.wasInsideActive = inside
	}

	if kind == geometry.HitItem {
		for level, r := range e.stack {
			if level == hit.Level {
				continue
			}
			r.setHover(-1)
		}
		e.Hover(hit.Level, hit.Index)
	} else {
		e.ClearHover()
	}
	return PointerUpdate{Hit: hit, Kind: kind, Crossed: crossed}
}

// Outcome reports what an interaction resolved to. At most one of the
// fields is meaningful; the zero value is a no-op.
type Outcome struct {
	// Dismiss means the pointer clicked the close zone; the overlay
	// should be dismissed without selecting anything.
	Dismiss bool
	// Close means an execute-and-close behavior ran; the overlay
	// should close.
	Close bool
	// Pending is a navigation fetch the caller must run and complete.
	Pending *PendingLoad
	// Launched names an external view to open.
	Launched string
	// Drag begins a drag with the given descriptor.
	Drag *node.DragDescriptor
	// Err carries an action callback's failure.
	Err error
}

// Click resolves a discrete pointer event at p into a behavior dispatch.
func (e *Engine) Click(p geometry.Point, trigger node.Trigger, mods node.Modifiers) Outcome {
	if len(e.stack) == 0 {
		return Outcome{}
	}
	hit, kind := geometry.HitTest(e.ringGeometries(), e.layout.CloseZoneRadius, e.active, e.center, p)
	switch kind {
	case geometry.HitCenter:
		events.Pointer.Dismiss()
		return Outcome{Dismiss: true}
	case geometry.HitItem:
		return e.TriggerAt(hit.Level, hit.Index, trigger, mods)
	default:
		return Outcome{}
	}
}

// TriggerAt dispatches the resolved behavior of the node at
// (level, index) for the given trigger and modifiers. Stale coordinates
// are a silent no-op.
func (e *Engine) TriggerAt(level, index int, trigger node.Trigger, mods node.Modifiers) Outcome {
	r := e.Ring(level)
	if r == nil {
		return Outcome{}
	}
	n := r.nodeAt(index)
	if n == nil {
		return Outcome{}
	}
	byClick := trigger != node.TriggerBoundaryCross
	b := n.Interactions().For(trigger).Resolve(mods)
	switch b.Kind {
	case node.ExecuteAndClose:
		return Outcome{Close: true, Err: runAction(b)}
	case node.ExecuteKeepOpen:
		return Outcome{Err: runAction(b)}
	case node.Expand:
		e.Expand(level, index, byClick)
		return Outcome{}
	case node.NavigateInto:
		pending, _ := e.NavigateInto(level, index, byClick)
		return Outcome{Pending: pending}
	case node.LaunchExternalView:
		return Outcome{Launched: b.ViewID}
	case node.BeginDrag:
		return Outcome{Drag: b.Drag}
	default:
		return Outcome{}
	}
}

func runAction(b node.Behavior) error {
	if b.Action == nil {
		return nil
	}
	return b.Action()
}
