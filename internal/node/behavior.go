package node

// BehaviorKind enumerates the closed set of interaction outcomes a node
// binding can resolve to.
type BehaviorKind int

const (
	NoOp BehaviorKind = iota
	ExecuteAndClose
	ExecuteKeepOpen
	Expand
	NavigateInto
	LaunchExternalView
	BeginDrag
)

func (k BehaviorKind) String() string {
	switch k {
	case ExecuteAndClose:
		return "execute-and-close"
	case ExecuteKeepOpen:
		return "execute-keep-open"
	case Expand:
		return "expand"
	case NavigateInto:
		return "navigate-into"
	case LaunchExternalView:
		return "launch-external-view"
	case BeginDrag:
		return "begin-drag"
	default:
		return "no-op"
	}
}

// DragDescriptor carries what a begin-drag behavior hands to the drag
// subsystem.
type DragDescriptor struct {
	Path  string
	Label string
}

// Behavior is a tagged variant: Kind selects the interpretation and the
// remaining fields carry exactly the payload that kind needs.
type Behavior struct {
	Kind   BehaviorKind
	Action func() error    // ExecuteAndClose, ExecuteKeepOpen
	Drag   *DragDescriptor // BeginDrag
	ViewID string          // LaunchExternalView
}

// Executes reports whether the behavior runs an action callback.
func (b Behavior) Executes() bool {
	return b.Kind == ExecuteAndClose || b.Kind == ExecuteKeepOpen
}

// Modifiers is a bit set of modifier keys held during an interaction.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModControl
	ModCommand
)

// Trigger names the four interaction channels a node binds.
type Trigger int

const (
	TriggerPrimary Trigger = iota
	TriggerSecondary
	TriggerTertiary
	TriggerBoundaryCross
)

func (t Trigger) String() string {
	switch t {
	case TriggerSecondary:
		return "secondary"
	case TriggerTertiary:
		return "tertiary"
	case TriggerBoundaryCross:
		return "boundary-cross"
	default:
		return "primary"
	}
}

// Binding resolves a behavior for a trigger, optionally varying with
// the modifier keys held.
type Binding struct {
	Default  Behavior
	Modified map[Modifiers]Behavior
}

// Resolve returns the behavior for the given modifier set, falling back
// to the default when no modifier-specific behavior is bound.
func (b Binding) Resolve(mods Modifiers) Behavior {
	if mods != 0 {
		if alt, ok := b.Modified[mods]; ok {
			return alt
		}
	}
	return b.Default
}

// Interactions holds a node's four independent bindings.
type Interactions struct {
	Primary       Binding
	Secondary     Binding
	Tertiary      Binding
	BoundaryCross Binding
}

// For selects the binding for a trigger.
func (i Interactions) For(t Trigger) Binding {
	switch t {
	case TriggerSecondary:
		return i.Secondary
	case TriggerTertiary:
		return i.Tertiary
	case TriggerBoundaryCross:
		return i.BoundaryCross
	default:
		return i.Primary
	}
}
