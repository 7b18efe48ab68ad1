package ui

import (
	"math"

	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/node"
	tea "github.com/charmbracelet/bubbletea"
)

// boundaryOvershoot is how far past the active ring's outer edge a
// radial step lands, enough to register a boundary cross without
// skipping into the next band's far side.
const boundaryOvershoot = 4.0

// pointerState is the simulated pointer, kept polar around the ring
// center. A terminal has no hover cursor; arrow keys steer this instead
// and every move resolves through the engine's real hit testing.
type pointerState struct {
	angle float64 // degrees, 0 = up, clockwise
	dist  float64 // points from center
}

func (m *Model) pointerPoint() geometry.Point {
	rad := m.pointer.angle * math.Pi / 180
	c := m.eng.Center()
	return geometry.Point{
		X: c.X + math.Sin(rad)*m.pointer.dist,
		Y: c.Y - math.Cos(rad)*m.pointer.dist,
	}
}

func (m *Model) activeConfig() (engine.RingConfiguration, bool) {
	configs := m.eng.Configurations()
	active := m.eng.ActiveLevel()
	if active < 0 || active >= len(configs) {
		return engine.RingConfiguration{}, false
	}
	return configs[active], true
}

func bandMid(c engine.RingConfiguration) float64 {
	return c.InnerRadius + c.Thickness/2
}

// movePointer applies a new polar position and resolves the resulting
// engine update, dispatching a boundary-cross behavior when the move
// left the active ring through its outer edge.
func (m *Model) movePointer(angle, dist float64) tea.Cmd {
	m.pointer.angle = geometry.NormalizeAngle(angle)
	m.pointer.dist = dist
	update := m.eng.PointerMoved(m.pointerPoint())
	if update.Crossed == nil {
		return nil
	}
	out := m.eng.TriggerAt(update.Crossed.Level, update.Crossed.Index, node.TriggerBoundaryCross, 0)
	return m.handleOutcome(out)
}

// rotate moves the hover one item along the active ring. Full circles
// wrap; partial slices clamp at their edges.
func (m *Model) rotate(step int) tea.Cmd {
	c, ok := m.activeConfig()
	if !ok || len(c.Nodes) == 0 {
		return nil
	}
	count := len(c.Nodes)
	target := 0
	if c.Hovered >= 0 {
		target = c.Hovered + step
	}
	if c.Slice.IsFullCircle() {
		target = ((target % count) + count) % count
	} else {
		if target < 0 {
			target = 0
		}
		if target >= count {
			target = count - 1
		}
	}
	left, right := c.Slice.ItemArc(target, count)
	return m.movePointer((left+right)/2, bandMid(c))
}

// stepOutward moves the pointer radially away from the center. From
// inside the active band it settles on the band middle; from the band it
// pushes past the outer edge, which is how boundary-cross behaviors
// fire.
func (m *Model) stepOutward() tea.Cmd {
	c, ok := m.activeConfig()
	if !ok {
		return nil
	}
	mid := bandMid(c)
	if m.pointer.dist < mid {
		return m.movePointer(m.pointer.angle, mid)
	}
	return m.movePointer(m.pointer.angle, c.InnerRadius+c.Thickness+boundaryOvershoot)
}

// stepInward moves the pointer radially toward the center: band middle
// first, then the close zone.
func (m *Model) stepInward() tea.Cmd {
	c, ok := m.activeConfig()
	if !ok {
		return nil
	}
	mid := bandMid(c)
	if m.pointer.dist > mid {
		return m.movePointer(m.pointer.angle, mid)
	}
	return m.movePointer(m.pointer.angle, 0)
}

// hoverIndex parks the pointer on the middle of the given item of the
// active ring.
func (m *Model) hoverIndex(index int) tea.Cmd {
	c, ok := m.activeConfig()
	if !ok || index < 0 || index >= len(c.Nodes) {
		return nil
	}
	left, right := c.Slice.ItemArc(index, len(c.Nodes))
	return m.movePointer((left+right)/2, bandMid(c))
}

// centerPointerOnActive re-parks the pointer on the active ring after a
// stack transition, without firing boundary crossings.
func (m *Model) centerPointerOnActive() {
	c, ok := m.activeConfig()
	if !ok || len(c.Nodes) == 0 {
		return
	}
	left, right := c.Slice.ItemArc(0, len(c.Nodes))
	m.pointer.angle = geometry.NormalizeAngle((left + right) / 2)
	m.pointer.dist = bandMid(c)
	m.eng.PointerMoved(m.pointerPoint())
}
