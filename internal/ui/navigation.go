package ui

import (
	"fmt"
	"unicode"

	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/logging"
	"github.com/atomicstack/radial-shell/internal/node"
	uistate "github.com/atomicstack/radial-shell/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "left":
		return m.rotate(-1)
	case "right":
		return m.rotate(1)
	case "up":
		return m.stepOutward()
	case "down":
		return m.stepInward()
	case "enter":
		return m.handleEnterKey(0)
	case "alt+enter":
		return m.handleEnterKey(node.ModAlt)
	case "tab":
		return m.triggerHovered(node.TriggerSecondary)
	case "ctrl+o":
		return m.triggerHovered(node.TriggerTertiary)
	case "ctrl+u":
		if m.filter == "" {
			return nil
		}
		m.filter = ""
		return nil
	}
	switch key.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if key.Alt {
			return nil
		}
		return m.appendToFilter(key.Runes)
	case tea.KeySpace:
		return m.appendToFilter([]rune{' '})
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.filter != "" {
		m.filter = ""
		return nil
	}
	active := m.eng.ActiveLevel()
	if active <= 0 {
		return tea.Quit
	}
	m.eng.CollapseToLevel(active - 1)
	m.errMsg = ""
	m.forceClearInfo()
	m.syncDisplayed()
	m.centerPointerOnActive()
	return nil
}

func (m *Model) handleEnterKey(mods node.Modifiers) tea.Cmd {
	if m.loading {
		return nil
	}
	m.filter = ""
	out := m.eng.Click(m.pointerPoint(), node.TriggerPrimary, mods)
	return m.handleOutcome(out)
}

func (m *Model) triggerHovered(trigger node.Trigger) tea.Cmd {
	if m.loading {
		return nil
	}
	c, ok := m.activeConfig()
	if !ok || c.Hovered < 0 {
		return nil
	}
	out := m.eng.TriggerAt(c.Level, c.Hovered, trigger, 0)
	return m.handleOutcome(out)
}

// handleOutcome folds a behavior dispatch result back into the model.
func (m *Model) handleOutcome(out engine.Outcome) tea.Cmd {
	if out.Err != nil {
		// A failed action keeps the shell open so the error is visible,
		// even for execute-and-close behaviors.
		m.errMsg = out.Err.Error()
		logging.Error(out.Err)
		return nil
	}
	switch {
	case out.Dismiss:
		return tea.Quit
	case out.Close:
		return tea.Quit
	case out.Pending != nil:
		m.loading = true
		m.errMsg = ""
		return loadChildrenCmd(out.Pending)
	case out.Launched != "":
		if m.launch != nil {
			if err := m.launch(out.Launched); err != nil {
				m.errMsg = err.Error()
				logging.Error(err)
				return nil
			}
		}
		return tea.Quit
	case out.Drag != nil:
		// No drag target exists in a terminal; surface the descriptor
		// instead of silently dropping the gesture.
		m.setInfo(fmt.Sprintf("drag: %s", out.Drag.Path))
		return nil
	default:
		m.afterStackChange()
		return nil
	}
}

// afterStackChange re-syncs derived UI state after the engine's stack
// was mutated synchronously (expand, collapse, materialized navigate).
func (m *Model) afterStackChange() {
	m.filter = ""
	m.syncDisplayed()
	m.centerPointerOnActive()
}

func (m *Model) appendToFilter(runes []rune) tea.Cmd {
	if len(runes) == 0 {
		return nil
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return nil
		}
	}
	m.filter += string(runes)
	m.errMsg = ""
	return m.steerToFilterMatch()
}

func (m *Model) removeFilterRune() tea.Cmd {
	if m.filter == "" {
		return nil
	}
	runes := []rune(m.filter)
	m.filter = string(runes[:len(runes)-1])
	return m.steerToFilterMatch()
}

// steerToFilterMatch moves the hover to the best fuzzy match for the
// current filter on the active ring. The ring's geometry is untouched;
// filtering only steers.
func (m *Model) steerToFilterMatch() tea.Cmd {
	if m.filter == "" {
		return nil
	}
	c, ok := m.activeConfig()
	if !ok || len(c.Nodes) == 0 {
		return nil
	}
	names := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		names[i] = n.Name()
	}
	best := uistate.BestMatchIndex(names, m.filter)
	if best < 0 {
		return nil
	}
	return m.hoverIndex(best)
}
