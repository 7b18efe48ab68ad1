package ui

import (
	"testing"

	"github.com/atomicstack/radial-shell/internal/node"
	tea "github.com/charmbracelet/bubbletea"
)

func TestEscapeFromRootQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestEscapeClearsFilterBeforeCollapsing(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.filter = "doc"
	if cmd := m.handleEscapeKey(); cmd != nil {
		t.Fatalf("expected filter clear, not a command")
	}
	if m.filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.filter)
	}
	if m.eng.Depth() != 1 {
		t.Fatalf("expected stack untouched while clearing filter")
	}
}

func TestEscapeCollapsesChildRing(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	loadWorkspace(t, m)
	if cmd := m.handleEscapeKey(); cmd != nil {
		t.Fatalf("expected collapse, not a command")
	}
	if m.eng.Depth() != 1 {
		t.Fatalf("expected child ring discarded, got depth %d", m.eng.Depth())
	}
	if m.eng.ActiveLevel() != 0 {
		t.Fatalf("expected focus back on ring 0, got %d", m.eng.ActiveLevel())
	}
}

func TestEnterExpandsApplications(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.hoverIndex(1)
	if cmd := m.handleEnterKey(0); cmd != nil {
		t.Fatalf("expected synchronous expand, got a command")
	}
	if m.eng.Depth() != 2 {
		t.Fatalf("expected app ring, got depth %d", m.eng.Depth())
	}
	r := m.eng.Ring(1)
	if r.Count() != 2 {
		t.Fatalf("expected two apps, got %d", r.Count())
	}
	if r.Hovered != 0 {
		t.Fatalf("expected pointer parked on first app, got hover %d", r.Hovered)
	}
}

func TestEnterOnAppClosesAfterLaunch(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.hoverIndex(1)
	m.handleEnterKey(0)
	m.hoverIndex(0) // Editor
	cmd := m.handleEnterKey(0)
	if cmd == nil {
		t.Fatalf("expected quit command after execute-and-close")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestAltEnterKeepsShellOpen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.hoverIndex(1)
	m.handleEnterKey(0)
	m.hoverIndex(0)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}); cmd != nil {
		t.Fatalf("expected execute-keep-open to return no command")
	}
	if m.eng.Depth() != 2 {
		t.Fatalf("expected stack preserved, got depth %d", m.eng.Depth())
	}
}

func TestBoundaryCrossStartsNavigation(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.rotate(1) // hover workspace, pointer on band middle
	cmd := m.stepOutward()
	if cmd == nil {
		t.Fatalf("expected crossing the outer edge to start a load")
	}
	if !m.loading {
		t.Fatalf("expected loading flag after boundary cross")
	}
	msg := cmd()
	loaded, ok := msg.(childrenLoadedMsg)
	if !ok {
		t.Fatalf("expected childrenLoadedMsg, got %T", msg)
	}
	m.Update(loaded)
	if m.eng.Depth() != 2 {
		t.Fatalf("expected child ring, got depth %d", m.eng.Depth())
	}
	if m.eng.Ring(1).OpenedByClick {
		t.Fatalf("boundary-cross navigation must not count as a click")
	}
}

func TestStepInwardReachesCloseZoneAndEnterDismisses(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.rotate(1)
	m.stepInward() // band middle -> already there, drops to center
	m.stepInward()
	if m.pointer.dist != 0 {
		t.Fatalf("expected pointer at center, got %v", m.pointer.dist)
	}
	cmd := m.handleEnterKey(0)
	if cmd == nil {
		t.Fatalf("expected dismiss command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestTertiaryTriggerLaunchesExternalView(t *testing.T) {
	var launched string
	m, root := newTestModel(t, Options{Launch: func(id string) error {
		launched = id
		return nil
	}})
	m.rotate(1) // hover workspace
	cmd := m.triggerHovered(node.TriggerTertiary)
	if cmd == nil {
		t.Fatalf("expected quit after launching the external view")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if launched != "reveal:"+root {
		t.Fatalf("expected reveal view for %s, got %q", root, launched)
	}
}
