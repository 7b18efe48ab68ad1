package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/radial-shell/internal/testutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestViewGoldenRootRing(t *testing.T) {
	restore := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(restore)

	m, _ := newTestModel(t, Options{})
	testutil.AssertGolden(t, "root_view.golden", m.View())
}

func TestViewCollapsedRingSummary(t *testing.T) {
	restore := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(restore)

	m, _ := newTestModel(t, Options{})
	loadWorkspace(t, m)
	// Open docs from the child ring so the workspace ring collapses.
	m.hoverIndex(0)
	cmd := m.handleEnterKey(0)
	if cmd == nil {
		t.Fatalf("expected a load command for docs")
	}
	view := m.View()
	if !strings.Contains(view, "▸ workspace") {
		t.Fatalf("expected collapsed workspace summary in view:\n%s", view)
	}
	if !strings.Contains(view, "Loading…") {
		t.Fatalf("expected loading indicator in view:\n%s", view)
	}
}
