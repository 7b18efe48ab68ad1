package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/node"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const breadcrumbSeparator = " → "

// View implements tea.Model. Each open ring renders as one row of
// items; the active ring carries the hover highlight and collapsed
// rings shrink to a single dimmed summary line.
func (m *Model) View() string {
	lines := make([]string, 0, 16)
	if header := m.breadcrumbs(); header != "" {
		lines = append(lines, styles.Header.Render(header))
	}
	configs := m.eng.Configurations()
	for _, c := range configs {
		lines = append(lines, m.renderRing(c)...)
	}
	if len(configs) == 0 {
		lines = append(lines, styles.Info.Render("(nothing to show)"))
	}
	if m.loading {
		lines = append(lines, styles.Loading.Render("Loading…"))
	}
	if detail := m.hoveredDetail(); detail != "" {
		lines = append(lines, "", styles.Info.Render(detail))
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, "", styles.Info.Render(info))
	}
	if m.showFooter {
		lines = append(lines, "",
			styles.Footer.Render("←/→ rotate  ↑ cross out  ↓ back in  enter select  tab actions  esc back  ctrl+c quit"))
	}

	var status string
	if m.errMsg != "" {
		status = styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg))
	}
	lines = append(lines, "", status, m.filterPrompt())
	return m.clipToSize(lines)
}

func (m *Model) breadcrumbs() string {
	depth := m.eng.Depth()
	if depth == 0 {
		return ""
	}
	segments := []string{"radial shell"}
	for level := 1; level < depth; level++ {
		r := m.eng.Ring(level)
		if r == nil || r.Source() == nil {
			continue
		}
		segments = append(segments, r.Source().Name())
	}
	return strings.Join(segments, breadcrumbSeparator)
}

func (m *Model) renderRing(c engine.RingConfiguration) []string {
	r := m.eng.Ring(c.Level)
	label := fmt.Sprintf("ring %d", c.Level)
	if m.verbose {
		label = fmt.Sprintf("%s %.0f°–%.0f°", label, c.Slice.Start, c.Slice.End)
	}
	prefix := styles.RingLabel.Render(label) + "  "

	if r != nil && r.Collapsed {
		name := "…"
		if src := r.Source(); src != nil {
			name = src.Name()
		}
		summary := fmt.Sprintf("▸ %s (%d)", name, len(c.Nodes))
		if sel := r.Selected; sel >= 0 && sel < len(c.Nodes) {
			summary = fmt.Sprintf("▸ %s › %s", name, c.Nodes[sel].Name())
		}
		return []string{prefix + styles.CollapsedRing.Render(summary)}
	}

	items := make([]string, 0, len(c.Nodes))
	for i, n := range c.Nodes {
		text := itemLabel(n)
		if i == c.Hovered && c.Level == m.eng.ActiveLevel() {
			items = append(items, styles.HoveredItem.Render(" "+text+" "))
		} else {
			items = append(items, styles.Item.Render(text))
		}
	}
	line := prefix + strings.Join(items, "  ")
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width-1), "…")
	}
	return []string{line}
}

func itemLabel(n *node.Node) string {
	if _, ok := n.Meta().(node.FolderMeta); ok {
		return n.Name() + "/"
	}
	return n.Name()
}

// hoveredDetail describes the hovered node of the active ring.
func (m *Model) hoveredDetail() string {
	c, ok := m.activeConfig()
	if !ok || c.Hovered < 0 || c.Hovered >= len(c.Nodes) {
		return ""
	}
	n := c.Nodes[c.Hovered]
	switch meta := n.Meta().(type) {
	case node.FileMeta:
		return fmt.Sprintf("%s  %s", meta.Path, humanize.IBytes(uint64(meta.Size)))
	case node.FolderMeta:
		return meta.Path
	case node.AppMeta:
		return meta.BundleID
	default:
		return n.Name()
	}
}

func (m *Model) filterPrompt() string {
	prompt := styles.FilterPrompt.Render("» ")
	if m.filter == "" {
		return prompt + styles.FilterPlaceholder.Render("(type to hover)")
	}
	return prompt + styles.Filter.Render(m.filter) + m.filterCursor.View()
}

func (m *Model) clipToSize(lines []string) string {
	if m.height > 0 && len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return strings.Join(lines, "\n")
}
