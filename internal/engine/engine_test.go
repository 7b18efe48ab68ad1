package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/atomicstack/radial-shell/internal/node"
)

type fakeLoader struct {
	children []*node.Node
	err      error
	calls    int
}

func (f *fakeLoader) LoadChildren(ctx context.Context, n *node.Node) ([]*node.Node, error) {
	f.calls++
	return f.children, f.err
}

type fakeProviders map[string]Loader

func (f fakeProviders) LoaderFor(id string) (Loader, bool) {
	l, ok := f[id]
	return l, ok
}

func leaf(id string) *node.Node {
	return node.MustNew(node.Spec{
		ID:   id,
		Name: id,
		Interactions: node.Interactions{
			Primary: node.Binding{Default: node.Behavior{Kind: node.ExecuteAndClose}},
		},
	})
}

func leaves(prefix string, n int) []*node.Node {
	out := make([]*node.Node, n)
	for i := range out {
		out[i] = leaf(fmt.Sprintf("%s-%d", prefix, i))
	}
	return out
}

func category(id string, children ...*node.Node) *node.Node {
	return node.MustNew(node.Spec{
		ID:       id,
		Name:     id,
		Children: children,
		Interactions: node.Interactions{
			Primary: node.Binding{Default: node.Behavior{Kind: node.Expand}},
		},
	})
}

func folder(id, path, providerID string) *node.Node {
	return node.MustNew(node.Spec{
		ID:         id,
		Name:       id,
		ProviderID: providerID,
		Meta:       node.FolderMeta{Path: path},
		Interactions: node.Interactions{
			Primary:       node.Binding{Default: node.Behavior{Kind: node.NavigateInto}},
			BoundaryCross: node.Binding{Default: node.Behavior{Kind: node.NavigateInto}},
		},
	})
}

func newTestEngine(providers Providers, roots ...*node.Node) *Engine {
	e := New(DefaultLayout(), providers)
	e.ShowRoot(roots)
	return e
}

func TestExpandPushesChildRing(t *testing.T) {
	e := newTestEngine(fakeProviders{},
		leaf("a"),
		category("cat", leaves("c", 4)...),
		leaf("b"),
	)
	if !e.Expand(0, 1, true) {
		t.Fatalf("expected expand to succeed")
	}
	if e.Depth() != 2 {
		t.Fatalf("expected 2 rings, got %d", e.Depth())
	}
	if e.ActiveLevel() != 1 {
		t.Fatalf("expected active level 1, got %d", e.ActiveLevel())
	}
	if e.Ring(0).Selected != 1 {
		t.Fatalf("expected parent selection pinned at 1, got %d", e.Ring(0).Selected)
	}
	if e.Ring(0).Collapsed {
		t.Fatalf("plain expand must not collapse the source ring")
	}
	if !e.Ring(1).OpenedByClick {
		t.Fatalf("click-driven expand should pin the ring open")
	}
}

func TestExpandNoOps(t *testing.T) {
	e := newTestEngine(fakeProviders{}, leaf("a"), leaf("b"))
	if e.Expand(0, 0, true) {
		t.Fatalf("leaf without children must not expand")
	}
	if e.Expand(5, 0, true) || e.Expand(0, 9, true) || e.Expand(-1, -1, true) {
		t.Fatalf("out-of-bounds expand must be a no-op")
	}
	if e.Depth() != 1 {
		t.Fatalf("stack must be unchanged, got depth %d", e.Depth())
	}
}

func TestExpandTruncatesDeeperRings(t *testing.T) {
	inner := category("inner", leaves("i", 2)...)
	e := newTestEngine(fakeProviders{},
		category("outer", inner, leaf("x")),
		leaf("other"),
	)
	e.Expand(0, 0, true)
	e.Expand(1, 0, true)
	if e.Depth() != 3 {
		t.Fatalf("expected 3 rings, got %d", e.Depth())
	}
	// Re-expanding at level 0 discards everything above it.
	e.Expand(0, 0, true)
	if e.Depth() != 2 {
		t.Fatalf("expected truncation to 2 rings, got %d", e.Depth())
	}
	if e.ActiveLevel() != 1 {
		t.Fatalf("expected active level 1, got %d", e.ActiveLevel())
	}
}

func TestCollapseToLevelIsIdempotent(t *testing.T) {
	e := newTestEngine(fakeProviders{},
		category("cat", category("sub", leaves("s", 3)...), leaf("x")),
	)
	e.Expand(0, 0, true)
	e.Expand(1, 0, true)
	e.CollapseToLevel(0)
	if e.Depth() != 1 || e.ActiveLevel() != 0 {
		t.Fatalf("collapse to 0: depth=%d active=%d", e.Depth(), e.ActiveLevel())
	}
	e.CollapseToLevel(0)
	if e.Depth() != 1 || e.ActiveLevel() != 0 {
		t.Fatalf("second collapse changed state: depth=%d active=%d", e.Depth(), e.ActiveLevel())
	}
	// Out-of-bounds levels are silent no-ops.
	e.CollapseToLevel(3)
	e.CollapseToLevel(-1)
	if e.Depth() != 1 {
		t.Fatalf("out-of-bounds collapse mutated the stack")
	}
}

func TestNavigateFlow(t *testing.T) {
	loader := &fakeLoader{children: leaves("f", 8)}
	providers := fakeProviders{"files": loader}
	roots := append(leaves("r", 2), folder("docs", "/tmp/docs", "files"))
	roots = append(roots, leaves("s", 3)...)
	e := newTestEngine(providers, roots...) // 6 root nodes, folder at index 2

	pending, ok := e.NavigateInto(0, 2, true)
	if !ok || pending == nil {
		t.Fatalf("expected a pending load")
	}
	if !e.Loading() {
		t.Fatalf("loading guard not set")
	}
	if e.Depth() != 1 {
		t.Fatalf("nothing may be pushed before the fetch completes")
	}

	// Re-entrant navigation is blocked while in flight.
	if _, ok := e.NavigateInto(0, 2, true); ok {
		t.Fatalf("second navigation must be rejected while loading")
	}

	children, err := pending.Loader.LoadChildren(context.Background(), pending.Node)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !e.CompleteNavigate(pending.Token, children, nil) {
		t.Fatalf("expected completion to push")
	}
	if e.Loading() {
		t.Fatalf("loading guard must clear on completion")
	}
	if e.Depth() != 2 || e.Ring(1).Count() != 8 {
		t.Fatalf("expected ring 1 with 8 nodes, depth=%d", e.Depth())
	}
	if e.ActiveLevel() != 1 {
		t.Fatalf("expected active level 1, got %d", e.ActiveLevel())
	}
	if e.Ring(0).Collapsed {
		t.Fatalf("ring 0 never collapses")
	}

	e.CollapseToLevel(0)
	if e.Depth() != 1 || e.ActiveLevel() != 0 {
		t.Fatalf("collapse after navigate: depth=%d active=%d", e.Depth(), e.ActiveLevel())
	}
}

func TestNavigateCollapsesSourceAboveRingZero(t *testing.T) {
	loader := &fakeLoader{children: leaves("f", 2)}
	providers := fakeProviders{"files": loader}
	e := newTestEngine(providers,
		category("cat", folder("docs", "/tmp/docs", "files")),
	)
	e.Expand(0, 0, true)
	pending, ok := e.NavigateInto(1, 0, true)
	if !ok {
		t.Fatalf("expected pending load")
	}
	if !e.Ring(1).Collapsed {
		t.Fatalf("source ring above level 0 must collapse while navigating")
	}
	e.CompleteNavigate(pending.Token, loader.children, nil)
	if !e.Ring(1).Collapsed {
		t.Fatalf("navigated-through ring stays collapsed")
	}
	// Returning to it restores full size.
	e.CollapseToLevel(1)
	if e.Ring(1).Collapsed {
		t.Fatalf("collapse-to-level must un-collapse the target ring")
	}
}

func TestStaleLoadRejectedAfterReset(t *testing.T) {
	loader := &fakeLoader{children: leaves("f", 4)}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"), leaf("x"))
	pending, _ := e.NavigateInto(0, 0, true)
	e.Reset()
	if e.CompleteNavigate(pending.Token, loader.children, nil) {
		t.Fatalf("stale result must not mutate an emptied stack")
	}
	if e.Depth() != 0 {
		t.Fatalf("stack mutated by stale load, depth=%d", e.Depth())
	}
}

func TestStaleLoadRejectedAfterStackReplacement(t *testing.T) {
	loader := &fakeLoader{children: leaves("f", 4)}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"), leaf("x"))
	pending, _ := e.NavigateInto(0, 0, true)
	// The whole tree is replaced while the fetch is in flight; the slot
	// at (0, 0) now holds a different node.
	e.ShowRoot([]*node.Node{folder("other", "/o", "files"), leaf("y")})
	if e.CompleteNavigate(pending.Token, loader.children, nil) {
		t.Fatalf("result for a replaced node must be discarded")
	}
	if e.Depth() != 1 {
		t.Fatalf("stale load pushed a ring, depth=%d", e.Depth())
	}
}

func TestMismatchedTokenIgnored(t *testing.T) {
	loader := &fakeLoader{children: leaves("f", 4)}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"))
	pending, _ := e.NavigateInto(0, 0, true)
	if e.CompleteNavigate(pending.Token+99, loader.children, nil) {
		t.Fatalf("unknown token must be ignored")
	}
	if !e.Loading() {
		t.Fatalf("unknown token must not clear the in-flight guard")
	}
}

func TestEmptyLoadIsNoOp(t *testing.T) {
	loader := &fakeLoader{}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"))
	pending, _ := e.NavigateInto(0, 0, true)
	if e.CompleteNavigate(pending.Token, nil, nil) {
		t.Fatalf("empty result must not push a ring")
	}
	if e.Depth() != 1 {
		t.Fatalf("expected stack unchanged, depth=%d", e.Depth())
	}
	if e.Loading() {
		t.Fatalf("guard must clear so navigation can be re-triggered")
	}
	if e.Ring(0).Selected != -1 {
		t.Fatalf("failed navigation must release the selection")
	}
}

func TestFailedLoadIsNoOp(t *testing.T) {
	loader := &fakeLoader{err: errors.New("disk unhappy")}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"))
	pending, _ := e.NavigateInto(0, 0, true)
	if e.CompleteNavigate(pending.Token, nil, loader.err) {
		t.Fatalf("failed load must not push a ring")
	}
	if e.Depth() != 1 || e.Loading() {
		t.Fatalf("failed load left bad state: depth=%d loading=%v", e.Depth(), e.Loading())
	}
}

func TestNavigateWithoutProviderIsConfigurationError(t *testing.T) {
	e := newTestEngine(fakeProviders{}, folder("docs", "/d", "nope"))
	if _, ok := e.NavigateInto(0, 0, true); ok {
		t.Fatalf("missing provider must be a no-op")
	}
	if e.Loading() {
		t.Fatalf("missing provider must not set the guard")
	}
}

func TestHoverAndSelectionAreIndependent(t *testing.T) {
	var entered, exited []string
	hoverLeaf := func(id string) *node.Node {
		return node.MustNew(node.Spec{
			ID: id,
			Interactions: node.Interactions{
				Primary: node.Binding{Default: node.Behavior{Kind: node.ExecuteAndClose}},
			},
			OnHoverEnter: func() { entered = append(entered, id) },
			OnHoverExit:  func() { exited = append(exited, id) },
		})
	}
	cat := category("cat", leaves("c", 2)...)
	e := newTestEngine(fakeProviders{}, hoverLeaf("a"), cat, hoverLeaf("b"))

	e.Hover(0, 0)
	e.Hover(0, 2)
	if len(entered) != 2 || entered[0] != "a" || entered[1] != "b" {
		t.Fatalf("unexpected hover-enter sequence: %v", entered)
	}
	if len(exited) != 1 || exited[0] != "a" {
		t.Fatalf("unexpected hover-exit sequence: %v", exited)
	}

	e.Expand(0, 1, true)
	if e.Ring(0).Selected != 1 {
		t.Fatalf("selection should pin the expanded item")
	}
	if e.Ring(0).Hovered != 2 {
		t.Fatalf("hover must survive selection, got %d", e.Ring(0).Hovered)
	}

	// Out-of-bounds hover clears, never crashes.
	e.Hover(0, 99)
	if e.Ring(0).Hovered != -1 {
		t.Fatalf("expected hover cleared, got %d", e.Ring(0).Hovered)
	}
	e.Hover(7, 0)
}

func TestRefreshRingSwapsNodesInPlace(t *testing.T) {
	loader := &fakeLoader{children: leaves("doc", 4)}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"))
	pending, _ := e.NavigateInto(0, 0, true)
	e.CompleteNavigate(pending.Token, loader.children, nil)

	e.Hover(1, 3)
	before := e.Configurations()
	rev := e.Ring(1).revision

	e.RefreshRing(1, leaves("doc", 2))
	r := e.Ring(1)
	if r.Count() != 2 {
		t.Fatalf("expected 2 nodes after refresh, got %d", r.Count())
	}
	if r.revision != rev+1 {
		t.Fatalf("refresh must bump the revision, got %d", r.revision)
	}
	if r.Hovered != -1 {
		t.Fatalf("out-of-range hover must clear on refresh, got %d", r.Hovered)
	}
	after := e.Configurations()
	if len(after) != len(before) || len(after[1].Nodes) != 2 {
		t.Fatalf("configurations did not pick up the refresh")
	}
}

func TestRefreshRingWithNoChildrenCollapses(t *testing.T) {
	loader := &fakeLoader{children: leaves("doc", 3)}
	e := newTestEngine(fakeProviders{"files": loader}, folder("docs", "/d", "files"))
	pending, _ := e.NavigateInto(0, 0, true)
	e.CompleteNavigate(pending.Token, loader.children, nil)

	e.RefreshRing(1, nil)
	if e.Depth() != 1 {
		t.Fatalf("empty refresh should collapse to the parent, depth=%d", e.Depth())
	}
	if e.Ring(0).Selected != -1 {
		t.Fatalf("parent selection must release after collapse, got %d", e.Ring(0).Selected)
	}

	// Ring 0 has no source node, refreshing it is a no-op.
	e.RefreshRing(0, leaves("x", 2))
	if e.Ring(0).Count() != 1 {
		t.Fatalf("ring 0 refresh must be ignored, count=%d", e.Ring(0).Count())
	}
}
