package ui

import (
	"context"
	"time"

	"github.com/atomicstack/radial-shell/internal/cache"
	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/logging"
	"github.com/atomicstack/radial-shell/internal/node"
	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 5 * time.Second

// childrenLoadedMsg mirrors the async loader response back into Update.
type childrenLoadedMsg struct {
	token    uint64
	children []*node.Node
	err      error
}

type cacheEventMsg struct {
	evt cache.Event
}

type watcherClosedMsg struct{}

// ringReloadedMsg carries a re-read listing for a displayed ring.
type ringReloadedMsg struct {
	level    int
	children []*node.Node
	err      error
}

func loadChildrenCmd(p *engine.PendingLoad) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		children, err := p.Loader.LoadChildren(ctx, p.Node)
		if err != nil {
			logging.Error(err)
		}
		return childrenLoadedMsg{token: p.Token, children: children, err: err}
	}
}

func waitForCacheEvent(w *cache.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return watcherClosedMsg{}
		}
		return cacheEventMsg{evt: evt}
	}
}

func (m *Model) reloadRingCmd(level int, dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.fs.ReadListings(dir)
		if err != nil {
			logging.Error(err)
			return ringReloadedMsg{level: level, err: err}
		}
		return ringReloadedMsg{level: level, children: m.fs.NodesFromListings(entries)}
	}
}

func (m *Model) handleChildrenLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(childrenLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if m.eng.CompleteNavigate(loaded.token, loaded.children, loaded.err) {
		m.afterStackChange()
	}
	return nil
}

func (m *Model) handleCacheEventMsg(msg tea.Msg) tea.Cmd {
	event, ok := msg.(cacheEventMsg)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{waitForCacheEvent(m.watcher)}
	if result := m.dispatcher.Handle(event.evt); result.Refresh {
		cmds = append(cmds, m.reloadRingCmd(result.Level, result.Dir))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleRingReloadedMsg(msg tea.Msg) tea.Cmd {
	reload, ok := msg.(ringReloadedMsg)
	if !ok || reload.err != nil {
		return nil
	}
	m.eng.RefreshRing(reload.level, reload.children)
	m.syncDisplayed()
	m.centerPointerOnActive()
	return nil
}

func (m *Model) handleWatcherClosedMsg(tea.Msg) tea.Cmd {
	return nil
}
