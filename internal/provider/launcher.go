package provider

import (
	"context"
	"fmt"

	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/node"
)

// App describes one launchable application.
type App struct {
	Name     string
	BundleID string
	Icon     string
	Launch   func() error
}

// Launcher serves a static tree of application nodes grouped under one
// category. The list function is re-run on Refresh so a running-apps
// source stays current between shows.
type Launcher struct {
	id   string
	list func() []App
	apps []App
}

// NewLauncher constructs a launcher provider. list is invoked at
// construction and again on every Refresh.
func NewLauncher(id string, list func() []App) *Launcher {
	l := &Launcher{id: id, list: list}
	l.Refresh()
	return l
}

// ID returns the provider id nodes reference.
func (l *Launcher) ID() string {
	return l.id
}

// Refresh re-syncs the application list.
func (l *Launcher) Refresh() {
	if l.list != nil {
		l.apps = l.list()
	}
}

// ProvideFunctions returns the Applications category node. Its children
// are materialized immediately; selecting it expands synchronously.
func (l *Launcher) ProvideFunctions() []*node.Node {
	children := make([]*node.Node, 0, len(l.apps))
	for _, app := range l.apps {
		children = append(children, l.appNode(app))
	}
	if len(children) == 0 {
		return nil
	}
	return []*node.Node{node.MustNew(node.Spec{
		ID:         l.id + ":applications",
		Name:       "Applications",
		Icon:       "apps",
		ProviderID: l.id,
		Children:   children,
		Layout: node.LayoutHints{
			ChildMode: geometry.ArcCentered,
		},
		Interactions: node.Interactions{
			Primary:       node.Binding{Default: node.Behavior{Kind: node.Expand}},
			BoundaryCross: node.Binding{Default: node.Behavior{Kind: node.Expand}},
		},
	})}
}

// LoadChildren is never needed for the static tree; it exists to
// satisfy the provider contract and is safe to call.
func (l *Launcher) LoadChildren(ctx context.Context, n *node.Node) ([]*node.Node, error) {
	return nil, fmt.Errorf("launcher: node %q has no dynamic children", n.ID())
}

func (l *Launcher) appNode(app App) *node.Node {
	launch := app.Launch
	return node.MustNew(node.Spec{
		ID:         l.id + ":app:" + app.BundleID,
		Name:       app.Name,
		Icon:       app.Icon,
		ProviderID: l.id,
		Meta:       node.AppMeta{BundleID: app.BundleID},
		Interactions: node.Interactions{
			Primary: node.Binding{
				Default: node.Behavior{Kind: node.ExecuteAndClose, Action: launchAction(launch)},
				Modified: map[node.Modifiers]node.Behavior{
					node.ModAlt: {Kind: node.ExecuteKeepOpen, Action: launchAction(launch)},
				},
			},
		},
	})
}

func launchAction(launch func() error) func() error {
	return func() error {
		if launch == nil {
			return nil
		}
		return launch()
	}
}
