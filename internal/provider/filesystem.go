package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/radial-shell/internal/geometry"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/node"
	"github.com/atotto/clipboard"
)

// Listing is one cached directory entry.
type Listing struct {
	Name string
	Path string
	Dir  bool
	Size int64
}

// ListingCache is the narrow slice of the persistence layer the
// filesystem provider consumes: lookups and fire-and-forget writes.
type ListingCache interface {
	Lookup(dir string) ([]Listing, bool)
	StoreAsync(dir string, entries []Listing)
}

// Filesystem serves folder and file nodes rooted at configured paths.
// Folder contents are fetched lazily via LoadChildren and cached.
type Filesystem struct {
	id         string
	roots      []string
	cache      ListingCache
	watch      func(dir string)
	open       func(path string) error
	maxEntries int
}

// FilesystemOption tweaks provider construction.
type FilesystemOption func(*Filesystem)

// WithCache attaches a listing cache.
func WithCache(c ListingCache) FilesystemOption {
	return func(f *Filesystem) { f.cache = c }
}

// WithWatch registers loaded directories for external invalidation.
func WithWatch(watch func(dir string)) FilesystemOption {
	return func(f *Filesystem) { f.watch = watch }
}

// WithOpen sets the callback that opens a selected file.
func WithOpen(open func(path string) error) FilesystemOption {
	return func(f *Filesystem) { f.open = open }
}

// WithMaxEntries caps the number of children shown per folder ring.
func WithMaxEntries(n int) FilesystemOption {
	return func(f *Filesystem) { f.maxEntries = n }
}

// NewFilesystem constructs a filesystem provider for the given roots.
func NewFilesystem(id string, roots []string, opts ...FilesystemOption) *Filesystem {
	f := &Filesystem{id: id, roots: roots}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ID returns the provider id nodes reference.
func (f *Filesystem) ID() string {
	return f.id
}

// ProvideFunctions returns one folder node per configured root.
func (f *Filesystem) ProvideFunctions() []*node.Node {
	roots := make([]*node.Node, 0, len(f.roots))
	for _, dir := range f.roots {
		roots = append(roots, f.folderNode(dir, filepath.Base(dir)))
	}
	return roots
}

// LoadChildren materializes the children of a folder node: from the
// cache when a listing is known, otherwise from disk, storing the fresh
// listing fire-and-forget.
func (f *Filesystem) LoadChildren(ctx context.Context, n *node.Node) ([]*node.Node, error) {
	dir, ok := node.ContentPath(n.Meta())
	if !ok {
		return nil, fmt.Errorf("filesystem: node %q carries no path", n.ID())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.cache != nil {
		if entries, ok := f.cache.Lookup(dir); ok {
			events.Cache.Hit(dir, len(entries))
			return f.nodesFromListings(entries), nil
		}
		events.Cache.Miss(dir)
	}
	entries, err := readListings(dir)
	if err != nil {
		return nil, fmt.Errorf("filesystem: list %s: %w", dir, err)
	}
	if f.cache != nil {
		f.cache.StoreAsync(dir, entries)
	}
	if f.watch != nil {
		f.watch(dir)
	}
	events.Provider.Loaded(f.id, n.ID(), len(entries))
	return f.nodesFromListings(entries), nil
}

// ReadListings is the uncached disk read, exposed for refresh flows.
func (f *Filesystem) ReadListings(dir string) ([]Listing, error) {
	return readListings(dir)
}

// NodesFromListings converts cached listings into nodes.
func (f *Filesystem) NodesFromListings(entries []Listing) []*node.Node {
	return f.nodesFromListings(entries)
}

func readListings(dir string) ([]Listing, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Listing, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entry := Listing{
			Name: name,
			Path: filepath.Join(dir, name),
			Dir:  de.IsDir(),
		}
		if !entry.Dir {
			if info, err := de.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

func (f *Filesystem) nodesFromListings(entries []Listing) []*node.Node {
	nodes := make([]*node.Node, 0, len(entries))
	for _, entry := range entries {
		if entry.Dir {
			nodes = append(nodes, f.folderNode(entry.Path, entry.Name))
		} else {
			nodes = append(nodes, f.fileNode(entry))
		}
	}
	return nodes
}

func (f *Filesystem) folderNode(dir, name string) *node.Node {
	return node.MustNew(node.Spec{
		ID:         dir,
		Name:       name,
		Icon:       "folder",
		ProviderID: f.id,
		Meta:       node.FolderMeta{Path: dir},
		Layout: node.LayoutHints{
			ChildMode:   geometry.ArcCentered,
			MaxChildren: f.maxEntries,
		},
		ContextActions: f.pathActions(dir),
		Interactions: node.Interactions{
			Primary:       node.Binding{Default: node.Behavior{Kind: node.NavigateInto}},
			Secondary:     node.Binding{Default: node.Behavior{Kind: node.Expand}},
			Tertiary:      node.Binding{Default: node.Behavior{Kind: node.LaunchExternalView, ViewID: "reveal:" + dir}},
			BoundaryCross: node.Binding{Default: node.Behavior{Kind: node.NavigateInto}},
		},
	})
}

func (f *Filesystem) fileNode(entry Listing) *node.Node {
	path := entry.Path
	return node.MustNew(node.Spec{
		ID:             path,
		Name:           entry.Name,
		Icon:           "file",
		ProviderID:     f.id,
		Meta:           node.FileMeta{Path: path, Size: entry.Size},
		ContextActions: f.pathActions(path),
		Interactions: node.Interactions{
			Primary: node.Binding{
				Default: node.Behavior{Kind: node.ExecuteAndClose, Action: f.openAction(path)},
				Modified: map[node.Modifiers]node.Behavior{
					node.ModAlt: {Kind: node.ExecuteKeepOpen, Action: f.openAction(path)},
				},
			},
			Secondary: node.Binding{Default: node.Behavior{Kind: node.Expand}},
			BoundaryCross: node.Binding{Default: node.Behavior{
				Kind: node.BeginDrag,
				Drag: &node.DragDescriptor{Path: path, Label: entry.Name},
			}},
		},
	})
}

func (f *Filesystem) pathActions(path string) []*node.Node {
	return []*node.Node{
		node.MustNew(node.Spec{
			ID:         path + "#copy-path",
			Name:       "Copy Path",
			Icon:       "clipboard",
			ProviderID: f.id,
			Interactions: node.Interactions{
				Primary: node.Binding{Default: node.Behavior{
					Kind:   node.ExecuteKeepOpen,
					Action: func() error { return clipboard.WriteAll(path) },
				}},
			},
		}),
		node.MustNew(node.Spec{
			ID:         path + "#reveal",
			Name:       "Reveal",
			Icon:       "eye",
			ProviderID: f.id,
			Interactions: node.Interactions{
				Primary: node.Binding{Default: node.Behavior{
					Kind:   node.LaunchExternalView,
					ViewID: "reveal:" + path,
				}},
			},
		}),
	}
}

func (f *Filesystem) openAction(path string) func() error {
	return func() error {
		if f.open == nil {
			return nil
		}
		return f.open(path)
	}
}
