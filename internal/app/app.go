package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atomicstack/radial-shell/internal/cache"
	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/provider"
	"github.com/atomicstack/radial-shell/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	var store *cache.Store
	if cfg.CacheFile != "" {
		store, err = cache.Open(cfg.CacheFile)
		if err != nil {
			return fmt.Errorf("open listing cache: %w", err)
		}
		defer store.Close()
	}

	var watcher *cache.Watcher
	if cfg.Watch {
		watcher, err = cache.NewWatcher(store)
		if err != nil {
			// Run without invalidation rather than failing startup.
			events.Cache.WatchError(err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	opts := []provider.FilesystemOption{
		provider.WithOpen(openPath),
		provider.WithMaxEntries(cfg.MaxEntries),
	}
	if store != nil {
		opts = append(opts, provider.WithCache(store))
	}
	if watcher != nil {
		opts = append(opts, provider.WithWatch(watcher.Watch))
	}
	fs := provider.NewFilesystem("files", []string{root}, opts...)

	registry := provider.NewRegistry()
	registry.Register(fs)
	if apps := defaultApps(); len(apps) > 0 {
		registry.Register(provider.NewLauncher("apps", func() []provider.App { return apps }))
	}

	layout := engine.DefaultLayout()
	if cfg.CenterRadius > 0 {
		layout.CloseZoneRadius = cfg.CenterRadius
	}
	if cfg.RingThickness > 0 {
		layout.Thickness = cfg.RingThickness
	}
	eng := engine.New(layout, registry)

	model := ui.NewModel(eng, registry, fs, watcher, ui.Options{
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Launch:     launchView,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = home
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// defaultApps probes the environment for a handful of launchable
// programs. A terminal shell has no application database; the EDITOR,
// SHELL, and BROWSER conventions cover the common cases.
func defaultApps() []provider.App {
	candidates := []struct {
		name     string
		env      string
		fallback string
	}{
		{"Editor", "EDITOR", "vi"},
		{"Shell", "SHELL", "sh"},
		{"Browser", "BROWSER", ""},
	}
	apps := make([]provider.App, 0, len(candidates))
	for _, c := range candidates {
		cmd := os.Getenv(c.env)
		if cmd == "" {
			cmd = c.fallback
		}
		if cmd == "" {
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			continue
		}
		bin := path
		apps = append(apps, provider.App{
			Name:     c.name,
			BundleID: filepath.Base(bin),
			Launch:   func() error { return startDetached(bin) },
		})
	}
	return apps
}

func startDetached(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func openPath(path string) error {
	if runtime.GOOS == "darwin" {
		return startDetached("open", path)
	}
	return startDetached("xdg-open", path)
}

// launchView resolves the external view ids nodes emit. reveal: views
// open the target's directory in the system file manager.
func launchView(viewID string) error {
	if target, ok := strings.CutPrefix(viewID, "reveal:"); ok {
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			target = filepath.Dir(target)
		}
		return openPath(target)
	}
	return fmt.Errorf("unknown view %q", viewID)
}
