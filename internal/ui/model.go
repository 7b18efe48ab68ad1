package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/radial-shell/internal/cache"
	"github.com/atomicstack/radial-shell/internal/data/dispatcher"
	"github.com/atomicstack/radial-shell/internal/engine"
	"github.com/atomicstack/radial-shell/internal/node"
	"github.com/atomicstack/radial-shell/internal/provider"
	"github.com/atomicstack/radial-shell/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the presentation knobs NewModel does not derive from
// its collaborators.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Launch opens an external view (reveal:, app: ids). Nil means
	// launches are recorded but not acted on.
	Launch func(viewID string) error
}

// Model implements the Bubble Tea model for the radial shell.
type Model struct {
	eng        *engine.Engine
	registry   *provider.Registry
	fs         *provider.Filesystem
	watcher    *cache.Watcher
	dispatcher *dispatcher.Dispatcher

	pointer      pointerState
	filter       string
	filterCursor cursor.Model
	errMsg       string
	infoMsg      string
	infoExpire   time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	loading     bool
	launch      func(viewID string) error

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with the root ring already shown.
func NewModel(eng *engine.Engine, registry *provider.Registry, fs *provider.Filesystem, watcher *cache.Watcher, opts Options) *Model {
	m := &Model{
		eng:        eng,
		registry:   registry,
		fs:         fs,
		watcher:    watcher,
		dispatcher: dispatcher.New(),
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		launch:     opts.Launch,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	eng.ShowRoot(registry.RootNodes())
	m.syncDisplayed()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.watcher != nil {
		cmds = append(cmds, waitForCacheEvent(m.watcher))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	var cursorCmd tea.Cmd
	m.filterCursor, cursorCmd = m.filterCursor.Update(msg)
	if cursorCmd != nil {
		cmds = append(cmds, cursorCmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(childrenLoadedMsg{}): m.handleChildrenLoadedMsg,
		reflect.TypeOf(cacheEventMsg{}):     m.handleCacheEventMsg,
		reflect.TypeOf(ringReloadedMsg{}):   m.handleRingReloadedMsg,
		reflect.TypeOf(watcherClosedMsg{}):  m.handleWatcherClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// syncDisplayed rebuilds the dispatcher's directory-to-level mapping
// from the ring sources currently on the stack.
func (m *Model) syncDisplayed() {
	dirs := make(map[string]int)
	for level := 0; level < m.eng.Depth(); level++ {
		r := m.eng.Ring(level)
		if r == nil {
			continue
		}
		src := r.Source()
		if src == nil {
			continue
		}
		if dir, ok := node.ContentPath(src.Meta()); ok {
			dirs[dir] = level
		}
	}
	m.dispatcher.SetDisplayed(dirs)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
