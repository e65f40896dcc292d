package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/openlibrary"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/readinglist"
	"github.com/five82/shelf/internal/state"
)

// pane identifies which half of the screen receives navigation keys.
type pane int

const (
	paneBoard pane = iota
	paneResults
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	List      *readinglist.List
	Catalog   openlibrary.Searcher
	Store     *state.Store // search results; a fresh store is used when nil
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
	LastQuery string
	DataPath  string // shown in the header

	// Warnings carries background failures, such as a reload of a list
	// edited outside shelf, to the status line.
	Warnings <-chan error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	list      *readinglist.List
	catalog   openlibrary.Searcher
	store     *state.Store
	logger    *zap.Logger
	prefsPath string
	dataPath  string
	keys      keyMap
	help      help.Model

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    pane
	showHelp bool
	modal    Modal

	// Board state; the selection follows a key so it survives reloads
	books       readinglist.Snapshot
	cursor      int
	selectedKey string

	// Search state
	input        textinput.Model
	editing      bool
	search       state.Snapshot
	resultCursor int

	// Status line
	lastErr error
	notice  string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "title, author or subject"
	input.CharLimit = 200
	input.SetValue(opts.LastQuery)

	m := Model{
		ctx:       ctx,
		list:      opts.List,
		catalog:   opts.Catalog,
		store:     store,
		logger:    logger,
		prefsPath: prefsPath,
		dataPath:  opts.DataPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		input:     input,
		search:    store.Snapshot(),
	}
	m.refreshBooks()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = maxInt(10, msg.Width/2-8)
		m.ready = true
		return m, nil

	case listChangedMsg:
		m.refreshBooks()
		return m, nil

	case mutationMsg:
		m.refreshBooks()
		if msg.err != nil {
			m.lastErr = msg.err
			m.notice = ""
		} else {
			m.lastErr = nil
			m.notice = msg.notice
		}
		return m, nil

	case warningMsg:
		m.lastErr = msg.err
		m.notice = ""
		return m, nil

	case searchDoneMsg:
		if !msg.current {
			return m, nil
		}
		m.search = m.store.Snapshot()
		m.resultCursor = 0
		if m.search.LastError != nil {
			m.lastErr = m.search.LastError
		} else {
			m.lastErr = nil
		}
		return m, nil

	case confirmRemoveMsg:
		return m, m.removeCmd(msg.key, msg.title)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.overlay(m.modal.View(m.theme, m.width, m.height))
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// refreshBooks re-reads the list and keeps the selection on the same book.
func (m *Model) refreshBooks() {
	if m.list == nil {
		return
	}
	m.books = m.list.Snapshot()
	m.syncSelection()
}

// Messages

// listChangedMsg reports that the reading list changed, possibly from
// outside the TUI. The model re-reads the list when it arrives.
type listChangedMsg struct{}

type mutationMsg struct {
	op     string
	notice string
	err    error
}

// searchDoneMsg reports a finished search. current is false when a newer
// search replaced it before it returned.
type searchDoneMsg struct {
	current bool
}

type warningMsg struct {
	err error
}

type confirmRemoveMsg struct {
	key   string
	title string
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.List != nil {
		// Send from a goroutine: subscribers may fire while Update is running.
		cancel := opts.List.Subscribe(func(readinglist.Snapshot) {
			go p.Send(listChangedMsg{})
		})
		defer cancel()
	}
	if opts.Warnings != nil {
		go forwardWarnings(ctx, p, opts.Warnings)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func forwardWarnings(ctx context.Context, p *tea.Program, warnings <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-warnings:
			if !ok {
				return
			}
			p.Send(warningMsg{err: err})
		}
	}
}
