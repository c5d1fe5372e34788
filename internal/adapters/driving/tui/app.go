package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/views/page"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// App is the TUI application. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	searchView *search.View

	// pageView is nil when no index service is wired.
	pageView *page.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a TUI application over the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		searchView:  search.NewView(s, km, ports.Search),
		currentView: messages.ViewSearch,
	}
	if ports.Index != nil {
		a.pageView = page.NewView(s, km, ports.Index)
	}
	return a, nil
}

// WithContext sets the context every service call runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	if a.pageView != nil {
		a.pageView.WithContext(ctx)
	}
	return a
}

// WithSearchOptions sets the language and limit every search uses.
func (a *App) WithSearchOptions(opts domain.SearchOptions) *App {
	a.searchView.WithOptions(opts)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pageindex"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.PageSelected:
		if a.pageView == nil {
			a.searchView.SetMessage("page details unavailable")
			return a, nil
		}
		a.currentView = messages.ViewPage
		return a, a.pageView.Load(msg.PageID)

	case messages.PageLoaded:
		if a.pageView != nil {
			a.pageView, cmd = a.pageView.Update(msg)
		}
		a.err = msg.Err
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewPage && a.pageView != nil {
			a.pageView, cmd = a.pageView.Update(msg)
			return a, cmd
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other ticks belong to the input.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewPage:
		if a.pageView != nil {
			a.pageView, cmd = a.pageView.Update(msg)
			return a, cmd
		}
		a.currentView = messages.ViewSearch
		return a, nil

	case messages.ViewHelp:
		switch {
		case key.Matches(msg, a.keymap.Back), key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewSearch
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		}
		return a, nil

	default:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPage:
		if a.pageView != nil {
			return a.pageView.View()
		}
	case messages.ViewHelp:
		return a.viewHelp()
	}
	return a.searchView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Keys") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back to search")
}

// Run starts the program and blocks until it exits. Cancelling the context
// passed to WithContext stops it.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// Query returns the text in the search input.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// Page returns the record shown on the page view, or nil.
func (a *App) Page() *domain.IndexedPage {
	if a.pageView == nil {
		return nil
	}
	return a.pageView.Page()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
	if a.pageView != nil {
		a.pageView.SetDimensions(width, height)
	}
}
