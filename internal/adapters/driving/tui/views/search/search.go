// Package search provides the query and results view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")

// View is the search view: a query input above a result list and status bar.
// It is in input mode while typing and in results mode while browsing.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	opts          domain.SearchOptions
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a search view in input mode.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s, km),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithOptions sets the language and limit every search uses.
func (v *View) WithOptions(opts domain.SearchOptions) *View {
	v.opts = opts
	v.statusbar.SetLanguage(opts.Language)
	return v
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Open):
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		id := result.PageID
		return v, func() tea.Msg { return messages.PageSelected{PageID: id} }

	case key.Matches(msg, v.keymap.NewSearch):
		v.input.SetValue("")
		return v, v.focus()

	case key.Matches(msg, v.keymap.Back):
		return v, v.focus()

	case key.Matches(msg, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case key.Matches(msg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Search):
		query := v.input.Value()
		if strings.TrimSpace(query) == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage("")
		v.blur()
		return v, v.performSearch(query)

	case key.Matches(msg, v.keymap.Back):
		if v.list.Count() > 0 {
			v.blur()
			return v, nil
		}
		return v, func() tea.Msg { return messages.Quit{} }
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performSearch runs the query as typed; the service decides how to match it.
func (v *View) performSearch(query string) tea.Cmd {
	svc, ctx, opts := v.searchService, v.ctx, v.opts
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Query, msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	v.blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) focus() tea.Cmd {
	v.focusInput = true
	v.statusbar.SetHints(v.keymap.InputHelp())
	return v.input.Focus()
}

func (v *View) blur() {
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetHints(v.keymap.ResultsHelp())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("pageindex"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input, status
	v.statusbar.SetWidth(width)
}

// SetMessage shows a note in the status bar.
func (v *View) SetMessage(message string) {
	v.statusbar.SetMessage(message)
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the last search error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the view is in input mode.
func (v *View) InputFocused() bool {
	return v.focusInput
}
