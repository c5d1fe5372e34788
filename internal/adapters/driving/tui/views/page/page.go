// Package page provides the view that shows the index record of one page.
package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

// ErrNoIndexService indicates that no index service was provided.
var ErrNoIndexService = errors.New("index service is required")

const timeLayout = "2006-01-02 15:04:05"

// View shows the stored title, language, path, timestamps and flattened
// content of a page.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	indexService driving.IndexService
	ctx          context.Context

	pageID  string
	page    *domain.IndexedPage
	loading bool
	err     error

	scrollOffset int
	width        int
	height       int
}

// NewView creates an empty page view.
func NewView(s *styles.Styles, km *keymap.KeyMap, indexService driving.IndexService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.PageHelp())

	return &View{
		styles:       s,
		keymap:       km,
		statusbar:    bar,
		indexService: indexService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context lookups run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load clears the view and returns a command that fetches the record.
func (v *View) Load(pageID string) tea.Cmd {
	v.pageID = pageID
	v.page = nil
	v.err = nil
	v.loading = true
	v.scrollOffset = 0

	svc, ctx := v.indexService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.PageLoaded{Err: ErrNoIndexService}
		}
		p, err := svc.GetIndexedPage(ctx, pageID)
		return messages.PageLoaded{Page: p, Err: err}
	}
}

// Update handles messages for the page view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.PageLoaded:
		v.loading = false
		v.page, v.err = msg.Page, msg.Err

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	case key.Matches(msg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// visibleLines is the body height left after the header and status bar.
func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

// buildContent lays out the record fields followed by the wrapped content.
func (v *View) buildContent() []string {
	if v.page == nil {
		return nil
	}

	lines := []string{
		formatField("ID", v.page.PageID),
		formatField("Title", v.page.Title),
		formatField("Language", v.page.Language),
		formatField("Path", v.page.Path),
		formatField("Modified", formatTime(v.page.ModifiedAt)),
		formatField("Indexed", formatTime(v.page.IndexedAt)),
		"",
		"Content:",
	}

	if v.page.Content == "" {
		return append(lines, "  (empty)")
	}

	wrapped := lipgloss.NewStyle().Width(max(v.width-4, 20)).Render(v.page.Content)
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, "  "+strings.TrimRight(line, " "))
	}
	return lines
}

func formatField(label, value string) string {
	return fmt.Sprintf("%-10s %s", label+":", value)
}

// formatTime renders epoch seconds in UTC, or "-" when unset.
func formatTime(sec int64) string {
	if sec <= 0 {
		return "-"
	}
	return time.Unix(sec, 0).UTC().Format(timeLayout)
}

// View renders the page view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Page"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading " + v.pageID + "..."))
	case errors.Is(v.err, domain.ErrNotFound):
		b.WriteString(v.styles.Warning.Render(v.pageID + " is no longer indexed"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.page == nil:
		b.WriteString(v.styles.Muted.Render("No page selected"))
	default:
		lines := v.buildContent()
		end := min(v.scrollOffset+v.visibleLines(), len(lines))
		b.WriteString(strings.Join(lines[v.scrollOffset:end], "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Page returns the loaded record, or nil.
func (v *View) Page() *domain.IndexedPage {
	return v.page
}

// Err returns the lookup error, if any.
func (v *View) Err() error {
	return v.err
}

// Loading returns whether a lookup is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// ScrollOffset returns the first visible body line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
