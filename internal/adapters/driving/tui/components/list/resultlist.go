// Package list provides the navigable result list for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// linesPerResult is the height budget of one rendered result.
const linesPerResult = 3

// ResultList displays search results with the matched query marked.
type ResultList struct {
	results  []domain.SearchResult
	query    string
	selected int
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles, km *keymap.KeyMap) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &ResultList{
		styles: s,
		keymap: km,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update moves the selection on up and down keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, r.keymap.Up):
			r.MoveUp()
		case key.Matches(msg, r.keymap.Down):
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		if r.query == "" {
			return r.styles.Muted.Render("Type a query and press enter")
		}
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*linesPerResult+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	visible := max((r.height-2)/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one result as a title line, its path and the first
// content snippet.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := Truncate(result.Title, max(r.width-12, 10))
	score := fmt.Sprintf("(%d)", result.Score)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator+title) + " " + r.styles.Score.Render(score)
	} else {
		titleLine = indicator + styles.Mark(title, r.query, r.styles.Highlight) + " " + r.styles.Score.Render(score)
	}

	out := []string{titleLine}
	if result.Path != "" {
		out = append(out, "    "+r.styles.Path.Render(Truncate(result.Path, max(r.width-6, 10))))
	}
	if snippet := firstSnippet(result); snippet != "" {
		snippet = Truncate(snippet, max(r.width-6, 20))
		out = append(out, "    "+styles.Mark(snippet, r.query, r.styles.Highlight))
	}
	return strings.Join(out, "\n")
}

// firstSnippet returns the text of the first content match, if any.
func firstSnippet(result *domain.SearchResult) string {
	for _, m := range result.Matches {
		if m.Type == domain.MatchContent {
			return m.Text
		}
	}
	return ""
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the results for query and selects the first one.
func (r *ResultList) SetResults(query string, results []domain.SearchResult) {
	r.query = query
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Query returns the query the results belong to.
func (r *ResultList) Query() string {
	return r.query
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}
