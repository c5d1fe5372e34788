// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// PageSelected asks for the index record of a result.
type PageSelected struct {
	PageID string
}

// PageLoaded carries an index record back to the model.
type PageLoaded struct {
	Page *domain.IndexedPage
	Err  error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the query input and results view.
	ViewSearch ViewType = iota
	// ViewPage shows the index record of one page.
	ViewPage
	// ViewHelp lists the keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewPage:
		return "page"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit asks the program to exit.
type Quit struct{}
