// Package tui provides the interactive terminal search interface for pageindex.
// It is a driving adapter over the search and index services.
package tui

import (
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the TUI uses.
type Ports struct {
	// Search runs queries. Required.
	Search driving.SearchService

	// Index looks up the record behind a result. Optional; without it
	// results cannot be opened.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
