package mcp

import (
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Index maintains the index. Optional; without it the server is read-only.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
