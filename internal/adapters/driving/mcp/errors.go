// Package mcp provides an MCP (Model Context Protocol) server adapter for pageindex.
// It lets AI assistants search the page index and keep it up to date.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrIndexingUnavailable is returned by indexing tools when no index service is wired.
var ErrIndexingUnavailable = errors.New("mcp: index service is not configured")
