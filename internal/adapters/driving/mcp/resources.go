package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

const (
	uriScheme = "pageindex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Index == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Number of indexed pages",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}",
		Name:        "indexed-page",
		Description: "Index record of a page: title, path and flattened content",
		MIMEType:    "application/json",
	}, s.handlePageResource)
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	count, err := s.ports.Index.IndexedCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	return jsonResource(req.Params.URI, map[string]int{"indexed": count})
}

func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// pageindex://pages/{pageId}
	pageID := extractPageID(req.Params.URI)
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Index.GetIndexedPage(ctx, pageID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	type pageInfo struct {
		PageID     string `json:"page_id"`
		Language   string `json:"language"`
		Title      string `json:"title"`
		Path       string `json:"path"`
		Content    string `json:"content"`
		ModifiedAt int64  `json:"modified_at"`
		IndexedAt  int64  `json:"indexed_at"`
	}
	return jsonResource(req.Params.URI, pageInfo{
		PageID:     page.PageID,
		Language:   page.Language,
		Title:      page.Title,
		Path:       page.Path,
		Content:    page.Content,
		ModifiedAt: page.ModifiedAt,
		IndexedAt:  page.IndexedAt,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPageID extracts the page ID from a URI like pageindex://pages/{pageId}.
func extractPageID(uri string) string {
	const prefix = uriScheme + "pages/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
