package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

func TestExtractContent_NilPage(t *testing.T) {
	assert.Equal(t, "", ExtractContent(nil))
}

func TestExtractContent_NoLayout(t *testing.T) {
	page := &domain.PageDocument{ID: "p", Title: "Only a title"}
	assert.Equal(t, "", ExtractContent(page))
}

func TestExtractContent_EmptyRowsAndWidgets(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{{}, {Widgets: nil}}}}
	assert.Equal(t, "", ExtractContent(page))
}

func TestExtractContent_TextStripsMarkup(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{{Type: "text", Content: strPtr("<b>Hi</b> there")}}},
	}}}
	assert.Equal(t, "Hi there", ExtractContent(page))
}

func TestExtractContent_HeadingVerbatim(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{{Type: "heading", Content: strPtr("<i>Welcome</i>")}}},
	}}}
	assert.Equal(t, "<i>Welcome</i>", ExtractContent(page))
}

func TestExtractContent_Links(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{{Type: "links", Items: []domain.LinkItem{
			{Title: strPtr("A"), Text: strPtr("B")},
		}}}},
	}}}
	assert.Equal(t, "A B", ExtractContent(page))
}

func TestExtractContent_LinksPartialItems(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{{Type: "links", Items: []domain.LinkItem{
			{Title: strPtr("Intranet"), URL: "https://intra"},
			{Text: strPtr("Only text")},
			{URL: "https://nothing"},
		}}}},
	}}}
	assert.Equal(t, "Intranet Only text", ExtractContent(page))
}

func TestExtractContent_IgnoresOtherWidgets(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{
			{Type: "image", Content: strPtr("ignored.png")},
			{Type: "divider"},
			{Type: "text"},
		}},
	}}}
	assert.Equal(t, "", ExtractContent(page))
}

func TestExtractContent_DocumentOrder(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{
			{Type: "heading", Content: strPtr("Title")},
			{Type: "text", Content: strPtr("<p>First</p>")},
		}},
		{Widgets: []domain.Widget{
			{Type: "links", Items: []domain.LinkItem{{Title: strPtr("L1"), Text: strPtr("T1")}}},
			{Type: "text", Content: strPtr("Last")},
		}},
	}}}
	assert.Equal(t, "Title First L1 T1 Last", ExtractContent(page))
}

func TestExtractContent_EmptyFragmentsKept(t *testing.T) {
	page := &domain.PageDocument{Layout: &domain.Layout{Rows: []domain.Row{
		{Widgets: []domain.Widget{
			{Type: "text", Content: strPtr("a")},
			{Type: "text", Content: strPtr("")},
			{Type: "text", Content: strPtr("b")},
		}},
	}}}
	assert.Equal(t, "a  b", ExtractContent(page))
}
