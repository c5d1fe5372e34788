package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// markupTag matches any markup tag, e.g. <b>, </p>, <a href="x">.
var markupTag = regexp.MustCompile(`<[^>]*>`)

// ExtractContent flattens a page body into a single searchable string.
// Rows and widgets are walked in document order and the text of every
// text, heading and links widget is joined with single spaces.
func ExtractContent(page *domain.PageDocument) string {
	if page == nil || page.Layout == nil {
		return ""
	}

	var parts []string
	for _, row := range page.Layout.Rows {
		for _, widget := range row.Widgets {
			parts = appendWidgetText(parts, widget)
		}
	}
	return strings.Join(parts, " ")
}

// appendWidgetText appends the indexable fragments of one widget.
func appendWidgetText(parts []string, w domain.Widget) []string {
	switch w.Kind() {
	case domain.WidgetText:
		if w.Content != nil {
			parts = append(parts, stripMarkup(*w.Content))
		}
	case domain.WidgetHeading:
		// Headings are assumed markup-free.
		if w.Content != nil {
			parts = append(parts, *w.Content)
		}
	case domain.WidgetLinks:
		for _, item := range w.Items {
			if item.Title != nil {
				parts = append(parts, *item.Title)
			}
			if item.Text != nil {
				parts = append(parts, *item.Text)
			}
		}
	case domain.WidgetOther:
	}
	return parts
}

// stripMarkup removes markup tags, keeping the text between them.
func stripMarkup(s string) string {
	return markupTag.ReplaceAllString(s, "")
}
