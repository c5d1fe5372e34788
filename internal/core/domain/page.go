package domain

import (
	"encoding/json"
	"fmt"
)

// WidgetKind is the closed set of widget types the index understands.
// Every widget type string that is not text, heading or links decodes to
// WidgetOther.
type WidgetKind int

const (
	// WidgetOther covers image, divider, video and any future widget type.
	WidgetOther WidgetKind = iota

	// WidgetText is a rich text block; markup is stripped before indexing.
	WidgetText

	// WidgetHeading is a heading; its content is indexed verbatim.
	WidgetHeading

	// WidgetLinks is a list of link items.
	WidgetLinks
)

// String returns the JSON type name of the widget kind.
func (k WidgetKind) String() string {
	switch k {
	case WidgetText:
		return "text"
	case WidgetHeading:
		return "heading"
	case WidgetLinks:
		return "links"
	case WidgetOther:
		return "other"
	default:
		return fmt.Sprintf("WidgetKind(%d)", int(k))
	}
}

// ParseWidgetKind maps a widget type string onto a WidgetKind.
func ParseWidgetKind(s string) WidgetKind {
	switch s {
	case "text":
		return WidgetText
	case "heading":
		return WidgetHeading
	case "links":
		return WidgetLinks
	default:
		return WidgetOther
	}
}

// PageDocument is a structured page as served by a page provider.
type PageDocument struct {
	// ID is the page's unique identifier (the "uniqueId" of the page file).
	ID string `json:"uniqueId"`

	// Title is the display title. Empty when the page has none.
	Title string `json:"title,omitempty"`

	// Language is the language folder the page lives in.
	Language string `json:"language,omitempty"`

	// Path is the navigation path of the page, e.g. "en/departments/hr".
	Path string `json:"path,omitempty"`

	// Modified is the last-modified time in epoch seconds. Zero means unknown.
	Modified int64 `json:"modified,omitempty"`

	// Layout holds the rows of widgets. Nil when the page has no body.
	Layout *Layout `json:"layout,omitempty"`
}

// Layout is the body of a page.
type Layout struct {
	Rows []Row `json:"rows,omitempty"`
}

// Row is one horizontal band of widgets.
type Row struct {
	Widgets []Widget `json:"widgets,omitempty"`
}

// Widget is a typed content block within a row.
// Content and the link item fields are pointers so that a missing field
// can be told apart from an empty one.
type Widget struct {
	Type    string     `json:"type"`
	Content *string    `json:"content,omitempty"`
	Items   []LinkItem `json:"items,omitempty"`
}

// Kind returns the widget's kind.
func (w Widget) Kind() WidgetKind {
	return ParseWidgetKind(w.Type)
}

// LinkItem is a single entry of a links widget.
type LinkItem struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
	URL   string  `json:"url,omitempty"`
}

// UnmarshalJSON decodes a page, tolerating "modified" given as a number or
// a numeric string.
func (p *PageDocument) UnmarshalJSON(data []byte) error {
	type alias PageDocument
	aux := struct {
		*alias
		Modified json.Number `json:"modified,omitempty"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Modified = 0
	if aux.Modified != "" {
		n, err := aux.Modified.Int64()
		if err != nil {
			return fmt.Errorf("%w: modified %q", ErrInvalidInput, aux.Modified)
		}
		p.Modified = n
	}
	return nil
}
