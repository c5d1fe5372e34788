package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWidgetKind(t *testing.T) {
	tests := []struct {
		input    string
		expected WidgetKind
	}{
		{"text", WidgetText},
		{"heading", WidgetHeading},
		{"links", WidgetLinks},
		{"image", WidgetOther},
		{"divider", WidgetOther},
		{"", WidgetOther},
		{"TEXT", WidgetOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseWidgetKind(tt.input))
		})
	}
}

func TestWidgetKind_String(t *testing.T) {
	assert.Equal(t, "text", WidgetText.String())
	assert.Equal(t, "heading", WidgetHeading.String())
	assert.Equal(t, "links", WidgetLinks.String())
	assert.Equal(t, "other", WidgetOther.String())
	assert.Equal(t, "WidgetKind(42)", WidgetKind(42).String())
}

func TestPageDocument_UnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"id": "welcome",
		"uniqueId": "page-1234",
		"title": "Welcome",
		"language": "en",
		"modified": 1700000000,
		"layout": {
			"columns": 1,
			"rows": [
				{"columns": 1, "widgets": [
					{"type": "heading", "content": "Hello", "level": 1},
					{"type": "links", "items": [{"title": "A", "url": "https://example.com"}]}
				]}
			]
		}
	}`)

	var page PageDocument
	require.NoError(t, json.Unmarshal(data, &page))

	assert.Equal(t, "page-1234", page.ID)
	assert.Equal(t, "Welcome", page.Title)
	assert.Equal(t, "en", page.Language)
	assert.Equal(t, int64(1700000000), page.Modified)
	require.NotNil(t, page.Layout)
	require.Len(t, page.Layout.Rows, 1)
	require.Len(t, page.Layout.Rows[0].Widgets, 2)

	heading := page.Layout.Rows[0].Widgets[0]
	assert.Equal(t, WidgetHeading, heading.Kind())
	require.NotNil(t, heading.Content)
	assert.Equal(t, "Hello", *heading.Content)

	links := page.Layout.Rows[0].Widgets[1]
	assert.Equal(t, WidgetLinks, links.Kind())
	require.Len(t, links.Items, 1)
	require.NotNil(t, links.Items[0].Title)
	assert.Nil(t, links.Items[0].Text)
}

func TestPageDocument_UnmarshalJSON_ModifiedAsString(t *testing.T) {
	var page PageDocument
	require.NoError(t, json.Unmarshal([]byte(`{"uniqueId":"p","modified":"1700000001"}`), &page))
	assert.Equal(t, int64(1700000001), page.Modified)
}

func TestPageDocument_UnmarshalJSON_NoModified(t *testing.T) {
	var page PageDocument
	require.NoError(t, json.Unmarshal([]byte(`{"uniqueId":"p"}`), &page))
	assert.Zero(t, page.Modified)
	assert.Nil(t, page.Layout)
}

func TestPageDocument_UnmarshalJSON_BadModified(t *testing.T) {
	var page PageDocument
	err := json.Unmarshal([]byte(`{"uniqueId":"p","modified":"yesterday"}`), &page)
	require.Error(t, err)
}
