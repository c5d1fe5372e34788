package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
	assert.Contains(t, b.View(), "enter: search")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Bar)
		contains string
	}{
		{name: "searching", setup: func(b *Bar) { b.SetState(StateSearching) }, contains: "Searching..."},
		{name: "results", setup: func(b *Bar) {
			b.SetState(StateResults)
			b.SetResultCount(4)
		}, contains: "4 result(s)"},
		{name: "error", setup: func(b *Bar) {
			b.SetState(StateError)
			b.SetMessage("store closed")
		}, contains: "Error: store closed"},
		{name: "bare error", setup: func(b *Bar) { b.SetState(StateError) }, contains: "Error"},
		{name: "language", setup: func(b *Bar) { b.SetLanguage("nl") }, contains: "[nl] Ready"},
		{name: "note", setup: func(b *Bar) { b.SetMessage("page not indexed") }, contains: "Ready · page not indexed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, nil)
			b.SetWidth(120)
			tt.setup(b)
			assert.Contains(t, b.View(), tt.contains)
		})
	}
}

func TestBar_SetHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	b := NewBar(nil, km)
	b.SetWidth(120)

	b.SetHints(km.PageHelp())

	assert.Contains(t, b.View(), "esc: back")
	assert.NotContains(t, b.View(), "enter: search")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateResults)
	b.SetResultCount(3)
	b.SetMessage("note")

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, 0, b.ResultCount())
	assert.Equal(t, "", b.Message())
}

func TestBar_NarrowDropsHints(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(30)
	b.SetMessage("page details unavailable")

	view := b.View()

	assert.Contains(t, view, "page details unavailable")
	assert.NotContains(t, view, "enter: search")
}
