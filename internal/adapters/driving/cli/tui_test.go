package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/messages"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the interactive search UI", tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_HasFlags(t *testing.T) {
	lang := tuiCmd.Flags().Lookup("language")
	require.NotNil(t, lang)
	assert.Equal(t, "l", lang.Shorthand)

	limit := tuiCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "0", limit.DefValue)
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "tui", "extra")

	assert.Error(t, err)
}

func TestTUICmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, err := execute(t, "tui")

	assert.ErrorContains(t, err, "search service not configured")
}

func TestNewTUIApp_SearchesConfiguredServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tuiLanguage = "nl"
	tuiCmd.SetContext(context.Background())

	app, err := newTUIApp(tuiCmd)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	for _, r := range "welkom" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	require.Len(t, app.Results(), 1)
	assert.Equal(t, "nl-home", app.Results()[0].PageID)

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewPage, app.CurrentView())
	require.NotNil(t, app.Page())
	assert.Equal(t, "nl", app.Page().Language)
}
