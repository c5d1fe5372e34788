package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index [page-id]", indexCmd.Use)
	assert.Equal(t, "reindex", reindexCmd.Use)
	assert.Equal(t, "remove [page-id]", removeCmd.Use)
	assert.Equal(t, "clear", clearCmd.Use)
}

func TestIndexCmd_IndexesPage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, testStore.DeleteAll(context.Background()))

	out, err := execute(t, "index", "hr")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed hr (en)")
	page, err := testStore.Get(context.Background(), "hr")
	require.NoError(t, err)
	assert.Equal(t, "Human Resources", page.Title)
}

func TestIndexCmd_LanguageFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "index", "-l", "nl", "nl-home")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed nl-home (nl)")
}

func TestIndexCmd_UsesConfiguredLanguage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.SetValue("search.default_language", "nl"))

	out, err := execute(t, "index", "nl-home")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed nl-home (nl)")
}

func TestIndexCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "index", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page missing not found in en")
}

func TestIndexCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexService = nil

	for _, args := range [][]string{{"index", "hr"}, {"reindex"}, {"remove", "hr"}, {"clear"}, {"show", "hr"}, {"status"}} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "index service not configured")
	}
}

func TestReindexCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "reindex")

	require.NoError(t, err)
	assert.Contains(t, out, "Reindexed en: 2 indexed, 0 errors")
	assert.Contains(t, out, "Run: ")
}

func TestReindexCmd_ClearDropsOtherLanguages(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "reindex", "--clear")

	require.NoError(t, err)
	n, err := testStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReindexCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "reindex", "--json", "-l", "nl")

	require.NoError(t, err)
	var result domain.IndexAllResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "nl", result.Language)
	assert.Equal(t, 1, result.Indexed)
	assert.NotEmpty(t, result.RunID)
}

func TestRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "remove", "hr")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed hr from the index")

	_, err = testStore.Get(context.Background(), "hr")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing again succeeds.
	_, err = execute(t, "remove", "hr")
	assert.NoError(t, err)
}

func TestClearCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "Index cleared")
	n, err := testStore.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "show", "hr")

	require.NoError(t, err)
	assert.Contains(t, out, "Human Resources")
	assert.Contains(t, out, "Language: en")
	assert.Contains(t, out, "Path:     en/hr")
	assert.Contains(t, out, "Modified: 1970-01-01T00:03:20Z")
	assert.Contains(t, out, "Ask the test team about leave.")
}

func TestShowCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "show", "--json", "test")

	require.NoError(t, err)
	var page domain.IndexedPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "Test Page", page.Title)
}

func TestShowCmd_NotIndexed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page missing is not indexed")
}

func TestStatusCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed pages: 3")
	assert.Contains(t, out, "Storage:")
	assert.Contains(t, out, "Pages:         ./pages")
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "-", formatEpoch(0))
	assert.Equal(t, "1970-01-01T00:00:01Z", formatEpoch(1))
}
