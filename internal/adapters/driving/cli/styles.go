package cli

import (
	tuistyles "github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
)

// outputStyles colours command output with the same palette as the TUI.
var outputStyles = tuistyles.DefaultStyles()
