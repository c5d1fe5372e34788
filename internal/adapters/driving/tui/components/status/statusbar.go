// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
)

// State is what the status bar reports on its left side.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Bar displays the search state and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	language    string
	resultCount int
	hints       []key.Binding
	width       int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		hints:  km.InputHelp(),
		width:  80,
	}
}

// View renders the state on the left and hints on the right.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Hints give way to the state when both do not fit.
	room := s.width - 2
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > room {
		right = ""
	}
	padding := max(room-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateSearching:
		left = "Searching..."
	case StateError:
		left = "Error"
		if s.message != "" {
			left = "Error: " + s.message
		}
		return s.styles.Error.Render(left)
	case StateResults:
		left = fmt.Sprintf("%d result(s)", s.resultCount)
	default:
		left = "Ready"
	}
	if s.message != "" {
		left += " · " + s.message
	}
	if s.language != "" {
		left = "[" + s.language + "] " + left
	}
	return s.styles.Muted.Render(left)
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a note shown next to the state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current note.
func (s *Bar) Message() string {
	return s.message
}

// SetLanguage sets the language shown in front of the state.
func (s *Bar) SetLanguage(language string) {
	s.language = language
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetHints replaces the keybinding hints.
func (s *Bar) SetHints(hints []key.Binding) {
	s.hints = hints
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
