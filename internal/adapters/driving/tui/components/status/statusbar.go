// Package status provides the status bar of the annotator TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// State is what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateInfo    State = "info"
	StateError   State = "error"
)

// Bar displays the last outcome, session progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	bar      progress.Model
	state    State
	message  string
	progress domain.Progress
	width    int
}

// NewBar creates a new status bar.
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
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	middle := s.renderProgress()
	right := s.renderHints()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 2
	if padding < 2 {
		padding = 2
	}
	gap := strings.Repeat(" ", padding/2)

	return s.styles.StatusBar.Width(s.width).Render(left + gap + middle + gap + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateWorking:
		return s.styles.Muted.Render("Saving...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateInfo:
		return s.styles.Success.Render(s.message)
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) renderProgress() string {
	p := s.progress
	return fmt.Sprintf("%s %d/%d (%.2f%%)",
		s.bar.ViewAs(p.CompletionPercentage/100), p.AnnotatedChunks, p.TotalChunks, p.CompletionPercentage)
}

func (s *Bar) renderHints() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the state and its message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetProgress sets the session progress shown in the middle.
func (s *Bar) SetProgress(p domain.Progress) {
	s.progress = p
}

// Progress returns the displayed progress.
func (s *Bar) Progress() domain.Progress {
	return s.progress
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
