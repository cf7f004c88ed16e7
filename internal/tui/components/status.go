package components

import (
	"strings"

	"github.com/Veraticus/gallery/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the notice line at the bottom of the screen.
type StatusBar struct {
	Theme  themes.Theme
	Notice string
	Hint   string
	Width  int
}

// View renders the bar.
func (s StatusBar) View() string {
	left := ""
	if s.Notice != "" {
		style := s.Theme.StatusSuccess
		if isFailure(s.Notice) {
			style = s.Theme.StatusError
		}
		left = style.Render(s.Notice)
	}
	right := s.Theme.Faint.Render(s.Hint)

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func isFailure(notice string) bool {
	return strings.HasPrefix(notice, "Could not")
}
