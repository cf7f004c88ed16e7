package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// notifier delivers notices from command goroutines to the update loop.
// Notices are dropped when the buffer is full.
type notifier chan string

func newNotifier() notifier {
	return make(notifier, 16)
}

// Notify implements service.Notifier.
func (n notifier) Notify(message string) {
	select {
	case n <- message:
	default:
	}
}

// wait blocks for the next notice. The update loop re-arms it after every
// notice it receives.
func (n notifier) wait() tea.Cmd {
	return func() tea.Msg {
		return notificationMsg{text: <-n}
	}
}
