package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is how often the UI drains coordinator events and refreshes
// its snapshot. Workers are never read directly.
const pollInterval = 100 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
