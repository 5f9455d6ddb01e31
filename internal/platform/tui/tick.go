// Package tui provides the Bubble Tea front-end for the arcade and the
// SSH server that hands every session its own cabinet.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status line stays up.
const statusTTL = 2 * time.Second

// clearStatusMsg removes the status line set at the stamped time.
type clearStatusMsg time.Time

// clearStatusCmd schedules removal of the current status line.
func clearStatusCmd(set time.Time) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg(set)
	})
}
