// Package tui provides the Bubble Tea front end for the brush stage: the
// interactive model, the selection history browser, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long a status notice stays on screen.
const noticeTTL = 3 * time.Second

// clearNoticeMsg expires the notice with the given sequence number.
type clearNoticeMsg struct {
	seq int
}

// clearNoticeCmd returns a command that expires notice seq after noticeTTL.
func clearNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
