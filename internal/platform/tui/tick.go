// Package tui provides the Bubble Tea front end for the game.
// It pumps the engine from the frame clock, maps keys to engine commands
// and draws engine snapshots to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame to advance the simulation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the milliseconds between two frame timestamps. The
// first frame has no predecessor and advances nothing.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() || now.Before(prev) {
		return 0
	}
	return float64(now.Sub(prev)) / float64(time.Millisecond)
}
