// Package tui provides the Bubble Tea host for starfall scenes.
// It owns the terminal loop, held-key tracking, pointer and focus events,
// and colour rendering of the scene's cell buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a scene simulation tick.
type TickMsg time.Time

// tickInterval is the wall-clock period of one tick.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// holdTicks converts a hold duration into a whole number of ticks, at least one.
func holdTicks(hold time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := (int64(hold)*int64(tickRate) + int64(time.Second) - 1) / int64(time.Second)
	return max(int(n), 1)
}
