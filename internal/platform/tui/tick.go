// Package tui runs games in the terminal with Bubble Tea, locally or over
// SSH, and provides the variant menu, round picker and scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next step. Holds, restarts and score saves are all
// counted in these ticks.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
