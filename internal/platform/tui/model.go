package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// Terminals report presses and auto-repeats but no releases. A held
// movement key is released once no repeat arrived within these windows.
const (
	holdFirst  = 500 * time.Millisecond // covers the initial repeat delay
	holdRepeat = 120 * time.Millisecond
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// starter is implemented by games with a title screen.
type starter interface {
	Started() bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	fixedSeed  bool
	inputFrame core.InputFrame
	held       map[core.Action]int // ticks until a held action is released
	keys       KeyMap
	help       help.Model
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game. Games that
// keep a high score are connected to store.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	logger = logging.OrDiscard(logger)

	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	if p, ok := game.(registry.Persistent); ok && store != nil {
		p.SetHighScores(store.HighScores(game.ID(), logger))
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		fixedSeed:  fixed,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
		keys:       DefaultKeyMap(),
		help:       h,
	}
}

// playHeight leaves the last terminal row for the help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.idle() {
			m.backToMenu = true
			return m, tea.Quit
		}
		m.tap(core.ActionPause)
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		m.hold(a)
	default:
		m.tap(a)
	}
	return m, nil
}

// idle reports whether the game is waiting for the player: on the title
// screen, paused or over.
func (m Model) idle() bool {
	if m.gameState.GameOver || m.gameState.Paused {
		return true
	}
	if s, ok := m.game.(starter); ok {
		return !s.Started()
	}
	return false
}

// tap presses and releases a in the same frame.
func (m *Model) tap(a core.Action) {
	m.inputFrame.Set(a)
	m.inputFrame.Release(a)
}

// hold presses a movement action, or extends it on auto-repeat. Pressing
// one direction releases the other.
func (m *Model) hold(a core.Action) {
	other := core.ActionLeft
	if a == core.ActionLeft {
		other = core.ActionRight
	}
	if _, ok := m.held[other]; ok {
		delete(m.held, other)
		delete(m.inputFrame.Actions, other)
		m.inputFrame.Release(other)
	}

	if _, ok := m.held[a]; ok {
		m.held[a] = ticksFor(holdRepeat, m.config.TickRate)
		return
	}
	m.inputFrame.Set(a)
	m.held[a] = ticksFor(holdFirst, m.config.TickRate)
}

// expireHeld counts down held actions and queues the release of expired ones.
func (m *Model) expireHeld() {
	for a, n := range m.held {
		if n <= 1 {
			delete(m.held, a)
			m.inputFrame.Release(a)
			continue
		}
		m.held[a] = n - 1
	}
}

func ticksFor(d time.Duration, tickRate int) int {
	return max(int(d*time.Duration(tickRate)/time.Second), 1)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart without a fixed seed starts a fresh layout and skips the
	// title screen.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.inputFrame.Clear()
		clear(m.held)
		m.inputFrame.Set(core.ActionConfirm)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
	}

	m.inputFrame.Clear()
	m.expireHeld()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game once.
func (m *Model) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Round); err != nil {
		m.logger.Warn("score not saved", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Debug("score saved", "game", m.game.ID(), "score", m.gameState.Score)
}

// saveScreenshot writes the current screen to ~/.arkanoid/screenshots.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arkanoid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the game and the help line.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game until the player quits or goes back. It reports whether
// the player asked for the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
