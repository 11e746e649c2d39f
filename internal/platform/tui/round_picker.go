package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// RoundPickerModel lets the player choose the round a game starts at.
type RoundPickerModel struct {
	names    []string
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	back     key.Binding
	help     help.Model
	chosen   int // 1-based, 0 while choosing
	quitting bool
	goBack   bool
}

// NewRoundPickerModel creates a picker over the given round names.
func NewRoundPickerModel(names []string, width, height int) RoundPickerModel {
	h := help.New()
	h.Width = width
	return RoundPickerModel{
		names:  names,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		help: h,
	}
}

// Init initializes the model.
func (m RoundPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RoundPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m RoundPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.back):
		m.goBack = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.names) > 0 {
			m.chosen = m.cursor + 1
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the round list.
func (m RoundPickerModel) View() string {
	if m.quitting || m.goBack || m.chosen > 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT ROUND"), m.width))
	b.WriteString("\n\n")

	for i, name := range m.names {
		line := fmt.Sprintf("  %2d. %s", i+1, name)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %2d. %s", i+1, name))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.ShortHelpView([]key.Binding{
		m.keys.Up, m.keys.Down, m.keys.Select, m.back, m.keys.Quit,
	})), m.width))
	return b.String()
}

// Chosen returns the chosen round number, or 0 if none was chosen.
func (m RoundPickerModel) Chosen() int {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m RoundPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m RoundPickerModel) WantsBack() bool {
	return m.goBack
}

// RunRoundPicker asks for the start round. A single round is chosen
// without asking. It returns 0 when the player backed out or quit.
func RunRoundPicker(names []string, cfg core.RuntimeConfig) (int, error) {
	if len(names) <= 1 {
		return len(names), nil
	}

	p := tea.NewProgram(
		NewRoundPickerModel(names, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(RoundPickerModel)
	if !ok {
		return 0, nil
	}
	return m.Chosen(), nil
}
