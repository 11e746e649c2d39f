package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames  []core.InputFrame
	state   core.GameState
	started bool
	resets  int
	startAt int
	scores  registry.HighScores
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Started() bool { return g.started }
func (g *fakeGame) StartAt(n int) { g.startAt = n }
func (g *fakeGame) SetHighScores(hs registry.HighScores) { g.scores = hs }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

var lastFake *fakeGame

func init() {
	registry.Register("fake", func() registry.Game {
		lastFake = &fakeGame{}
		return lastFake
	})
}

var testCfg = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m = send(t, m, TickMsg{})
	}
	return m
}

func firstRelease(frames []core.InputFrame, a core.Action) int {
	for i, f := range frames {
		if f.Released(a) {
			return i
		}
	}
	return -1
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{runes("s"), core.ActionSpecial},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{runes("q"), core.ActionNone},
		{runes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestHeldKeyReleasedAfterTimeout(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), tea.KeyMsg{Type: tea.KeyLeft})
	m = ticks(t, m, 40)

	require.True(t, g.frames[0].Has(core.ActionLeft))
	assert.Equal(t, ticksFor(holdFirst, testCfg.TickRate), firstRelease(g.frames, core.ActionLeft))
	_, held := m.held[core.ActionLeft]
	assert.False(t, held)
}

func TestRepeatExtendsHold(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 10)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 40)

	presses := 0
	for _, f := range g.frames {
		if f.Has(core.ActionRight) {
			presses++
		}
	}
	assert.Equal(t, 1, presses, "a repeat is not a new press")
	assert.Equal(t, 10+ticksFor(holdRepeat, testCfg.TickRate), firstRelease(g.frames, core.ActionRight))
}

func TestOppositeDirectionReleases(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), tea.KeyMsg{Type: tea.KeyLeft})
	m = ticks(t, m, 1)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	ticks(t, m, 1)

	require.Len(t, g.frames, 2)
	assert.True(t, g.frames[1].Released(core.ActionLeft))
	assert.True(t, g.frames[1].Has(core.ActionRight))
	assert.False(t, g.frames[1].Has(core.ActionLeft))
}

func TestQuickDirectionChangeDropsPress(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil),
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyRight},
	)
	ticks(t, m, 1)

	assert.False(t, g.frames[0].Has(core.ActionLeft))
	assert.True(t, g.frames[0].Has(core.ActionRight))
}

func TestTapPressesAndReleases(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), runes(" "), runes("s"))
	ticks(t, m, 2)

	for _, a := range []core.Action{core.ActionFire, core.ActionSpecial} {
		assert.True(t, g.frames[0].Has(a), a.String())
		assert.True(t, g.frames[0].Released(a), a.String())
		assert.False(t, g.frames[1].Has(a), a.String())
	}
}

func TestBackOnlyWhenIdle(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), tea.KeyMsg{Type: tea.KeyEsc})
	m = ticks(t, m, 1)
	assert.False(t, m.BackToMenu())
	assert.True(t, g.frames[0].Has(core.ActionPause), "esc pauses a running game")

	g.state.Paused = true
	m = ticks(t, m, 1)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.Empty(t, m.View())
}

func TestBackFromTitleScreen(t *testing.T) {
	m := send(t, NewModel(&fakeGame{}, nil, testCfg, nil), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
}

func TestQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testCfg, nil)
	next, cmd := m.Update(runes("q"))
	assert.True(t, next.(Model).IsQuitting())
	assert.NotNil(t, cmd)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreSavedOncePerGameOver(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{started: true, state: core.GameState{Score: 1200, Round: 2, GameOver: true}}
	m := NewModel(g, store, testCfg, nil)
	require.NotNil(t, g.scores, "high scores connected to the store")

	m = ticks(t, m, 3)
	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 1200, scores[0].Score)
	assert.Equal(t, 2, scores[0].Round)

	g.state.GameOver = false
	m = ticks(t, m, 1)
	g.state.GameOver = true
	ticks(t, m, 2)
	scores, _ = store.TopScores("fake", 10)
	assert.Len(t, scores, 2)
}

func TestZeroScoreNotSaved(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{GameOver: true}}
	ticks(t, NewModel(g, store, testCfg, nil), 2)

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRestartReseedsAndSkipsTitle(t *testing.T) {
	cfg := testCfg
	cfg.Seed = 0
	g := &fakeGame{started: true, state: core.GameState{GameOver: true}}
	m := ticks(t, NewModel(g, nil, cfg, nil), 1)

	m = send(t, m, runes("r"))
	ticks(t, m, 1)
	assert.Equal(t, 1, g.resets)
	assert.True(t, g.frames[1].Has(core.ActionConfirm))
}

func TestRestartWithFixedSeedIsLeftToGame(t *testing.T) {
	g := &fakeGame{started: true, state: core.GameState{GameOver: true}}
	m := ticks(t, NewModel(g, nil, testCfg, nil), 1)

	m = send(t, m, runes("r"))
	ticks(t, m, 1)
	assert.Zero(t, g.resets)
	assert.True(t, g.frames[1].Has(core.ActionRestart))
}

func TestResizeKeepsGame(t *testing.T) {
	g := &fakeGame{started: true}
	m := send(t, NewModel(g, nil, testCfg, nil), tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Zero(t, g.resets)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 39, m.screen.Height())
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, testCfg, []string{"One", "Two"}, nil)
	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenRounds, s.screen)

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	require.NotNil(t, lastFake)
	assert.Equal(t, 2, lastFake.startAt)
	assert.Equal(t, 1, lastFake.resets)

	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)

	step(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, s.screen)
	assert.Contains(t, s.View(), "No scores recorded yet")

	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)

	step(runes("q"))
	assert.True(t, s.quitting)
}

func TestRoundPickerSkippedForOneRound(t *testing.T) {
	s := NewSessionModel(nil, testCfg, []string{"Only"}, nil)
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	assert.Equal(t, screenGame, s.screen)
	assert.Zero(t, lastFake.startAt)
}
