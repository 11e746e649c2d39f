// Package arkanoid is the playable game: it builds the simulation from the
// configuration, adds the title screen, pause, per-round time limit and
// high score, and exposes everything through registry.Game.
package arkanoid

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/game"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/round"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
)

// Settings shared by every variant, set from the command line.
var (
	configPath string
	startRound int
	logger     = logging.Discard()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetStartRound makes new games begin at round n. Zero means round 1.
func SetStartRound(n int) {
	startRound = n
}

// SetLogger sets the logger used by new games. nil discards.
func SetLogger(l *log.Logger) {
	logger = logging.OrDiscard(l)
}

// RoundNames returns the names of the configured rounds in play order.
func RoundNames() []string {
	cfg, err := config.LoadArkanoid(configPath)
	if err != nil {
		cfg = config.DefaultArkanoidConfig()
	}
	names := make([]string, len(cfg.Rounds))
	for i, r := range cfg.Rounds {
		names[i] = r.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Round %d", i+1)
		}
	}
	return names
}

func init() {
	registry.Register("arkanoid", func() registry.Game { return New(config.DifficultyNormal) })
	registry.Register("arkanoid_easy", func() registry.Game { return New(config.DifficultyEasy) })
	registry.Register("arkanoid_hard", func() registry.Game { return New(config.DifficultyHard) })
}

// App is one playable variant.
type App struct {
	preset  config.DifficultyPreset
	cfg     config.ArkanoidConfig
	cfgSet  bool
	runtime core.RuntimeConfig
	logger  *log.Logger

	rnd     *core.SimpleRNG
	catalog *round.Catalog
	game    *game.Game

	scores    registry.HighScores
	highScore int
	saved     bool

	startAt    int
	started    bool
	paused     bool
	roundNum   int
	roundTicks int
}

var (
	_ registry.Persistent      = (*App)(nil)
	_ registry.RoundSelectable = (*App)(nil)
)

// New creates a variant with the given difficulty. The configuration is
// loaded on Reset.
func New(preset config.DifficultyPreset) *App {
	return &App{preset: preset}
}

// NewWithConfig creates a game that uses cfg as is, ignoring config files
// and presets.
func NewWithConfig(cfg config.ArkanoidConfig) *App {
	return &App{preset: config.DifficultyNormal, cfg: cfg, cfgSet: true}
}

// ID returns the variant's identifier.
func (a *App) ID() string {
	if a.preset == config.DifficultyNormal || a.preset == "" {
		return "arkanoid"
	}
	return "arkanoid_" + string(a.preset)
}

// Title returns the display name.
func (a *App) Title() string {
	switch a.preset {
	case config.DifficultyEasy:
		return "Arkanoid (Easy)"
	case config.DifficultyHard:
		return "Arkanoid (Hard)"
	}
	return "Arkanoid"
}

// SetHighScores connects the high-score store. The high score is loaded
// right away and saved whenever a game ends with a better score.
func (a *App) SetHighScores(hs registry.HighScores) {
	a.scores = hs
	if hs != nil {
		a.highScore = hs.LoadHighScore()
	}
}

// StartAt makes games of this variant begin at round n, overriding
// SetStartRound. Zero clears the override.
func (a *App) StartAt(n int) {
	a.startAt = n
}

// Reset starts a new game on the title screen.
func (a *App) Reset(runtime core.RuntimeConfig) {
	a.runtime = runtime
	a.logger = logger.With("game", a.ID())

	if !a.cfgSet {
		cfg, err := config.LoadArkanoid(configPath)
		if err != nil {
			a.logger.Warn("config not loaded, using defaults", "err", err)
			cfg = config.DefaultArkanoidConfig()
		}
		config.ApplyPreset(&cfg, a.preset)
		a.cfg = cfg
	}
	if runtime.TickRate > 0 {
		a.cfg.Display.TickRate = runtime.TickRate
	}

	a.rnd = core.NewSimpleRNG(runtime.Seed)
	a.catalog = round.NewCatalog(a.cfg, a.rnd, a.logger)
	first, err := a.firstRound()
	if err != nil {
		a.logger.Error("round 1 cannot be built, using default rounds", "err", err)
		a.cfg.Rounds = config.DefaultArkanoidConfig().Rounds
		a.catalog = round.NewCatalog(a.cfg, a.rnd, a.logger)
		if first, err = a.catalog.Build(1); err != nil {
			panic(fmt.Sprintf("arkanoid: built-in round 1 cannot be built: %v", err))
		}
	}

	a.game = game.New(a.cfg, first,
		game.WithRand(a.rnd),
		game.WithLogger(a.logger),
	)

	a.started = false
	a.paused = false
	a.saved = false
	a.roundNum = first.Number
	a.roundTicks = 0
}

// firstRound builds the configured start round. A start round that cannot
// be resolved is logged and round 1 is used instead.
func (a *App) firstRound() (*round.Round, error) {
	n := a.startAt
	if n == 0 {
		n = startRound
	}
	if n == 0 {
		n = 1
	}
	r, err := a.catalog.Build(n)
	if err == nil {
		return r, nil
	}
	a.logger.Error("start round ignored", "round", n, "err", err)
	return a.catalog.Build(1)
}

// Step advances the game by one tick.
func (a *App) Step(in core.InputFrame) core.StepResult {
	switch {
	case !a.started:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			a.started = true
			a.logger.Info("game started", "round", a.roundNum)
		}
	case a.game.Over():
		a.finish()
		if in.Has(core.ActionRestart) {
			a.Reset(a.runtime)
			a.started = true
		}
	default:
		if in.Has(core.ActionPause) {
			a.paused = !a.paused
		}
		if !a.paused {
			a.tick(in)
		}
	}
	return core.StepResult{State: a.State()}
}

func (a *App) tick(in core.InputFrame) {
	g := a.game
	g.Receiver().DispatchFrame(in)
	g.Update()

	if n := g.Round().Number; n != a.roundNum {
		a.roundNum = n
		a.roundTicks = 0
	}
	if g.StateName() == "round_play" {
		a.roundTicks++
		if limit := a.timeLimitTicks(); limit > 0 && a.roundTicks >= limit {
			g.EndGame("time limit")
		}
	}
	if g.Over() {
		a.finish()
	}
}

// finish records the high score once per game.
func (a *App) finish() {
	if a.saved {
		return
	}
	a.saved = true
	score := a.game.Score()
	if score <= a.highScore {
		return
	}
	a.highScore = score
	if a.scores != nil {
		a.scores.SaveHighScore(score)
	}
	a.logger.Info("new high score", "score", score)
}

func (a *App) timeLimitTicks() int {
	return a.cfg.Gameplay.TimeLimit * a.cfg.Display.TickRate
}

// TimeLeft returns the seconds left in the round, or -1 without a limit.
func (a *App) TimeLeft() int {
	limit := a.timeLimitTicks()
	if limit <= 0 {
		return -1
	}
	left := limit - a.roundTicks
	if left < 0 {
		left = 0
	}
	return (left + a.cfg.Display.TickRate - 1) / a.cfg.Display.TickRate
}

// State returns the status reported to the platform.
func (a *App) State() core.GameState {
	if a.game == nil {
		return core.GameState{HighScore: a.highScore}
	}
	return core.GameState{
		Score:     a.game.Score(),
		HighScore: max(a.highScore, a.game.Score()),
		Lives:     a.game.Lives(),
		Round:     a.game.Round().Number,
		GameOver:  a.game.Over(),
		Paused:    a.paused,
	}
}

// Started reports whether the title screen was dismissed.
func (a *App) Started() bool { return a.started }

// Game exposes the simulation.
func (a *App) Game() *game.Game { return a.game }

// Config returns the configuration in use.
func (a *App) Config() config.ArkanoidConfig { return a.cfg }
