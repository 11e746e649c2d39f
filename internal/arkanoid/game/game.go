// Package game runs a game of arkanoid: the orchestration states that
// sequence rounds and lives, and the glue between ball, paddle, enemies,
// bricks, power-ups and the special item.
//
// Every tick runs in a fixed order: the current state, the round's doors,
// the paddle, each ball, each enemy, then falling power-ups and the special
// item.
package game

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/ball"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/enemy"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/paddle"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/round"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

// State is one orchestration phase. A state's constructor performs its
// entry actions; Update runs once per tick.
type State interface {
	Name() string
	Update()
}

// Game is a running game.
type Game struct {
	cfg      config.ArkanoidConfig
	lib      *anim.Library
	rnd      core.Rand
	logger   *log.Logger
	receiver *core.Receiver
	area     core.Rect

	round   *round.Round
	paddle  *paddle.Paddle
	balls   []*ball.Ball
	enemies []*enemy.Enemy
	peers   *enemy.Set

	powerups []*PowerUp
	active   *PowerUp

	specialBrick *round.Brick
	item         *SpecialItem
	specialReady bool
	specialUsed  bool
	flash        int

	score int
	lives int
	over  bool
	ticks int
	state State

	keysDown    int
	onMoveLeft  *core.Handler
	onMoveRight *core.Handler
	onStop      *core.Handler
	onSpecial   *core.Handler
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source.
func WithRand(r core.Rand) Option {
	return func(g *Game) { g.rnd = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithReceiver sets the input receiver the game registers its handlers on.
func WithReceiver(r *core.Receiver) Option {
	return func(g *Game) { g.receiver = r }
}

// WithLibrary sets the animation library.
func WithLibrary(l *anim.Library) Option {
	return func(g *Game) { g.lib = l }
}

// WithLives overrides the configured number of lives.
func WithLives(n int) Option {
	return func(g *Game) { g.lives = n }
}

// New creates a game starting at first. The game begins in GameStart.
func New(cfg config.ArkanoidConfig, first *round.Round, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg,
		round: first,
		lives: cfg.Gameplay.Lives,
		peers: enemy.NewSet(),
		area:  core.NewRect(0, 0, cfg.Display.Width, cfg.Display.Height),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrDiscard(g.logger)
	if g.rnd == nil {
		g.rnd = core.NewSimpleRNG(1)
	}
	if g.receiver == nil {
		g.receiver = core.NewReceiver()
	}
	if g.lib == nil {
		g.lib = anim.Builtin(cfg, g.logger)
	}

	g.paddle = paddle.New(g.paddleLane(), paddleConfig(cfg.Paddle), g.lib,
		paddle.WithLogger(g.logger),
		paddle.WithReceiver(g.receiver),
		paddle.WithLaserTargets(g),
	)

	pr := g.paddle.Rect()
	start := core.Point{X: pr.X + pr.W/2, Y: pr.Y - cfg.Ball.Size/2}
	g.balls = []*ball.Ball{ball.New(start, cfg.Ball.Size, cfg.Ball.StartAngle, g.baseTuning(), g.area, g.offScreen)}

	g.createHandlers()
	g.state = newGameStart(g)
	return g
}

func paddleConfig(c config.PaddleConfig) paddle.Config {
	pc := paddle.Config{Speed: c.Speed, LaserSpeed: c.LaserSpeed, LaserMax: c.LaserMax}
	copy(pc.BounceAngles[:], c.BounceAngles)
	return pc
}

func (g *Game) paddleLane() core.Rect {
	e := g.round.Edges()
	left, right := e.Left.Rect().Right(), e.Right.Rect().X
	h := g.cfg.Paddle.Height
	return core.NewRect(left, g.cfg.Display.Height-g.cfg.Paddle.BottomOffset-h, right-left, h)
}

// baseTuning is the configured ball tuning with the current round's deltas.
func (g *Game) baseTuning() ball.Tuning {
	b := g.cfg.Ball
	return ball.Tuning{
		BaseSpeed:         b.BaseSpeed + g.round.BallBaseSpeedAdjust,
		TopSpeed:          b.TopSpeed,
		NormalisationRate: b.NormalisationRate + g.round.NormalisationAdjust,
	}
}

// Update advances the game by one tick.
func (g *Game) Update() {
	g.ticks++
	g.state.Update()
	g.round.Update()
	g.paddle.Update()
	for _, b := range append([]*ball.Ball(nil), g.balls...) {
		b.Update()
	}
	for _, e := range g.enemies {
		e.Update()
	}
	g.updatePowerUps()
	g.updateSpecialItem()
	if g.flash > 0 {
		g.flash--
	}
}

func (g *Game) setState(s State) {
	g.state = s
	g.logger.Debug("entered state", "state", s.Name(), "round", g.round.Number, "lives", g.lives)
}

// EndGame forces the game into GameEnd, e.g. when time runs out.
func (g *Game) EndGame(reason string) {
	if g.over {
		return
	}
	g.logger.Info("game ended", "reason", reason, "score", g.score)
	g.setState(newGameEnd(g))
}

// State returns the current orchestration state.
func (g *Game) State() State { return g.state }

// StateName returns the current state's name.
func (g *Game) StateName() string { return g.state.Name() }

// Score returns the score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives, including the one in play.
func (g *Game) Lives() int { return g.lives }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Ticks returns the number of updates run.
func (g *Game) Ticks() int { return g.ticks }

// Round returns the current round.
func (g *Game) Round() *round.Round { return g.round }

// Paddle returns the paddle.
func (g *Game) Paddle() *paddle.Paddle { return g.paddle }

// Balls returns the balls in play.
func (g *Game) Balls() []*ball.Ball { return g.balls }

// Enemies returns the enemies of the current round.
func (g *Game) Enemies() []*enemy.Enemy { return g.enemies }

// PowerUps returns the falling capsules.
func (g *Game) PowerUps() []*PowerUp { return g.powerups }

// SpecialItem returns the falling special item, or nil.
func (g *Game) SpecialItem() *SpecialItem { return g.item }

// SpecialBrick returns the brick holding the special item, or nil.
func (g *Game) SpecialBrick() *round.Brick { return g.specialBrick }

// SpecialReady reports whether the special action can be used.
func (g *Game) SpecialReady() bool { return g.specialReady }

// SpecialUsed reports whether the special action was used this round.
func (g *Game) SpecialUsed() bool { return g.specialUsed }

// Flash returns the ticks left of the special action's screen flash.
func (g *Game) Flash() int { return g.flash }

// Receiver returns the input receiver.
func (g *Game) Receiver() *core.Receiver { return g.receiver }

// Ball returns the primary ball, or nil when none is in play.
func (g *Game) Ball() *ball.Ball {
	if len(g.balls) == 0 {
		return nil
	}
	return g.balls[0]
}

// ActivePowerUp returns the kind of the power-up in effect, or "".
func (g *Game) ActivePowerUp() Kind {
	if g.active == nil {
		return ""
	}
	return g.active.kind
}

// Caption returns the text the current state wants shown, if any.
func (g *Game) Caption() []string {
	if c, ok := g.state.(interface{ Caption() []string }); ok {
		return c.Caption()
	}
	return nil
}

func (g *Game) createHandlers() {
	g.onMoveLeft = core.NewHandler(func(ev core.KeyEvent) {
		if ev.Action == core.ActionLeft {
			g.paddle.MoveLeft()
			g.keysDown++
		}
	})
	g.onMoveRight = core.NewHandler(func(ev core.KeyEvent) {
		if ev.Action == core.ActionRight {
			g.paddle.MoveRight()
			g.keysDown++
		}
	})
	g.onStop = core.NewHandler(func(ev core.KeyEvent) {
		if ev.Action != core.ActionLeft && ev.Action != core.ActionRight {
			return
		}
		if g.keysDown > 0 {
			g.keysDown--
		}
		if g.keysDown == 0 {
			g.paddle.Stop()
		}
	})
	g.onSpecial = core.NewHandler(func(ev core.KeyEvent) {
		if ev.Action == core.ActionSpecial {
			g.ActivateSpecial()
		}
	})
}

func (g *Game) registerHandlers() {
	g.receiver.Register(core.KeyDown, g.onMoveLeft, g.onMoveRight, g.onSpecial)
	g.receiver.Register(core.KeyUp, g.onStop)
}

func (g *Game) unregisterHandlers() {
	g.receiver.Unregister(g.onMoveLeft, g.onMoveRight, g.onStop, g.onSpecial)
}

// configureBall rebuilds the primary ball's registry for the current round
// and applies the round's tuning.
func (g *Game) configureBall() {
	b := g.Ball()
	b.RemoveAll()
	for _, e := range g.round.Edges().All() {
		b.Add(e, ball.WithSpeedAdjust(g.cfg.Ball.WallSpeedAdjust))
	}
	b.Add(g.paddle, ball.WithBounce(g.paddle.Bounce))
	for _, br := range g.round.Bricks() {
		b.Add(br, ball.WithSpeedAdjust(g.cfg.Ball.BrickSpeedAdjust), ball.WithOnCollide(g.ballHitBrick))
	}
	b.SetTuning(g.baseTuning())
}

func (g *Game) configurePaddle() {
	g.paddle.SetSpeed(g.cfg.Paddle.Speed + g.round.PaddleSpeedAdjust)
}

// pickSpecialBrick designates a random standing, destructible brick.
func (g *Game) pickSpecialBrick() {
	var candidates []*round.Brick
	for _, b := range g.round.Bricks() {
		if b.Visible() && !b.Colour().Exempt() {
			candidates = append(candidates, b)
		}
	}
	g.specialBrick = nil
	if len(candidates) > 0 {
		g.specialBrick = candidates[g.rnd.Intn(len(candidates))]
		row, col := g.specialBrick.Cell()
		g.logger.Debug("special brick assigned", "row", row, "col", col)
	}
}

// offScreen is the ball's off-screen callback. A ball lost once the round
// is cleared or the game is over costs nothing.
func (g *Game) offScreen(b *ball.Ball) {
	if g.over || g.round.Complete() {
		return
	}
	if len(g.balls) > 1 {
		for i, x := range g.balls {
			if x == b {
				g.balls = append(g.balls[:i], g.balls[i+1:]...)
				break
			}
		}
		b.SetVisible(false)
		return
	}
	if _, ok := g.state.(*BallOffScreen); !ok {
		g.setState(newBallOffScreen(g))
	}
}

// freezeBalls stops every ball where it is and hides it, so none of them
// can leave the play area again.
func (g *Game) freezeBalls() {
	for _, b := range g.balls {
		b.SetSpeed(0)
		b.SetVisible(false)
		if !b.Anchored() {
			c := b.Center()
			b.AnchorAt(core.Point{X: core.Round(c.X()), Y: core.Round(c.Y())})
		}
	}
}

// Duplicate splits every ball in play into three: the original plus two
// clones angled split radians either side. The clones inherit the
// original's registrations.
func (g *Game) Duplicate(split float64) {
	for _, b := range append([]*ball.Ball(nil), g.balls...) {
		c := b.Center()
		start := core.Point{X: core.Round(c.X()), Y: core.Round(c.Y())}
		for _, angle := range []float64{core.WrapAngle(b.Angle() + split), math.Abs(b.Angle() - split)} {
			clone := b.Clone(start, angle)
			for _, entry := range b.Registry() {
				clone.Add(entry.Obstacle,
					ball.WithSpeedAdjust(entry.SpeedAdjust),
					ball.WithBounce(entry.Bounce),
					ball.WithOnCollide(entry.OnCollide))
			}
			g.balls = append(g.balls, clone)
		}
	}
}
