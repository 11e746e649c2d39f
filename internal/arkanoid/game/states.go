package game

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/paddle"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Tick thresholds of the round start sequence.
const (
	captionTick     = 100
	readyTick       = 200
	materializeTick = 201
	eraseTick       = 310
	releaseTick     = 340
)

// GameStart hides the paddle and ball and hooks up the input handlers, then
// moves straight on to the first round.
type GameStart struct {
	g *Game
}

func newGameStart(g *Game) *GameStart {
	g.paddle.SetVisible(false)
	g.Ball().SetVisible(false)
	g.registerHandlers()
	return &GameStart{g: g}
}

func (s *GameStart) Name() string { return "game_start" }

func (s *GameStart) Update() {
	s.g.setState(newRoundStart(s.g))
}

// RoundStart sets up a round and plays the intro: caption, ready text,
// paddle materializing, then the ball is released.
type RoundStart struct {
	g           *Game
	count       int
	paddleReset bool
	caption     bool
	ready       bool
}

func newRoundStart(g *Game) *RoundStart {
	g.powerups = nil
	g.configureBall()
	g.configurePaddle()
	s := &RoundStart{g: g}
	s.enter()
	return s
}

// enter is shared with RoundRestart.
func (s *RoundStart) enter() {
	g := s.g
	g.specialUsed = false
	g.pickSpecialBrick()
	g.item = nil

	b := g.Ball()
	b.Reset()
	g.paddle.SetVisible(false)
	g.paddle.ClearBullets()
	b.SetVisible(false)
	b.AnchorAt(core.Point{X: g.cfg.Display.Width / 2, Y: g.cfg.Display.Height - 100})
}

func (s *RoundStart) Name() string { return "round_start" }

func (s *RoundStart) Update() {
	if s.step() {
		s.g.setState(newRoundPlay(s.g))
	}
}

// step runs one tick of the intro and reports whether the ball was released.
func (s *RoundStart) step() bool {
	g := s.g
	released := false

	if s.count > captionTick {
		s.caption = true
	}
	if s.count > readyTick {
		s.ready = true
		b := g.Ball()
		b.AnchorTo(g.paddle, core.Point{X: g.paddle.Rect().W / 2, Y: -b.Rect().H})
		if !s.paddleReset {
			g.paddle.Reset()
			s.paddleReset = true
		}
		g.paddle.SetVisible(true)
		b.SetVisible(true)
	}
	if s.count == materializeTick {
		g.paddle.Transition(paddle.NewMaterializing(g.paddle))
		for _, br := range g.round.Bricks() {
			br.Animate()
		}
	}
	if s.count > eraseTick {
		s.caption = false
		s.ready = false
	}
	if s.count > releaseTick {
		g.Ball().Release(g.cfg.Ball.StartAngle)
		released = true
	}
	s.count++

	if !g.paddle.Visible() {
		g.paddle.Stop()
	}
	return released
}

// Caption returns the round name and ready text while they are shown.
func (s *RoundStart) Caption() []string {
	var lines []string
	if s.caption {
		lines = append(lines, s.g.round.Name)
	}
	if s.ready {
		lines = append(lines, "ready")
	}
	return lines
}

// RoundPlay is normal play. It ends when the round is complete; losing the
// last ball is signalled by the ball itself.
type RoundPlay struct {
	g *Game
}

func newRoundPlay(g *Game) *RoundPlay {
	return &RoundPlay{g: g}
}

func (s *RoundPlay) Name() string { return "round_play" }

func (s *RoundPlay) Update() {
	if s.g.round.Complete() {
		s.g.setState(newRoundEnd(s.g))
	}
}

// BallOffScreen blows up the paddle after the last ball is lost, then
// restarts the round or ends the game.
type BallOffScreen struct {
	g    *Game
	done bool
}

func newBallOffScreen(g *Game) *BallOffScreen {
	s := &BallOffScreen{g: g}
	g.deactivatePowerUp()
	g.clearSpecial()
	g.paddle.DeactivateSpecialImage()
	g.paddle.Transition(paddle.NewExploding(g.paddle, func() { s.done = true }))
	return s
}

func (s *BallOffScreen) Name() string { return "ball_off_screen" }

func (s *BallOffScreen) Update() {
	if !s.done {
		return
	}
	if s.g.lives-1 > 0 {
		s.g.setState(newRoundRestart(s.g))
	} else {
		s.g.setState(newGameEnd(s.g))
	}
}

// RoundRestart replays the round intro after a life is lost. The round's
// bricks, ball registry and paddle speed are kept. Enemies are hidden and
// come back through the doors once the ball is released.
type RoundRestart struct {
	RoundStart
	lives int
}

func newRoundRestart(g *Game) *RoundRestart {
	s := &RoundRestart{RoundStart: RoundStart{g: g}, lives: g.lives - 1}
	s.enter()
	for _, e := range g.enemies {
		e.Reset()
		e.Conceal()
	}
	g.round.Edges().Top.CancelOpenDoor()
	return s
}

func (s *RoundRestart) Name() string { return "round_restart" }

func (s *RoundRestart) Update() {
	caption := s.count > captionTick
	released := s.step()
	if caption {
		s.g.lives = s.lives
	}
	if released {
		for _, e := range s.g.enemies {
			s.g.releaseEnemy(e)
		}
		s.g.setState(newRoundPlay(s.g))
	}
}

// RoundEnd freezes play after the round is cleared, pauses, then loads the
// next round or ends the game after the last one.
type RoundEnd struct {
	g     *Game
	count int
}

func newRoundEnd(g *Game) *RoundEnd {
	g.deactivatePowerUp()
	g.clearSpecial()
	g.specialBrick = nil
	g.paddle.DeactivateSpecialImage()
	g.freezeBalls()
	return &RoundEnd{g: g}
}

func (s *RoundEnd) Name() string { return "round_end" }

func (s *RoundEnd) Update() {
	g := s.g
	g.paddle.SetVisible(false)
	for _, e := range g.enemies {
		e.SetVisible(false)
	}
	g.enemies = nil
	g.peers.Clear()
	g.round.Edges().Top.CancelOpenDoor()

	if s.count > g.cfg.Gameplay.RoundEndPause {
		g.balls = g.balls[:1]
		next := g.round.Next()
		if next == nil {
			g.setState(newGameEnd(g))
			return
		}
		r, err := next()
		if err != nil {
			g.logger.Error("next round failed", "round", g.round.Number+1, "err", err)
			g.setState(newGameEnd(g))
			return
		}
		g.round = r
		g.setState(newRoundStart(g))
		return
	}
	s.count++
}

// GameEnd is terminal.
type GameEnd struct {
	g *Game
}

func newGameEnd(g *Game) *GameEnd {
	pr := g.paddle.Rect()
	for _, b := range g.balls {
		b.AnchorAt(core.Point{X: pr.X + pr.W/2, Y: pr.Y})
		b.SetVisible(false)
	}
	g.paddle.Stop()
	g.over = true
	g.unregisterHandlers()
	return &GameEnd{g: g}
}

func (s *GameEnd) Name() string { return "game_end" }

func (s *GameEnd) Update() {}
