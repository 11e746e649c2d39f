package game

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/ball"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/enemy"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/round"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func (g *Game) ballHitBrick(o ball.Obstacle, _ *ball.Ball) {
	if b, ok := o.(*round.Brick); ok {
		g.onBrickCollide(b)
	}
}

func (g *Game) ballHitEnemy(o ball.Obstacle, _ *ball.Ball) {
	if e, ok := o.(*enemy.Enemy); ok {
		g.onEnemyCollide(e)
	}
}

// onBrickCollide handles a ball or laser striking b.
func (g *Game) onBrickCollide(b *round.Brick) {
	destroyed := b.Hit()
	if destroyed {
		g.score += b.Value()
		g.round.BrickDestroyed()
		if b == g.specialBrick {
			g.specialBrick = nil
			mb := b.Rect().MidBottom()
			g.spawnSpecialItem(core.Point{X: mb.X, Y: mb.Y + 1})
		}
	} else {
		b.Animate()
	}

	if b.Powerup() != "" {
		// Certain on destruction, a coin flip when the brick survives.
		if destroyed || g.rnd.Intn(2) == 0 {
			g.releasePowerUp(b)
		}
	}

	if len(g.enemies) == 0 && g.round.CanReleaseEnemies() {
		g.setupEnemies()
		for _, e := range g.enemies {
			g.releaseEnemy(e)
		}
	}
}

// onEnemyCollide handles a ball, laser or the paddle striking e.
func (g *Game) onEnemyCollide(e *enemy.Enemy) {
	if e.Exploding() {
		return
	}
	e.Explode()
	g.score += g.cfg.Enemy.Score
	for _, b := range g.balls {
		b.Remove(e)
	}
}

// setupEnemies creates the round's enemies, hidden until released.
func (g *Game) setupEnemies() {
	var obstacles []enemy.Obstacle
	for _, e := range g.round.Edges().All() {
		obstacles = append(obstacles, e)
	}
	for _, b := range g.round.Bricks() {
		obstacles = append(obstacles, b)
	}

	for i := 0; i < g.round.NumEnemies; i++ {
		e := enemy.New(g.round.EnemyType, g.round.Field(), g.cfg.Enemy, g.lib, g.rnd,
			enemy.WithPaddle(g.paddle, g.onEnemyCollide),
			enemy.WithObstacles(obstacles...),
			enemy.WithPeers(g.peers),
			enemy.WithOnDestroyed(g.releaseEnemy),
			enemy.WithLogger(g.logger),
		)
		g.enemies = append(g.enemies, e)
		g.peers.Add(e)
	}
	g.logger.Debug("enemies created", "kind", g.round.EnemyType, "count", len(g.enemies))
}

// releaseEnemy hides e and brings it back through a door after a delay.
func (g *Game) releaseEnemy(e *enemy.Enemy) {
	e.Conceal()
	g.round.Edges().Top.OpenDoor(func(p core.Point) {
		e.Reset()
		e.MoveTo(p)
		for _, b := range g.balls {
			b.Add(e, ball.WithOnCollide(g.ballHitEnemy))
		}
	})
}

// Ceiling implements paddle.LaserTargets.
func (g *Game) Ceiling() core.Rect {
	return g.round.Edges().Top.Rect()
}

// HitBrick implements paddle.LaserTargets. A laser destroys for no score
// and the brick drops nothing.
func (g *Game) HitBrick(r core.Rect) bool {
	for _, b := range g.round.Bricks() {
		if b.Visible() && r.Intersects(b.Rect()) {
			b.SetValue(0)
			b.SetPowerup("")
			g.onBrickCollide(b)
			return true
		}
	}
	return false
}

// HitEnemy implements paddle.LaserTargets.
func (g *Game) HitEnemy(r core.Rect) bool {
	for _, e := range g.enemies {
		if e.Visible() && !e.Exploding() && r.Intersects(e.Rect()) {
			g.onEnemyCollide(e)
			return true
		}
	}
	return false
}
