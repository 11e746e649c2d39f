package game

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/paddle"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/round"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Kind identifies a power-up.
type Kind string

const (
	ExtraLife Kind = "life"
	Expand    Kind = "expand"
	Reduce    Kind = "reduce"
	Slow      Kind = "slow"
	Speed     Kind = "speed"
	Duplicate Kind = "duplicate"
	Laser     Kind = "laser"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case ExtraLife, Expand, Reduce, Slow, Speed, Duplicate, Laser:
		return true
	}
	return false
}

// exclusive kinds cannot activate while a power-up of the same kind is in
// effect.
func (k Kind) exclusive() bool {
	return k == Expand || k == Reduce || k == Laser
}

// PowerUp is a capsule falling from a brick. Once caught it stays as the
// game's active power-up until replaced or deactivated.
type PowerUp struct {
	kind    Kind
	rect    core.Rect
	speed   int
	seq     *anim.Sequence
	frame   anim.Frame
	count   int
	visible bool

	origSpeed float64
}

// Kind returns the capsule's kind.
func (p *PowerUp) Kind() Kind { return p.kind }

// Rect returns the capsule's bounding box.
func (p *PowerUp) Rect() core.Rect { return p.rect }

// Visible reports whether the capsule is still falling.
func (p *PowerUp) Visible() bool { return p.visible }

// Frame returns the image to draw.
func (p *PowerUp) Frame() anim.Frame { return p.frame }

// releasePowerUp drops the capsule hidden in b.
func (g *Game) releasePowerUp(b *round.Brick) {
	kind := Kind(b.Powerup())
	b.SetPowerup("")
	if !kind.Valid() {
		g.logger.Warn("unknown power-up kind ignored", "kind", kind)
		return
	}
	pc := g.cfg.Powerups
	mb := b.Rect().MidBottom()
	p := &PowerUp{
		kind:    kind,
		rect:    core.NewRect(mb.X-pc.Width/2, mb.Y, pc.Width, pc.Height),
		speed:   pc.FallSpeed,
		seq:     g.lib.Sequence(anim.PowerUp(string(kind))),
		visible: true,
	}
	p.frame = p.seq.Cycle()
	g.powerups = append(g.powerups, p)
	g.logger.Debug("power-up released", "kind", kind)
}

func (g *Game) updatePowerUps() {
	live := g.powerups[:0]
	for _, p := range g.powerups {
		p.rect = p.rect.Move(0, p.speed)
		if !g.area.ContainsRect(p.rect) {
			p.visible = false
			continue
		}
		if p.count%4 == 0 {
			p.frame = p.seq.Cycle()
		}
		if p.rect.Intersects(g.paddle.Rect()) {
			p.visible = false
			if g.canActivate(p.kind) {
				g.deactivatePowerUp()
				g.activate(p)
				g.active = p
			}
			continue
		}
		p.count++
		live = append(live, p)
	}
	clear(g.powerups[len(live):])
	g.powerups = live
}

func (g *Game) canActivate(k Kind) bool {
	if g.paddle.Exploding() || !g.paddle.Visible() {
		return false
	}
	if k.exclusive() && g.active != nil && g.active.kind == k {
		return false
	}
	return true
}

func (g *Game) activate(p *PowerUp) {
	g.logger.Debug("power-up activated", "kind", p.kind)
	pc := g.cfg.Powerups
	switch p.kind {
	case ExtraLife:
		g.lives++
	case Expand:
		g.paddle.Transition(paddle.NewWide(g.paddle))
		for _, b := range g.balls {
			b.SetBaseSpeed(b.Tuning().BaseSpeed + pc.ExpandBoost)
		}
	case Reduce:
		g.paddle.Transition(paddle.NewNarrow(g.paddle))
	case Slow:
		g.setBallSpeed(p, pc.SlowSpeed)
	case Speed:
		g.setBallSpeed(p, pc.FastSpeed)
	case Duplicate:
		g.Duplicate(pc.SplitAngle)
	case Laser:
		g.paddle.Transition(paddle.NewLaser(g.paddle))
	}
}

// setBallSpeed remembers the base speed and pins every ball to speed.
func (g *Game) setBallSpeed(p *PowerUp, speed float64) {
	p.origSpeed = g.Ball().Tuning().BaseSpeed
	for _, b := range g.balls {
		b.SetSpeed(speed)
		b.SetBaseSpeed(speed)
	}
}

// deactivatePowerUp undoes the active power-up, if any.
func (g *Game) deactivatePowerUp() {
	p := g.active
	if p == nil {
		return
	}
	g.active = nil
	g.logger.Debug("power-up deactivated", "kind", p.kind)
	switch p.kind {
	case Expand:
		g.paddle.Transition(paddle.NewNormal(g.paddle))
		for _, b := range g.balls {
			b.SetBaseSpeed(b.Tuning().BaseSpeed - g.cfg.Powerups.ExpandBoost)
		}
	case Reduce, Laser:
		g.paddle.Transition(paddle.NewNormal(g.paddle))
	case Slow, Speed:
		for _, b := range g.balls {
			b.SetSpeed(p.origSpeed)
			b.SetBaseSpeed(p.origSpeed)
		}
	}
}
