package paddle

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// LaserTargets resolves what a laser bullet hits.
type LaserTargets interface {
	// Ceiling is the top boundary; bullets touching it vanish.
	Ceiling() core.Rect
	// HitBrick handles a bullet overlapping a visible brick and reports
	// whether it did.
	HitBrick(bullet core.Rect) bool
	// HitEnemy handles a bullet overlapping a visible enemy and reports
	// whether it did.
	HitEnemy(bullet core.Rect) bool
}

// Bullet is a laser shot travelling straight up.
type Bullet struct {
	rect    core.Rect
	speed   int
	visible bool
}

// Rect returns the bullet's bounding box.
func (b *Bullet) Rect() core.Rect { return b.rect }

// Visible reports whether the bullet is still in flight.
func (b *Bullet) Visible() bool { return b.visible }

// Bullets returns the bullets currently tracked, in flight or not.
func (p *Paddle) Bullets() []*Bullet {
	return p.bullets
}

// fire drops spent bullets and, while fewer than the maximum remain, spawns
// a pair near the paddle's ends.
func (p *Paddle) fire() {
	live := p.bullets[:0]
	for _, b := range p.bullets {
		if b.visible {
			live = append(live, b)
		}
	}
	p.bullets = live
	if len(p.bullets) >= p.cfg.LaserMax {
		return
	}
	f := p.lib.First(anim.LaserBullet)
	for _, x := range []int{p.rect.X + 10, p.rect.Right() - 10} {
		r := core.NewRect(x-f.W/2, p.rect.Bottom()-f.H, f.W, f.H)
		p.bullets = append(p.bullets, &Bullet{rect: r, speed: p.cfg.LaserSpeed, visible: true})
	}
}

func (p *Paddle) updateBullets() {
	for _, b := range p.bullets {
		if !b.visible {
			continue
		}
		b.rect = b.rect.Move(0, -b.speed)
		switch {
		case p.targets == nil:
			b.visible = b.rect.Bottom() > 0
		case b.rect.Intersects(p.targets.Ceiling()) || b.rect.Bottom() <= 0:
			b.visible = false
		case p.targets.HitBrick(b.rect):
			b.visible = false
		case p.targets.HitEnemy(b.rect):
			b.visible = false
		}
	}
}

// ClearBullets removes every bullet.
func (p *Paddle) ClearBullets() {
	p.bullets = nil
}
