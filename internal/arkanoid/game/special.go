package game

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// SpecialItem is the falling pickup that charges the special action.
type SpecialItem struct {
	rect  core.Rect
	speed int
	seq   *anim.Sequence
	frame anim.Frame
	fresh bool // spawned this tick, cannot be caught yet
}

// Rect returns the item's bounding box.
func (s *SpecialItem) Rect() core.Rect { return s.rect }

// Frame returns the image to draw.
func (s *SpecialItem) Frame() anim.Frame { return s.frame }

// spawnSpecialItem drops the item with its top centre at p. Only one item
// can be on screen.
func (g *Game) spawnSpecialItem(p core.Point) {
	if g.item != nil {
		g.logger.Error("special item already on screen")
		return
	}
	sc := g.cfg.Special
	g.item = &SpecialItem{
		rect:  core.NewRect(p.X-sc.Width/2, p.Y, sc.Width, sc.Height),
		speed: sc.FallSpeed,
		seq:   g.lib.Sequence(anim.SpecialItem),
		fresh: true,
	}
	g.item.frame = g.item.seq.Cycle()
	g.logger.Info("special item dropped")
}

func (g *Game) updateSpecialItem() {
	it := g.item
	if it == nil {
		return
	}
	fresh := it.fresh
	it.fresh = false
	it.rect = it.rect.Move(0, it.speed)
	if g.ticks%3 == 0 {
		it.frame = it.seq.Cycle()
	}

	switch {
	case it.rect.Y > g.area.Bottom():
		g.item = nil
		g.logger.Info("special item lost")
	case !fresh && it.rect.Intersects(g.paddle.Rect()):
		g.item = nil
		g.specialReady = true
		g.paddle.ActivateSpecialImage()
		g.logger.Info("special item collected")
	}
}

// clearSpecial removes the item and resets the charge.
func (g *Game) clearSpecial() {
	g.item = nil
	g.specialReady = false
	g.specialUsed = false
}

// ActivateSpecial uses the special action: every visible enemy explodes and
// pending door openings are cancelled. Enemies that were waiting behind a
// door queue up again. It works once per round, after the special item was
// collected.
func (g *Game) ActivateSpecial() {
	if !g.specialReady || g.specialUsed {
		return
	}
	g.specialUsed = true
	g.specialReady = false
	g.flash = g.cfg.Special.FlashTicks
	g.paddle.DeactivateSpecialImage()

	n := 0
	for _, e := range g.enemies {
		if e.Visible() && !e.Exploding() {
			e.Explode()
			g.score += g.cfg.Enemy.Score
			n++
		}
		for _, b := range g.balls {
			b.Remove(e)
		}
	}
	g.round.Edges().Top.CancelOpenDoor()
	for _, e := range g.enemies {
		if !e.Visible() && !e.Exploding() {
			g.releaseEnemy(e)
		}
	}
	g.logger.Info("special action used", "enemies", n)
}
