package arkanoid

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/ball"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// fireEvery is how often, in ticks, the autopilot presses fire.
const fireEvery = 30

// Autopilot produces input that keeps the paddle under the lowest ball.
// The headless simulation plays with it.
type Autopilot struct {
	moving core.Action
}

// Next returns the input frame for the next step of a.
func (p *Autopilot) Next(a *App) core.InputFrame {
	in := core.NewInputFrame()
	if !a.Started() {
		in.Set(core.ActionConfirm)
		return in
	}
	g := a.Game()
	if g.Over() {
		return in
	}

	want := core.ActionNone
	if b := lowestBall(g.Balls()); b != nil {
		pr := g.Paddle().Rect()
		x := b.Center().X()
		mid := float64(pr.X) + float64(pr.W)/2
		slack := float64(pr.W) / 4
		switch {
		case x < mid-slack:
			want = core.ActionLeft
		case x > mid+slack:
			want = core.ActionRight
		}
	}
	if want != p.moving {
		if p.moving != core.ActionNone {
			in.Release(p.moving)
		}
		if want != core.ActionNone {
			in.Set(want)
		}
		p.moving = want
	}

	if g.SpecialReady() {
		in.Set(core.ActionSpecial)
	}
	if g.Ticks()%fireEvery == 0 {
		in.Set(core.ActionFire)
		in.Release(core.ActionFire)
	}
	return in
}

func lowestBall(balls []*ball.Ball) *ball.Ball {
	var low *ball.Ball
	for _, b := range balls {
		if !b.Visible() {
			continue
		}
		if low == nil || b.Center().Y() > low.Center().Y() {
			low = b
		}
	}
	return low
}
