package paddle

import (
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// immediateExit is embedded by states that leave without an animation.
type immediateExit struct{}

func (immediateExit) Exit(done func()) { done() }

// pulsator replays a light-pulse sequence forwards then backwards every 80
// ticks, one frame per 4 ticks.
type pulsator struct {
	p      *Paddle
	frames []anim.Frame
	order  []int
	pos    int
	count  int
}

const (
	pulseEvery = 80
	pulseStep  = 4
)

func newPulsator(p *Paddle, name string) *pulsator {
	return &pulsator{p: p, frames: p.lib.Frames(name)}
}

func (u *pulsator) update() {
	switch {
	case u.count%pulseEvery == 0:
		u.order = u.order[:0]
		for i := range u.frames {
			u.order = append(u.order, i)
		}
		for i := len(u.frames) - 1; i >= 0; i-- {
			u.order = append(u.order, i)
		}
		u.pos = 0
		u.count = 0
	case u.pos < len(u.order) && u.count%pulseStep == 0:
		u.p.setImage(u.frames[u.order[u.pos]])
		u.pos++
	}
	u.count++
}

// Normal is the idle state with the baseline width.
type Normal struct {
	immediateExit
	p     *Paddle
	pulse *pulsator
}

// NewNormal creates the Normal state.
func NewNormal(p *Paddle) *Normal {
	return &Normal{p: p, pulse: newPulsator(p, anim.PaddlePulsate)}
}

func (s *Normal) Name() string { return "normal" }
func (s *Normal) Enter()       { s.p.setFrame(s.p.lib.First(anim.Paddle)) }
func (s *Normal) Update()      { s.pulse.update() }

// Materializing plays the appear animation, one frame every 2 ticks, then
// moves itself to Normal.
type Materializing struct {
	immediateExit
	p     *Paddle
	seq   *anim.Sequence
	count int
}

// NewMaterializing creates the Materializing state.
func NewMaterializing(p *Paddle) *Materializing {
	return &Materializing{p: p, seq: p.lib.Sequence(anim.PaddleMaterialize)}
}

func (s *Materializing) Name() string { return "materializing" }
func (s *Materializing) Enter()       {}

func (s *Materializing) Update() {
	if s.count%2 == 0 {
		if f, ok := s.seq.Next(); ok {
			s.p.setFrame(f)
		} else if !s.p.Transitioning() {
			s.p.Transition(NewNormal(s.p))
		}
	}
	s.count++
}

// Exploding plays the destruction animation. The paddle cannot move while
// exploding. When the animation ends the callback runs once and the paddle
// is hidden.
type Exploding struct {
	immediateExit
	p      *Paddle
	seq    *anim.Sequence
	onDone func()
	center core.Point
	count  int
	done   bool
}

// NewExploding creates the Exploding state.
func NewExploding(p *Paddle, onDone func()) *Exploding {
	return &Exploding{p: p, seq: p.lib.Sequence(anim.PaddleExplode), onDone: onDone}
}

func (s *Exploding) Name() string { return "exploding" }

func (s *Exploding) Enter() {
	cx, cy := s.p.rect.Center()
	s.center = core.Point{X: cx, Y: cy}
}

func (s *Exploding) Update() {
	if s.count > 10 && s.count%4 == 0 && !s.done {
		if f, ok := s.seq.Next(); ok {
			s.p.setFrame(f)
			s.p.rect = s.p.rect.WithCenter(s.center.X, s.center.Y)
		} else {
			s.done = true
			s.p.visible = false
			if s.onDone != nil {
				s.onDone()
			}
		}
	}
	s.p.Stop()
	s.count++
}

// PowerUpCharged cycles the charged art, one frame every 3 ticks, until the
// special action is used or the paddle is forced back to Normal.
type PowerUpCharged struct {
	immediateExit
	p     *Paddle
	seq   *anim.Sequence
	count int
}

// NewPowerUpCharged creates the PowerUpCharged state.
func NewPowerUpCharged(p *Paddle) *PowerUpCharged {
	return &PowerUpCharged{p: p, seq: p.lib.Sequence(anim.PaddlePowerUpCharged)}
}

func (s *PowerUpCharged) Name() string { return "powerup_charged" }
func (s *PowerUpCharged) Enter()       {}

func (s *PowerUpCharged) Update() {
	if s.count%3 == 0 {
		s.p.setFrame(s.seq.Cycle())
	}
	s.count++
}

// resizing drives the shared grow, pulse, shrink-back cycle of Wide, Narrow
// and Laser.
type resizing struct {
	p       *Paddle
	seq     *anim.Sequence
	pulse   *pulsator
	growing bool
	undoing bool
	clamp   bool
	done    func()
	onReady func()
}

func newResizing(p *Paddle, seq, pulse string, clamp bool) resizing {
	return resizing{
		p:       p,
		seq:     p.lib.Sequence(seq),
		pulse:   newPulsator(p, pulse),
		growing: true,
		clamp:   clamp,
	}
}

func (r *resizing) Enter() {}

func (r *resizing) Update() {
	switch {
	case r.growing:
		if f, ok := r.seq.Next(); ok {
			r.show(f)
			return
		}
		r.growing = false
		if r.onReady != nil {
			r.onReady()
		}
	case r.undoing:
		if f, ok := r.seq.Next(); ok {
			r.show(f)
			return
		}
		r.undoing = false
		r.done()
	default:
		r.pulse.update()
	}
}

func (r *resizing) show(f anim.Frame) {
	r.p.setFrame(f)
	if r.clamp {
		r.p.clampToLane()
	}
}

func (r *resizing) Exit(done func()) {
	r.growing = false
	r.undoing = true
	r.done = done
	r.seq.Reverse()
}

// Wide widens the paddle, keeping it inside the lane.
type Wide struct{ resizing }

// NewWide creates the Wide state.
func NewWide(p *Paddle) *Wide {
	return &Wide{newResizing(p, anim.PaddleWide, anim.PaddleWidePulsate, true)}
}

func (s *Wide) Name() string { return "wide" }

// Narrow shrinks the paddle.
type Narrow struct{ resizing }

// NewNarrow creates the Narrow state.
func NewNarrow(p *Paddle) *Narrow {
	return &Narrow{newResizing(p, anim.PaddleNarrow, anim.PaddleNarrowPulsate, false)}
}

func (s *Narrow) Name() string { return "narrow" }

// Laser equips the paddle with lasers. Firing is armed once the conversion
// animation finishes and disarmed as soon as the state starts to exit.
type Laser struct {
	resizing
	armed   bool
	handler *core.Handler
}

// NewLaser creates the Laser state.
func NewLaser(p *Paddle) *Laser {
	s := &Laser{resizing: newResizing(p, anim.PaddleLaser, anim.PaddleLaserPulsate, true)}
	s.handler = core.NewHandler(func(ev core.KeyEvent) {
		if ev.Action == core.ActionFire {
			p.Fire()
		}
	})
	s.onReady = s.arm
	return s
}

func (s *Laser) Name() string { return "laser" }

func (s *Laser) arm() {
	s.armed = true
	if s.p.receiver != nil {
		s.p.receiver.Register(core.KeyUp, s.handler)
	}
}

// Armed reports whether the laser can fire.
func (s *Laser) Armed() bool { return s.armed }

func (s *Laser) Exit(done func()) {
	s.armed = false
	if s.p.receiver != nil {
		s.p.receiver.Unregister(s.handler)
	}
	s.resizing.Exit(done)
}
