// Package paddle implements the player's paddle and its behavioural states.
//
// State changes follow a request/acknowledge protocol: Transition asks the
// current state to exit, and only when it reports completion does the
// requested state enter and become current. Exits can take several ticks
// (a wide paddle shrinks back first).
package paddle

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

// State is one behavioural mode of the paddle.
type State interface {
	Name() string
	Enter()
	Update()
	// Exit starts leaving the state and calls done once it has finished.
	Exit(done func())
}

// Config holds paddle parameters.
type Config struct {
	Speed        int
	BounceAngles [6]float64 // degrees
	LaserSpeed   int
	LaserMax     int
}

// Paddle is the player-controlled paddle.
type Paddle struct {
	rect    core.Rect
	lane    core.Rect
	speed   int
	move    int
	visible bool
	frame   anim.Frame

	state   State
	pending State
	exiting bool

	cfg      Config
	lib      *anim.Library
	receiver *core.Receiver
	targets  LaserTargets
	bullets  []*Bullet
	logger   *log.Logger
}

// Option configures a Paddle.
type Option func(*Paddle)

// WithLogger sets the logger for state changes.
func WithLogger(l *log.Logger) Option {
	return func(p *Paddle) { p.logger = l }
}

// WithReceiver lets the laser state register its fire handler.
func WithReceiver(r *core.Receiver) Option {
	return func(p *Paddle) { p.receiver = r }
}

// WithLaserTargets sets what laser bullets can hit.
func WithLaserTargets(t LaserTargets) Option {
	return func(p *Paddle) { p.targets = t }
}

// New creates a paddle centred in its lane, in the Normal state.
// The lane is the horizontal band the paddle may travel in.
func New(lane core.Rect, cfg Config, lib *anim.Library, opts ...Option) *Paddle {
	p := &Paddle{
		lane:    lane,
		speed:   cfg.Speed,
		visible: true,
		cfg:     cfg,
		lib:     lib,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrDiscard(p.logger)
	p.setFrame(lib.First(anim.Paddle))
	p.Reset()
	p.state = NewNormal(p)
	p.state.Enter()
	return p
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() core.Rect { return p.rect }

// Lane returns the travel lane.
func (p *Paddle) Lane() core.Rect { return p.lane }

// Visible reports whether the paddle is shown and collidable.
func (p *Paddle) Visible() bool { return p.visible }

// SetVisible shows or hides the paddle.
func (p *Paddle) SetVisible(v bool) { p.visible = v }

// Frame returns the current animation frame.
func (p *Paddle) Frame() anim.Frame { return p.frame }

// Speed returns the movement speed in pixels per tick.
func (p *Paddle) Speed() int { return p.speed }

// SetSpeed changes the movement speed.
func (p *Paddle) SetSpeed(s int) { p.speed = s }

// Moving returns the signed per-tick displacement currently requested.
func (p *Paddle) Moving() int { return p.move }

// MoveLeft starts moving left.
func (p *Paddle) MoveLeft() { p.move = -p.speed }

// MoveRight starts moving right.
func (p *Paddle) MoveRight() { p.move = p.speed }

// Stop halts movement.
func (p *Paddle) Stop() { p.move = 0 }

// Reset centres the paddle in its lane.
func (p *Paddle) Reset() {
	cx, cy := p.lane.Center()
	p.rect = p.rect.WithCenter(cx, cy)
}

// State returns the current state.
func (p *Paddle) State() State { return p.state }

// StateName returns the current state's name.
func (p *Paddle) StateName() string { return p.state.Name() }

// Exploding reports whether the paddle is in the Exploding state.
func (p *Paddle) Exploding() bool {
	_, ok := p.state.(*Exploding)
	return ok
}

// Transitioning reports whether an exit is in progress.
func (p *Paddle) Transitioning() bool { return p.exiting }

// Transition requests a change to next. The current state exits first; next
// enters only when that exit completes. A request made while an exit is in
// progress replaces the earlier pending request.
func (p *Paddle) Transition(next State) {
	p.pending = next
	if p.exiting {
		return
	}
	p.exiting = true
	from := p.state
	fired := false
	from.Exit(func() {
		if fired {
			return
		}
		fired = true
		p.exiting = false
		s := p.pending
		p.pending = nil
		p.state = s
		s.Enter()
		p.logger.Debug("paddle state entered", "from", from.Name(), "to", s.Name())
	})
}

// Update runs the current state, moves the paddle within its lane and
// advances laser bullets.
func (p *Paddle) Update() {
	p.state.Update()
	if p.move != 0 {
		p.applyMove()
	}
	p.updateBullets()
}

// applyMove moves by the requested delta; if that would leave the lane the
// delta shrinks towards zero one pixel at a time until the paddle fits.
func (p *Paddle) applyMove() {
	for p.move != 0 {
		next := p.rect.Move(p.move, 0)
		if p.inLane(next) {
			p.rect = next
			return
		}
		if p.move < 0 {
			p.move++
		} else {
			p.move--
		}
	}
}

func (p *Paddle) inLane(r core.Rect) bool {
	return r.X >= p.lane.X && r.Right() <= p.lane.Right()
}

// clampToLane pushes the paddle back inside the lane after it grew.
func (p *Paddle) clampToLane() {
	if p.rect.X < p.lane.X {
		p.rect.X = p.lane.X
	}
	if p.rect.Right() > p.lane.Right() {
		p.rect.X = p.lane.Right() - p.rect.W
	}
}

// setFrame shows f and resizes the paddle around its center.
func (p *Paddle) setFrame(f anim.Frame) {
	p.frame = f
	p.rect = p.rect.WithSize(f.W, f.H)
}

// setImage shows f without changing the paddle's size.
func (p *Paddle) setImage(f anim.Frame) {
	p.frame = f
}

// Bounce is the paddle's ball bounce strategy. The paddle is split into six
// segments, the last one taking any remainder, and the ball leaves at the
// angle of the first segment it overlaps.
func (p *Paddle) Bounce(paddle, ball core.Rect) float64 {
	seg := paddle.W / 6
	for i := 0; i < 6; i++ {
		w := seg
		if i == 5 {
			w = paddle.W - seg*5
		}
		r := core.NewRect(paddle.X+seg*i, paddle.Y, w, paddle.H)
		if ball.Intersects(r) {
			return p.cfg.BounceAngles[i] * math.Pi / 180
		}
	}
	panic(fmt.Sprintf("paddle: ball %+v overlaps no segment of %+v", ball, paddle))
}

// DeactivateSpecialImage returns the paddle to Normal unless it is exploding
// or already normal.
func (p *Paddle) DeactivateSpecialImage() {
	switch p.state.(type) {
	case *Exploding, *Normal:
		return
	}
	p.Transition(NewNormal(p))
}

// ActivateSpecialImage enters PowerUpCharged.
func (p *Paddle) ActivateSpecialImage() {
	if _, ok := p.state.(*PowerUpCharged); ok {
		return
	}
	p.Transition(NewPowerUpCharged(p))
}

// UseSpecialImage leaves PowerUpCharged for Normal.
func (p *Paddle) UseSpecialImage() {
	if _, ok := p.state.(*PowerUpCharged); ok {
		p.Transition(NewNormal(p))
	}
}

// Fire shoots laser bullets when the laser is armed.
func (p *Paddle) Fire() {
	if l, ok := p.state.(*Laser); ok && l.armed {
		p.fire()
	}
}
